package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/GymMembers/internal/models"
	"github.com/Kerhoff/GymMembers/internal/repository"
	"github.com/Kerhoff/GymMembers/internal/service"
)

// healthTimeout bounds the store ping behind /healthz
const healthTimeout = 2 * time.Second

// Server provides the member REST API.
type Server struct {
	svc     *service.Service
	logger  *logrus.Logger
	metrics *Metrics
	router  chi.Router
}

// NewServer creates a Server, registers all routes, and returns it.
// metrics may be nil.
func NewServer(svc *service.Service, logger *logrus.Logger, metrics *Metrics) *Server {
	s := &Server{svc: svc, logger: logger, metrics: metrics, router: chi.NewRouter()}
	s.routes()
	return s
}

// Handler returns the http.Handler that can be passed to http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ---------------------------------------------------------------------------
// Routes
// ---------------------------------------------------------------------------

func (s *Server) routes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(s.logRequests)
	if s.metrics != nil {
		s.router.Use(s.metrics.Middleware)
	}
	s.router.Use(middleware.Recoverer)

	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api/members", func(r chi.Router) {
		r.Get("/", s.handleListMembers)
		r.Post("/", s.handleCreateMember)
		r.Get("/{id}", s.handleGetMember)
		r.Put("/{id}", s.handleUpdateMember)
		r.Delete("/{id}", s.handleDeleteMember)
	})
}

// logRequests logs every request at debug level and server faults at error.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		entry := s.logger.WithFields(logrus.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"duration":   time.Since(start),
			"request_id": middleware.GetReqID(r.Context()),
		})
		if ww.Status() >= http.StatusInternalServerError {
			entry.Error("request failed")
			return
		}
		entry.Debug("request served")
	})
}

// ---------------------------------------------------------------------------
// JSON helpers
// ---------------------------------------------------------------------------

// errorResponse is the body of every failed request
type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			s.logger.WithError(err).Error("failed to encode JSON response")
		}
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, errorResponse{Error: message})
}

// respondServiceError maps service errors onto the HTTP taxonomy. Anything
// that is not a validation, not-found or conflict error is a storage fault.
func (s *Server) respondServiceError(w http.ResponseWriter, err error, action string) {
	if !service.IsClientError(err) {
		s.logger.WithError(err).Errorf("failed to %s", action)
		s.respondJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   "failed to " + action,
			Details: err.Error(),
		})
		return
	}

	switch {
	case errors.Is(err, repository.ErrValidation):
		s.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		s.respondError(w, http.StatusNotFound, repository.ErrNotFound.Error())
	case errors.Is(err, repository.ErrConflict):
		s.respondJSON(w, http.StatusConflict, errorResponse{
			Error:   repository.ErrConflict.Error(),
			Details: err.Error(),
		})
	}
}

// decodeJSON reads the request body into dst and returns an error message on
// failure.  The caller should return immediately when ok == false.
func (s *Server) decodeJSON(r *http.Request, dst any) (ok bool, errMsg string) {
	if r.Body == nil {
		return false, "request body is empty"
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return false, "request body is empty"
		}
		return false, fmt.Sprintf("invalid JSON: %v", err)
	}
	return true, ""
}

// pathID extracts the {id} path value and converts it to a positive int64.
func pathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	if raw == "" {
		return 0, fmt.Errorf("missing id in path")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, fmt.Errorf("id must be positive")
	}
	return id, nil
}

// ---------------------------------------------------------------------------
// Health
// ---------------------------------------------------------------------------

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := s.svc.Ping(ctx); err != nil {
		s.logger.WithError(err).Warn("health check failed")
		s.respondJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "storage unavailable", Details: err.Error()})
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ---------------------------------------------------------------------------
// Members
// ---------------------------------------------------------------------------

type createMemberRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	MembershipType string `json:"membership_type"`
	JoinDate       string `json:"join_date"` // YYYY-MM-DD or RFC 3339
	Status         string `json:"status"`
}

// updateMemberRequest uses pointers so an absent key stays distinguishable
// from a supplied value.
type updateMemberRequest struct {
	Name           *string `json:"name"`
	Email          *string `json:"email"`
	MembershipType *string `json:"membership_type"`
	JoinDate       *string `json:"join_date"`
	Status         *string `json:"status"`
}

func (req updateMemberRequest) patch() (models.MemberPatch, error) {
	patch := models.MemberPatch{
		Name:  req.Name,
		Email: req.Email,
	}
	if req.MembershipType != nil {
		t := models.MembershipType(*req.MembershipType)
		patch.MembershipType = &t
	}
	if req.Status != nil {
		st := models.MemberStatus(*req.Status)
		patch.Status = &st
	}
	if req.JoinDate != nil {
		var d models.Date
		if strings.TrimSpace(*req.JoinDate) != "" {
			parsed, err := models.ParseDate(*req.JoinDate)
			if err != nil {
				return models.MemberPatch{}, err
			}
			d = parsed
		}
		patch.JoinDate = &d
	}
	return patch, nil
}

func (s *Server) handleListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := s.svc.ListMembers(r.Context())
	if err != nil {
		s.respondServiceError(w, err, "fetch members")
		return
	}
	if members == nil {
		members = []*models.Member{}
	}

	s.respondJSON(w, http.StatusOK, members)
}

func (s *Server) handleGetMember(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid member id")
		return
	}

	member, err := s.svc.GetMember(r.Context(), id)
	if err != nil {
		s.respondServiceError(w, err, "fetch member")
		return
	}

	s.respondJSON(w, http.StatusOK, member)
}

func (s *Server) handleCreateMember(w http.ResponseWriter, r *http.Request) {
	var req createMemberRequest
	if ok, msg := s.decodeJSON(r, &req); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}

	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.JoinDate) == "" {
		s.respondError(w, http.StatusBadRequest, "name, email, and join_date are required")
		return
	}

	joinDate, err := models.ParseDate(strings.TrimSpace(req.JoinDate))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "join_date must be a YYYY-MM-DD date")
		return
	}

	created, err := s.svc.CreateMember(r.Context(), models.Member{
		Name:           req.Name,
		Email:          req.Email,
		MembershipType: models.MembershipType(req.MembershipType),
		JoinDate:       joinDate,
		Status:         models.MemberStatus(req.Status),
	})
	if err != nil {
		s.respondServiceError(w, err, "create member")
		return
	}

	s.respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateMember(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid member id")
		return
	}

	var req updateMemberRequest
	if ok, msg := s.decodeJSON(r, &req); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}

	patch, err := req.patch()
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "join_date must be a YYYY-MM-DD date")
		return
	}
	if patch.IsEmpty() {
		s.respondError(w, http.StatusBadRequest, "no fields to update")
		return
	}

	updated, err := s.svc.UpdateMember(r.Context(), id, patch)
	if err != nil {
		s.respondServiceError(w, err, "update member")
		return
	}

	s.respondJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteMember(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid member id")
		return
	}

	if err := s.svc.DeleteMember(r.Context(), id); err != nil {
		s.respondServiceError(w, err, "delete member")
		return
	}

	s.respondJSON(w, http.StatusOK, messageResponse{Message: "Member deleted successfully"})
}

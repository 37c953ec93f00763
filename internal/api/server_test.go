package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kerhoff/GymMembers/internal/models"
	"github.com/Kerhoff/GymMembers/internal/repository"
	"github.com/Kerhoff/GymMembers/internal/repository/memory"
	"github.com/Kerhoff/GymMembers/internal/service"
)

// brokenRepository fails every call the way an unreachable database would
type brokenRepository struct{}

var errDown = errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")

func (brokenRepository) List(context.Context) ([]*models.Member, error) { return nil, errDown }
func (brokenRepository) GetByID(context.Context, int64) (*models.Member, error) {
	return nil, errDown
}
func (brokenRepository) Create(context.Context, *models.Member) (*models.Member, error) {
	return nil, errDown
}
func (brokenRepository) Update(context.Context, int64, models.MemberPatch) (*models.Member, error) {
	return nil, errDown
}
func (brokenRepository) Delete(context.Context, int64) error { return errDown }
func (brokenRepository) Ping(context.Context) error          { return errDown }

func newTestServer(t *testing.T, repo repository.MemberRepository) (*Server, *Metrics) {
	t.Helper()
	logger, _ := logtest.NewNullLogger()
	metrics := NewMetrics(nil)
	return NewServer(service.New(logger, repo), logger, metrics), metrics
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)
	return rr
}

func decodeMember(t *testing.T, rr *httptest.ResponseRecorder) models.Member {
	t.Helper()
	var m models.Member
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &m), rr.Body.String())
	return m
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var e errorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &e), rr.Body.String())
	return e
}

func TestCreateMember_Defaults(t *testing.T) {
	s, _ := newTestServer(t, memory.NewMemberRepository())

	rr := do(t, s, http.MethodPost, "/api/members", `{"name":"Ann","email":"ann@x.com","join_date":"2024-01-01"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	m := decodeMember(t, rr)
	assert.NotZero(t, m.ID)
	assert.Equal(t, models.MemberStatusActive, m.Status)
	assert.Equal(t, models.MembershipBasic, m.MembershipType)
	assert.JSONEq(t,
		`{"id":1,"name":"Ann","email":"ann@x.com","membership_type":"Basic","join_date":"2024-01-01","status":"Active"}`,
		rr.Body.String())
}

func TestCreateMember_Failures(t *testing.T) {
	s, _ := newTestServer(t, memory.NewMemberRepository())
	rr := do(t, s, http.MethodPost, "/api/members", `{"name":"Ann","email":"ann@x.com","join_date":"2024-01-01"}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "missing name", body: `{"email":"b@x.com","join_date":"2024-01-01"}`, want: http.StatusBadRequest},
		{name: "missing join date", body: `{"name":"B","email":"b@x.com"}`, want: http.StatusBadRequest},
		{name: "bad join date", body: `{"name":"B","email":"b@x.com","join_date":"01/02/2024"}`, want: http.StatusBadRequest},
		{name: "year zero join date", body: `{"name":"B","email":"b@x.com","join_date":"0000-01-01"}`, want: http.StatusBadRequest},
		{name: "unknown status", body: `{"name":"B","email":"b@x.com","join_date":"2024-01-01","status":"Frozen"}`, want: http.StatusBadRequest},
		{name: "malformed json", body: `{"name":`, want: http.StatusBadRequest},
		{name: "duplicate email", body: `{"name":"Other","email":"ann@x.com","join_date":"2024-02-02"}`, want: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, s, http.MethodPost, "/api/members", tt.body)
			assert.Equal(t, tt.want, rr.Code, rr.Body.String())
			assert.NotEmpty(t, decodeError(t, rr).Error)
		})
	}

	rr = do(t, s, http.MethodGet, "/api/members", "")
	var members []models.Member
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &members))
	assert.Len(t, members, 1)
}

func TestListMembers(t *testing.T) {
	s, _ := newTestServer(t, memory.NewMemberRepository())

	rr := do(t, s, http.MethodGet, "/api/members", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())

	do(t, s, http.MethodPost, "/api/members", `{"name":"Bob","email":"bob@x.com","join_date":"2024-03-15"}`)
	do(t, s, http.MethodPost, "/api/members", `{"name":"Ann","email":"ann@x.com","join_date":"2024-03-15"}`)

	rr = do(t, s, http.MethodGet, "/api/members", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var members []models.Member
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &members))
	require.Len(t, members, 2)
	assert.Equal(t, "Ann", members[0].Name)
	assert.Equal(t, "Bob", members[1].Name)
	assert.Equal(t, "2024-03-15", members[0].JoinDate.String())
}

func TestUpdateMember(t *testing.T) {
	s, _ := newTestServer(t, memory.NewMemberRepository())
	ann := decodeMember(t, do(t, s, http.MethodPost, "/api/members",
		`{"name":"Ann","email":"ann@x.com","join_date":"2024-01-01","membership_type":"VIP"}`))
	do(t, s, http.MethodPost, "/api/members", `{"name":"Bob","email":"bob@x.com","join_date":"2024-01-01"}`)

	rr := do(t, s, http.MethodPut, "/api/members/1", `{"status":"Expired"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	updated := decodeMember(t, rr)
	assert.Equal(t, ann.ID, updated.ID)
	assert.Equal(t, ann.Name, updated.Name)
	assert.Equal(t, ann.Email, updated.Email)
	assert.Equal(t, ann.JoinDate, updated.JoinDate)
	assert.Equal(t, models.MembershipVIP, updated.MembershipType)
	assert.Equal(t, models.MemberStatusExpired, updated.Status)

	tests := []struct {
		name string
		path string
		body string
		want int
	}{
		{name: "empty object", path: "/api/members/1", body: `{}`, want: http.StatusBadRequest},
		{name: "no body", path: "/api/members/1", body: "", want: http.StatusBadRequest},
		{name: "only id", path: "/api/members/1", body: `{"id":9}`, want: http.StatusBadRequest},
		{name: "non numeric id", path: "/api/members/abc", body: `{"name":"X"}`, want: http.StatusBadRequest},
		{name: "negative id", path: "/api/members/-3", body: `{"name":"X"}`, want: http.StatusBadRequest},
		{name: "blank name", path: "/api/members/1", body: `{"name":""}`, want: http.StatusBadRequest},
		{name: "unknown id", path: "/api/members/999", body: `{"name":"X"}`, want: http.StatusNotFound},
		{name: "email taken", path: "/api/members/1", body: `{"email":"bob@x.com"}`, want: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, s, http.MethodPut, tt.path, tt.body)
			assert.Equal(t, tt.want, rr.Code, rr.Body.String())
		})
	}
}

func TestDeleteMember(t *testing.T) {
	s, _ := newTestServer(t, memory.NewMemberRepository())
	do(t, s, http.MethodPost, "/api/members", `{"name":"Ann","email":"ann@x.com","join_date":"2024-01-01"}`)

	rr := do(t, s, http.MethodDelete, "/api/members/1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"Member deleted successfully"}`, rr.Body.String())

	rr = do(t, s, http.MethodDelete, "/api/members/1", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = do(t, s, http.MethodDelete, "/api/members/one", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestStorageFault(t *testing.T) {
	s, _ := newTestServer(t, brokenRepository{})

	rr := do(t, s, http.MethodGet, "/api/members", "")
	require.Equal(t, http.StatusInternalServerError, rr.Code)
	body := decodeError(t, rr)
	assert.Equal(t, "failed to fetch members", body.Error)
	assert.Contains(t, body.Details, "connection refused")

	rr = do(t, s, http.MethodPost, "/api/members", `{"name":"Ann","email":"ann@x.com","join_date":"2024-01-01"}`)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	rr = do(t, s, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t, memory.NewMemberRepository())

	rr := do(t, s, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestMetricsUseRoutePattern(t *testing.T) {
	s, metrics := newTestServer(t, memory.NewMemberRepository())
	do(t, s, http.MethodDelete, "/api/members/42", "")
	do(t, s, http.MethodDelete, "/api/members/43", "")

	rr := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	out := rr.Body.String()
	assert.Contains(t, out, `members_http_requests_total{method="DELETE",route="/api/members/{id}",status="404"} 2`)
	assert.NotContains(t, out, `/api/members/42`)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/GymMembers/internal/models"
	"github.com/Kerhoff/GymMembers/internal/repository"
)

// Notifier is told about membership changes after they are persisted.
type Notifier interface {
	MemberAdded(ctx context.Context, member *models.Member) error
	MemberRemoved(ctx context.Context, member *models.Member) error
}

// Service is the business logic layer in front of the member repository.
// It owns required-field checks, defaults and date normalization.
type Service struct {
	logger   *logrus.Logger
	Members  repository.MemberRepository
	notifier Notifier
}

// Option configures optional Service collaborators
type Option func(*Service)

// WithNotifier sends add/remove notifications through n
func WithNotifier(n Notifier) Option {
	return func(s *Service) {
		s.notifier = n
	}
}

// New creates a new Service with all required dependencies.
func New(logger *logrus.Logger, members repository.MemberRepository, opts ...Option) *Service {
	s := &Service{logger: logger, Members: members}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListMembers returns every member ordered by name
func (s *Service) ListMembers(ctx context.Context) ([]*models.Member, error) {
	members, err := s.Members.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

// GetMember returns a single member by id
func (s *Service) GetMember(ctx context.Context, id int64) (*models.Member, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	return s.Members.GetByID(ctx, id)
}

// CreateMember validates input, applies the Basic/Active defaults and
// persists a new member. The input ID is ignored.
func (s *Service) CreateMember(ctx context.Context, input models.Member) (*models.Member, error) {
	member := models.Member{
		Name:           strings.TrimSpace(input.Name),
		Email:          strings.TrimSpace(input.Email),
		MembershipType: input.MembershipType,
		JoinDate:       input.JoinDate,
		Status:         input.Status,
	}
	if member.MembershipType == "" {
		member.MembershipType = models.MembershipBasic
	}
	if member.Status == "" {
		member.Status = models.MemberStatusActive
	}

	if err := validateNewMember(&member); err != nil {
		return nil, err
	}

	created, err := s.Members.Create(ctx, &member)
	if err != nil {
		return nil, err
	}
	s.logger.Infof("Created member %d (%s)", created.ID, created.Email)

	if s.notifier != nil {
		if err := s.notifier.MemberAdded(ctx, created); err != nil {
			s.logger.WithError(err).Warnf("Failed to send add notification for member %d", created.ID)
		}
	}
	return created, nil
}

// UpdateMember persists the supplied fields of patch and returns the full record
func (s *Service) UpdateMember(ctx context.Context, id int64, patch models.MemberPatch) (*models.Member, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	patch = normalizePatch(patch)
	if err := validatePatch(patch); err != nil {
		return nil, err
	}

	updated, err := s.Members.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.logger.Infof("Updated member %d", id)
	return updated, nil
}

// DeleteMember removes a member by id
func (s *Service) DeleteMember(ctx context.Context, id int64) error {
	if err := validateID(id); err != nil {
		return err
	}

	// The record is only needed for the notification text.
	var removed *models.Member
	if s.notifier != nil {
		m, err := s.Members.GetByID(ctx, id)
		if err != nil {
			return err
		}
		removed = m
	}

	if err := s.Members.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Infof("Deleted member %d", id)

	if removed != nil {
		if err := s.notifier.MemberRemoved(ctx, removed); err != nil {
			s.logger.WithError(err).Warnf("Failed to send remove notification for member %d", id)
		}
	}
	return nil
}

// Ping checks that the store is reachable
func (s *Service) Ping(ctx context.Context) error {
	return s.Members.Ping(ctx)
}

// IsClientError reports whether err is caused by the caller rather than storage
func IsClientError(err error) bool {
	return errors.Is(err, repository.ErrValidation) ||
		errors.Is(err, repository.ErrNotFound) ||
		errors.Is(err, repository.ErrConflict)
}

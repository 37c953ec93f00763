package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/Kerhoff/GymMembers/internal/models"
	"github.com/Kerhoff/GymMembers/internal/repository"
)

var (
	errMembershipType = fmt.Errorf("membership_type must be one of %s", joinValues(models.MembershipTypes))
	errStatus         = fmt.Errorf("status must be one of %s", joinValues(models.MemberStatuses))
)

func joinValues[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

// listFormat renders every collected problem on one line
func listFormat(errs []error) string {
	parts := make([]string, len(errs))
	for i, err := range errs {
		parts[i] = err.Error()
	}
	return strings.Join(parts, "; ")
}

// asValidationError wraps the collected problems under repository.ErrValidation
func asValidationError(result *multierror.Error) error {
	if result == nil {
		return nil
	}
	result.ErrorFormat = listFormat
	return fmt.Errorf("%w: %s", repository.ErrValidation, result.Error())
}

func validateID(id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid member id %d", repository.ErrValidation, id)
	}
	return nil
}

func validateNewMember(m *models.Member) error {
	var result *multierror.Error
	if m.Name == "" {
		result = multierror.Append(result, errors.New("name is required"))
	}
	if m.Email == "" {
		result = multierror.Append(result, errors.New("email is required"))
	}
	if m.JoinDate.IsZero() {
		result = multierror.Append(result, errors.New("join_date is required"))
	}
	if !m.MembershipType.Valid() {
		result = multierror.Append(result, errMembershipType)
	}
	if !m.Status.Valid() {
		result = multierror.Append(result, errStatus)
	}
	return asValidationError(result)
}

func normalizePatch(p models.MemberPatch) models.MemberPatch {
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		p.Name = &name
	}
	if p.Email != nil {
		email := strings.TrimSpace(*p.Email)
		p.Email = &email
	}
	return p
}

// validatePatch checks only the supplied fields. A supplied empty value is
// rejected instead of being skipped, so a patch never silently drops a field.
func validatePatch(p models.MemberPatch) error {
	if p.IsEmpty() {
		return fmt.Errorf("%w: no fields to update", repository.ErrValidation)
	}

	var result *multierror.Error
	if p.Name != nil && *p.Name == "" {
		result = multierror.Append(result, errors.New("name cannot be empty"))
	}
	if p.Email != nil && *p.Email == "" {
		result = multierror.Append(result, errors.New("email cannot be empty"))
	}
	if p.JoinDate != nil && p.JoinDate.IsZero() {
		result = multierror.Append(result, errors.New("join_date cannot be empty"))
	}
	if p.MembershipType != nil && !p.MembershipType.Valid() {
		result = multierror.Append(result, errMembershipType)
	}
	if p.Status != nil && !p.Status.Valid() {
		result = multierror.Append(result, errStatus)
	}
	return asValidationError(result)
}

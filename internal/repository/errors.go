package repository

import "errors"

var (
	// ErrNotFound is returned when no member has the requested id
	ErrNotFound = errors.New("member not found")

	// ErrConflict is returned when a write would duplicate another member's email
	ErrConflict = errors.New("a member with this email already exists")

	// ErrValidation is returned for missing or malformed input
	ErrValidation = errors.New("validation failed")
)

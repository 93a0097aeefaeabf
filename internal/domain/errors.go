package domain

import "errors"

// Sentinel errors shared by certificate and tag operations.
var (
	// ErrNotFound is returned when a certificate or tag id/name does not resolve.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateName is returned when a create would violate name uniqueness.
	ErrDuplicateName = errors.New("name already exists")
	// ErrTagNotFound is returned when a supplied tag id does not exist. Callers
	// wrap it with the offending id; the whole tag-replace operation is aborted.
	ErrTagNotFound = errors.New("tag does not exist")
	// ErrInvalidInput is returned when a field fails validation.
	ErrInvalidInput = errors.New("invalid input")
)

// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios: a lookup
// that resolved nothing, an operation on somebody else's resource, or a
// mutation blocked by dependent records.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own. Handlers should translate this into an
// HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a delete or update cannot be performed
// because of conflicting state, such as deleting a schedule that still
// has bookings. Handlers should translate this into an HTTP 409
// response.
var ErrConflict = errors.New("conflict")

// ErrNoChange indicates an UPDATE attempted to set fields equal to the
// current values.
var ErrNoChange = errors.New("no change")

// Per-entity not-found sentinels.
var (
	ErrMovieNotFound    = errors.New("movie not found")
	ErrCompanyNotFound  = errors.New("company not found")
	ErrScheduleNotFound = errors.New("schedule not found")
	ErrBookingNotFound  = errors.New("booking not found")
)

package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database, or exists but belongs to another user.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, total days below one).
// Handlers should map this to HTTP 400.
var ErrValidation = errors.New("validation error")

// ErrOutOfRange is returned when a day index does not address an existing
// day-bucket of a trip. Handlers should map this to HTTP 400.
var ErrOutOfRange = errors.New("out of range")

// ErrConflict is returned when a write collides with existing state, such as a
// duplicate liked place or an already registered email.
// Handlers should map this to HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrRegionConflict is returned when a place outside the trip's regions is liked.
// Handlers should map this to HTTP 409.
var ErrRegionConflict = errors.New("region conflict")

// ErrUnauthorized is returned for bad credentials and invalid tokens.
// Handlers should map this to HTTP 401.
var ErrUnauthorized = errors.New("unauthorized")

// ErrUnavailable is returned when the store did not answer within the
// configured timeout. The client may retry. Handlers map it to HTTP 500.
var ErrUnavailable = errors.New("store unavailable")

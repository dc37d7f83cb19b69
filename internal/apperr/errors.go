package apperr

import "errors"

// ErrInvalidInput is returned when caller-provided input fails validation
// (malformed domain, out-of-range concurrency). Use
// errors.Is(err, apperr.ErrInvalidInput) to detect validation failures
// uniformly across packages.
var ErrInvalidInput = errors.New("invalid input")

// ErrRequestFailed is returned by HTTP-based collaborators when the request
// fails at the transport level or the server responds with a non-2xx status.
var ErrRequestFailed = errors.New("request failed")

// ErrNotFound is returned by the report store when no stored report matches
// the requested domain.
var ErrNotFound = errors.New("not found")

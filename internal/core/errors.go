package core

import "errors"

// Sentinel errors for every failure class the gateway can produce. Transport
// layers map these to status codes with errors.Is; everything else is an
// internal error.
var (
	// ErrUnauthenticated means no credential was presented at all.
	ErrUnauthenticated = errors.New("missing credentials")

	// ErrUnauthorized means a credential was presented but did not match.
	ErrUnauthorized = errors.New("invalid API key")

	// ErrRateLimited means the client exceeded its request window.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrValidation means the request payload failed validation. Requests
	// that fail validation never reach a backend.
	ErrValidation = errors.New("invalid request")

	// ErrBackendTimeout means the backend did not answer within its deadline.
	ErrBackendTimeout = errors.New("backend request timed out")

	// ErrBackendUnavailable covers connection failures and upstream HTTP or
	// API errors from a backend.
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrBackendMalformed means the backend answered but its payload or text
	// did not follow the expected shape.
	ErrBackendMalformed = errors.New("malformed backend response")

	// ErrEmptyGeneration means the generated reply was empty after cleanup.
	ErrEmptyGeneration = errors.New("backend generated an empty reply")
)

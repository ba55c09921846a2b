package domain

import "errors"

var (
	// ErrNotConfigured means the DealMaker integration is missing a client
	// id, client secret, or deal id. Callers at the HTTP boundary map it to
	// a service-unavailable response; it is never retried.
	ErrNotConfigured = errors.New("dealmaker integration not configured")

	// ErrAuthFailed means the token endpoint rejected the client-credentials
	// exchange.
	ErrAuthFailed = errors.New("authentication failed")

	// ErrNotFound is returned by caches when the requested entry is absent.
	ErrNotFound = errors.New("not found")
)

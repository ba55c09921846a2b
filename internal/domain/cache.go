package domain

import (
	"context"
	"time"
)

// Token is a cached bearer credential for the remote platform. It is the only
// thing this system ever caches; business data is re-fetched on every read.
type Token struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// TokenCache is a single-slot store for the platform bearer token. Set
// replaces the slot wholesale; Get returns ErrNotFound when the slot is
// empty. Implementations must tolerate concurrent use — two callers both
// refreshing a stale token is acceptable, last writer wins.
type TokenCache interface {
	Get(ctx context.Context) (Token, error)
	Set(ctx context.Context, tok Token) error
}

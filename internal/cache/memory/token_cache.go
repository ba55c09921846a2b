// Package memory provides in-process implementations of the domain cache
// interfaces for single-instance deployments.
package memory

import (
	"context"
	"sync"

	"github.com/avencrest/raisegate/internal/domain"
)

// TokenCache is a single-slot, process-local token cache. The slot is
// replaced wholesale on Set and never persisted across restarts.
type TokenCache struct {
	mu  sync.RWMutex
	tok domain.Token
	set bool
}

// NewTokenCache creates an empty TokenCache.
func NewTokenCache() *TokenCache {
	return &TokenCache{}
}

// Get returns the cached token, or domain.ErrNotFound when the slot is empty.
func (c *TokenCache) Get(_ context.Context) (domain.Token, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.set {
		return domain.Token{}, domain.ErrNotFound
	}
	return c.tok, nil
}

// Set overwrites the slot with tok.
func (c *TokenCache) Set(_ context.Context, tok domain.Token) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tok = tok
	c.set = true
	return nil
}

// Package redis implements the domain token cache on go-redis/v9, for
// deployments running more than one raisegate instance behind a load
// balancer. Only the bearer token is ever cached here; deal and investor
// data is re-fetched from the platform on every read.
package redis

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/avencrest/raisegate/internal/domain"
)

// ClientConfig holds connection parameters for the Redis client.
type ClientConfig struct {
	Addr       string
	Password   string
	DB         int
	PoolSize   int
	TLSEnabled bool
}

// Client wraps a go-redis client.
type Client struct {
	rdb *redis.Client
}

// New connects to Redis and verifies connectivity with a ping.
func New(ctx context.Context, cfg ClientConfig) (*Client, error) {
	opts := &redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	}
	if cfg.TLSEnabled {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}
	return &Client{rdb: rdb}, nil
}

// Close closes the Redis connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}

const tokenKey = "dealmaker:token"

// TokenCache stores the platform bearer token as a JSON blob under a single
// key whose TTL matches the token's real expiry, so a dead instance can
// never leave a stale token behind.
type TokenCache struct {
	rdb *redis.Client
}

// NewTokenCache creates a TokenCache backed by the given Client.
func NewTokenCache(c *Client) *TokenCache {
	return &TokenCache{rdb: c.rdb}
}

// Get returns the shared token, or domain.ErrNotFound when no instance has
// stored one yet (or the TTL has elapsed).
func (tc *TokenCache) Get(ctx context.Context) (domain.Token, error) {
	raw, err := tc.rdb.Get(ctx, tokenKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Token{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Token{}, fmt.Errorf("redis: get token: %w", err)
	}

	var tok domain.Token
	if err := json.Unmarshal(raw, &tok); err != nil {
		return domain.Token{}, fmt.Errorf("redis: decode token: %w", err)
	}
	return tok, nil
}

// Set overwrites the shared token. Concurrent refreshes are tolerated; last
// writer wins.
func (tc *TokenCache) Set(ctx context.Context, tok domain.Token) error {
	raw, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("redis: encode token: %w", err)
	}

	ttl := time.Until(tok.ExpiresAt)
	if ttl <= 0 {
		// Already expired; storing it would only cause a pointless read.
		return nil
	}

	if err := tc.rdb.Set(ctx, tokenKey, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis: set token: %w", err)
	}
	return nil
}

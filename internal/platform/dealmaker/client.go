// Package dealmaker is the REST client for the DealMaker capital-raise
// platform. Every resource call authenticates with a cached OAuth bearer
// token obtained through the client-credentials grant.
package dealmaker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/avencrest/raisegate/internal/cache/memory"
	"github.com/avencrest/raisegate/internal/domain"
)

// tokenSkew is subtracted from a token's real expiry when deciding whether to
// reuse it, so a token never expires mid-request.
const tokenSkew = 60 * time.Second

// Config holds the endpoints and credentials for the platform.
type Config struct {
	APIBase      string // e.g. "https://app.dealmaker.tech/api/v1"
	TokenURL     string // e.g. "https://app.dealmaker.tech/oauth/token"
	ClientID     string
	ClientSecret string
}

// Client is the DealMaker REST client. It performs no retries and sets no
// deadlines beyond the HTTP client timeout; callers own cancellation via ctx.
type Client struct {
	cfg        Config
	httpClient *http.Client
	tokens     domain.TokenCache
	now        func() time.Time
}

// Option customizes a Client.
type Option func(*Client)

// WithTokenCache substitutes the token cache, e.g. a Redis-backed cache for
// multi-instance deployments.
func WithTokenCache(tc domain.TokenCache) Option {
	return func(c *Client) { c.tokens = tc }
}

// WithHTTPClient substitutes the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithClock substitutes the time source used for token expiry decisions.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// NewClient creates a DealMaker client. By default it uses an in-memory
// single-slot token cache and a 30-second HTTP timeout.
func NewClient(cfg Config, opts ...Option) *Client {
	c := &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		tokens: memory.NewTokenCache(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured reports whether the client has credentials to authenticate.
func (c *Client) Configured() bool {
	return c.cfg.ClientID != "" && c.cfg.ClientSecret != ""
}

// AccessToken returns a valid bearer token, reusing the cached one when it is
// more than tokenSkew from expiry and performing a fresh client-credentials
// exchange otherwise. A successful exchange overwrites the cached token
// wholesale. Returns domain.ErrNotConfigured when credentials are absent and
// domain.ErrAuthFailed when the token endpoint rejects the exchange.
func (c *Client) AccessToken(ctx context.Context) (string, error) {
	// Any cache error (including domain.ErrNotFound) is treated as a miss;
	// the exchange below produces a fresh token either way.
	if tok, err := c.tokens.Get(ctx); err == nil && c.now().Before(tok.ExpiresAt.Add(-tokenSkew)) {
		return tok.AccessToken, nil
	}

	if !c.Configured() {
		return "", fmt.Errorf("dealmaker: client credentials missing: %w", domain.ErrNotConfigured)
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("dealmaker: create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("dealmaker: token exchange: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("dealmaker: token endpoint returned %d: %w", resp.StatusCode, domain.ErrAuthFailed)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("dealmaker: decode token response: %w", err)
	}

	tok := domain.Token{
		AccessToken: tr.AccessToken,
		ExpiresAt:   c.now().Add(time.Duration(tr.ExpiresIn) * time.Second),
	}
	// The token is usable even if the cache write fails.
	_ = c.tokens.Set(ctx, tok)

	return tok.AccessToken, nil
}

// APIError is a non-success response from a resource call. Body is captured
// best-effort and may be empty.
type APIError struct {
	Status int
	Path   string
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("dealmaker: API %d: %s - %s", e.Status, e.Path, e.Body)
}

// do builds, authenticates, sends, and reads a request against the platform
// API. Non-2xx responses come back as *APIError.
func (c *Client) do(ctx context.Context, method, path string, reqBody any) ([]byte, error) {
	token, err := c.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	var bodyReader io.Reader
	if reqBody != nil {
		jsonBody, err := json.Marshal(reqBody)
		if err != nil {
			return nil, fmt.Errorf("dealmaker: marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.APIBase+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("dealmaker: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("dealmaker: http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		respBody = nil
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{
			Status: resp.StatusCode,
			Path:   path,
			Body:   string(respBody),
		}
	}

	return respBody, nil
}

// GetDeal returns the deal record by id.
func (c *Client) GetDeal(ctx context.Context, dealID string) (Deal, error) {
	body, err := c.do(ctx, http.MethodGet, "/deals/"+url.PathEscape(dealID), nil)
	if err != nil {
		return Deal{}, fmt.Errorf("get deal %s: %w", dealID, err)
	}

	var deal Deal
	if err := json.Unmarshal(body, &deal); err != nil {
		return Deal{}, fmt.Errorf("dealmaker: decode deal: %w", err)
	}
	return deal, nil
}

// ListIncentiveTiers returns the deal's incentive plan tiers.
func (c *Client) ListIncentiveTiers(ctx context.Context, dealID string) ([]IncentiveTier, error) {
	path := fmt.Sprintf("/deals/%s/incentive_plan/tiers", url.PathEscape(dealID))
	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, fmt.Errorf("list incentive tiers %s: %w", dealID, err)
	}

	var tiers []IncentiveTier
	if err := json.Unmarshal(body, &tiers); err != nil {
		return nil, fmt.Errorf("dealmaker: decode incentive tiers: %w", err)
	}
	return tiers, nil
}

// CreateIndividualProfile creates an individual investor profile.
func (c *Client) CreateIndividualProfile(ctx context.Context, req ProfileRequest) (InvestorProfile, error) {
	body, err := c.do(ctx, http.MethodPost, "/investor_profiles/individuals", req)
	if err != nil {
		return InvestorProfile{}, fmt.Errorf("create investor profile: %w", err)
	}

	var profile InvestorProfile
	if err := json.Unmarshal(body, &profile); err != nil {
		return InvestorProfile{}, fmt.Errorf("dealmaker: decode investor profile: %w", err)
	}
	return profile, nil
}

// CreateDealInvestor creates a deal investor referencing an existing profile.
func (c *Client) CreateDealInvestor(ctx context.Context, dealID string, req InvestorRequest) (DealInvestor, error) {
	path := fmt.Sprintf("/deals/%s/investors", url.PathEscape(dealID))
	body, err := c.do(ctx, http.MethodPost, path, req)
	if err != nil {
		return DealInvestor{}, fmt.Errorf("create deal investor: %w", err)
	}

	var investor DealInvestor
	if err := json.Unmarshal(body, &investor); err != nil {
		return DealInvestor{}, fmt.Errorf("dealmaker: decode deal investor: %w", err)
	}
	return investor, nil
}

// UpdateDealInvestor patches a deal investor's funnel step or profile link.
func (c *Client) UpdateDealInvestor(ctx context.Context, dealID string, investorID int64, req InvestorUpdate) (DealInvestor, error) {
	path := fmt.Sprintf("/deals/%s/investors/%s", url.PathEscape(dealID), strconv.FormatInt(investorID, 10))
	body, err := c.do(ctx, http.MethodPatch, path, req)
	if err != nil {
		return DealInvestor{}, fmt.Errorf("update deal investor %d: %w", investorID, err)
	}

	var investor DealInvestor
	if err := json.Unmarshal(body, &investor); err != nil {
		return DealInvestor{}, fmt.Errorf("dealmaker: decode deal investor: %w", err)
	}
	return investor, nil
}

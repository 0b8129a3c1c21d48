// Package chain reads ledger state from a Hedera mirror node REST API.
package chain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"dlt-orchestrator/config"
	"dlt-orchestrator/pkg/logger"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const maxReadRetries = 2

// errNotFound marks a 404 from the mirror node.
var errNotFound = errors.New("mirror node: not found")

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// MirrorClient implements ports.ChainReader. Requests share one token
// bucket and transient failures are retried with exponential backoff.
type MirrorClient struct {
	baseURL string
	http    HTTPClient
	limiter *rate.Limiter
	timeout time.Duration
	backoff func() backoff.BackOff
	log     zerolog.Logger
}

// NewMirrorClient creates a mirror node client from chain config.
func NewMirrorClient(cfg config.ChainConfig, client HTTPClient, log zerolog.Logger) *MirrorClient {
	if client == nil {
		client = &http.Client{}
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	limit := rate.Limit(cfg.RequestsPerSecond)
	if cfg.RequestsPerSecond <= 0 {
		limit = rate.Inf
	}
	return &MirrorClient{
		baseURL: strings.TrimRight(cfg.MirrorURL, "/"),
		http:    client,
		limiter: rate.NewLimiter(limit, burst),
		timeout: cfg.Timeout,
		backoff: func() backoff.BackOff { return backoff.NewExponentialBackOff() },
		log:     logger.Component(log, "mirror"),
	}
}

// TokenExists reports whether the token entity exists.
func (c *MirrorClient) TokenExists(ctx context.Context, tokenID string) (bool, error) {
	return c.exists(ctx, "/api/v1/tokens/"+url.PathEscape(tokenID))
}

// ContractExists reports whether the contract entity exists.
func (c *MirrorClient) ContractExists(ctx context.Context, contractID string) (bool, error) {
	return c.exists(ctx, "/api/v1/contracts/"+url.PathEscape(contractID))
}

type accountTokens struct {
	Tokens []struct {
		TokenID string `json:"token_id"`
		Balance int64  `json:"balance"`
	} `json:"tokens"`
}

// IsAssociated reports whether accountID holds a relationship with tokenID.
// An unknown account is not associated.
func (c *MirrorClient) IsAssociated(ctx context.Context, accountID, tokenID string) (bool, error) {
	rel, err := c.relationship(ctx, accountID, tokenID)
	if err != nil {
		return false, err
	}
	return rel != nil, nil
}

// TokenBalance returns accountID's balance of tokenID in minor units.
// Unassociated accounts have a zero balance.
func (c *MirrorClient) TokenBalance(ctx context.Context, accountID, tokenID string) (int64, error) {
	rel, err := c.relationship(ctx, accountID, tokenID)
	if err != nil || rel == nil {
		return 0, err
	}
	return *rel, nil
}

func (c *MirrorClient) relationship(ctx context.Context, accountID, tokenID string) (*int64, error) {
	path := "/api/v1/accounts/" + url.PathEscape(accountID) + "/tokens?token.id=" + url.QueryEscape(tokenID)
	var body accountTokens
	err := c.get(ctx, path, &body)
	if errors.Is(err, errNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	for _, t := range body.Tokens {
		if t.TokenID == tokenID {
			balance := t.Balance
			return &balance, nil
		}
	}
	return nil, nil
}

func (c *MirrorClient) exists(ctx context.Context, path string) (bool, error) {
	err := c.get(ctx, path, nil)
	if errors.Is(err, errNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// get issues a throttled GET and decodes a 200 body into out when out is not nil.
// 404 yields errNotFound; other 4xx are permanent; 5xx and transport errors are retried.
func (c *MirrorClient) get(ctx context.Context, path string, out any) error {
	policy := backoff.WithContext(backoff.WithMaxRetries(c.backoff(), maxReadRetries), ctx)

	attempt := 0
	return backoff.Retry(func() error {
		attempt++
		if err := c.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(fmt.Errorf("mirror node throttle: %w", err))
		}

		reqCtx := ctx
		if c.timeout > 0 {
			var cancel context.CancelFunc
			reqCtx, cancel = context.WithTimeout(ctx, c.timeout)
			defer cancel()
		}
		req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("build mirror request: %w", err))
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			c.log.Warn().Err(err).Str("path", path).Int("attempt", attempt).Msg("mirror node request failed")
			return fmt.Errorf("mirror node request: %w", err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return backoff.Permanent(errNotFound)
		case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
			c.log.Warn().Int("status", resp.StatusCode).Str("path", path).Int("attempt", attempt).Msg("mirror node unavailable")
			return fmt.Errorf("mirror node status %d", resp.StatusCode)
		case resp.StatusCode != http.StatusOK:
			return backoff.Permanent(fmt.Errorf("mirror node status %d", resp.StatusCode))
		}

		if out == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return backoff.Permanent(fmt.Errorf("decode mirror response: %w", err))
		}
		return nil
	}, policy)
}

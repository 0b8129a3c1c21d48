// Package signer bridges the relay to a custodial signing service over HTTP.
package signer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"dlt-orchestrator/config"
	"dlt-orchestrator/internal/core/domain"
)

// APIKeyHeader authenticates the engine to the bridge.
const APIKeyHeader = "X-API-Key"

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type signRequest struct {
	AccountID           string `json:"account_id"`
	UnsignedTransaction []byte `json:"unsigned_transaction"`
}

// HTTPSigner implements ports.Signer. A sign call may submit a transaction,
// so it is never retried; the caller's ctx bounds how long it may take.
type HTTPSigner struct {
	url    string
	apiKey string
	http   HTTPClient
}

// NewHTTPSigner creates a signer for the bridge described by cfg.
func NewHTTPSigner(cfg config.SignerConfig, client HTTPClient) *HTTPSigner {
	if client == nil {
		client = &http.Client{}
	}
	return &HTTPSigner{
		url:    strings.TrimRight(cfg.URL, "/") + "/v1/sign",
		apiKey: cfg.APIKey,
		http:   client,
	}
}

func (s *HTTPSigner) Sign(ctx context.Context, accountID string, unsigned []byte) (domain.Outcome, error) {
	body, err := json.Marshal(signRequest{AccountID: accountID, UnsignedTransaction: unsigned})
	if err != nil {
		return domain.Outcome{}, fmt.Errorf("encode sign request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return domain.Outcome{}, fmt.Errorf("build sign request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set(APIKeyHeader, s.apiKey)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return domain.Outcome{}, fmt.Errorf("signer bridge: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.Outcome{}, fmt.Errorf("signer bridge status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out domain.Outcome
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return domain.Outcome{}, fmt.Errorf("decode sign response: %w", err)
	}
	if !out.Cancelled && out.TransactionID == "" {
		return domain.Outcome{}, fmt.Errorf("signer bridge returned neither a transaction id nor a cancellation")
	}
	return out, nil
}

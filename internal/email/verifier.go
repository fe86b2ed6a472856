package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// VerifierResult is one entry of the batch verification API response.
type VerifierResult struct {
	Email       string          `json:"email"`
	Status      string          `json:"status"`
	Score       int             `json:"score"`
	Validations map[string]bool `json:"validations"`
}

type verifyRequest struct {
	Emails []string `json:"emails"`
}

type verifyResponse struct {
	Results []VerifierResult `json:"results"`
}

// BatchVerifier calls the external email scoring API. Any failure mode
// (non-200, timeout, malformed JSON) surfaces as an error so the caller
// can fall back to local validation.
type BatchVerifier struct {
	url        string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewBatchVerifier builds a verifier client for the given endpoint.
func NewBatchVerifier(url string, timeout time.Duration, logger *zap.Logger) *BatchVerifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BatchVerifier{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Verify submits all addresses as one grouped request and returns results
// keyed by address. Addresses missing from the response are simply absent
// from the map.
func (b *BatchVerifier) Verify(ctx context.Context, addrs []string) (map[string]VerifierResult, error) {
	body, err := json.Marshal(verifyRequest{Emails: addrs})
	if err != nil {
		return nil, fmt.Errorf("marshal verify request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build verify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("verify request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("verifier returned status %d", resp.StatusCode)
	}

	var parsed verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode verify response: %w", err)
	}

	byEmail := make(map[string]VerifierResult, len(parsed.Results))
	for _, r := range parsed.Results {
		byEmail[r.Email] = r
	}
	b.logger.Debug("batch verification completed",
		zap.Int("requested", len(addrs)),
		zap.Int("returned", len(byEmail)))
	return byEmail, nil
}

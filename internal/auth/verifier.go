package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"audiosummarizer/internal/config"
)

const verifyTimeout = 10 * time.Second

// ErrInvalidToken reports a credential the identity provider rejected
// (missing, malformed, expired, or unknown).
var ErrInvalidToken = errors.New("invalid or expired token")

// TokenVerifier validates a caller's bearer token and returns the user id it
// belongs to. The verification itself is delegated to the external identity
// provider; nothing is cached locally.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// httpVerifier calls the identity provider's accounts:lookup endpoint.
type httpVerifier struct {
	verifyURL  string
	apiKey     string
	httpClient *http.Client
}

// NewHTTPVerifier creates a TokenVerifier backed by the configured identity
// provider endpoint.
func NewHTTPVerifier(cfg config.AuthConfig) TokenVerifier {
	return &httpVerifier{
		verifyURL:  cfg.VerifyURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: verifyTimeout},
	}
}

type lookupRequest struct {
	IDToken string `json:"idToken"`
}

type lookupResponse struct {
	Users []struct {
		LocalID string `json:"localId"`
	} `json:"users"`
}

// Verify posts the token to the provider and extracts the subject user id.
// Any non-OK provider response maps to ErrInvalidToken; transport failures
// are returned as-is so callers can distinguish outages from bad credentials.
func (v *httpVerifier) Verify(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrInvalidToken
	}

	body, err := json.Marshal(lookupRequest{IDToken: token})
	if err != nil {
		return "", fmt.Errorf("encode verify request: %w", err)
	}

	endpoint := v.verifyURL
	if v.apiKey != "" {
		endpoint += "?key=" + url.QueryEscape(v.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build verify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("identity provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: provider returned status %d", ErrInvalidToken, resp.StatusCode)
	}

	var out lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode verify response: %w", err)
	}
	if len(out.Users) == 0 || out.Users[0].LocalID == "" {
		return "", fmt.Errorf("%w: no matching account", ErrInvalidToken)
	}

	return out.Users[0].LocalID, nil
}

package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"audiosummarizer/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPVerifier_Verify(t *testing.T) {
	ctx := context.Background()

	newServer := func(handler http.HandlerFunc) (*httptest.Server, TokenVerifier) {
		srv := httptest.NewServer(handler)
		v := NewHTTPVerifier(config.AuthConfig{VerifyURL: srv.URL, APIKey: "api-key"})
		return srv, v
	}

	t.Run("valid token returns user id", func(t *testing.T) {
		srv, v := newServer(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "api-key", r.URL.Query().Get("key"))

			var req lookupRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "good-token", req.IDToken)

			json.NewEncoder(w).Encode(map[string]any{
				"users": []map[string]string{{"localId": "user123"}},
			})
		})
		defer srv.Close()

		userID, err := v.Verify(ctx, "good-token")
		assert.NoError(t, err)
		assert.Equal(t, "user123", userID)
	})

	t.Run("empty token is rejected without a remote call", func(t *testing.T) {
		called := false
		srv, v := newServer(func(w http.ResponseWriter, r *http.Request) { called = true })
		defer srv.Close()

		_, err := v.Verify(ctx, "")
		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.False(t, called)
	})

	t.Run("provider rejection", func(t *testing.T) {
		srv, v := newServer(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"INVALID_ID_TOKEN"}`, http.StatusBadRequest)
		})
		defer srv.Close()

		_, err := v.Verify(ctx, "expired-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("no matching account", func(t *testing.T) {
		srv, v := newServer(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"users": []any{}})
		})
		defer srv.Close()

		_, err := v.Verify(ctx, "orphan-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("provider unreachable is not an auth error", func(t *testing.T) {
		srv, v := newServer(func(w http.ResponseWriter, r *http.Request) {})
		srv.Close() // connection refused from here on

		_, err := v.Verify(ctx, "token")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrInvalidToken)
	})
}

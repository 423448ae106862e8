package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/edukit-io/canvas-client/internal/auth"
	internalhttp "github.com/edukit-io/canvas-client/internal/http"
	"github.com/edukit-io/canvas-client/pkg/canvas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlowForServer(t *testing.T, serverURL string) (*auth.Flow, *canvas.ContextStore) {
	t.Helper()

	store := canvas.NewContextStore()
	require.NoError(t, store.SetBaseURL("", "https://canvas.test"))
	store.SetOAuthClient("", "client-id", "client-secret", "https://app.test/callback")

	flow := auth.NewFlow(store, "", auth.WithFlowHTTPClient(internalhttp.NewClient(serverURL, nil)))

	return flow, store
}

func TestFlow_AuthorizationURL(t *testing.T) {
	t.Parallel()
	t.Run("builds full URL", func(t *testing.T) {
		t.Parallel()

		flow, _ := newFlowForServer(t, "http://unused.test")

		rawURL, err := flow.AuthorizationURL(auth.AuthorizeOptions{
			State:      "state-123",
			Scopes:     []string{"url:GET|/api/v1/courses", "url:GET|/api/v1/users"},
			ForceLogin: true,
		})
		require.NoError(t, err)

		parsed, err := url.Parse(rawURL)
		require.NoError(t, err)
		assert.Equal(t, "canvas.test", parsed.Host)
		assert.Equal(t, "/login/oauth2/auth", parsed.Path)
		assert.Equal(t, "client-id", parsed.Query().Get("client_id"))
		assert.Equal(t, "code", parsed.Query().Get("response_type"))
		assert.Equal(t, "https://app.test/callback", parsed.Query().Get("redirect_uri"))
		assert.Equal(t, "state-123", parsed.Query().Get("state"))
		assert.Equal(t, "url:GET|/api/v1/courses url:GET|/api/v1/users", parsed.Query().Get("scope"))
		assert.Equal(t, "1", parsed.Query().Get("force_login"))
	})

	t.Run("requires base URL", func(t *testing.T) {
		t.Parallel()

		store := canvas.NewContextStore()
		flow := auth.NewFlow(store, "")

		_, err := flow.AuthorizationURL(auth.AuthorizeOptions{})
		require.Error(t, err)

		var configErr *canvas.ConfigError
		require.ErrorAs(t, err, &configErr)
		assert.Equal(t, "base_url", configErr.Field)
	})

	t.Run("requires client ID", func(t *testing.T) {
		t.Parallel()

		store := canvas.NewContextStore()
		require.NoError(t, store.SetBaseURL("", "https://canvas.test"))
		flow := auth.NewFlow(store, "")

		_, err := flow.AuthorizationURL(auth.AuthorizeOptions{})
		require.Error(t, err)

		var configErr *canvas.ConfigError
		require.ErrorAs(t, err, &configErr)
		assert.Equal(t, "oauth_client_id", configErr.Field)
	})
}

func TestFlow_ExchangeCode(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/login/oauth2/token", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		assert.Equal(t, "client-id", r.PostForm.Get("client_id"))
		assert.Equal(t, "client-secret", r.PostForm.Get("client_secret"))
		assert.Equal(t, "auth-code", r.PostForm.Get("code"))

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token":  "access-1",
			"refresh_token": "refresh-1",
			"token_type":    "Bearer",
			"expires_in":    3600,
			"user":          map[string]interface{}{"id": 42, "name": "Test User"},
		})
	}))
	defer server.Close()

	flow, store := newFlowForServer(t, server.URL)

	set, err := flow.ExchangeCode(context.Background(), "auth-code", auth.ExchangeOptions{})
	require.NoError(t, err)
	assert.Equal(t, "access-1", set.AccessToken)
	assert.Equal(t, "refresh-1", set.RefreshToken)
	assert.Equal(t, 42, set.UserID)
	assert.Equal(t, "Test User", set.UserName)

	stored := store.Tokens("")
	assert.Equal(t, "access-1", stored.AccessToken)
	assert.Equal(t, "refresh-1", stored.RefreshToken)
	assert.False(t, store.IsOAuthTokenExpired(""))
}

func TestFlow_ExchangeCode_OptionsReachTokenEndpoint(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		assert.Equal(t, "1", r.PostForm.Get("replace_tokens"))
		assert.Equal(t, "sis_login_id:jdoe", r.PostForm.Get("as_user_id"))

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token":  "access-1",
			"refresh_token": "refresh-1",
			"token_type":    "Bearer",
			"expires_in":    3600,
		})
	}))
	defer server.Close()

	flow, _ := newFlowForServer(t, server.URL)

	_, err := flow.ExchangeCode(context.Background(), "auth-code", auth.ExchangeOptions{
		ReplaceTokens: true,
		Extra:         url.Values{"as_user_id": {"sis_login_id:jdoe"}},
	})
	require.NoError(t, err)
}

func TestFlow_Refresh(t *testing.T) {
	t.Parallel()
	t.Run("preserves refresh token", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "refresh_token", r.PostForm.Get("grant_type"))
			assert.Equal(t, "refresh-1", r.PostForm.Get("refresh_token"))

			// No refresh_token in the response, Canvas keeps the old one
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"access_token": "access-2",
				"token_type":   "Bearer",
				"expires_in":   3600,
			})
		}))
		defer server.Close()

		flow, store := newFlowForServer(t, server.URL)
		store.SetTokens("", canvas.TokenSet{
			AccessToken:  "access-1",
			RefreshToken: "refresh-1",
			ExpiresAt:    time.Now().Add(-time.Hour),
			UserID:       42,
			UserName:     "Test User",
		})

		require.NoError(t, flow.Refresh(context.Background()))

		stored := store.Tokens("")
		assert.Equal(t, "access-2", stored.AccessToken)
		assert.Equal(t, "refresh-1", stored.RefreshToken)
		assert.Equal(t, 42, stored.UserID)
		assert.False(t, store.IsOAuthTokenExpired(""))
	})

	t.Run("ignores refresh token in the response", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"access_token":  "access-2",
				"refresh_token": "refresh-2",
				"token_type":    "Bearer",
				"expires_in":    3600,
			})
		}))
		defer server.Close()

		flow, store := newFlowForServer(t, server.URL)
		store.SetTokens("", canvas.TokenSet{
			AccessToken:  "access-1",
			RefreshToken: "refresh-1",
			ExpiresAt:    time.Now().Add(-time.Hour),
		})

		require.NoError(t, flow.Refresh(context.Background()))

		stored := store.Tokens("")
		assert.Equal(t, "access-2", stored.AccessToken)
		assert.Equal(t, "refresh-1", stored.RefreshToken)
	})

	t.Run("requires a refresh token", func(t *testing.T) {
		t.Parallel()

		flow, _ := newFlowForServer(t, "http://unused.test")

		err := flow.Refresh(context.Background())
		require.ErrorIs(t, err, canvas.ErrNoRefreshToken)
	})

	t.Run("failure is reported as token refresh error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_grant"})
		}))
		defer server.Close()

		flow, store := newFlowForServer(t, server.URL)
		store.SetTokens("", canvas.TokenSet{
			AccessToken:  "access-1",
			RefreshToken: "refresh-1",
		})

		err := flow.Refresh(context.Background())
		require.ErrorIs(t, err, canvas.ErrTokenRefresh)
	})
}

func TestFlow_Revoke(t *testing.T) {
	t.Parallel()
	t.Run("clears tokens and returns forward URL", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "DELETE", r.Method)
			assert.Equal(t, "/login/oauth2/token", r.URL.Path)
			assert.Equal(t, "Bearer access-1", r.Header.Get("Authorization"))
			assert.Equal(t, "1", r.URL.Query().Get("expire_sessions"))

			_ = json.NewEncoder(w).Encode(map[string]string{
				"forward_url": "https://canvas.test/logout",
			})
		}))
		defer server.Close()

		flow, store := newFlowForServer(t, server.URL)
		store.SetTokens("", canvas.TokenSet{AccessToken: "access-1", RefreshToken: "refresh-1"})

		resp, err := flow.Revoke(context.Background(), true)
		require.NoError(t, err)
		assert.Equal(t, "https://canvas.test/logout", resp.ForwardURL)

		stored := store.Tokens("")
		assert.Empty(t, stored.AccessToken)
		assert.Empty(t, stored.RefreshToken)
	})

	t.Run("requires an access token", func(t *testing.T) {
		t.Parallel()

		flow, _ := newFlowForServer(t, "http://unused.test")

		_, err := flow.Revoke(context.Background(), false)
		require.ErrorIs(t, err, canvas.ErrNoAccessToken)
	})

	t.Run("keeps tokens when Canvas rejects the call", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"errors": []map[string]string{{"message": "Invalid access token."}},
			})
		}))
		defer server.Close()

		flow, store := newFlowForServer(t, server.URL)
		store.SetTokens("", canvas.TokenSet{AccessToken: "stale-token"})

		_, err := flow.Revoke(context.Background(), false)
		require.Error(t, err)
		assert.True(t, canvas.IsUnauthorized(err))
		assert.Equal(t, "stale-token", store.Tokens("").AccessToken)
	})
}

func TestFlow_SessionToken(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/login/session_token", r.URL.Path)
		assert.Equal(t, "Bearer access-1", r.Header.Get("Authorization"))

		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		assert.Equal(t, "https://canvas.test/courses/1", body["return_to"])

		_ = json.NewEncoder(w).Encode(map[string]string{
			"session_url": "https://canvas.test/opaque-session",
		})
	}))
	defer server.Close()

	flow, store := newFlowForServer(t, server.URL)
	store.SetTokens("", canvas.TokenSet{AccessToken: "access-1"})

	sessionURL, err := flow.SessionToken(context.Background(), "https://canvas.test/courses/1")
	require.NoError(t, err)
	assert.Equal(t, "https://canvas.test/opaque-session", sessionURL)
}

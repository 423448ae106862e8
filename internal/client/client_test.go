package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edukit-io/canvas-client/pkg/canvas"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("requires base URL", func(t *testing.T) {
		t.Parallel()

		store := canvas.NewContextStore()
		store.SetAPIKey("", "key")

		_, err := New(context.Background(), store, "", nil)
		require.ErrorIs(t, err, ErrBaseURLRequired)
	})

	t.Run("requires credentials", func(t *testing.T) {
		t.Parallel()

		store := canvas.NewContextStore()
		require.NoError(t, store.SetBaseURL("", "https://canvas.example.com"))

		_, err := New(context.Background(), store, "", nil)
		require.ErrorIs(t, err, ErrNoCredentialsConfigured)
	})

	t.Run("creates client with API key", func(t *testing.T) {
		t.Parallel()

		store := canvas.NewContextStore()
		store.SetAPIKey("", "test-key")
		require.NoError(t, store.SetBaseURL("", "https://canvas.example.com"))

		client, err := New(context.Background(), store, "", nil)
		require.NoError(t, err)

		token, err := client.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "test-key", token)
	})

	t.Run("creates client with OAuth tokens", func(t *testing.T) {
		t.Parallel()

		store := canvas.NewContextStore()
		require.NoError(t, store.SetBaseURL("", "https://canvas.example.com"))
		store.UseOAuth("")
		store.SetTokens("", canvas.TokenSet{
			AccessToken: "oauth-access",
			ExpiresAt:   time.Now().Add(time.Hour),
		})

		client, err := New(context.Background(), store, "", nil)
		require.NoError(t, err)

		token, err := client.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "oauth-access", token)
	})

	t.Run("OAuth mode without tokens is rejected", func(t *testing.T) {
		t.Parallel()

		store := canvas.NewContextStore()
		require.NoError(t, store.SetBaseURL("", "https://canvas.example.com"))
		store.UseOAuth("")

		_, err := New(context.Background(), store, "", nil)
		require.ErrorIs(t, err, ErrNoCredentialsConfigured)
	})

	t.Run("named context", func(t *testing.T) {
		t.Parallel()

		store := canvas.NewContextStore()
		store.SetAPIKey("staging", "staging-key")
		require.NoError(t, store.SetBaseURL("staging", "https://staging.example.com"))

		client, err := New(context.Background(), store, "staging", nil)
		require.NoError(t, err)

		token, err := client.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "staging-key", token)
	})
}

func TestClient_ResourceAccessors(t *testing.T) {
	t.Parallel()

	client := NewTestClient(t, "https://canvas.example.com")

	assert.NotNil(t, client.Accounts())
	assert.NotNil(t, client.Courses())
	assert.NotNil(t, client.Users())
	assert.NotNil(t, client.Enrollments())
	assert.NotNil(t, client.Outcomes())
	assert.NotNil(t, client.Announcements())
	assert.NotNil(t, client.FeatureFlags())
	assert.NotNil(t, client.Modules())
	assert.NotNil(t, client.Tabs())
	assert.NotNil(t, client.Conferences())
	assert.NotNil(t, client.DeveloperKeys())
	assert.NotNil(t, client.Bookmarks())
	assert.NotNil(t, client.Conversations())
	assert.NotNil(t, client.ContentMigrations())
	assert.NotNil(t, client.QuizSubmissions())
	assert.NotNil(t, client.SubmissionComments())
}

func TestSession_APIPath(t *testing.T) {
	t.Parallel()

	t.Run("default version", func(t *testing.T) {
		t.Parallel()

		client := NewTestClient(t, "https://canvas.example.com")
		assert.Equal(t, "/api/v1/courses/7", client.session.apiPath("courses", "7"))
	})

	t.Run("custom version", func(t *testing.T) {
		t.Parallel()

		store := canvas.NewContextStore()
		store.SetAPIKey("", "key")
		store.SetAPIVersion("", "v2")
		require.NoError(t, store.SetBaseURL("", "https://canvas.example.com"))

		client := NewTestClientWithStore(t, store)
		assert.Equal(t, "/api/v2/courses/7", client.session.apiPath("courses", "7"))
	})
}

func TestNewWithTokenManager(t *testing.T) {
	t.Parallel()

	store := canvas.NewContextStore()
	require.NoError(t, store.SetBaseURL("", "https://canvas.example.com"))

	client, err := NewWithTokenManager(store, "", &staticTokenManager{token: "custom"}, nil)
	require.NoError(t, err)

	token, err := client.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "custom", token)
}

func TestContextTokenManager_RefreshesExpiredToken(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/login/oauth2/token", request.URL.Path)

		require.NoError(t, request.ParseForm())
		assert.Equal(t, "refresh_token", request.PostForm.Get("grant_type"))
		assert.Equal(t, "old-refresh", request.PostForm.Get("refresh_token"))

		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{"access_token":"fresh-access","token_type":"Bearer","expires_in":3600}`))
	}))
	defer server.Close()

	store := canvas.NewContextStore()
	require.NoError(t, store.SetBaseURL("", server.URL))
	store.UseOAuth("")
	store.SetOAuthClient("", "client-id", "client-secret", "")
	store.SetTokens("", canvas.TokenSet{
		AccessToken:  "stale-access",
		RefreshToken: "old-refresh",
		ExpiresAt:    time.Now().Add(-time.Minute),
	})

	client, err := New(context.Background(), store, "", nil)
	require.NoError(t, err)

	token, err := client.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fresh-access", token)
	assert.Equal(t, "fresh-access", store.Tokens("").AccessToken)
}

func TestNew_WithCacheAndInterceptors(t *testing.T) {
	t.Parallel()

	var (
		serverHits  int
		seenTraceID string
	)

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		serverHits++
		seenTraceID = request.Header.Get("X-Trace-ID")
		_, _ = writer.Write([]byte(`{"id": 7, "name": "Biology 101"}`))
	}))
	defer server.Close()

	store := canvas.NewContextStore()
	store.SetAPIKey("", "test-key")
	require.NoError(t, store.SetBaseURL("", server.URL))

	chain := canvas.NewInterceptorChain()
	chain.AddRequestInterceptor(canvas.HeaderInterceptor(map[string]string{"X-Trace-ID": "trace-42"}))

	client, err := New(context.Background(), store, "", &Options{
		Interceptors: chain,
		CacheConfig: &canvas.CacheConfig{
			Type:   canvas.CacheTypeMemory,
			Memory: &canvas.MemoryCacheConfig{MaxSize: 100},
		},
		CacheTTL: time.Minute,
	})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		course, err := client.Courses().Find(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, "Biology 101", course.Name)
	}

	assert.Equal(t, 1, serverHits)
	assert.Equal(t, "trace-42", seenTraceID)
}

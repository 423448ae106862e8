// Package canvasclient provides the main entry point for creating Canvas API clients
package canvasclient

import (
	"context"
	"fmt"
	"time"

	"github.com/edukit-io/canvas-client/internal/client"
	"github.com/edukit-io/canvas-client/pkg/canvas"
)

// Client is a Canvas API client bound to one configuration context. Resource
// clients are reached through accessor methods, for example Courses() or
// Users().
type Client = client.Client

// Options tune client construction beyond what the context store carries.
type Options = client.Options

// Aliases for the per-resource clients so callers can name them without
// reaching into internal packages.
type (
	AccountsClient           = client.AccountsClient
	CoursesClient            = client.CoursesClient
	UsersClient              = client.UsersClient
	EnrollmentsClient        = client.EnrollmentsClient
	OutcomesClient           = client.OutcomesClient
	AnnouncementsClient      = client.AnnouncementsClient
	FeatureFlagsClient       = client.FeatureFlagsClient
	ModulesClient            = client.ModulesClient
	TabsClient               = client.TabsClient
	ConferencesClient        = client.ConferencesClient
	DeveloperKeysClient      = client.DeveloperKeysClient
	BookmarksClient          = client.BookmarksClient
	ConversationsClient      = client.ConversationsClient
	ContentMigrationsClient  = client.ContentMigrationsClient
	QuizSubmissionsClient    = client.QuizSubmissionsClient
	SubmissionCommentsClient = client.SubmissionCommentsClient
)

// New creates a Canvas API client from the named context of the store. An
// empty contextName targets the store's current context.
func New(ctx context.Context, store *canvas.ContextStore, contextName string, opts *Options) (*Client, error) {
	if store == nil {
		return nil, canvas.ErrStoreRequired
	}

	apiClient, err := client.New(ctx, store, contextName, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return apiClient, nil
}

// NewWithAPIKey creates a client for a single base URL and API key without an
// externally managed context store.
func NewWithAPIKey(ctx context.Context, baseURL, apiKey string) (*Client, error) {
	store := canvas.NewContextStore()

	if err := store.SetBaseURL("", baseURL); err != nil {
		return nil, fmt.Errorf("setting base URL: %w", err)
	}

	store.SetAPIKey("", apiKey)

	return New(ctx, store, "", nil)
}

// NewWithOAuthTokens creates a client from previously obtained OAuth tokens.
// The client ID and secret are required for automatic refresh; pass empty
// strings to use the access token until it expires.
func NewWithOAuthTokens(ctx context.Context, baseURL, clientID, clientSecret string, tokens canvas.TokenSet) (*Client, error) {
	store := canvas.NewContextStore()

	if err := store.SetBaseURL("", baseURL); err != nil {
		return nil, fmt.Errorf("setting base URL: %w", err)
	}

	store.UseOAuth("")
	store.SetOAuthClient("", clientID, clientSecret, "")
	store.SetTokens("", tokens)

	return New(ctx, store, "", nil)
}

// NewFromEnvironment creates a client from CANVAS_* environment variables.
func NewFromEnvironment(ctx context.Context) (*Client, error) {
	store := canvas.NewContextStore()

	if err := store.AutoDetect(""); err != nil {
		return nil, fmt.Errorf("detecting environment configuration: %w", err)
	}

	if err := store.Validate(); err != nil {
		return nil, fmt.Errorf("validating environment configuration: %w", err)
	}

	return New(ctx, store, "", nil)
}

// NewWithTimeout is a convenience wrapper that applies a request timeout on
// top of NewWithAPIKey.
func NewWithTimeout(ctx context.Context, baseURL, apiKey string, timeout time.Duration) (*Client, error) {
	store := canvas.NewContextStore()

	if err := store.SetBaseURL("", baseURL); err != nil {
		return nil, fmt.Errorf("setting base URL: %w", err)
	}

	store.SetAPIKey("", apiKey)
	store.SetTimeout("", timeout)

	return New(ctx, store, "", nil)
}

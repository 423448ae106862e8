// Package client implements the Canvas API client and its per-resource
// sub-clients.
package client

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/edukit-io/canvas-client/internal/auth"
	internalhttp "github.com/edukit-io/canvas-client/internal/http"
	"github.com/edukit-io/canvas-client/pkg/canvas"
)

// Static errors for err113 compliance.
var (
	ErrBaseURLRequired          = errors.New("base URL is required")
	ErrNoTokenManagerConfigured = errors.New("no token manager configured")
	ErrNoCredentialsConfigured  = errors.New("no API key or OAuth tokens configured")
)

// session is the shared state every resource client operates through: the
// transport plus the configuration context it was built from.
type session struct {
	http        *internalhttp.Client
	store       *canvas.ContextStore
	contextName string
}

// apiPath joins path segments under the context's API version prefix.
func (s *session) apiPath(segments ...string) string {
	return "/api/" + s.store.APIVersion(s.contextName) + "/" + strings.Join(segments, "/")
}

// accountID returns the context's configured account ID.
func (s *session) accountID() int {
	return s.store.AccountID(s.contextName)
}

// Client is a Canvas API client bound to one configuration context.
type Client struct {
	session      *session
	tokenManager internalhttp.TokenManager
	logger       canvas.Logger

	accounts           *AccountsClient
	courses            *CoursesClient
	users              *UsersClient
	enrollments        *EnrollmentsClient
	outcomes           *OutcomesClient
	announcements      *AnnouncementsClient
	featureFlags       *FeatureFlagsClient
	modules            *ModulesClient
	tabs               *TabsClient
	conferences        *ConferencesClient
	developerKeys      *DeveloperKeysClient
	bookmarks          *BookmarksClient
	conversations      *ConversationsClient
	contentMigrations  *ContentMigrationsClient
	quizSubmissions    *QuizSubmissionsClient
	submissionComments *SubmissionCommentsClient
}

// Options tune client construction beyond what the context store carries.
type Options struct {
	Logger       canvas.Logger
	Debug        bool
	UserAgent    string
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration

	// TokenPersister, when set, receives refreshed OAuth tokens so they
	// outlive the process. Only consulted in OAuth mode.
	TokenPersister auth.ConfigPersister

	// Interceptors run around every request issued by the client.
	Interceptors *canvas.InterceptorChain

	// CacheConfig enables response caching for eligible GET requests.
	// CacheTTL bounds each entry's lifetime; zero uses the default.
	CacheConfig *canvas.CacheConfig
	CacheTTL    time.Duration
}

// New creates a Canvas API client from the named context of the store. An
// empty name targets the current context.
func New(ctx context.Context, store *canvas.ContextStore, contextName string, opts *Options) (*Client, error) {
	baseURL := store.BaseURL(contextName)
	if baseURL == "" {
		return nil, ErrBaseURLRequired
	}

	tokenManager, err := createTokenManager(store, contextName, opts)
	if err != nil {
		return nil, err
	}

	httpOpts := []internalhttp.Option{
		internalhttp.WithTimeout(store.Timeout(contextName)),
	}

	var logger canvas.Logger

	if opts != nil {
		logger = opts.Logger

		extraOpts, err := createHTTPClientOptions(opts)
		if err != nil {
			return nil, err
		}

		httpOpts = append(httpOpts, extraOpts...)
	}

	client := &Client{
		session: &session{
			http:        internalhttp.NewClient(baseURL, tokenManager, httpOpts...),
			store:       store,
			contextName: contextName,
		},
		tokenManager: tokenManager,
		logger:       logger,
	}

	client.initializeResourceClients()

	return client, nil
}

// NewWithTokenManager creates a client with a caller-supplied token manager.
func NewWithTokenManager(store *canvas.ContextStore, contextName string, tokenManager internalhttp.TokenManager, opts *Options) (*Client, error) {
	baseURL := store.BaseURL(contextName)
	if baseURL == "" {
		return nil, ErrBaseURLRequired
	}

	httpOpts := []internalhttp.Option{
		internalhttp.WithTimeout(store.Timeout(contextName)),
	}

	var logger canvas.Logger

	if opts != nil {
		logger = opts.Logger

		extraOpts, err := createHTTPClientOptions(opts)
		if err != nil {
			return nil, err
		}

		httpOpts = append(httpOpts, extraOpts...)
	}

	client := &Client{
		session: &session{
			http:        internalhttp.NewClient(baseURL, tokenManager, httpOpts...),
			store:       store,
			contextName: contextName,
		},
		tokenManager: tokenManager,
		logger:       logger,
	}

	client.initializeResourceClients()

	return client, nil
}

// createTokenManager selects the token source from the context's auth mode.
func createTokenManager(store *canvas.ContextStore, contextName string, opts *Options) (internalhttp.TokenManager, error) {
	if store.Mode(contextName) == canvas.AuthModeAPIKey {
		key := store.APIKey(contextName)
		if key == "" {
			return nil, ErrNoCredentialsConfigured
		}

		return &staticTokenManager{token: key}, nil
	}

	tokens := store.Tokens(contextName)
	if tokens.AccessToken == "" && tokens.RefreshToken == "" {
		return nil, ErrNoCredentialsConfigured
	}

	if opts != nil && opts.TokenPersister != nil {
		oauthConfig := auth.NewCanvasOAuth2Config(
			store.BaseURL(contextName),
			store.OAuthClientID(contextName),
			store.OAuthClientSecret(contextName),
			store.OAuthRedirectURI(contextName),
		)
		oauthConfig.AccessToken = tokens.AccessToken
		oauthConfig.RefreshToken = tokens.RefreshToken

		return auth.NewConfigTokenManager(oauthConfig, opts.TokenPersister, contextName, tokens.AccessToken, tokens.ExpiresAt), nil
	}

	return &contextTokenManager{
		store:       store,
		contextName: contextName,
		flow:        auth.NewFlow(store, contextName),
	}, nil
}

// createHTTPClientOptions builds HTTP client options from Options.
func createHTTPClientOptions(opts *Options) ([]internalhttp.Option, error) {
	var httpOpts []internalhttp.Option

	if opts.Logger != nil {
		httpOpts = append(httpOpts, internalhttp.WithLogger(opts.Logger))
	}

	if opts.Debug {
		httpOpts = append(httpOpts, internalhttp.WithDebug(true))
	}

	if opts.UserAgent != "" {
		httpOpts = append(httpOpts, internalhttp.WithUserAgent(opts.UserAgent))
	}

	if opts.RetryMax > 0 {
		retryWaitMin := 1 * time.Second
		retryWaitMax := 10 * time.Second

		if opts.RetryWaitMin > 0 {
			retryWaitMin = opts.RetryWaitMin
		}

		if opts.RetryWaitMax > 0 {
			retryWaitMax = opts.RetryWaitMax
		}

		httpOpts = append(httpOpts, internalhttp.WithRetryConfig(opts.RetryMax, retryWaitMin, retryWaitMax))
	}

	if opts.Interceptors != nil {
		httpOpts = append(httpOpts, internalhttp.WithInterceptors(opts.Interceptors))
	}

	if opts.CacheConfig != nil {
		cache, err := canvas.NewCacheFromConfig(opts.CacheConfig)
		if err != nil {
			return nil, fmt.Errorf("building cache: %w", err)
		}

		manager := canvas.NewCacheManager(cache, opts.CacheConfig.Policy)
		httpOpts = append(httpOpts, internalhttp.WithCache(manager, opts.CacheTTL))
	}

	return httpOpts, nil
}

// GetToken returns the current access token from the token manager.
func (c *Client) GetToken(ctx context.Context) (string, error) {
	if c.tokenManager == nil {
		return "", ErrNoTokenManagerConfigured
	}

	token, err := c.tokenManager.GetToken(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get token: %w", err)
	}

	return token, nil
}

// Resource client accessors

func (c *Client) Accounts() *AccountsClient {
	return c.accounts
}

func (c *Client) Courses() *CoursesClient {
	return c.courses
}

func (c *Client) Users() *UsersClient {
	return c.users
}

func (c *Client) Enrollments() *EnrollmentsClient {
	return c.enrollments
}

func (c *Client) Outcomes() *OutcomesClient {
	return c.outcomes
}

func (c *Client) Announcements() *AnnouncementsClient {
	return c.announcements
}

func (c *Client) FeatureFlags() *FeatureFlagsClient {
	return c.featureFlags
}

func (c *Client) Modules() *ModulesClient {
	return c.modules
}

func (c *Client) Tabs() *TabsClient {
	return c.tabs
}

func (c *Client) Conferences() *ConferencesClient {
	return c.conferences
}

func (c *Client) DeveloperKeys() *DeveloperKeysClient {
	return c.developerKeys
}

func (c *Client) Bookmarks() *BookmarksClient {
	return c.bookmarks
}

func (c *Client) Conversations() *ConversationsClient {
	return c.conversations
}

func (c *Client) ContentMigrations() *ContentMigrationsClient {
	return c.contentMigrations
}

func (c *Client) QuizSubmissions() *QuizSubmissionsClient {
	return c.quizSubmissions
}

func (c *Client) SubmissionComments() *SubmissionCommentsClient {
	return c.submissionComments
}

// initializeResourceClients initializes all resource-specific clients.
func (c *Client) initializeResourceClients() {
	c.accounts = NewAccountsClient(c.session)
	c.courses = NewCoursesClient(c.session)
	c.users = NewUsersClient(c.session)
	c.enrollments = NewEnrollmentsClient(c.session)
	c.outcomes = NewOutcomesClient(c.session)
	c.announcements = NewAnnouncementsClient(c.session)
	c.featureFlags = NewFeatureFlagsClient(c.session)
	c.modules = NewModulesClient(c.session)
	c.tabs = NewTabsClient(c.session)
	c.conferences = NewConferencesClient(c.session)
	c.developerKeys = NewDeveloperKeysClient(c.session)
	c.bookmarks = NewBookmarksClient(c.session)
	c.conversations = NewConversationsClient(c.session)
	c.contentMigrations = NewContentMigrationsClient(c.session)
	c.quizSubmissions = NewQuizSubmissionsClient(c.session)
	c.submissionComments = NewSubmissionCommentsClient(c.session)
}

// staticTokenManager serves a fixed API key as the bearer token.
type staticTokenManager struct {
	token string
}

func (m *staticTokenManager) GetToken(ctx context.Context) (string, error) {
	return m.token, nil
}

// contextTokenManager serves the context's OAuth access token, refreshing it
// through the OAuth flow when it is inside the expiry buffer.
type contextTokenManager struct {
	store       *canvas.ContextStore
	contextName string
	flow        *auth.Flow
}

func (m *contextTokenManager) GetToken(ctx context.Context) (string, error) {
	// A manually seeded token without an expiry reads as expired; only
	// attempt a refresh when a refresh token is actually present.
	if m.store.IsOAuthTokenExpired(m.contextName) && m.store.Tokens(m.contextName).RefreshToken != "" {
		if err := m.flow.Refresh(ctx); err != nil {
			return "", err
		}
	}

	tokens := m.store.Tokens(m.contextName)
	if tokens.AccessToken == "" {
		return "", canvas.ErrNoAccessToken
	}

	return tokens.AccessToken, nil
}

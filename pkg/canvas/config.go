package canvas

import (
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"
)

// AuthMode selects how outbound requests are authenticated.
type AuthMode string

const (
	// AuthModeAPIKey sends the context's API key as a Bearer token.
	AuthModeAPIKey AuthMode = "api_key"

	// AuthModeOAuth sends the context's OAuth access token as a Bearer token.
	AuthModeOAuth AuthMode = "oauth"
)

// DefaultContext is the context selected by a fresh store.
const DefaultContext = "default"

// Defaults applied to any field that was never set on a context.
const (
	DefaultAccountID  = 1
	DefaultAPIVersion = "v1"
	DefaultTimeout    = 30 * time.Second
)

// tokenExpiryBuffer is subtracted from the stored expiry instant, so a token
// reads as expired slightly before it actually is.
const tokenExpiryBuffer = 5 * time.Minute

// contextData holds the raw per-context values. Nil pointers mean "unset";
// accessors resolve them against the documented defaults.
type contextData struct {
	apiKey     *string
	baseURL    *string
	accountID  *int
	apiVersion *string
	timeout    *time.Duration
	authMode   *AuthMode

	oauthClientID     *string
	oauthClientSecret *string
	oauthRedirectURI  *string
	accessToken       *string
	refreshToken      *string
	tokenExpiresAt    *time.Time
	oauthUserID       *int
	oauthUserName     *string
	oauthScopes       []string

	middleware map[string]interface{}
}

// ContextStore is a keyed store of per-tenant configuration. One context is
// current at a time; accessors take a context name where the empty string
// selects the current context. All methods are safe for concurrent use.
type ContextStore struct {
	mu       sync.RWMutex
	contexts map[string]*contextData
	current  string
}

// NewContextStore creates a store with "default" as the current context.
func NewContextStore() *ContextStore {
	return &ContextStore{
		contexts: make(map[string]*contextData),
		current:  DefaultContext,
	}
}

// SetCurrent selects the current context. The context is created implicitly
// on first write; selecting a never-written name is allowed.
func (s *ContextStore) SetCurrent(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = name
}

// Current returns the current context name.
func (s *ContextStore) Current() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.current
}

// ContextNames returns every context name that has ever been written to.
func (s *ContextStore) ContextNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.contexts))
	for name := range s.contexts {
		names = append(names, name)
	}

	return names
}

// Reset clears every stored value for the named context. Subsequent reads
// return defaults.
func (s *ContextStore) Reset(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.contexts, s.resolveLocked(name))
}

// resolveLocked maps the empty name to the current context. Callers must hold
// at least the read lock.
func (s *ContextStore) resolveLocked(name string) string {
	if name == "" {
		return s.current
	}

	return name
}

// dataLocked returns the named context's data, creating it on first write
// access. Callers must hold the write lock.
func (s *ContextStore) dataLocked(name string) *contextData {
	resolved := s.resolveLocked(name)

	data, ok := s.contexts[resolved]
	if !ok {
		data = &contextData{}
		s.contexts[resolved] = data
	}

	return data
}

// readLocked returns the named context's data without creating it. Callers
// must hold at least the read lock.
func (s *ContextStore) readLocked(name string) *contextData {
	return s.contexts[s.resolveLocked(name)]
}

// SetAPIKey stores the API key for the named context ("" = current).
func (s *ContextStore) SetAPIKey(name, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dataLocked(name).apiKey = &key
}

// APIKey returns the context's API key, or "" when unset.
func (s *ContextStore) APIKey(name string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if data := s.readLocked(name); data != nil && data.apiKey != nil {
		return *data.apiKey
	}

	return ""
}

// SetBaseURL validates and stores the base URL for the named context. The URL
// must have a host and must use https unless the host is local (localhost,
// 127.0.0.1, or *.local). A valid URL is normalized to end in exactly one "/".
func (s *ContextStore) SetBaseURL(name, rawURL string) error {
	normalized, err := NormalizeBaseURL(rawURL)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.dataLocked(name).baseURL = &normalized

	return nil
}

// BaseURL returns the context's normalized base URL, or "" when unset.
func (s *ContextStore) BaseURL(name string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if data := s.readLocked(name); data != nil && data.baseURL != nil {
		return *data.baseURL
	}

	return ""
}

// SetAccountID stores the default account ID for the named context.
func (s *ContextStore) SetAccountID(name string, id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dataLocked(name).accountID = &id
}

// AccountID returns the context's account ID, defaulting to 1.
func (s *ContextStore) AccountID(name string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if data := s.readLocked(name); data != nil && data.accountID != nil {
		return *data.accountID
	}

	return DefaultAccountID
}

// SetAPIVersion stores the API version segment for the named context.
func (s *ContextStore) SetAPIVersion(name, version string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dataLocked(name).apiVersion = &version
}

// APIVersion returns the context's API version, defaulting to "v1".
func (s *ContextStore) APIVersion(name string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if data := s.readLocked(name); data != nil && data.apiVersion != nil {
		return *data.apiVersion
	}

	return DefaultAPIVersion
}

// SetTimeout stores the request timeout for the named context.
func (s *ContextStore) SetTimeout(name string, timeout time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dataLocked(name).timeout = &timeout
}

// Timeout returns the context's request timeout, defaulting to 30s.
func (s *ContextStore) Timeout(name string) time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if data := s.readLocked(name); data != nil && data.timeout != nil {
		return *data.timeout
	}

	return DefaultTimeout
}

// UseOAuth switches the named context to OAuth authentication.
func (s *ContextStore) UseOAuth(name string) {
	s.setAuthMode(name, AuthModeOAuth)
}

// UseAPIKey switches the named context to API-key authentication.
func (s *ContextStore) UseAPIKey(name string) {
	s.setAuthMode(name, AuthModeAPIKey)
}

func (s *ContextStore) setAuthMode(name string, mode AuthMode) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dataLocked(name).authMode = &mode
}

// Mode returns the context's auth mode, defaulting to api_key.
func (s *ContextStore) Mode(name string) AuthMode {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if data := s.readLocked(name); data != nil && data.authMode != nil {
		return *data.authMode
	}

	return AuthModeAPIKey
}

// SetOAuthClient stores the OAuth client credentials and redirect URI.
func (s *ContextStore) SetOAuthClient(name, clientID, clientSecret, redirectURI string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := s.dataLocked(name)
	data.oauthClientID = &clientID
	data.oauthClientSecret = &clientSecret
	data.oauthRedirectURI = &redirectURI
}

// OAuthClientID returns the context's OAuth client ID, or "" when unset.
func (s *ContextStore) OAuthClientID(name string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if data := s.readLocked(name); data != nil && data.oauthClientID != nil {
		return *data.oauthClientID
	}

	return ""
}

// OAuthClientSecret returns the context's OAuth client secret, or "" when unset.
func (s *ContextStore) OAuthClientSecret(name string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if data := s.readLocked(name); data != nil && data.oauthClientSecret != nil {
		return *data.oauthClientSecret
	}

	return ""
}

// OAuthRedirectURI returns the context's OAuth redirect URI, or "" when unset.
func (s *ContextStore) OAuthRedirectURI(name string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if data := s.readLocked(name); data != nil && data.oauthRedirectURI != nil {
		return *data.oauthRedirectURI
	}

	return ""
}

// TokenSet is the OAuth token material owned by one context.
type TokenSet struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	UserID       int
	UserName     string
	Scopes       []string
}

// SetTokens stores a full token set on the named context. Empty fields of the
// set overwrite stored values; callers that want to keep the existing refresh
// token (the refresh grant does not always issue a new one) should read it
// back first via Tokens.
func (s *ContextStore) SetTokens(name string, set TokenSet) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := s.dataLocked(name)
	data.accessToken = &set.AccessToken
	data.refreshToken = &set.RefreshToken
	data.tokenExpiresAt = &set.ExpiresAt
	data.oauthUserID = &set.UserID
	data.oauthUserName = &set.UserName
	data.oauthScopes = set.Scopes
}

// SetAccessToken updates only the access token and expiry, leaving the stored
// refresh token untouched.
func (s *ContextStore) SetAccessToken(name, token string, expiresAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := s.dataLocked(name)
	data.accessToken = &token
	data.tokenExpiresAt = &expiresAt
}

// Tokens returns the context's stored token set.
func (s *ContextStore) Tokens(name string) TokenSet {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set := TokenSet{}

	data := s.readLocked(name)
	if data == nil {
		return set
	}

	if data.accessToken != nil {
		set.AccessToken = *data.accessToken
	}

	if data.refreshToken != nil {
		set.RefreshToken = *data.refreshToken
	}

	if data.tokenExpiresAt != nil {
		set.ExpiresAt = *data.tokenExpiresAt
	}

	if data.oauthUserID != nil {
		set.UserID = *data.oauthUserID
	}

	if data.oauthUserName != nil {
		set.UserName = *data.oauthUserName
	}

	set.Scopes = data.oauthScopes

	return set
}

// IsOAuthTokenExpired reports whether the context's access token should be
// refreshed. A context with no stored expiry reads as expired. The expiry
// buffer makes a token read as expired 5 minutes early.
func (s *ContextStore) IsOAuthTokenExpired(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data := s.readLocked(name)
	if data == nil || data.tokenExpiresAt == nil {
		return true
	}

	return time.Until(*data.tokenExpiresAt) <= tokenExpiryBuffer
}

// ClearOAuthTokens removes the access token, refresh token, expiry, user
// identity, and scopes from the named context in one operation.
func (s *ContextStore) ClearOAuthTokens(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := s.readLocked(name)
	if data == nil {
		return
	}

	data.accessToken = nil
	data.refreshToken = nil
	data.tokenExpiresAt = nil
	data.oauthUserID = nil
	data.oauthUserName = nil
	data.oauthScopes = nil
}

// SetMiddlewareOption stores one middleware option on the named context.
func (s *ContextStore) SetMiddlewareOption(name, key string, value interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := s.dataLocked(name)
	if data.middleware == nil {
		data.middleware = make(map[string]interface{})
	}

	data.middleware[key] = value
}

// MiddlewareOptions returns a copy of the context's middleware options,
// defaulting to an empty map.
func (s *ContextStore) MiddlewareOptions(name string) map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	options := make(map[string]interface{})

	if data := s.readLocked(name); data != nil {
		for key, value := range data.middleware {
			options[key] = value
		}
	}

	return options
}

// Validate checks that the current context carries the fields every request
// needs. The returned error names the first missing field.
func (s *ContextStore) Validate() error {
	if s.APIKey("") == "" && s.Mode("") == AuthModeAPIKey {
		return &ConfigError{Field: "api_key"}
	}

	if s.BaseURL("") == "" {
		return &ConfigError{Field: "base_url"}
	}

	return nil
}

// DebugInfo is a safe-to-log snapshot of one context. The API key is masked
// to its last four characters and OAuth secrets are omitted entirely.
type DebugInfo struct {
	Context       string   `json:"context"        yaml:"context"`
	Current       string   `json:"current"        yaml:"current"`
	APIKey        string   `json:"api_key"        yaml:"api_key"`
	BaseURL       string   `json:"base_url"       yaml:"base_url"`
	AccountID     int      `json:"account_id"     yaml:"account_id"`
	AuthMode      AuthMode `json:"auth_mode"      yaml:"auth_mode"`
	KnownContexts []string `json:"known_contexts" yaml:"known_contexts"`
}

// Debug returns a masked snapshot of the named context for logging.
func (s *ContextStore) Debug(name string) DebugInfo {
	s.mu.RLock()
	resolved := s.resolveLocked(name)
	s.mu.RUnlock()

	return DebugInfo{
		Context:       resolved,
		Current:       s.Current(),
		APIKey:        maskKey(s.APIKey(name)),
		BaseURL:       s.BaseURL(name),
		AccountID:     s.AccountID(name),
		AuthMode:      s.Mode(name),
		KnownContexts: s.ContextNames(),
	}
}

const maskVisibleSuffix = 4

func maskKey(key string) string {
	if key == "" {
		return ""
	}

	if len(key) <= maskVisibleSuffix {
		return "***"
	}

	return "***" + key[len(key)-maskVisibleSuffix:]
}

// NormalizeBaseURL validates a base URL and normalizes it to end in exactly
// one trailing slash. http:// is only allowed for local hosts.
func NormalizeBaseURL(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidBaseURL, rawURL)
	}

	if parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return "", fmt.Errorf("%w: %q", ErrInvalidBaseURL, rawURL)
	}

	if parsed.Scheme == "http" && !isLocalHost(parsed.Hostname()) {
		return "", fmt.Errorf("%w: %q", ErrInsecureBaseURL, rawURL)
	}

	return strings.TrimRight(rawURL, "/") + "/", nil
}

func isLocalHost(hostname string) bool {
	return hostname == "localhost" ||
		hostname == "127.0.0.1" ||
		strings.HasSuffix(hostname, ".local")
}

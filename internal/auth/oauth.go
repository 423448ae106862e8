package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/edukit-io/canvas-client/internal/constants"
	"github.com/edukit-io/canvas-client/pkg/canvas"
)

// Static errors for err113 compliance.
var (
	ErrNoValidCredentials = errors.New("no valid credentials available")
	ErrNoAccessToken      = errors.New("no access token available")
)

// Canvas OAuth2 endpoint paths.
const (
	authPath         = "/login/oauth2/auth"
	tokenPath        = "/login/oauth2/token"
	sessionTokenPath = "/login/session_token"
)

// OAuth2Config holds OAuth2 client configuration for a Canvas instance.
type OAuth2Config struct {
	AuthURL         string
	TokenURL        string
	SessionTokenURL string
	ClientID        string
	ClientSecret    string
	RedirectURI     string
	Scopes          []string
	AccessToken     string
	RefreshToken    string
}

// NewCanvasOAuth2Config derives endpoint URLs from a Canvas base URL.
func NewCanvasOAuth2Config(baseURL, clientID, clientSecret, redirectURI string) *OAuth2Config {
	base := strings.TrimSuffix(baseURL, "/")

	return &OAuth2Config{
		AuthURL:         base + authPath,
		TokenURL:        base + tokenPath,
		SessionTokenURL: base + sessionTokenPath,
		ClientID:        clientID,
		ClientSecret:    clientSecret,
		RedirectURI:     redirectURI,
	}
}

// OAuth2TokenManager manages OAuth2 token lifecycle against Canvas.
type OAuth2TokenManager struct {
	config     *OAuth2Config
	store      *TokenStore
	httpClient *http.Client
	mu         sync.Mutex
}

// NewOAuth2TokenManager creates a token manager for the given configuration.
func NewOAuth2TokenManager(config *OAuth2Config) *OAuth2TokenManager {
	manager := &OAuth2TokenManager{
		config: config,
		store:  NewTokenStore(),
		httpClient: &http.Client{
			Timeout: constants.DefaultHTTPTimeout,
		},
	}

	if config.AccessToken != "" {
		manager.store.Set(&Token{
			AccessToken:  config.AccessToken,
			RefreshToken: config.RefreshToken,
			TokenType:    "bearer",
		})
	}

	return manager
}

// AuthorizationURL builds the URL a user visits to grant access.
func (m *OAuth2TokenManager) AuthorizationURL(state string) string {
	query := url.Values{}
	query.Set("client_id", m.config.ClientID)
	query.Set("response_type", "code")
	query.Set("redirect_uri", m.config.RedirectURI)

	if state != "" {
		query.Set("state", state)
	}

	if len(m.config.Scopes) > 0 {
		query.Set("scope", strings.Join(m.config.Scopes, " "))
	}

	return m.config.AuthURL + "?" + query.Encode()
}

// GetToken returns a valid access token, refreshing if necessary.
func (m *OAuth2TokenManager) GetToken(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	token := m.store.Get()
	if token.Valid() {
		return token.AccessToken, nil
	}

	refreshed, err := m.acquireToken(ctx, token)
	if err != nil {
		return "", err
	}

	m.store.Set(refreshed)

	return refreshed.AccessToken, nil
}

// RefreshToken forces a token refresh regardless of the current token's state.
func (m *OAuth2TokenManager) RefreshToken(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	refreshed, err := m.acquireToken(ctx, m.store.Get())
	if err != nil {
		return err
	}

	m.store.Set(refreshed)

	return nil
}

// SetToken manually sets the access token.
func (m *OAuth2TokenManager) SetToken(token string, expiresAt time.Time) {
	m.store.Set(&Token{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
	})
}

// ExchangeCode redeems an authorization code for a token.
func (m *OAuth2TokenManager) ExchangeCode(ctx context.Context, code string) (*Token, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("client_id", m.config.ClientID)
	form.Set("client_secret", m.config.ClientSecret)
	form.Set("redirect_uri", m.config.RedirectURI)
	form.Set("code", code)

	token, err := m.requestToken(ctx, form, false)
	if err != nil {
		return nil, err
	}

	m.store.Set(token)

	return token, nil
}

// Revoke invalidates the current access token at Canvas and clears the store.
func (m *OAuth2TokenManager) Revoke(ctx context.Context) error {
	token := m.store.Get()
	if token == nil || token.AccessToken == "" {
		return ErrNoAccessToken
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, m.config.TokenURL, nil)
	if err != nil {
		return fmt.Errorf("creating revoke request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token.AccessToken)

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("revoking token: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)

		return canvas.ParseAPIError(resp.StatusCode, body)
	}

	m.store.Clear()

	return nil
}

// SessionToken asks Canvas for a short-lived web session URL tied to the
// current access token.
func (m *OAuth2TokenManager) SessionToken(ctx context.Context) (string, error) {
	token := m.store.Get()
	if token == nil || token.AccessToken == "" {
		return "", ErrNoAccessToken
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.config.SessionTokenURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating session token request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token.AccessToken)

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("requesting session token: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading session token response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return "", canvas.ParseAPIError(resp.StatusCode, body)
	}

	var result struct {
		SessionURL string `json:"session_url"`
	}

	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("parsing session token response: %w", err)
	}

	return result.SessionURL, nil
}

// acquireToken obtains a fresh token using whatever credentials are configured.
// A refresh failure is reported as ErrTokenRefresh so callers can treat every
// refresh problem uniformly.
func (m *OAuth2TokenManager) acquireToken(ctx context.Context, current *Token) (*Token, error) {
	refreshToken := m.config.RefreshToken
	if current != nil && current.RefreshToken != "" {
		refreshToken = current.RefreshToken
	}

	if refreshToken != "" {
		form := url.Values{}
		form.Set("grant_type", "refresh_token")
		form.Set("client_id", m.config.ClientID)
		form.Set("client_secret", m.config.ClientSecret)
		form.Set("refresh_token", refreshToken)

		token, err := m.requestToken(ctx, form, false)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", canvas.ErrTokenRefresh, err)
		}

		// Canvas omits the refresh token from refresh responses
		if token.RefreshToken == "" {
			token.RefreshToken = refreshToken
		}

		return token, nil
	}

	if m.config.ClientID != "" && m.config.ClientSecret != "" {
		form := url.Values{}
		form.Set("grant_type", "client_credentials")

		return m.requestToken(ctx, form, true)
	}

	return nil, ErrNoValidCredentials
}

// requestToken posts a grant request to the token endpoint.
func (m *OAuth2TokenManager) requestToken(ctx context.Context, form url.Values, basicAuth bool) (*Token, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.config.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating token request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	if basicAuth {
		req.SetBasicAuth(m.config.ClientID, m.config.ClientSecret)
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting token: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading token response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var oauthErr struct {
			Error            string `json:"error"`
			ErrorDescription string `json:"error_description"`
		}

		if jsonErr := json.Unmarshal(body, &oauthErr); jsonErr == nil && oauthErr.Error != "" {
			//nolint:err113 // The OAuth provider's error code and description are dynamic
			return nil, fmt.Errorf("token request failed: %s: %s", oauthErr.Error, oauthErr.ErrorDescription)
		}

		return nil, canvas.ParseAPIError(resp.StatusCode, body)
	}

	var token Token

	if err := json.Unmarshal(body, &token); err != nil {
		return nil, fmt.Errorf("parsing token response: %w", err)
	}

	if token.ExpiresIn > 0 {
		token.ExpiresAt = time.Now().Add(time.Duration(token.ExpiresIn) * time.Second)
	}

	return &token, nil
}

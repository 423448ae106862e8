package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	internalhttp "github.com/edukit-io/canvas-client/internal/http"
	"github.com/edukit-io/canvas-client/pkg/canvas"
)

// Flow drives the Canvas OAuth2 web flow for one configuration context.
// Token endpoint calls bypass outbound authentication; revocation does not.
type Flow struct {
	store       *canvas.ContextStore
	contextName string
	httpClient  *internalhttp.Client
}

// FlowOption configures a Flow.
type FlowOption func(*Flow)

// WithFlowHTTPClient overrides the transport, used by tests.
func WithFlowHTTPClient(httpClient *internalhttp.Client) FlowOption {
	return func(f *Flow) {
		f.httpClient = httpClient
	}
}

// NewFlow creates a flow bound to the named context of the store. An empty
// name targets the current context.
func NewFlow(store *canvas.ContextStore, contextName string, opts ...FlowOption) *Flow {
	flow := &Flow{
		store:       store,
		contextName: contextName,
	}

	for _, opt := range opts {
		opt(flow)
	}

	if flow.httpClient == nil {
		flow.httpClient = internalhttp.NewClient(store.BaseURL(contextName), nil)
	}

	return flow
}

// AuthorizeOptions tune the authorization URL.
type AuthorizeOptions struct {
	State      string
	Scopes     []string
	ForceLogin bool
	UniqueID   string
	Purpose    string
}

// ExchangeOptions tune the authorization code grant. Extra form parameters
// are sent to the token endpoint as-is.
type ExchangeOptions struct {
	// ReplaceTokens asks Canvas to revoke all other access tokens issued
	// for this client/user pair when the new token is granted.
	ReplaceTokens bool
	Extra         url.Values
}

// tokenResponse is the wire shape of Canvas token grants.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	User         struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"user"`
}

// RevokeResponse is returned by token deletion. ForwardURL is only present
// when session expiration was requested.
type RevokeResponse struct {
	ForwardURL string `json:"forward_url,omitempty"`
}

// AuthorizationURL builds the URL a user visits to start the OAuth2 grant.
func (f *Flow) AuthorizationURL(opts AuthorizeOptions) (string, error) {
	baseURL := f.store.BaseURL(f.contextName)
	if baseURL == "" {
		return "", &canvas.ConfigError{Field: "base_url", Reason: "base URL must be set before building an authorization URL"}
	}

	clientID := f.store.OAuthClientID(f.contextName)
	if clientID == "" {
		return "", &canvas.ConfigError{Field: "oauth_client_id", Reason: "OAuth client ID must be set before building an authorization URL"}
	}

	query := url.Values{}
	query.Set("client_id", clientID)
	query.Set("response_type", "code")
	query.Set("redirect_uri", f.store.OAuthRedirectURI(f.contextName))

	if opts.State != "" {
		query.Set("state", opts.State)
	}

	if len(opts.Scopes) > 0 {
		query.Set("scope", strings.Join(opts.Scopes, " "))
	}

	if opts.ForceLogin {
		query.Set("force_login", "1")
	}

	if opts.UniqueID != "" {
		query.Set("unique_id", opts.UniqueID)
	}

	if opts.Purpose != "" {
		query.Set("purpose", opts.Purpose)
	}

	return strings.TrimSuffix(baseURL, "/") + authPath + "?" + query.Encode(), nil
}

// ExchangeCode redeems an authorization code and stores the resulting token
// set, including the authenticated user's identity, on the context.
func (f *Flow) ExchangeCode(ctx context.Context, code string, opts ExchangeOptions) (canvas.TokenSet, error) {
	form := []canvas.FormField{
		{Name: "grant_type", Contents: "authorization_code"},
		{Name: "client_id", Contents: f.store.OAuthClientID(f.contextName)},
		{Name: "client_secret", Contents: f.store.OAuthClientSecret(f.contextName)},
		{Name: "redirect_uri", Contents: f.store.OAuthRedirectURI(f.contextName)},
		{Name: "code", Contents: code},
	}

	if opts.ReplaceTokens {
		form = append(form, canvas.FormField{Name: "replace_tokens", Contents: "1"})
	}

	for key, values := range opts.Extra {
		for _, value := range values {
			form = append(form, canvas.FormField{Name: key, Contents: value})
		}
	}

	parsed, err := f.requestToken(ctx, form)
	if err != nil {
		return canvas.TokenSet{}, fmt.Errorf("exchanging authorization code: %w", err)
	}

	set := canvas.TokenSet{
		AccessToken:  parsed.AccessToken,
		RefreshToken: parsed.RefreshToken,
		ExpiresAt:    expiryFrom(parsed.ExpiresIn),
		UserID:       parsed.User.ID,
		UserName:     parsed.User.Name,
	}

	f.store.SetTokens(f.contextName, set)

	return set, nil
}

// Refresh exchanges the stored refresh token for a new access token. The
// stored refresh token survives the exchange; every failure is reported as
// ErrTokenRefresh.
func (f *Flow) Refresh(ctx context.Context) error {
	current := f.store.Tokens(f.contextName)
	if current.RefreshToken == "" {
		return canvas.ErrNoRefreshToken
	}

	form := []canvas.FormField{
		{Name: "grant_type", Contents: "refresh_token"},
		{Name: "client_id", Contents: f.store.OAuthClientID(f.contextName)},
		{Name: "client_secret", Contents: f.store.OAuthClientSecret(f.contextName)},
		{Name: "refresh_token", Contents: current.RefreshToken},
	}

	parsed, err := f.requestToken(ctx, form)
	if err != nil {
		return fmt.Errorf("%w: %w", canvas.ErrTokenRefresh, err)
	}

	// Canvas does not rotate refresh tokens on this grant; the stored one
	// remains authoritative even if the response carries a refresh_token.
	f.store.SetAccessToken(f.contextName, parsed.AccessToken, expiryFrom(parsed.ExpiresIn))

	return nil
}

// Revoke deletes the current access token at Canvas and clears the context's
// token material. With expireSessions, Canvas also terminates web sessions
// and responds with a forward URL.
func (f *Flow) Revoke(ctx context.Context, expireSessions bool) (*RevokeResponse, error) {
	current := f.store.Tokens(f.contextName)
	if current.AccessToken == "" {
		return nil, canvas.ErrNoAccessToken
	}

	req := &internalhttp.Request{
		Method: "DELETE",
		Path:   tokenPath,
		Headers: map[string]string{
			"Authorization": "Bearer " + current.AccessToken,
		},
		SkipAuth: true,
	}

	if expireSessions {
		req.Query = url.Values{"expire_sessions": []string{"1"}}
	}

	resp, err := f.httpClient.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("revoking token: %w", err)
	}

	result := &RevokeResponse{}
	if len(resp.Body) > 0 {
		_ = json.Unmarshal(resp.Body, result)
	}

	f.store.ClearOAuthTokens(f.contextName)

	return result, nil
}

// SessionToken trades the current access token for a short-lived web session
// URL, optionally pointing the session at returnTo.
func (f *Flow) SessionToken(ctx context.Context, returnTo string) (string, error) {
	current := f.store.Tokens(f.contextName)
	if current.AccessToken == "" {
		return "", canvas.ErrNoAccessToken
	}

	req := &internalhttp.Request{
		Method: "POST",
		Path:   sessionTokenPath,
		Headers: map[string]string{
			"Authorization": "Bearer " + current.AccessToken,
		},
		SkipAuth: true,
	}

	if returnTo != "" {
		req.Body = map[string]string{"return_to": returnTo}
	}

	resp, err := f.httpClient.Do(ctx, req)
	if err != nil {
		return "", fmt.Errorf("requesting session token: %w", err)
	}

	var result struct {
		SessionURL string `json:"session_url"`
	}

	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return "", fmt.Errorf("parsing session token response: %w", err)
	}

	return result.SessionURL, nil
}

// requestToken posts an unauthenticated grant request to the token endpoint.
func (f *Flow) requestToken(ctx context.Context, form []canvas.FormField) (*tokenResponse, error) {
	req := &internalhttp.Request{
		Method:   "POST",
		Path:     tokenPath,
		Form:     form,
		SkipAuth: true,
	}

	resp, err := f.httpClient.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	var parsed tokenResponse

	if err := json.Unmarshal(resp.Body, &parsed); err != nil {
		return nil, fmt.Errorf("parsing token response: %w", err)
	}

	return &parsed, nil
}

func expiryFrom(expiresIn int64) time.Time {
	if expiresIn <= 0 {
		return time.Time{}
	}

	return time.Now().Add(time.Duration(expiresIn) * time.Second)
}

// Package auth implements OAuth2 token management for the Canvas API.
package auth

import (
	"sync"
	"time"
)

// tokenValidityBuffer is subtracted from the expiry when deciding whether a
// token is still usable, so requests never race the actual expiration.
const tokenValidityBuffer = 30 * time.Second

// Token represents an OAuth2 token response from Canvas.
type Token struct {
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token,omitempty"`
	TokenType    string     `json:"token_type,omitempty"`
	ExpiresIn    int64      `json:"expires_in,omitempty"`
	ExpiresAt    time.Time  `json:"-"`
	User         *TokenUser `json:"user,omitempty"`
}

// TokenUser identifies the Canvas user a token was issued for.
type TokenUser struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Valid returns true if the token can still be used for requests.
func (t *Token) Valid() bool {
	if t == nil || t.AccessToken == "" {
		return false
	}

	if t.ExpiresAt.IsZero() {
		return true
	}

	return time.Now().Add(tokenValidityBuffer).Before(t.ExpiresAt)
}

// TokenStore holds the current token with concurrent access support.
type TokenStore struct {
	mu    sync.RWMutex
	token *Token
}

// NewTokenStore creates an empty token store.
func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

// Get returns the current token, or nil if none is set.
func (s *TokenStore) Get() *Token {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token
}

// Set replaces the current token.
func (s *TokenStore) Set(token *Token) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
}

// Clear removes the current token.
func (s *TokenStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = nil
}

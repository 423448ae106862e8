package canvas

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
)

// envSettings mirrors the CANVAS_* environment variables AutoDetect consumes.
type envSettings struct {
	APIKey  string `env:"CANVAS_API_KEY"`
	BaseURL string `env:"CANVAS_BASE_URL"`
	// Numeric variables stay strings here so a malformed value surfaces
	// as a ConfigError naming the variable instead of an env.Parse error.
	AccountID         string `env:"CANVAS_ACCOUNT_ID"`
	APIVersion        string `env:"CANVAS_API_VERSION"`
	Timeout           string `env:"CANVAS_TIMEOUT"`
	OAuthClientID     string `env:"CANVAS_OAUTH_CLIENT_ID"`
	OAuthClientSecret string `env:"CANVAS_OAUTH_CLIENT_SECRET"`
	OAuthRedirectURI  string `env:"CANVAS_OAUTH_REDIRECT_URI"`
	AuthMode          string `env:"CANVAS_AUTH_MODE"`
}

// AutoDetect reads the CANVAS_* environment variables and applies every
// present variable to the named context ("" = current). A variable that is
// present but empty, or a numeric variable that is not a positive integer, is
// a configuration error.
func (s *ContextStore) AutoDetect(name string) error {
	settings := envSettings{}
	if err := env.Parse(&settings); err != nil {
		return fmt.Errorf("parsing environment: %w", err)
	}

	stringVars := []struct {
		key   string
		value string
		apply func(string) error
	}{
		{"CANVAS_API_KEY", settings.APIKey, func(v string) error { s.SetAPIKey(name, v); return nil }},
		{"CANVAS_BASE_URL", settings.BaseURL, func(v string) error { return s.SetBaseURL(name, v) }},
		{"CANVAS_API_VERSION", settings.APIVersion, func(v string) error { s.SetAPIVersion(name, v); return nil }},
	}

	for _, item := range stringVars {
		if err := applyStringVar(item.key, item.value, item.apply); err != nil {
			return err
		}
	}

	if err := s.autoDetectNumeric(name, settings); err != nil {
		return err
	}

	if err := s.autoDetectOAuth(name, settings); err != nil {
		return err
	}

	return nil
}

func applyStringVar(key, value string, apply func(string) error) error {
	if !envPresent(key) {
		return nil
	}

	if value == "" {
		return &ConfigError{Field: key, Reason: "environment variable is set but empty"}
	}

	return apply(value)
}

func (s *ContextStore) autoDetectNumeric(name string, settings envSettings) error {
	if envPresent("CANVAS_ACCOUNT_ID") {
		accountID, err := parsePositiveInt(settings.AccountID)
		if err != nil {
			return &ConfigError{Field: "CANVAS_ACCOUNT_ID", Reason: "must be a positive integer"}
		}

		s.SetAccountID(name, accountID)
	}

	if envPresent("CANVAS_TIMEOUT") {
		timeout, err := parsePositiveInt(settings.Timeout)
		if err != nil {
			return &ConfigError{Field: "CANVAS_TIMEOUT", Reason: "must be a positive integer"}
		}

		s.SetTimeout(name, time.Duration(timeout)*time.Second)
	}

	return nil
}

func parsePositiveInt(value string) (int, error) {
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	if parsed <= 0 {
		return 0, fmt.Errorf("value %d is not positive", parsed)
	}

	return parsed, nil
}

func (s *ContextStore) autoDetectOAuth(name string, settings envSettings) error {
	oauthVars := []struct {
		key   string
		value string
	}{
		{"CANVAS_OAUTH_CLIENT_ID", settings.OAuthClientID},
		{"CANVAS_OAUTH_CLIENT_SECRET", settings.OAuthClientSecret},
		{"CANVAS_OAUTH_REDIRECT_URI", settings.OAuthRedirectURI},
	}

	for _, item := range oauthVars {
		if envPresent(item.key) && item.value == "" {
			return &ConfigError{Field: item.key, Reason: "environment variable is set but empty"}
		}
	}

	if settings.OAuthClientID != "" || settings.OAuthClientSecret != "" || settings.OAuthRedirectURI != "" {
		s.SetOAuthClient(name, settings.OAuthClientID, settings.OAuthClientSecret, settings.OAuthRedirectURI)
	}

	if envPresent("CANVAS_AUTH_MODE") {
		switch AuthMode(settings.AuthMode) {
		case AuthModeAPIKey:
			s.UseAPIKey(name)
		case AuthModeOAuth:
			s.UseOAuth(name)
		default:
			return &ConfigError{Field: "CANVAS_AUTH_MODE", Reason: `must be "api_key" or "oauth"`}
		}
	}

	return nil
}

func envPresent(key string) bool {
	_, ok := os.LookupEnv(key)

	return ok
}

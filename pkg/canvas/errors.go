package canvas

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// APIError represents a non-2xx response from the Canvas API. It is the single
// error type for transport-level failures; callers branch on StatusCode rather
// than on distinct error types.
type APIError struct {
	StatusCode int          `json:"status_code"      yaml:"status_code"`
	Message    string       `json:"message"          yaml:"message"`
	Errors     []ErrorEntry `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// ErrorEntry is one entry of a Canvas error response body.
type ErrorEntry struct {
	Message string `json:"message"         yaml:"message"`
	Code    string `json:"error_code,omitempty" yaml:"error_code,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("canvas API error (status: %d)", e.StatusCode)
	}

	return fmt.Sprintf("%s (status: %d)", e.Message, e.StatusCode)
}

// ConfigError reports a missing or malformed configuration value. It is always
// raised before any network call.
type ConfigError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("configuration field %q is not set", e.Field)
	}

	return fmt.Sprintf("configuration field %q: %s", e.Field, e.Reason)
}

// MissingScopeError reports an operation invoked on a scoped resource client
// before its required scope piece was supplied. The message names the setter.
type MissingScopeError struct {
	Setter string
}

// Error implements the error interface.
func (e *MissingScopeError) Error() string {
	return fmt.Sprintf("required context is not set: call %s before this operation", e.Setter)
}

// Static errors that can be wrapped with context.
var (
	ErrTokenRefresh            = errors.New("OAuth token refresh failed")
	ErrNoRefreshToken          = errors.New("no refresh token stored for context")
	ErrNoAccessToken           = errors.New("no access token stored for context")
	ErrInvalidBaseURL          = errors.New("base URL must be a valid URL with a host")
	ErrInsecureBaseURL         = errors.New("base URL must use https for non-local hosts")
	ErrInvalidModuleItem       = errors.New("invalid module item type")
	ErrInvalidWorkflowState    = errors.New("invalid workflow state")
	ErrStoreRequired           = errors.New("context store is required")
	ErrCacheDisabled           = errors.New("cache disabled")
	ErrCacheMiss               = errors.New("key not found in cache")
	ErrNATSConfigRequired      = errors.New("NATS configuration required for NATS cache")
	ErrUnsupportedCache        = errors.New("unsupported cache type")
	ErrUnsupportedFormStrategy = errors.New("unsupported form strategy")
)

// IsNotFound checks whether the error is a 404 API error.
func IsNotFound(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}

	return false
}

// IsUnauthorized checks whether the error is a 401 API error.
func IsUnauthorized(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized
	}

	return false
}

// IsForbidden checks whether the error is a 403 API error.
func IsForbidden(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusForbidden
	}

	return false
}

// ParseAPIError builds an APIError from a response body. Canvas error bodies
// come in several shapes ({"errors": [...]}, {"errors": {"field": [...]}},
// {"message": ...}); anything unparseable falls back to the raw body.
func ParseAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode}

	var withList struct {
		Message string       `json:"message"`
		Errors  []ErrorEntry `json:"errors"`
	}

	if err := json.Unmarshal(body, &withList); err == nil && (withList.Message != "" || len(withList.Errors) > 0) {
		apiErr.Message = withList.Message
		apiErr.Errors = withList.Errors

		if apiErr.Message == "" && len(apiErr.Errors) > 0 {
			apiErr.Message = apiErr.Errors[0].Message
		}

		return apiErr
	}

	if len(body) > 0 {
		apiErr.Message = string(body)
	}

	return apiErr
}

package constants

import "errors"

// Configuration and context errors.
var (
	ErrNoContextsConfigured = errors.New("no contexts configured, use 'canvas config set' to add one")
	ErrContextNotFound      = errors.New("context not found")
	ErrNoBaseURL            = errors.New("no base URL configured for this context")
	ErrNotAuthenticated     = errors.New("not authenticated. Use 'canvas login' to authenticate first")
)

// Validation errors.
var (
	ErrInvalidEnabledFlag = errors.New("enabled flag must be 'true' or 'false'")
	ErrInvalidOutput      = errors.New("invalid value for --output, expected json, yaml, or table")
	ErrInvalidConfigValue = errors.New("invalid configuration value")
)

// Required field errors.
var (
	ErrCourseRequired  = errors.New("--course flag is required")
	ErrAccountRequired = errors.New("--account flag is required")
)

// File system errors.
var (
	ErrNotRegularFile             = errors.New("path is not a regular file")
	ErrDirectoryTraversalDetected = errors.New("directory traversal detected in file path")
)

package config

import "errors"

// Validation errors returned by [ClientConfig.validate] and
// [StructuredConfig.validate] when required configuration groups are
// incomplete or invalid.
var (
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, missing token signing key).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, empty DSN or cache path).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidClientConfigs indicates invalid client transport settings
	// (for example, missing server URL or request timeout).
	ErrInvalidClientConfigs = errors.New("invalid client configuration")
)

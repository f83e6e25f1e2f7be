package config

import "errors"

// Validation errors returned when a configuration group is incomplete or
// invalid.
var (
	// ErrInvalidStorageConfigs indicates an unknown backend or a backend
	// missing its connection parameters.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidServerConfigs indicates a missing listen address or a
	// negative timeout.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings.
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
	// ErrInvalidViewerConfigs indicates a viewer without a server URL or
	// request timeout.
	ErrInvalidViewerConfigs = errors.New("invalid viewer configuration")
)

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// Defaults applied to fields left unset by every source.
const (
	DefaultVersion         = "dev"
	DefaultHTTPAddress     = "localhost:8080"
	DefaultRequestTimeout  = 10 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	DefaultPersistTimeout  = 5 * time.Second
	DefaultFilePath        = "data/profiles.json"
	DefaultRedisKey        = "influence-roster:profiles"
	DefaultBlobsDir        = "data/uploads"
	DefaultThumbnailEdge   = 300
	DefaultViewerServerURL = "http://localhost:8080"
)

func (cfg *StructuredConfig) applyDefaults() {
	setDefault(&cfg.App.Version, DefaultVersion)

	setDefault(&cfg.Server.HTTPAddress, DefaultHTTPAddress)
	setDefault(&cfg.Server.RequestTimeout, DefaultRequestTimeout)
	setDefault(&cfg.Server.ShutdownTimeout, DefaultShutdownTimeout)

	setDefault(&cfg.Storage.Backend, BackendFile)
	setDefault(&cfg.Storage.PersistTimeout, DefaultPersistTimeout)
	setDefault(&cfg.Storage.File.Path, DefaultFilePath)
	setDefault(&cfg.Storage.Redis.Key, DefaultRedisKey)
	setDefault(&cfg.Storage.Blobs.Dir, DefaultBlobsDir)
	setDefault(&cfg.Storage.Blobs.ThumbnailEdge, DefaultThumbnailEdge)

	setDefault(&cfg.Viewer.ServerURL, DefaultViewerServerURL)
	setDefault(&cfg.Viewer.RequestTimeout, DefaultRequestTimeout)
}

func setDefault[T comparable](field *T, value T) {
	var zero T
	if *field == zero {
		*field = value
	}
}

// validate checks that the final merged [StructuredConfig] names a known
// backend with its required parameters.
func (cfg *StructuredConfig) validate() error {
	switch cfg.Storage.Backend {
	case BackendFile:
		if cfg.Storage.File.Path == "" {
			return fmt.Errorf("%w: file backend needs a path", ErrInvalidStorageConfigs)
		}
	case BackendSQLite, BackendPostgres:
		if cfg.Storage.DB.DSN == "" {
			return fmt.Errorf("%w: %s backend needs a DSN", ErrInvalidStorageConfigs, cfg.Storage.Backend)
		}
	case BackendRedis:
		if cfg.Storage.Redis.Addr == "" {
			return fmt.Errorf("%w: redis backend needs an address", ErrInvalidStorageConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidStorageConfigs, cfg.Storage.Backend)
	}

	if cfg.Storage.PersistTimeout < 0 {
		return fmt.Errorf("%w: negative persist timeout", ErrInvalidStorageConfigs)
	}
	if cfg.Storage.Blobs.ThumbnailEdge < 1 {
		return fmt.Errorf("%w: thumbnail edge must be positive", ErrInvalidStorageConfigs)
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout < 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.Workers.BackupInterval < 0 {
		return fmt.Errorf("%w: negative backup interval", ErrInvalidWorkerConfigs)
	}
	if cfg.Workers.BackupInterval > 0 && cfg.Workers.BackupDir == "" {
		return fmt.Errorf("%w: backups need a directory", ErrInvalidWorkerConfigs)
	}

	return nil
}

func (cfg *ViewerConfig) validate() error {
	if cfg.ServerURL == "" || cfg.RequestTimeout <= 0 {
		return ErrInvalidViewerConfigs
	}
	return nil
}

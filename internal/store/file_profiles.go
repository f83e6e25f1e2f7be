// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/MKhiriev/influence-roster/internal/logger"
	"github.com/MKhiriev/influence-roster/models"
)

// fileProfileStorage keeps the roster document in a single JSON file on
// local disk. Writes go to a temporary file in the same directory and are
// renamed over the target, so a crash never leaves a half-written document.
type fileProfileStorage struct {
	path string

	mu     sync.Mutex
	logger *logger.Logger
}

// NewFileProfileStorage returns a [PersistenceBackend] backed by the JSON
// file at path. The file and its directory are created on first Save.
func NewFileProfileStorage(path string, logger *logger.Logger) PersistenceBackend {
	logger.Debug().Str("path", path).Msg("creating file profile storage")
	return &fileProfileStorage{
		path:   path,
		logger: logger,
	}
}

func (f *fileProfileStorage) Load(ctx context.Context) ([]models.ProfileRecord, error) {
	payload, err := f.read(ctx)
	if err != nil {
		return nil, err
	}
	return decodeDocument(payload)
}

func (f *fileProfileStorage) Save(ctx context.Context, records []models.ProfileRecord) error {
	payload, err := encodeDocument(records)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err = ctx.Err(); err != nil {
		return fmt.Errorf("write roster file: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create roster dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp roster file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err = tmp.Write(payload); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp roster file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp roster file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp roster file: %w", err)
	}

	// last point where the write can still be abandoned cleanly
	if err = ctx.Err(); err != nil {
		return fmt.Errorf("write roster file: %w", err)
	}

	if err = os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("replace roster file: %w", err)
	}

	logger.FromContext(ctx).Debug().Str("func", "*fileProfileStorage.Save").
		Int("profiles", len(records)).Msg("roster file written")
	return nil
}

func (f *fileProfileStorage) Export(ctx context.Context) ([]byte, error) {
	payload, err := f.read(ctx)
	if err != nil {
		return nil, err
	}
	if len(payload) == 0 {
		return emptyDocument, nil
	}
	return payload, nil
}

func (f *fileProfileStorage) Close() error {
	return nil
}

func (f *fileProfileStorage) read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("read roster file: %w", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	payload, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read roster file: %w", err)
	}
	return payload, nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/influence-roster/models"
)

// PersistenceBackend stores the whole roster as one document.
//
// Implementations must honor ctx deadlines: the roster service bounds every
// Save with a timeout and treats an expired context as a failed write.
type PersistenceBackend interface {
	// Load returns every persisted record in roster order. A backend that
	// has never been written returns an empty slice.
	Load(ctx context.Context) ([]models.ProfileRecord, error)

	// Save replaces the persisted document with records.
	Save(ctx context.Context, records []models.ProfileRecord) error

	// Export returns the persisted document exactly as stored.
	Export(ctx context.Context) ([]byte, error)

	// Close releases connections and file handles.
	Close() error
}

// BlobStore keeps profile photos.
type BlobStore interface {
	// Put stores data under id and returns the id. An empty id makes the
	// store allocate a new one; a non-empty id overwrites that blob.
	Put(ctx context.Context, id string, data []byte, contentType string) (string, error)

	// Get returns the blob stored under id or [ErrPhotoNotFound].
	Get(ctx context.Context, id string) (models.Photo, error)
}

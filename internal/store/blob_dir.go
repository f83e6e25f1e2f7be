// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/influence-roster/internal/logger"
	"github.com/MKhiriev/influence-roster/internal/utils"
	"github.com/MKhiriev/influence-roster/models"
)

// photoExtensions maps the accepted photo content types to file extensions.
var photoExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
}

// PhotoExtension returns the file extension for an accepted photo content
// type, or "" for anything else.
func PhotoExtension(contentType string) string {
	return photoExtensions[contentType]
}

// ValidPhotoID reports whether id is usable as a blob name.
func ValidPhotoID(id string) bool {
	return id != "" && id != "." && id != ".." &&
		!strings.ContainsAny(id, `/\`) && !strings.HasPrefix(id, ".")
}

// blobDirStorage keeps photos as files in a local directory. The photo ID is
// the file name.
type blobDirStorage struct {
	dir    string
	ids    utils.IDGenerator
	logger *logger.Logger
}

// NewBlobDirStorage returns a [BlobStore] writing into dir. The directory is
// created if missing.
func NewBlobDirStorage(dir string, logger *logger.Logger) (BlobStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create photo dir: %w", err)
	}
	return &blobDirStorage{
		dir:    dir,
		ids:    utils.NewUUIDGenerator(),
		logger: logger,
	}, nil
}

// Put writes data under id, or under a freshly generated id when id is
// empty. Generated ids carry the extension of contentType.
func (b *blobDirStorage) Put(ctx context.Context, id string, data []byte, contentType string) (string, error) {
	if id == "" {
		id = b.ids.Generate() + PhotoExtension(contentType)
	}
	path, err := b.path(id)
	if err != nil {
		return "", err
	}

	if err = ctx.Err(); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(b.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create temp photo file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write photo: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return "", fmt.Errorf("close photo file: %w", err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return "", fmt.Errorf("store photo: %w", err)
	}

	logger.FromContext(ctx).Debug().
		Str("func", "*blobDirStorage.Put").
		Str("photo_id", id).
		Int("size", len(data)).
		Msg("photo stored")
	return id, nil
}

func (b *blobDirStorage) Get(ctx context.Context, id string) (models.Photo, error) {
	path, err := b.path(id)
	if err != nil {
		return models.Photo{}, err
	}
	if err = ctx.Err(); err != nil {
		return models.Photo{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return models.Photo{}, fmt.Errorf("%w: %s", ErrPhotoNotFound, id)
		}
		return models.Photo{}, fmt.Errorf("read photo: %w", err)
	}

	return models.Photo{
		ID:          id,
		ContentType: http.DetectContentType(data),
		Data:        data,
	}, nil
}

// path resolves id inside the blob directory, rejecting anything that could
// escape it.
func (b *blobDirStorage) path(id string) (string, error) {
	if !ValidPhotoID(id) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPhotoID, id)
	}
	return filepath.Join(b.dir, id), nil
}

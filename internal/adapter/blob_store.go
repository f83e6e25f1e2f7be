// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/MKhiriev/influence-roster/internal/config"
	"github.com/MKhiriev/influence-roster/internal/logger"
	"github.com/MKhiriev/influence-roster/internal/store"
	"github.com/MKhiriev/influence-roster/internal/utils"
	"github.com/MKhiriev/influence-roster/models"
)

const defaultBlobTimeout = 15 * time.Second

// httpBlobStore keeps photos in an HTTP object store: PUT <base>/<id> writes
// a blob, GET <base>/<id> reads it back.
type httpBlobStore struct {
	client *utils.HTTPClient
	ids    utils.IDGenerator
	logger *logger.Logger
}

// NewHTTPBlobStore returns a [store.BlobStore] backed by cfg.RemoteURL.
// cfg.RemoteToken, when set, is sent as a bearer token.
func NewHTTPBlobStore(cfg config.Blobs, logger *logger.Logger) (store.BlobStore, error) {
	baseURL, err := normalizeBaseURL(cfg.RemoteURL)
	if err != nil {
		return nil, fmt.Errorf("invalid blob store url: %w", err)
	}

	client := utils.NewHTTPClient()
	client.
		SetBaseURL(baseURL).
		SetTimeout(defaultBlobTimeout)
	if cfg.RemoteToken != "" {
		client.SetAuthToken(cfg.RemoteToken)
	}

	return &httpBlobStore{client: client, ids: utils.NewUUIDGenerator(), logger: logger}, nil
}

func (b *httpBlobStore) Put(ctx context.Context, id string, data []byte, contentType string) (string, error) {
	if id == "" {
		id = b.ids.Generate() + store.PhotoExtension(contentType)
	}
	if !store.ValidPhotoID(id) {
		return "", fmt.Errorf("%w: %q", store.ErrInvalidPhotoID, id)
	}

	resp, err := b.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", contentType).
		SetBody(data).
		Put("/" + url.PathEscape(id))
	if err != nil {
		return "", fmt.Errorf("put photo request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", fmt.Errorf("put photo: %w", err)
	}

	logger.FromContext(ctx).Debug().
		Str("func", "*httpBlobStore.Put").
		Str("photo_id", id).
		Int("size", len(data)).
		Msg("photo stored")
	return id, nil
}

func (b *httpBlobStore) Get(ctx context.Context, id string) (models.Photo, error) {
	if !store.ValidPhotoID(id) {
		return models.Photo{}, fmt.Errorf("%w: %q", store.ErrInvalidPhotoID, id)
	}

	resp, err := b.client.R().
		SetContext(ctx).
		Get("/" + url.PathEscape(id))
	if err != nil {
		return models.Photo{}, fmt.Errorf("get photo request: %w", err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return models.Photo{}, fmt.Errorf("%w: %s", store.ErrPhotoNotFound, id)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Photo{}, fmt.Errorf("get photo: %w", err)
	}

	data := resp.Body()
	return models.Photo{
		ID:          id,
		ContentType: http.DetectContentType(data),
		Data:        data,
	}, nil
}

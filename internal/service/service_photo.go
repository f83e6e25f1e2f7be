// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/influence-roster/internal/config"
	"github.com/MKhiriev/influence-roster/internal/logger"
	"github.com/MKhiriev/influence-roster/internal/store"
	"github.com/MKhiriev/influence-roster/models"
)

type photoService struct {
	roster        RosterService
	blobs         store.BlobStore
	images        *store.ImageCache
	thumbnailEdge int

	logger *logger.Logger
}

// NewPhotoService returns a [PhotoService] that resizes uploads to fit
// cfg.ThumbnailEdge and keeps images coherent: every write invalidates the
// cached entries it affects before returning.
func NewPhotoService(roster RosterService, storages *store.Storages, cfg config.Blobs, logger *logger.Logger) PhotoService {
	return &photoService{
		roster:        roster,
		blobs:         storages.Blobs,
		images:        storages.Images,
		thumbnailEdge: cfg.ThumbnailEdge,
		logger:        logger,
	}
}

func (s *photoService) Upload(ctx context.Context, data []byte, contentType string) (string, error) {
	return s.put(ctx, "", data)
}

func (s *photoService) Replace(ctx context.Context, photoID string, data []byte, contentType string) error {
	_, err := s.put(ctx, photoID, data)
	return err
}

// AttachToProfile uploads a new photo and points the profile at it. The
// previous photo stays in the blob store but leaves the cache.
func (s *photoService) AttachToProfile(ctx context.Context, ref models.ProfileRef, data []byte, contentType string) (models.Profile, error) {
	photoID, err := s.put(ctx, "", data)
	if err != nil {
		return models.Profile{}, err
	}

	profile, previous, err := s.roster.SetPhoto(ctx, ref, photoID)
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).
			Str("func", "*photoService.AttachToProfile").
			Str("photo_id", photoID).
			Msg("photo stored but not attached")
		return models.Profile{}, err
	}

	s.images.Invalidate(photoID, previous)
	return profile, nil
}

func (s *photoService) Get(ctx context.Context, photoID string) (models.Photo, error) {
	return s.images.Get(ctx, photoID)
}

func (s *photoService) put(ctx context.Context, photoID string, data []byte) (string, error) {
	resized, contentType, err := resizePhoto(data, s.thumbnailEdge)
	if err != nil {
		return "", err
	}

	id, err := s.blobs.Put(ctx, photoID, resized, contentType)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*photoService.put").
			Str("photo_id", photoID).
			Msg("failed to store photo")
		return "", fmt.Errorf("error storing photo: %w", err)
	}

	s.images.Invalidate(id)
	return id, nil
}

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/influence-roster/internal/validators"
	"github.com/MKhiriev/influence-roster/models"
)

// PhotoServiceWrapper defines middleware composition for PhotoService.
// Implementations wrap an existing PhotoService to add behavior such as
// validation.
type PhotoServiceWrapper interface {
	Wrap(PhotoService) PhotoService
}

// PhotoValidationService rejects uploads that are empty or are not png,
// jpeg or gif before they reach the wrapped service. The content type is
// taken from the bytes, not from what the client claimed.
type PhotoValidationService struct {
	inner     PhotoService
	validator validators.Validator
}

func NewPhotoValidationService() PhotoServiceWrapper {
	return &PhotoValidationService{
		validator: validators.NewRequestValidator(),
	}
}

func (v *PhotoValidationService) Upload(ctx context.Context, data []byte, contentType string) (string, error) {
	photo, err := v.validate(ctx, data, contentType)
	if err != nil {
		return "", err
	}
	return v.inner.Upload(ctx, photo.Data, photo.ContentType)
}

func (v *PhotoValidationService) Replace(ctx context.Context, photoID string, data []byte, contentType string) error {
	if photoID == "" {
		return validators.ErrInvalidPhotoRef
	}
	photo, err := v.validate(ctx, data, contentType)
	if err != nil {
		return err
	}
	return v.inner.Replace(ctx, photoID, photo.Data, photo.ContentType)
}

func (v *PhotoValidationService) AttachToProfile(ctx context.Context, ref models.ProfileRef, data []byte, contentType string) (models.Profile, error) {
	photo, err := v.validate(ctx, data, contentType)
	if err != nil {
		return models.Profile{}, err
	}
	return v.inner.AttachToProfile(ctx, ref, photo.Data, photo.ContentType)
}

func (v *PhotoValidationService) Get(ctx context.Context, photoID string) (models.Photo, error) {
	if photoID == "" {
		return models.Photo{}, validators.ErrInvalidPhotoRef
	}
	return v.inner.Get(ctx, photoID)
}

func (v *PhotoValidationService) Wrap(inner PhotoService) PhotoService {
	v.inner = inner
	return v
}

func (v *PhotoValidationService) validate(ctx context.Context, data []byte, contentType string) (models.Photo, error) {
	photo := models.Photo{Data: data, ContentType: contentType}
	if err := v.validator.Validate(ctx, &photo); err != nil {
		return models.Photo{}, fmt.Errorf("error during photo validation: %w", err)
	}
	return photo, nil
}

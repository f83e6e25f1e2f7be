package validators

import (
	"context"
	"net/http"

	"github.com/MKhiriev/influence-roster/models"
)

// Field names accepted by [RequestValidator.Validate] for scoping.
const (
	FieldCategory         = "category"
	FieldItemIndex        = "item_index"
	FieldPhotoData        = "photo_data"
	FieldPhotoContentType = "photo_content_type"
)

// allowedPhotoTypes is the exhaustive set of sniffed content types accepted
// for profile photos.
var allowedPhotoTypes = map[string]struct{}{
	"image/png":  {},
	"image/jpeg": {},
	"image/gif":  {},
}

// RequestValidator checks roster requests that arrive already decoded:
// reveal toggles and photo uploads.
type RequestValidator struct{}

// NewRequestValidator returns a [Validator] for roster requests.
func NewRequestValidator() Validator {
	return &RequestValidator{}
}

// Validate dispatches on the concrete request type. Passing field names
// restricts the check to those fields.
func (v *RequestValidator) Validate(_ context.Context, in any, fields ...string) error {
	switch t := in.(type) {
	case models.ToggleRevealRequest:
		return v.validateToggle(t, fields...)
	case *models.ToggleRevealRequest:
		if t == nil {
			return ErrUnsupportedType
		}
		return v.validateToggle(*t, fields...)
	case models.Photo:
		return v.validatePhoto(&t, fields...)
	case *models.Photo:
		if t == nil {
			return ErrEmptyPhoto
		}
		return v.validatePhoto(t, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *RequestValidator) validateToggle(req models.ToggleRevealRequest, fields ...string) error {
	if wants(fields, FieldCategory) && req.Category == "" {
		return ErrEmptyCategory
	}
	if wants(fields, FieldItemIndex) && req.ItemIndex == nil {
		return ErrMissingItemIndex
	}
	return nil
}

// validatePhoto sniffs the content type of the photo bytes and stores the
// sniffed value back into photo.ContentType.
func (v *RequestValidator) validatePhoto(photo *models.Photo, fields ...string) error {
	if wants(fields, FieldPhotoData) && len(photo.Data) == 0 {
		return ErrEmptyPhoto
	}
	if wants(fields, FieldPhotoContentType) {
		sniffed := http.DetectContentType(photo.Data)
		if _, ok := allowedPhotoTypes[sniffed]; !ok {
			return ErrUnsupportedPhoto
		}
		photo.ContentType = sniffed
	}
	return nil
}

func wants(fields []string, name string) bool {
	if len(fields) == 0 {
		return true
	}
	for _, f := range fields {
		if f == name {
			return true
		}
	}
	return false
}

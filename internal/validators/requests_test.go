package validators

import (
	"context"
	"testing"

	"github.com/MKhiriev/influence-roster/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pngMagic  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	jpegMagic = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}
	gifMagic  = []byte("GIF89a\x01\x00\x01\x00")
)

func TestRequestValidator_Toggle(t *testing.T) {
	v := NewRequestValidator()
	idx := 1

	tests := []struct {
		name   string
		in     any
		fields []string
		want   error
	}{
		{name: "valid", in: models.ToggleRevealRequest{Category: models.Biases, ItemIndex: &idx}},
		{name: "valid pointer", in: &models.ToggleRevealRequest{Category: models.Strengths, ItemIndex: &idx}},
		{name: "missing category", in: models.ToggleRevealRequest{ItemIndex: &idx}, want: ErrEmptyCategory},
		{name: "missing index", in: models.ToggleRevealRequest{Category: models.Biases}, want: ErrMissingItemIndex},
		{name: "missing index not checked", in: models.ToggleRevealRequest{Category: models.Biases}, fields: []string{FieldCategory}},
		{name: "nil pointer", in: (*models.ToggleRevealRequest)(nil), want: ErrUnsupportedType},
		{name: "unsupported", in: 42, want: ErrUnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(context.Background(), tt.in, tt.fields...)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRequestValidator_PhotoSniffsContentType(t *testing.T) {
	v := NewRequestValidator()

	tests := []struct {
		name string
		data []byte
		want string
	}{
		{name: "png", data: pngMagic, want: "image/png"},
		{name: "jpeg", data: jpegMagic, want: "image/jpeg"},
		{name: "gif", data: gifMagic, want: "image/gif"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			photo := &models.Photo{Data: tt.data, ContentType: "application/octet-stream"}

			require.NoError(t, v.Validate(context.Background(), photo))
			assert.Equal(t, tt.want, photo.ContentType)
		})
	}
}

func TestRequestValidator_PhotoErrors(t *testing.T) {
	v := NewRequestValidator()

	assert.ErrorIs(t, v.Validate(context.Background(), &models.Photo{}), ErrEmptyPhoto)
	assert.ErrorIs(t, v.Validate(context.Background(), (*models.Photo)(nil)), ErrEmptyPhoto)
	assert.ErrorIs(t, v.Validate(context.Background(), models.Photo{Data: []byte("<svg></svg>")}), ErrUnsupportedPhoto)
	assert.NoError(t, v.Validate(context.Background(), &models.Photo{Data: []byte("text")}, FieldPhotoData))
}

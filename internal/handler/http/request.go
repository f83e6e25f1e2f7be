package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/influence-roster/internal/validators"
	"github.com/MKhiriev/influence-roster/models"
)

const (
	maxUploadSize  = 10 << 20
	photoFormField = "photo"
)

// profileRefFromURL reads {ref}: a decimal index or a profile ID.
func profileRefFromURL(r *http.Request) models.ProfileRef {
	return parseProfileRef(chi.URLParam(r, "ref"))
}

func parseProfileRef(s string) models.ProfileRef {
	if i, err := strconv.Atoi(s); err == nil {
		return models.RefByIndex(i)
	}
	return models.RefByID(s)
}

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "multipart/form-data"
}

func isForm(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/x-www-form-urlencoded"
}

// decodeRawFields reads a profile body as a loose map. JSON numbers are kept
// as json.Number so that normalization can reject fractions.
func decodeRawFields(r *http.Request) (map[string]any, error) {
	switch {
	case isMultipart(r):
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidForm, err)
		}
		return validators.FieldsFromForm(r.MultipartForm.Value), nil
	case isForm(r):
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidForm, err)
		}
		return validators.FieldsFromForm(r.PostForm), nil
	default:
		return decodeJSONMap(r.Body)
	}
}

func decodeJSONMap(body io.Reader) (map[string]any, error) {
	raw := map[string]any{}
	dec := json.NewDecoder(body)
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return raw, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return raw, nil
}

// readPhoto returns the uploaded photo bytes from the "photo" form file or,
// for non-multipart requests, from the body itself. ok is false when a
// multipart request carries no photo.
func readPhoto(w http.ResponseWriter, r *http.Request) (data []byte, contentType string, ok bool, err error) {
	if !isMultipart(r) {
		data, err = io.ReadAll(http.MaxBytesReader(w, r.Body, maxUploadSize))
		if err != nil {
			return nil, "", false, fmt.Errorf("%w: %w", ErrInvalidForm, err)
		}
		return data, r.Header.Get("Content-Type"), len(data) > 0, nil
	}

	if r.MultipartForm == nil {
		if err = r.ParseMultipartForm(maxUploadSize); err != nil {
			return nil, "", false, fmt.Errorf("%w: %w", ErrInvalidForm, err)
		}
	}
	file, header, err := r.FormFile(photoFormField)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, "", false, nil
	}
	if err != nil {
		return nil, "", false, fmt.Errorf("%w: %w", ErrInvalidForm, err)
	}
	defer file.Close()

	var buf bytes.Buffer
	if _, err = io.Copy(&buf, file); err != nil {
		return nil, "", false, fmt.Errorf("%w: %w", ErrInvalidForm, err)
	}
	return buf.Bytes(), header.Header.Get("Content-Type"), buf.Len() > 0, nil
}

// refFromBody extracts profile_id or profile_index from a legacy body and
// removes them from raw.
func refFromBody(raw map[string]any) (models.ProfileRef, error) {
	defer func() {
		delete(raw, "profile_id")
		delete(raw, "profile_index")
	}()

	if id, ok := raw["profile_id"].(string); ok && strings.TrimSpace(id) != "" {
		return models.RefByID(strings.TrimSpace(id)), nil
	}

	switch v := raw["profile_index"].(type) {
	case json.Number:
		i, err := strconv.Atoi(v.String())
		if err != nil {
			return models.ProfileRef{}, fmt.Errorf("%w: %w", ErrMissingProfileRef, validators.ErrInvalidNumber)
		}
		return models.RefByIndex(i), nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return models.ProfileRef{}, fmt.Errorf("%w: %w", ErrMissingProfileRef, validators.ErrInvalidNumber)
		}
		return models.RefByIndex(i), nil
	default:
		return models.ProfileRef{}, ErrMissingProfileRef
	}
}

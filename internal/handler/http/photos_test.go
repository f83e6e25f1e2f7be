package http

import (
	"bytes"
	"compress/gzip"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/influence-roster/internal/service"
	"github.com/MKhiriev/influence-roster/internal/store"
	"github.com/MKhiriev/influence-roster/internal/validators"
	"github.com/MKhiriev/influence-roster/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func multipartPhoto(t *testing.T, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile(photoFormField, "portrait.png")
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &body, mw.FormDataContentType()
}

func TestUploadPhoto(t *testing.T) {
	ts := newTestServer(t)
	ts.photos.EXPECT().Upload(gomock.Any(), []byte("img"), gomock.Any()).Return("abc.png", nil)

	body, contentType := multipartPhoto(t, []byte("img"))
	rr := ts.do(t, http.MethodPost, "/api/photos", body, contentType)

	require.Equal(t, http.StatusCreated, rr.Code)
	resp := decodeBody[models.PhotoResponse](t, rr)
	assert.Equal(t, "abc.png", resp.PhotoID)
	assert.Equal(t, "/images/abc.png", resp.URL)
}

func TestUploadPhoto_RawBody(t *testing.T) {
	ts := newTestServer(t)
	ts.photos.EXPECT().Upload(gomock.Any(), []byte("raw"), "image/png").Return("raw.png", nil)

	rr := ts.do(t, http.MethodPost, "/api/photos", bytes.NewReader([]byte("raw")), "image/png")

	assert.Equal(t, http.StatusCreated, rr.Code)
}

func TestUploadPhoto_Failures(t *testing.T) {
	t.Run("empty body", func(t *testing.T) {
		ts := newTestServer(t)
		rr := ts.do(t, http.MethodPost, "/api/photos", bytes.NewReader(nil), "image/png")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unsupported type", func(t *testing.T) {
		ts := newTestServer(t)
		ts.photos.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any()).Return("", validators.ErrUnsupportedPhoto)
		rr := ts.do(t, http.MethodPost, "/api/photos", bytes.NewReader([]byte("%PDF")), "application/pdf")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestReplacePhoto(t *testing.T) {
	ts := newTestServer(t)
	ts.photos.EXPECT().Replace(gomock.Any(), "abc.png", []byte("new"), gomock.Any()).Return(nil)

	body, contentType := multipartPhoto(t, []byte("new"))
	rr := ts.do(t, http.MethodPut, "/api/photos/abc.png", body, contentType)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestAttachPhoto(t *testing.T) {
	ts := newTestServer(t)
	p := vance()
	p.PhotoID = "vance.png"
	ts.photos.EXPECT().AttachToProfile(gomock.Any(), models.RefByID("p-vance"), []byte("img"), gomock.Any()).Return(p, nil)
	ts.roster.EXPECT().Get(gomock.Any(), models.RefByID("p-vance")).Return(0, p, nil)

	body, contentType := multipartPhoto(t, []byte("img"))
	rr := ts.do(t, http.MethodPost, "/api/profiles/p-vance/photo", body, contentType)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "vance.png", decodeBody[models.ProfileResponse](t, rr).Profile.PhotoID)
}

func TestAttachPhoto_ProfileMissing(t *testing.T) {
	ts := newTestServer(t)
	ts.photos.EXPECT().AttachToProfile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.Profile{}, service.ErrProfileNotFound)

	body, contentType := multipartPhoto(t, []byte("img"))
	rr := ts.do(t, http.MethodPost, "/api/profiles/9/photo", body, contentType)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGetImage(t *testing.T) {
	ts := newTestServer(t)
	ts.photos.EXPECT().Get(gomock.Any(), "abc.png").
		Return(models.Photo{ID: "abc.png", ContentType: "image/png", Data: []byte("png")}, nil)
	ts.photos.EXPECT().Get(gomock.Any(), "gone.png").Return(models.Photo{}, store.ErrPhotoNotFound)

	ok := ts.do(t, http.MethodGet, "/images/abc.png", nil, "")
	missing := ts.do(t, http.MethodGet, "/images/gone.png", nil, "")

	assert.Equal(t, http.StatusOK, ok.Code)
	assert.Equal(t, "image/png", ok.Header().Get("Content-Type"))
	assert.Equal(t, "png", ok.Body.String())
	assert.Equal(t, http.StatusNotFound, missing.Code)
}

func TestGetImage_Gzipped(t *testing.T) {
	ts := newTestServer(t)
	ts.photos.EXPECT().Get(gomock.Any(), "abc.png").
		Return(models.Photo{ContentType: "image/png", Data: []byte("png")}, nil)

	req := httptest.NewRequest(http.MethodGet, "/images/abc.png", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()
	ts.router.ServeHTTP(rr, req)

	zr, err := gzip.NewReader(rr.Body)
	require.NoError(t, err)
	data, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Equal(t, "png", string(data))
}

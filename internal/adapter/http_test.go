// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/influence-roster/internal/config"
	"github.com/MKhiriev/influence-roster/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, serverURL string) RosterClient {
	t.Helper()
	c, err := NewHTTPRosterClient(config.ViewerConfig{ServerURL: serverURL, RequestTimeout: 2 * time.Second}, logger.Nop())
	require.NoError(t, err)
	return c
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "full url", raw: "http://localhost:8080/", want: "http://localhost:8080"},
		{name: "host only", raw: "localhost:8080", want: "http://localhost:8080"},
		{name: "https kept", raw: " https://roster.example ", want: "https://roster.example"},
		{name: "empty", raw: "  ", wantErr: true},
		{name: "no host", raw: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewHTTPRosterClient_InvalidURL(t *testing.T) {
	_, err := NewHTTPRosterClient(config.ViewerConfig{}, logger.Nop())

	assert.ErrorIs(t, err, ErrEmptyAddress)
}

func TestPlayerProfiles_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/profiles/player", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"p1","name":"Lord Vance","successes_needed":3,"biases":["Gold"],"strengths":[],"weaknesses":[],"influence_skills":[]}]`))
	}))
	defer srv.Close()

	got, err := newTestClient(t, srv.URL).PlayerProfiles(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Lord Vance", got[0].Name)
	assert.Equal(t, 3, got[0].SuccessesNeeded)
	assert.Equal(t, []string{"Gold"}, got[0].Biases)
}

func TestPlayerProfiles_EmptyRoster(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	got, err := newTestClient(t, srv.URL).PlayerProfiles(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestPlayerProfiles_ErrorStatuses(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{name: "unavailable", status: http.StatusServiceUnavailable, body: `{"success":false,"error":"storage unavailable"}`, want: ErrUnavailable},
		{name: "internal", status: http.StatusInternalServerError, body: `{"success":false,"error":"internal server error"}`, want: ErrInternalServerError},
		{name: "not found", status: http.StatusNotFound, body: "404 page not found", want: ErrNotFound},
		{name: "bad request", status: http.StatusBadRequest, body: "", want: ErrBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newTestClient(t, srv.URL).PlayerProfiles(context.Background())

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestPlayerProfiles_ErrorMessageFromEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"success":false,"error":"storage unavailable"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).PlayerProfiles(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage unavailable")
	assert.NotContains(t, err.Error(), `"success"`)
}

func TestPlayerProfiles_TeapotFallsBackToStatusText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).PlayerProfiles(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 418")
}

func TestVersion_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/version", r.URL.Path)
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("1.4.0\n"))
	}))
	defer srv.Close()

	got, err := newTestClient(t, srv.URL).Version(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "1.4.0", got)
}

func TestVersion_ServerDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := newTestClient(t, url).Version(context.Background())

	assert.Error(t, err)
}

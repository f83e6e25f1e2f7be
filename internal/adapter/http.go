package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/influence-roster/internal/config"
	"github.com/MKhiriev/influence-roster/internal/logger"
	"github.com/MKhiriev/influence-roster/internal/utils"
	"github.com/MKhiriev/influence-roster/models"
)

type httpRosterClient struct {
	client  *utils.HTTPClient
	baseURL string
	logger  *logger.Logger
}

// NewHTTPRosterClient constructs the REST implementation of [RosterClient].
// It normalises and validates cfg.ServerURL and configures the underlying
// HTTP client with the resolved base URL and request timeout.
func NewHTTPRosterClient(cfg config.ViewerConfig, logger *logger.Logger) (RosterClient, error) {
	baseURL, err := normalizeBaseURL(cfg.ServerURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server url: %w", err)
	}

	client := utils.NewHTTPClient()
	client.
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout)

	return &httpRosterClient{client: client, baseURL: baseURL, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyAddress
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpRosterClient) PlayerProfiles(ctx context.Context) ([]models.PlayerProfile, error) {
	var profiles []models.PlayerProfile

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetResult(&profiles).
		Get("/api/profiles/player")
	if err != nil {
		return nil, fmt.Errorf("player profiles request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	if profiles == nil {
		profiles = []models.PlayerProfile{}
	}
	h.logger.Debug().Str("func", "*httpRosterClient.PlayerProfiles").Int("count", len(profiles)).Msg("roster fetched")
	return profiles, nil
}

func (h *httpRosterClient) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		Get("/api/version")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.String()), nil
}

package config

import (
	"fmt"
	"time"
)

// ViewerConfig is the configuration of the terminal player board, assembled
// from [StructuredConfig].
type ViewerConfig struct {
	// ServerURL is the base URL of the roster server.
	ServerURL string
	// RequestTimeout is the default timeout for outbound viewer requests.
	RequestTimeout time.Duration
	// Version is reported in the board footer next to the server version.
	Version string
}

// GetViewerConfig builds and validates the viewer config from the merged
// structured configuration.
func GetViewerConfig() (*ViewerConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	viewerCfg := newViewerConfig(cfg)
	return viewerCfg, viewerCfg.validate()
}

func newViewerConfig(cfg *StructuredConfig) *ViewerConfig {
	return &ViewerConfig{
		ServerURL:      cfg.Viewer.ServerURL,
		RequestTimeout: cfg.Viewer.RequestTimeout,
		Version:        cfg.App.Version,
	}
}

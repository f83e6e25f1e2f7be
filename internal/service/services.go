package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/influence-roster/internal/broadcast"
	"github.com/MKhiriev/influence-roster/internal/config"
	"github.com/MKhiriev/influence-roster/internal/logger"
	"github.com/MKhiriev/influence-roster/internal/store"
)

type Services struct {
	RosterService  RosterService
	PhotoService   PhotoService
	AppInfoService AppInfoService
}

// NewServices loads the roster and wires the services on top of storages.
// Roster events go to notifier.
func NewServices(ctx context.Context, storages *store.Storages, notifier broadcast.Notifier, cfg *config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	roster, err := NewRosterService(ctx, storages.Profiles, notifier, cfg.Storage, logger)
	if err != nil {
		return nil, err
	}

	appInfo, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	photos := NewPhotoValidationService().Wrap(
		NewPhotoService(roster, storages, cfg.Storage.Blobs, logger),
	)

	return &Services{
		RosterService:  roster,
		PhotoService:   photos,
		AppInfoService: appInfo,
	}, nil
}

package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/influence-roster/internal/adapter"
	"github.com/MKhiriev/influence-roster/internal/broadcast"
	"github.com/MKhiriev/influence-roster/internal/config"
	"github.com/MKhiriev/influence-roster/internal/handler"
	"github.com/MKhiriev/influence-roster/internal/logger"
	"github.com/MKhiriev/influence-roster/internal/server"
	"github.com/MKhiriev/influence-roster/internal/service"
	"github.com/MKhiriev/influence-roster/internal/store"
	"github.com/MKhiriev/influence-roster/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("influence-roster-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.App.Version == config.DefaultVersion && buildVersion != "N/A" {
		cfg.App.Version = buildVersion
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	profiles, err := store.NewPersistenceBackend(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating persistence backend")
	}

	var blobs store.BlobStore
	if cfg.Storage.Blobs.RemoteURL != "" {
		blobs, err = adapter.NewHTTPBlobStore(cfg.Storage.Blobs, log)
	} else {
		blobs, err = store.NewBlobDirStorage(cfg.Storage.Blobs.Dir, log)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("error creating photo store")
	}

	storages := store.NewStorages(profiles, blobs)
	hub := broadcast.NewHub(log)

	services, err := service.NewServices(ctx, storages, hub, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, hub, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	bgWorkers := workers.NewWorkers(services, hub, cfg.Workers, log)

	srv, err := server.NewServer(handlers, bgWorkers, services.RosterService, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}

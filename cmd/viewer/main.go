package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MKhiriev/influence-roster/internal/adapter"
	"github.com/MKhiriev/influence-roster/internal/config"
	"github.com/MKhiriev/influence-roster/internal/logger"
	"github.com/MKhiriev/influence-roster/internal/tui"
	"github.com/MKhiriev/influence-roster/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	// the board owns the terminal, so logs go to a file
	log := logger.NewFileLogger("influence-roster-viewer", filepath.Join(os.TempDir(), "influence-roster-viewer.log"))

	cfg, err := config.GetViewerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	client, err := adapter.NewHTTPRosterClient(*cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating roster client")
	}

	ui := tui.New(client, cfg, models.NewAppBuildInfo(buildVersion, buildDate, buildCommit), log)
	if err = ui.Run(context.Background()); err != nil && !errors.Is(err, tui.ErrUserQuit) {
		log.Fatal().Err(err).Msg("viewer run error")
	}
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

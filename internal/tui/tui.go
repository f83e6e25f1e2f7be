package tui

import (
	"context"
	"errors"

	"github.com/MKhiriev/influence-roster/internal/adapter"
	"github.com/MKhiriev/influence-roster/internal/config"
	"github.com/MKhiriev/influence-roster/internal/logger"
	"github.com/MKhiriev/influence-roster/models"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUserQuit = errors.New("user quit the board")

type TUI struct {
	client    adapter.RosterClient
	serverURL string
	buildInfo models.AppBuildInfo
	logger    *logger.Logger
}

func New(client adapter.RosterClient, cfg *config.ViewerConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) *TUI {
	return &TUI{
		client:    client,
		serverURL: cfg.ServerURL,
		buildInfo: buildInfo,
		logger:    logger,
	}
}

// Run shows the player board until the user quits or ctx is cancelled.
func (t *TUI) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := newBoardModel(ctx, t.client, adapter.Subscribe, t.serverURL, t.buildInfo)
	finalModel, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(boardModel)
	if !ok {
		return tea.ErrProgramKilled
	}
	if result.quitByUser {
		t.logger.Info().Msg("player board closed by user")
		return ErrUserQuit
	}
	return nil
}

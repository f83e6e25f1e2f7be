// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/MKhiriev/influence-roster/internal/config"
	"github.com/MKhiriev/influence-roster/internal/logger"
)

const backupFilePrefix = "roster-"

// Exporter returns the persisted roster document.
type Exporter interface {
	Export(ctx context.Context) ([]byte, error)
}

// BackupWorker writes the exported roster to BackupDir every interval as
// roster-<UTC timestamp>.json.
type BackupWorker struct {
	roster   Exporter
	dir      string
	interval time.Duration
	timeout  time.Duration
	now      func() time.Time

	stop     chan struct{}
	stopOnce sync.Once

	logger *logger.Logger
}

func NewBackupWorker(roster Exporter, cfg config.Workers, logger *logger.Logger) *BackupWorker {
	return &BackupWorker{
		roster:   roster,
		dir:      cfg.BackupDir,
		interval: cfg.BackupInterval,
		timeout:  cfg.BackupInterval,
		now:      time.Now,
		stop:     make(chan struct{}),
		logger:   logger,
	}
}

func (b *BackupWorker) Run() {
	b.logger.Info().Str("dir", b.dir).Dur("interval", b.interval).Msg("roster backup worker started")

	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		select {
		case <-b.stop:
			b.logger.Info().Msg("roster backup worker stopped")
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
			path, err := b.Backup(ctx)
			cancel()
			if err != nil {
				b.logger.Err(err).Str("func", "*BackupWorker.Run").Msg("roster backup failed")
				continue
			}
			b.logger.Debug().Str("path", path).Msg("roster backup written")
		}
	}
}

func (b *BackupWorker) Stop() {
	b.stopOnce.Do(func() { close(b.stop) })
}

// Backup writes one backup file and returns its path.
func (b *BackupWorker) Backup(ctx context.Context) (string, error) {
	raw, err := b.roster.Export(ctx)
	if err != nil {
		return "", fmt.Errorf("error exporting roster: %w", err)
	}

	if err = os.MkdirAll(b.dir, 0o755); err != nil {
		return "", fmt.Errorf("error creating backup dir: %w", err)
	}

	name := backupFilePrefix + b.now().UTC().Format("20060102-150405") + ".json"
	path := filepath.Join(b.dir, name)

	tmp, err := os.CreateTemp(b.dir, "."+backupFilePrefix+"*")
	if err != nil {
		return "", fmt.Errorf("error creating backup file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(raw); err != nil {
		tmp.Close()
		return "", fmt.Errorf("error writing backup: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return "", fmt.Errorf("error writing backup: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("error writing backup: %w", err)
	}
	return path, nil
}

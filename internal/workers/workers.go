package workers

import (
	"sync"

	"github.com/MKhiriev/influence-roster/internal/broadcast"
	"github.com/MKhiriev/influence-roster/internal/config"
	"github.com/MKhiriev/influence-roster/internal/logger"
	"github.com/MKhiriev/influence-roster/internal/service"
)

type Workers struct {
	workers []Worker
	wg      sync.WaitGroup
}

// NewWorkers returns the background workers of the server: the broadcast
// hub and, when cfg enables it, the periodic roster backup.
func NewWorkers(services *service.Services, hub *broadcast.Hub, cfg config.Workers, logger *logger.Logger) *Workers {
	ws := []Worker{hub}
	if cfg.BackupInterval > 0 && cfg.BackupDir != "" {
		ws = append(ws, NewBackupWorker(services.RosterService, cfg, logger))
	} else {
		logger.Info().Msg("roster backups are disabled")
	}
	return &Workers{workers: ws}
}

// Run starts every worker in its own goroutine and returns immediately.
func (w *Workers) Run() {
	for _, worker := range w.workers {
		w.wg.Add(1)
		go func(worker Worker) {
			defer w.wg.Done()
			worker.Run()
		}(worker)
	}
}

// Stop stops the workers in reverse start order and waits for their Run
// calls to return.
func (w *Workers) Stop() {
	for i := len(w.workers) - 1; i >= 0; i-- {
		w.workers[i].Stop()
	}
	w.wg.Wait()
}

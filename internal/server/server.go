package server

import (
	"context"
	"net"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/MKhiriev/influence-roster/internal/config"
	"github.com/MKhiriev/influence-roster/internal/handler"
	"github.com/MKhiriev/influence-roster/internal/logger"
)

type server struct {
	httpServer      *httpServer
	workers         BackgroundWorkers
	roster          Flusher
	shutdownTimeout time.Duration
	shutdownOnce    sync.Once
	logger          *logger.Logger
}

func NewServer(handlers *handler.Handlers, workers BackgroundWorkers, roster Flusher, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if handlers == nil || handlers.HTTP == nil || cfg.HTTPAddress == "" {
		return nil, errNoServersAreCreated
	}

	return &server{
		httpServer:      newHTTPServer(handlers.HTTP.Init(), cfg, logger),
		workers:         workers,
		roster:          roster,
		shutdownTimeout: cfg.ShutdownTimeout,
		logger:          logger,
	}, nil
}

func (s *server) RunServer() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	s.run(ctx, s.httpServer.RunServer)
}

// Shutdown drains HTTP requests, stops the workers and flushes the roster,
// in that order. Later calls are no-ops.
func (s *server) Shutdown() {
	s.shutdownOnce.Do(func() {
		ctx := context.Background()
		if s.shutdownTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, s.shutdownTimeout)
			defer cancel()
		}

		s.httpServer.Shutdown(ctx)

		if s.workers != nil {
			s.workers.Stop()
		}

		if s.roster != nil {
			if err := s.roster.Close(ctx); err != nil {
				s.logger.Err(err).Str("func", "*server.Shutdown").Msg("final roster flush failed")
			}
		}
	})
}

func (s *server) serve(ctx context.Context, l net.Listener) {
	s.run(ctx, func() { s.httpServer.Serve(l) })
}

func (s *server) run(ctx context.Context, listen func()) {
	idleConnectionsClosed := make(chan struct{})

	// listen for stop signals
	go func() {
		<-ctx.Done()
		s.Shutdown()
		close(idleConnectionsClosed)
	}()

	if s.workers != nil {
		s.logger.Info().Msg("launching background workers")
		s.workers.Run()
	}

	s.logger.Info().Str("addr", s.httpServer.server.Addr).Msg("launching HTTP server")
	go listen()

	<-idleConnectionsClosed
	s.logger.Info().Msg("server shutdown gracefully")
}

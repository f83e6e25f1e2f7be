package http

import (
	"net/http"

	"github.com/MKhiriev/influence-roster/internal/logger"
	"github.com/MKhiriev/influence-roster/internal/service"
	"github.com/MKhiriev/influence-roster/internal/validators"
)

// Subscriptions upgrades a request to a live roster subscription.
type Subscriptions interface {
	ServeWS(w http.ResponseWriter, r *http.Request)
}

type Handler struct {
	services      *service.Services
	subscriptions Subscriptions
	validator     validators.Validator

	logger *logger.Logger
}

func NewHandler(services *service.Services, subscriptions Subscriptions, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:      services,
		subscriptions: subscriptions,
		validator:     validators.NewRequestValidator(),
		logger:        logger,
	}
}

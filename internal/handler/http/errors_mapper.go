package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/influence-roster/internal/logger"
	"github.com/MKhiriev/influence-roster/internal/service"
	"github.com/MKhiriev/influence-roster/internal/store"
	"github.com/MKhiriev/influence-roster/internal/utils"
	"github.com/MKhiriev/influence-roster/internal/validators"
	"github.com/MKhiriev/influence-roster/models"
)

var errorStatusMap = map[error]int{
	validators.ErrValidation: http.StatusBadRequest,

	service.ErrProfileNotFound:     http.StatusNotFound,
	service.ErrUnknownCategory:     http.StatusNotFound,
	service.ErrItemIndexOutOfRange: http.StatusNotFound,
	service.ErrPersistence:         http.StatusServiceUnavailable,

	store.ErrPhotoNotFound:  http.StatusNotFound,
	store.ErrInvalidPhotoID: http.StatusBadRequest,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError answers with the failure envelope. Internal errors are logged
// and reported without details.
func writeError(w http.ResponseWriter, r *http.Request, funcName string, err error) {
	status := statusFromError(err)
	message := err.Error()

	event := logger.FromRequest(r).Warn()
	if status >= http.StatusInternalServerError {
		event = logger.FromRequest(r).Error()
	}
	event.Err(err).Str("func", funcName).Int("status", status).Msg("request failed")

	if status == http.StatusInternalServerError {
		message = http.StatusText(status)
	}
	utils.WriteJSON(w, models.Response{Success: false, Error: message}, status)
}

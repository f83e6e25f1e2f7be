package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/influence-roster/internal/utils"
	"github.com/MKhiriev/influence-roster/models"
)

const imagesPathPrefix = "/images/"

func (h *Handler) uploadPhoto(w http.ResponseWriter, r *http.Request) {
	data, contentType, ok, err := readPhoto(w, r)
	if err != nil {
		writeError(w, r, "*Handler.uploadPhoto", err)
		return
	}
	if !ok {
		writeError(w, r, "*Handler.uploadPhoto", ErrMissingPhoto)
		return
	}

	photoID, err := h.services.PhotoService.Upload(r.Context(), data, contentType)
	if err != nil {
		writeError(w, r, "*Handler.uploadPhoto", err)
		return
	}

	utils.WriteJSON(w, models.PhotoResponse{
		Response: models.Response{Success: true},
		PhotoID:  photoID,
		URL:      imagesPathPrefix + photoID,
	}, http.StatusCreated)
}

func (h *Handler) replacePhoto(w http.ResponseWriter, r *http.Request) {
	photoID := chi.URLParam(r, "id")

	data, contentType, ok, err := readPhoto(w, r)
	if err != nil {
		writeError(w, r, "*Handler.replacePhoto", err)
		return
	}
	if !ok {
		writeError(w, r, "*Handler.replacePhoto", ErrMissingPhoto)
		return
	}

	if err = h.services.PhotoService.Replace(r.Context(), photoID, data, contentType); err != nil {
		writeError(w, r, "*Handler.replacePhoto", err)
		return
	}

	utils.WriteJSON(w, models.PhotoResponse{
		Response: models.Response{Success: true},
		PhotoID:  photoID,
		URL:      imagesPathPrefix + photoID,
	}, http.StatusOK)
}

func (h *Handler) getImage(w http.ResponseWriter, r *http.Request) {
	photo, err := h.services.PhotoService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, "*Handler.getImage", err)
		return
	}

	w.Header().Set("Content-Type", photo.ContentType)
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	w.Write(photo.Data)
}

package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/influence-roster/models"
)

type legacyToggleRequest struct {
	ProfileID    string          `json:"profile_id"`
	ProfileIndex json.Number     `json:"profile_index"`
	Category     models.Category `json:"category"`
	ItemIndex    *int            `json:"item_index"`
}

func (h *Handler) legacyEditProfile(w http.ResponseWriter, r *http.Request) {
	raw, err := decodeJSONMap(r.Body)
	if err != nil {
		writeError(w, r, "*Handler.legacyEditProfile", err)
		return
	}
	ref, err := refFromBody(raw)
	if err != nil {
		writeError(w, r, "*Handler.legacyEditProfile", err)
		return
	}
	h.applyUpdate(w, r, ref, raw)
}

func (h *Handler) legacyDeleteProfile(w http.ResponseWriter, r *http.Request) {
	ref, ok := h.legacyRef(w, r, "*Handler.legacyDeleteProfile")
	if !ok {
		return
	}
	h.delete(w, r, ref)
}

func (h *Handler) legacyToggleReveal(w http.ResponseWriter, r *http.Request) {
	var req legacyToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, "*Handler.legacyToggleReveal", fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	ref, err := refFromBody(map[string]any{"profile_id": req.ProfileID, "profile_index": req.ProfileIndex})
	if err != nil {
		writeError(w, r, "*Handler.legacyToggleReveal", err)
		return
	}
	h.toggle(w, r, ref, models.ToggleRevealRequest{Category: req.Category, ItemIndex: req.ItemIndex})
}

func (h *Handler) legacyIncrementSuccess(w http.ResponseWriter, r *http.Request) {
	ref, ok := h.legacyRef(w, r, "*Handler.legacyIncrementSuccess")
	if !ok {
		return
	}
	profile, err := h.services.RosterService.IncrementSuccess(r.Context(), ref)
	if err != nil {
		writeError(w, r, "*Handler.legacyIncrementSuccess", err)
		return
	}
	h.writeProfileAt(w, r, profile)
}

func (h *Handler) legacyResetSuccess(w http.ResponseWriter, r *http.Request) {
	ref, ok := h.legacyRef(w, r, "*Handler.legacyResetSuccess")
	if !ok {
		return
	}
	profile, err := h.services.RosterService.ResetSuccess(r.Context(), ref)
	if err != nil {
		writeError(w, r, "*Handler.legacyResetSuccess", err)
		return
	}
	h.writeProfileAt(w, r, profile)
}

func (h *Handler) legacyRef(w http.ResponseWriter, r *http.Request, funcName string) (models.ProfileRef, bool) {
	raw, err := decodeJSONMap(r.Body)
	if err != nil {
		writeError(w, r, funcName, err)
		return models.ProfileRef{}, false
	}
	ref, err := refFromBody(raw)
	if err != nil {
		writeError(w, r, funcName, err)
		return models.ProfileRef{}, false
	}
	return ref, true
}

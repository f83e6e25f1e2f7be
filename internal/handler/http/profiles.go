// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/influence-roster/internal/logger"
	"github.com/MKhiriev/influence-roster/internal/utils"
	"github.com/MKhiriev/influence-roster/internal/validators"
	"github.com/MKhiriev/influence-roster/models"
)

func (h *Handler) listMasterProfiles(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.RosterService.MasterView(r.Context()), http.StatusOK)
}

func (h *Handler) listPlayerProfiles(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.RosterService.PlayerView(r.Context()), http.StatusOK)
}

// createProfile accepts JSON, urlencoded or multipart bodies. A multipart
// body may carry the portrait as the "photo" file.
func (h *Handler) createProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	raw, err := decodeRawFields(r)
	if err != nil {
		writeError(w, r, "*Handler.createProfile", err)
		return
	}
	fields, err := validators.ParseProfileFields(raw)
	if err != nil {
		writeError(w, r, "*Handler.createProfile", err)
		return
	}

	if isMultipart(r) {
		data, contentType, ok, err := readPhoto(w, r)
		if err != nil {
			writeError(w, r, "*Handler.createProfile", err)
			return
		}
		if ok {
			photoID, err := h.services.PhotoService.Upload(ctx, data, contentType)
			if err != nil {
				writeError(w, r, "*Handler.createProfile", err)
				return
			}
			fields.PhotoID = &photoID
		}
	}

	index, profile, err := h.services.RosterService.Create(ctx, fields)
	if err != nil {
		writeError(w, r, "*Handler.createProfile", err)
		return
	}

	logger.FromRequest(r).Info().Str("profile_id", profile.ID).Int("index", index).Msg("profile created")
	writeProfile(w, index, profile, http.StatusCreated)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	raw, err := decodeRawFields(r)
	if err != nil {
		writeError(w, r, "*Handler.updateProfile", err)
		return
	}
	h.applyUpdate(w, r, profileRefFromURL(r), raw)
}

func (h *Handler) applyUpdate(w http.ResponseWriter, r *http.Request, ref models.ProfileRef, raw map[string]any) {
	fields, err := validators.ParseProfileFields(raw)
	if err != nil {
		writeError(w, r, "*Handler.updateProfile", err)
		return
	}

	profile, err := h.services.RosterService.Update(r.Context(), ref, fields)
	if err != nil {
		writeError(w, r, "*Handler.updateProfile", err)
		return
	}
	h.writeProfileAt(w, r, profile)
}

func (h *Handler) deleteProfile(w http.ResponseWriter, r *http.Request) {
	h.delete(w, r, profileRefFromURL(r))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request, ref models.ProfileRef) {
	if err := h.services.RosterService.Delete(r.Context(), ref); err != nil {
		writeError(w, r, "*Handler.deleteProfile", err)
		return
	}
	utils.WriteJSON(w, models.Response{Success: true}, http.StatusOK)
}

func (h *Handler) toggleReveal(w http.ResponseWriter, r *http.Request) {
	var req models.ToggleRevealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, "*Handler.toggleReveal", fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}
	h.toggle(w, r, profileRefFromURL(r), req)
}

func (h *Handler) toggle(w http.ResponseWriter, r *http.Request, ref models.ProfileRef, req models.ToggleRevealRequest) {
	ctx := r.Context()

	if err := h.validator.Validate(ctx, req); err != nil {
		writeError(w, r, "*Handler.toggleReveal", err)
		return
	}

	profile, err := h.services.RosterService.ToggleReveal(ctx, ref, req.Category, *req.ItemIndex)
	if err != nil {
		writeError(w, r, "*Handler.toggleReveal", err)
		return
	}
	h.writeProfileAt(w, r, profile)
}

func (h *Handler) incrementSuccess(w http.ResponseWriter, r *http.Request) {
	profile, err := h.services.RosterService.IncrementSuccess(r.Context(), profileRefFromURL(r))
	if err != nil {
		writeError(w, r, "*Handler.incrementSuccess", err)
		return
	}
	h.writeProfileAt(w, r, profile)
}

func (h *Handler) resetSuccess(w http.ResponseWriter, r *http.Request) {
	profile, err := h.services.RosterService.ResetSuccess(r.Context(), profileRefFromURL(r))
	if err != nil {
		writeError(w, r, "*Handler.resetSuccess", err)
		return
	}
	h.writeProfileAt(w, r, profile)
}

func (h *Handler) attachPhoto(w http.ResponseWriter, r *http.Request) {
	data, contentType, ok, err := readPhoto(w, r)
	if err != nil {
		writeError(w, r, "*Handler.attachPhoto", err)
		return
	}
	if !ok {
		writeError(w, r, "*Handler.attachPhoto", ErrMissingPhoto)
		return
	}

	profile, err := h.services.PhotoService.AttachToProfile(r.Context(), profileRefFromURL(r), data, contentType)
	if err != nil {
		writeError(w, r, "*Handler.attachPhoto", err)
		return
	}
	h.writeProfileAt(w, r, profile)
}

// writeProfileAt answers with profile and its current position.
func (h *Handler) writeProfileAt(w http.ResponseWriter, r *http.Request, profile models.Profile) {
	index, current, err := h.services.RosterService.Get(r.Context(), models.RefByID(profile.ID))
	if err != nil {
		// deleted by a concurrent request after the mutation
		index, current = -1, profile
	}
	writeProfile(w, index, current, http.StatusOK)
}

func writeProfile(w http.ResponseWriter, index int, profile models.Profile, status int) {
	utils.WriteJSON(w, models.ProfileResponse{
		Response: models.Response{Success: true},
		Index:    index,
		Profile:  &profile,
	}, status)
}

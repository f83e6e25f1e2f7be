package http

import (
	"fmt"
	"net/http"
	"time"
)

const exportFileName = "profiles"

// exportProfiles sends the persisted roster document as a download.
func (h *Handler) exportProfiles(w http.ResponseWriter, r *http.Request) {
	raw, err := h.services.RosterService.Export(r.Context())
	if err != nil {
		writeError(w, r, "*Handler.exportProfiles", err)
		return
	}

	filename := fmt.Sprintf("%s-%s.json", exportFileName, time.Now().UTC().Format("20060102-150405"))
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(raw)
}

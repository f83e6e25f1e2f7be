package http

import "net/http"

// subscribe hands the request to the broadcast hub, which answers 400 for an
// unknown ?view= and upgrades otherwise.
func (h *Handler) subscribe(w http.ResponseWriter, r *http.Request) {
	h.subscriptions.ServeWS(w, r)
}

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)

	// the upgrade needs the raw connection, so no logging or gzip wrappers
	router.Get("/ws", h.subscribe)

	router.Group(func(r chi.Router) {
		r.Use(h.withLogging)
		r.Use(withGZip)

		r.Get("/api/profiles", h.listMasterProfiles)
		r.Get("/api/profiles/player", h.listPlayerProfiles)
		r.Post("/api/profiles", h.createProfile)
		r.Put("/api/profiles/{ref}", h.updateProfile)
		r.Patch("/api/profiles/{ref}", h.updateProfile)
		r.Delete("/api/profiles/{ref}", h.deleteProfile)
		r.Post("/api/profiles/{ref}/reveal", h.toggleReveal)
		r.Post("/api/profiles/{ref}/successes/increment", h.incrementSuccess)
		r.Post("/api/profiles/{ref}/successes/reset", h.resetSuccess)
		r.Post("/api/profiles/{ref}/photo", h.attachPhoto)

		r.Post("/api/photos", h.uploadPhoto)
		r.Put("/api/photos/{id}", h.replacePhoto)
		r.Get("/images/{id}", h.getImage)

		r.Get("/api/export", h.exportProfiles)
		r.Get("/api/version", h.getServerVersion)
	})

	// routes kept for clients that address profiles by index in the body
	router.Group(func(r chi.Router) {
		r.Use(h.withLogging)

		r.Get("/api/get_profiles", h.listMasterProfiles)
		r.Post("/api/create_profile", h.createProfile)
		r.Post("/api/edit_profile", h.legacyEditProfile)
		r.Post("/api/delete_profile", h.legacyDeleteProfile)
		r.Post("/api/toggle_reveal", h.legacyToggleReveal)
		r.Post("/api/increment_success", h.legacyIncrementSuccess)
		r.Post("/api/reset_success", h.legacyResetSuccess)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

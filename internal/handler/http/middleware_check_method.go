// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/influence-roster/internal/utils"
	"github.com/MKhiriev/influence-roster/models"
)

// CheckHTTPMethod is registered as the router's MethodNotAllowed handler.
// Unsupported methods get the regular 404 failure envelope instead of chi's
// bare 405, so API clients see one error shape for every unknown route.
func CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		if router.Match(chi.NewRouteContext(), r.Method, r.URL.Path) {
			router.ServeHTTP(w, r)
			return
		}

		utils.WriteJSON(w, models.Response{
			Success: false,
			Error:   http.StatusText(http.StatusNotFound),
		}, http.StatusNotFound)
	}
}

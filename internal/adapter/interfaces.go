// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the outbound transports of the roster: the
// viewer's client of the roster server and the remote photo blob store.
//
// [RosterClient] decouples the terminal board from the REST API,
// [Subscribe] streams player-view pushes over the websocket endpoint and
// [NewHTTPBlobStore] keeps photos in an HTTP object store.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrNotFound] for 404, [ErrUnavailable] for 503).
package adapter

import (
	"context"

	"github.com/MKhiriev/influence-roster/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// RosterClient reads the player-safe roster from the roster server.
type RosterClient interface {
	// PlayerProfiles fetches GET /api/profiles/player.
	PlayerProfiles(ctx context.Context) ([]models.PlayerProfile, error)

	// Version fetches the plain-text server version from GET /api/version.
	Version(ctx context.Context) (string, error)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package broadcast fans roster snapshots out to connected viewers.
package broadcast

//go:generate mockgen -source=interfaces.go -destination=../mock/broadcast_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/influence-roster/models"
)

// Notifier receives every roster event. Notify must not block on slow
// subscribers; delivery happens asynchronously.
type Notifier interface {
	Notify(ctx context.Context, event models.RosterEvent)
}

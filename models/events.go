// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// EventProfilesUpdated is the only roster event. Each one carries the full
// state; receivers replace what they hold instead of applying a diff.
const EventProfilesUpdated = "profiles_updated"

// View selects which projection a subscriber receives.
type View string

const (
	MasterView View = "gm"
	PlayerView View = "player"
)

// Valid reports whether v is a known view.
func (v View) Valid() bool {
	return v == MasterView || v == PlayerView
}

// RosterEvent is published after every mutation. Master and Player hold the
// same roster under the two projections; Revision grows by one per mutation.
type RosterEvent struct {
	Name     string
	Revision uint64
	Master   []MasterProfile
	Player   []PlayerProfile
}

// RosterMessage is the wire form of a [RosterEvent] for one view.
type RosterMessage struct {
	Event    string `json:"event"`
	Revision uint64 `json:"revision"`
	View     View   `json:"view"`
	Profiles any    `json:"profiles"`
}

// MessageFor renders the event for subscribers of view v.
func (e RosterEvent) MessageFor(v View) RosterMessage {
	msg := RosterMessage{Event: e.Name, Revision: e.Revision, View: v}
	if v == MasterView {
		msg.Profiles = e.Master
	} else {
		msg.Profiles = e.Player
	}
	return msg
}

// PlayerRosterMessage is the decoded form of a player-view push.
type PlayerRosterMessage struct {
	Event    string          `json:"event"`
	Revision uint64          `json:"revision"`
	View     View            `json:"view"`
	Profiles []PlayerProfile `json:"profiles"`
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ProfileRef addresses a profile either by its stable ID or by its current
// position. ID wins when both are set.
type ProfileRef struct {
	ID    string `json:"profile_id,omitempty"`
	Index int    `json:"profile_index"`
}

// RefByIndex returns a reference to the profile at position i.
func RefByIndex(i int) ProfileRef {
	return ProfileRef{Index: i}
}

// RefByID returns a reference to the profile with the given ID.
func RefByID(id string) ProfileRef {
	return ProfileRef{ID: id}
}

// ItemInput is a normalized item list entry. Revealed is nil when the input
// did not state a reveal flag, in which case the positional value is kept.
type ItemInput struct {
	Text     string
	Revealed *bool
}

// ProfileFields carries normalized profile input. A nil field was absent from
// the input and is left unchanged on update (or defaulted on create).
type ProfileFields struct {
	Name        *string
	Appearance  *string
	Background  *string
	Personality *string
	Attitude    *string
	Goal        *string
	Benefit     *string
	Special     *string

	InfluenceSuccesses *int
	SuccessesNeeded    *int

	Items map[Category][]ItemInput

	PhotoID *string
}

// ToggleRevealRequest is the body of a reveal toggle.
type ToggleRevealRequest struct {
	Category  Category `json:"category"`
	ItemIndex *int     `json:"item_index"`
}

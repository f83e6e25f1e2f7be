// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Category names one of the four revealable item lists of a [Profile].
type Category string

const (
	Biases          Category = "biases"
	Strengths       Category = "strengths"
	Weaknesses      Category = "weaknesses"
	InfluenceSkills Category = "influence_skills"
)

// Categories lists every item category in display order.
var Categories = []Category{Biases, Strengths, Weaknesses, InfluenceSkills}

// Valid reports whether c is one of the known item categories.
func (c Category) Valid() bool {
	switch c {
	case Biases, Strengths, Weaknesses, InfluenceSkills:
		return true
	default:
		return false
	}
}

// Item is a single entry of an item list together with its reveal state.
// Keeping text and flag in one value makes the two always index-aligned.
type Item struct {
	Text     string `json:"text"`
	Revealed bool   `json:"revealed"`
}

// Profile is one character record of the roster.
//
// ID is assigned once at creation and never changes; the position of the
// profile in the roster is derived and shifts when earlier profiles are
// deleted.
type Profile struct {
	ID string `json:"id"`

	Name        string `json:"name"`
	Appearance  string `json:"appearance"`
	Background  string `json:"background"`
	Personality string `json:"personality"`
	Attitude    string `json:"attitude"`
	Goal        string `json:"goal"`
	Benefit     string `json:"benefit"`
	Special     string `json:"special"`

	// InfluenceSuccesses is not clamped to SuccessesNeeded.
	InfluenceSuccesses int `json:"influence_successes"`
	SuccessesNeeded    int `json:"successes_needed"`

	Biases          []Item `json:"biases"`
	Strengths       []Item `json:"strengths"`
	Weaknesses      []Item `json:"weaknesses"`
	InfluenceSkills []Item `json:"influence_skills"`

	// PhotoID is a blob store identifier; empty means no photo.
	PhotoID string `json:"photo_id,omitempty"`
}

// NewProfile returns a profile with the documented defaults.
func NewProfile(id string) Profile {
	return Profile{
		ID:              id,
		SuccessesNeeded: 1,
		Biases:          []Item{},
		Strengths:       []Item{},
		Weaknesses:      []Item{},
		InfluenceSkills: []Item{},
	}
}

// Items returns the item list for category c, or nil for an unknown category.
func (p *Profile) Items(c Category) []Item {
	switch c {
	case Biases:
		return p.Biases
	case Strengths:
		return p.Strengths
	case Weaknesses:
		return p.Weaknesses
	case InfluenceSkills:
		return p.InfluenceSkills
	default:
		return nil
	}
}

// SetItems replaces the item list for category c. Unknown categories are
// ignored.
func (p *Profile) SetItems(c Category, items []Item) {
	switch c {
	case Biases:
		p.Biases = items
	case Strengths:
		p.Strengths = items
	case Weaknesses:
		p.Weaknesses = items
	case InfluenceSkills:
		p.InfluenceSkills = items
	}
}

// Clone returns a deep copy of p. Item slices of the copy never alias the
// original.
func (p Profile) Clone() Profile {
	out := p
	for _, c := range Categories {
		src := p.Items(c)
		dst := make([]Item, len(src))
		copy(dst, src)
		out.SetItems(c, dst)
	}
	return out
}

// CloneProfiles deep-copies a roster.
func CloneProfiles(profiles []Profile) []Profile {
	out := make([]Profile, len(profiles))
	for i, p := range profiles {
		out[i] = p.Clone()
	}
	return out
}

// MasterProfile is the full-fidelity view shown to the game master.
type MasterProfile = Profile

// PlayerProfile is the player-safe view of a profile: item lists hold only
// the texts of revealed items and carry no reveal flags.
type PlayerProfile struct {
	ID string `json:"id"`

	Name        string `json:"name"`
	Appearance  string `json:"appearance"`
	Background  string `json:"background"`
	Personality string `json:"personality"`
	Attitude    string `json:"attitude"`
	Goal        string `json:"goal"`
	Benefit     string `json:"benefit"`
	Special     string `json:"special"`

	InfluenceSuccesses int `json:"influence_successes"`
	SuccessesNeeded    int `json:"successes_needed"`

	Biases          []string `json:"biases"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	InfluenceSkills []string `json:"influence_skills"`

	PhotoID string `json:"photo_id,omitempty"`
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"fmt"
)

// ProfileRecord is the persisted shape of a profile.
//
// Records are written in the canonical form (items as objects). Reading also
// accepts documents produced by older roster versions: items stored as plain
// strings, reveal flags stored in a parallel "revealed" map, the camelCase
// "successesNeeded" key and the "photo_filename"/"photoUrl" photo keys.
type ProfileRecord struct {
	ID string `json:"id,omitempty"`

	Name        string `json:"name"`
	Appearance  string `json:"appearance"`
	Background  string `json:"background"`
	Personality string `json:"personality"`
	Attitude    string `json:"attitude"`
	Goal        string `json:"goal"`
	Benefit     string `json:"benefit"`
	Special     string `json:"special"`

	InfluenceSuccesses int  `json:"influence_successes"`
	SuccessesNeeded    *int `json:"successes_needed,omitempty"`

	Biases          []RecordItem `json:"biases"`
	Strengths       []RecordItem `json:"strengths"`
	Weaknesses      []RecordItem `json:"weaknesses"`
	InfluenceSkills []RecordItem `json:"influence_skills"`

	PhotoID string `json:"photo_id,omitempty"`

	// legacy keys, read-only
	LegacySuccessesNeeded *int              `json:"successesNeeded,omitempty"`
	LegacyRevealed        map[string][]bool `json:"revealed,omitempty"`
	LegacyPhotoFilename   string            `json:"photo_filename,omitempty"`
	LegacyPhotoURL        string            `json:"photoUrl,omitempty"`
}

// RecordItem is a persisted item. It decodes from either {"text","revealed"}
// or a bare string.
type RecordItem struct {
	Text     string `json:"text"`
	Revealed bool   `json:"revealed"`
}

// UnmarshalJSON accepts both the object and the bare-string encodings.
func (r *RecordItem) UnmarshalJSON(b []byte) error {
	var text string
	if err := json.Unmarshal(b, &text); err == nil {
		*r = RecordItem{Text: text}
		return nil
	}

	type plain RecordItem
	var obj plain
	if err := json.Unmarshal(b, &obj); err != nil {
		return fmt.Errorf("decode profile item: %w", err)
	}
	*r = RecordItem(obj)
	return nil
}

func (r *ProfileRecord) items(c Category) []RecordItem {
	switch c {
	case Biases:
		return r.Biases
	case Strengths:
		return r.Strengths
	case Weaknesses:
		return r.Weaknesses
	case InfluenceSkills:
		return r.InfluenceSkills
	default:
		return nil
	}
}

// ToProfile converts a persisted record into a [Profile]. A record without an
// ID keeps an empty ID; callers assign one.
func (r ProfileRecord) ToProfile() Profile {
	p := NewProfile(r.ID)
	p.Name = r.Name
	p.Appearance = r.Appearance
	p.Background = r.Background
	p.Personality = r.Personality
	p.Attitude = r.Attitude
	p.Goal = r.Goal
	p.Benefit = r.Benefit
	p.Special = r.Special
	p.InfluenceSuccesses = r.InfluenceSuccesses

	switch {
	case r.SuccessesNeeded != nil:
		p.SuccessesNeeded = *r.SuccessesNeeded
	case r.LegacySuccessesNeeded != nil:
		p.SuccessesNeeded = *r.LegacySuccessesNeeded
	}

	for _, c := range Categories {
		src := r.items(c)
		flags := r.LegacyRevealed[string(c)]
		items := make([]Item, len(src))
		for i, it := range src {
			items[i] = Item{Text: it.Text, Revealed: it.Revealed}
			if i < len(flags) {
				items[i].Revealed = flags[i]
			}
		}
		p.SetItems(c, items)
	}

	switch {
	case r.PhotoID != "":
		p.PhotoID = r.PhotoID
	case r.LegacyPhotoFilename != "":
		p.PhotoID = r.LegacyPhotoFilename
	case r.LegacyPhotoURL != "":
		p.PhotoID = PhotoIDFromReference(r.LegacyPhotoURL)
	}

	return p
}

// NewProfileRecord converts a profile into its canonical persisted form.
func NewProfileRecord(p Profile) ProfileRecord {
	needed := p.SuccessesNeeded
	r := ProfileRecord{
		ID:                 p.ID,
		Name:               p.Name,
		Appearance:         p.Appearance,
		Background:         p.Background,
		Personality:        p.Personality,
		Attitude:           p.Attitude,
		Goal:               p.Goal,
		Benefit:            p.Benefit,
		Special:            p.Special,
		InfluenceSuccesses: p.InfluenceSuccesses,
		SuccessesNeeded:    &needed,
		PhotoID:            p.PhotoID,
	}

	convert := func(items []Item) []RecordItem {
		out := make([]RecordItem, len(items))
		for i, it := range items {
			out[i] = RecordItem{Text: it.Text, Revealed: it.Revealed}
		}
		return out
	}
	r.Biases = convert(p.Biases)
	r.Strengths = convert(p.Strengths)
	r.Weaknesses = convert(p.Weaknesses)
	r.InfluenceSkills = convert(p.InfluenceSkills)

	return r
}

// NewProfileRecords converts a roster into persisted records.
func NewProfileRecords(profiles []Profile) []ProfileRecord {
	out := make([]ProfileRecord, len(profiles))
	for i, p := range profiles {
		out[i] = NewProfileRecord(p)
	}
	return out
}

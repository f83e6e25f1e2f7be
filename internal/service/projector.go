// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "github.com/MKhiriev/influence-roster/models"

// ToMasterView returns a deep copy of p with every item and reveal flag.
func ToMasterView(p models.Profile) models.MasterProfile {
	return p.Clone()
}

// ToPlayerView returns what players may see of p. Scalar fields are copied
// as they are; each item list keeps only the texts of revealed items, in
// their original order, and reveal flags are dropped.
func ToPlayerView(p models.Profile) models.PlayerProfile {
	return models.PlayerProfile{
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
		SuccessesNeeded:    p.SuccessesNeeded,
		Biases:             revealedTexts(p.Biases),
		Strengths:          revealedTexts(p.Strengths),
		Weaknesses:         revealedTexts(p.Weaknesses),
		InfluenceSkills:    revealedTexts(p.InfluenceSkills),
		PhotoID:            p.PhotoID,
	}
}

func ToMasterViews(profiles []models.Profile) []models.MasterProfile {
	out := make([]models.MasterProfile, len(profiles))
	for i, p := range profiles {
		out[i] = ToMasterView(p)
	}
	return out
}

func ToPlayerViews(profiles []models.Profile) []models.PlayerProfile {
	out := make([]models.PlayerProfile, len(profiles))
	for i, p := range profiles {
		out[i] = ToPlayerView(p)
	}
	return out
}

func revealedTexts(items []models.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it.Revealed {
			out = append(out, it.Text)
		}
	}
	return out
}

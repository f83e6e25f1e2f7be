// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/influence-roster/models"
)

var itemSections = []struct {
	title string
	items func(p models.PlayerProfile) []string
}{
	{"Biases", func(p models.PlayerProfile) []string { return p.Biases }},
	{"Strengths", func(p models.PlayerProfile) []string { return p.Strengths }},
	{"Weaknesses", func(p models.PlayerProfile) []string { return p.Weaknesses }},
	{"Influence skills", func(p models.PlayerProfile) []string { return p.InfluenceSkills }},
}

func renderDetail(p models.PlayerProfile) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(valueOrDash(p.Name)))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Influence: %d / %d\n", p.InfluenceSuccesses, p.SuccessesNeeded)

	for _, f := range scalarFields(p) {
		if strings.TrimSpace(f.value) == "" {
			continue
		}
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(f.label))
		b.WriteString("\n")
		b.WriteString(f.value)
		b.WriteString("\n")
	}

	for _, s := range itemSections {
		items := s.items(p)
		if len(items) == 0 {
			continue
		}
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(s.title))
		b.WriteString("\n")
		for _, it := range items {
			b.WriteString("• ")
			b.WriteString(it)
			b.WriteString("\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

type scalarField struct {
	label string
	value string
}

func scalarFields(p models.PlayerProfile) []scalarField {
	return []scalarField{
		{"Appearance", p.Appearance},
		{"Background", p.Background},
		{"Personality", p.Personality},
		{"Attitude", p.Attitude},
		{"Goal", p.Goal},
		{"Benefit", p.Benefit},
		{"Special", p.Special},
	}
}

// playerCard is the plain-text card copied to the clipboard.
func playerCard(p models.PlayerProfile) string {
	var b strings.Builder

	b.WriteString(valueOrDash(p.Name))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Influence: %d/%d\n", p.InfluenceSuccesses, p.SuccessesNeeded)

	for _, f := range scalarFields(p) {
		if strings.TrimSpace(f.value) != "" {
			fmt.Fprintf(&b, "%s: %s\n", f.label, f.value)
		}
	}
	for _, s := range itemSections {
		if items := s.items(p); len(items) > 0 {
			fmt.Fprintf(&b, "%s: %s\n", s.title, strings.Join(items, "; "))
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

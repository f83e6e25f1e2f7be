package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/influence-roster/models"
)

func renderList(profiles []models.PlayerProfile, idx int, loading bool) string {
	if loading && len(profiles) == 0 {
		return "Loading..."
	}
	if len(profiles) == 0 {
		return "No profiles yet"
	}

	var b strings.Builder
	for i, p := range profiles {
		name := fitText(valueOrDash(p.Name), listPaneWidth-12)
		line := fmt.Sprintf("%s %d/%d", name, p.InfluenceSuccesses, p.SuccessesNeeded)
		if i == idx {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		if i < len(profiles)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

package tui

import "github.com/charmbracelet/lipgloss"

const listPaneWidth = 30

var (
	appStyle        = lipgloss.NewStyle().Padding(1, 2)
	titleStyle      = lipgloss.NewStyle().Bold(true)
	helpStyle       = lipgloss.NewStyle().Faint(true)
	errorStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	selectedStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	sectionStyle    = lipgloss.NewStyle().Underline(true)
	listPaneStyle   = lipgloss.NewStyle().Width(listPaneWidth).PaddingRight(2).Border(lipgloss.NormalBorder(), false, true, false, false)
	detailPaneStyle = lipgloss.NewStyle().PaddingLeft(2)
	overlayBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
)

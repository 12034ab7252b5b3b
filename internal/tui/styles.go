package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/efhk-flights/flightboard/internal/models"
)

// Colors matching existing output/colors.go scheme
var (
	colorCyan   = lipgloss.Color("6")  // Cyan - routes
	colorYellow = lipgloss.Color("3")  // Yellow - delayed
	colorRed    = lipgloss.Color("1")  // Red - cancelled, errors
	colorGreen  = lipgloss.Color("2")  // Green - landed
	colorBlue   = lipgloss.Color("4")  // Blue - estimated
	colorWhite  = lipgloss.Color("15") // White - times, text
	colorGray   = lipgloss.Color("8")  // Gray - muted text
)

// Text styles
var (
	styleTitle  = lipgloss.NewStyle().Foreground(colorWhite).Bold(true)
	styleTime   = lipgloss.NewStyle().Foreground(colorWhite).Bold(true)
	styleRoute  = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	styleMuted  = lipgloss.NewStyle().Foreground(colorGray)
	styleHeader = lipgloss.NewStyle().Foreground(colorWhite).Bold(true).Underline(true)
)

// Board frame
var styleBoard = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorCyan).
	Padding(0, 1)

// Status badges, one per category
var (
	styleBadge = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")). // Black text
			Bold(true).
			Padding(0, 1)

	styleLanded    = styleBadge.Background(colorGreen)
	styleDelayed   = styleBadge.Background(colorYellow)
	styleCancelled = styleBadge.Background(colorRed)
	styleEstimated = styleBadge.Background(colorBlue)
)

// Earlier/later affordances
var styleHint = lipgloss.NewStyle().Foreground(colorCyan)

// Status bar at the bottom
var styleStatusBar = lipgloss.NewStyle().
	Foreground(colorGray).
	Background(lipgloss.Color("0"))

// Loading indicator
var styleLoading = lipgloss.NewStyle().Foreground(colorYellow).Italic(true)

// Error text
var styleError = lipgloss.NewStyle().Foreground(colorRed)

// badgeStyle picks the badge style for a status category
func badgeStyle(cat models.Category) lipgloss.Style {
	switch cat {
	case models.CategoryLanded:
		return styleLanded
	case models.CategoryDelayed:
		return styleDelayed
	case models.CategoryCancelled:
		return styleCancelled
	default:
		return styleEstimated
	}
}

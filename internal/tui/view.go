package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/efhk-flights/flightboard/internal/board"
	"github.com/efhk-flights/flightboard/internal/models"
	"github.com/efhk-flights/flightboard/internal/output"
)

const (
	timeWidth  = 5
	routeWidth = 24
)

// View renders the entire TUI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	// Layout: header + board + credits + status bar
	header := m.renderHeader()
	panel := styleBoard.Render(m.renderBoard())
	credits := m.renderCredits()
	statusBar := m.renderStatusBar()

	return lipgloss.JoinVertical(lipgloss.Left, header, panel, credits, statusBar)
}

// renderHeader renders the title and the date line.
func (m Model) renderHeader() string {
	title := styleTitle.Render(m.title)
	date := styleMuted.Render(output.FormatDate(m.clock, m.loc))
	return title + "\n" + date
}

// renderBoard renders the column header, the affordances and the visible window.
func (m Model) renderBoard() string {
	var b strings.Builder

	b.WriteString(styleHeader.Render(fmt.Sprintf("%-*s", timeWidth, "Time")))
	b.WriteString("  ")
	b.WriteString(styleHeader.Render(fmt.Sprintf("%-*s", routeWidth, "Flight")))
	b.WriteString("  ")
	b.WriteString(styleHeader.Render("Status"))
	b.WriteString("\n")

	if board.CanRetreat(m.board) {
		b.WriteString(styleHint.Render("▲ Show earlier flights"))
		b.WriteString("\n")
	}

	if m.board.Loading {
		b.WriteString(m.spinner.View() + " " + styleLoading.Render(output.LoadingMessage))
		b.WriteString("\n")
	}
	if board.HasError(m.board) {
		b.WriteString(styleError.Render(m.board.Err))
		b.WriteString("\n")
	}

	window := board.Window(m.board)
	if len(window) == 0 && !m.board.Loading && !board.HasError(m.board) {
		b.WriteString(styleMuted.Render("No arriving flights."))
		b.WriteString("\n")
	}
	for _, f := range window {
		b.WriteString(renderFlightLine(f, m.loc))
		b.WriteString("\n")
	}

	if board.CanAdvance(m.board) {
		b.WriteString(styleHint.Render("▼ Show later flights"))
		b.WriteString("\n")
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// renderFlightLine renders one flight as two lines: time, route and badge,
// then the flight number under the route.
func renderFlightLine(f models.Flight, loc *time.Location) string {
	timeStr := styleTime.Render(fmt.Sprintf("%-*s", timeWidth, output.FormatArrival(f, loc)))
	route := styleRoute.Render(fmt.Sprintf("%-*s", routeWidth, truncate(f.Route, routeWidth)))
	badge := badgeStyle(f.Status.Category()).Render(output.StatusLabel(f, loc))

	number := styleMuted.Render(f.Number)
	return timeStr + "  " + route + "  " + badge + "\n" +
		strings.Repeat(" ", timeWidth+2) + number
}

// renderCredits renders the data source disclaimer.
func (m Model) renderCredits() string {
	width := m.width - 2
	if width < 20 {
		width = 20
	}
	text := strings.Join(output.Credits, " ")
	return styleMuted.Width(width).Render(text)
}

// renderStatusBar renders the refresh age and key hints.
func (m Model) renderStatusBar() string {
	updated := "waiting for data"
	if !m.board.UpdatedAt.IsZero() {
		age := m.clock.Sub(m.board.UpdatedAt).Truncate(time.Second)
		if age < 0 {
			age = 0
		}
		updated = fmt.Sprintf("updated %s ago", age)
	}

	hints := m.help.View(keys)
	if m.showHelp {
		return styleMuted.Render(" "+updated) + "\n" + hints
	}
	return styleStatusBar.Width(m.width).Render(" " + updated + "  " + hints)
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "~"
}

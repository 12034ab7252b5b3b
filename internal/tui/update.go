package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/efhk-flights/flightboard/internal/board"
)

// Update handles all messages and key events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case flightsResultMsg:
		return m.handleFlightsResult(msg)

	case clockTickMsg:
		m.clock = time.Time(msg)
		return m, clockTick()

	case spinner.TickMsg:
		// The spinner only runs until the first result lands
		if !m.board.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleFlightsResult(msg flightsResultMsg) (tea.Model, tea.Cmd) {
	m.clock = m.now()
	if msg.err != nil {
		m.board = board.ApplyFetchFailure(m.board, msg.token)
		return m, nil
	}
	m.board = board.ApplyFetchSuccess(m.board, msg.token, msg.flights, m.clock)
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Earlier):
		m.board = board.Retreat(m.board)
		return m, nil

	case key.Matches(msg, keys.Later):
		m.board = board.Advance(m.board)
		return m, nil

	case key.Matches(msg, keys.Refresh):
		return m, requestRefresh(m.refresh)

	case key.Matches(msg, keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil
	}

	return m, nil
}

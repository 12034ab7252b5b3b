package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/efhk-flights/flightboard/internal/poller"
)

const clockInterval = time.Second

// clockTick returns a tea.Cmd that sends a tick every second.
func clockTick() tea.Cmd {
	return tea.Tick(clockInterval, func(t time.Time) tea.Msg {
		return clockTickMsg(t)
	})
}

// Deliver returns a poller callback that forwards results into the program.
// Send returns once the program has exited, so a late result cannot block.
func Deliver(p *tea.Program) func(poller.Result) {
	return func(r poller.Result) {
		p.Send(resultMsg(r))
	}
}

func resultMsg(r poller.Result) flightsResultMsg {
	return flightsResultMsg{
		token:   r.Token,
		flights: r.Flights,
		err:     r.Err,
	}
}

// requestRefresh asks the poller for an extra cycle.
func requestRefresh(refresh func()) tea.Cmd {
	if refresh == nil {
		return nil
	}
	return func() tea.Msg {
		refresh()
		return nil
	}
}

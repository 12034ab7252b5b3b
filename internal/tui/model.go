package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/efhk-flights/flightboard/internal/board"
	"github.com/efhk-flights/flightboard/internal/output"
)

// Options configures the board model.
type Options struct {
	// Title is the heading above the board
	Title string
	// Location is the zone arrival times are shown in
	Location *time.Location
	// Refresh asks for an extra acquisition cycle; nil disables the key
	Refresh func()
	// Now overrides the wall clock
	Now func() time.Time
}

// Model is the root Bubble Tea model for the TUI.
type Model struct {
	width  int
	height int

	board board.State
	title string
	loc   *time.Location

	spinner  spinner.Model
	help     help.Model
	showHelp bool

	refresh func()
	now     func() time.Time
	clock   time.Time
}

// New creates a new TUI model.
func New(opts Options) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styleLoading

	title := opts.Title
	if title == "" {
		title = output.Title
	}
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return Model{
		board:   board.New(board.DefaultPageSize),
		title:   title,
		loc:     loc,
		spinner: s,
		help:    help.New(),
		refresh: opts.Refresh,
		now:     now,
		clock:   now(),
	}
}

// Board returns the current board snapshot.
func (m Model) Board() board.State {
	return m.board
}

// Init starts the spinner and the clock.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, clockTick())
}

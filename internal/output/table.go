package output

import (
	"fmt"
	"io"
	"time"

	"github.com/efhk-flights/flightboard/internal/board"
	"github.com/efhk-flights/flightboard/internal/models"
)

// LoadingMessage is shown until the first fetch completes
const LoadingMessage = "Loading flights..."

const (
	earlierHint = "▲ Show earlier flights"
	laterHint   = "▼ Show later flights"
)

// TableOptions configures the table output
type TableOptions struct {
	Colors   *Colors
	Location *time.Location
	Title    string
	Now      time.Time

	// ShowCredits appends the data source disclaimer
	ShowCredits bool
	// ShowHints prints the earlier/later affordances around the window
	ShowHints bool
}

func (o TableOptions) colors() *Colors {
	if o.Colors == nil {
		return NewColors(ColorNever)
	}
	return o.Colors
}

// RenderBoard renders the visible window of the board with its heading
func RenderBoard(w io.Writer, s board.State, opts TableOptions) {
	c := opts.colors()

	renderHeading(w, c, opts)

	if opts.ShowHints && board.CanRetreat(s) {
		_, _ = fmt.Fprintln(w, c.Muted(earlierHint))
	}

	if s.Loading {
		_, _ = fmt.Fprintln(w, c.Muted(LoadingMessage))
	}
	if board.HasError(s) {
		_, _ = fmt.Fprintln(w, c.Error(s.Err))
	}

	window := board.Window(s)
	if len(window) == 0 && !s.Loading && !board.HasError(s) {
		_, _ = fmt.Fprintln(w, "No arriving flights.")
	}
	for _, f := range window {
		renderRow(w, c, f, opts.Location)
	}

	if opts.ShowHints && board.CanAdvance(s) {
		_, _ = fmt.Fprintln(w, c.Muted(laterHint))
	}

	if opts.ShowCredits {
		renderCredits(w, c)
	}
}

// RenderFlights renders every flight in the given order
func RenderFlights(w io.Writer, flights []models.Flight, opts TableOptions) {
	c := opts.colors()

	renderHeading(w, c, opts)

	if len(flights) == 0 {
		_, _ = fmt.Fprintln(w, "No arriving flights.")
	}
	for _, f := range flights {
		renderRow(w, c, f, opts.Location)
	}

	if opts.ShowCredits {
		renderCredits(w, c)
	}
}

func renderHeading(w io.Writer, c *Colors, opts TableOptions) {
	title := opts.Title
	if title == "" {
		title = Title
	}
	_, _ = fmt.Fprintln(w, c.Title("%s", title))

	if !opts.Now.IsZero() {
		_, _ = fmt.Fprintln(w, c.Muted(FormatDate(opts.Now, opts.Location)))
	}
	_, _ = fmt.Fprintln(w)

	// Format the header: TIME  FLIGHT                     STATUS
	_, _ = fmt.Fprintf(w, "%s  %s  %s\n",
		c.Header("%-5s", "Time"),
		c.Header("%-24s", "Flight"),
		c.Header("Status"),
	)
}

// renderRow prints time, route and status on the first line, the flight number below the route
func renderRow(w io.Writer, c *Colors, f models.Flight, loc *time.Location) {
	route := f.Route
	if len([]rune(route)) > 24 {
		route = string([]rune(route)[:24])
	}

	badge := c.ForCategory(f.Status.Category())

	_, _ = fmt.Fprintf(w, "%s  %s  %s\n",
		c.Time("%-5s", FormatArrival(f, loc)),
		c.Route("%-24s", route),
		badge("%s", StatusLabel(f, loc)),
	)
	_, _ = fmt.Fprintf(w, "%5s  %s\n", "", c.Flight("%s", f.Number))
}

func renderCredits(w io.Writer, c *Colors) {
	_, _ = fmt.Fprintln(w)
	for _, line := range Credits {
		_, _ = fmt.Fprintln(w, c.Muted(line))
	}
}

// Package board holds the flight board state and the pure transitions over it.
//
// A State is a value: every transition returns a new State and leaves its
// input untouched, so the TUI and the watch loop can keep snapshots around
// without copying.
package board

import (
	"sort"
	"time"

	"github.com/efhk-flights/flightboard/internal/models"
)

// DefaultPageSize is the number of flights shown per view
const DefaultPageSize = 5

// FetchErrorMessage is the only error text the board ever shows
const FetchErrorMessage = "Unable to fetch flights..."

// State is an immutable snapshot of the board
type State struct {
	Flights    []models.Flight
	PageOffset int
	PageSize   int
	Loading    bool
	Err        string
	UpdatedAt  time.Time

	// applied is the token of the newest result folded into this state
	applied uint64
}

// New returns the initial state: empty board, loading
func New(pageSize int) State {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return State{
		PageSize: pageSize,
		Loading:  true,
	}
}

// ApplyFetchSuccess replaces the flight list with the sorted result and
// centres the window on the first flight arriving at or after now.
// Results older than the last applied token are ignored.
func ApplyFetchSuccess(s State, token uint64, flights []models.Flight, now time.Time) State {
	if token < s.applied {
		return s
	}

	sorted := SortByArrival(flights)

	next := s
	next.Flights = sorted
	next.Loading = false
	next.UpdatedAt = now
	next.applied = token
	next.PageOffset = InitialOffset(sorted, now, s.pageSize())
	return next
}

// ApplyFetchFailure records the fetch error and keeps whatever was loaded before
func ApplyFetchFailure(s State, token uint64) State {
	if token < s.applied {
		return s
	}

	next := s
	next.Loading = false
	next.Err = FetchErrorMessage
	next.applied = token
	return next
}

// Advance moves the window one page later, if there is anything after it
func Advance(s State) State {
	if !CanAdvance(s) {
		return s
	}
	next := s
	next.PageOffset += s.pageSize()
	return next
}

// Retreat moves the window one page earlier, stopping at the first flight
func Retreat(s State) State {
	if !CanRetreat(s) {
		return s
	}
	next := s
	next.PageOffset = max(s.PageOffset-s.pageSize(), 0)
	return next
}

// CanAdvance reports whether "show later" is offered
func CanAdvance(s State) bool {
	return s.PageOffset+s.pageSize() < len(s.Flights)
}

// CanRetreat reports whether "show earlier" is offered
func CanRetreat(s State) bool {
	return s.PageOffset > 0
}

// Window returns a copy of the visible flights
func Window(s State) []models.Flight {
	start := s.PageOffset
	if start < 0 {
		start = 0
	}
	if start >= len(s.Flights) {
		return []models.Flight{}
	}
	end := min(start+s.pageSize(), len(s.Flights))

	window := make([]models.Flight, end-start)
	copy(window, s.Flights[start:end])
	return window
}

// HasError reports whether any acquisition has failed since the board started.
// A later success does not clear it.
func HasError(s State) bool {
	return s.Err != ""
}

// InitialOffset returns the page offset that centres the window on now.
// With no flight at or after now it falls back to 0.
func InitialOffset(flights []models.Flight, now time.Time, pageSize int) int {
	closest := ClosestIndex(flights, now)
	return max(closest-pageSize/2, 0)
}

// ClosestIndex returns the index of the first flight arriving at or after now,
// or -1. Flights with an unparseable arrival never match.
func ClosestIndex(flights []models.Flight, now time.Time) int {
	for i := range flights {
		if flights[i].Arrival != nil && !flights[i].Arrival.Before(now) {
			return i
		}
	}
	return -1
}

// SortByArrival returns a copy of flights sorted ascending by arrival.
// Unparseable arrivals go last and keep their relative order.
func SortByArrival(flights []models.Flight) []models.Flight {
	sorted := make([]models.Flight, len(flights))
	copy(sorted, flights)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Arrival, sorted[j].Arrival
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})

	return sorted
}

func (s State) pageSize() int {
	if s.PageSize <= 0 {
		return DefaultPageSize
	}
	return s.PageSize
}

package models

import (
	"strings"
	"time"
)

// Flight represents a single arriving flight on the board
type Flight struct {
	Number     string     `json:"flightNumber"`
	Route      string     `json:"flightRoute"`
	ArrivalRaw string     `json:"estimatedArrivalRaw"`
	Arrival    *time.Time `json:"estimatedArrival,omitempty"`
	StatusRaw  string     `json:"statusRaw"`
	Status     Status     `json:"status"`
}

// FlightResponse represents the raw JSON for a single flight entry
type FlightResponse struct {
	EstimatedArrival string `json:"estimatedArrival"`
	FlightRoute      string `json:"flightRoute"`
	FlightNumber     string `json:"flightNumber"`
	Landed           string `json:"landed"`
}

// FlightsResponse represents the full API response.
// Flights is a pointer so a body without the array can be told apart from an empty board.
type FlightsResponse struct {
	Flights *[]FlightResponse `json:"flights"`
}

// ToFlight converts the raw response to a Flight
func (r *FlightResponse) ToFlight(loc *time.Location) *Flight {
	f := &Flight{
		Number:     r.FlightNumber,
		Route:      r.FlightRoute,
		ArrivalRaw: r.EstimatedArrival,
		StatusRaw:  r.Landed,
		Status:     ParseStatus(r.Landed),
	}

	if t, ok := ParseArrival(r.EstimatedArrival, loc); ok {
		f.Arrival = &t
	}

	return f
}

// HasArrival reports whether the estimated arrival could be parsed
func (f *Flight) HasArrival() bool {
	return f.Arrival != nil
}

// Layouts carrying their own offset
var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000Z0700",
	"2006-01-02T15:04:05Z0700",
}

// Layouts without offset, read in the board timezone
var localLayouts = []string{
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// ParseArrival parses an ISO-8601-like timestamp.
// Date-times without an offset are read in loc; a bare date is UTC midnight.
func ParseArrival(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.UTC
	}

	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	if t, err := time.ParseInLocation("2006-01-02", s, time.UTC); err == nil {
		return t, true
	}

	return time.Time{}, false
}

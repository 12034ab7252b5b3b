package testutil

import (
	"strings"
	"testing"
	"time"

	"github.com/efhk-flights/flightboard/internal/models"
)

// Sample JSON responses for API testing

// SampleFlightsResponse is a small arrivals board, deliberately out of order
const SampleFlightsResponse = `{
	"flights": [
		{
			"estimatedArrival": "2025-01-15T11:00:00Z",
			"flightRoute": "London Heathrow",
			"flightNumber": "BA 798",
			"landed": "approaching"
		},
		{
			"estimatedArrival": "2025-01-15T09:00:00Z",
			"flightRoute": "Stockholm",
			"flightNumber": "AY 636",
			"landed": "Landed"
		},
		{
			"estimatedArrival": "2025-01-15T10:00:00Z",
			"flightRoute": "Oulu",
			"flightNumber": "AY 432",
			"landed": "Delayed"
		}
	]
}`

// SampleEmptyFlightsResponse is a valid response with no flights
const SampleEmptyFlightsResponse = `{"flights": []}`

// SampleMissingFlightsResponse is valid JSON without the flights array
const SampleMissingFlightsResponse = `{"status": "ok"}`

// SampleErrorResponse is a sample error response
const SampleErrorResponse = `{
	"error": {
		"code": "UPSTREAM_UNAVAILABLE",
		"message": "Finavia API unavailable"
	}
}`

// Flight builds a domain flight arriving at the given time
func Flight(number string, arrival time.Time, status models.Status) models.Flight {
	a := arrival
	return models.Flight{
		Number:     number,
		Route:      "Route " + number,
		ArrivalRaw: arrival.Format(time.RFC3339),
		Arrival:    &a,
		Status:     status,
	}
}

// Flights builds n flights arriving every step starting at start
func Flights(n int, start time.Time, step time.Duration) []models.Flight {
	flights := make([]models.Flight, 0, n)
	for i := 0; i < n; i++ {
		flights = append(flights, Flight(
			"AY "+string(rune('A'+i%26))+string(rune('0'+i%10)),
			start.Add(time.Duration(i)*step),
			models.StatusUnknown,
		))
	}
	return flights
}

// UnparseableFlight builds a flight whose arrival could not be parsed
func UnparseableFlight(number string) models.Flight {
	return models.Flight{
		Number:     number,
		Route:      "Route " + number,
		ArrivalRaw: "not a date",
	}
}

// AssertFlightNumbers checks the flight numbers of flights, in order
func AssertFlightNumbers(t *testing.T, flights []models.Flight, want ...string) {
	t.Helper()
	got := make([]string, 0, len(flights))
	for _, f := range flights {
		got = append(got, f.Number)
	}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("got flights %v, want %v", got, want)
	}
}

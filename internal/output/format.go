package output

import (
	"time"

	"github.com/efhk-flights/flightboard/internal/models"
)

const (
	// NotAvailable is shown in place of an arrival time that did not parse
	NotAvailable = "N/A"

	clockLayout = "15:04"
	dateLayout  = "02/01/2006"
)

// Title is the default board heading
const Title = "Helsinki Airport - Arriving Flights"

// Credits is the data source disclaimer shown under the board
var Credits = []string{
	"This board is a personal project created for educational purposes.",
	"It uses publicly available data from the Finavia Public Flights v0 API,",
	"but it is not affiliated with or endorsed by Finavia in any way.",
	"All data and information displayed are for demonstration purposes only.",
}

// FormatArrival renders the arrival as HH:MM in loc, or N/A when it is unknown.
// The viewer's own zone never matters.
func FormatArrival(f models.Flight, loc *time.Location) string {
	if f.Arrival == nil {
		return NotAvailable
	}
	if loc == nil {
		loc = time.UTC
	}
	return f.Arrival.In(loc).Format(clockLayout)
}

// StatusLabel is the badge text for a flight.
//
// Only the double-L "Cancelled" tag gets the CANCELLED label, while the badge
// category treats only single-L "Canceled" as cancelled. Both behaviours are
// kept as they are.
func StatusLabel(f models.Flight, loc *time.Location) string {
	switch f.Status {
	case models.StatusLanded:
		return "LANDED " + FormatArrival(f, loc)
	case models.StatusDelayed:
		return "DELAYED " + FormatArrival(f, loc)
	case models.StatusCancelled:
		return "CANCELLED"
	default:
		return "ESTIMATED " + FormatArrival(f, loc)
	}
}

// FormatDate renders the board's date line in loc
func FormatDate(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(dateLayout)
}

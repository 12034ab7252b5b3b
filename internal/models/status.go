package models

import "encoding/json"

// Status is the arrival state of a flight, resolved once from the upstream "landed" tag
type Status int

const (
	StatusUnknown Status = iota
	StatusLanded
	StatusDelayed
	StatusApproaching
	// StatusCancelled is the "Cancelled" (double L) spelling
	StatusCancelled
	// StatusCanceled is the "Canceled" (single L) spelling.
	// Both spellings show up upstream and are displayed differently.
	StatusCanceled
)

// ParseStatus maps the raw upstream tag to a Status (exact, case-sensitive)
func ParseStatus(tag string) Status {
	switch tag {
	case "Landed":
		return StatusLanded
	case "Delayed":
		return StatusDelayed
	case "approaching":
		return StatusApproaching
	case "Cancelled":
		return StatusCancelled
	case "Canceled":
		return StatusCanceled
	default:
		return StatusUnknown
	}
}

func (s Status) String() string {
	switch s {
	case StatusLanded:
		return "landed"
	case StatusDelayed:
		return "delayed"
	case StatusApproaching:
		return "approaching"
	case StatusCancelled:
		return "cancelled"
	case StatusCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the status by name
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Category is the visual category a flight's status badge is drawn with
type Category int

const (
	CategoryEstimated Category = iota
	CategoryLanded
	CategoryDelayed
	CategoryCancelled
)

// Category returns the badge category for the status.
// Approaching flights are shown as landed. Only the single-L "Canceled"
// spelling gets the cancelled badge; "Cancelled" falls through to estimated.
func (s Status) Category() Category {
	switch s {
	case StatusLanded, StatusApproaching:
		return CategoryLanded
	case StatusDelayed:
		return CategoryDelayed
	case StatusCanceled:
		return CategoryCancelled
	default:
		return CategoryEstimated
	}
}

func (c Category) String() string {
	switch c {
	case CategoryLanded:
		return "landed"
	case CategoryDelayed:
		return "delayed"
	case CategoryCancelled:
		return "cancelled"
	default:
		return "estimated"
	}
}

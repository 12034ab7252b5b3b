package tui

import (
	"time"

	"github.com/efhk-flights/flightboard/internal/models"
)

// flightsResultMsg carries one acquisition cycle back to the model.
// token is used for stale-result detection.
type flightsResultMsg struct {
	token   uint64
	flights []models.Flight
	err     error
}

// clockTickMsg is sent every second to keep the date line and the
// "updated" age current.
type clockTickMsg time.Time

package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestFlightResponse_ToFlight(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Helsinki")
	if err != nil {
		t.Fatalf("Failed to load timezone: %v", err)
	}

	tests := []struct {
		name        string
		response    FlightResponse
		wantNumber  string
		wantRoute   string
		wantStatus  Status
		wantArrival bool
	}{
		{
			name: "landed flight",
			response: FlightResponse{
				EstimatedArrival: "2025-01-15T10:05:00Z",
				FlightRoute:      "Stockholm",
				FlightNumber:     "AY 636",
				Landed:           "Landed",
			},
			wantNumber:  "AY 636",
			wantRoute:   "Stockholm",
			wantStatus:  StatusLanded,
			wantArrival: true,
		},
		{
			name: "approaching flight",
			response: FlightResponse{
				EstimatedArrival: "2025-01-15T12:40:00+02:00",
				FlightRoute:      "London Heathrow",
				FlightNumber:     "BA 798",
				Landed:           "approaching",
			},
			wantNumber:  "BA 798",
			wantRoute:   "London Heathrow",
			wantStatus:  StatusApproaching,
			wantArrival: true,
		},
		{
			name: "unparseable arrival",
			response: FlightResponse{
				EstimatedArrival: "soon",
				FlightRoute:      "Oulu",
				FlightNumber:     "AY 432",
				Landed:           "",
			},
			wantNumber:  "AY 432",
			wantRoute:   "Oulu",
			wantStatus:  StatusUnknown,
			wantArrival: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.response.ToFlight(loc)

			if f.Number != tt.wantNumber {
				t.Errorf("Number = %q, want %q", f.Number, tt.wantNumber)
			}
			if f.Route != tt.wantRoute {
				t.Errorf("Route = %q, want %q", f.Route, tt.wantRoute)
			}
			if f.Status != tt.wantStatus {
				t.Errorf("Status = %v, want %v", f.Status, tt.wantStatus)
			}
			if f.HasArrival() != tt.wantArrival {
				t.Errorf("HasArrival() = %v, want %v", f.HasArrival(), tt.wantArrival)
			}
			if f.ArrivalRaw != tt.response.EstimatedArrival {
				t.Errorf("ArrivalRaw = %q, want %q", f.ArrivalRaw, tt.response.EstimatedArrival)
			}
		})
	}
}

func TestParseArrival(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Helsinki")
	if err != nil {
		t.Fatalf("Failed to load timezone: %v", err)
	}

	tests := []struct {
		name   string
		input  string
		want   time.Time
		wantOK bool
	}{
		{
			name:   "RFC3339 UTC",
			input:  "2025-01-15T10:05:00Z",
			want:   time.Date(2025, 1, 15, 10, 5, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "RFC3339 with millis",
			input:  "2025-01-15T10:05:00.000Z",
			want:   time.Date(2025, 1, 15, 10, 5, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "explicit offset",
			input:  "2025-01-15T12:05:00+02:00",
			want:   time.Date(2025, 1, 15, 10, 5, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "no offset is read in board timezone",
			input:  "2025-01-15T12:05:00",
			want:   time.Date(2025, 1, 15, 12, 5, 0, 0, loc),
			wantOK: true,
		},
		{
			name:   "no seconds",
			input:  "2025-01-15T12:05",
			want:   time.Date(2025, 1, 15, 12, 5, 0, 0, loc),
			wantOK: true,
		},
		{
			name:   "bare date is UTC midnight",
			input:  "2025-01-15",
			want:   time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "empty",
			input:  "",
			wantOK: false,
		},
		{
			name:   "garbage",
			input:  "not a date",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseArrival(tt.input, loc)
			if ok != tt.wantOK {
				t.Fatalf("ParseArrival(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("ParseArrival(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseArrival_NilLocation(t *testing.T) {
	got, ok := ParseArrival("2025-01-15T12:05:00", nil)
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	if !got.Equal(time.Date(2025, 1, 15, 12, 5, 0, 0, time.UTC)) {
		t.Errorf("got %v, want 12:05 UTC", got)
	}
}

func TestFlightsResponse_JSON(t *testing.T) {
	jsonData := `{
		"flights": [
			{
				"estimatedArrival": "2025-01-15T10:05:00Z",
				"flightRoute": "Stockholm",
				"flightNumber": "AY 636",
				"landed": "Landed"
			}
		]
	}`

	var resp FlightsResponse
	if err := json.Unmarshal([]byte(jsonData), &resp); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}

	if resp.Flights == nil {
		t.Fatal("Flights should be set")
	}
	if len(*resp.Flights) != 1 {
		t.Fatalf("Expected 1 flight, got %d", len(*resp.Flights))
	}
	if (*resp.Flights)[0].FlightNumber != "AY 636" {
		t.Errorf("FlightNumber = %q, want %q", (*resp.Flights)[0].FlightNumber, "AY 636")
	}
}

func TestFlightsResponse_MissingArray(t *testing.T) {
	var resp FlightsResponse
	if err := json.Unmarshal([]byte(`{"status":"ok"}`), &resp); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if resp.Flights != nil {
		t.Error("Flights should be nil when the key is missing")
	}
}

func TestFlight_JSONEncoding(t *testing.T) {
	arrival := time.Date(2025, 1, 15, 10, 5, 0, 0, time.UTC)
	f := Flight{
		Number:     "AY 636",
		Route:      "Stockholm",
		ArrivalRaw: "2025-01-15T10:05:00Z",
		Arrival:    &arrival,
		StatusRaw:  "Landed",
		Status:     StatusLanded,
	}

	data, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if decoded["status"] != "landed" {
		t.Errorf("status = %v, want landed", decoded["status"])
	}
	if decoded["flightNumber"] != "AY 636" {
		t.Errorf("flightNumber = %v, want AY 636", decoded["flightNumber"])
	}
}

package api

const (
	// DefaultEndpoint is the deployed flights backend.
	// Returns: {"flights": [{"estimatedArrival", "flightRoute", "flightNumber", "landed"}, ...]}
	DefaultEndpoint = "https://efhk-flights-backend.onrender.com/api/flights"

	// DefaultProviderURL is the raw flight-data provider the backend wraps.
	// Only the development proxy talks to it.
	DefaultProviderURL = "https://api.finavia.fi"

	// DefaultTimezone is the airport's local zone; arrival times are shown in it
	DefaultTimezone = "Europe/Helsinki"
)

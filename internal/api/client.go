package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/efhk-flights/flightboard/internal/models"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "flightboard/0.1"

	// maxBodySize caps how much of an upstream body is read
	maxBodySize = 8 << 20
)

// Client is the API client for the flights backend
type Client struct {
	httpClient *http.Client
	endpoint   string
	timezone   *time.Location
	userAgent  string
}

// ClientOption configures the Client
type ClientOption func(*Client)

// WithTimeout sets the HTTP client timeout
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithEndpoint overrides the flights endpoint URL
func WithEndpoint(endpoint string) ClientOption {
	return func(c *Client) {
		if endpoint != "" {
			c.endpoint = endpoint
		}
	}
}

// WithTimezone sets the zone offset-less arrival times are read in
func WithTimezone(loc *time.Location) ClientOption {
	return func(c *Client) {
		if loc != nil {
			c.timezone = loc
		}
	}
}

// WithUserAgent sets the User-Agent header sent upstream
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// NewClient creates a new API client
func NewClient(opts ...ClientOption) (*Client, error) {
	tz, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone: %w", err)
	}

	c := &Client{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		endpoint:  DefaultEndpoint,
		timezone:  tz,
		userAgent: defaultUserAgent,
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := ValidateEndpoint(c.endpoint); err != nil {
		return nil, err
	}

	return c, nil
}

// Timezone returns the client's timezone
func (c *Client) Timezone() *time.Location {
	return c.timezone
}

// Endpoint returns the flights endpoint URL
func (c *Client) Endpoint() string {
	return c.endpoint
}

// GetFlights fetches the arrivals board.
// The flights come back in upstream order; sorting is the board's job.
func (c *Client) GetFlights(ctx context.Context) ([]models.Flight, error) {
	body, err := c.GetFlightsRaw(ctx)
	if err != nil {
		return nil, err
	}

	var resp models.FlightsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if resp.Flights == nil {
		return nil, fmt.Errorf("%w: missing flights array", ErrMalformedResponse)
	}

	// Convert to domain models
	flights := make([]models.Flight, 0, len(*resp.Flights))
	for _, entry := range *resp.Flights {
		flights = append(flights, *entry.ToFlight(c.timezone))
	}

	return flights, nil
}

// GetFlightsRaw fetches the arrivals board and returns raw JSON
func (c *Client) GetFlightsRaw(ctx context.Context) (json.RawMessage, error) {
	return c.doRequest(ctx, c.endpoint)
}

// doRequest performs an HTTP GET request
func (c *Client) doRequest(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Check for context errors
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %w", ErrTimeout, ctx.Err())
		}
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// Any non-2xx status is a failed fetch
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody+1))
		return nil, NewAPIError(resp.StatusCode, resp.Status, extractEndpoint(reqURL)).withBody(excerpt)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %w", ErrTimeout, ctx.Err())
		}
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, nil
}

// extractEndpoint extracts the endpoint path from a full URL
func extractEndpoint(fullURL string) string {
	u, err := url.Parse(fullURL)
	if err != nil {
		return fullURL
	}
	return u.Path
}

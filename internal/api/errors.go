package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Acquisition failures. The board shows the same message for all of them;
// the distinction is for logs and metrics.
var (
	// ErrNotFound indicates the flights endpoint does not exist
	ErrNotFound = errors.New("flights endpoint not found")

	// ErrServerError indicates the backend failed to answer
	ErrServerError = errors.New("flights backend error")

	// ErrThrottled indicates the backend refused the request for rate reasons
	ErrThrottled = errors.New("flights backend throttled the request")

	// ErrTimeout indicates the request timed out or was cancelled
	ErrTimeout = errors.New("request timed out")

	// ErrMalformedResponse indicates the body is not the expected flights document
	ErrMalformedResponse = errors.New("malformed response")
)

// maxErrorBody caps how much of a failed answer is kept for logs
const maxErrorBody = 256

// APIError represents a non-2xx answer from the flights backend
type APIError struct {
	StatusCode int
	Status     string
	Endpoint   string

	// Body holds the start of the upstream answer, whitespace-collapsed
	Body string
}

func (e *APIError) Error() string {
	status := e.Status
	if status == "" {
		status = strconv.Itoa(e.StatusCode)
	}
	msg := fmt.Sprintf("flights backend answered %s (endpoint: %s)", status, e.Endpoint)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Is maps status codes onto the acquisition failures
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound || e.StatusCode == http.StatusGone
	case ErrServerError:
		return e.StatusCode >= 500
	case ErrThrottled:
		return e.StatusCode == http.StatusTooManyRequests
	case ErrTimeout:
		return e.StatusCode == http.StatusRequestTimeout || e.StatusCode == http.StatusGatewayTimeout
	}
	return false
}

// NewAPIError creates a new API error
func NewAPIError(statusCode int, status, endpoint string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Status:     status,
		Endpoint:   endpoint,
	}
}

// withBody attaches a trimmed excerpt of the upstream answer
func (e *APIError) withBody(body []byte) *APIError {
	text := strings.Join(strings.Fields(string(body)), " ")
	if len(text) > maxErrorBody {
		text = text[:maxErrorBody] + "..."
	}
	e.Body = text
	return e
}

// EndpointError reports a flights endpoint that cannot be requested
type EndpointError struct {
	Endpoint string
	Reason   string
}

func (e *EndpointError) Error() string {
	return fmt.Sprintf("invalid endpoint %q: %s", e.Endpoint, e.Reason)
}

// ValidateEndpoint checks that endpoint is an absolute http(s) URL
func ValidateEndpoint(endpoint string) error {
	u, err := url.Parse(endpoint)
	if err != nil {
		return &EndpointError{Endpoint: endpoint, Reason: "not a URL"}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &EndpointError{Endpoint: endpoint, Reason: "must be an absolute http(s) URL"}
	}
	if u.Host == "" {
		return &EndpointError{Endpoint: endpoint, Reason: "missing host"}
	}
	return nil
}

// Kind classifies an acquisition error for logs and metrics labels
func Kind(err error) string {
	var apiErr *APIError
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.Is(err, ErrThrottled):
		return "throttled"
	case errors.Is(err, ErrMalformedResponse):
		return "malformed"
	case errors.As(err, &apiErr):
		return "status"
	default:
		return "network"
	}
}

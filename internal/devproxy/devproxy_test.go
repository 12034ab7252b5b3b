package devproxy

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/efhk-flights/flightboard/internal/testutil"
)

func TestStripPrefix(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/api/flights", "/flights"},
		{"/api/public/v0/flights/arr/HEL", "/public/v0/flights/arr/HEL"},
		{"/api", "/"},
		{"/api/", "/"},
		{"/apiary", "/apiary"},
		{"/flights", "/flights"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			testutil.AssertEqual(t, StripPrefix(tt.path), tt.want)
		})
	}
}

func TestNew_InvalidTarget(t *testing.T) {
	for _, target := range []string{"", "api.finavia.fi", "ftp://api.finavia.fi", "://bad"} {
		t.Run(target, func(t *testing.T) {
			_, err := New(target, nil)
			testutil.AssertError(t, err)
		})
	}
}

func TestProxy_ForwardsAndRewrites(t *testing.T) {
	ms := testutil.NewFlightsServer(http.StatusOK, testutil.SampleFlightsResponse)
	defer ms.Close()

	p, err := New(ms.URL, nil)
	testutil.AssertNil(t, err)

	front := httptest.NewServer(p)
	defer front.Close()

	resp, err := http.Get(front.URL + "/api/public/v0/flights/arr/HEL?limit=5")
	testutil.AssertNil(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	testutil.AssertNil(t, err)
	testutil.AssertEqual(t, resp.StatusCode, http.StatusOK)
	testutil.AssertContains(t, string(body), "AY 636")

	req := ms.LastRequest()
	testutil.AssertTrue(t, req != nil)
	testutil.AssertEqual(t, req.URL.Path, "/public/v0/flights/arr/HEL")
	testutil.AssertEqual(t, req.URL.RawQuery, "limit=5")
	testutil.AssertEqual(t, req.Host, p.Target().Host)
}

func TestProxy_NotUnderPrefix(t *testing.T) {
	ms := testutil.NewFlightsServer(http.StatusOK, testutil.SampleFlightsResponse)
	defer ms.Close()

	p, err := New(ms.URL, nil)
	testutil.AssertNil(t, err)

	rec := httptest.NewRecorder()
	p.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/flights", nil))

	testutil.AssertEqual(t, rec.Code, http.StatusNotFound)
	testutil.AssertEqual(t, ms.RequestCount(), 0)
}

func TestProxy_UpstreamDown(t *testing.T) {
	ms := testutil.NewFlightsServer(http.StatusOK, "")
	url := ms.URL
	ms.Close()

	p, err := New(url, nil)
	testutil.AssertNil(t, err)

	rec := httptest.NewRecorder()
	p.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/flights", nil))

	testutil.AssertEqual(t, rec.Code, http.StatusBadGateway)
	
}

// Package devproxy forwards /api requests to the flight data provider during
// development, so a locally running backend or board can reach it from the
// same origin.
package devproxy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultListenAddr is where the proxy listens by default
	DefaultListenAddr = "127.0.0.1:5173"
	// Prefix is the path prefix that gets forwarded and stripped
	Prefix = "/api"
)

// Proxy is the development reverse proxy
type Proxy struct {
	target *url.URL
	proxy  *httputil.ReverseProxy
	logger *slog.Logger
}

// New creates a proxy to target. Requests under /api are forwarded with the
// prefix removed and the Host header set to the target's host.
func New(target string, logger *slog.Logger) (*Proxy, error) {
	targetURL, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("invalid target URL: %w", err)
	}
	if (targetURL.Scheme != "http" && targetURL.Scheme != "https") || targetURL.Host == "" {
		return nil, fmt.Errorf("invalid target URL %q: must be an absolute http(s) URL", target)
	}
	if logger == nil {
		logger = slog.Default()
	}

	rp := httputil.NewSingleHostReverseProxy(targetURL)

	originalDirector := rp.Director
	rp.Director = func(req *http.Request) {
		req.URL.Path = StripPrefix(req.URL.Path)
		req.URL.RawPath = ""
		originalDirector(req)
		// change origin
		req.Host = targetURL.Host
	}

	rp.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		logger.Warn("proxy request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		w.WriteHeader(http.StatusBadGateway)
	}

	return &Proxy{target: targetURL, proxy: rp, logger: logger}, nil
}

// Target returns the upstream URL
func (p *Proxy) Target() *url.URL {
	return p.target
}

// ServeHTTP forwards requests under /api and answers 404 for anything else
func (p *Proxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !HasPrefix(r.URL.Path) {
		http.NotFound(w, r)
		return
	}
	p.logger.Debug("proxying request", "method", r.Method, "path", r.URL.Path)
	p.proxy.ServeHTTP(w, r)
}

// ListenAndServe runs the proxy on addr until ctx is done
func (p *Proxy) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           p,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		p.logger.Info("proxy listening", "addr", addr, "target", p.target.String())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// HasPrefix reports whether path is /api or below it
func HasPrefix(path string) bool {
	return path == Prefix || strings.HasPrefix(path, Prefix+"/")
}

// StripPrefix removes a leading /api, keeping the result rooted
func StripPrefix(path string) string {
	if !HasPrefix(path) {
		return path
	}
	rest := strings.TrimPrefix(path, Prefix)
	if rest == "" {
		return "/"
	}
	return rest
}

// Package poller runs the periodic acquisition cycle.
//
// A Poller fires once on Start and then on every interval. Each firing gets a
// token from a monotonically increasing counter and runs the fetch in its own
// goroutine, so a slow upstream never delays the schedule. Only the result of
// the newest firing is delivered; anything older that finishes later is
// dropped. Stop cancels in-flight fetches and returns once no callback can run
// anymore.
package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/efhk-flights/flightboard/internal/models"
)

// DefaultInterval is the time between two acquisition cycles
const DefaultInterval = 60 * time.Second

// FetchFunc retrieves the current flight list
type FetchFunc func(ctx context.Context) ([]models.Flight, error)

// Result is the outcome of one acquisition cycle
type Result struct {
	Token     uint64
	Flights   []models.Flight
	Err       error
	StartedAt time.Time
	Duration  time.Duration
}

// Observer is told about every finished fetch, delivered or not.
// It runs on the fetch goroutine and must not block.
type Observer interface {
	ObserveFetch(r Result, delivered bool)
}

// Poller is a cancellable scheduled task with a single owned handle
type Poller struct {
	fetch    FetchFunc
	deliver  func(Result)
	interval time.Duration
	logger   *slog.Logger
	observer Observer
	now      func() time.Time

	mu      sync.Mutex
	issued  uint64
	running bool
	stopped bool
	cancel  context.CancelFunc
	trigger chan struct{}
	loop    sync.WaitGroup
	flights sync.WaitGroup
}

// Option configures a Poller
type Option func(*Poller)

// WithInterval sets the time between cycles
func WithInterval(d time.Duration) Option {
	return func(p *Poller) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithLogger sets the logger used for cycle outcomes
func WithLogger(l *slog.Logger) Option {
	return func(p *Poller) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithObserver registers an observer for every finished fetch
func WithObserver(o Observer) Option {
	return func(p *Poller) {
		p.observer = o
	}
}

// WithClock overrides the wall clock used for StartedAt
func WithClock(now func() time.Time) Option {
	return func(p *Poller) {
		if now != nil {
			p.now = now
		}
	}
}

// New creates a Poller that hands every current result to deliver
func New(fetch FetchFunc, deliver func(Result), opts ...Option) *Poller {
	p := &Poller{
		fetch:    fetch,
		deliver:  deliver,
		interval: DefaultInterval,
		logger:   slog.Default(),
		now:      time.Now,
		trigger:  make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Interval returns the time between cycles
func (p *Poller) Interval() time.Duration {
	return p.interval
}

// Start launches the schedule and returns immediately.
// The first cycle fires right away. Calling Start twice, or after Stop, is a no-op.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running || p.stopped {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.running = true

	p.loop.Add(1)
	go p.run(ctx)
}

// Refresh fires an extra cycle now without resetting the schedule
func (p *Poller) Refresh() {
	select {
	case p.trigger <- struct{}{}:
	default:
	}
}

// Stop cancels the schedule and any in-flight fetch, and waits for them.
// No callback runs after Stop returns.
func (p *Poller) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	cancel := p.cancel
	p.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	p.loop.Wait()
	p.flights.Wait()
}

func (p *Poller) run(ctx context.Context) {
	defer p.loop.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.logger.Debug("poller started", "interval", p.interval)

	for {
		p.fire(ctx)

		select {
		case <-ctx.Done():
			p.logger.Debug("poller stopped")
			return
		case <-ticker.C:
		case <-p.trigger:
		}
	}
}

// fire issues a new token and runs one fetch in the background
func (p *Poller) fire(ctx context.Context) {
	p.mu.Lock()
	if p.stopped || ctx.Err() != nil {
		p.mu.Unlock()
		return
	}
	p.issued++
	token := p.issued
	p.flights.Add(1)
	p.mu.Unlock()

	go func() {
		defer p.flights.Done()

		started := p.now()
		flights, err := p.fetch(ctx)
		r := Result{
			Token:     token,
			Flights:   flights,
			Err:       err,
			StartedAt: started,
			Duration:  p.now().Sub(started),
		}

		delivered := p.deliverIfCurrent(r)
		if p.observer != nil {
			p.observer.ObserveFetch(r, delivered)
		}
	}()
}

// deliverIfCurrent hands r to the callback unless a newer cycle was issued
// or the poller was stopped. The lock is held across the callback so Stop
// cannot return while a delivery is in progress.
func (p *Poller) deliverIfCurrent(r Result) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch {
	case p.stopped:
		p.logger.Debug("discarding result after stop", "token", r.Token)
		return false
	case r.Token != p.issued:
		p.logger.Info("discarding stale result", "token", r.Token, "latest", p.issued)
		return false
	}

	if r.Err != nil {
		p.logger.Warn("flight fetch failed", "token", r.Token, "error", r.Err, "duration", r.Duration)
	} else {
		p.logger.Debug("flights fetched", "token", r.Token, "count", len(r.Flights), "duration", r.Duration)
	}

	p.deliver(r)
	return true
}

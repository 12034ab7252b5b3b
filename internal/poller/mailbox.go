package poller

import "sync"

// Mailbox is a one-slot buffer between a Poller and a single reader.
// A result that has not been read yet is replaced by the next one, so the
// reader always sees the newest cycle and a delivery never blocks.
type Mailbox struct {
	mu sync.Mutex
	ch chan Result
}

// NewMailbox creates an empty mailbox
func NewMailbox() *Mailbox {
	return &Mailbox{ch: make(chan Result, 1)}
}

// Deliver stores r, dropping any unread result. It is meant to be passed to New.
func (m *Mailbox) Deliver(r Result) {
	m.mu.Lock()
	defer m.mu.Unlock()

	select {
	case <-m.ch:
	default:
	}
	m.ch <- r
}

// Results returns the channel the newest result arrives on
func (m *Mailbox) Results() <-chan Result {
	return m.ch
}

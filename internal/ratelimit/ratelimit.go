// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ratelimit tracks the AI-call budget in a rolling window. One
// limiter instance guards every AI-backed operation of a process, since the
// upstream quota applies per API key rather than per feature.
package ratelimit

import (
	"sync"
	"time"

	"github.com/pdiddy/news-engine/pkg/types"
)

const (
	defaultMaxRequests = 10
	defaultWindow      = 60 * time.Second
)

// Limiter counts issued AI calls inside a rolling window. It is safe for
// concurrent use; overlapping operations (e.g. sentiment and verification
// triggered by one user action) share the same counters.
type Limiter struct {
	mu     sync.Mutex
	stamps []time.Time

	maxRequests int
	window      time.Duration

	// now is stubbed by tests to control the clock.
	now func() time.Time
}

// New builds a Limiter from config, applying defaults for zero values.
func New(cfg types.RateLimitConfig) *Limiter {
	maxRequests := cfg.MaxRequests
	if maxRequests <= 0 {
		maxRequests = defaultMaxRequests
	}
	window := cfg.Window
	if window <= 0 {
		window = defaultWindow
	}
	return &Limiter{
		maxRequests: maxRequests,
		window:      window,
		now:         time.Now,
	}
}

// Allow records one AI call attempt if the window has room and reports
// whether the call may be issued. A refused attempt is not recorded: only
// calls that were actually issued count against the window.
func (l *Limiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.prune(now)

	if len(l.stamps) >= l.maxRequests {
		return false
	}
	l.stamps = append(l.stamps, now)
	return true
}

// RetryAfter returns how long until the next call would be admitted. It is
// zero when the window currently has room.
func (l *Limiter) RetryAfter() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.prune(now)

	if len(l.stamps) < l.maxRequests {
		return 0
	}
	wait := l.stamps[0].Add(l.window).Sub(now)
	if wait < 0 {
		return 0
	}
	return wait
}

// Snapshot describes the current window state for the status surface.
type Snapshot struct {
	Used        int           `json:"used" yaml:"used"`
	MaxRequests int           `json:"max_requests" yaml:"max_requests"`
	Window      time.Duration `json:"window" yaml:"window"`
	CanRequest  bool          `json:"can_request" yaml:"can_request"`
	RetryAfter  time.Duration `json:"retry_after" yaml:"retry_after"`
}

// Stats returns a consistent snapshot of the window without consuming
// budget.
func (l *Limiter) Stats() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.prune(now)

	s := Snapshot{
		Used:        len(l.stamps),
		MaxRequests: l.maxRequests,
		Window:      l.window,
		CanRequest:  len(l.stamps) < l.maxRequests,
	}
	if !s.CanRequest {
		if wait := l.stamps[0].Add(l.window).Sub(now); wait > 0 {
			s.RetryAfter = wait
		}
	}
	return s
}

// prune drops timestamps that have aged out of the window. Callers must
// hold l.mu.
func (l *Limiter) prune(now time.Time) {
	cutoff := now.Add(-l.window)
	i := 0
	for i < len(l.stamps) && !l.stamps[i].After(cutoff) {
		i++
	}
	if i > 0 {
		l.stamps = append(l.stamps[:0], l.stamps[i:]...)
	}
}

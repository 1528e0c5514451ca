// Package ratelimit provides a sliding-window admission limiter bounding
// the rate of outbound API calls.
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// DefaultWindow is the rolling window the API accounts requests against.
const DefaultWindow = time.Minute

// Limiter admits at most capacity calls per rolling window. Admission
// timestamps are retained oldest-first and pruned on every check, so memory
// stays bounded to capacity entries.
type Limiter struct {
	mu         sync.Mutex
	capacity   int
	window     time.Duration
	admissions []time.Time
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithWindow sets the rolling window length. Used by tests; production
// callers keep the default one-minute window.
func WithWindow(d time.Duration) Option {
	return func(l *Limiter) {
		l.window = d
	}
}

// New creates a limiter admitting capacity calls per window. A capacity
// below one is a configuration error, not a runtime failure.
func New(capacity int, opts ...Option) (*Limiter, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("rate limit capacity must be at least 1, got %d", capacity)
	}
	l := &Limiter{
		capacity:   capacity,
		window:     DefaultWindow,
		admissions: make([]time.Time, 0, capacity),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.window <= 0 {
		return nil, fmt.Errorf("rate limit window must be positive, got %v", l.window)
	}
	return l, nil
}

// Wait blocks until an admission is granted or ctx is done. The whole
// prune/check/evict/append sequence runs under the limiter's mutex, so two
// concurrent callers can never both pass capacity within one window and
// admissions are granted in FIFO order. Cancellation during the wait
// appends nothing.
func (l *Limiter) Wait(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()

	// Drop admissions that have aged out of the window.
	kept := l.admissions[:0]
	for _, t := range l.admissions {
		if now.Sub(t) < l.window {
			kept = append(kept, t)
		}
	}
	l.admissions = kept

	if len(l.admissions) >= l.capacity {
		wait := l.window - now.Sub(l.admissions[0])
		if wait > 0 {
			timer := time.NewTimer(wait)
			defer timer.Stop()
			select {
			case <-timer.C:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		// The oldest admission has aged out; evict exactly that one.
		l.admissions = l.admissions[1:]
	}

	l.admissions = append(l.admissions, time.Now())
	return nil
}

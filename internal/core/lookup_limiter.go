package core

// lookup_limiter.go bounds how many sheet fetches run at once.
//
// Every lookup downloads the whole sheet. A burst of calls from the voice
// platform would otherwise open an unbounded number of upstream requests, so
// lookups take a slot from a semaphore first. When all slots are busy a
// lookup waits up to maxWait and then fails with ErrTooManyLookups.
//
// The limiter holds no lookup data. Each lookup still builds its own Table.

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrTooManyLookups is returned when no fetch slot frees up within the wait
// timeout.
var ErrTooManyLookups = errors.New("too many concurrent lookups, rate limit reached")

// DefaultMaxConcurrentLookups is used when the configured limit is not positive.
const DefaultMaxConcurrentLookups = 16

// DefaultLookupWait is used when the configured wait is not positive.
const DefaultLookupWait = 5 * time.Second

// LookupLimiter is a counting semaphore around sheet fetches.
type LookupLimiter struct {
	slots   chan struct{}
	maxWait time.Duration

	mu     sync.RWMutex
	active int
}

// NewLookupLimiter allows at most maxConcurrent fetches at a time.
func NewLookupLimiter(maxConcurrent int, maxWait time.Duration) *LookupLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrentLookups
	}
	if maxWait <= 0 {
		maxWait = DefaultLookupWait
	}

	return &LookupLimiter{
		slots:   make(chan struct{}, maxConcurrent),
		maxWait: maxWait,
	}
}

// Acquire takes a slot, waiting up to maxWait. The caller must Release it.
func (l *LookupLimiter) Acquire(ctx context.Context) error {
	timer := time.NewTimer(l.maxWait)
	defer timer.Stop()

	select {
	case l.slots <- struct{}{}:
		l.mu.Lock()
		l.active++
		l.mu.Unlock()
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrTooManyLookups
	}
}

// Release returns a slot taken by Acquire.
func (l *LookupLimiter) Release() {
	l.mu.Lock()
	l.active--
	l.mu.Unlock()

	<-l.slots
}

// ActiveCount returns the number of fetches in flight.
func (l *LookupLimiter) ActiveCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.active
}

// MaxConcurrent returns the slot count.
func (l *LookupLimiter) MaxConcurrent() int {
	return cap(l.slots)
}

// WaitForDrain blocks until no fetch is in flight or ctx is done.
// Used during shutdown so in-progress calls still get an answer.
func (l *LookupLimiter) WaitForDrain(ctx context.Context) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		if l.ActiveCount() == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// LimiterStatus is a point-in-time view of the limiter for health checks.
type LimiterStatus struct {
	Active        int `json:"active"`
	Available     int `json:"available"`
	MaxConcurrent int `json:"max_concurrent"`
}

// Status returns the current limiter state.
func (l *LookupLimiter) Status() LimiterStatus {
	active := l.ActiveCount()
	return LimiterStatus{
		Active:        active,
		Available:     cap(l.slots) - len(l.slots),
		MaxConcurrent: cap(l.slots),
	}
}

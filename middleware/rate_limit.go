package middleware

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Limiter is a per-identity admission counter. Limited checks and records
// in one step: a false result has already consumed a slot.
type Limiter interface {
	Limited(ctx context.Context, identity string) (bool, error)
	Max() int
}

type Clock func() time.Time

// SlidingWindowLimiter keeps, per identity, the timestamps of admitted calls
// inside the trailing window. State is local to the process.
type SlidingWindowLimiter struct {
	mu      sync.Mutex
	windows map[string][]time.Time

	window time.Duration
	max    int
	now    Clock

	janitorInterval time.Duration
	stop            chan struct{}
	done            chan struct{}
	closeOnce       sync.Once
}

type SlidingWindowOption func(*SlidingWindowLimiter)

func WithClock(clock Clock) SlidingWindowOption {
	return func(l *SlidingWindowLimiter) {
		l.now = clock
	}
}

// WithJanitor periodically drops identities whose window has emptied.
func WithJanitor(interval time.Duration) SlidingWindowOption {
	return func(l *SlidingWindowLimiter) {
		l.janitorInterval = interval
	}
}

func NewSlidingWindowLimiter(window time.Duration, max int, opts ...SlidingWindowOption) (*SlidingWindowLimiter, error) {
	if window <= 0 {
		return nil, fmt.Errorf("rate limit window must be positive, got %s", window)
	}
	if max <= 0 {
		return nil, fmt.Errorf("rate limit max requests must be positive, got %d", max)
	}

	l := &SlidingWindowLimiter{
		windows: make(map[string][]time.Time),
		window:  window,
		max:     max,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}

	if l.janitorInterval > 0 {
		l.stop = make(chan struct{})
		l.done = make(chan struct{})
		go l.runJanitor()
	}
	return l, nil
}

// IsLimited prunes the identity's stale timestamps, then either rejects the
// call (window full, nothing recorded) or records it.
func (l *SlidingWindowLimiter) IsLimited(identity string) bool {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	valid := l.prune(l.windows[identity], now)
	if len(valid) >= l.max {
		l.windows[identity] = valid
		return true
	}

	l.windows[identity] = append(valid, now)
	return false
}

func (l *SlidingWindowLimiter) Limited(_ context.Context, identity string) (bool, error) {
	return l.IsLimited(identity), nil
}

func (l *SlidingWindowLimiter) Max() int {
	return l.max
}

func (l *SlidingWindowLimiter) Window() time.Duration {
	return l.window
}

// Tracked returns the number of identities currently holding state.
func (l *SlidingWindowLimiter) Tracked() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.windows)
}

// Sweep removes identities with no timestamps left inside the window.
func (l *SlidingWindowLimiter) Sweep() int {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for identity, stamps := range l.windows {
		valid := l.prune(stamps, now)
		if len(valid) == 0 {
			delete(l.windows, identity)
			removed++
			continue
		}
		l.windows[identity] = valid
	}
	return removed
}

// Close stops the janitor, if any. Safe to call more than once.
func (l *SlidingWindowLimiter) Close() {
	if l.stop == nil {
		return
	}
	l.closeOnce.Do(func() {
		close(l.stop)
		<-l.done
	})
}

// prune keeps timestamps with now-ts < window. Timestamps are appended in
// call order, so the stale ones form a prefix.
func (l *SlidingWindowLimiter) prune(stamps []time.Time, now time.Time) []time.Time {
	i := 0
	for i < len(stamps) && now.Sub(stamps[i]) >= l.window {
		i++
	}
	return stamps[i:]
}

func (l *SlidingWindowLimiter) runJanitor() {
	defer close(l.done)

	ticker := time.NewTicker(l.janitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.Sweep()
		case <-l.stop:
			return
		}
	}
}

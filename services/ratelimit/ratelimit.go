package ratelimit

import (
	"sync"
	"time"
)

// Reference limits for the webhook surface
const (
	DefaultMaxRequests = 5
	DefaultWindow      = 5 * time.Second
)

type window struct {
	count int
	start time.Time
}

// Limiter is a fixed-window admission counter keyed by caller identity (or
// source address for anonymous API access). Windows are created lazily and
// reset in place when they elapse; stale identities are never evicted, which
// is acceptable for short-horizon abuse damping.
type Limiter struct {
	mu      sync.Mutex
	windows map[string]*window
	max     int
	length  time.Duration
	now     func() time.Time
}

func NewLimiter(max int, length time.Duration) *Limiter {
	return &Limiter{
		windows: make(map[string]*window),
		max:     max,
		length:  length,
		now:     time.Now,
	}
}

// Allow records one request for the given identity and reports whether it is
// admitted. Rejected requests still consume a slot, so retry storms extend
// the penalty. Never blocks.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[key]
	if !ok || now.Sub(w.start) >= l.length {
		l.windows[key] = &window{count: 1, start: now}
		return true
	}

	w.count++
	return w.count <= l.max
}

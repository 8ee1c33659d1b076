package ratelimit

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Limiter is a per-client sliding-window rate limiter. For each client it
// keeps the timestamps of admitted requests within the trailing window;
// timestamps older than the window are evicted lazily on every check. Bursts
// up to the cap are allowed within any window-length interval; there is no
// smoothing.
//
// Idle clients are never evicted, so the set of tracked clients grows with
// the number of distinct client addresses seen.
type Limiter struct {
	mu       sync.Mutex
	requests map[string][]time.Time
	max      int
	window   time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

// NewLimiter creates a limiter that admits up to max requests per client
// within the trailing window, using the wall clock.
func NewLimiter(max int, window time.Duration, logger *zap.Logger) *Limiter {
	return NewLimiterWithClock(max, window, time.Now, logger)
}

// NewLimiterWithClock creates a limiter with an injected time source so tests
// can control the clock.
func NewLimiterWithClock(max int, window time.Duration, now func() time.Time, logger *zap.Logger) *Limiter {
	return &Limiter{
		requests: make(map[string][]time.Time),
		max:      max,
		window:   window,
		now:      now,
		logger:   logger,
	}
}

// Admit records and admits a request for the client unless the client already
// has max admitted requests inside the window. Rejected requests are not
// recorded. Calls are serialized so two concurrent requests cannot both slip
// past the cap.
func (l *Limiter) Admit(clientID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	recent := l.requests[clientID][:0]
	for _, ts := range l.requests[clientID] {
		if now.Sub(ts) < l.window {
			recent = append(recent, ts)
		}
	}

	if len(recent) >= l.max {
		l.requests[clientID] = recent
		l.logger.Warn("Rate limit exceeded",
			zap.String("client", clientID),
			zap.Int("window_requests", len(recent)))
		return false
	}

	l.requests[clientID] = append(recent, now)
	return true
}

// Tracked returns the number of distinct clients currently tracked.
func (l *Limiter) Tracked() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.requests)
}

// Package ratelimit provides per-client request limiting using a sliding
// window over recent request timestamps.
package ratelimit

import (
	"sync"
	"time"
)

// slidingWindow counts requests inside a moving time window.
// A request is allowed while fewer than limit requests happened within the
// window ending now.
type slidingWindow struct {
	limit  int
	window time.Duration
	events []time.Time
	mu     sync.Mutex
}

// newSlidingWindow creates a window limiter for limit requests per window.
func newSlidingWindow(limit int, window time.Duration) *slidingWindow {
	return &slidingWindow{
		limit:  limit,
		window: window,
	}
}

// allow records the request if it fits in the window and reports whether
// it was admitted.
func (w *slidingWindow) allow() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := time.Now()
	w.prune(now)

	if len(w.events) >= w.limit {
		return false
	}
	w.events = append(w.events, now)
	return true
}

// status returns remaining capacity and when the oldest in-window request
// expires, without recording a request.
func (w *slidingWindow) status() (remaining int, resetTime time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := time.Now()
	w.prune(now)

	remaining = w.limit - len(w.events)
	if remaining < 0 {
		remaining = 0
	}
	if len(w.events) > 0 {
		resetTime = w.events[0].Add(w.window)
	} else {
		resetTime = now
	}
	return remaining, resetTime
}

// prune drops events that slid out of the window. Callers hold w.mu.
func (w *slidingWindow) prune(now time.Time) {
	cutoff := now.Add(-w.window)
	kept := w.events[:0]
	for _, t := range w.events {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	w.events = kept
}

// Info contains information about rate limit status.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Limiter manages sliding windows for multiple clients.
type Limiter struct {
	windows       map[string]*slidingWindow
	mu            sync.RWMutex
	config        *Config
	cleanupTicker *time.Ticker
	cleanupStop   chan struct{}
	lastAccess    map[string]time.Time
	accessMu      sync.RWMutex
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	EndpointConfigs []EndpointConfig
}

// NewLimiter creates a new rate limiter with the given configuration.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:         true,
			DefaultLimit:    300,
			DefaultWindow:   time.Minute,
			CleanupInterval: 5 * time.Minute,
		}
	}

	limiter := &Limiter{
		windows:    make(map[string]*slidingWindow),
		config:     config,
		lastAccess: make(map[string]time.Time),
	}

	if config.Enabled && config.CleanupInterval > 0 {
		limiter.cleanupTicker = time.NewTicker(config.CleanupInterval)
		limiter.cleanupStop = make(chan struct{})
		go limiter.cleanup()
	}

	return limiter
}

// Allow checks if a request from the given client is allowed for the
// endpoint. Returns whether it was admitted, along with limit information
// for response headers.
func (l *Limiter) Allow(clientID string, endpoint string, method string) (bool, Info) {
	if !l.config.Enabled {
		return true, Info{Allowed: true}
	}

	endpointConfig := MatchEndpoint(endpoint, method, l.config.EndpointConfigs)
	if endpointConfig == nil {
		endpointConfig = &EndpointConfig{
			Limit:  l.config.DefaultLimit,
			Window: l.config.DefaultWindow,
		}
	}

	// Unlimited endpoint (e.g., health check)
	if endpointConfig.Limit <= 0 {
		return true, Info{Allowed: true}
	}

	windowKey := clientID + ":" + endpoint + ":" + method
	window := l.getWindow(windowKey, endpointConfig.Limit, endpointConfig.Window)

	l.accessMu.Lock()
	l.lastAccess[windowKey] = time.Now()
	l.accessMu.Unlock()

	allowed := window.allow()
	remaining, resetTime := window.status()

	var retryAfter time.Duration
	if !allowed {
		retryAfter = time.Until(resetTime)
		if retryAfter < 0 {
			retryAfter = 0
		}
	}

	return allowed, Info{
		Allowed:    allowed,
		Limit:      endpointConfig.Limit,
		Remaining:  remaining,
		ResetTime:  resetTime,
		RetryAfter: retryAfter,
	}
}

// getWindow gets or creates the sliding window for the given key.
func (l *Limiter) getWindow(key string, limit int, window time.Duration) *slidingWindow {
	l.mu.RLock()
	w, exists := l.windows[key]
	l.mu.RUnlock()

	if exists {
		return w
	}

	w = newSlidingWindow(limit, window)

	l.mu.Lock()
	// Double-check after acquiring write lock
	if existing, exists := l.windows[key]; exists {
		l.mu.Unlock()
		return existing
	}
	l.windows[key] = w
	l.mu.Unlock()

	return w
}

// cleanup removes old unused windows to prevent memory leaks.
func (l *Limiter) cleanup() {
	for {
		select {
		case <-l.cleanupTicker.C:
			l.cleanupWindows()
		case <-l.cleanupStop:
			return
		}
	}
}

// cleanupWindows removes windows that haven't been accessed in over an hour.
func (l *Limiter) cleanupWindows() {
	cutoff := time.Now().Add(-1 * time.Hour)

	l.accessMu.RLock()
	keysToCheck := make([]string, 0, len(l.lastAccess))
	for key := range l.lastAccess {
		keysToCheck = append(keysToCheck, key)
	}
	l.accessMu.RUnlock()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.accessMu.Lock()
	defer l.accessMu.Unlock()

	for _, key := range keysToCheck {
		if lastAccess, exists := l.lastAccess[key]; exists && lastAccess.Before(cutoff) {
			delete(l.windows, key)
			delete(l.lastAccess, key)
		}
	}
}

// Stop stops the cleanup goroutine.
func (l *Limiter) Stop() {
	if l.cleanupTicker != nil {
		l.cleanupTicker.Stop()
	}
	if l.cleanupStop != nil {
		close(l.cleanupStop)
	}
}

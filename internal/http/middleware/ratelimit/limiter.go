package ratelimit

import "time"

// Limiter decides whether a request keyed by client may proceed.
type Limiter interface {
	Allow(key string) bool
}

// Clock provides current time.
type Clock interface {
	Now() time.Time
}

// RealClock is the default clock.
type RealClock struct{}

// Now returns current time.
func (RealClock) Now() time.Time { return time.Now() }

// NopLimiter allows everything.
type NopLimiter struct{}

// Allow always returns true
func (NopLimiter) Allow(string) bool { return true }

// NewNopLimiter returns NopLimiter
func NewNopLimiter() Limiter { return NopLimiter{} }

// Package clock provides the session stopwatch and the time-mode countdown.
package clock

import (
	"errors"
	"time"
)

// ErrNotStarted is returned when the clock is stopped or read before Start.
var ErrNotStarted = errors.New("clock has not been started")

// Clock is a start/stop stopwatch with whole-second resolution.
type Clock struct {
	now     func() time.Time
	startAt time.Time
	stopAt  time.Time
}

// Option configures a Clock.
type Option func(*Clock)

// WithNow replaces the time source.
func WithNow(now func() time.Time) Option {
	return func(c *Clock) {
		c.now = now
	}
}

// New returns an unstarted clock.
func New(opts ...Option) *Clock {
	c := &Clock{now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start records the origin and clears any stop instant. Starting a running
// clock moves its origin.
func (c *Clock) Start() {
	c.startAt = c.now()
	c.stopAt = time.Time{}
}

// Stop records the stop instant.
func (c *Clock) Stop() error {
	if c.startAt.IsZero() {
		return ErrNotStarted
	}
	c.stopAt = c.now()
	return nil
}

// Reset returns the clock to the unstarted state.
func (c *Clock) Reset() {
	c.startAt = time.Time{}
	c.stopAt = time.Time{}
}

// Started reports whether Start has been called since the last Reset.
func (c *Clock) Started() bool {
	return !c.startAt.IsZero()
}

// ElapsedSeconds returns whole seconds between the origin and the stop
// instant, or now while running.
func (c *Clock) ElapsedSeconds() (int, error) {
	if c.startAt.IsZero() {
		return 0, ErrNotStarted
	}
	end := c.stopAt
	if end.IsZero() {
		end = c.now()
	}
	return int(end.Sub(c.startAt) / time.Second), nil
}

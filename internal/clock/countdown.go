package clock

// Tick identifies one countdown run. Ticks from a cancelled or superseded
// run are stale and ignored by Fire.
type Tick struct {
	gen uint64
}

// Countdown counts whole seconds down to zero. It does not own a timer: the
// caller schedules a one-second wait per tick and reports it with Fire, so all
// callbacks run on the caller's goroutine.
type Countdown struct {
	gen       uint64
	running   bool
	remaining int
	onTick    func(remaining int)
	onExpire  func()
}

// Begin starts a countdown from seconds, cancelling any previous one, and
// returns the tick to schedule. With seconds <= 0 it expires immediately.
func (c *Countdown) Begin(seconds int, onTick func(remaining int), onExpire func()) Tick {
	c.Cancel()
	c.remaining = seconds
	c.onTick = onTick
	c.onExpire = onExpire
	if seconds <= 0 {
		c.remaining = 0
		c.expire()
		return Tick{gen: c.gen}
	}
	c.running = true
	return Tick{gen: c.gen}
}

// Fire handles one elapsed second for t. It returns true when another tick
// must be scheduled.
func (c *Countdown) Fire(t Tick) bool {
	if !c.running || t.gen != c.gen {
		return false
	}
	c.remaining--
	if c.onTick != nil {
		c.onTick(c.remaining)
	}
	if !c.running || t.gen != c.gen {
		// onTick cancelled or restarted the countdown.
		return false
	}
	if c.remaining <= 0 {
		c.expire()
		return false
	}
	return true
}

// Cancel stops the countdown. Ticks issued before Cancel become stale.
func (c *Countdown) Cancel() {
	c.gen++
	c.running = false
}

// Running reports whether a countdown is active.
func (c *Countdown) Running() bool {
	return c.running
}

// Remaining returns the seconds left.
func (c *Countdown) Remaining() int {
	return c.remaining
}

func (c *Countdown) expire() {
	c.running = false
	c.gen++
	if c.onExpire != nil {
		c.onExpire()
	}
}

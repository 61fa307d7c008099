package actor

// TimeSource reports the simulation time in seconds.
type TimeSource interface {
	Now() float64
}

// Clock is a manually advanced simulation clock. The controller host owns one
// and advances it once per frame tick.
type Clock struct {
	now float64
}

// Now returns the elapsed simulation time.
func (c *Clock) Now() float64 {
	if c == nil {
		return 0
	}
	return c.now
}

// Advance moves the clock forward by dt seconds. Negative steps are ignored.
func (c *Clock) Advance(dt float64) {
	if c == nil || dt <= 0 {
		return
	}
	c.now += dt
}

// Set jumps the clock to t.
func (c *Clock) Set(t float64) {
	if c == nil {
		return
	}
	c.now = t
}

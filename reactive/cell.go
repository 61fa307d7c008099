// Package reactive provides observer-list value cells with synchronous,
// re-entrant notification.
package reactive

// Cell holds a single value and notifies subscribers when it changes.
//
// Set does not return until every subscriber has run. Subscribers may write to
// other cells (or this one) from inside a notification.
type Cell[T comparable] struct {
	value    T
	subs     []*cellSub[T]
	disposed bool
}

type cellSub[T comparable] struct {
	fn   func(T)
	dead bool
}

// NewCell returns a cell holding initial.
func NewCell[T comparable](initial T) *Cell[T] {
	return &Cell[T]{value: initial}
}

// Value returns the current value.
func (c *Cell[T]) Value() T {
	if c == nil {
		var zero T
		return zero
	}
	return c.value
}

// Set stores v and notifies subscribers if it differs from the current value.
// Set on a disposed cell is dropped.
func (c *Cell[T]) Set(v T) {
	if c == nil || c.disposed {
		return
	}
	if c.value == v {
		return
	}
	c.value = v
	c.notify(v)
}

// Force stores v and notifies subscribers even if the value is unchanged.
func (c *Cell[T]) Force(v T) {
	if c == nil || c.disposed {
		return
	}
	c.value = v
	c.notify(v)
}

func (c *Cell[T]) notify(v T) {
	// snapshot so subscribe/dispose from inside a handler is safe
	subs := append([]*cellSub[T](nil), c.subs...)
	for _, s := range subs {
		// a handler wrote a newer value, which has already reached everyone
		if c.disposed || c.value != v {
			return
		}
		if !s.dead {
			s.fn(v)
		}
	}
}

// Subscribe registers fn for future changes. The current value is not replayed.
func (c *Cell[T]) Subscribe(fn func(T)) *Subscription {
	if c == nil || c.disposed || fn == nil {
		return &Subscription{}
	}
	s := &cellSub[T]{fn: fn}
	c.subs = append(c.subs, s)
	return newSubscription(func() { c.remove(s) })
}

// SubscribeNow registers fn and immediately calls it with the current value.
func (c *Cell[T]) SubscribeNow(fn func(T)) *Subscription {
	sub := c.Subscribe(fn)
	if c != nil && !c.disposed && fn != nil {
		fn(c.value)
	}
	return sub
}

func (c *Cell[T]) remove(s *cellSub[T]) {
	s.dead = true
	for i, cur := range c.subs {
		if cur == s {
			c.subs = append(c.subs[:i], c.subs[i+1:]...)
			return
		}
	}
}

// Subscribers reports how many live subscriptions the cell has.
func (c *Cell[T]) Subscribers() int {
	if c == nil {
		return 0
	}
	return len(c.subs)
}

// Dispose drops all subscribers. Later writes are ignored.
func (c *Cell[T]) Dispose() {
	if c == nil || c.disposed {
		return
	}
	for _, s := range c.subs {
		s.dead = true
	}
	c.subs = nil
	c.disposed = true
}

// Disposed reports whether Dispose has been called.
func (c *Cell[T]) Disposed() bool {
	return c == nil || c.disposed
}

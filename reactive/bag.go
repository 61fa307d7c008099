package reactive

// Disposable is anything that can be torn down.
type Disposable interface {
	Dispose()
}

// Subscription detaches a handler from its source. Dispose is idempotent.
type Subscription struct {
	cancel func()
}

func newSubscription(cancel func()) *Subscription {
	return &Subscription{cancel: cancel}
}

// Dispose detaches the handler.
func (s *Subscription) Dispose() {
	if s == nil || s.cancel == nil {
		return
	}
	cancel := s.cancel
	s.cancel = nil
	cancel()
}

// Active reports whether the subscription is still attached.
func (s *Subscription) Active() bool {
	return s != nil && s.cancel != nil
}

// Bag groups disposables so they can be released together.
type Bag struct {
	items    []Disposable
	disposed bool
}

// Add stores d. Adding to a disposed bag disposes d immediately.
func (b *Bag) Add(d Disposable) {
	if d == nil {
		return
	}
	if b.disposed {
		d.Dispose()
		return
	}
	b.items = append(b.items, d)
}

// Len reports how many disposables are held.
func (b *Bag) Len() int {
	return len(b.items)
}

// Clear disposes the current members; the bag stays usable.
func (b *Bag) Clear() {
	items := b.items
	b.items = nil
	for i := len(items) - 1; i >= 0; i-- {
		items[i].Dispose()
	}
}

// Dispose clears the bag and marks it terminal.
func (b *Bag) Dispose() {
	if b.disposed {
		return
	}
	b.Clear()
	b.disposed = true
}

// Disposed reports whether Dispose has been called.
func (b *Bag) Disposed() bool {
	return b.disposed
}

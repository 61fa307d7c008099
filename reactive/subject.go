package reactive

// Subject is a stateless stream: every Publish reaches every subscriber.
type Subject[T any] struct {
	subs     []*subjectSub[T]
	disposed bool
}

type subjectSub[T any] struct {
	fn   func(T)
	dead bool
}

// NewSubject returns an empty subject.
func NewSubject[T any]() *Subject[T] {
	return &Subject[T]{}
}

// Publish delivers v to all current subscribers.
func (s *Subject[T]) Publish(v T) {
	if s == nil || s.disposed {
		return
	}
	subs := append([]*subjectSub[T](nil), s.subs...)
	for _, sub := range subs {
		if sub.dead || s.disposed {
			continue
		}
		sub.fn(v)
	}
}

// Subscribe registers fn.
func (s *Subject[T]) Subscribe(fn func(T)) *Subscription {
	if s == nil || s.disposed || fn == nil {
		return &Subscription{}
	}
	sub := &subjectSub[T]{fn: fn}
	s.subs = append(s.subs, sub)
	return newSubscription(func() {
		sub.dead = true
		for i, cur := range s.subs {
			if cur == sub {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	})
}

// Subscribers reports how many live subscriptions the subject has.
func (s *Subject[T]) Subscribers() int {
	if s == nil {
		return 0
	}
	return len(s.subs)
}

// Dispose drops all subscribers and ignores later publishes.
func (s *Subject[T]) Dispose() {
	if s == nil || s.disposed {
		return
	}
	for _, sub := range s.subs {
		sub.dead = true
	}
	s.subs = nil
	s.disposed = true
}

package anim

import "github.com/milk9111/actorkit/reactive"

// TimelineSource delivers node enter/exit callbacks. Subscriptions are only
// valid for the graph that was active when they were made.
type TimelineSource interface {
	OnStateEnter(fn func(node string)) *reactive.Subscription
	OnStateExit(fn func(node string)) *reactive.Subscription
}

// EventSource delivers timeline string tokens. These subscriptions survive
// graph swaps.
type EventSource interface {
	OnEvent(fn func(token string)) *reactive.Subscription
}

// Driver is everything the animation bridge needs from an animator.
type Driver interface {
	ParameterSink
	TimelineSource
	Graph() *Graph
	SetGraph(g *Graph)
}

// Animator runs one graph at a time. It is advanced by Update from the host's
// frame tick.
type Animator struct {
	graph   *Graph
	values  map[string]Value
	pending map[string]bool
	weights map[int]float64

	current string
	elapsed float64

	enter  *reactive.Subject[string]
	exit   *reactive.Subject[string]
	events *reactive.Subject[string]
}

// NewAnimator returns an animator running g (which may be nil until SetGraph).
func NewAnimator(g *Graph) *Animator {
	a := &Animator{events: reactive.NewSubject[string]()}
	a.SetGraph(g)
	return a
}

// Graph returns the active graph.
func (a *Animator) Graph() *Graph {
	return a.graph
}

// GraphID returns the active graph's id, or "" when none is set.
func (a *Animator) GraphID() string {
	if a.graph == nil {
		return ""
	}
	return a.graph.ID
}

// SetGraph replaces the active graph. Every parameter resets to the new
// graph's default, the entry node becomes current, and existing enter/exit
// subscriptions are invalidated.
func (a *Animator) SetGraph(g *Graph) {
	if a.enter != nil {
		a.enter.Dispose()
	}
	if a.exit != nil {
		a.exit.Dispose()
	}
	a.enter = reactive.NewSubject[string]()
	a.exit = reactive.NewSubject[string]()

	a.graph = g
	a.values = map[string]Value{}
	a.pending = map[string]bool{}
	a.weights = map[int]float64{0: 1}
	a.current = ""
	a.elapsed = 0
	if g == nil {
		return
	}
	for _, p := range g.Params {
		if p.Kind != KindTrigger {
			a.values[p.Name] = p.Default
		}
	}
	a.current = g.Entry
}

// Current returns the active node name.
func (a *Animator) Current() string {
	return a.current
}

// Elapsed returns the local time of the active node.
func (a *Animator) Elapsed() float64 {
	return a.elapsed
}

func (a *Animator) Params() []Param {
	if a.graph == nil {
		return nil
	}
	return append([]Param(nil), a.graph.Params...)
}

func (a *Animator) has(name string, kind Kind) bool {
	p, ok := a.graph.Param(name)
	return ok && p.Kind == kind
}

func (a *Animator) Bool(name string) bool {
	return a.values[name].Bool
}

func (a *Animator) SetBool(name string, v bool) {
	if !a.has(name, KindBool) {
		return
	}
	a.values[name] = Value{Bool: v}
}

func (a *Animator) Int(name string) int {
	return a.values[name].Int
}

func (a *Animator) SetInt(name string, v int) {
	if !a.has(name, KindInt) {
		return
	}
	a.values[name] = Value{Int: v}
}

func (a *Animator) Float(name string) float64 {
	return a.values[name].Float
}

func (a *Animator) SetFloat(name string, v float64) {
	if !a.has(name, KindFloat) {
		return
	}
	a.values[name] = Value{Float: v}
}

func (a *Animator) SetTrigger(name string) {
	if !a.has(name, KindTrigger) {
		return
	}
	a.pending[name] = true
}

func (a *Animator) ResetTrigger(name string) {
	delete(a.pending, name)
}

// TriggerSet reports whether a trigger is waiting to be consumed.
func (a *Animator) TriggerSet(name string) bool {
	return a.pending[name]
}

func (a *Animator) SetLayerWeight(layer int, weight float64) {
	if a.graph == nil || layer < 0 || layer >= a.graph.Layers {
		return
	}
	a.weights[layer] = weight
}

func (a *Animator) LayerWeight(layer int) float64 {
	return a.weights[layer]
}

func (a *Animator) OnStateEnter(fn func(node string)) *reactive.Subscription {
	return a.enter.Subscribe(fn)
}

func (a *Animator) OnStateExit(fn func(node string)) *reactive.Subscription {
	return a.exit.Subscribe(fn)
}

func (a *Animator) OnEvent(fn func(token string)) *reactive.Subscription {
	return a.events.Subscribe(fn)
}

// Update advances the active node, fires timeline events it crosses and takes
// at most one transition.
func (a *Animator) Update(dt float64) {
	if a.graph == nil || a.current == "" || dt < 0 {
		return
	}
	node, ok := a.graph.Node(a.current)
	if !ok {
		return
	}

	prev := a.elapsed
	a.elapsed += dt
	a.fireEvents(node, prev, a.elapsed)
	if node.Loop && node.Duration > 0 && a.elapsed >= node.Duration {
		for a.elapsed >= node.Duration {
			a.elapsed -= node.Duration
		}
		a.fireEvents(node, -1, a.elapsed)
	}

	finished := node.Duration > 0 && !node.Loop && a.elapsed >= node.Duration
	for _, t := range a.graph.Transitions {
		if t.From != AnyState && t.From != a.current {
			continue
		}
		if t.From == AnyState && t.To == a.current {
			continue
		}
		if t.ExitTime && !finished {
			continue
		}
		if !a.conditionsMet(t.Conditions) {
			continue
		}
		a.take(t)
		return
	}
}

func (a *Animator) fireEvents(node Node, from, to float64) {
	for _, evt := range node.Events {
		if evt.At > from && evt.At <= to {
			a.events.Publish(evt.Token)
		}
	}
}

func (a *Animator) conditionsMet(conds []Condition) bool {
	for _, c := range conds {
		p, ok := a.graph.Param(c.Param)
		if !ok {
			return false
		}
		if !a.check(p, c) {
			return false
		}
	}
	return true
}

func (a *Animator) check(p Param, c Condition) bool {
	var v float64
	switch p.Kind {
	case KindTrigger:
		return a.pending[p.Name]
	case KindBool:
		b := a.values[p.Name].Bool
		switch c.Op {
		case OpIf:
			return b
		case OpIfNot:
			return !b
		}
		return false
	case KindInt:
		v = float64(a.values[p.Name].Int)
	case KindFloat:
		v = a.values[p.Name].Float
	}
	switch c.Op {
	case OpEquals:
		return v == c.Value
	case OpNotEqual:
		return v != c.Value
	case OpGreater:
		return v > c.Value
	case OpLess:
		return v < c.Value
	case OpIf:
		return v != 0
	case OpIfNot:
		return v == 0
	}
	return false
}

func (a *Animator) take(t Transition) {
	for _, c := range t.Conditions {
		if p, ok := a.graph.Param(c.Param); ok && p.Kind == KindTrigger {
			delete(a.pending, p.Name)
		}
	}
	from := a.current
	graph := a.graph
	a.exit.Publish(from)
	// an exit handler may have swapped the graph
	if a.graph != graph {
		return
	}
	a.current = t.To
	a.elapsed = 0
	a.enter.Publish(t.To)
}

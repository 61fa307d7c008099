// Package input turns device or script state into the five observable input
// signals an actor reads.
package input

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/actorkit/reactive"
)

// Snapshot is the input state at one instant. Move is (x, 0, z) with z
// pointing forward relative to the camera.
type Snapshot struct {
	Move   mgl64.Vec3
	Jump   bool
	Sprint bool
	Attack bool
	Defend bool
}

// Aggregator holds the latest value of every input signal. Writes are
// last-value-wins and visible to subscribers before the setter returns.
type Aggregator struct {
	Move   *reactive.Cell[mgl64.Vec3]
	Jump   *reactive.Cell[bool]
	Sprint *reactive.Cell[bool]
	Attack *reactive.Cell[bool]
	Defend *reactive.Cell[bool]
}

func NewAggregator() *Aggregator {
	return &Aggregator{
		Move:   reactive.NewCell(mgl64.Vec3{}),
		Jump:   reactive.NewCell(false),
		Sprint: reactive.NewCell(false),
		Attack: reactive.NewCell(false),
		Defend: reactive.NewCell(false),
	}
}

func (a *Aggregator) SetMove(v mgl64.Vec3) { a.Move.Set(v) }
func (a *Aggregator) SetJump(v bool)       { a.Jump.Set(v) }
func (a *Aggregator) SetSprint(v bool)     { a.Sprint.Set(v) }
func (a *Aggregator) SetAttack(v bool)     { a.Attack.Set(v) }
func (a *Aggregator) SetDefend(v bool)     { a.Defend.Set(v) }

// Apply writes every signal of s.
func (a *Aggregator) Apply(s Snapshot) {
	a.Move.Set(s.Move)
	a.Jump.Set(s.Jump)
	a.Sprint.Set(s.Sprint)
	a.Attack.Set(s.Attack)
	a.Defend.Set(s.Defend)
}

// Snapshot returns the current value of every signal.
func (a *Aggregator) Snapshot() Snapshot {
	return Snapshot{
		Move:   a.Move.Value(),
		Jump:   a.Jump.Value(),
		Sprint: a.Sprint.Value(),
		Attack: a.Attack.Value(),
		Defend: a.Defend.Value(),
	}
}

// Deactivate snaps every signal back to zero.
func (a *Aggregator) Deactivate() {
	a.Apply(Snapshot{})
}

// Dispose releases the cells and their subscribers.
func (a *Aggregator) Dispose() {
	a.Move.Dispose()
	a.Jump.Dispose()
	a.Sprint.Dispose()
	a.Attack.Dispose()
	a.Defend.Dispose()
}

// Source feeds an aggregator once per frame tick.
type Source interface {
	Poll(dt float64, into *Aggregator) error
}

// AttackThrottle is the minimum time between two accepted attack presses.
const AttackThrottle = 0.1

// pressThrottle accepts a new press only when interval has passed since the
// previously accepted one. A rejected press stays rejected until release.
type pressThrottle struct {
	interval float64
	since    float64
	held     bool
	active   bool
}

func newPressThrottle(interval float64) *pressThrottle {
	return &pressThrottle{interval: interval, since: interval}
}

func (t *pressThrottle) update(dt float64, down bool) bool {
	t.since += dt
	if !down {
		t.held = false
		t.active = false
		return false
	}
	if !t.held {
		t.held = true
		if t.since >= t.interval {
			t.active = true
			t.since = 0
		}
	}
	return t.active
}

// Package entity hosts an actor's subsystems: it builds them for an actor
// kind, ticks them in order and tears them down.
package entity

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/milk9111/actorkit/actor"
	"github.com/milk9111/actorkit/actor/system"
	"github.com/milk9111/actorkit/anim"
	"github.com/milk9111/actorkit/input"
)

// Kind selects the behaviour set an actor is built with.
type Kind int

const (
	LocalPlayer Kind = iota
	RemotePlayer
	NPC
)

func (k Kind) String() string {
	switch k {
	case LocalPlayer:
		return "local-player"
	case RemotePlayer:
		return "remote-player"
	case NPC:
		return "npc"
	default:
		return "unknown"
	}
}

var ErrUnsupportedKind = errors.New("entity: unsupported actor kind")

// Stepper advances a physics simulation on the fixed tick.
type Stepper interface {
	Step(dt float64)
}

// Deps describes one actor to build. Settings, View and both graphs are
// required for a fully working actor; a missing piece leaves the subsystems
// that need it inert and is reported by Err.
type Deps struct {
	Kind     Kind
	Settings *actor.Settings
	View     actor.View
	Camera   actor.Camera
	// Source is polled into the actor's input aggregator every frame.
	Source input.Source

	Normal *anim.Graph
	Combat *anim.Graph
	// Animator defaults to a fresh anim.Animator.
	Animator *anim.Animator

	Props system.Props
	Slots map[actor.EquipmentKind]actor.EquipmentSlots

	Physics Stepper
	Logger  *slog.Logger
}

// Entity owns the store, input and subsystems of one actor.
type Entity struct {
	kind Kind
	log  *slog.Logger

	clock     *actor.Clock
	store     *actor.Store
	input     *input.Aggregator
	source    input.Source
	animator  *anim.Animator
	equipment *actor.EquipmentState
	status    *actor.Status
	settings  actor.Settings
	view      actor.View
	physics   Stepper

	movement *system.Movement
	combat   *system.Combat
	bridge   *system.AnimationBridge
	equip    *system.Equipment
	events   *system.AnimationEvents

	controllers []actor.Controller
	err         error
	released    bool
	inputOff    bool
}

// New builds and initializes an actor. Only an unsupported kind is returned
// as an error; subsystem failures are logged and kept in Err.
func New(d Deps) (*Entity, error) {
	logger := d.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	e := &Entity{
		kind:      d.Kind,
		log:       logger.With("actor", d.Kind.String()),
		clock:     &actor.Clock{},
		store:     actor.NewStore(),
		input:     input.NewAggregator(),
		source:    d.Source,
		animator:  d.Animator,
		equipment: actor.NewEquipmentState(),
		view:      d.View,
		physics:   d.Physics,
	}
	if e.animator == nil {
		e.animator = anim.NewAnimator(nil)
	}

	switch d.Kind {
	case LocalPlayer:
		e.buildLocalPlayer(d)
	default:
		e.store.Dispose()
		e.input.Dispose()
		return nil, fmt.Errorf("entity: new %s: %w", d.Kind, ErrUnsupportedKind)
	}

	e.initialize()
	return e, nil
}

func (e *Entity) initialize() {
	var errs []error
	for _, c := range e.controllers {
		if err := c.Initialize(); err != nil {
			e.log.Error("controller left inactive", "controller", c.Name(), "err", err)
			errs = append(errs, err)
		}
	}
	e.err = errors.Join(errs...)
}

func (e *Entity) Kind() Kind                       { return e.kind }
func (e *Entity) Store() *actor.Store              { return e.store }
func (e *Entity) Input() *input.Aggregator         { return e.input }
func (e *Entity) Animator() *anim.Animator         { return e.animator }
func (e *Entity) Equipment() *actor.EquipmentState { return e.equipment }
func (e *Entity) Status() *actor.Status            { return e.status }
func (e *Entity) Settings() actor.Settings         { return e.settings }
func (e *Entity) Clock() *actor.Clock              { return e.clock }
func (e *Entity) View() actor.View                 { return e.view }
func (e *Entity) Movement() *system.Movement       { return e.movement }
func (e *Entity) Combat() *system.Combat           { return e.combat }
func (e *Entity) Bridge() *system.AnimationBridge  { return e.bridge }
func (e *Entity) Controllers() []actor.Controller  { return append([]actor.Controller(nil), e.controllers...) }
func (e *Entity) Released() bool                   { return e.released }

// SetInputEnabled stops or resumes polling the input source. Disabling it
// releases every held signal.
func (e *Entity) SetInputEnabled(on bool) {
	if e.released || e.inputOff == !on {
		return
	}
	e.inputOff = !on
	if !on {
		e.input.Deactivate()
	}
	e.log.Debug("input", "enabled", on)
}

// Err joins every Initialize failure.
func (e *Entity) Err() error { return e.err }

// Update runs the frame tick: clock, input, subsystems, then the animator.
func (e *Entity) Update(dt float64) {
	if e.released {
		return
	}
	e.clock.Advance(dt)
	if e.source != nil && !e.inputOff {
		if err := e.source.Poll(dt, e.input); err != nil {
			e.log.Warn("input poll failed", "err", err)
		}
	}
	for _, c := range e.controllers {
		if c.IsActive() {
			c.Update(dt)
		}
	}
	e.animator.Update(dt)
}

// FixedUpdate runs the simulation tick: the physics step, then every
// controller that implements actor.FixedUpdater.
func (e *Entity) FixedUpdate(dt float64) {
	if e.released {
		return
	}
	if e.physics != nil {
		e.physics.Step(dt)
	}
	for _, c := range e.controllers {
		if f, ok := c.(actor.FixedUpdater); ok && c.IsActive() {
			f.FixedUpdate(dt)
		}
	}
}

// Release tears the actor down in reverse build order. Calling it again does
// nothing.
func (e *Entity) Release() {
	if e.released {
		return
	}
	e.released = true
	for i := len(e.controllers) - 1; i >= 0; i-- {
		e.controllers[i].Release()
	}
	e.input.Dispose()
	e.equipment.Dispose()
	if e.status != nil {
		e.status.Dispose()
	}
	e.store.Dispose()
	if r, ok := e.view.(interface{ Remove() }); ok {
		r.Remove()
	}
	e.log.Debug("released")
}

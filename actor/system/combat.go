package system

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/looplab/fsm"
	"github.com/milk9111/actorkit/actor"
	"github.com/milk9111/actorkit/reactive"
)

const (
	comboAdvance = "advance"
	comboRestart = "restart"
	comboReset   = "reset"
)

// Combat runs the combo chain and the combat-mode toggle. It is the only
// writer of CombatState, ComboState and CombatMode.
//
// The chain position lives in an FSM separate from the ComboState cell: the
// cell goes back to None when an attack animation finishes, while the chain
// keeps its place until the combo window runs out.
type Combat struct {
	deps   Deps
	log    *slog.Logger
	active bool
	subs   reactive.Bag

	window     float64
	chain      *fsm.FSM
	lastAttack float64
	armed      bool
}

func NewCombat(d Deps) *Combat {
	c := &Combat{deps: d, log: componentLogger(d.Logger, "combat"), armed: true}
	c.chain = newComboChain(c.log)
	return c
}

func newComboChain(log *slog.Logger) *fsm.FSM {
	none := actor.ComboNone.String()
	all := make([]string, 0, 5)
	events := fsm.Events{}
	for s := actor.ComboNone; s <= actor.ComboFinisher; s++ {
		all = append(all, s.String())
		events = append(events, fsm.EventDesc{Name: comboAdvance, Src: []string{s.String()}, Dst: s.Next().String()})
	}
	events = append(events,
		fsm.EventDesc{Name: comboRestart, Src: all, Dst: actor.Combo1.String()},
		fsm.EventDesc{Name: comboReset, Src: all, Dst: none},
	)
	return fsm.NewFSM(none, events, fsm.Callbacks{
		"enter_state": func(_ context.Context, e *fsm.Event) {
			log.Debug("combo chain", "event", e.Event, "from", e.Src, "to", e.Dst)
		},
	})
}

func (c *Combat) Name() string   { return "combat" }
func (c *Combat) IsActive() bool { return c.active }

func (c *Combat) Initialize() error {
	if c.active {
		return nil
	}
	switch {
	case c.deps.Settings == nil:
		return c.fail(actor.ErrMissingSettings)
	case c.deps.Store == nil:
		return c.fail(actor.ErrMissingStore)
	case c.deps.Clock == nil:
		return c.fail(actor.ErrMissingClock)
	}
	if err := c.deps.Settings.Validate(); err != nil {
		return c.fail(err)
	}
	c.window = c.deps.Settings.ComboWindow
	c.active = true

	if in := c.deps.Input; in != nil {
		c.subs.Add(in.Attack.Subscribe(func(pressed bool) {
			if pressed {
				c.onAttack()
			}
		}))
		c.subs.Add(in.Defend.Subscribe(func(pressed bool) {
			if pressed {
				c.onDefend()
			}
		}))
	}
	return nil
}

func (c *Combat) fail(err error) error {
	err = fmt.Errorf("system: combat: %w", err)
	c.log.Error("initialize failed", "err", err)
	return err
}

// SetWindow changes the combo window, for settings hot reload.
func (c *Combat) SetWindow(w float64) {
	if w > 0 {
		c.window = w
	}
}

// Chain is the current chain position, which may differ from the ComboState
// cell after an attack animation finished.
func (c *Combat) Chain() actor.ComboState {
	s, _ := actor.ParseComboState(c.chain.Current())
	return s
}

// Armed reports whether the next attack press will be accepted.
func (c *Combat) Armed() bool { return c.armed }

func (c *Combat) fire(event string) {
	err := c.chain.Event(context.Background(), event)
	var noTransition fsm.NoTransitionError
	if err != nil && !errors.As(err, &noTransition) {
		c.log.Warn("combo chain event rejected", "event", event, "err", err)
	}
}

func (c *Combat) onAttack() {
	store := c.deps.Store
	if !c.active || !c.armed || !store.CombatMode.Value() {
		return
	}
	now := c.deps.Clock.Now()
	event := comboRestart
	if c.Chain() != actor.ComboNone && now-c.lastAttack <= c.window {
		event = comboAdvance
	}
	c.fire(event)
	c.lastAttack = now
	c.armed = false

	store.CombatState.Set(actor.CombatAttacking)
	store.ComboState.Force(c.Chain())
}

func (c *Combat) onDefend() {
	if !c.active {
		return
	}
	store := c.deps.Store
	mode := !store.CombatMode.Value()
	c.log.Debug("combat mode", "enabled", mode)
	store.CombatMode.Set(mode)
	store.CombatState.Set(actor.DefaultCombatState(mode))
}

// FinishAttack is called when the attack animation ends. The cell returns
// to None and the latch re-arms; the chain keeps its position.
func (c *Combat) FinishAttack() {
	if !c.active {
		return
	}
	store := c.deps.Store
	store.ComboState.Set(actor.ComboNone)
	store.CombatState.Set(actor.DefaultCombatState(store.CombatMode.Value()))
	c.armed = true
}

// Rearm re-enables attack input without touching any state.
func (c *Combat) Rearm() {
	if c.active {
		c.armed = true
	}
}

func (c *Combat) Update(dt float64) {
	if !c.active {
		return
	}
	if c.Chain() == actor.ComboNone {
		return
	}
	if c.deps.Clock.Now()-c.lastAttack <= c.window {
		return
	}
	c.fire(comboReset)
	store := c.deps.Store
	store.ComboState.Set(actor.ComboNone)
	store.CombatState.Set(actor.DefaultCombatState(store.CombatMode.Value()))
	c.armed = true
}

func (c *Combat) Release() {
	if !c.active {
		return
	}
	c.active = false
	c.subs.Dispose()
}

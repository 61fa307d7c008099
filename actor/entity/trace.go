package entity

import (
	"strconv"

	"github.com/milk9111/actorkit/actor"
	"github.com/milk9111/actorkit/reactive"
)

// Transition is one observed change of a state cell.
type Transition struct {
	At    float64
	Cell  string
	Value string
}

// Trace reports every change of the movement, combat, combo and combat-mode
// cells until the returned bag is disposed.
func (e *Entity) Trace(fn func(Transition)) *reactive.Bag {
	bag := &reactive.Bag{}
	if e.released || fn == nil {
		return bag
	}
	emit := func(cell, value string) {
		fn(Transition{At: e.clock.Now(), Cell: cell, Value: value})
	}
	s := e.store
	bag.Add(s.MovementState.Subscribe(func(v actor.MovementState) { emit("movement", v.String()) }))
	bag.Add(s.CombatState.Subscribe(func(v actor.CombatState) { emit("combat", v.String()) }))
	bag.Add(s.ComboState.Subscribe(func(v actor.ComboState) { emit("combo", v.String()) }))
	bag.Add(s.CombatMode.Subscribe(func(v bool) { emit("combat_mode", strconv.FormatBool(v)) }))
	return bag
}

package system

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/milk9111/actorkit/actor"
	"github.com/milk9111/actorkit/reactive"
)

var (
	ErrMissingProps     = errors.New("system: equipment props are missing")
	ErrMissingEquipment = errors.New("system: equipment state is missing")
)

// Props is the visual layer equipment pieces live in. Both methods report
// false for unknown ids or points.
type Props interface {
	SetVisible(id string, visible bool) bool
	Attach(id, point string) bool
}

// Equipment shows and hides held/stowed props as the equipment state changes.
type Equipment struct {
	deps   Deps
	log    *slog.Logger
	active bool
	subs   reactive.Bag
	slots  map[actor.EquipmentKind]actor.EquipmentSlots
}

func NewEquipment(d Deps) *Equipment {
	return &Equipment{deps: d, log: componentLogger(d.Logger, "equipment")}
}

func (e *Equipment) Name() string   { return "equipment" }
func (e *Equipment) IsActive() bool { return e.active }

func (e *Equipment) Initialize() error {
	if e.active {
		return nil
	}
	var err error
	switch {
	case e.deps.Equipment == nil:
		err = ErrMissingEquipment
	case e.deps.Props == nil:
		err = ErrMissingProps
	}
	if err != nil {
		err = fmt.Errorf("system: equipment: %w", err)
		e.log.Error("initialize failed", "err", err)
		return err
	}

	e.slots = e.deps.Slots
	if e.slots == nil {
		e.slots = actor.DefaultEquipmentSlots()
	}
	e.active = true
	e.subs.Add(e.deps.Equipment.OnChanged(e.apply))
	return nil
}

func (e *Equipment) apply(changes []actor.EquipmentChange) {
	if !e.active {
		return
	}
	for _, c := range changes {
		slot, ok := e.slots[c.Kind]
		if !ok {
			continue
		}
		switch c.Action {
		case actor.EquipmentActive:
			e.show(slot.Held, true)
			e.show(slot.Stowed, false)
		case actor.EquipmentDeactive:
			e.show(slot.Held, false)
			e.show(slot.Stowed, true)
		}
		e.log.Debug("equipment", "kind", c.Kind, "action", c.Action)
	}
}

func (e *Equipment) show(id string, visible bool) {
	if id == "" {
		return
	}
	if !e.deps.Props.SetVisible(id, visible) {
		e.log.Debug("unknown prop", "id", id)
	}
}

// Reparent attaches prop id to point. Unknown ids or points are ignored.
func (e *Equipment) Reparent(id, point string) {
	if !e.active {
		return
	}
	if !e.deps.Props.Attach(id, point) {
		e.log.Debug("reparent ignored", "id", id, "point", point)
	}
}

func (e *Equipment) Update(dt float64) {}

func (e *Equipment) Release() {
	if !e.active {
		return
	}
	e.active = false
	e.subs.Dispose()
}

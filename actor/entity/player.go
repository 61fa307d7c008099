package entity

import (
	"fmt"

	"github.com/milk9111/actorkit/actor"
	"github.com/milk9111/actorkit/actor/system"
)

// buildLocalPlayer wires the input-driven behaviour set. Subsystems are
// ticked in build order: movement, combat, animation bridge, equipment and
// the animation event router.
func (e *Entity) buildLocalPlayer(d Deps) {
	var settings *actor.Settings
	if d.Settings != nil {
		e.settings = *d.Settings
		settings = &e.settings
	}
	e.status = actor.NewStatus(e.settings.MaxHealth, e.settings.MaxStamina)

	sd := system.Deps{
		Store:     e.store,
		Input:     e.input,
		View:      d.View,
		Camera:    d.Camera,
		Settings:  settings,
		Clock:     e.clock,
		Logger:    e.log,
		Animator:  e.animator,
		Events:    e.animator,
		Normal:    d.Normal,
		Combat:    d.Combat,
		Equipment: e.equipment,
		Props:     d.Props,
		Slots:     d.Slots,
	}
	e.movement = system.NewMovement(sd)
	e.combat = system.NewCombat(sd)
	e.bridge = system.NewAnimationBridge(sd, system.BridgeHooks{
		JumpStarted: e.movement.JumpAnimationStarted,
		JumpEnded:   e.movement.JumpAnimationEnded,
		AttackEnded: e.combat.FinishAttack,
	}, system.DefaultBridgeNodes())
	e.equip = system.NewEquipment(sd)
	e.events = system.NewAnimationEvents(sd, e.equip.Reparent)

	e.controllers = []actor.Controller{e.movement, e.combat, e.bridge, e.equip, e.events}
}

// ApplySettings hot-swaps the tuning record between ticks.
func (e *Entity) ApplySettings(s actor.Settings) error {
	if e.released {
		return nil
	}
	if err := s.Validate(); err != nil {
		return fmt.Errorf("entity: apply settings: %w", err)
	}
	if e.movement.IsActive() {
		if err := e.movement.ApplySettings(s); err != nil {
			return fmt.Errorf("entity: apply settings: %w", err)
		}
	}
	e.combat.SetWindow(s.ComboWindow)
	e.status.SetMax(s.MaxHealth, s.MaxStamina)
	e.settings = s
	return nil
}

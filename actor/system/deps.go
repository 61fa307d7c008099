// Package system holds the subsystems that make up a player-controlled actor:
// movement, combat, the animation bridge, equipment and the animation event
// router. Each one implements actor.Controller.
package system

import (
	"log/slog"

	"github.com/milk9111/actorkit/actor"
	"github.com/milk9111/actorkit/anim"
	"github.com/milk9111/actorkit/input"
)

// Deps is everything a subsystem may be wired to. Subsystems check for the
// fields they need in Initialize.
type Deps struct {
	Store    *actor.Store
	Input    *input.Aggregator
	View     actor.View
	Camera   actor.Camera
	Settings *actor.Settings
	Clock    actor.TimeSource
	Logger   *slog.Logger

	Animator anim.Driver
	Events   anim.EventSource
	Normal   *anim.Graph
	Combat   *anim.Graph
	Keys     *anim.KeyTable

	Equipment *actor.EquipmentState
	Props     Props
	Slots     map[actor.EquipmentKind]actor.EquipmentSlots
}

func componentLogger(l *slog.Logger, name string) *slog.Logger {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	return l.With("component", name)
}

func cameraYaw(c actor.Camera) float64 {
	if c == nil {
		return 0
	}
	return c.Yaw()
}

package main

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/actorkit/actor"
	"github.com/milk9111/actorkit/actor/entity"
	"github.com/milk9111/actorkit/input"
	"github.com/milk9111/actorkit/physics"
	"github.com/milk9111/actorkit/prefabs"
)

type options struct {
	Actor  string
	Level  string
	Script string
	Ticks  int
	TPS    int
}

// result summarizes a run.
type result struct {
	Ticks       int
	Elapsed     float64
	Position    mgl64.Vec3
	Transitions []entity.Transition
	MaxCombo    actor.ComboState
	Swaps       int
	Err         error
}

// headlessProps accepts every prop so equipment tokens still run end to end.
type headlessProps struct {
	log *slog.Logger
}

func (p headlessProps) SetVisible(id string, visible bool) bool {
	p.log.Debug("prop visible", "id", id, "visible", visible)
	return true
}

func (p headlessProps) Attach(id, point string) bool {
	p.log.Debug("prop attach", "id", id, "point", point)
	return true
}

func simulate(opts options, log *slog.Logger) (result, error) {
	if opts.TPS <= 0 {
		return result{}, fmt.Errorf("actorsim: tps must be positive, got %d", opts.TPS)
	}
	spec, err := prefabs.LoadActorSpec(opts.Actor)
	if err != nil {
		return result{}, err
	}
	level, err := prefabs.LoadLevelSpec(opts.Level)
	if err != nil {
		return result{}, err
	}
	normal, combat, err := spec.LoadGraphs()
	if err != nil {
		return result{}, err
	}
	equipment, err := prefabs.LoadEquipmentSpec(spec.Equipment)
	if err != nil {
		return result{}, err
	}
	slots, err := equipment.EquipmentSlots()
	if err != nil {
		return result{}, err
	}

	scriptName := opts.Script
	if scriptName == "" {
		scriptName = spec.Script
	}
	src, err := prefabs.LoadScript(scriptName)
	if err != nil {
		return result{}, err
	}
	source, err := input.NewScriptSource(scriptName, src)
	if err != nil {
		return result{}, err
	}

	world := physics.NewWorld(level.Gravity, level.PhysicsSegments()...)
	character := world.NewCharacter(spec.SpawnPosition(), spec.CharacterConfig())
	character.SetYaw(spec.Character.Yaw)

	registry := entity.NewRegistry(log)
	defer registry.ReleaseAll()

	settings := spec.Settings.Settings()
	_, player, err := registry.Spawn(entity.Deps{
		Kind:     entity.LocalPlayer,
		Settings: &settings,
		View:     character,
		Camera:   &actor.FixedCamera{},
		Source:   source,
		Normal:   normal,
		Combat:   combat,
		Props:    headlessProps{log: log},
		Slots:    slots,
		Physics:  world,
		Logger:   log,
	})
	if err != nil {
		return result{}, err
	}

	res := result{Err: player.Err()}
	trace := player.Trace(func(t entity.Transition) {
		log.Info("transition", "at", fmt.Sprintf("%.3f", t.At), "cell", t.Cell, "value", t.Value)
		res.Transitions = append(res.Transitions, t)
	})
	defer trace.Dispose()
	comboSub := player.Store().ComboState.Subscribe(func(s actor.ComboState) {
		res.MaxCombo = max(res.MaxCombo, s)
	})
	defer comboSub.Dispose()

	dt := 1 / float64(opts.TPS)
	for range opts.Ticks {
		player.FixedUpdate(dt)
		player.Update(dt)
		res.Ticks++
	}
	res.Elapsed = player.Clock().Now()
	res.Position = player.Store().Position.Value()
	res.Swaps = player.Bridge().Swaps()
	return res, nil
}

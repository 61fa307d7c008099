package entity

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/actorkit/actor"
	"github.com/milk9111/actorkit/anim"
	"github.com/milk9111/actorkit/input"
	"github.com/milk9111/actorkit/physics"
	"github.com/milk9111/actorkit/prefabs"
)

const frame = 1.0 / 60

type sourceFunc func(dt float64, into *input.Aggregator) error

func (f sourceFunc) Poll(dt float64, into *input.Aggregator) error { return f(dt, into) }

type nopProps struct{}

func (nopProps) SetVisible(id string, visible bool) bool { return true }
func (nopProps) Attach(id, point string) bool            { return true }

func loadGraphs(t *testing.T) (*anim.Graph, *anim.Graph) {
	t.Helper()
	spec, err := prefabs.LoadActorSpec("")
	if err != nil {
		t.Fatalf("load actor spec: %v", err)
	}
	normal, combat, err := spec.LoadGraphs()
	if err != nil {
		t.Fatalf("load graphs: %v", err)
	}
	return normal, combat
}

func playerDeps(t *testing.T, source input.Source) (Deps, *physics.World) {
	t.Helper()
	normal, combat := loadGraphs(t)
	world := physics.NewWorld(-19.62, physics.Segment{A: mgl64.Vec2{-50, 0}, B: mgl64.Vec2{50, 0}})
	settings := actor.DefaultSettings()
	return Deps{
		Kind:     LocalPlayer,
		Settings: &settings,
		View:     world.NewCharacter(mgl64.Vec3{0, 0.005, 0}, physics.DefaultCharacterConfig()),
		Camera:   &actor.FixedCamera{},
		Source:   source,
		Normal:   normal,
		Combat:   combat,
		Props:    nopProps{},
		Physics:  world,
	}, world
}

func TestNewRejectsUnsupportedKinds(t *testing.T) {
	for _, kind := range []Kind{RemotePlayer, NPC, Kind(42)} {
		t.Run(kind.String(), func(t *testing.T) {
			e, err := New(Deps{Kind: kind})
			if !errors.Is(err, ErrUnsupportedKind) {
				t.Fatalf("expected ErrUnsupportedKind, got %v", err)
			}
			if e != nil {
				t.Fatalf("expected no entity")
			}
		})
	}
}

func TestLocalPlayerRuns(t *testing.T) {
	d, _ := playerDeps(t, sourceFunc(func(dt float64, into *input.Aggregator) error {
		into.SetMove(mgl64.Vec3{1, 0, 0})
		return nil
	}))
	e, err := New(d)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer e.Release()
	if e.Err() != nil {
		t.Fatalf("expected every controller to initialize, got %v", e.Err())
	}
	for _, c := range e.Controllers() {
		if !c.IsActive() {
			t.Fatalf("expected %s active", c.Name())
		}
	}

	for range 60 {
		e.FixedUpdate(frame)
		e.Update(frame)
	}
	if got := e.Store().MovementState.Value(); got != actor.MovementWalking {
		t.Fatalf("expected walking, got %v", got)
	}
	if x := e.Store().Position.Value().X(); x <= 0 {
		t.Fatalf("expected the actor to move right, got x=%g", x)
	}
	if !e.Store().Grounded.Value() {
		t.Fatalf("expected the actor to stay on the floor")
	}
	if got := e.Clock().Now(); got < 0.99 || got > 1.01 {
		t.Fatalf("expected about one second of simulated time, got %g", got)
	}
	if !e.Animator().Bool("walking") {
		t.Fatalf("expected the animator to see walking")
	}
}

func TestLocalPlayerCombatSwap(t *testing.T) {
	d, _ := playerDeps(t, nil)
	e, err := New(d)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer e.Release()

	e.Input().SetDefend(true)
	e.Input().SetDefend(false)
	if got := e.Animator().GraphID(); got != d.Combat.ID {
		t.Fatalf("expected combat graph, got %q", got)
	}

	for range 60 {
		e.Update(frame)
	}
	if got := e.Equipment().Get(actor.EquipmentSword); got != actor.EquipmentActive {
		t.Fatalf("expected the equip timeline to activate the sword, got %v", got)
	}
}

func TestFixedUpdatePublishesTeleport(t *testing.T) {
	d, _ := playerDeps(t, nil)
	e, err := New(d)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer e.Release()

	d.View.SetPosition(mgl64.Vec3{3, 5, 0})
	e.FixedUpdate(frame)
	pos := e.Store().Position.Value()
	if pos.X() != 3 || pos.Y() < 4.9 {
		t.Fatalf("expected the store to follow the teleport, got %v", pos)
	}
	if e.Store().Grounded.Value() {
		t.Fatalf("expected the actor airborne after the teleport")
	}
}

func TestDisabledInputReleasesHeldSignals(t *testing.T) {
	d, _ := playerDeps(t, sourceFunc(func(dt float64, into *input.Aggregator) error {
		into.SetMove(mgl64.Vec3{1, 0, 0})
		into.SetSprint(true)
		return nil
	}))
	e, err := New(d)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer e.Release()

	e.Update(frame)
	if got := e.Store().MovementState.Value(); got != actor.MovementRunning {
		t.Fatalf("expected running, got %v", got)
	}

	e.SetInputEnabled(false)
	if got := e.Input().Snapshot(); got != (input.Snapshot{}) {
		t.Fatalf("expected every signal released, got %+v", got)
	}
	e.Update(frame)
	if got := e.Store().MovementState.Value(); got != actor.MovementIdle {
		t.Fatalf("expected idle without input, got %v", got)
	}

	e.SetInputEnabled(true)
	e.Update(frame)
	if got := e.Store().MovementState.Value(); got != actor.MovementRunning {
		t.Fatalf("expected polling to resume, got %v", got)
	}
}

func TestMissingSettingsLeavesMovementInert(t *testing.T) {
	d, _ := playerDeps(t, nil)
	d.Settings = nil
	e, err := New(d)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer e.Release()

	if !errors.Is(e.Err(), actor.ErrMissingSettings) {
		t.Fatalf("expected ErrMissingSettings, got %v", e.Err())
	}
	if e.Movement().IsActive() || e.Combat().IsActive() {
		t.Fatalf("expected movement and combat inert")
	}
	if !e.Bridge().IsActive() {
		t.Fatalf("expected the bridge to run without settings")
	}
	e.Input().SetMove(mgl64.Vec3{0, 0, 1})
	e.Update(frame)
	if got := e.Store().MovementState.Value(); got != actor.MovementIdle {
		t.Fatalf("expected no movement writes, got %v", got)
	}
}

func TestMissingGraphRecorded(t *testing.T) {
	d, _ := playerDeps(t, nil)
	d.Combat = nil
	e, err := New(d)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer e.Release()
	if !errors.Is(e.Err(), actor.ErrMissingGraph) {
		t.Fatalf("expected ErrMissingGraph, got %v", e.Err())
	}
	if !e.Movement().IsActive() {
		t.Fatalf("expected movement unaffected by a missing graph")
	}
}

func TestPollErrorDoesNotStopTick(t *testing.T) {
	d, _ := playerDeps(t, sourceFunc(func(dt float64, into *input.Aggregator) error {
		return errors.New("device gone")
	}))
	e, err := New(d)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer e.Release()
	e.Update(frame)
	if e.Clock().Now() == 0 {
		t.Fatalf("expected the tick to continue after a poll error")
	}
}

func TestApplySettings(t *testing.T) {
	d, _ := playerDeps(t, nil)
	e, err := New(d)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer e.Release()

	bad := actor.DefaultSettings()
	bad.MaxJumpTime = 0
	if err := e.ApplySettings(bad); !errors.Is(err, actor.ErrInvalidSettings) {
		t.Fatalf("expected ErrInvalidSettings, got %v", err)
	}

	s := actor.DefaultSettings()
	s.MoveSpeed = 4
	if err := e.ApplySettings(s); err != nil {
		t.Fatalf("apply settings: %v", err)
	}
	if got := e.Settings().MoveSpeed; got != 4 {
		t.Fatalf("expected move speed 4, got %g", got)
	}

	s.MaxHealth = 60
	if err := e.ApplySettings(s); err != nil {
		t.Fatalf("apply settings: %v", err)
	}
	if got := e.Status().Health.Value(); e.Status().MaxHealth() != 60 || got != 60 {
		t.Fatalf("expected health clamped to the new max 60, got %g", got)
	}
}

func TestReleaseIsIdempotent(t *testing.T) {
	d, _ := playerDeps(t, nil)
	e, err := New(d)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	e.Release()
	e.Release()

	if !e.Released() || !e.Store().Disposed() {
		t.Fatalf("expected the store disposed on release")
	}
	if !e.Status().Health.Disposed() {
		t.Fatalf("expected the status disposed on release")
	}
	for _, c := range e.Controllers() {
		if c.IsActive() {
			t.Fatalf("expected %s released", c.Name())
		}
	}
	now := e.Clock().Now()
	e.Update(frame)
	e.FixedUpdate(frame)
	if e.Clock().Now() != now {
		t.Fatalf("expected no ticks after release")
	}
}

func TestTraceReportsTransitions(t *testing.T) {
	d, _ := playerDeps(t, nil)
	e, err := New(d)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer e.Release()

	var got []Transition
	bag := e.Trace(func(tr Transition) { got = append(got, tr) })
	e.Update(frame)
	e.Input().SetDefend(true)
	e.Input().SetDefend(false)
	bag.Dispose()
	e.Input().SetDefend(true)

	want := []Transition{
		{At: frame, Cell: "combat_mode", Value: "true"},
		{At: frame, Cell: "combat", Value: "normal"},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("transition %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

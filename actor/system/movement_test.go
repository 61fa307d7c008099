package system

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/actorkit/actor"
)

const frame = 1.0 / 60

func TestMovementStatePriority(t *testing.T) {
	cases := []struct {
		name   string
		move   mgl64.Vec3
		sprint bool
		jump   bool
		want   actor.MovementState
	}{
		{"idle", mgl64.Vec3{}, false, false, actor.MovementIdle},
		{"below_threshold", mgl64.Vec3{0.05, 0, 0}, false, false, actor.MovementIdle},
		{"walking", mgl64.Vec3{0, 0, 1}, false, false, actor.MovementWalking},
		{"running", mgl64.Vec3{0, 0, 1}, true, false, actor.MovementRunning},
		{"sprint_without_move", mgl64.Vec3{}, true, false, actor.MovementIdle},
		{"jumping_over_running", mgl64.Vec3{0, 0, 1}, true, true, actor.MovementJumping},
		{"jumping_in_place", mgl64.Vec3{}, false, true, actor.MovementJumping},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := newHarness(t, &fakeView{grounded: true})
			h.in.SetMove(c.move)
			h.in.SetSprint(c.sprint)
			h.in.SetJump(c.jump)
			h.movement.Update(frame)
			if got := h.store.MovementState.Value(); got != c.want {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
		})
	}
}

func TestMovementBelowThresholdDoesNotMove(t *testing.T) {
	h := newHarness(t, &fakeView{grounded: true})
	h.in.SetMove(mgl64.Vec3{0.05, 0, 0.05})
	for range 30 {
		h.movement.Update(frame)
	}
	pos := h.store.Position.Value()
	if pos.X() != 0 || pos.Z() != 0 {
		t.Fatalf("expected no horizontal motion, got %v", pos)
	}
	if got := h.store.Movement.Value(); got != (mgl64.Vec3{0.05, 0, 0.05}) {
		t.Fatalf("expected raw input mirrored, got %v", got)
	}
}

func TestMovementTurnsTowardInput(t *testing.T) {
	cases := []struct {
		name    string
		camera  actor.Camera
		move    mgl64.Vec3
		wantYaw float64
	}{
		{"right", &actor.FixedCamera{}, mgl64.Vec3{1, 0, 0}, 90},
		{"forward_with_camera", &actor.FixedCamera{Degrees: 90}, mgl64.Vec3{0, 0, 1}, 90},
		{"forward", &actor.FixedCamera{}, mgl64.Vec3{0, 0, 1}, 0},
		{"no_camera", nil, mgl64.Vec3{1, 0, 0}, 90},
		{"nil_fixed_camera", (*actor.FixedCamera)(nil), mgl64.Vec3{1, 0, 0}, 90},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := newCameraHarness(t, &fakeView{grounded: true}, c.camera)
			h.in.SetMove(c.move)
			for range 60 {
				h.movement.Update(frame)
			}
			if got := h.view.Yaw(); math.Abs(got-c.wantYaw) > 1 {
				t.Fatalf("expected yaw near %g, got %g", c.wantYaw, got)
			}
			pos := h.store.Position.Value()
			if math.Hypot(pos.X(), pos.Z()) <= 0 {
				t.Fatalf("expected the actor to move, got %v", pos)
			}
		})
	}
}

func TestMovementSprintIsFaster(t *testing.T) {
	distance := func(sprint bool) float64 {
		h := newHarness(t, &fakeView{grounded: true, yaw: 0})
		h.in.SetMove(mgl64.Vec3{0, 0, 1})
		h.in.SetSprint(sprint)
		for range 30 {
			h.movement.Update(frame)
		}
		return h.store.Position.Value().Z()
	}
	walk, run := distance(false), distance(true)
	if run <= walk*2 {
		t.Fatalf("expected sprint to cover more ground, walk %g run %g", walk, run)
	}
}

func TestMovementJumpCooldown(t *testing.T) {
	h := newHarness(t, &fakeView{grounded: true, pinned: true})

	steps := []struct {
		at      float64
		pressed bool
		granted bool
	}{
		{0, true, true},
		{0.1, false, false},
		{0.5, true, false},
		{0.6, false, false},
		{1.1, true, true},
	}
	for _, s := range steps {
		h.clock.Set(s.at)
		h.in.SetJump(s.pressed)
		h.movement.Update(frame)
		granted := h.movement.VerticalVelocity() > 0
		if granted != s.granted {
			t.Fatalf("t=%g pressed=%v: expected granted %v, vertical velocity %g", s.at, s.pressed, s.granted, h.movement.VerticalVelocity())
		}
	}
}

func TestMovementHeldJumpDoesNotRepeat(t *testing.T) {
	h := newHarness(t, &fakeView{grounded: true, pinned: true})
	h.in.SetJump(true)
	h.movement.Update(frame)
	if h.movement.VerticalVelocity() <= 0 {
		t.Fatalf("expected first jump granted")
	}
	h.clock.Set(5)
	h.movement.Update(frame)
	if h.movement.VerticalVelocity() > 0 {
		t.Fatalf("expected a held button not to jump again")
	}
}

func TestMovementJumpArcLands(t *testing.T) {
	h := newHarness(t, &fakeView{grounded: true})
	h.in.SetJump(true)
	h.movement.Update(frame)
	h.in.SetJump(false)

	peak := 0.0
	for range 120 {
		h.clock.Advance(frame)
		h.movement.Update(frame)
		peak = math.Max(peak, h.store.Position.Value().Y())
	}
	if peak <= 0 {
		t.Fatalf("expected the jump to leave the ground")
	}
	if !h.store.Grounded.Value() {
		t.Fatalf("expected to land")
	}
	if got := h.store.MovementState.Value(); got != actor.MovementIdle {
		t.Fatalf("expected idle after landing, got %v", got)
	}
	if got := h.movement.VerticalVelocity(); got != h.settings.GroundedGravity {
		t.Fatalf("expected grounded gravity %g, got %g", h.settings.GroundedGravity, got)
	}
}

func TestMovementJumpNodeExitEndsJump(t *testing.T) {
	h := newHarness(t, &fakeView{grounded: true, pinned: true})
	h.in.SetJump(true)
	h.movement.Update(frame)
	if got := h.store.MovementState.Value(); got != actor.MovementJumping {
		t.Fatalf("expected jumping, got %v", got)
	}

	h.animator.Update(0.01)
	if got := h.animator.Current(); got != "Normal.Jump" {
		t.Fatalf("expected jump node, got %q", got)
	}
	h.animator.Update(0.6)
	if h.movement.Jumping() {
		t.Fatalf("expected the jump node exit to end the jump")
	}
	h.movement.Update(frame)
	if got := h.store.MovementState.Value(); got != actor.MovementIdle {
		t.Fatalf("expected idle, got %v", got)
	}
}

func TestMovementApplySettings(t *testing.T) {
	h := newHarness(t, &fakeView{grounded: true})
	s := actor.DefaultSettings()
	s.MoveSpeed = -1
	if err := h.movement.ApplySettings(s); err == nil {
		t.Fatalf("expected invalid settings to be rejected")
	}
	s.MoveSpeed = 10
	if err := h.movement.ApplySettings(s); err != nil {
		t.Fatalf("apply settings: %v", err)
	}
	h.in.SetMove(mgl64.Vec3{0, 0, 1})
	h.movement.Update(frame)
	if got := h.movement.Velocity().Len(); math.Abs(got-math.Hypot(10, h.movement.VerticalVelocity())) > 1e-9 {
		t.Fatalf("expected move speed 10, velocity %g", got)
	}
}

func TestMovementReleaseStopsWrites(t *testing.T) {
	h := newHarness(t, &fakeView{grounded: true})
	h.movement.Release()
	h.in.SetMove(mgl64.Vec3{0, 0, 1})
	h.movement.Update(frame)
	if got := h.store.Movement.Value(); got != (mgl64.Vec3{}) {
		t.Fatalf("expected no input mirrored after release, got %v", got)
	}
	if got := h.store.MovementState.Value(); got != actor.MovementIdle {
		t.Fatalf("expected no state writes after release, got %v", got)
	}
}

func TestMovementFixedUpdatePublishesView(t *testing.T) {
	h := newHarness(t, &fakeView{grounded: true})
	h.view.SetPosition(mgl64.Vec3{3, 2, -1})
	h.view.grounded = false

	h.movement.FixedUpdate(frame)
	if got := h.store.Position.Value(); got != (mgl64.Vec3{3, 2, -1}) {
		t.Fatalf("expected the teleported position, got %v", got)
	}
	if h.store.Grounded.Value() {
		t.Fatalf("expected grounded cleared")
	}

	h.movement.Release()
	h.view.SetPosition(mgl64.Vec3{})
	h.movement.FixedUpdate(frame)
	if got := h.store.Position.Value(); got != (mgl64.Vec3{3, 2, -1}) {
		t.Fatalf("expected no writes after release, got %v", got)
	}
}

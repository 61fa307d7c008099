package system

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/actorkit/actor"
	"github.com/milk9111/actorkit/common"
	"github.com/milk9111/actorkit/reactive"
)

// Movement moves the actor's view from input each frame and derives the
// movement state. It is the only writer of MovementState, Position, Grounded
// and Movement.
type Movement struct {
	deps   Deps
	log    *slog.Logger
	active bool
	subs   reactive.Bag

	settings     actor.Settings
	gravity      float64
	jumpVelocity float64

	moving      bool
	sprint      bool
	jumpPressed bool

	heading          mgl64.Vec3
	verticalVelocity float64
	rotationVelocity float64

	// jumping latches a granted jump until the button is released on the
	// ground; jumpAnimating drives the Jumping state.
	jumping       bool
	jumpAnimating bool
	hasJumped     bool
	lastJumpTime  float64
	airborne      bool
}

func NewMovement(d Deps) *Movement {
	return &Movement{deps: d, log: componentLogger(d.Logger, "movement")}
}

func (m *Movement) Name() string   { return "movement" }
func (m *Movement) IsActive() bool { return m.active }

func (m *Movement) Initialize() error {
	if m.active {
		return nil
	}
	if err := m.check(); err != nil {
		m.log.Error("initialize failed", "err", err)
		return err
	}
	m.setSettings(*m.deps.Settings)
	m.active = true

	if in := m.deps.Input; in != nil {
		m.subs.Add(in.Move.SubscribeNow(m.onMove))
		m.subs.Add(in.Sprint.SubscribeNow(func(v bool) { m.sprint = v }))
		m.subs.Add(in.Jump.SubscribeNow(func(v bool) { m.jumpPressed = v }))
	}
	m.publishView()
	return nil
}

func (m *Movement) check() error {
	switch {
	case m.deps.Settings == nil:
		return fmt.Errorf("system: movement: %w", actor.ErrMissingSettings)
	case m.deps.View == nil:
		return fmt.Errorf("system: movement: %w", actor.ErrMissingView)
	case m.deps.Store == nil:
		return fmt.Errorf("system: movement: %w", actor.ErrMissingStore)
	case m.deps.Clock == nil:
		return fmt.Errorf("system: movement: %w", actor.ErrMissingClock)
	}
	if err := m.deps.Settings.Validate(); err != nil {
		return fmt.Errorf("system: movement: %w", err)
	}
	return nil
}

func (m *Movement) setSettings(s actor.Settings) {
	m.settings = s
	m.gravity, m.jumpVelocity = s.JumpParams()
}

// ApplySettings swaps the tuning record between ticks.
func (m *Movement) ApplySettings(s actor.Settings) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("system: movement: %w", err)
	}
	m.setSettings(s)
	m.log.Info("settings applied", "move_speed", s.MoveSpeed, "jump_cooldown", s.JumpCooldown)
	return nil
}

func (m *Movement) onMove(v mgl64.Vec3) {
	if !m.active {
		return
	}
	m.moving = v.Len() >= m.settings.MovementThreshold && v.Len() > 0
	m.deps.Store.Movement.Set(v)
}

// JumpAnimationStarted and JumpAnimationEnded are driven by the jump node's
// timeline callbacks.
func (m *Movement) JumpAnimationStarted() {
	if m.active {
		m.jumpAnimating = true
	}
}

func (m *Movement) JumpAnimationEnded() {
	if m.active {
		m.jumpAnimating = false
	}
}

// Velocity is the velocity used for the last move, sprint applied.
func (m *Movement) Velocity() mgl64.Vec3 {
	speed := m.settings.MoveSpeed
	if m.sprint {
		speed *= m.settings.RunSpeedMultiplier
	}
	return mgl64.Vec3{m.heading.X() * speed, m.verticalVelocity, m.heading.Z() * speed}
}

func (m *Movement) VerticalVelocity() float64 { return m.verticalVelocity }
func (m *Movement) Jumping() bool             { return m.jumpAnimating }

func (m *Movement) Update(dt float64) {
	if !m.active || dt <= 0 {
		return
	}
	m.rotate(dt)
	m.move(dt)
	m.applyGravity(dt)
	m.jump()
	m.updateState()
}

func (m *Movement) rotate(dt float64) {
	if !m.moving {
		m.heading = mgl64.Vec3{}
		return
	}
	in := m.deps.Store.Movement.Value()
	view := m.deps.View
	target := mgl64.RadToDeg(math.Atan2(in.X(), in.Z())) + cameraYaw(m.deps.Camera)
	facing := common.NormalizeAngle(common.SmoothDampAngle(view.Yaw(), target, &m.rotationVelocity, m.settings.RotationSmoothTime, dt))
	view.SetYaw(facing)

	rad := mgl64.DegToRad(facing)
	m.heading = mgl64.Vec3{math.Sin(rad), 0, math.Cos(rad)}
}

func (m *Movement) move(dt float64) {
	m.deps.View.Move(m.Velocity().Mul(dt))
	m.publishView()
}

// FixedUpdate republishes the view after the physics step, so teleports and
// other moves made outside Update reach the store.
func (m *Movement) FixedUpdate(dt float64) {
	if !m.active {
		return
	}
	m.publishView()
}

func (m *Movement) publishView() {
	view := m.deps.View
	m.deps.Store.Position.Set(view.Position())
	m.deps.Store.Grounded.Set(view.Grounded())
}

func (m *Movement) applyGravity(dt float64) {
	if m.deps.View.Grounded() {
		if m.airborne {
			m.airborne = false
			m.jumpAnimating = false
		}
		m.verticalVelocity = m.settings.GroundedGravity
		return
	}
	m.airborne = true
	prev := m.verticalVelocity
	next := prev + m.gravity*dt
	m.verticalVelocity = (prev + next) * 0.5
}

func (m *Movement) jump() {
	grounded := m.deps.View.Grounded()
	switch {
	case !m.jumping && grounded && m.jumpPressed:
		now := m.deps.Clock.Now()
		if m.hasJumped && now-m.lastJumpTime < m.settings.JumpCooldown {
			return
		}
		m.hasJumped = true
		m.lastJumpTime = now
		m.jumping = true
		m.jumpAnimating = true
		m.verticalVelocity = m.jumpVelocity * 0.5
		m.log.Debug("jump", "at", now, "velocity", m.verticalVelocity)
	case !m.jumpPressed && m.jumping && grounded:
		m.jumping = false
	}
}

func (m *Movement) updateState() {
	state := actor.MovementIdle
	switch {
	case m.jumpAnimating:
		state = actor.MovementJumping
	case m.moving:
		state = actor.MovementWalking
		if m.sprint {
			state = actor.MovementRunning
		}
	}
	if prev := m.deps.Store.MovementState.Value(); prev != state {
		m.log.Debug("movement state", "from", prev, "to", state)
		m.deps.Store.MovementState.Set(state)
	}
}

func (m *Movement) Release() {
	if !m.active {
		return
	}
	m.active = false
	m.subs.Dispose()
	m.hasJumped = false
	m.lastJumpTime = 0
}

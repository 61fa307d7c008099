package actor

import "fmt"

// Settings is the per-actor tuning record. Durations are in seconds.
type Settings struct {
	MoveSpeed          float64
	RunSpeedMultiplier float64
	RotationSmoothTime float64
	MovementThreshold  float64
	Gravity            float64
	JumpPower          float64
	MaxJumpHeight      float64
	MaxJumpTime        float64
	JumpCooldown       float64
	GroundedGravity    float64
	ComboWindow        float64
	MaxHealth          float64
	MaxStamina         float64
}

// DefaultSettings mirrors the values the actor prefab ships with.
func DefaultSettings() Settings {
	return Settings{
		MoveSpeed:          1.5,
		RunSpeedMultiplier: 3,
		RotationSmoothTime: 0.1,
		MovementThreshold:  0.1,
		Gravity:            -19.62,
		JumpPower:          4.3,
		MaxJumpHeight:      2.0,
		MaxJumpTime:        0.75,
		JumpCooldown:       1.0,
		GroundedGravity:    -0.5,
		ComboWindow:        1.5,
		MaxHealth:          100,
		MaxStamina:         100,
	}
}

// Validate reports the first field that cannot drive the simulation.
func (s *Settings) Validate() error {
	if s == nil {
		return ErrMissingSettings
	}
	switch {
	case s.MoveSpeed < 0:
		return fmt.Errorf("%w: move speed %g", ErrInvalidSettings, s.MoveSpeed)
	case s.RunSpeedMultiplier < 0:
		return fmt.Errorf("%w: run speed multiplier %g", ErrInvalidSettings, s.RunSpeedMultiplier)
	case s.RotationSmoothTime < 0:
		return fmt.Errorf("%w: rotation smooth time %g", ErrInvalidSettings, s.RotationSmoothTime)
	case s.MovementThreshold < 0:
		return fmt.Errorf("%w: movement threshold %g", ErrInvalidSettings, s.MovementThreshold)
	case s.MaxJumpHeight <= 0:
		return fmt.Errorf("%w: max jump height %g", ErrInvalidSettings, s.MaxJumpHeight)
	case s.MaxJumpTime <= 0:
		return fmt.Errorf("%w: max jump time %g", ErrInvalidSettings, s.MaxJumpTime)
	case s.JumpCooldown < 0:
		return fmt.Errorf("%w: jump cooldown %g", ErrInvalidSettings, s.JumpCooldown)
	case s.ComboWindow <= 0:
		return fmt.Errorf("%w: combo window %g", ErrInvalidSettings, s.ComboWindow)
	}
	return nil
}

// JumpParams derives gravity and initial jump velocity from the configured
// apex height H and jump time: t = MaxJumpTime/2, gravity = -2H/t^2, v0 = 2H/t.
func (s *Settings) JumpParams() (gravity, initialVelocity float64) {
	timeToApex := s.MaxJumpTime / 2
	gravity = -2 * s.MaxJumpHeight / (timeToApex * timeToApex)
	initialVelocity = 2 * s.MaxJumpHeight / timeToApex
	return gravity, initialVelocity
}

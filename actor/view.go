package actor

import "github.com/go-gl/mathgl/mgl64"

// View is the physics character-controller proxy an actor moves through.
type View interface {
	Position() mgl64.Vec3
	SetPosition(p mgl64.Vec3)
	// Yaw is the facing around the vertical axis in degrees.
	Yaw() float64
	SetYaw(deg float64)
	// Move displaces the character by delta, resolving collisions, and
	// updates the grounded flag.
	Move(delta mgl64.Vec3)
	Grounded() bool
}

// Camera supplies the yaw that movement input is relative to.
type Camera interface {
	Yaw() float64
}

// FixedCamera is a Camera with a settable yaw.
type FixedCamera struct {
	Degrees float64
}

func (c *FixedCamera) Yaw() float64 {
	if c == nil {
		return 0
	}
	return c.Degrees
}

// Controller is one subsystem of an actor. Initialize failures leave the
// controller inert; Update is skipped while inactive.
type Controller interface {
	Name() string
	IsActive() bool
	Initialize() error
	Update(dt float64)
	Release()
}

// FixedUpdater is implemented by controllers that also run on the fixed
// simulation tick.
type FixedUpdater interface {
	FixedUpdate(dt float64)
}

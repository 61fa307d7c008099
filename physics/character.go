package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

// CharacterConfig sizes a character proxy.
type CharacterConfig struct {
	// Radius is the collision radius of the character in the X/Y plane.
	Radius float64
	// Skin is the gap kept between the character and surfaces it touches.
	Skin float64
	// SlopeLimit is the minimum normal Y of a surface counted as ground.
	SlopeLimit float64
}

// DefaultCharacterConfig returns a half-metre character.
func DefaultCharacterConfig() CharacterConfig {
	return CharacterConfig{Radius: 0.5, Skin: 0.01, SlopeLimit: 0.5}
}

// Character is a kinematic capsule moved by explicit displacements. It
// implements actor.View. Position is the feet point.
type Character struct {
	world *World
	body  *cp.Body
	shape *cp.Shape
	group uint
	cfg   CharacterConfig

	z        float64
	yaw      float64
	grounded bool
}

// NewCharacter adds a character to the world with its feet at pos.
func (w *World) NewCharacter(pos mgl64.Vec3, cfg CharacterConfig) *Character {
	def := DefaultCharacterConfig()
	if cfg.Radius <= 0 {
		cfg.Radius = def.Radius
	}
	if cfg.Skin <= 0 {
		cfg.Skin = def.Skin
	}
	if cfg.SlopeLimit <= 0 {
		cfg.SlopeLimit = def.SlopeLimit
	}

	c := &Character{world: w, cfg: cfg, group: w.group()}
	c.body = cp.NewKinematicBody()
	c.shape = cp.NewCircle(c.body, cfg.Radius, cp.Vector{})
	c.shape.SetCollisionType(collisionTypeCharacter)
	c.shape.SetFilter(cp.NewShapeFilter(c.group, cp.ALL_CATEGORIES, cp.ALL_CATEGORIES))
	if w.space != nil {
		w.space.AddBody(c.body)
		w.space.AddShape(c.shape)
	}
	c.SetPosition(pos)
	return c
}

// Remove takes the character out of the world.
func (c *Character) Remove() {
	if c == nil || c.world == nil || c.world.space == nil {
		return
	}
	space := c.world.space
	if c.shape.Space() != nil {
		space.RemoveShape(c.shape)
	}
	space.RemoveBody(c.body)
	c.world = nil
}

func (c *Character) center() mgl64.Vec2 {
	return fromCP(c.body.Position())
}

func (c *Character) Position() mgl64.Vec3 {
	p := c.center()
	return mgl64.Vec3{p.X(), p.Y() - c.cfg.Radius, c.z}
}

func (c *Character) SetPosition(p mgl64.Vec3) {
	c.body.SetPosition(cp.Vector{X: p.X(), Y: p.Y() + c.cfg.Radius})
	c.z = p.Z()
	c.grounded = c.probeGround()
}

func (c *Character) Yaw() float64 {
	return c.yaw
}

func (c *Character) SetYaw(deg float64) {
	c.yaw = deg
}

func (c *Character) Grounded() bool {
	return c.grounded
}

// Move displaces the character axis by axis, stopping short of any surface
// in the way, then refreshes the grounded flag.
func (c *Character) Move(delta mgl64.Vec3) {
	pos := c.center()
	pos = c.sweep(pos, mgl64.Vec2{delta.X(), 0})
	pos = c.sweep(pos, mgl64.Vec2{0, delta.Y()})
	c.body.SetPosition(toCP(pos))
	c.z += delta.Z()
	c.grounded = c.probeGround()
}

func (c *Character) sweep(from, d mgl64.Vec2) mgl64.Vec2 {
	length := d.Len()
	if length == 0 {
		return from
	}
	to := from.Add(d)
	if c.world == nil {
		return to
	}
	hit, ok := c.world.Sweep(from, to, c.cfg.Radius, c.group)
	if !ok {
		return to
	}
	travel := math.Max(0, hit.Alpha*length-c.cfg.Skin)
	return from.Add(d.Mul(travel / length))
}

func (c *Character) probeGround() bool {
	if c.world == nil {
		return false
	}
	from := c.center()
	to := from.Sub(mgl64.Vec2{0, c.cfg.Skin * 2})
	hit, ok := c.world.Sweep(from, to, c.cfg.Radius, c.group)
	return ok && hit.Normal.Y() >= c.cfg.SlopeLimit
}

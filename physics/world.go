// Package physics provides the Chipmunk-backed character proxy actors move
// through. Collision happens in the vertical X/Y plane; depth (Z) is carried
// without collision.
package physics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypeCharacter
)

// Segment is a static level edge.
type Segment struct {
	A, B   mgl64.Vec2
	Radius float64
}

// Hit is the result of a swept query.
type Hit struct {
	Point  mgl64.Vec2
	Normal mgl64.Vec2
	// Alpha is the fraction of the query segment travelled before impact.
	Alpha float64
}

// World owns the Chipmunk space and the static level geometry.
type World struct {
	space     *cp.Space
	statics   []*cp.Shape
	nextGroup uint
}

// NewWorld creates a space with the given vertical gravity and static
// segments.
func NewWorld(gravity float64, segments ...Segment) *World {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: gravity})

	w := &World{space: space}
	for _, seg := range segments {
		w.AddSegment(seg)
	}
	return w
}

// Space returns the underlying Chipmunk space.
func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

// AddSegment adds a static edge.
func (w *World) AddSegment(seg Segment) {
	if w == nil || w.space == nil {
		return
	}
	shape := cp.NewSegment(w.space.StaticBody, toCP(seg.A), toCP(seg.B), seg.Radius)
	shape.SetFriction(0.8)
	shape.SetCollisionType(collisionTypeSolid)
	w.space.AddShape(shape)
	w.statics = append(w.statics, shape)
}

// Segments reports the static edges, for debug drawing.
func (w *World) Segments() []Segment {
	if w == nil {
		return nil
	}
	out := make([]Segment, 0, len(w.statics))
	for _, shape := range w.statics {
		seg, ok := shape.Class.(*cp.Segment)
		if !ok {
			continue
		}
		out = append(out, Segment{A: fromCP(seg.A()), B: fromCP(seg.B()), Radius: seg.Radius()})
	}
	return out
}

// Step advances the simulation.
func (w *World) Step(dt float64) {
	if w == nil || w.space == nil || dt <= 0 {
		return
	}
	w.space.Step(dt)
}

// Sweep casts a circle of the given radius from -> to and reports the first
// static or dynamic shape it touches. Shapes in group are skipped.
func (w *World) Sweep(from, to mgl64.Vec2, radius float64, group uint) (Hit, bool) {
	if w == nil || w.space == nil {
		return Hit{}, false
	}
	filter := cp.SHAPE_FILTER_ALL
	if group != 0 {
		filter = cp.NewShapeFilter(group, cp.ALL_CATEGORIES, cp.ALL_CATEGORIES)
	}
	info := w.space.SegmentQueryFirst(toCP(from), toCP(to), radius, filter)
	if info.Shape == nil {
		return Hit{}, false
	}
	return Hit{Point: fromCP(info.Point), Normal: fromCP(info.Normal), Alpha: info.Alpha}, true
}

func (w *World) group() uint {
	w.nextGroup++
	return w.nextGroup
}

func toCP(v mgl64.Vec2) cp.Vector {
	return cp.Vector{X: v.X(), Y: v.Y()}
}

func fromCP(v cp.Vector) mgl64.Vec2 {
	return mgl64.Vec2{v.X, v.Y}
}

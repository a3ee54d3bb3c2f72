package ecs

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/ironkeep/common"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypeGate
)

// maxMoveStep bounds each sub-step of a move so fast movers (charges,
// knockback) cannot tunnel through thin walls.
const maxMoveStep = 4.0

// PhysicsWorld owns the Chipmunk space holding static walls and closable
// gates. Movement is resolved kinematically against it; nothing here is
// simulated as rigid bodies.
type PhysicsWorld struct {
	space  *cp.Space
	bounds common.Rect
	walls  []*cp.Shape
	gates  map[string]*cp.Shape
	open   map[string]bool
}

// NewPhysicsWorld creates a physics world covering width x height.
func NewPhysicsWorld(width, height float64) *PhysicsWorld {
	return &PhysicsWorld{
		space:  cp.NewSpace(),
		bounds: common.Rect{Width: width, Height: height},
		gates:  make(map[string]*cp.Shape),
		open:   make(map[string]bool),
	}
}

// Space returns the underlying Chipmunk space.
func (pw *PhysicsWorld) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

func (pw *PhysicsWorld) Bounds() common.Rect {
	if pw == nil {
		return common.Rect{}
	}
	return pw.bounds
}

func (pw *PhysicsWorld) staticBox(r common.Rect, kind cp.CollisionType) *cp.Shape {
	bb := cp.BB{L: r.X, B: r.Y, R: r.X + r.Width, T: r.Y + r.Height}
	shape := cp.NewBox2(pw.space.StaticBody, bb, 0)
	shape.SetFriction(0.8)
	shape.SetCollisionType(kind)
	pw.space.AddShape(shape)
	return shape
}

// AddWall adds a static wall.
func (pw *PhysicsWorld) AddWall(r common.Rect) {
	if pw == nil || pw.space == nil || r.Width <= 0 || r.Height <= 0 {
		return
	}
	pw.walls = append(pw.walls, pw.staticBox(r, collisionTypeSolid))
}

// Walls returns the wall rectangles for drawing.
func (pw *PhysicsWorld) Walls() []common.Rect {
	if pw == nil {
		return nil
	}
	out := make([]common.Rect, 0, len(pw.walls))
	for _, s := range pw.walls {
		out = append(out, rectFromBB(s.BB()))
	}
	return out
}

// AddGate adds a closed gate that blocks like a wall until opened.
func (pw *PhysicsWorld) AddGate(id string, r common.Rect) {
	if pw == nil || pw.space == nil || id == "" {
		return
	}
	if old, ok := pw.gates[id]; ok && old != nil && !pw.open[id] {
		pw.space.RemoveShape(old)
	}
	pw.gates[id] = pw.staticBox(r, collisionTypeGate)
	pw.open[id] = false
}

// OpenGate removes the gate's shape. It returns false when the gate is
// unknown or already open.
func (pw *PhysicsWorld) OpenGate(id string) bool {
	if pw == nil {
		return false
	}
	shape, ok := pw.gates[id]
	if !ok || pw.open[id] {
		return false
	}
	pw.space.RemoveShape(shape)
	pw.open[id] = true
	return true
}

// HasGate reports whether id was registered with AddGate.
func (pw *PhysicsWorld) HasGate(id string) bool {
	if pw == nil {
		return false
	}
	_, ok := pw.gates[id]
	return ok
}

func (pw *PhysicsWorld) GateOpen(id string) bool {
	if pw == nil {
		return false
	}
	return pw.open[id]
}

// Blocked reports whether r overlaps any wall or closed gate. The broadphase
// query is inclusive of touching edges, so each candidate is re-checked with
// a strict overlap test.
func (pw *PhysicsWorld) Blocked(r common.Rect) bool {
	if pw == nil || pw.space == nil {
		return false
	}
	bb := cp.BB{L: r.X, B: r.Y, R: r.X + r.Width, T: r.Y + r.Height}
	hit := false
	pw.space.BBQuery(bb, cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, data interface{}) {
		if hit {
			return
		}
		if rectFromBB(shape.BB()).Intersects(r) {
			hit = true
		}
	}, nil)
	return hit
}

// ClampToBounds keeps r fully inside the world.
func (pw *PhysicsWorld) ClampToBounds(r common.Rect) common.Rect {
	if pw == nil || pw.bounds.Width <= 0 || pw.bounds.Height <= 0 {
		return r
	}
	r.X = common.Clamp(r.X, pw.bounds.X, pw.bounds.X+pw.bounds.Width-r.Width)
	r.Y = common.Clamp(r.Y, pw.bounds.Y, pw.bounds.Y+pw.bounds.Height-r.Height)
	return r
}

// Move slides r by (dx, dy), one axis at a time in small steps, stopping an
// axis at the first blocked step. The result is clamped to world bounds.
// blocked reports whether any step was refused.
func (pw *PhysicsWorld) Move(r common.Rect, dx, dy float64) (out common.Rect, blocked bool) {
	if pw == nil {
		return r.Translate(dx, dy), false
	}
	steps := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy)) / maxMoveStep))
	if steps < 1 {
		steps = 1
	}
	sx, sy := dx/float64(steps), dy/float64(steps)
	stopX, stopY := sx == 0, sy == 0
	for i := 0; i < steps && !(stopX && stopY); i++ {
		if !stopX {
			next := r.Translate(sx, 0)
			if pw.Blocked(next) {
				stopX, blocked = true, true
			} else {
				r = next
			}
		}
		if !stopY {
			next := r.Translate(0, sy)
			if pw.Blocked(next) {
				stopY, blocked = true, true
			} else {
				r = next
			}
		}
	}
	clamped := pw.ClampToBounds(r)
	if clamped != r {
		blocked = true
	}
	return clamped, blocked
}

func rectFromBB(bb cp.BB) common.Rect {
	return common.Rect{X: bb.L, Y: bb.B, Width: bb.R - bb.L, Height: bb.T - bb.B}
}

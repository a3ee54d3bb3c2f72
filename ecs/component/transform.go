package component

import "github.com/milk9111/ironkeep/common"

// Transform is an entity's axis-aligned body in world units, origin at the
// top-left corner.
type Transform struct {
	X, Y          float64
	Width, Height float64
}

func (t *Transform) Rect() common.Rect {
	return common.Rect{X: t.X, Y: t.Y, Width: t.Width, Height: t.Height}
}

func (t *Transform) SetRect(r common.Rect) {
	t.X, t.Y = r.X, r.Y
	t.Width, t.Height = r.Width, r.Height
}

func (t *Transform) Center() (float64, float64) {
	return t.X + t.Width/2, t.Y + t.Height/2
}

var TransformComponent = NewComponent[Transform]()

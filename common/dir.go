package common

import "math"

// Dir is one of the four cardinal directions. The numeric order is clockwise
// starting at Up so rotation is plain modular addition.
type Dir int

const (
	Up Dir = iota
	Right
	Down
	Left
)

var AllDirs = [4]Dir{Up, Right, Down, Left}

func (d Dir) Opposite() Dir {
	return d.Rotate(2)
}

// Rotate turns d clockwise by n quarter turns. Negative n turns
// counter-clockwise.
func (d Dir) Rotate(n int) Dir {
	return Dir(((int(d)+n)%4 + 4) % 4)
}

// Delta returns the grid step for d with y growing downward.
func (d Dir) Delta() (int, int) {
	switch d {
	case Up:
		return 0, -1
	case Right:
		return 1, 0
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	}
	return 0, 0
}

func (d Dir) Vector() (float64, float64) {
	dx, dy := d.Delta()
	return float64(dx), float64(dy)
}

func (d Dir) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	}
	return "invalid"
}

// Toward picks the dominant cardinal direction of (dx, dy). Ties favor the
// horizontal axis.
func Toward(dx, dy float64) Dir {
	if math.Abs(dx) >= math.Abs(dy) {
		if dx < 0 {
			return Left
		}
		return Right
	}
	if dy < 0 {
		return Up
	}
	return Down
}

package common

import "testing"

func TestDirRotate(t *testing.T) {
	cases := []struct {
		name string
		in   Dir
		n    int
		want Dir
	}{
		{"up_once", Up, 1, Right},
		{"left_wraps", Left, 1, Up},
		{"down_twice", Down, 2, Up},
		{"right_back", Right, -1, Up},
		{"up_back_twice", Up, -2, Down},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.in.Rotate(c.n); got != c.want {
				t.Fatalf("expected %s, got %s", c.want, got)
			}
		})
	}
}

func TestDirOppositeAndToward(t *testing.T) {
	for _, d := range AllDirs {
		if d.Opposite().Opposite() != d {
			t.Fatalf("opposite of opposite should be %s", d)
		}
	}
	if Toward(-3, 1) != Left || Toward(0, 5) != Down || Toward(2, -9) != Up || Toward(4, 4) != Right {
		t.Fatalf("unexpected Toward results")
	}
}

func TestRectIntersects(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	if !a.Intersects(Rect{X: 9, Y: 9, Width: 5, Height: 5}) {
		t.Fatalf("expected overlap")
	}
	if a.Intersects(Rect{X: 10, Y: 0, Width: 5, Height: 5}) {
		t.Fatalf("touching edges should not overlap")
	}
}

func TestChooseWeighted(t *testing.T) {
	r := NewRNG(7)
	counts := map[string]int{}
	table := []Weighted[string]{{"never", 0}, {"a", 1}, {"b", 3}}
	for i := 0; i < 4000; i++ {
		v, ok := ChooseWeighted(r, table)
		if !ok {
			t.Fatalf("expected a choice")
		}
		counts[v]++
	}
	if counts["never"] != 0 {
		t.Fatalf("zero weight entry was chosen")
	}
	if counts["b"] <= counts["a"] {
		t.Fatalf("expected b to dominate, got %v", counts)
	}

	if _, ok := ChooseWeighted(r, []Weighted[int]{{1, 0}}); ok {
		t.Fatalf("all-zero table should not choose")
	}
}

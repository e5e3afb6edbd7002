package geom

import (
	"math"
	"testing"
)

func unitSquare() Loop {
	return Loop{Pt(0, 0), Pt(1, 0), Pt(1, 1), Pt(0, 1)}
}

func TestLoopPerimeter(t *testing.T) {
	if p := unitSquare().Perimeter(); p != 4 {
		t.Errorf("got perimeter %v, want 4", p)
	}
	if p := (Loop{Pt(1, 1)}).Perimeter(); p != 0 {
		t.Errorf("got perimeter %v, want 0", p)
	}
}

func TestLoopWinding(t *testing.T) {
	sq := unitSquare()
	if a := sq.SignedArea(); a != 1 {
		t.Errorf("got area %v, want 1", a)
	}
	if sq.Clockwise() {
		t.Error("unit square should be counter-clockwise")
	}

	sq.Reverse()
	diff(t, Loop{Pt(0, 0), Pt(0, 1), Pt(1, 1), Pt(1, 0)}, sq)
	if !sq.Clockwise() {
		t.Error("reversed square should be clockwise")
	}
}

func TestLoopReverseClosed(t *testing.T) {
	l := Loop{Pt(0, 0), Pt(1, 0), Pt(1, 1), Pt(0, 0)}
	l.Reverse()
	diff(t, Loop{Pt(0, 0), Pt(1, 1), Pt(1, 0), Pt(0, 0)}, l)
}

func TestLoopCentroidIgnoresClosingPoint(t *testing.T) {
	open := unitSquare()
	closed := append(unitSquare(), Pt(0, 0))
	diff(t, Pt(0.5, 0.5), open.Centroid())
	diff(t, Pt(0.5, 0.5), closed.Centroid())
}

func TestLoopContains(t *testing.T) {
	sq := unitSquare()
	tests := []struct {
		p    Point
		want bool
	}{
		{Pt(0.5, 0.5), true},
		{Pt(0, 0), true},
		{Pt(0.5, 0), true},
		{Pt(1.5, 0.5), false},
		{Pt(-0.1, 0.5), false},
	}
	for _, tt := range tests {
		if got := sq.Contains(tt.p); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}

	inner := Loop{Pt(0.25, 0.25), Pt(0.75, 0.25), Pt(0.75, 0.75)}
	if !sq.ContainsLoop(inner) {
		t.Error("inner triangle should be contained")
	}
	if !sq.ContainsLoop(Collapse(Pt(0, 0), 5)) {
		t.Error("loop collapsed onto a corner should be contained")
	}
	outer := Loop{Pt(2, 2), Pt(3, 2), Pt(3, 3)}
	if sq.ContainsLoop(outer) {
		t.Error("outer triangle should not be contained")
	}
}

func TestLoopDegenerate(t *testing.T) {
	if !Collapse(Pt(3, 3), 10).Degenerate() {
		t.Error("collapsed loop should be degenerate")
	}
	if unitSquare().Degenerate() {
		t.Error("unit square should not be degenerate")
	}
}

func TestLoopBounds(t *testing.T) {
	l := Loop{Pt(-1, 2), Pt(3, -4), Pt(0, 5)}
	diff(t, Rect{X: -1, Y: -4, Width: 4, Height: 9}, l.Bounds())
	diff(t, []float64{-1, 2, 3, -4, 0, 5}, l.Flatten(nil))
}

func TestViewport(t *testing.T) {
	m := Viewport(Rect{X: 0, Y: 0, Width: 10, Height: 10}, 200, 100)
	// Scene is fit by height: scale 10, centered horizontally with 50px margins.
	diff(t, Pt(50, 100), m.Apply(Pt(0, 0)), approx)
	diff(t, Pt(150, 0), m.Apply(Pt(10, 10)), approx)

	back := m.Invert().Apply(Pt(100, 50))
	diff(t, Pt(5, 5), back, approx)

	if !Viewport(Rect{}, 100, 100).IsIdentity() {
		t.Error("empty scene should map to identity")
	}
	if math.Abs(m.Determinant()+100) > 1e-9 {
		t.Errorf("got determinant %v, want -100", m.Determinant())
	}
}

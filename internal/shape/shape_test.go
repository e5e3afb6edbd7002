package shape

import (
	"testing"

	"github.com/inamate/morph/internal/geom"
)

func TestPivotDefaultsToCentroid(t *testing.T) {
	s := Rect(0, 0, 2, 2)
	diff(t, geom.Pt(1, 1), s.Pivot())

	s.SetCenter(geom.Pt(5, 5))
	diff(t, geom.Pt(5, 5), s.Pivot())
}

func TestCopyIsIndependent(t *testing.T) {
	s := Ring(0, 0, 2, 1, 16)
	s.SetCenter(geom.Pt(1, 1))
	c := s.Copy()

	c.Filled[0] = geom.Pt(99, 99)
	c.Holes[0][0] = geom.Pt(42, 42)
	c.Center.X = 7

	if s.Filled[0] == c.Filled[0] {
		t.Error("filled contour shared between copies")
	}
	if s.Holes[0][0] == c.Holes[0][0] {
		t.Error("hole shared between copies")
	}
	if s.Center.X != 1 {
		t.Error("rotation center shared between copies")
	}
}

func TestValid(t *testing.T) {
	var nilShape *Shape
	if nilShape.Valid() {
		t.Error("nil shape should be invalid")
	}
	if New(nil).Valid() {
		t.Error("empty shape should be invalid")
	}
	if !Rect(0, 0, 1, 1).Valid() {
		t.Error("rect should be valid")
	}
}

func TestContainsRespectsHolesAndIslands(t *testing.T) {
	s := Ring(0, 0, 2, 1, 32)
	if s.Contains(geom.Pt(0, 0)) {
		t.Error("center of ring is inside the hole")
	}
	if !s.Contains(geom.Pt(1.5, 0)) {
		t.Error("ring body should be covered")
	}

	s.Islands = []geom.Loop{Rect(10, 10, 1, 1).Filled}
	if !s.Contains(geom.Pt(10.5, 10.5)) {
		t.Error("island should be covered")
	}
}

func TestRingHoleWindsOpposite(t *testing.T) {
	s := Ring(0, 0, 2, 1, 32)
	if s.Filled.Clockwise() == s.Holes[0].Clockwise() {
		t.Error("hole should wind opposite to the filled contour")
	}
}

func TestBuilders(t *testing.T) {
	if n := len(Ellipse(0, 0, 1, 1, 0).Filled); n != DefaultSegments {
		t.Errorf("got %d ellipse points, want %d", n, DefaultSegments)
	}
	if n := len(RegularPolygon(0, 0, 1, 2, 0).Filled); n != 3 {
		t.Errorf("got %d polygon points, want 3", n)
	}
	if n := len(Star(0, 0, 2, 1, 5).Filled); n != 10 {
		t.Errorf("got %d star points, want 10", n)
	}
	diff(t, geom.Pt(1, 0), RegularPolygon(0, 0, 1, 4, 0).Filled[0], approx)
	diff(t, geom.Rect{X: 1, Y: 2, Width: 3, Height: 4}, Rect(1, 2, 3, 4).Bounds())
}

func TestWithHelpers(t *testing.T) {
	s := Rect(0, 0, 1, 1).WithColor(RGB(255, 0, 0)).WithOpacity(2).WithRotation(geom.Pt3(0, 0, 45))
	diff(t, Color{R: 1}, s.Color)
	if s.Opacity != 1 {
		t.Errorf("got opacity %v, want clamped 1", s.Opacity)
	}
	diff(t, geom.Pt3(0, 0, 45), s.Rotation)
}

// Package shape holds the morphable shape model: filled contours with holes,
// color, opacity and rotation, grouped into collections.
package shape

import (
	"sync"

	"github.com/inamate/morph/internal/geom"
)

// Shape is a filled contour with optional holes and render attributes.
//
// Frames produced by the morph engine are shared read-only values. Code that
// edits Filled, Holes or Islands in place must call Touch so that cached
// triangulations are discarded.
type Shape struct {
	Filled geom.Loop
	Holes  []geom.Loop
	// Islands are hole loops that ended up outside the filled contour. They
	// are rendered as ordinary fill rather than subtracted.
	Islands []geom.Loop

	Color   Color
	Opacity float64
	// Rotation is in degrees per axis.
	Rotation geom.Point
	// Center is the rotation center. Nil means the filled contour's centroid.
	Center *geom.Point

	mu      sync.Mutex
	version uint64
	tri     triangulation
}

// New returns an opaque white shape with the given filled contour and holes.
func New(filled geom.Loop, holes ...geom.Loop) *Shape {
	return &Shape{
		Filled:  filled,
		Holes:   holes,
		Color:   White,
		Opacity: 1,
	}
}

// Valid reports whether s can take part in a morph.
func (s *Shape) Valid() bool {
	return s != nil && len(s.Filled) > 0
}

// Pivot returns the rotation center, defaulting to the centroid.
func (s *Shape) Pivot() geom.Point {
	if s.Center != nil {
		return *s.Center
	}
	return s.Filled.Centroid()
}

// Centroid returns the vertex mean of the filled contour.
func (s *Shape) Centroid() geom.Point {
	return s.Filled.Centroid()
}

// SetCenter sets the rotation center.
func (s *Shape) SetCenter(p geom.Point) {
	s.Center = &p
}

// Version returns the geometry version. It changes on every Touch.
func (s *Shape) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Touch marks the geometry as changed.
func (s *Shape) Touch() {
	s.mu.Lock()
	s.version++
	s.tri = triangulation{}
	s.mu.Unlock()
}

// SetFilled replaces the filled contour.
func (s *Shape) SetFilled(l geom.Loop) {
	s.Filled = l
	s.Touch()
}

// SetHoles replaces the hole contours.
func (s *Shape) SetHoles(holes []geom.Loop) {
	s.Holes = holes
	s.Touch()
}

// Copy returns a deep copy of s. The copy starts with an empty triangulation
// cache.
func (s *Shape) Copy() *Shape {
	if s == nil {
		return nil
	}
	out := &Shape{
		Filled:   s.Filled.Clone(),
		Holes:    cloneLoops(s.Holes),
		Islands:  cloneLoops(s.Islands),
		Color:    s.Color,
		Opacity:  s.Opacity,
		Rotation: s.Rotation,
	}
	if s.Center != nil {
		c := *s.Center
		out.Center = &c
	}
	return out
}

// Bounds returns the bounding box of the filled contour and islands.
func (s *Shape) Bounds() geom.Rect {
	b := s.Filled.Bounds()
	for _, l := range s.Islands {
		b = b.Union(l.Bounds())
	}
	return b
}

// Contains reports whether pt is covered by the rendered shape: inside the
// filled contour but not inside a hole, or inside an island.
func (s *Shape) Contains(pt geom.Point) bool {
	for _, l := range s.Islands {
		if l.Contains(pt) {
			return true
		}
	}
	if !s.Filled.Contains(pt) {
		return false
	}
	for _, h := range s.Holes {
		if !h.Degenerate() && h.Contains(pt) {
			return false
		}
	}
	return true
}

// PointCount returns the number of points over all contours.
func (s *Shape) PointCount() int {
	n := len(s.Filled)
	for _, h := range s.Holes {
		n += len(h)
	}
	for _, l := range s.Islands {
		n += len(l)
	}
	return n
}

func cloneLoops(loops []geom.Loop) []geom.Loop {
	if loops == nil {
		return nil
	}
	out := make([]geom.Loop, len(loops))
	for i, l := range loops {
		out[i] = l.Clone()
	}
	return out
}

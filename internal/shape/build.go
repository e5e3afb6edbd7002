package shape

import (
	"math"

	"github.com/inamate/morph/internal/geom"
)

// DefaultSegments is the number of edges used to flatten curved primitives.
const DefaultSegments = 64

// Polygon builds a shape from 2D or 3D points.
func Polygon(pts ...geom.Point) *Shape {
	return New(geom.Loop(pts))
}

// Rect builds an axis-aligned rectangle with its corner at (x, y).
func Rect(x, y, w, h float64) *Shape {
	return New(geom.Loop{
		geom.Pt(x, y),
		geom.Pt(x+w, y),
		geom.Pt(x+w, y+h),
		geom.Pt(x, y+h),
	})
}

// Ellipse builds an ellipse flattened to the given number of segments.
func Ellipse(cx, cy, rx, ry float64, segments int) *Shape {
	return New(ellipseLoop(cx, cy, rx, ry, segments))
}

// RegularPolygon builds a polygon with the given number of sides, its first
// vertex at angle rotation (degrees) from the positive X axis.
func RegularPolygon(cx, cy, r float64, sides int, rotation float64) *Shape {
	sides = max(sides, 3)
	loop := make(geom.Loop, sides)
	start := rotation * math.Pi / 180
	for i := range loop {
		a := start + 2*math.Pi*float64(i)/float64(sides)
		loop[i] = geom.Pt(cx+r*math.Cos(a), cy+r*math.Sin(a))
	}
	return New(loop)
}

// Star builds a star alternating between the outer and inner radius.
func Star(cx, cy, outer, inner float64, points int) *Shape {
	points = max(points, 2)
	loop := make(geom.Loop, points*2)
	for i := range loop {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		a := math.Pi/2 + math.Pi*float64(i)/float64(points)
		loop[i] = geom.Pt(cx+r*math.Cos(a), cy+r*math.Sin(a))
	}
	return New(loop)
}

// Ring builds a circle of radius outer with a concentric hole of radius inner.
func Ring(cx, cy, outer, inner float64, segments int) *Shape {
	hole := ellipseLoop(cx, cy, inner, inner, segments)
	hole.Reverse()
	return New(ellipseLoop(cx, cy, outer, outer, segments), hole)
}

// WithColor sets the color and returns s.
func (s *Shape) WithColor(c Color) *Shape {
	s.Color = c
	return s
}

// WithOpacity sets the opacity, clamped to [0, 1], and returns s.
func (s *Shape) WithOpacity(o float64) *Shape {
	s.Opacity = min(max(o, 0), 1)
	return s
}

// WithRotation sets the rotation in degrees per axis and returns s.
func (s *Shape) WithRotation(r geom.Point) *Shape {
	s.Rotation = r
	return s
}

func ellipseLoop(cx, cy, rx, ry float64, segments int) geom.Loop {
	if segments < 3 {
		segments = DefaultSegments
	}
	loop := make(geom.Loop, segments)
	for i := range loop {
		a := 2 * math.Pi * float64(i) / float64(segments)
		loop[i] = geom.Pt(cx+rx*math.Cos(a), cy+ry*math.Sin(a))
	}
	return loop
}

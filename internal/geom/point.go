package geom

import (
	"fmt"
	"math"
)

// Point is a 3-component coordinate. 2D input is promoted with Z = 0.
// Points are values; every transform returns a new Point.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Pt returns the 2D point (x, y) promoted to 3D.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Pt3 returns the point (x, y, z).
func Pt3(x, y, z float64) Point {
	return Point{X: x, Y: y, Z: z}
}

// FromXY promotes a flat list of [x, y] pairs to 3D points.
func FromXY(xy [][2]float64) []Point {
	pts := make([]Point, len(xy))
	for i, p := range xy {
		pts[i] = Point{X: p[0], Y: p[1]}
	}
	return pts
}

// FromComponents normalizes a 2- or 3-element coordinate to a Point.
// Missing components are zero.
func FromComponents(c []float64) Point {
	var p Point
	if len(c) > 0 {
		p.X = c[0]
	}
	if len(c) > 1 {
		p.Y = c[1]
	}
	if len(c) > 2 {
		p.Z = c[2]
	}
	return p
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g, %g)", p.X, p.Y, p.Z)
}

// Add returns p + o.
func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y, Z: p.Z + o.Z}
}

// Sub returns p - o.
func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X, Y: p.Y - o.Y, Z: p.Z - o.Z}
}

// Scale multiplies every component by s.
func (p Point) Scale(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s, Z: p.Z * s}
}

// Lerp linearly interpolates between p and o.
func (p Point) Lerp(o Point, t float64) Point {
	return Point{
		X: p.X + (o.X-p.X)*t,
		Y: p.Y + (o.Y-p.Y)*t,
		Z: p.Z + (o.Z-p.Z)*t,
	}
}

// Distance returns the euclidean distance between p and o.
func (p Point) Distance(o Point) float64 {
	dx := p.X - o.X
	dy := p.Y - o.Y
	dz := p.Z - o.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Length returns the distance of p from the origin.
func (p Point) Length() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
}

// Equal reports whether p and o are within eps on every axis.
func (p Point) Equal(o Point, eps float64) bool {
	return math.Abs(p.X-o.X) <= eps &&
		math.Abs(p.Y-o.Y) <= eps &&
		math.Abs(p.Z-o.Z) <= eps
}

// Flat returns the 2D projection (x, y).
func (p Point) Flat() (float64, float64) {
	return p.X, p.Y
}

// IsNaN reports whether any component is NaN.
func (p Point) IsNaN() bool {
	return math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsNaN(p.Z)
}

// Mean returns the arithmetic mean of pts, or the origin for an empty slice.
func Mean(pts []Point) Point {
	if len(pts) == 0 {
		return Point{}
	}
	var sum Point
	for _, p := range pts {
		sum = sum.Add(p)
	}
	return sum.Scale(1 / float64(len(pts)))
}

// Center translates pts so that their mean sits at the origin.
func Center(pts []Point) []Point {
	c := Mean(pts)
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = p.Sub(c)
	}
	return out
}

// Rotate rotates p around pivot by the given per-axis angles in degrees.
// Rotation is applied X, then Y, then Z.
func Rotate(p, pivot, degrees Point) Point {
	if degrees == (Point{}) {
		return p
	}
	v := p.Sub(pivot)

	if degrees.X != 0 {
		s, c := math.Sincos(degrees.X * math.Pi / 180)
		v = Point{X: v.X, Y: v.Y*c - v.Z*s, Z: v.Y*s + v.Z*c}
	}
	if degrees.Y != 0 {
		s, c := math.Sincos(degrees.Y * math.Pi / 180)
		v = Point{X: v.X*c + v.Z*s, Y: v.Y, Z: -v.X*s + v.Z*c}
	}
	if degrees.Z != 0 {
		s, c := math.Sincos(degrees.Z * math.Pi / 180)
		v = Point{X: v.X*c - v.Y*s, Y: v.X*s + v.Y*c, Z: v.Z}
	}

	return v.Add(pivot)
}

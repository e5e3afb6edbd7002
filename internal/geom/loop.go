package geom

import (
	"math"
	"slices"
)

// boundaryEps is the distance under which a point counts as lying on a loop edge.
const boundaryEps = 1e-9

// Loop is an ordered closed contour. The closing edge from the last point back
// to the first is implicit.
type Loop []Point

// Clone returns a copy of l.
func (l Loop) Clone() Loop {
	if l == nil {
		return nil
	}
	return slices.Clone(l)
}

// closed reports whether the last point duplicates the first.
func (l Loop) closed() bool {
	return len(l) > 1 && l[0] == l[len(l)-1]
}

// Perimeter returns the arc length of the closed contour, including the
// closing edge.
func (l Loop) Perimeter() float64 {
	if len(l) < 2 {
		return 0
	}
	var total float64
	for i := 1; i < len(l); i++ {
		total += l[i-1].Distance(l[i])
	}
	return total + l[len(l)-1].Distance(l[0])
}

// SignedArea returns the shoelace area of the XY projection.
// Positive means counter-clockwise with the Y axis pointing up.
func (l Loop) SignedArea() float64 {
	if len(l) < 3 {
		return 0
	}
	var sum float64
	for i := range l {
		j := (i + 1) % len(l)
		sum += l[i].X*l[j].Y - l[j].X*l[i].Y
	}
	return sum / 2
}

// Clockwise reports whether the loop winds clockwise. Zero-area loops are
// reported as counter-clockwise.
func (l Loop) Clockwise() bool {
	return l.SignedArea() < 0
}

// Reverse reverses the point order in place, keeping the first point first.
func (l Loop) Reverse() {
	if len(l) < 2 {
		return
	}
	if l.closed() {
		slices.Reverse(l)
		return
	}
	slices.Reverse(l[1:])
}

// Centroid returns the vertex mean, ignoring a trailing point that duplicates
// the first.
func (l Loop) Centroid() Point {
	if l.closed() {
		return Mean(l[:len(l)-1])
	}
	return Mean(l)
}

// Collapse returns a loop of n copies of p.
func Collapse(p Point, n int) Loop {
	out := make(Loop, n)
	for i := range out {
		out[i] = p
	}
	return out
}

// Degenerate reports whether the loop encloses no area.
func (l Loop) Degenerate() bool {
	return math.Abs(l.SignedArea()) <= boundaryEps
}

// Contains reports whether pt lies inside the XY projection of l or on one of
// its edges. Interior uses the even-odd rule.
func (l Loop) Contains(pt Point) bool {
	if len(l) == 0 {
		return false
	}
	if len(l) == 1 {
		return l[0].X == pt.X && l[0].Y == pt.Y
	}

	inside := false
	for i := range l {
		a := l[i]
		b := l[(i+1)%len(l)]
		if onSegment(a, b, pt) {
			return true
		}
		if (a.Y > pt.Y) != (b.Y > pt.Y) {
			x := a.X + (pt.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if pt.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

// ContainsLoop reports whether every point of other is inside or on l.
func (l Loop) ContainsLoop(other Loop) bool {
	if len(other) == 0 {
		return false
	}
	for _, p := range other {
		if !l.Contains(p) {
			return false
		}
	}
	return true
}

// Bounds returns the axis-aligned bounding box of the XY projection.
func (l Loop) Bounds() Rect {
	if len(l) == 0 {
		return Rect{}
	}
	minX, minY := l[0].X, l[0].Y
	maxX, maxY := minX, minY
	for _, p := range l[1:] {
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Flatten appends the XY projection of l to dst.
func (l Loop) Flatten(dst []float64) []float64 {
	for _, p := range l {
		dst = append(dst, p.X, p.Y)
	}
	return dst
}

func onSegment(a, b, p Point) bool {
	abx, aby := b.X-a.X, b.Y-a.Y
	apx, apy := p.X-a.X, p.Y-a.Y
	lenSq := abx*abx + aby*aby
	if lenSq == 0 {
		return math.Abs(apx) <= boundaryEps && math.Abs(apy) <= boundaryEps
	}
	cross := abx*apy - aby*apx
	if math.Abs(cross) > boundaryEps*math.Sqrt(lenSq) {
		return false
	}
	dot := abx*apx + aby*apy
	return dot >= -boundaryEps && dot <= lenSq+boundaryEps
}

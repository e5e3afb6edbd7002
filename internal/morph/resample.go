package morph

import "github.com/inamate/morph/internal/geom"

const (
	// MinResamplePoints is the floor of DefaultTargetCount.
	MinResamplePoints = 100
	// ResampleDivisor thins the denser input in DefaultTargetCount.
	ResampleDivisor = 4
)

// TargetCountFunc picks the common point count for two contours of the
// given lengths.
type TargetCountFunc func(before, after int) int

// DefaultTargetCount returns max(max(before, after)/4, 100). Dense contours
// are thinned to keep interpolation cost bounded.
func DefaultTargetCount(before, after int) int {
	return max(max(before, after)/ResampleDivisor, MinResamplePoints)
}

// TargetCount returns a TargetCountFunc with its own floor and divisor.
// Non-positive arguments fall back to the defaults.
func TargetCount(floor, divisor int) TargetCountFunc {
	if floor <= 0 {
		floor = MinResamplePoints
	}
	if divisor <= 0 {
		divisor = ResampleDivisor
	}
	return func(before, after int) int {
		return max(max(before, after)/divisor, floor)
	}
}

// Resample redistributes n points evenly by arc length along the closed
// contour, starting at loop[0]. The closing edge is walked and the points
// sit total/n apart, so the result has no closing duplicate. Loops with
// fewer than two points yield an empty loop.
func Resample(loop geom.Loop, n int) geom.Loop {
	if len(loop) < 2 || n <= 0 {
		return geom.Loop{}
	}
	if n == 1 {
		return geom.Loop{loop[0]}
	}

	// Vertices of the closed walk: loop[0..m-1] then loop[0] again.
	m := len(loop)
	vertex := func(i int) geom.Point { return loop[i%m] }

	cum := make([]float64, m+1)
	for i := 1; i <= m; i++ {
		cum[i] = cum[i-1] + vertex(i-1).Distance(vertex(i))
	}
	step := cum[m] / float64(n)

	out := make(geom.Loop, n)
	seg := 0
	for i := range n {
		offset := float64(i) * step
		for seg < m-1 && cum[seg+1] < offset {
			seg++
		}

		segLen := cum[seg+1] - cum[seg]
		u := 1.0
		if segLen > 0 {
			u = min(max((offset-cum[seg])/segLen, 0), 1)
		}
		switch u {
		case 0:
			out[i] = vertex(seg)
		case 1:
			out[i] = vertex(seg + 1)
		default:
			out[i] = vertex(seg).Lerp(vertex(seg+1), u)
		}
	}
	return out
}

// resampleOrFill resamples loop to n points. A single-point loop is repeated
// n times instead of collapsing to nothing.
func resampleOrFill(loop geom.Loop, n int) geom.Loop {
	if len(loop) == 1 {
		return geom.Collapse(loop[0], n)
	}
	return Resample(loop, n)
}

// ArcLength returns the length of the open polyline through l, without the
// closing edge.
func ArcLength(l geom.Loop) float64 {
	var total float64
	for i := 1; i < len(l); i++ {
		total += l[i-1].Distance(l[i])
	}
	return total
}

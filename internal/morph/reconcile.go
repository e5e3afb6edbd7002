package morph

import (
	"github.com/inamate/morph/internal/geom"
	"github.com/inamate/morph/internal/shape"
)

// Reconcile returns copies of before and after that can be interpolated
// point for point: equal point counts on the filled contour and on every
// hole pair, matching winding, and equal hole counts. The inputs are never
// modified. ok is false when either input is not a valid shape.
func Reconcile(before, after *shape.Shape, target TargetCountFunc) (rb, ra *shape.Shape, ok bool) {
	if !before.Valid() || !after.Valid() {
		return nil, nil, false
	}
	if target == nil {
		target = DefaultTargetCount
	}

	rb = before.Copy()
	ra = after.Copy()
	// Resampling moves the vertex mean; keep the callers' rotation centers.
	rb.SetCenter(before.Pivot())
	ra.SetCenter(after.Pivot())

	n := target(len(rb.Filled), len(ra.Filled))
	rb.Filled = resampleOrFill(rb.Filled, n)
	ra.Filled = resampleOrFill(ra.Filled, n)
	alignWinding(rb.Filled, ra.Filled)

	rb.Holes = padHoles(rb, len(ra.Holes), ra.Holes)
	ra.Holes = padHoles(ra, len(rb.Holes), rb.Holes)

	for i := range rb.Holes {
		n := target(len(rb.Holes[i]), len(ra.Holes[i]))
		rb.Holes[i] = resampleOrFill(rb.Holes[i], n)
		ra.Holes[i] = resampleOrFill(ra.Holes[i], n)
		alignWinding(rb.Holes[i], ra.Holes[i])
	}

	// Holes are re-sorted into islands per frame; the resolved pair keeps
	// every loop as a hole.
	rb.Islands, ra.Islands = nil, nil

	return rb, ra, true
}

// alignWinding reverses after in place when its winding differs from before.
// Degenerate loops have no meaningful winding and are left alone.
func alignWinding(before, after geom.Loop) {
	if before.Degenerate() || after.Degenerate() {
		return
	}
	if before.Clockwise() != after.Clockwise() {
		after.Reverse()
	}
}

// padHoles grows s's hole list to count entries. Each added hole copies the
// shape of its own last hole (or the counterpart hole when it has none) but
// is collapsed onto the first filled point, so it encloses no area.
func padHoles(s *shape.Shape, count int, other []geom.Loop) []geom.Loop {
	holes := s.Holes
	if len(holes) >= count {
		return holes
	}

	anchor := s.Filled[0]
	for i := len(holes); i < count; i++ {
		size := len(other[i])
		if len(holes) > 0 {
			size = len(holes[len(holes)-1])
		}
		holes = append(holes, geom.Collapse(anchor, max(size, 1)))
	}
	return holes
}

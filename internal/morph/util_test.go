package morph

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/inamate/morph/internal/geom"
	"github.com/inamate/morph/internal/shape"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func unitSquare() geom.Loop {
	return geom.Loop{geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(1, 1), geom.Pt(0, 1)}
}

func rotated(l geom.Loop, pivot geom.Point, degrees float64) geom.Loop {
	out := make(geom.Loop, len(l))
	for i, p := range l {
		out[i] = geom.Rotate(p, pivot, geom.Pt3(0, 0, degrees))
	}
	return out
}

func fixedCount(n int) TargetCountFunc {
	return func(int, int) int { return n }
}

func meanRadius(l geom.Loop, c geom.Point) float64 {
	var sum float64
	for _, p := range l {
		sum += p.Distance(c)
	}
	return sum / float64(len(l))
}

// sameAttributes compares everything but the triangulation cache.
func sameAttributes(t *testing.T, want, got *shape.Shape) {
	t.Helper()
	diff(t, want.Filled, got.Filled, approx)
	diff(t, want.Holes, got.Holes, approx)
	diff(t, want.Color, got.Color, approx)
	diff(t, want.Rotation, got.Rotation, approx)
	if math.Abs(want.Opacity-got.Opacity) > 1e-9 {
		t.Errorf("got opacity %v, want %v", got.Opacity, want.Opacity)
	}
}

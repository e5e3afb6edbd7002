package morph

import (
	"github.com/inamate/morph/internal/geom"
	"github.com/inamate/morph/internal/shape"
)

// Interpolate blends a reconciled pair at progress p in [0, 1]. When
// backwards is set the blend runs from after to before. Every component is
// eased independently. Hole loops that fall outside the interpolated filled
// contour are returned as islands.
func Interpolate(before, after *shape.Shape, p float64, backwards bool, ease EaseFunc) *shape.Shape {
	if ease == nil {
		ease = CubicIn
	}
	if backwards {
		p = 1 - p
	}

	out := &shape.Shape{
		Filled:   blendLoop(before.Filled, after.Filled, p, ease),
		Color:    blendColor(before.Color, after.Color, p, ease),
		Opacity:  ease(before.Opacity, after.Opacity, p),
		Rotation: blendPoint(before.Rotation, after.Rotation, p, ease),
	}
	out.SetCenter(blendPoint(before.Pivot(), after.Pivot(), p, ease))

	holes := make([]geom.Loop, len(before.Holes))
	for i := range before.Holes {
		holes[i] = blendLoop(before.Holes[i], after.Holes[i], p, ease)
	}
	out.Holes, out.Islands = sortHoles(out.Filled, holes)
	return out
}

// settle turns one side of a reconciled pair into a frame: its holes are
// sorted like Interpolate sorts them and its pivot is pinned.
func settle(s *shape.Shape) *shape.Shape {
	out := s.Copy()
	out.SetCenter(s.Pivot())
	out.Holes, out.Islands = sortHoles(out.Filled, out.Holes)
	return out
}

// sortHoles splits loops into those inside filled and those outside it.
func sortHoles(filled geom.Loop, loops []geom.Loop) (holes, islands []geom.Loop) {
	for _, l := range loops {
		if filled.ContainsLoop(l) {
			holes = append(holes, l)
		} else {
			islands = append(islands, l)
		}
	}
	return holes, islands
}

func blendLoop(a, b geom.Loop, t float64, ease EaseFunc) geom.Loop {
	n := min(len(a), len(b))
	out := make(geom.Loop, n)
	for i := range out {
		out[i] = blendPoint(a[i], b[i], t, ease)
	}
	return out
}

func blendPoint(a, b geom.Point, t float64, ease EaseFunc) geom.Point {
	return geom.Point{
		X: ease(a.X, b.X, t),
		Y: ease(a.Y, b.Y, t),
		Z: ease(a.Z, b.Z, t),
	}
}

func blendColor(a, b shape.Color, t float64, ease EaseFunc) shape.Color {
	return shape.Color{
		R: ease(a.R, b.R, t),
		G: ease(a.G, b.G, t),
		B: ease(a.B, b.B, t),
	}
}

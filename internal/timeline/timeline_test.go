package timeline

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/inamate/morph/internal/geom"
	"github.com/inamate/morph/internal/morph"
	"github.com/inamate/morph/internal/shape"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

var approx = cmpopts.EquateApprox(0, 1e-9)

func square(x float64) *shape.Shape {
	return shape.Rect(x, 0, 1, 1)
}

func anim(from, to float64, d float64) *morph.Animation {
	return morph.NewAnimation(square(from), square(to), morph.WithDuration(d), morph.WithEase(morph.Linear))
}

func TestSynchronousDurationsAdd(t *testing.T) {
	tl := New()
	tl.Add(anim(0, 1, 1000), false)
	tl.Add(anim(1, 2, 500), false)
	tl.Add(anim(2, 3, 250), false)

	if got := tl.Duration(); got != 1750 {
		t.Errorf("got duration %v, want 1750", got)
	}
	if tl.Len() != 3 {
		t.Errorf("got %d segments, want 3", tl.Len())
	}
}

func TestAsynchronousOverlap(t *testing.T) {
	a := anim(0, 4, 1000)
	b := anim(10, 20, 1500)

	tl := New()
	tl.Add(a, true)
	tl.Add(b, false)

	if got := tl.Duration(); got != 1500 {
		t.Fatalf("got duration %v, want 1500", got)
	}
	segs := tl.Segments()
	if len(segs) != 2 {
		t.Fatalf("got %d segments, want 2", len(segs))
	}

	if segs[0].Before().Shape() != a.BeforeShape() {
		t.Error("folded segment lost its start")
	}
	if segs[0].After().Shape() != b.FrameShape(1000) {
		t.Error("folded segment does not end on b at 1000")
	}
	if segs[1].Duration() != 500 {
		t.Errorf("got remainder duration %v, want 500", segs[1].Duration())
	}

	if got := tl.Frame(1200).Shape(); got != b.FrameShape(1200) {
		t.Error("remainder does not continue b at its own time")
	}
	if got := tl.Frame(1500).Shape(); got != b.FrameShape(1500) {
		t.Error("timeline does not end on b's after state")
	}
}

func TestAsynchronousShorterFollower(t *testing.T) {
	a := anim(0, 4, 1000)
	b := anim(10, 20, 400)

	tl := New()
	tl.Add(a, true)
	tl.Add(b, false)

	if got := tl.Duration(); got != 1000 {
		t.Errorf("got duration %v, want 1000", got)
	}
	if tl.Len() != 1 {
		t.Errorf("got %d segments, want 1", tl.Len())
	}
	diff(t, b.AfterShape().Filled[0], tl.End().Shape().Filled[0], approx)
}

func TestFrameDispatch(t *testing.T) {
	first := anim(0, 10, 1000)
	second := anim(10, 20, 1000)

	tl := New()
	tl.Add(first, false)
	tl.Add(second, false)

	tests := []struct {
		t         float64
		wantIndex int
		wantLocal float64
		wantX     float64
	}{
		{-5, 0, -5, 0},
		{0, 0, 0, 0},
		{500, 0, 500, 5},
		{1000, 1, 0, 10},
		{1500, 1, 500, 15},
		{2000, 1, 1000, 20},
		{9999, 1, 1000, 20},
	}
	for _, tt := range tests {
		i, local := tl.Locate(tt.t)
		if i != tt.wantIndex || local != tt.wantLocal {
			t.Errorf("Locate(%v) = %d, %v, want %d, %v", tt.t, i, local, tt.wantIndex, tt.wantLocal)
		}
		got := tl.Frame(tt.t).Shape().Filled[0]
		diff(t, geom.Pt(tt.wantX, 0), got, approx)
	}

	if tl.Done(1999) || !tl.Done(2000) {
		t.Error("Done does not flip at the total duration")
	}
}

func TestEmptyTimeline(t *testing.T) {
	tl := New()
	if !tl.Frame(10).IsZero() || !tl.End().IsZero() {
		t.Error("empty timeline produced a frame")
	}
	if i, _ := tl.Locate(0); i != -1 {
		t.Errorf("got index %d, want -1", i)
	}
	if tl.Duration() != 0 || !tl.Done(0) {
		t.Error("empty timeline is not finished")
	}
	tl.Add(nil, true)
	if tl.Len() != 0 {
		t.Error("nil animation was added")
	}
}

func TestTransformInto(t *testing.T) {
	tl := New()
	tl.Add(anim(0, 5, 100), false)

	tl.TransformInto(shape.Of(square(9)), false, morph.WithDuration(200), morph.WithEase(morph.Linear))
	if got := tl.Duration(); got != 300 {
		t.Fatalf("got duration %v, want 300", got)
	}
	diff(t, geom.Pt(7, 0), tl.Frame(200).Shape().Filled[0], approx)
	diff(t, geom.Pt(9, 0), tl.End().Shape().Filled[0])
}

func TestTransformIntoAsync(t *testing.T) {
	tl := New()
	start := square(0)
	tl.Add(morph.NewAnimation(start, square(5), morph.WithDuration(100)), true)

	tl.TransformInto(shape.Of(square(8)), false, morph.WithDuration(100))
	if tl.Len() != 1 || tl.Duration() != 100 {
		t.Fatalf("got %d segments over %v, want 1 over 100", tl.Len(), tl.Duration())
	}
	diff(t, start.Filled[0], tl.Frame(0).Shape().Filled[0], approx)
	diff(t, geom.Pt(8, 0), tl.End().Shape().Filled[0])
}

func TestTransformIntoEmpty(t *testing.T) {
	tl := New()
	target := square(3)
	tl.TransformInto(shape.Of(target), false, morph.WithDuration(50))
	if got := tl.Frame(25).Shape().Filled[0]; got != target.Filled[0] {
		t.Errorf("got %v, want %v", got, target.Filled[0])
	}
}

func TestWarm(t *testing.T) {
	a := anim(0, 1, 1000)
	tl := New()
	tl.Add(a, true)
	tl.Add(anim(2, 3, 2000), false)
	if err := tl.Warm(t.Context()); err != nil {
		t.Fatalf("Warm: %v", err)
	}
}

// Package timeline sequences morphs into a single playable track.
package timeline

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/inamate/morph/internal/morph"
	"github.com/inamate/morph/internal/shape"
)

// Timeline is a flat list of sequential, non-overlapping segments.
//
// Animations added asynchronously share wall-clock time with the next one:
// the next Add folds itself into the previous segment instead of starting a
// new period. A Timeline is not safe for concurrent use.
type Timeline struct {
	segments     []morph.Animator
	pendingAsync bool
}

// New returns an empty timeline.
func New() *Timeline {
	return &Timeline{}
}

// Add appends a to the timeline. When the previous Add was asynchronous,
// the previous segment is retargeted to a's state at the previous segment's
// duration, and only the part of a that outlasts it is appended.
func (tl *Timeline) Add(a morph.Animator, async bool) {
	if a == nil {
		return
	}

	if tl.pendingAsync && len(tl.segments) > 0 {
		last := len(tl.segments) - 1
		prev := tl.segments[last]
		dp := prev.Duration()

		tl.segments[last] = prev.Retarget(a.Frame(dp))
		if a.Duration() > dp {
			tl.segments = append(tl.segments, &remainder{anim: a, offset: dp})
		}
	} else {
		tl.segments = append(tl.segments, a)
	}

	tl.pendingAsync = async
}

// TransformInto morphs the timeline's current end state into target and
// adds the result. When the previous Add was asynchronous the morph starts
// from the previous segment's start instead, so both run side by side.
// On an empty timeline the morph holds target for the duration.
func (tl *Timeline) TransformInto(target shape.Like, async bool, opts ...morph.Option) morph.Animator {
	from := tl.End()
	if tl.pendingAsync && len(tl.segments) > 0 {
		from = tl.segments[len(tl.segments)-1].Before()
	}
	if from.IsZero() {
		from = target
	}

	a := morph.New(from, target, opts...)
	tl.Add(a, async)
	return a
}

// Duration returns the sum of the segment durations.
func (tl *Timeline) Duration() float64 {
	var total float64
	for _, s := range tl.segments {
		total += s.Duration()
	}
	return total
}

// Len returns the number of segments.
func (tl *Timeline) Len() int { return len(tl.segments) }

// Segments returns a copy of the segment list.
func (tl *Timeline) Segments() []morph.Animator {
	out := make([]morph.Animator, len(tl.segments))
	copy(out, tl.segments)
	return out
}

// Locate returns the index of the segment active at t and the time local to
// it. Past the end it returns the last segment at its full duration. It
// returns -1 for an empty timeline.
func (tl *Timeline) Locate(t float64) (int, float64) {
	if len(tl.segments) == 0 {
		return -1, 0
	}

	var start float64
	for i, s := range tl.segments {
		d := s.Duration()
		if t < start+d {
			return i, t - start
		}
		start += d
	}

	last := len(tl.segments) - 1
	return last, tl.segments[last].Duration()
}

// Frame returns the value at global time t. An empty timeline yields the
// zero Like.
func (tl *Timeline) Frame(t float64) shape.Like {
	i, local := tl.Locate(t)
	if i < 0 {
		return shape.Like{}
	}
	return tl.segments[i].Frame(local)
}

// Done reports whether t has reached the end of the timeline.
func (tl *Timeline) Done(t float64) bool {
	return t >= tl.Duration()
}

// End returns the value the timeline settles on.
func (tl *Timeline) End() shape.Like {
	if len(tl.segments) == 0 {
		return shape.Like{}
	}
	last := tl.segments[len(tl.segments)-1]
	return last.Frame(last.Duration())
}

// Warm pre-computes frames for every segment concurrently.
func (tl *Timeline) Warm(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, s := range tl.segments {
		g.Go(func() error { return s.Warm(ctx) })
	}
	return g.Wait()
}

// remainder plays the tail of anim that outlasts the segment it was folded
// into.
type remainder struct {
	anim   morph.Animator
	offset float64
}

func (r *remainder) Duration() float64 {
	return max(r.anim.Duration()-r.offset, 0)
}

func (r *remainder) Frame(t float64) shape.Like {
	return r.anim.Frame(r.offset + min(max(t, 0), r.Duration()))
}

func (r *remainder) Done(t float64) bool {
	return t >= r.Duration()
}

func (r *remainder) Before() shape.Like { return r.anim.Frame(r.offset) }
func (r *remainder) After() shape.Like  { return r.anim.After() }

func (r *remainder) Settings() morph.Options {
	opts := r.anim.Settings()
	opts.Duration = r.Duration()
	return opts
}

func (r *remainder) Retarget(after shape.Like) morph.Animator {
	return morph.New(r.Before(), after, morph.WithOptions(r.Settings()))
}

func (r *remainder) Warm(ctx context.Context) error {
	return r.anim.Warm(ctx)
}

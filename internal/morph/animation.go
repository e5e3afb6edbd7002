package morph

import (
	"context"
	"log/slog"

	"github.com/inamate/morph/internal/shape"
)

// State is the lifecycle stage of an animation at a given time.
type State int

const (
	StateUnresolved State = iota
	StateResolved
	StatePlaying
	StateDone
)

func (s State) String() string {
	switch s {
	case StateResolved:
		return "resolved"
	case StatePlaying:
		return "playing"
	case StateDone:
		return "done"
	default:
		return "unresolved"
	}
}

// Animation morphs one shape into another over a duration.
//
// The caller's before and after shapes are never modified; the animation
// works on reconciled copies and owns a frame cache scoped to them. Frames,
// including the boundary frames, are built from the reconciled pair so that
// point counts and hole counts stay constant for the whole morph.
type Animation struct {
	before *shape.Shape
	after  *shape.Shape
	opts   Options

	resolvedBefore *shape.Shape
	resolvedAfter  *shape.Shape
	resolved       bool

	// first and last are the frames at 0 and at the duration, taken from
	// the reconciled pair without blending.
	first *shape.Shape
	last  *shape.Shape

	cache *FrameCache
}

// NewAnimation builds and resolves a morph from before to after.
func NewAnimation(before, after *shape.Shape, opts ...Option) *Animation {
	a := &Animation{
		before: before,
		after:  after,
		opts:   newOptions(opts),
	}
	a.resolve()
	return a
}

func (a *Animation) resolve() {
	a.resolvedBefore, a.resolvedAfter, a.resolved = Reconcile(a.before, a.after, a.opts.TargetCount)
	a.first, a.last = nil, nil
	if a.resolved {
		a.first, a.last = settle(a.resolvedBefore), settle(a.resolvedAfter)
	}
	a.cache = NewFrameCache(a.opts.Duration, a.opts.CacheTolerance, a.opts.CacheSamples, a.interpolate)
	if !a.resolved {
		slog.Debug("morph input not interpolatable", "before", a.before.Valid(), "after", a.after.Valid())
	}
}

// SetBefore replaces the start shape, re-resolving and discarding cached frames.
func (a *Animation) SetBefore(s *shape.Shape) {
	a.before = s
	a.resolve()
}

// SetAfter replaces the end shape, re-resolving and discarding cached frames.
func (a *Animation) SetAfter(s *shape.Shape) {
	a.after = s
	a.resolve()
}

// BeforeShape returns the start shape as given by the caller.
func (a *Animation) BeforeShape() *shape.Shape { return a.before }

// AfterShape returns the end shape as given by the caller.
func (a *Animation) AfterShape() *shape.Shape { return a.after }

func (a *Animation) Before() shape.Like { return shape.Of(a.before) }
func (a *Animation) After() shape.Like  { return shape.Of(a.after) }

func (a *Animation) Duration() float64 { return a.opts.Duration }
func (a *Animation) Settings() Options  { return a.opts }

// Resolved returns the reconciled pair.
func (a *Animation) Resolved() (before, after *shape.Shape, ok bool) {
	return a.resolvedBefore, a.resolvedAfter, a.resolved
}

// Cache returns the frame cache owned by this animation.
func (a *Animation) Cache() *FrameCache { return a.cache }

// Done reports whether t has reached the end of the duration.
func (a *Animation) Done(t float64) bool {
	if a.opts.Duration <= 0 {
		return true
	}
	return t/a.opts.Duration >= 1
}

// State reports the lifecycle stage at time t.
func (a *Animation) State(t float64) State {
	switch {
	case !a.resolved:
		return StateUnresolved
	case a.Done(t):
		return StateDone
	case t > 0:
		return StatePlaying
	default:
		return StateResolved
	}
}

// FrameShape returns the shape at time t. The boundaries return the
// reconciled start and end without blending; unresolvable pairs always
// return the caller's before shape. Returned shapes are shared and must be
// treated as read-only.
func (a *Animation) FrameShape(t float64) *shape.Shape {
	if !a.resolved {
		return a.before
	}

	start, end := a.first, a.last
	if a.opts.Backwards {
		start, end = end, start
	}
	if t <= 0 {
		return start
	}
	if a.Done(t) {
		return end
	}

	if f, ok := a.cache.Lookup(t); ok {
		return f
	}
	f := a.interpolate(t)
	a.cache.Store(t, f)
	return f
}

func (a *Animation) Frame(t float64) shape.Like {
	return shape.Of(a.FrameShape(t))
}

// Warm fills the frame cache across the whole duration.
func (a *Animation) Warm(ctx context.Context) error {
	if !a.resolved || a.opts.Duration <= 0 {
		return nil
	}
	return a.cache.CacheUntil(ctx, a.opts.Duration)
}

// Retarget returns a new animation from the same start to after, with the
// same settings.
func (a *Animation) Retarget(after shape.Like) Animator {
	return New(a.Before(), after, WithOptions(a.opts))
}

func (a *Animation) interpolate(t float64) *shape.Shape {
	return Interpolate(a.resolvedBefore, a.resolvedAfter, t/a.opts.Duration, a.opts.Backwards, a.opts.Ease)
}

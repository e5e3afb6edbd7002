package morph

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/inamate/morph/internal/shape"
)

// CollectionAnimation morphs every member of one collection into the
// matching member of another. The shorter side is padded with copies of its
// last member so both sides have the same cardinality.
type CollectionAnimation struct {
	before *shape.Collection
	after  *shape.Collection
	opts   Options

	members []*Animation
}

// NewCollectionAnimation builds and resolves a collection morph.
func NewCollectionAnimation(before, after *shape.Collection, opts ...Option) *CollectionAnimation {
	a := &CollectionAnimation{
		before: before,
		after:  after,
		opts:   newOptions(opts),
	}
	a.resolve()
	return a
}

func (a *CollectionAnimation) resolve() {
	a.members = nil
	if a.before.Len() == 0 || a.after.Len() == 0 {
		slog.Debug("collection morph has an empty side", "before", a.before.Len(), "after", a.after.Len())
		return
	}

	before := equalize(a.before.Copy(), a.after.Len())
	after := equalize(a.after.Copy(), a.before.Len())

	a.members = make([]*Animation, len(before.Members))
	for i := range before.Members {
		a.members[i] = NewAnimation(before.Members[i], after.Members[i], WithOptions(a.opts))
	}
}

// equalize pads c with copies of its last member until it has n members.
// Rotation centers are resynced to the padded collection.
func equalize(c *shape.Collection, n int) *shape.Collection {
	last := c.Members[len(c.Members)-1]
	for c.Len() < n {
		c.Add(last.Copy())
	}
	return c
}

// SetBefore replaces the start collection and rebuilds the member morphs.
func (a *CollectionAnimation) SetBefore(c *shape.Collection) {
	a.before = c
	a.resolve()
}

// SetAfter replaces the end collection and rebuilds the member morphs.
func (a *CollectionAnimation) SetAfter(c *shape.Collection) {
	a.after = c
	a.resolve()
}

// Members returns the per-member morphs.
func (a *CollectionAnimation) Members() []*Animation { return a.members }

func (a *CollectionAnimation) Before() shape.Like { return shape.OfCollection(a.before) }
func (a *CollectionAnimation) After() shape.Like  { return shape.OfCollection(a.after) }
func (a *CollectionAnimation) Duration() float64  { return a.opts.Duration }
func (a *CollectionAnimation) Settings() Options  { return a.opts }

// Done reports whether t has reached the end of the duration.
func (a *CollectionAnimation) Done(t float64) bool {
	if a.opts.Duration <= 0 {
		return true
	}
	return t/a.opts.Duration >= 1
}

// FrameCollection returns the collection at time t, built from the member
// frames. Without members (one side empty) the raw start value is returned
// until the end is reached.
func (a *CollectionAnimation) FrameCollection(t float64) *shape.Collection {
	if len(a.members) == 0 {
		start, end := a.before, a.after
		if a.opts.Backwards {
			start, end = end, start
		}
		if t > 0 && a.Done(t) {
			return end
		}
		return start
	}

	out := make([]*shape.Shape, len(a.members))
	var wg sync.WaitGroup
	for i, m := range a.members {
		wg.Go(func() { out[i] = m.FrameShape(t) })
	}
	wg.Wait()
	return &shape.Collection{Members: out}
}

func (a *CollectionAnimation) Frame(t float64) shape.Like {
	return shape.OfCollection(a.FrameCollection(t))
}

// Warm fills every member's frame cache.
func (a *CollectionAnimation) Warm(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, m := range a.members {
		g.Go(func() error { return m.Warm(ctx) })
	}
	return g.Wait()
}

// Retarget returns a new collection morph from the same start to after.
func (a *CollectionAnimation) Retarget(after shape.Like) Animator {
	return New(a.Before(), after, WithOptions(a.opts))
}

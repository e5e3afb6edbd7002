package morph

import (
	"context"

	"github.com/inamate/morph/internal/shape"
)

// Animator is a playable morph between two shape values.
type Animator interface {
	Duration() float64
	// Frame returns the value at time t in [0, Duration].
	Frame(t float64) shape.Like
	Done(t float64) bool
	Before() shape.Like
	After() shape.Like
	Settings() Options
	// Retarget returns an animator with the same start and settings
	// heading to after.
	Retarget(after shape.Like) Animator
	// Warm pre-computes frames across the duration.
	Warm(ctx context.Context) error
}

// New picks the animation variant from the kinds of before and after.
// A single shape paired with a collection is treated as a one-member
// collection.
func New(before, after shape.Like, opts ...Option) Animator {
	if before.Kind() == shape.KindCollection || after.Kind() == shape.KindCollection {
		return NewCollectionAnimation(before.AsCollection(), after.AsCollection(), opts...)
	}
	return NewAnimation(before.Shape(), after.Shape(), opts...)
}

package morph

import (
	"context"
	"math"
	"runtime"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/inamate/morph/internal/shape"
)

type sample struct {
	t     float64
	frame *shape.Shape
}

// FrameCache memoizes interpolated frames by time. A stored frame answers
// any query closer than the tolerance. It is safe for concurrent use.
type FrameCache struct {
	mu      sync.RWMutex
	samples []sample // sorted by t

	duration  float64
	tolerance float64
	count     int
	compute   func(t float64) *shape.Shape
}

// NewFrameCache returns an empty cache over a morph of the given duration.
// compute must be a pure function of t.
func NewFrameCache(duration, tolerance float64, count int, compute func(t float64) *shape.Shape) *FrameCache {
	return &FrameCache{
		duration:  duration,
		tolerance: tolerance,
		count:     max(count, 1),
		compute:   compute,
	}
}

// Lookup returns the stored frame nearest to t if it lies within tolerance.
func (c *FrameCache) Lookup(t float64) (*shape.Shape, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i := c.search(t)
	best := -1
	bestDist := math.Inf(1)
	for _, j := range [2]int{i - 1, i} {
		if j < 0 || j >= len(c.samples) {
			continue
		}
		if d := math.Abs(c.samples[j].t - t); d < bestDist {
			best, bestDist = j, d
		}
	}
	if best < 0 || bestDist >= c.tolerance {
		return nil, false
	}
	return c.samples[best].frame, true
}

// Store records frame as the sample at time t, replacing any sample stored
// at exactly t.
func (c *FrameCache) Store(t float64, frame *shape.Shape) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.search(t)
	if i < len(c.samples) && c.samples[i].t == t {
		c.samples[i].frame = frame
		return
	}
	c.samples = slices.Insert(c.samples, i, sample{t: t, frame: frame})
}

// Len returns the number of stored samples.
func (c *FrameCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.samples)
}

// Step returns the spacing CacheUntil uses between samples.
func (c *FrameCache) Step() float64 {
	return max(math.Ceil(c.duration/float64(c.count)), 1)
}

// CacheUntil computes and stores samples from t backward to zero, one Step
// apart. Times already answered by the cache are skipped. Samples are
// computed concurrently.
func (c *FrameCache) CacheUntil(ctx context.Context, t float64) error {
	t = min(t, c.duration)
	step := c.Step()

	var times []float64
	for s := t; s > 0; s -= step {
		if _, ok := c.Lookup(s); !ok {
			times = append(times, s)
		}
	}
	if len(times) == 0 {
		return nil
	}

	frames := make([]*shape.Shape, len(times))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, s := range times {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			frames[i] = c.compute(s)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, s := range times {
		c.Store(s, frames[i])
	}
	return nil
}

// search returns the index of the first sample with time >= t.
func (c *FrameCache) search(t float64) int {
	i, _ := slices.BinarySearchFunc(c.samples, t, func(s sample, t float64) int {
		switch {
		case s.t < t:
			return -1
		case s.t > t:
			return 1
		default:
			return 0
		}
	})
	return i
}

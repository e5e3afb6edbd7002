package morph

// DefaultCacheTolerance is the time distance under which a cached frame is
// reused.
const DefaultCacheTolerance = 50

// DefaultCacheSamples is the number of frames pre-computed across a duration.
const DefaultCacheSamples = 120

// Options configure an animation. The zero value of each field selects its
// default.
type Options struct {
	Duration  float64
	Backwards bool
	Ease      EaseFunc
	// TargetCount picks the resample count for each contour pair.
	TargetCount TargetCountFunc
	// CacheTolerance is the reuse window of the frame cache in time units.
	CacheTolerance float64
	// CacheSamples is the number of frames CacheUntil spreads over the duration.
	CacheSamples int
}

// Option mutates Options.
type Option func(*Options)

// WithDuration sets the playback length.
func WithDuration(d float64) Option {
	return func(o *Options) { o.Duration = d }
}

// WithBackwards plays the morph from after to before.
func WithBackwards(b bool) Option {
	return func(o *Options) { o.Backwards = b }
}

// WithEase replaces the default cubic ease-in.
func WithEase(e EaseFunc) Option {
	return func(o *Options) { o.Ease = e }
}

// WithTargetCount replaces DefaultTargetCount.
func WithTargetCount(f TargetCountFunc) Option {
	return func(o *Options) { o.TargetCount = f }
}

// WithCache sets the frame cache tolerance and sample count.
func WithCache(tolerance float64, samples int) Option {
	return func(o *Options) {
		o.CacheTolerance = tolerance
		o.CacheSamples = samples
	}
}

// WithOptions copies every field of base.
func WithOptions(base Options) Option {
	return func(o *Options) { *o = base }
}

func newOptions(opts []Option) Options {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	if o.Ease == nil {
		o.Ease = CubicIn
	}
	if o.TargetCount == nil {
		o.TargetCount = DefaultTargetCount
	}
	if o.CacheTolerance <= 0 {
		o.CacheTolerance = DefaultCacheTolerance
	}
	if o.CacheSamples <= 0 {
		o.CacheSamples = DefaultCacheSamples
	}
	if o.Duration < 0 {
		o.Duration = 0
	}
	return o
}

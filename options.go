package delaunay

import (
	"math/rand"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// DefaultSeed seeds the random source of a Triangulation built without WithRand or WithSeed.
const DefaultSeed int64 = 1

// Options holds the configuration of a Triangulation.
type Options struct {
	Rand       *rand.Rand
	Logger     *zap.Logger
	Registerer prometheus.Registerer
	Validate   bool
}

// Option is a functional option applied by New.
type Option func(*Options)

// WithRand sets the random source used by point location and batch
// insertion. The source is owned by the triangulation afterwards.
func WithRand(r *rand.Rand) Option {
	return func(o *Options) {
		o.Rand = r
	}
}

// WithSeed is a shorthand for WithRand(rand.New(rand.NewSource(seed))).
func WithSeed(seed int64) Option {
	return func(o *Options) {
		o.Rand = rand.New(rand.NewSource(seed))
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithRegisterer registers the triangulation metrics with reg. Two
// triangulations registered with the same registerer collide, so give each
// its own (or wrap it with prometheus.WrapRegistererWith).
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *Options) {
		o.Registerer = reg
	}
}

// WithValidation makes every mutating operation run Validate on its result
// and roll back when the check fails.
func WithValidation(enabled bool) Option {
	return func(o *Options) {
		o.Validate = enabled
	}
}

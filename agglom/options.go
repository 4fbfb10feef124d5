package agglom

import "github.com/katalvlaran/agglom/matrix"

// Options configures Build. Use DefaultOptions() and Option closures.
//
// Fields:
//   - Labels        — optional leaf names (len must equal n, unique, non-empty).
//   - Epsilon       — tolerance for the symmetry/zero-diagonal input checks.
//   - Outgroup      — leaf held back until the root join; NoNode disables.
//   - ClampNegative — clamp negative edge lengths to 0 (NJ on noisy data).
//   - Observer      — per-merge callback; nil disables.
type Options struct {
	Labels        []string
	Epsilon       float64
	Outgroup      int
	ClampNegative bool
	Observer      Observer
}

// Option configures Options.
type Option func(*Options)

// DefaultOptions returns:
//
//	– Labels        = nil (leaves are named by index in Newick)
//	– Epsilon       = matrix.DefaultEpsilon
//	– Outgroup      = NoNode
//	– ClampNegative = false
//	– Observer      = nil
func DefaultOptions() Options {
	return Options{
		Epsilon:  matrix.DefaultEpsilon,
		Outgroup: NoNode,
	}
}

// WithLabels names the leaves in matrix order.
func WithLabels(labels []string) Option {
	return func(o *Options) { o.Labels = labels }
}

// WithEpsilon sets the input validation tolerance; negative values mean 0.
func WithEpsilon(eps float64) Option {
	return func(o *Options) {
		if eps < 0 {
			eps = 0
		}
		o.Epsilon = eps
	}
}

// WithOutgroup forces leaf to be one of the root's two children.
func WithOutgroup(leaf int) Option {
	return func(o *Options) { o.Outgroup = leaf }
}

// WithClampNegative clamps negative edge lengths to zero.
func WithClampNegative(on bool) Option {
	return func(o *Options) { o.ClampNegative = on }
}

// WithObserver installs a per-merge callback.
func WithObserver(fn Observer) Option {
	return func(o *Options) { o.Observer = fn }
}

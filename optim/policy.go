package optim

import (
	"gonum.org/v1/gonum/mat"
)

// UpdatePolicy is a per-parameter update rule driven by an external
// optimization loop. The driver owns the parameter matrix and the iteration
// count: it calls Initialize once the parameter shape is known, then Update
// once per iteration with the 1-based iteration index.
//
// A policy instance exclusively owns its internal state and is not safe for
// concurrent use; give each parameter matrix its own instance.
type UpdatePolicy interface {
	// Initialize allocates zeroed internal state for a rows×cols parameter
	// matrix. Calling it again resets the state.
	Initialize(rows, cols int)
	// Update mutates iterate in place using the gradient at the current
	// point and advances the internal state. iteration starts at 1 and is
	// only used for bias-correction exponents; the caller maintains it.
	Update(iterate *mat.Dense, stepSize float64, gradient mat.Matrix, iteration int)
}

// Config selects and parameterizes the adaptive moment policy. Zero-valued
// scalars are replaced with the standard defaults.
type Config struct {
	Epsilon         float64
	Beta1           float64
	Beta2           float64
	UseInfinityNorm bool
}

const (
	defaultEpsilon = 1e-8
	defaultBeta1   = 0.9
	defaultBeta2   = 0.999
)

func (c Config) withDefaults() Config {
	if c.Epsilon == 0 {
		c.Epsilon = defaultEpsilon
	}
	if c.Beta1 == 0 {
		c.Beta1 = defaultBeta1
	}
	if c.Beta2 == 0 {
		c.Beta2 = defaultBeta2
	}
	return c
}

// New resolves the variant once at construction: an infinity-norm
// configuration yields an AdaMax policy, otherwise Adam.
func New(cfg Config) (UpdatePolicy, error) {
	cfg = cfg.withDefaults()
	if cfg.UseInfinityNorm {
		return NewAdaMax(cfg.Epsilon, cfg.Beta1, cfg.Beta2)
	}
	return NewAdam(cfg.Epsilon, cfg.Beta1, cfg.Beta2)
}

func MustNew(cfg Config) UpdatePolicy {
	p, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return p
}

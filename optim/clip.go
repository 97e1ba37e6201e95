package optim

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// GradientClipping bounds each gradient element to [minGradient,
// maxGradient] before handing the result to the wrapped policy. The wrapped
// policy never sees the raw gradient.
type GradientClipping struct {
	minGradient float64
	maxGradient float64
	policy      UpdatePolicy

	clipped *mat.Dense
}

func NewGradientClipping(minGradient, maxGradient float64, policy UpdatePolicy) (*GradientClipping, error) {
	if minGradient > maxGradient {
		return nil, errOutsideRange("minGradient", minGradient, "(-Inf, maxGradient]")
	}
	return &GradientClipping{
		minGradient: minGradient,
		maxGradient: maxGradient,
		policy:      policy,
	}, nil
}

func MustNewGradientClipping(minGradient, maxGradient float64, policy UpdatePolicy) *GradientClipping {
	p, err := NewGradientClipping(minGradient, maxGradient, policy)
	if err != nil {
		panic(err)
	}
	return p
}

func (c *GradientClipping) Initialize(rows, cols int) {
	c.clipped = mat.NewDense(rows, cols, nil)
	c.policy.Initialize(rows, cols)
}

func (c *GradientClipping) Update(iterate *mat.Dense, stepSize float64, gradient mat.Matrix, iteration int) {
	rows, cols := c.clipped.Dims()
	checkShape(gradient, rows, cols)

	lo, hi := c.minGradient, c.maxGradient
	apply(c.clipped, gradient, func(_, g float64) float64 {
		return math.Min(math.Max(g, lo), hi)
	})
	c.policy.Update(iterate, stepSize, c.clipped, iteration)
}

func (c *GradientClipping) MinGradient() float64 { return c.minGradient }
func (c *GradientClipping) MaxGradient() float64 { return c.maxGradient }

// ClipNorm rescales gradient in place so its Frobenius norm is at most
// maxNorm, and returns the norm it had before rescaling.
func ClipNorm(gradient *mat.Dense, maxNorm float64) float64 {
	norm := mat.Norm(gradient, 2)
	if maxNorm > 0 && norm > maxNorm {
		gradient.Scale(maxNorm/norm, gradient)
	}
	return norm
}

package optim

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// AdaGrad scales each parameter's step by the accumulated squared gradient,
// so frequently updated parameters take smaller steps over time.
type AdaGrad struct {
	epsilon         float64
	squaredGradient *mat.Dense
}

func NewAdaGrad(epsilon float64) (*AdaGrad, error) {
	if err := validatePositive("epsilon", epsilon); err != nil {
		return nil, err
	}
	return &AdaGrad{epsilon: epsilon}, nil
}

func MustNewAdaGrad(epsilon float64) *AdaGrad {
	p, err := NewAdaGrad(epsilon)
	if err != nil {
		panic(err)
	}
	return p
}

func (a *AdaGrad) Initialize(rows, cols int) {
	a.squaredGradient = mat.NewDense(rows, cols, nil)
}

func (a *AdaGrad) Update(iterate *mat.Dense, stepSize float64, gradient mat.Matrix, iteration int) {
	rows, cols := a.squaredGradient.Dims()
	checkShape(iterate, rows, cols)
	checkShape(gradient, rows, cols)

	apply(a.squaredGradient, gradient, func(s, g float64) float64 {
		return s + g*g
	})
	eps := a.epsilon
	applyGradStep(iterate, gradient, a.squaredGradient, func(g, s float64) float64 {
		return stepSize * g / (math.Sqrt(s) + eps)
	})
}

func (a *AdaGrad) Epsilon() float64 { return a.epsilon }
func (a *AdaGrad) SetEpsilon(v float64) { a.epsilon = v }

package optim

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// RMSProp divides the step by a decaying average of squared gradients,
// keeping the effective step size roughly uniform across parameters.
type RMSProp struct {
	alpha   float64
	epsilon float64

	meanSquaredGradient *mat.Dense
}

func NewRMSProp(alpha, epsilon float64) (*RMSProp, error) {
	if err := validateDecay("alpha", alpha); err != nil {
		return nil, err
	}
	if err := validatePositive("epsilon", epsilon); err != nil {
		return nil, err
	}
	return &RMSProp{alpha: alpha, epsilon: epsilon}, nil
}

func MustNewRMSProp(alpha, epsilon float64) *RMSProp {
	p, err := NewRMSProp(alpha, epsilon)
	if err != nil {
		panic(err)
	}
	return p
}

func (r *RMSProp) Initialize(rows, cols int) {
	r.meanSquaredGradient = mat.NewDense(rows, cols, nil)
}

func (r *RMSProp) Update(iterate *mat.Dense, stepSize float64, gradient mat.Matrix, iteration int) {
	rows, cols := r.meanSquaredGradient.Dims()
	checkShape(iterate, rows, cols)
	checkShape(gradient, rows, cols)

	alpha := r.alpha
	apply(r.meanSquaredGradient, gradient, func(s, g float64) float64 {
		return alpha*s + (1-alpha)*g*g
	})
	eps := r.epsilon
	applyGradStep(iterate, gradient, r.meanSquaredGradient, func(g, s float64) float64 {
		return stepSize * g / (math.Sqrt(s) + eps)
	})
}

func (r *RMSProp) Alpha() float64 { return r.alpha }
func (r *RMSProp) SetAlpha(v float64) { r.alpha = v }
func (r *RMSProp) Epsilon() float64 { return r.epsilon }
func (r *RMSProp) SetEpsilon(v float64) { r.epsilon = v }

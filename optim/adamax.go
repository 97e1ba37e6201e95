package optim

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// AdaMax is the Adam variant based on the infinity norm: instead of the
// second moment it tracks an exponentially weighted element-wise maximum of
// gradient magnitudes (section 7 of the Adam paper).
type AdaMax struct {
	epsilon float64
	beta1   float64
	beta2   float64

	m *mat.Dense
	u *mat.Dense
}

func NewAdaMax(epsilon, beta1, beta2 float64) (*AdaMax, error) {
	if err := validatePositive("epsilon", epsilon); err != nil {
		return nil, err
	}
	if err := validateDecay("beta1", beta1); err != nil {
		return nil, err
	}
	if err := validateDecay("beta2", beta2); err != nil {
		return nil, err
	}
	return &AdaMax{epsilon: epsilon, beta1: beta1, beta2: beta2}, nil
}

func MustNewAdaMax(epsilon, beta1, beta2 float64) *AdaMax {
	p, err := NewAdaMax(epsilon, beta1, beta2)
	if err != nil {
		panic(err)
	}
	return p
}

func (a *AdaMax) Initialize(rows, cols int) {
	a.m = mat.NewDense(rows, cols, nil)
	a.u = mat.NewDense(rows, cols, nil)
}

func (a *AdaMax) Update(iterate *mat.Dense, stepSize float64, gradient mat.Matrix, iteration int) {
	rows, cols := a.m.Dims()
	checkShape(iterate, rows, cols)
	checkShape(gradient, rows, cols)

	beta1, beta2 := a.beta1, a.beta2
	apply(a.m, gradient, func(m, g float64) float64 {
		return beta1*m + (1-beta1)*g
	})
	apply(a.u, gradient, func(u, g float64) float64 {
		return math.Max(beta2*u, math.Abs(g))
	})

	biasCorrection1 := 1 - math.Pow(beta1, float64(iteration))
	if biasCorrection1 == 0 {
		// Only reachable with iteration 0, which is outside the caller
		// contract; the accumulators still advance but the iterate is left
		// alone.
		return
	}

	scale := stepSize / biasCorrection1
	eps := a.epsilon
	applyStep(iterate, a.m, a.u, func(m, u float64) float64 {
		return scale * m / (u + eps)
	})
}

func (a *AdaMax) Epsilon() float64 { return a.epsilon }
func (a *AdaMax) SetEpsilon(v float64) { a.epsilon = v }
func (a *AdaMax) Beta1() float64 { return a.beta1 }
func (a *AdaMax) SetBeta1(v float64) { a.beta1 = v }
func (a *AdaMax) Beta2() float64 { return a.beta2 }
func (a *AdaMax) SetBeta2(v float64) { a.beta2 = v }
func (a *AdaMax) InfinityNorm() bool { return true }

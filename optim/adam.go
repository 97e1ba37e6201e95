package optim

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Adam computes individual adaptive learning rates for each parameter from
// exponential moving averages of the gradient and its element-wise square;
// see Kingma & Ba, "Adam: A Method for Stochastic Optimization" (2014).
type Adam struct {
	epsilon float64
	beta1   float64
	beta2   float64

	m *mat.Dense
	v *mat.Dense
}

func NewAdam(epsilon, beta1, beta2 float64) (*Adam, error) {
	if err := validatePositive("epsilon", epsilon); err != nil {
		return nil, err
	}
	if err := validateDecay("beta1", beta1); err != nil {
		return nil, err
	}
	if err := validateDecay("beta2", beta2); err != nil {
		return nil, err
	}
	return &Adam{epsilon: epsilon, beta1: beta1, beta2: beta2}, nil
}

func MustNewAdam(epsilon, beta1, beta2 float64) *Adam {
	p, err := NewAdam(epsilon, beta1, beta2)
	if err != nil {
		panic(err)
	}
	return p
}

func (a *Adam) Initialize(rows, cols int) {
	a.m = mat.NewDense(rows, cols, nil)
	a.v = mat.NewDense(rows, cols, nil)
}

func (a *Adam) Update(iterate *mat.Dense, stepSize float64, gradient mat.Matrix, iteration int) {
	rows, cols := a.m.Dims()
	checkShape(iterate, rows, cols)
	checkShape(gradient, rows, cols)

	beta1, beta2 := a.beta1, a.beta2
	apply(a.m, gradient, func(m, g float64) float64 {
		return beta1*m + (1-beta1)*g
	})
	apply(a.v, gradient, func(v, g float64) float64 {
		return beta2*v + (1-beta2)*g*g
	})

	biasCorrection1 := 1 - math.Pow(beta1, float64(iteration))
	biasCorrection2 := 1 - math.Pow(beta2, float64(iteration))

	// m / (sqrt(v) + epsilon) approximates the bias-corrected
	// m / (sqrt(v) + sqrt(biasCorrection2)*epsilon); the sqrt factor on the
	// step size compensates. Kept as is for compatibility with the
	// reference formulation.
	scale := stepSize * math.Sqrt(biasCorrection2) / biasCorrection1
	eps := a.epsilon
	applyStep(iterate, a.m, a.v, func(m, v float64) float64 {
		return scale * m / (math.Sqrt(v) + eps)
	})
}

func (a *Adam) Epsilon() float64 { return a.epsilon }
func (a *Adam) SetEpsilon(v float64) { a.epsilon = v }
func (a *Adam) Beta1() float64 { return a.beta1 }
func (a *Adam) SetBeta1(v float64) { a.beta1 = v }
func (a *Adam) Beta2() float64 { return a.beta2 }
func (a *Adam) SetBeta2(v float64) { a.beta2 = v }
func (a *Adam) InfinityNorm() bool { return false }

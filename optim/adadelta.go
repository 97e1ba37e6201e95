package optim

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// AdaDelta sizes each step by the ratio of two decaying averages: past
// squared deltas over past squared gradients, so the update carries its own
// units and stepSize acts only as a final multiplier.
type AdaDelta struct {
	rho     float64
	epsilon float64

	meanSquaredGradient *mat.Dense
	meanSquaredDelta    *mat.Dense
}

func NewAdaDelta(rho, epsilon float64) (*AdaDelta, error) {
	if err := validateDecay("rho", rho); err != nil {
		return nil, err
	}
	if err := validatePositive("epsilon", epsilon); err != nil {
		return nil, err
	}
	return &AdaDelta{rho: rho, epsilon: epsilon}, nil
}

func MustNewAdaDelta(rho, epsilon float64) *AdaDelta {
	p, err := NewAdaDelta(rho, epsilon)
	if err != nil {
		panic(err)
	}
	return p
}

func (a *AdaDelta) Initialize(rows, cols int) {
	a.meanSquaredGradient = mat.NewDense(rows, cols, nil)
	a.meanSquaredDelta = mat.NewDense(rows, cols, nil)
}

func (a *AdaDelta) Update(iterate *mat.Dense, stepSize float64, gradient mat.Matrix, iteration int) {
	rows, cols := a.meanSquaredGradient.Dims()
	checkShape(iterate, rows, cols)
	checkShape(gradient, rows, cols)

	rho, eps := a.rho, a.epsilon
	apply(a.meanSquaredGradient, gradient, func(s, g float64) float64 {
		return rho*s + (1-rho)*g*g
	})

	// The delta feeds both the iterate and its own running average, so the
	// final pass is fused.
	forRows(rows, cols, func(r int) {
		irow := rowSlice(iterate, r)
		msgRow := rowSlice(a.meanSquaredGradient, r)
		msdRow := rowSlice(a.meanSquaredDelta, r)
		for c := range irow {
			g := gradient.At(r, c)
			dx := math.Sqrt((msdRow[c]+eps)/(msgRow[c]+eps)) * g
			msdRow[c] = rho*msdRow[c] + (1-rho)*dx*dx
			irow[c] -= stepSize * dx
		}
	})
}

func (a *AdaDelta) Rho() float64 { return a.rho }
func (a *AdaDelta) SetRho(v float64) { a.rho = v }
func (a *AdaDelta) Epsilon() float64 { return a.epsilon }
func (a *AdaDelta) SetEpsilon(v float64) { a.epsilon = v }

package optim

import (
	"gonum.org/v1/gonum/mat"
)

// AdamW is Adam with decoupled weight decay (Loshchilov & Hutter, 2019):
// the decay shrinks the iterate directly instead of entering the moment
// accumulators.
type AdamW struct {
	Adam
	weightDecay float64
}

func NewAdamW(epsilon, beta1, beta2, weightDecay float64) (*AdamW, error) {
	if err := validateNonNegative("weightDecay", weightDecay); err != nil {
		return nil, err
	}
	inner, err := NewAdam(epsilon, beta1, beta2)
	if err != nil {
		return nil, err
	}
	return &AdamW{Adam: *inner, weightDecay: weightDecay}, nil
}

func MustNewAdamW(epsilon, beta1, beta2, weightDecay float64) *AdamW {
	p, err := NewAdamW(epsilon, beta1, beta2, weightDecay)
	if err != nil {
		panic(err)
	}
	return p
}

func (a *AdamW) Update(iterate *mat.Dense, stepSize float64, gradient mat.Matrix, iteration int) {
	if a.weightDecay > 0 {
		iterate.Scale(1-stepSize*a.weightDecay, iterate)
	}
	a.Adam.Update(iterate, stepSize, gradient, iteration)
}

func (a *AdamW) WeightDecay() float64 { return a.weightDecay }
func (a *AdamW) SetWeightDecay(v float64) { a.weightDecay = v }

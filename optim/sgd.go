package optim

import (
	"gonum.org/v1/gonum/mat"
)

// Vanilla applies the plain gradient descent step with no internal state.
type Vanilla struct{}

func NewVanilla() *Vanilla { return &Vanilla{} }

func (*Vanilla) Initialize(rows, cols int) {}

func (*Vanilla) Update(iterate *mat.Dense, stepSize float64, gradient mat.Matrix, iteration int) {
	rows, cols := iterate.Dims()
	checkShape(gradient, rows, cols)
	apply(iterate, gradient, func(p, g float64) float64 {
		return p - stepSize*g
	})
}

// Momentum accelerates descent along directions of persistent gradient by
// accumulating a decaying velocity.
type Momentum struct {
	momentum float64
	velocity *mat.Dense
}

func NewMomentum(momentum float64) (*Momentum, error) {
	if err := validateDecay("momentum", momentum); err != nil {
		return nil, err
	}
	return &Momentum{momentum: momentum}, nil
}

func MustNewMomentum(momentum float64) *Momentum {
	p, err := NewMomentum(momentum)
	if err != nil {
		panic(err)
	}
	return p
}

func (s *Momentum) Initialize(rows, cols int) {
	s.velocity = mat.NewDense(rows, cols, nil)
}

func (s *Momentum) Update(iterate *mat.Dense, stepSize float64, gradient mat.Matrix, iteration int) {
	rows, cols := s.velocity.Dims()
	checkShape(iterate, rows, cols)
	checkShape(gradient, rows, cols)

	mu := s.momentum
	apply(s.velocity, gradient, func(v, g float64) float64 {
		return mu*v + stepSize*g
	})
	iterate.Sub(iterate, s.velocity)
}

func (s *Momentum) Momentum() float64 { return s.momentum }
func (s *Momentum) SetMomentum(v float64) { s.momentum = v }

// NesterovMomentum evaluates the momentum correction at the looked-ahead
// point, subtracting both the fresh gradient step and the decayed velocity.
type NesterovMomentum struct {
	momentum float64
	velocity *mat.Dense
}

func NewNesterovMomentum(momentum float64) (*NesterovMomentum, error) {
	if err := validateDecay("momentum", momentum); err != nil {
		return nil, err
	}
	return &NesterovMomentum{momentum: momentum}, nil
}

func MustNewNesterovMomentum(momentum float64) *NesterovMomentum {
	p, err := NewNesterovMomentum(momentum)
	if err != nil {
		panic(err)
	}
	return p
}

func (s *NesterovMomentum) Initialize(rows, cols int) {
	s.velocity = mat.NewDense(rows, cols, nil)
}

func (s *NesterovMomentum) Update(iterate *mat.Dense, stepSize float64, gradient mat.Matrix, iteration int) {
	rows, cols := s.velocity.Dims()
	checkShape(iterate, rows, cols)
	checkShape(gradient, rows, cols)

	mu := s.momentum
	apply(s.velocity, gradient, func(v, g float64) float64 {
		return mu*v + stepSize*g
	})
	applyStep(iterate, s.velocity, s.velocity, func(v, _ float64) float64 {
		return mu * v
	})
	apply(iterate, gradient, func(p, g float64) float64 {
		return p - stepSize*g
	})
}

func (s *NesterovMomentum) Momentum() float64 { return s.momentum }
func (s *NesterovMomentum) SetMomentum(v float64) { s.momentum = v }

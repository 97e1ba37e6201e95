package optim

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestAdamFirstStepClosedForm(t *testing.T) {
	const (
		eps      = 1e-8
		beta1    = 0.9
		beta2    = 0.999
		stepSize = 0.01
	)
	a := MustNewAdam(eps, beta1, beta2)
	a.Initialize(2, 2)

	iterate := mat.NewDense(2, 2, []float64{1, -2, 0.5, 3})
	gradient := mat.NewDense(2, 2, []float64{0.1, -0.4, 2, -0.03})
	before := mat.DenseCopyOf(iterate)

	a.Update(iterate, stepSize, gradient, 1)

	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			g := gradient.At(r, c)
			m := (1 - beta1) * g
			v := (1 - beta2) * g * g
			if math.Abs(a.m.At(r, c)-m) > 1e-12 {
				t.Fatalf("m[%d,%d] = %v, want %v", r, c, a.m.At(r, c), m)
			}
			if math.Abs(a.v.At(r, c)-v) > 1e-12 {
				t.Fatalf("v[%d,%d] = %v, want %v", r, c, a.v.At(r, c), v)
			}
			want := before.At(r, c) - stepSize*math.Sqrt(1-beta2)/(1-beta1)*m/(math.Sqrt(v)+eps)
			if math.Abs(iterate.At(r, c)-want) > 1e-12 {
				t.Fatalf("iterate[%d,%d] = %v, want %v", r, c, iterate.At(r, c), want)
			}
		}
	}
}

// Scalar scenario: 1×1 iterate 1.0, gradient 0.5, stepSize 0.01.
func TestAdamScalarFirstStep(t *testing.T) {
	a := MustNewAdam(1e-8, 0.9, 0.999)
	a.Initialize(1, 1)
	iterate := mat.NewDense(1, 1, []float64{1})
	gradient := mat.NewDense(1, 1, []float64{0.5})

	a.Update(iterate, 0.01, gradient, 1)

	wantM := 0.05
	wantV := 0.001 * 0.25
	if math.Abs(a.m.At(0, 0)-wantM) > 1e-12 {
		t.Fatalf("m = %v, want %v", a.m.At(0, 0), wantM)
	}
	if math.Abs(a.v.At(0, 0)-wantV) > 1e-12 {
		t.Fatalf("v = %v, want %v", a.v.At(0, 0), wantV)
	}
	want := 1 - 0.01*math.Sqrt(1-0.999)/(1-0.9)*wantM/(math.Sqrt(wantV)+1e-8)
	if math.Abs(iterate.At(0, 0)-want) > 1e-12 {
		t.Fatalf("iterate = %v, want %v", iterate.At(0, 0), want)
	}
}

// The denominator is sqrt(v)+eps with sqrt(biasCorrection2) folded into the
// step scale, not sqrt(v)+sqrt(biasCorrection2)*eps. A second step with a
// large epsilon distinguishes the two formulations.
func TestAdamPreservesDenominatorApproximation(t *testing.T) {
	const (
		eps      = 0.1
		beta1    = 0.9
		beta2    = 0.999
		stepSize = 0.5
		g        = 0.7
	)
	a := MustNewAdam(eps, beta1, beta2)
	a.Initialize(1, 1)
	iterate := mat.NewDense(1, 1, []float64{2})
	gradient := mat.NewDense(1, 1, []float64{g})

	x := 2.0
	m, v := 0.0, 0.0
	for i := 1; i <= 2; i++ {
		a.Update(iterate, stepSize, gradient, i)

		m = beta1*m + (1-beta1)*g
		v = beta2*v + (1-beta2)*g*g
		bc1 := 1 - math.Pow(beta1, float64(i))
		bc2 := 1 - math.Pow(beta2, float64(i))
		x -= stepSize * math.Sqrt(bc2) / bc1 * m / (math.Sqrt(v) + eps)
	}
	if math.Abs(iterate.At(0, 0)-x) > 1e-12 {
		t.Fatalf("iterate = %v, want %v", iterate.At(0, 0), x)
	}
}

func TestAdamInitializeResetsState(t *testing.T) {
	a := MustNewAdam(1e-8, 0.9, 0.999)
	a.Initialize(1, 2)
	iterate := mat.NewDense(1, 2, []float64{1, 1})
	gradient := mat.NewDense(1, 2, []float64{0.3, -0.2})
	for i := 1; i <= 5; i++ {
		a.Update(iterate, 0.01, gradient, i)
	}

	a.Initialize(1, 2)
	got := mat.NewDense(1, 2, []float64{1, 1})
	a.Update(got, 0.01, gradient, 1)

	fresh := MustNewAdam(1e-8, 0.9, 0.999)
	fresh.Initialize(1, 2)
	want := mat.NewDense(1, 2, []float64{1, 1})
	fresh.Update(want, 0.01, gradient, 1)

	if !denseAlmostEqual(got, want, 0) {
		t.Fatalf("reset instance differs from fresh one: got %v want %v",
			got.RawMatrix().Data, want.RawMatrix().Data)
	}
}

func TestAdamSecondMomentConvergesToSquaredGradient(t *testing.T) {
	a := MustNewAdam(1e-8, 0.9, 0.999)
	a.Initialize(1, 1)
	iterate := mat.NewDense(1, 1, []float64{0})
	gradient := mat.NewDense(1, 1, []float64{0.7})
	for i := 1; i <= 20000; i++ {
		a.Update(iterate, 1e-6, gradient, i)
	}
	if math.Abs(a.m.At(0, 0)-0.7) > 1e-6 {
		t.Fatalf("m did not converge to the gradient: %v", a.m.At(0, 0))
	}
	if math.Abs(a.v.At(0, 0)-0.49) > 1e-6 {
		t.Fatalf("v did not converge to the squared gradient: %v", a.v.At(0, 0))
	}
}

func TestAdamConvergesOnQuadratic(t *testing.T) {
	a := MustNewAdam(1e-8, 0.9, 0.999)
	a.Initialize(1, 1)
	iterate := mat.NewDense(1, 1, []float64{5})
	gradient := mat.NewDense(1, 1, nil)
	for i := 1; i <= 500; i++ {
		gradient.Set(0, 0, 2*(iterate.At(0, 0)-3))
		a.Update(iterate, 0.05, gradient, i)
	}
	if math.Abs(iterate.At(0, 0)-3) > 1e-2 {
		t.Fatalf("adam did not converge close to target: got %.6f", iterate.At(0, 0))
	}
}

func TestNewAdamValidation(t *testing.T) {
	if _, err := NewAdam(0, 0.9, 0.999); err == nil {
		t.Fatal("zero epsilon accepted")
	}
	_, err := NewAdam(1e-8, 1, 0.999)
	if err == nil {
		t.Fatal("beta1 = 1 accepted")
	}
	var invalid *InvalidArgumentError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidArgumentError, got %v", err)
	}
	if invalid.Name != "beta1" {
		t.Fatalf("unexpected argument name %q", invalid.Name)
	}
	if _, err := NewAdam(1e-8, 0.9, -0.5); err == nil {
		t.Fatal("negative beta2 accepted")
	}
}

func TestAdamAccessors(t *testing.T) {
	a := MustNewAdam(1e-8, 0.9, 0.999)
	a.SetEpsilon(1e-6)
	a.SetBeta1(0.8)
	a.SetBeta2(0.99)
	if a.Epsilon() != 1e-6 || a.Beta1() != 0.8 || a.Beta2() != 0.99 {
		t.Fatalf("accessors out of sync: eps=%v beta1=%v beta2=%v",
			a.Epsilon(), a.Beta1(), a.Beta2())
	}
}

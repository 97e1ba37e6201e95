package main

import (
	"fmt"
	"image/color"
	"log"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/diixo/ensmallen/optim"
)

// rosenbrock evaluates f(x, y) = (1-x)^2 + 100(y-x^2)^2 at params and
// writes the gradient into grad.
func rosenbrock(params, grad *mat.Dense) float64 {
	x := params.At(0, 0)
	y := params.At(1, 0)
	grad.Set(0, 0, -2*(1-x)-400*x*(y-x*x))
	grad.Set(1, 0, 200*(y-x*x))
	return (1-x)*(1-x) + 100*(y-x*x)*(y-x*x)
}

func run(name string, policy optim.UpdatePolicy, stepSize float64, iterations int) plotter.XYs {
	params := mat.NewDense(2, 1, []float64{-1.2, 1})
	grad := mat.NewDense(2, 1, nil)
	policy.Initialize(2, 1)

	curve := make(plotter.XYs, 0, iterations)
	for i := 1; i <= iterations; i++ {
		loss := rosenbrock(params, grad)
		curve = append(curve, plotter.XY{X: float64(i), Y: math.Log10(loss + 1e-16)})
		policy.Update(params, stepSize, grad, i)
		if i%2000 == 0 || i == iterations {
			fmt.Printf("%-8s iter %5d loss %.6g at (%.4f, %.4f)\n",
				name, i, loss, params.At(0, 0), params.At(1, 0))
		}
	}
	return curve
}

func main() {
	const iterations = 10000
	runs := []struct {
		name     string
		policy   optim.UpdatePolicy
		stepSize float64
		color    color.RGBA
	}{
		{"adam", optim.MustNew(optim.Config{}), 0.01, color.RGBA{R: 255, A: 255}},
		{"adamax", optim.MustNew(optim.Config{UseInfinityNorm: true}), 0.02, color.RGBA{B: 255, A: 255}},
		{"rmsprop", optim.MustNewRMSProp(0.99, 1e-8), 0.005, color.RGBA{G: 160, A: 255}},
		{"adagrad", optim.MustNewAdaGrad(1e-8), 0.5, color.RGBA{R: 160, B: 160, A: 255}},
	}

	p := plot.New()
	p.Title.Text = "Rosenbrock convergence"
	p.X.Label.Text = "iteration"
	p.Y.Label.Text = "log10 loss"
	for _, r := range runs {
		curve := run(r.name, r.policy, r.stepSize, iterations)
		line, err := plotter.NewLine(curve)
		if err != nil {
			log.Fatal(err)
		}
		line.Color = r.color
		p.Add(line)
		p.Legend.Add(r.name, line)
	}
	if err := p.Save(6*vg.Inch, 4*vg.Inch, "convergence.png"); err != nil {
		log.Fatal(err)
	}
	fmt.Println("wrote convergence.png")
}

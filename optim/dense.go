package optim

import (
	"gonum.org/v1/gonum/mat"

	"github.com/diixo/ensmallen/internal/parallel"
)

// Element-wise passes split across goroutines by row once the matrix is
// large enough to amortize the startup cost. Each pass returns only after
// every row is done, so a later pass always observes completed state.
const parallelElements = 1 << 14

func forRows(rows, cols int, fn func(r int)) {
	if rows*cols >= parallelElements && rows > 1 {
		parallel.For(rows, func(start, end int) {
			for r := start; r < end; r++ {
				fn(r)
			}
		})
		return
	}
	for r := 0; r < rows; r++ {
		fn(r)
	}
}

// checkShape panics with mat.ErrShape unless m is rows×cols. Shape
// consistency between iterate, gradient and the initialized state is the
// caller's contract; there is no recovery from a mismatch.
func checkShape(m mat.Matrix, rows, cols int) {
	r, c := m.Dims()
	if r != rows || c != cols {
		panic(mat.ErrShape)
	}
}

func rowSlice(d *mat.Dense, r int) []float64 {
	rm := d.RawMatrix()
	return rm.Data[r*rm.Stride : r*rm.Stride+rm.Cols]
}

// apply sets dst[r,c] = fn(dst[r,c], g.At(r,c)) for every element.
func apply(dst *mat.Dense, g mat.Matrix, fn func(d, gv float64) float64) {
	rows, cols := dst.Dims()
	forRows(rows, cols, func(r int) {
		row := rowSlice(dst, r)
		for c := range row {
			row[c] = fn(row[c], g.At(r, c))
		}
	})
}

// applyStep sets iterate[r,c] -= fn(a[r,c], b[r,c]) where a and b are the
// policy's accumulators.
func applyStep(iterate, a, b *mat.Dense, fn func(av, bv float64) float64) {
	rows, cols := iterate.Dims()
	forRows(rows, cols, func(r int) {
		irow := rowSlice(iterate, r)
		arow := rowSlice(a, r)
		brow := rowSlice(b, r)
		for c := range irow {
			irow[c] -= fn(arow[c], brow[c])
		}
	})
}

// applyGradStep sets iterate[r,c] -= fn(g.At(r,c), s[r,c]) where s is the
// policy's accumulator.
func applyGradStep(iterate *mat.Dense, g mat.Matrix, s *mat.Dense, fn func(gv, sv float64) float64) {
	rows, cols := iterate.Dims()
	forRows(rows, cols, func(r int) {
		irow := rowSlice(iterate, r)
		srow := rowSlice(s, r)
		for c := range irow {
			irow[c] -= fn(g.At(r, c), srow[c])
		}
	})
}

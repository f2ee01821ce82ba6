package calibrate

import (
	"fmt"
	"math"
)

// solveRidge solves the L2-regularized least squares system
// (XᵗX + λnI) w = Xᵗy for w, where n is the sample count. X is n×d in
// row-major order, y has length n.
func solveRidge(x [][]float64, y []float64, lambda float64) ([]float64, error) {
	n := len(x)
	if n == 0 || n != len(y) {
		return nil, fmt.Errorf("feature matrix and labels must have equal non-zero length")
	}
	d := len(x[0])

	// Normal equations.
	a := make([][]float64, d)
	b := make([]float64, d)
	for i := range a {
		a[i] = make([]float64, d)
	}
	for _, row := range x {
		if len(row) != d {
			return nil, fmt.Errorf("ragged feature matrix")
		}
	}
	for i := 0; i < d; i++ {
		for j := 0; j < d; j++ {
			sum := 0.0
			for k := 0; k < n; k++ {
				sum += x[k][i] * x[k][j]
			}
			a[i][j] = sum
		}
		a[i][i] += lambda * float64(n)
		sum := 0.0
		for k := 0; k < n; k++ {
			sum += x[k][i] * y[k]
		}
		b[i] = sum
	}

	return solveLinearSystem(a, b)
}

// solveLinearSystem performs Gaussian elimination with partial pivoting.
func solveLinearSystem(a [][]float64, b []float64) ([]float64, error) {
	d := len(a)
	for col := 0; col < d; col++ {
		pivot := col
		for row := col + 1; row < d; row++ {
			if math.Abs(a[row][col]) > math.Abs(a[pivot][col]) {
				pivot = row
			}
		}
		if math.Abs(a[pivot][col]) < 1e-12 {
			return nil, fmt.Errorf("singular system at column %d", col)
		}
		a[col], a[pivot] = a[pivot], a[col]
		b[col], b[pivot] = b[pivot], b[col]

		for row := col + 1; row < d; row++ {
			factor := a[row][col] / a[col][col]
			for k := col; k < d; k++ {
				a[row][k] -= factor * a[col][k]
			}
			b[row] -= factor * b[col]
		}
	}

	w := make([]float64, d)
	for row := d - 1; row >= 0; row-- {
		sum := b[row]
		for k := row + 1; k < d; k++ {
			sum -= a[row][k] * w[k]
		}
		w[row] = sum / a[row][row]
	}
	return w, nil
}

package deal

import (
	"math"

	"github.com/rotisserie/eris"
)

// fitOLS fits a linear model with intercept by ordinary least squares,
// solving the normal equations directly. Returns the coefficient vector
// [intercept, b1..bn].
func fitOLS(features [][]float64, targets []float64) ([]float64, error) {
	if len(features) == 0 || len(features) != len(targets) {
		return nil, eris.New("deal: training data is empty or misaligned")
	}

	n := len(features[0]) + 1 // +1 for intercept

	// Build X'X and X'y in one pass. The intercept occupies column 0.
	xtx := make([][]float64, n)
	for i := range xtx {
		xtx[i] = make([]float64, n)
	}
	xty := make([]float64, n)

	row := make([]float64, n)
	for s, sample := range features {
		if len(sample) != n-1 {
			return nil, eris.Errorf("deal: sample %d has %d features, want %d", s, len(sample), n-1)
		}
		row[0] = 1
		copy(row[1:], sample)

		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				xtx[i][j] += row[i] * row[j]
			}
			xty[i] += row[i] * targets[s]
		}
	}

	return solveLinearSystem(xtx, xty)
}

// solveLinearSystem solves A x = b by Gaussian elimination with partial
// pivoting. A and b are modified in place.
func solveLinearSystem(a [][]float64, b []float64) ([]float64, error) {
	n := len(b)

	for col := 0; col < n; col++ {
		// Pivot on the largest remaining magnitude in this column.
		pivot := col
		for r := col + 1; r < n; r++ {
			if math.Abs(a[r][col]) > math.Abs(a[pivot][col]) {
				pivot = r
			}
		}
		if math.Abs(a[pivot][col]) < 1e-12 {
			return nil, eris.New("deal: singular design matrix")
		}
		a[col], a[pivot] = a[pivot], a[col]
		b[col], b[pivot] = b[pivot], b[col]

		for r := col + 1; r < n; r++ {
			factor := a[r][col] / a[col][col]
			for c := col; c < n; c++ {
				a[r][c] -= factor * a[col][c]
			}
			b[r] -= factor * b[col]
		}
	}

	// Back substitution.
	x := make([]float64, n)
	for r := n - 1; r >= 0; r-- {
		sum := b[r]
		for c := r + 1; c < n; c++ {
			sum -= a[r][c] * x[c]
		}
		x[r] = sum / a[r][r]
	}
	return x, nil
}

// predictLinear evaluates the fitted model on a feature vector.
func predictLinear(coeffs, features []float64) float64 {
	v := coeffs[0]
	for i, f := range features {
		v += coeffs[i+1] * f
	}
	return v
}

package quant

import (
	"fmt"
	"math"
)

// CorrelationMatrix computes pairwise Pearson correlations of return
// series keyed by pair symbol. Series are aligned on their most recent
// overlapping observations.
func CorrelationMatrix(returnsBySymbol map[string][]float64) (map[string]map[string]float64, error) {
	if len(returnsBySymbol) < 2 {
		return nil, fmt.Errorf("need at least 2 series, got %d", len(returnsBySymbol))
	}

	matrix := make(map[string]map[string]float64, len(returnsBySymbol))
	for a, ra := range returnsBySymbol {
		matrix[a] = make(map[string]float64, len(returnsBySymbol))
		for b, rb := range returnsBySymbol {
			if a == b {
				matrix[a][b] = 1
				continue
			}
			corr, err := Pearson(ra, rb)
			if err != nil {
				return nil, fmt.Errorf("%s vs %s: %w", a, b, err)
			}
			matrix[a][b] = corr
		}
	}
	return matrix, nil
}

// Pearson computes the correlation coefficient of two return series,
// aligned on the most recent overlapping window.
func Pearson(x, y []float64) (float64, error) {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}
	if n < 2 {
		return 0, fmt.Errorf("insufficient overlap: %d", n)
	}

	x = x[len(x)-n:]
	y = y[len(y)-n:]

	mx, my := mean(x), mean(y)
	var cov, vx, vy float64
	for i := 0; i < n; i++ {
		dx := x[i] - mx
		dy := y[i] - my
		cov += dx * dy
		vx += dx * dx
		vy += dy * dy
	}

	if vx == 0 || vy == 0 {
		return 0, fmt.Errorf("zero variance series")
	}
	return cov / math.Sqrt(vx*vy), nil
}

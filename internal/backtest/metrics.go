package backtest

import (
	"math"
)

// minCorrelationPairs is the floor below which Spearman correlation is
// reported as 0 rather than a meaningless two-point fit.
const minCorrelationPairs = 3

// spearmanCorrelation computes the Spearman rank correlation between two
// paired observation slices, using average ranks for ties. Returns 0 when
// fewer than minCorrelationPairs observations are available or either side
// is constant.
func spearmanCorrelation(a, b []float64) float64 {
	if len(a) != len(b) || len(a) < minCorrelationPairs {
		return 0
	}
	return pearson(averageRanks(a), averageRanks(b))
}

// averageRanks assigns 1-based ranks, giving tied values the mean of the
// ranks they span.
func averageRanks(values []float64) []float64 {
	n := len(values)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	// Insertion sort by value; observation counts here are field sizes,
	// never large.
	for i := 1; i < n; i++ {
		for j := i; j > 0 && values[idx[j]] < values[idx[j-1]]; j-- {
			idx[j], idx[j-1] = idx[j-1], idx[j]
		}
	}

	ranks := make([]float64, n)
	i := 0
	for i < n {
		j := i
		for j+1 < n && values[idx[j+1]] == values[idx[i]] {
			j++
		}
		avg := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			ranks[idx[k]] = avg
		}
		i = j + 1
	}
	return ranks
}

func pearson(a, b []float64) float64 {
	n := len(a)
	if n == 0 {
		return 0
	}
	meanA := mean(a)
	meanB := mean(b)
	cov, varA, varB := 0.0, 0.0, 0.0
	for i := 0; i < n; i++ {
		da := a[i] - meanA
		db := b[i] - meanB
		cov += da * db
		varA += da * da
		varB += db * db
	}
	if varA == 0 || varB == 0 {
		return 0
	}
	return cov / math.Sqrt(varA*varB)
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// overlapCount returns how many of the first k predicted entries appear in
// the first k actual entries. k is capped at the field size.
func overlapCount(predicted, actual []int64, k int) int {
	if k > len(predicted) {
		k = len(predicted)
	}
	if k > len(actual) {
		k = len(actual)
	}
	inActual := make(map[int64]struct{}, k)
	for _, id := range actual[:k] {
		inActual[id] = struct{}{}
	}
	count := 0
	for _, id := range predicted[:k] {
		if _, ok := inActual[id]; ok {
			count++
		}
	}
	return count
}

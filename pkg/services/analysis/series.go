package analysis

import (
	"math"
	"sort"

	"github.com/hoko-ai/analytics/pkg/models/domain"
)

// filled is the single coercion point between the join representation
// and the aggregation representation: invalid cells become zeros.
func filled(cells []domain.Cell) []float64 {
	out := make([]float64, len(cells))
	for i, c := range cells {
		if c.Valid {
			out[i] = c.Value
		}
	}
	return out
}

func hasValid(cells []domain.Cell) bool {
	for _, c := range cells {
		if c.Valid {
			return true
		}
	}
	return false
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var s float64
	for _, x := range xs {
		s += x
	}
	return s / float64(len(xs))
}

func sum(xs []float64) float64 {
	var s float64
	for _, x := range xs {
		s += x
	}
	return s
}

func median(xs []float64) float64 {
	return percentile(xs, 50)
}

// percentile uses linear interpolation between closest ranks.
func percentile(xs []float64, p float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := append([]float64{}, xs...)
	sort.Float64s(sorted)

	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// variance is the population variance.
func variance(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := mean(xs)
	var s float64
	for _, x := range xs {
		d := x - m
		s += d * d
	}
	return s / float64(len(xs))
}

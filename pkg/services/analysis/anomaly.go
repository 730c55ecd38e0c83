package analysis

import (
	"math"

	"github.com/hoko-ai/analytics/pkg/models/domain"
)

// Fixed design parameters of the modified z-score detector.
const (
	madScale         = 0.6745
	anomalyThreshold = 3.0
)

// Anomalies flags robust outliers per metric using the median absolute
// deviation. A zero MAD (constant series) yields no anomalies: a flat
// line is not anomalous, and it would divide by zero.
func Anomalies(t domain.Table, metrics []string) []domain.MetricObservations {
	out := make([]domain.MetricObservations, 0, len(metrics))
	for _, metric := range metrics {
		cells := t.Column(metric)
		if !hasValid(cells) {
			continue
		}
		xs := filled(cells)
		med := median(xs)

		devs := make([]float64, len(xs))
		for i, x := range xs {
			devs[i] = math.Abs(x - med)
		}
		mad := median(devs)
		if mad == 0 {
			continue
		}

		var found []domain.Observation
		for i, x := range xs {
			z := madScale * (x - med) / mad
			if math.Abs(z) >= anomalyThreshold {
				found = append(found, domain.Observation{Date: t.Dates[i], Value: x})
			}
		}
		if len(found) > 0 {
			out = append(out, domain.MetricObservations{Metric: metric, Observations: found})
		}
	}
	return out
}

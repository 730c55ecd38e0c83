package analysis

import "github.com/hoko-ai/analytics/pkg/models/domain"

// Trends reports the mean day-over-day fractional change per metric.
// Gaps are zero-filled before differencing; a transition from a zero
// baseline has no finite change and is discarded. When nothing finite
// remains (fewer than two days, or every baseline was zero) the trend
// is nil rather than a fabricated number.
func Trends(t domain.Table, metrics []string) []domain.MetricTrend {
	out := make([]domain.MetricTrend, 0, len(metrics))
	for _, metric := range metrics {
		cells := t.Column(metric)
		if !hasValid(cells) {
			continue
		}
		xs := filled(cells)

		var changes []float64
		for i := 1; i < len(xs); i++ {
			if xs[i-1] == 0 {
				continue
			}
			changes = append(changes, xs[i]/xs[i-1]-1)
		}

		trend := domain.MetricTrend{Metric: metric}
		if len(changes) > 0 {
			m := mean(changes)
			trend.DoDMean = &m
		}
		out = append(out, trend)
	}
	return out
}

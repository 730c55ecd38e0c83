package analysis

import "github.com/hoko-ai/analytics/pkg/models/domain"

// KPIs aggregates each selected metric over the zero-filled series.
// Metrics with no observed value at all are omitted.
func KPIs(t domain.Table, metrics []string) []domain.MetricKPI {
	out := make([]domain.MetricKPI, 0, len(metrics))
	for _, metric := range metrics {
		cells := t.Column(metric)
		if !hasValid(cells) {
			continue
		}
		xs := filled(cells)
		nonZero := 0
		for _, x := range xs {
			if x > 0 {
				nonZero++
			}
		}
		out = append(out, domain.MetricKPI{
			Metric: metric,
			KPI: domain.KPI{
				Mean:        mean(xs),
				Median:      median(xs),
				P95:         percentile(xs, 95),
				Sum:         sum(xs),
				NonZeroDays: nonZero,
				Days:        len(xs),
			},
		})
	}
	return out
}

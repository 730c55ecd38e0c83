package analysis

import (
	"time"

	"github.com/hoko-ai/analytics/pkg/models/domain"
)

// ComparePeriods contrasts each metric's mean over the report period
// against the immediately preceding window of equal length. The window
// length counts calendar days inclusively, never less than one day. A
// metric is reported only when both means exist and the previous mean
// is non-zero; division by zero is avoided by omission, not clamping.
// The table may hold observations before start; those feed the
// baseline window only, never the report sections.
func ComparePeriods(t domain.Table, metrics []string, start, end time.Time) []domain.MetricComparison {
	if len(t.Dates) == 0 || end.Before(start) {
		return []domain.MetricComparison{}
	}

	window := end.Sub(start) + 24*time.Hour
	prevStart := start.Add(-window)

	out := make([]domain.MetricComparison, 0, len(metrics))
	for _, metric := range metrics {
		cells := t.Column(metric)

		cur, curOK := windowMean(t.Dates, cells, start, end.Add(24*time.Hour))
		prev, prevOK := windowMean(t.Dates, cells, prevStart, start)
		if !curOK || !prevOK || prev == 0 {
			continue
		}
		out = append(out, domain.MetricComparison{
			Metric: metric,
			Comparison: domain.PeriodComparison{
				Current:  cur,
				Previous: prev,
				DeltaPct: cur/prev - 1,
			},
		})
	}
	return out
}

// windowMean averages observed values with from <= date < to. The
// second return is false when the window holds no observation.
func windowMean(dates []time.Time, cells []domain.Cell, from, to time.Time) (float64, bool) {
	var xs []float64
	for i, d := range dates {
		if d.Before(from) || !d.Before(to) {
			continue
		}
		if cells[i].Valid {
			xs = append(xs, cells[i].Value)
		}
	}
	if len(xs) == 0 {
		return 0, false
	}
	return mean(xs), true
}

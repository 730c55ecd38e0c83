package analysis

import (
	"time"

	"github.com/hoko-ai/analytics/pkg/models/domain"
)

// Weekday labels are pinned to the Go time package's English names,
// Monday first. Runtime locale resolution is deliberately avoided: it
// varies across environments and would break determinism.
var weekdayOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// Segments groups each metric's observed values by weekday and reports
// mean, sum and median per weekday. Only weekdays with at least one
// observation appear; join gaps do not count as zero-activity days.
func Segments(t domain.Table, metrics []string) []domain.MetricSegments {
	out := make([]domain.MetricSegments, 0, len(metrics))
	for _, metric := range metrics {
		cells := t.Column(metric)
		if !hasValid(cells) {
			continue
		}

		byDay := map[time.Weekday][]float64{}
		for i, c := range cells {
			if c.Valid {
				wd := t.Dates[i].Weekday()
				byDay[wd] = append(byDay[wd], c.Value)
			}
		}

		stats := make([]domain.WeekdayStat, 0, len(byDay))
		for _, wd := range weekdayOrder {
			xs, ok := byDay[wd]
			if !ok {
				continue
			}
			stats = append(stats, domain.WeekdayStat{
				Weekday: wd.String(),
				Mean:    mean(xs),
				Sum:     sum(xs),
				Median:  median(xs),
			})
		}
		out = append(out, domain.MetricSegments{Metric: metric, Weekdays: stats})
	}
	return out
}

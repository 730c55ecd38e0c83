package analysis

import (
	"sort"

	"github.com/hoko-ai/analytics/pkg/models/domain"
)

const highlightCount = 3

// Highlights picks each metric's three largest observed values. Ties
// break toward the later date so repeated peaks resolve the same way
// on every run. Metrics with no observed value are skipped.
func Highlights(t domain.Table, metrics []string) []domain.MetricObservations {
	out := make([]domain.MetricObservations, 0, len(metrics))
	for _, metric := range metrics {
		cells := t.Column(metric)

		var obs []domain.Observation
		for i, c := range cells {
			if c.Valid {
				obs = append(obs, domain.Observation{Date: t.Dates[i], Value: c.Value})
			}
		}
		if len(obs) == 0 {
			continue
		}

		sort.Slice(obs, func(i, j int) bool {
			if obs[i].Value != obs[j].Value {
				return obs[i].Value > obs[j].Value
			}
			return obs[i].Date.After(obs[j].Date)
		})
		if len(obs) > highlightCount {
			obs = obs[:highlightCount]
		}
		out = append(out, domain.MetricObservations{Metric: metric, Observations: obs})
	}
	return out
}

package analysis

import "github.com/hoko-ai/analytics/pkg/models/domain"

// Minimum observation count for a metric's variance to be considered.
const varianceMinDays = 3

// VarianceHint classifies how spread out the report's metrics are,
// from the interquartile spread of the per-metric variances. The
// narrative layer uses it to suppress anomaly-flavored templates on
// flat data. A spread of exactly zero classifies as "baixa": variances
// that all agree describe a dataset with one uniform level of noise,
// which is the flat case the hint exists to catch.
func VarianceHint(t domain.Table, metrics []string) string {
	var variances []float64
	for _, metric := range metrics {
		cells := t.Column(metric)
		if len(cells) <= varianceMinDays || !hasValid(cells) {
			continue
		}
		variances = append(variances, variance(filled(cells)))
	}
	if len(variances) == 0 {
		return domain.VarianceLow
	}

	spread := percentile(variances, 75) - percentile(variances, 25)
	if spread == 0 {
		return domain.VarianceLow
	}

	med := median(variances)
	if med <= 0 {
		return domain.VarianceHigh
	}
	switch rel := spread / med; {
	case rel < 0.5:
		return domain.VarianceLow
	case rel < 1.5:
		return domain.VarianceMedium
	default:
		return domain.VarianceHigh
	}
}

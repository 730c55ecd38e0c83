package analysis

import (
	"github.com/hoko-ai/analytics/pkg/models/domain"
	"github.com/samber/lo"
)

// Canonical metric bases worth summarizing, in priority order. The
// selection walks base-major, platform-minor: every platform's "reach"
// comes before any platform's "views".
var preferredBases = []string{
	"reach",
	"views",
	"impressions",
	"followers",
	"traffic_direct",
	"traffic_organic_search",
	"traffic_organic_social",
	"search_volume",
}

// SelectMetrics picks the merged-table columns to summarize. When no
// preferred base is present it falls back to every non-date column in
// table order, so the selection is only empty for a column-less table.
func SelectMetrics(t domain.Table, platforms []string) []string {
	selected := make([]string, 0, len(preferredBases))
	for _, base := range preferredBases {
		for _, platform := range platforms {
			name := platform + "_" + base
			if _, ok := t.Values[name]; ok {
				selected = append(selected, name)
			}
		}
	}
	if len(selected) == 0 {
		selected = append(selected, t.Columns...)
	}
	return lo.Uniq(selected)
}

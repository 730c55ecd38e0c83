package adapters

import (
	"github.com/hoko-ai/analytics/pkg/models/domain"
	"github.com/hoko-ai/analytics/pkg/models/store"
)

// RawTable lifts scanned warehouse rows into the domain model the
// pipeline consumes.
func RawTable(platform string, rows []store.MetricRow) domain.RawTable {
	out := domain.RawTable{
		Platform: platform,
		Rows:     make([]domain.RawRow, 0, len(rows)),
	}
	for _, row := range rows {
		out.Rows = append(out.Rows, domain.RawRow(row))
	}
	return out
}

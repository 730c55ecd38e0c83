package analysis

import (
	"sort"
	"time"

	"github.com/hoko-ai/analytics/pkg/models/domain"
)

// Layouts that carry a UTC offset. Values parsed from these are
// converted into the configured location before truncation.
var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05Z07:00",
}

// Bare layouts have no offset. A pure calendar date must never be
// shifted across a day boundary by timezone conversion, so these are
// truncated as-is.
var bareLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
}

// AlignDates canonicalizes a table's date column to day granularity in
// the given location and sorts rows ascending. Rows whose date cannot
// be parsed are dropped; duplicate dates keep the last row.
func AlignDates(t domain.CanonicalTable, loc *time.Location) domain.Table {
	byDate := make(map[time.Time]map[string]float64, len(t.Rows))
	for _, row := range t.Rows {
		day, ok := parseDay(row.Date, loc)
		if !ok {
			continue
		}
		byDate[day] = row.Metrics
	}

	dates := make([]time.Time, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	out := domain.Table{
		Dates:   dates,
		Columns: append([]string{}, t.Columns...),
		Values:  make(map[string][]domain.Cell, len(t.Columns)),
	}
	for _, col := range out.Columns {
		cells := make([]domain.Cell, len(dates))
		for i, d := range dates {
			if v, ok := byDate[d][col]; ok {
				cells[i] = domain.Cell{Value: v, Valid: true}
			}
		}
		out.Values[col] = cells
	}
	return out
}

// parseDay reduces a raw date value to a timezone-naive calendar day,
// modeled as midnight UTC.
func parseDay(v any, loc *time.Location) (time.Time, bool) {
	switch d := v.(type) {
	case time.Time:
		if d.IsZero() {
			return time.Time{}, false
		}
		return truncate(d.In(loc)), true
	case string:
		for _, layout := range zonedLayouts {
			if tt, err := time.Parse(layout, d); err == nil {
				return truncate(tt.In(loc)), true
			}
		}
		for _, layout := range bareLayouts {
			if tt, err := time.Parse(layout, d); err == nil {
				return truncate(tt), true
			}
		}
		return time.Time{}, false
	case []byte:
		return parseDay(string(d), loc)
	default:
		return time.Time{}, false
	}
}

func truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

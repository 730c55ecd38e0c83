package analysis

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/hoko-ai/analytics/pkg/models/domain"
)

// Raw date column names seen across platform exports. The first match
// wins; the canonical key itself is checked first.
var dateAliases = []string{domain.DateKey, "date", "dia", "day", "dt", "data_referencia", "timestamp"}

// Normalize renames a raw platform table into canonical form: the date
// field moves under domain.DateKey, identifier fields are dropped,
// metric fields are mapped through the platform schema and prefixed
// with "{platform}_". No numeric transformation happens here.
//
// Column order is deterministic: names sort within a row and keep
// first-appearance order across rows.
//
// An empty table passes through as an empty canonical table.
func Normalize(raw domain.RawTable, schema domain.PlatformSchema, identifiers map[string]struct{}) domain.CanonicalTable {
	out := domain.CanonicalTable{
		Platform: raw.Platform,
		Columns:  []string{},
		Rows:     make([]domain.CanonicalRow, 0, len(raw.Rows)),
	}
	seen := map[string]struct{}{}

	for _, row := range raw.Rows {
		dateVal, dateField := findDate(row)
		metrics := make(map[string]float64, len(row))
		for field, value := range row {
			if field == dateField {
				continue
			}
			if _, drop := identifiers[field]; drop {
				continue
			}
			num, ok := toFloat(value)
			if !ok {
				continue
			}
			metrics[canonicalName(raw.Platform, field, schema)] = num
		}
		names := make([]string, 0, len(metrics))
		for name := range metrics {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if _, dup := seen[name]; !dup {
				seen[name] = struct{}{}
				out.Columns = append(out.Columns, name)
			}
		}
		out.Rows = append(out.Rows, domain.CanonicalRow{Date: dateVal, Metrics: metrics})
	}
	return out
}

// canonicalName maps a raw field through the schema and prefixes it
// with the platform unless it already carries the prefix.
func canonicalName(platform, field string, schema domain.PlatformSchema) string {
	if base, ok := schema.Fields[field]; ok {
		field = base
	}
	if strings.HasPrefix(field, platform+"_") {
		return field
	}
	return platform + "_" + field
}

func findDate(row domain.RawRow) (any, string) {
	for _, alias := range dateAliases {
		if v, ok := row[alias]; ok {
			return v, alias
		}
	}
	return nil, ""
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case []byte:
		f, err := strconv.ParseFloat(string(n), 64)
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	case time.Time:
		return 0, false
	default:
		return 0, false
	}
}

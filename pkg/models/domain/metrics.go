package domain

import "time"

// DateKey is the canonical name of the date column shared by every
// platform table after normalization.
const DateKey = "data"

// RawRow is a single warehouse row in the platform's own vocabulary.
// Values are whatever the loader scanned: strings, time.Time, numerics.
type RawRow map[string]any

// RawTable is the per-platform daily export as loaded from the
// warehouse. Read-only to the pipeline.
type RawTable struct {
	Platform string
	Rows     []RawRow
}

// PlatformSchema maps a platform's raw field names onto canonical
// metric bases (e.g. "alcance" -> "reach"). Table names the warehouse
// relation the loader reads from.
type PlatformSchema struct {
	Platform string            `mapstructure:"platform"`
	Table    string            `mapstructure:"table"`
	Fields   map[string]string `mapstructure:"fields"`
}

// CanonicalRow pairs a not-yet-aligned date value with the
// platform-prefixed metrics of one observation day.
type CanonicalRow struct {
	Date    any
	Metrics map[string]float64
}

// CanonicalTable is a RawTable after schema normalization: metric
// columns renamed to "{platform}_{base}", identifier fields dropped,
// dates still in their raw representation.
type CanonicalTable struct {
	Platform string
	Columns  []string
	Rows     []CanonicalRow
}

// Cell distinguishes a day a platform did not report (Valid false,
// produced by the outer join) from a true zero. Aggregation passes
// decide when a gap counts as zero; the join itself never does.
type Cell struct {
	Value float64
	Valid bool
}

// Table is a day-granular metric table: Dates strictly ascending and
// unique, one Cell per date for every column.
type Table struct {
	Dates   []time.Time
	Columns []string
	Values  map[string][]Cell
}

// NewTable returns an empty table with no columns and no rows.
func NewTable() Table {
	return Table{
		Dates:   []time.Time{},
		Columns: []string{},
		Values:  map[string][]Cell{},
	}
}

// Column returns the cell series for a column, or nil if absent.
func (t Table) Column(name string) []Cell {
	return t.Values[name]
}

// AnalysisRequest identifies one summarization run. Platforms order is
// meaningful: it drives metric selection priority.
type AnalysisRequest struct {
	ClientID  string
	Platforms []string
	From      *time.Time
	To        *time.Time
}

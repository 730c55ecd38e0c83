package domain

import "time"

// KPI holds the per-metric aggregates. Gaps are zero-filled before
// aggregation: a non-reported day counts as zero activity here.
type KPI struct {
	Mean        float64
	Median      float64
	P95         float64
	Sum         float64
	NonZeroDays int
	Days        int
}

// Observation is a dated value, used for anomalies and highlights.
type Observation struct {
	Date  time.Time
	Value float64
}

// WeekdayStat aggregates a metric over one weekday across the period.
type WeekdayStat struct {
	Weekday string
	Mean    float64
	Sum     float64
	Median  float64
}

// PeriodComparison contrasts the current window mean against the
// immediately preceding window of equal length.
type PeriodComparison struct {
	Current  float64
	Previous float64
	DeltaPct float64
}

// Period is the report's date bounds; nil on an empty dataset.
type Period struct {
	Start *time.Time
	End   *time.Time
}

// Variance hints consumed by the narrative layer to suppress
// anomaly-flavored templates on effectively flat data.
const (
	VarianceLow    = "baixa"
	VarianceMedium = "media"
	VarianceHigh   = "alta"
)

type Meta struct {
	Platforms       []string
	Columns         []string
	SelectedMetrics []string
	VarianceHint    string
}

// Metric-keyed sections keep selection order so that two runs over the
// same input marshal identically.
type MetricKPI struct {
	Metric string
	KPI    KPI
}

type MetricObservations struct {
	Metric       string
	Observations []Observation
}

type MetricTrend struct {
	Metric  string
	DoDMean *float64 // nil when no finite day-over-day change exists
}

type MetricSegments struct {
	Metric   string
	Weekdays []WeekdayStat
}

type MetricComparison struct {
	Metric     string
	Comparison PeriodComparison
}

// Summary is the immutable output of one pipeline run. It is the sole
// factual substrate handed to the narrative layer.
type Summary struct {
	Period        Period
	KPIs          []MetricKPI
	Anomalies     []MetricObservations
	Trends        []MetricTrend
	Segments      []MetricSegments
	Highlights    []MetricObservations
	PeriodCompare []MetricComparison
	Meta          Meta
}

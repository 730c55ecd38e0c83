package api

// AnalyzeRequest is the POST /analyzes body. Dates use YYYY-MM-DD.
type AnalyzeRequest struct {
	ClientID  string   `json:"client_id"`
	Platforms []string `json:"platforms"`
	StartDate string   `json:"start_date,omitempty"`
	EndDate   string   `json:"end_date,omitempty"`
}

type Period struct {
	Start *string `json:"start"`
	End   *string `json:"end"`
}

type KPI struct {
	Mean        float64 `json:"mean"`
	Median      float64 `json:"median"`
	P95         float64 `json:"p95"`
	Sum         float64 `json:"sum"`
	NonZeroDays int     `json:"non_zero_days"`
	Days        int     `json:"days"`
}

type Observation struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

type WeekdayStat struct {
	Weekday string  `json:"weekday"`
	Mean    float64 `json:"mean"`
	Sum     float64 `json:"sum"`
	Median  float64 `json:"median"`
}

type PeriodComparison struct {
	Current  float64 `json:"cur"`
	Previous float64 `json:"prev"`
	DeltaPct float64 `json:"delta_pct"`
}

type Meta struct {
	Platforms       []string `json:"platforms"`
	Columns         []string `json:"columns"`
	SelectedMetrics []string `json:"selected_metrics"`
	VarianceHint    string   `json:"variance_hint"`
}

// Summary is the report handed to the narrative layer. Map keys follow
// the agreed contract: trends are keyed "<metric>_dod_mean", segments
// "<metric>_by_weekday". encoding/json emits map keys sorted, so two
// runs over identical input produce byte-identical documents.
type Summary struct {
	Period        Period                      `json:"period"`
	KPIs          map[string]KPI              `json:"kpis"`
	Anomalies     map[string][]Observation    `json:"anomalies"`
	Trends        map[string]*float64         `json:"trends"`
	Segments      map[string][]WeekdayStat    `json:"segments"`
	Highlights    map[string][]Observation    `json:"highlights"`
	PeriodCompare map[string]PeriodComparison `json:"period_compare,omitempty"`
	Meta          Meta                        `json:"meta"`
}

// Platform is the GET /platforms list element.
type Platform struct {
	Name string `json:"name"`
}

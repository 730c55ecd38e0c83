package adapters

import (
	"time"

	"github.com/hoko-ai/analytics/pkg/models/api"
	"github.com/hoko-ai/analytics/pkg/models/domain"
)

const dateLayout = "2006-01-02"

// Summary maps the domain report onto the wire contract: metric-keyed
// maps, trend keys suffixed "_dod_mean", segment keys "_by_weekday",
// dates rendered as calendar days.
func Summary(s domain.Summary) api.Summary {
	out := api.Summary{
		Period:     period(s.Period),
		KPIs:       map[string]api.KPI{},
		Anomalies:  map[string][]api.Observation{},
		Trends:     map[string]*float64{},
		Segments:   map[string][]api.WeekdayStat{},
		Highlights: map[string][]api.Observation{},
		Meta: api.Meta{
			Platforms:       s.Meta.Platforms,
			Columns:         s.Meta.Columns,
			SelectedMetrics: s.Meta.SelectedMetrics,
			VarianceHint:    s.Meta.VarianceHint,
		},
	}

	for _, k := range s.KPIs {
		out.KPIs[k.Metric] = api.KPI{
			Mean:        k.KPI.Mean,
			Median:      k.KPI.Median,
			P95:         k.KPI.P95,
			Sum:         k.KPI.Sum,
			NonZeroDays: k.KPI.NonZeroDays,
			Days:        k.KPI.Days,
		}
	}
	for _, a := range s.Anomalies {
		out.Anomalies[a.Metric] = observations(a.Observations)
	}
	for _, t := range s.Trends {
		out.Trends[t.Metric+"_dod_mean"] = t.DoDMean
	}
	for _, seg := range s.Segments {
		stats := make([]api.WeekdayStat, 0, len(seg.Weekdays))
		for _, w := range seg.Weekdays {
			stats = append(stats, api.WeekdayStat{
				Weekday: w.Weekday,
				Mean:    w.Mean,
				Sum:     w.Sum,
				Median:  w.Median,
			})
		}
		out.Segments[seg.Metric+"_by_weekday"] = stats
	}
	for _, h := range s.Highlights {
		out.Highlights[h.Metric] = observations(h.Observations)
	}
	if len(s.PeriodCompare) > 0 {
		out.PeriodCompare = map[string]api.PeriodComparison{}
		for _, c := range s.PeriodCompare {
			out.PeriodCompare[c.Metric] = api.PeriodComparison{
				Current:  c.Comparison.Current,
				Previous: c.Comparison.Previous,
				DeltaPct: c.Comparison.DeltaPct,
			}
		}
	}
	return out
}

func period(p domain.Period) api.Period {
	return api.Period{Start: day(p.Start), End: day(p.End)}
}

func day(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

func observations(obs []domain.Observation) []api.Observation {
	out := make([]api.Observation, 0, len(obs))
	for _, o := range obs {
		out = append(out, api.Observation{Date: o.Date.Format(dateLayout), Value: o.Value})
	}
	return out
}

package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/hoko-ai/analytics/pkg/models/domain"
	"github.com/hoko-ai/analytics/pkg/services/registry"
	"github.com/rs/zerolog"
)

// Loader is the data-loading collaborator: it materializes one
// platform's raw daily table for a client, with an optional date
// filter already applied.
type Loader interface {
	GetClientData(ctx context.Context, clientID, platform string, from, to *time.Time) (domain.RawTable, error)
}

// Analyzer runs the full pipeline: normalize each platform table,
// align dates, merge, select metrics, then the statistical passes.
// It holds no per-request state beyond the injected cache.
type Analyzer struct {
	registry registry.Registry
	loader   Loader
	cache    Cache
	loc      *time.Location
}

func NewAnalyzer(reg registry.Registry, loader Loader, cache Cache, loc *time.Location) *Analyzer {
	if loc == nil {
		loc = time.UTC
	}
	if cache == nil {
		cache = NewNoopCache()
	}
	return &Analyzer{registry: reg, loader: loader, cache: cache, loc: loc}
}

// Run produces the summary report for one analysis request. Empty or
// partially empty inputs degrade to empty report sections; the only
// errors surfaced are unknown platforms and loader failures.
func (a *Analyzer) Run(ctx context.Context, req domain.AnalysisRequest) (domain.Summary, error) {
	logger := zerolog.Ctx(ctx)

	key := cacheKey(req)
	if cached, ok := a.cache.Get(key); ok {
		logger.Debug().Str("key", key).Msg("summary served from cache")
		return cached, nil
	}

	tables := make([]domain.Table, 0, len(req.Platforms))
	for _, platform := range req.Platforms {
		schema, err := a.registry.Schema(platform)
		if err != nil {
			return domain.Summary{}, err
		}

		raw, err := a.loader.GetClientData(ctx, req.ClientID, platform, loadFrom(req), req.To)
		if err != nil {
			return domain.Summary{}, fmt.Errorf("failed to load %s data for client %s: %w", platform, req.ClientID, err)
		}

		canonical := Normalize(raw, schema, a.registry.IdentifierFields())
		tables = append(tables, AlignDates(canonical, a.loc))
	}

	full := Merge(tables)
	report := Clip(full, req.From, req.To)
	metrics := SelectMetrics(report, req.Platforms)

	logger.Debug().
		Int("rows", len(report.Dates)).
		Int("columns", len(report.Columns)).
		Int("selected", len(metrics)).
		Msg("merged table assembled")

	summary := domain.Summary{
		Period:     periodOf(report),
		KPIs:       KPIs(report, metrics),
		Anomalies:  Anomalies(report, metrics),
		Trends:     Trends(report, metrics),
		Segments:   Segments(report, metrics),
		Highlights: Highlights(report, metrics),
		Meta: domain.Meta{
			Platforms:       append([]string{}, req.Platforms...),
			Columns:         append([]string{}, report.Columns...),
			SelectedMetrics: metrics,
			VarianceHint:    VarianceHint(report, metrics),
		},
	}
	if len(report.Dates) > 0 {
		start := report.Dates[0]
		end := report.Dates[len(report.Dates)-1]
		summary.PeriodCompare = ComparePeriods(full, metrics, start, end)
	} else {
		summary.PeriodCompare = []domain.MetricComparison{}
	}

	a.cache.Put(key, summary)
	return summary, nil
}

// loadFrom extends the requested lower bound by one window length when
// both bounds are set, so the period comparator has a baseline to read.
// The extra rows are clipped out of the report sections.
func loadFrom(req domain.AnalysisRequest) *time.Time {
	if req.From == nil || req.To == nil {
		return req.From
	}
	window := req.To.Sub(*req.From) + 24*time.Hour
	extended := req.From.Add(-window)
	return &extended
}

func periodOf(t domain.Table) domain.Period {
	if len(t.Dates) == 0 {
		return domain.Period{}
	}
	start := t.Dates[0]
	end := t.Dates[len(t.Dates)-1]
	return domain.Period{Start: &start, End: &end}
}

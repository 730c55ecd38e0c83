package analysis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/hoko-ai/analytics/pkg/adapters"
	"github.com/hoko-ai/analytics/pkg/models/domain"
	"github.com/hoko-ai/analytics/pkg/services/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockLoader struct {
	mock.Mock
}

func (m *mockLoader) GetClientData(
	ctx context.Context,
	clientID, platform string,
	from, to *time.Time,
) (domain.RawTable, error) {
	args := m.Called(ctx, clientID, platform, from, to)
	return args.Get(0).(domain.RawTable), args.Error(1)
}

func testRegistry(t *testing.T) registry.Registry {
	t.Helper()
	reg, err := registry.New([]domain.PlatformSchema{
		{
			Platform: "instagram",
			Table:    "instagram_metrics",
			Fields:   map[string]string{"alcance": "reach", "visualizacoes": "views"},
		},
		{
			Platform: "facebook",
			Table:    "facebook_metrics",
			Fields:   map[string]string{"alcance": "reach"},
		},
	})
	require.NoError(t, err)
	return reg
}

func rawRows(platform string, days map[string]float64) domain.RawTable {
	table := domain.RawTable{Platform: platform}
	for date, v := range days {
		table.Rows = append(table.Rows, domain.RawRow{"data": date, "alcance": v})
	}
	return table
}

func TestAnalyzer_EmptyRequestYieldsEmptyReport(t *testing.T) {
	analyzer := NewAnalyzer(testRegistry(t), new(mockLoader), NewMemoryCache(), time.UTC)

	summary, err := analyzer.Run(context.Background(), domain.AnalysisRequest{ClientID: "c1"})

	require.NoError(t, err)
	assert.Nil(t, summary.Period.Start)
	assert.Nil(t, summary.Period.End)
	assert.Empty(t, summary.KPIs)
	assert.Empty(t, summary.Anomalies)
	assert.Empty(t, summary.Trends)
	assert.Empty(t, summary.Segments)
	assert.Empty(t, summary.Highlights)
	assert.Empty(t, summary.PeriodCompare)
	assert.Equal(t, domain.VarianceLow, summary.Meta.VarianceHint)
}

func TestAnalyzer_UnknownPlatform(t *testing.T) {
	analyzer := NewAnalyzer(testRegistry(t), new(mockLoader), NewMemoryCache(), time.UTC)

	_, err := analyzer.Run(context.Background(), domain.AnalysisRequest{
		ClientID:  "c1",
		Platforms: []string{"tiktok"},
	})

	assert.ErrorIs(t, err, registry.ErrUnknownPlatform)
}

func TestAnalyzer_MergesPlatformsAndSummarizes(t *testing.T) {
	loader := new(mockLoader)
	loader.On("GetClientData", mock.Anything, "c1", "instagram", (*time.Time)(nil), (*time.Time)(nil)).
		Return(rawRows("instagram", map[string]float64{
			"2024-01-01": 100, "2024-01-02": 110, "2024-01-03": 121,
		}), nil)
	loader.On("GetClientData", mock.Anything, "c1", "facebook", (*time.Time)(nil), (*time.Time)(nil)).
		Return(rawRows("facebook", map[string]float64{
			"2024-01-02": 50, "2024-01-04": 60,
		}), nil)

	analyzer := NewAnalyzer(testRegistry(t), loader, NewMemoryCache(), time.UTC)
	summary, err := analyzer.Run(context.Background(), domain.AnalysisRequest{
		ClientID:  "c1",
		Platforms: []string{"instagram", "facebook"},
	})

	require.NoError(t, err)
	require.NotNil(t, summary.Period.Start)
	require.NotNil(t, summary.Period.End)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *summary.Period.Start)
	assert.Equal(t, time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC), *summary.Period.End)

	assert.Equal(t, []string{"instagram_reach", "facebook_reach"}, summary.Meta.SelectedMetrics)
	require.Len(t, summary.KPIs, 2)
	// Four merged days; instagram has no observation on the 4th.
	assert.Equal(t, 4, summary.KPIs[0].KPI.Days)
	assert.Equal(t, 3, summary.KPIs[0].KPI.NonZeroDays)

	loader.AssertExpectations(t)
}

func TestAnalyzer_IdempotentByteIdenticalReports(t *testing.T) {
	rows := domain.RawTable{Platform: "instagram", Rows: []domain.RawRow{
		{"data": "2024-01-01", "alcance": 5.0, "visualizacoes": 50.0, "curtidas": 2.0, "comentarios": 7.0},
		{"data": "2024-01-02", "alcance": 9.0, "visualizacoes": 40.0, "curtidas": 1.0, "comentarios": 3.0},
		{"data": "2024-01-03", "alcance": 3.0, "visualizacoes": 60.0, "curtidas": 4.0, "comentarios": 9.0},
		{"data": "2024-01-04", "alcance": 9.0, "visualizacoes": 30.0, "curtidas": 6.0, "comentarios": 5.0},
	}}
	newLoader := func() *mockLoader {
		loader := new(mockLoader)
		loader.On("GetClientData", mock.Anything, "c1", "instagram", (*time.Time)(nil), (*time.Time)(nil)).
			Return(rows, nil)
		return loader
	}
	req := domain.AnalysisRequest{ClientID: "c1", Platforms: []string{"instagram"}}

	var payloads [][]byte
	var columns [][]string
	for i := 0; i < 10; i++ {
		analyzer := NewAnalyzer(testRegistry(t), newLoader(), NewNoopCache(), time.UTC)
		summary, err := analyzer.Run(context.Background(), req)
		require.NoError(t, err)

		raw, err := json.Marshal(adapters.Summary(summary))
		require.NoError(t, err)
		payloads = append(payloads, raw)
		columns = append(columns, summary.Meta.Columns)
	}

	for i := 1; i < len(payloads); i++ {
		assert.Equal(t, payloads[0], payloads[i])
		assert.Equal(t, columns[0], columns[i])
	}
	assert.Equal(t, []string{
		"instagram_comentarios", "instagram_curtidas", "instagram_reach", "instagram_views",
	}, columns[0])
}

func TestAnalyzer_CacheShortCircuitsSecondRun(t *testing.T) {
	loader := new(mockLoader)
	loader.On("GetClientData", mock.Anything, "c1", "instagram", (*time.Time)(nil), (*time.Time)(nil)).
		Return(rawRows("instagram", map[string]float64{"2024-01-01": 5}), nil).
		Once()

	analyzer := NewAnalyzer(testRegistry(t), loader, NewMemoryCache(), time.UTC)
	req := domain.AnalysisRequest{ClientID: "c1", Platforms: []string{"instagram"}}

	first, err := analyzer.Run(context.Background(), req)
	require.NoError(t, err)
	second, err := analyzer.Run(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	loader.AssertExpectations(t)
}

func TestAnalyzer_ExtendsLoadWindowForBaseline(t *testing.T) {
	from := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	expectedFrom := time.Date(2024, 1, 22, 0, 0, 0, 0, time.UTC)

	loader := new(mockLoader)
	loader.On("GetClientData", mock.Anything, "c1", "instagram", &expectedFrom, &to).
		Return(domain.RawTable{Platform: "instagram"}, nil)

	analyzer := NewAnalyzer(testRegistry(t), loader, NewNoopCache(), time.UTC)
	_, err := analyzer.Run(context.Background(), domain.AnalysisRequest{
		ClientID:  "c1",
		Platforms: []string{"instagram"},
		From:      &from,
		To:        &to,
	})

	require.NoError(t, err)
	loader.AssertExpectations(t)
}

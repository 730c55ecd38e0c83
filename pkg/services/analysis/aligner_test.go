package analysis

import (
	"testing"
	"time"

	"github.com/hoko-ai/analytics/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func saoPaulo(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	return loc
}

func canonical(rows ...domain.CanonicalRow) domain.CanonicalTable {
	return domain.CanonicalTable{
		Platform: "instagram",
		Columns:  []string{"instagram_reach"},
		Rows:     rows,
	}
}

func TestAlignDates_ZonedTimestampConvertedToLocal(t *testing.T) {
	// 2024-03-10T01:00:00Z is still 2024-03-09 in Sao Paulo (UTC-3).
	got := AlignDates(canonical(
		domain.CanonicalRow{Date: "2024-03-10T01:00:00Z", Metrics: map[string]float64{"instagram_reach": 5}},
	), saoPaulo(t))

	require.Len(t, got.Dates, 1)
	assert.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), got.Dates[0])
}

func TestAlignDates_BareDateNeverShifted(t *testing.T) {
	tests := []string{"2024-03-10", "2024-03-10T01:00:00", "10/03/2024"}
	for _, raw := range tests {
		t.Run(raw, func(t *testing.T) {
			got := AlignDates(canonical(
				domain.CanonicalRow{Date: raw, Metrics: map[string]float64{"instagram_reach": 5}},
			), saoPaulo(t))

			require.Len(t, got.Dates, 1)
			assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), got.Dates[0])
		})
	}
}

func TestAlignDates_SortsAscendingAndDropsUnparseable(t *testing.T) {
	got := AlignDates(canonical(
		domain.CanonicalRow{Date: "2024-01-03", Metrics: map[string]float64{"instagram_reach": 3}},
		domain.CanonicalRow{Date: "not-a-date", Metrics: map[string]float64{"instagram_reach": 99}},
		domain.CanonicalRow{Date: "2024-01-01", Metrics: map[string]float64{"instagram_reach": 1}},
		domain.CanonicalRow{Date: "2024-01-02", Metrics: map[string]float64{"instagram_reach": 2}},
	), time.UTC)

	require.Len(t, got.Dates, 3)
	assert.True(t, got.Dates[0].Before(got.Dates[1]))
	assert.True(t, got.Dates[1].Before(got.Dates[2]))
	assert.Equal(t, []domain.Cell{
		{Value: 1, Valid: true},
		{Value: 2, Valid: true},
		{Value: 3, Valid: true},
	}, got.Values["instagram_reach"])
}

func TestAlignDates_DuplicateDayKeepsLastRow(t *testing.T) {
	got := AlignDates(canonical(
		domain.CanonicalRow{Date: "2024-01-01", Metrics: map[string]float64{"instagram_reach": 1}},
		domain.CanonicalRow{Date: "2024-01-01", Metrics: map[string]float64{"instagram_reach": 7}},
	), time.UTC)

	require.Len(t, got.Dates, 1)
	assert.Equal(t, domain.Cell{Value: 7, Valid: true}, got.Values["instagram_reach"][0])
}

func TestAlignDates_Deterministic(t *testing.T) {
	table := canonical(
		domain.CanonicalRow{Date: "2024-01-02", Metrics: map[string]float64{"instagram_reach": 2}},
		domain.CanonicalRow{Date: "2024-01-01", Metrics: map[string]float64{"instagram_reach": 1}},
	)
	first := AlignDates(table, time.UTC)
	second := AlignDates(table, time.UTC)
	assert.Equal(t, first, second)
}

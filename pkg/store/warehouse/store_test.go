package warehouse

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/hoko-ai/analytics/pkg/models/domain"
	"github.com/hoko-ai/analytics/pkg/services/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegistry(t *testing.T) registry.Registry {
	t.Helper()
	reg, err := registry.New([]domain.PlatformSchema{
		{
			Platform: "instagram",
			Table:    "instagram_metrics",
			Fields:   map[string]string{"alcance": "reach"},
		},
	})
	require.NoError(t, err)
	return reg
}

func TestGetClientData_ScansRawRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"data", "alcance", "client_id"}).
		AddRow(day, 120.5, "c1").
		AddRow(day.AddDate(0, 0, 1), 130.0, "c1")

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT * FROM instagram_metrics WHERE client_id = $1 ORDER BY data",
	)).WithArgs("c1").WillReturnRows(rows)

	store, err := NewStore(db, testRegistry(t), "postgres")
	require.NoError(t, err)

	got, err := store.GetClientData(context.Background(), "c1", "instagram", nil, nil)

	require.NoError(t, err)
	assert.Equal(t, "instagram", got.Platform)
	require.Len(t, got.Rows, 2)
	assert.Equal(t, day, got.Rows[0]["data"])
	assert.Equal(t, 120.5, got.Rows[0]["alcance"])
	assert.Equal(t, "c1", got.Rows[0]["client_id"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetClientData_DateFilter(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT * FROM instagram_metrics WHERE client_id = $1 AND data >= $2 AND data <= $3 ORDER BY data",
	)).WithArgs("c1", from, to).
		WillReturnRows(sqlmock.NewRows([]string{"data", "alcance"}))

	store, err := NewStore(db, testRegistry(t), "postgres")
	require.NoError(t, err)

	got, err := store.GetClientData(context.Background(), "c1", "instagram", &from, &to)

	require.NoError(t, err)
	assert.Empty(t, got.Rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetClientData_UnknownPlatform(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store, err := NewStore(db, testRegistry(t), "postgres")
	require.NoError(t, err)

	_, err = store.GetClientData(context.Background(), "c1", "tiktok", nil, nil)
	assert.ErrorIs(t, err, registry.ErrUnknownPlatform)
}

func TestGetClientData_ByteColumnsBecomeStrings(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"data", "alcance"}).
		AddRow([]byte("2024-01-01"), []byte("120.5"))

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT * FROM instagram_metrics WHERE client_id = $1 ORDER BY data",
	)).WithArgs("c1").WillReturnRows(rows)

	store, err := NewStore(db, testRegistry(t), "postgres")
	require.NoError(t, err)

	got, err := store.GetClientData(context.Background(), "c1", "instagram", nil, nil)

	require.NoError(t, err)
	require.Len(t, got.Rows, 1)
	assert.Equal(t, "2024-01-01", got.Rows[0]["data"])
	assert.Equal(t, "120.5", got.Rows[0]["alcance"])
}

func TestNewStore_NilDB(t *testing.T) {
	_, err := NewStore(nil, testRegistry(t), "postgres")
	assert.Error(t, err)
}

package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/hoko-ai/analytics/pkg/adapters"
	"github.com/hoko-ai/analytics/pkg/models/domain"
	"github.com/hoko-ai/analytics/pkg/models/store"
	"github.com/hoko-ai/analytics/pkg/services/registry"
	"github.com/rs/zerolog"
)

// Store reads per-platform daily metric tables from the warehouse. It
// implements the analysis.Loader contract.
type Store struct {
	db       *sql.DB
	registry registry.Registry
	driver   string
}

func NewStore(db *sql.DB, reg registry.Registry, driver string) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &Store{db: db, registry: reg, driver: driver}, nil
}

// GetClientData loads one platform's raw table for a client, columns
// untouched, with an optional inclusive date filter.
func (s *Store) GetClientData(
	ctx context.Context,
	clientID, platform string,
	from, to *time.Time,
) (domain.RawTable, error) {
	logger := zerolog.Ctx(ctx)

	schema, err := s.registry.Schema(platform)
	if err != nil {
		return domain.RawTable{}, err
	}

	query, args := s.buildQuery(schema.Table, clientID, from, to)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return domain.RawTable{}, fmt.Errorf("%s metrics query failed: %w", platform, err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close metrics query rows")
		}
	}()

	scanned, err := scanRows(rows)
	if err != nil {
		return domain.RawTable{}, fmt.Errorf("%s metrics scan failed: %w", platform, err)
	}
	return adapters.RawTable(platform, scanned), nil
}

func (s *Store) buildQuery(table, clientID string, from, to *time.Time) (string, []any) {
	var b strings.Builder
	args := []any{clientID}

	fmt.Fprintf(&b, "SELECT * FROM %s WHERE client_id = %s", table, s.placeholder(1))
	if from != nil {
		args = append(args, *from)
		fmt.Fprintf(&b, " AND %s >= %s", domain.DateKey, s.placeholder(len(args)))
	}
	if to != nil {
		args = append(args, *to)
		fmt.Fprintf(&b, " AND %s <= %s", domain.DateKey, s.placeholder(len(args)))
	}
	fmt.Fprintf(&b, " ORDER BY %s", domain.DateKey)
	return b.String(), args
}

// lib/pq only accepts ordinal placeholders.
func (s *Store) placeholder(n int) string {
	if s.driver == "postgres" {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

func scanRows(rows *sql.Rows) ([]store.MetricRow, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	out := make([]store.MetricRow, 0)
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		row := make(store.MetricRow, len(columns))
		for i, col := range columns {
			switch v := values[i].(type) {
			case []byte:
				row[col] = string(v)
			default:
				row[col] = v
			}
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"gridpulse/domain/core"
	"gridpulse/domain/series"
	"gridpulse/ports"
)

// comparisonRepository implements the ComparisonStore interface on the
// staging comparison tables, one table per forecast model.
type comparisonRepository struct {
	db *sqlx.DB
}

// NewComparisonRepository creates a new forecast-comparison repository
func NewComparisonRepository(db *sqlx.DB) *comparisonRepository {
	return &comparisonRepository{db: db}
}

func comparisonTable(model series.Model) string {
	if model == series.ModelXGB {
		return "ercot_load_wide_compare_xgb"
	}
	return "ercot_load_wide_compare"
}

// Comparison fetches wide actual/expected rows for the model's dataset.
// A missing staging table is reported as ports.ErrDatasetUnavailable,
// distinct from an empty result.
func (r *comparisonRepository) Comparison(ctx context.Context, model series.Model, tr core.TimeRange) ([]series.ComparisonRow, error) {
	exists, err := r.tableExists(ctx, comparisonTable(model))
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("model %s: %w", model, ports.ErrDatasetUnavailable)
	}

	query := fmt.Sprintf(`SELECT
	hour_end,
	coast_actual, coast_expected, east_actual, east_expected,
	far_west_actual, far_west_expected, north_actual, north_expected,
	north_c_actual, north_c_expected, southern_actual, southern_expected,
	south_c_actual, south_c_expected, west_actual, west_expected,
	ercot_actual, ercot_expected
FROM staging.%s
WHERE ($1::timestamptz IS NULL OR hour_end >= $1)
  AND ($2::timestamptz IS NULL OR hour_end <= $2)
ORDER BY hour_end`, comparisonTable(model))

	rows, err := r.db.QueryContext(ctx, query, nullTime(tr.Start), nullTime(tr.End))
	if err != nil {
		return nil, fmt.Errorf("failed to query comparison rows: %w", err)
	}
	defer rows.Close()

	keys := series.Regions()
	var result []series.ComparisonRow
	for rows.Next() {
		var hourEnd time.Time
		cells := make([]sql.NullFloat64, 2*len(keys))
		dest := make([]interface{}, 0, len(cells)+1)
		dest = append(dest, &hourEnd)
		for i := range cells {
			dest = append(dest, &cells[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan comparison row: %w", err)
		}

		row := series.ComparisonRow{
			HourEnd:  hourEnd,
			Actual:   make(map[series.Region]*float64, len(keys)),
			Expected: make(map[series.Region]*float64, len(keys)),
		}
		for i, key := range keys {
			row.Actual[key] = nullableFloat(cells[2*i])
			row.Expected[key] = nullableFloat(cells[2*i+1])
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read comparison rows: %w", err)
	}
	return result, nil
}

func (r *comparisonRepository) tableExists(ctx context.Context, table string) (bool, error) {
	const query = `SELECT EXISTS (
		SELECT FROM information_schema.tables
		WHERE table_schema = 'staging' AND table_name = $1
	)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, table).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check comparison table %s: %w", table, err)
	}
	return exists, nil
}

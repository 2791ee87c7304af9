package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"gridpulse/domain/core"
	"gridpulse/domain/series"
)

// loadRepository implements the LoadStore interface on the ercot_load
// wide table. It returns raw rows only; every derived statistic is
// computed in the engine.
type loadRepository struct {
	db *sqlx.DB
}

// NewLoadRepository creates a new hourly load repository
func NewLoadRepository(db *sqlx.DB) *loadRepository {
	return &loadRepository{db: db}
}

const hourlyLoadQuery = `SELECT
	hour_end, coast, east, far_west, north, north_c, southern, south_c, west, ercot
FROM ercot_load
WHERE ($1::timestamptz IS NULL OR hour_end >= $1)
  AND ($2::timestamptz IS NULL OR hour_end <= $2)
ORDER BY hour_end`

// HourlyLoad fetches wide hourly load rows inside the range, ordered
// chronologically. Unset cells stay nil.
func (r *loadRepository) HourlyLoad(ctx context.Context, tr core.TimeRange) ([]series.LoadRow, error) {
	rows, err := r.db.QueryContext(ctx, hourlyLoadQuery, nullTime(tr.Start), nullTime(tr.End))
	if err != nil {
		return nil, fmt.Errorf("failed to query hourly load: %w", err)
	}
	defer rows.Close()

	var result []series.LoadRow
	for rows.Next() {
		var hourEnd time.Time
		cells := make([]sql.NullFloat64, len(series.Regions()))
		dest := make([]interface{}, 0, len(cells)+1)
		dest = append(dest, &hourEnd)
		for i := range cells {
			dest = append(dest, &cells[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan load row: %w", err)
		}

		row := series.LoadRow{HourEnd: hourEnd, MW: make(map[series.Region]*float64, len(cells))}
		for i, key := range series.Regions() {
			row.MW[key] = nullableFloat(cells[i])
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read load rows: %w", err)
	}
	return result, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func nullableFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

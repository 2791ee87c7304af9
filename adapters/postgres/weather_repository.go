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

// weatherRepository implements the WeatherStore interface on the
// weather_hourly and station_zone_map tables.
type weatherRepository struct {
	db *sqlx.DB
}

// NewWeatherRepository creates a new hourly weather repository
func NewWeatherRepository(db *sqlx.DB) *weatherRepository {
	return &weatherRepository{db: db}
}

const hourlyWeatherQuery = `SELECT
	time, station_id,
	temperature_2m_c, relative_humidity_2m_percent, precipitation_mm,
	wind_speed_10m_kmh, pressure_msl_hpa, cloud_cover_mid_percent
FROM weather_hourly
WHERE ($1::timestamptz IS NULL OR time >= $1)
  AND ($2::timestamptz IS NULL OR time <= $2)
ORDER BY time, station_id`

// HourlyWeather fetches raw station observations inside the range.
func (r *weatherRepository) HourlyWeather(ctx context.Context, tr core.TimeRange) ([]series.WeatherRow, error) {
	rows, err := r.db.QueryContext(ctx, hourlyWeatherQuery, nullTime(tr.Start), nullTime(tr.End))
	if err != nil {
		return nil, fmt.Errorf("failed to query hourly weather: %w", err)
	}
	defer rows.Close()

	var result []series.WeatherRow
	for rows.Next() {
		var (
			ts        time.Time
			stationID string
			cells     [6]sql.NullFloat64
		)
		if err := rows.Scan(&ts, &stationID,
			&cells[0], &cells[1], &cells[2], &cells[3], &cells[4], &cells[5]); err != nil {
			return nil, fmt.Errorf("failed to scan weather row: %w", err)
		}
		result = append(result, series.WeatherRow{
			Time:        ts,
			StationID:   stationID,
			TempC:       nullableFloat(cells[0]),
			RHPct:       nullableFloat(cells[1]),
			PrecipMM:    nullableFloat(cells[2]),
			WindKMH:     nullableFloat(cells[3]),
			PressureHPA: nullableFloat(cells[4]),
			CloudPct:    nullableFloat(cells[5]),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read weather rows: %w", err)
	}
	return result, nil
}

// StationZones fetches the station-to-zone mapping. Stations mapped to an
// unknown zone are skipped rather than contaminating zone statistics.
func (r *weatherRepository) StationZones(ctx context.Context) (map[string]series.Region, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT station_id, zone FROM station_zone_map`)
	if err != nil {
		return nil, fmt.Errorf("failed to query station zones: %w", err)
	}
	defer rows.Close()

	mapping := make(map[string]series.Region)
	for rows.Next() {
		var stationID, zone string
		if err := rows.Scan(&stationID, &zone); err != nil {
			return nil, fmt.Errorf("failed to scan station zone row: %w", err)
		}
		if r := series.Region(zone); r.IsZone() {
			mapping[stationID] = r
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read station zone rows: %w", err)
	}
	return mapping, nil
}

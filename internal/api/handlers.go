package api

import (
	"fmt"
	"net/http"
	"time"

	"gridpulse/adapters/excel"
	"gridpulse/domain/analytics"
	"gridpulse/domain/series"
	apperrors "gridpulse/internal/errors"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"service": "gridpulse",
		"docs":    "/docs",
		"endpoints": []string{
			"/health",
			"/load/hourly",
			"/load/comparison",
			"/forecast/metrics",
			"/weather/heatwaves",
			"/weather/precipitation",
			"/load/peak-load-extreme-heat",
			"/load/outliers",
			"/load/outliers/weather-conditions",
			"/export/load.xlsx",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Health(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleHourlyLoad(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	tr, err := parseTimeRange(q)
	if err != nil {
		writeError(w, apperrors.InvalidInput(err.Error()))
		return
	}
	regions, err := parseRegionsParam(q, "regions", true)
	if err != nil {
		writeError(w, apperrors.InvalidInput(err.Error()))
		return
	}

	rows, keys, meta, err := s.service.HourlyLoad(r.Context(), analytics.HourlyLoadQuery{Range: tr, Regions: regions})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Data: loadRowsJSON(rows, keys), Metadata: meta})
}

func (s *Server) handleLoadComparison(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	tr, err := parseTimeRange(q)
	if err != nil {
		writeError(w, apperrors.InvalidInput(err.Error()))
		return
	}
	regions, err := parseRegionsParam(q, "regions", true)
	if err != nil {
		writeError(w, apperrors.InvalidInput(err.Error()))
		return
	}
	model, err := series.ParseModel(q.Get("model"))
	if err != nil {
		writeError(w, apperrors.InvalidInput(err.Error()))
		return
	}

	rows, keys, meta, err := s.service.LoadComparison(r.Context(), analytics.ComparisonQuery{
		Range: tr, Regions: regions, Model: model,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Data: comparisonRowsJSON(rows, keys), Metadata: meta})
}

func (s *Server) handleForecastMetrics(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	tr, err := parseTimeRange(q)
	if err != nil {
		writeError(w, apperrors.InvalidInput(err.Error()))
		return
	}
	regions, err := parseRegionsParam(q, "regions", true)
	if err != nil {
		writeError(w, apperrors.InvalidInput(err.Error()))
		return
	}
	model, err := series.ParseModel(q.Get("model"))
	if err != nil {
		writeError(w, apperrors.InvalidInput(err.Error()))
		return
	}

	rows, meta, err := s.service.ForecastMetrics(r.Context(), analytics.ForecastMetricsQuery{
		Range: tr, Regions: regions, Model: model,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Data: rows, Metadata: meta})
}

func (s *Server) handleHeatwaves(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	defaults := s.service.Defaults()

	zones, err := parseRegionsParam(q, "zones", false)
	if err != nil {
		writeError(w, apperrors.InvalidInput(err.Error()))
		return
	}
	minTempF, err := parseFloatParam(q, "min_temp_f", defaults.DefaultHeatwaveTempF)
	if err != nil {
		writeError(w, apperrors.InvalidInput(err.Error()))
		return
	}
	minDays, err := parseIntParam(q, "min_days", defaults.DefaultHeatwaveMinDays)
	if err != nil {
		writeError(w, apperrors.InvalidInput(err.Error()))
		return
	}
	start, end, err := parseDayRange(q)
	if err != nil {
		writeError(w, apperrors.InvalidInput(err.Error()))
		return
	}

	streaks, meta, err := s.service.HeatwaveStreaks(r.Context(), analytics.HeatwaveQuery{
		Zones: zones, MinTempF: minTempF, MinDays: minDays, Start: start, End: end,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Data: streaks, Metadata: meta})
}

func (s *Server) handlePrecipitationImpact(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	zones, err := parseRegionsParam(q, "zones", false)
	if err != nil {
		writeError(w, apperrors.InvalidInput(err.Error()))
		return
	}
	start, end, err := parseDayRange(q)
	if err != nil {
		writeError(w, apperrors.InvalidInput(err.Error()))
		return
	}

	rows, meta, err := s.service.PrecipitationImpact(r.Context(), analytics.PrecipImpactQuery{
		Zones: zones, Start: start, End: end,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Data: rows, Metadata: meta})
}

func (s *Server) handleExtremeHeat(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	defaults := s.service.Defaults()

	zones, err := parseRegionsParam(q, "zones", false)
	if err != nil {
		writeError(w, apperrors.InvalidInput(err.Error()))
		return
	}
	percentile, err := parseFloatParam(q, "percentile", defaults.DefaultHeatPercentile)
	if err != nil {
		writeError(w, apperrors.InvalidInput(err.Error()))
		return
	}
	start, end, err := parseDayRange(q)
	if err != nil {
		writeError(w, apperrors.InvalidInput(err.Error()))
		return
	}

	rows, meta, err := s.service.ExtremeHeatPeakLoad(r.Context(), analytics.ExtremeHeatQuery{
		Zones: zones, Start: start, End: end, Percentile: percentile,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Data: rows, Metadata: meta})
}

func (s *Server) handleOutliers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	defaults := s.service.Defaults()

	tr, err := parseTimeRange(q)
	if err != nil {
		writeError(w, apperrors.InvalidInput(err.Error()))
		return
	}
	regions, err := parseRegionsParam(q, "regions", true)
	if err != nil {
		writeError(w, apperrors.InvalidInput(err.Error()))
		return
	}
	class, err := analytics.ParseOutlierClass(q.Get("outlier_type"))
	if err != nil {
		writeError(w, apperrors.InvalidInput(err.Error()))
		return
	}
	threshold, err := parseFloatParam(q, "std_dev_threshold", defaults.DefaultStdDevThreshold)
	if err != nil {
		writeError(w, apperrors.InvalidInput(err.Error()))
		return
	}
	limit, err := parseIntParam(q, "limit", defaults.DefaultOutlierLimit)
	if err != nil {
		writeError(w, apperrors.InvalidInput(err.Error()))
		return
	}

	rows, meta, err := s.service.HourlyOutliers(r.Context(), analytics.OutlierQuery{
		Range: tr, Regions: regions, Class: class,
		StdDevThreshold: threshold, Limit: limit,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Data: rows, Metadata: meta})
}

func (s *Server) handleOutlierWeather(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	defaults := s.service.Defaults()

	start, end, err := parseDayRange(q)
	if err != nil {
		writeError(w, apperrors.InvalidInput(err.Error()))
		return
	}
	months, err := parseMonthsParam(q, "months")
	if err != nil {
		writeError(w, apperrors.InvalidInput(err.Error()))
		return
	}
	class, err := analytics.ParseOutlierClass(q.Get("outlier_type"))
	if err != nil {
		writeError(w, apperrors.InvalidInput(err.Error()))
		return
	}
	threshold, err := parseFloatParam(q, "std_dev_threshold", defaults.DefaultStdDevThreshold)
	if err != nil {
		writeError(w, apperrors.InvalidInput(err.Error()))
		return
	}

	rows, meta, err := s.service.MonthlyOutlierWeather(r.Context(), analytics.MonthlyOutlierWeatherQuery{
		Start: start, End: end, Months: months, Class: class, StdDevThreshold: threshold,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Data: rows, Metadata: meta})
}

func (s *Server) handleExportLoad(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	tr, err := parseTimeRange(q)
	if err != nil {
		writeError(w, apperrors.InvalidInput(err.Error()))
		return
	}
	regions, err := parseRegionsParam(q, "regions", true)
	if err != nil {
		writeError(w, apperrors.InvalidInput(err.Error()))
		return
	}

	rows, keys, _, err := s.service.HourlyLoad(r.Context(), analytics.HourlyLoadQuery{Range: tr, Regions: regions})
	if err != nil {
		writeError(w, err)
		return
	}

	filename := fmt.Sprintf("hourly_load_%s.xlsx", time.Now().UTC().Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := excel.WriteLoadWorkbook(w, rows, keys); err != nil {
		s.logger.Error("xlsx export failed: %v", err)
	}
}

// loadRowsJSON renders wide rows as JSON objects keyed by region name.
// Absent cells stay null.
func loadRowsJSON(rows []series.LoadRow, keys []series.Region) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(rows))
	for _, row := range rows {
		obj := make(map[string]interface{}, len(keys)+1)
		obj["hour_end"] = row.HourEnd.UTC().Format(time.RFC3339)
		for _, key := range keys {
			obj[string(key)] = row.Value(key)
		}
		out = append(out, obj)
	}
	return out
}

func comparisonRowsJSON(rows []series.ComparisonRow, keys []series.Region) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(rows))
	for _, row := range rows {
		obj := make(map[string]interface{}, 2*len(keys)+1)
		obj["hour_end"] = row.HourEnd.UTC().Format(time.RFC3339)
		for _, key := range keys {
			obj[string(key)+"_actual"] = row.Actual[key]
			obj[string(key)+"_expected"] = row.Expected[key]
		}
		out = append(out, obj)
	}
	return out
}

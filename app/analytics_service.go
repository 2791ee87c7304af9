package app

import (
	"context"
	"errors"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"gridpulse/domain/analytics"
	"gridpulse/domain/core"
	"gridpulse/domain/series"
	"gridpulse/internal"
	engine "gridpulse/internal/analytics"
	"gridpulse/internal/config"
	apperrors "gridpulse/internal/errors"
	"gridpulse/ports"
)

// maxConcurrentScores bounds parallel per-region regression scoring.
const maxConcurrentScores = 4

// AnalyticsService orchestrates the analytic operations: it validates
// queries, fetches raw rows from the store, and runs the engine. All
// derived computation happens here or below; the store only filters.
type AnalyticsService struct {
	store  ports.Store
	cfg    config.AnalyticsConfig
	logger *internal.Logger
	sem    *semaphore.Weighted
}

// NewAnalyticsService creates the analytics orchestrator
func NewAnalyticsService(store ports.Store, cfg config.AnalyticsConfig, logger *internal.Logger) *AnalyticsService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &AnalyticsService{
		store:  store,
		cfg:    cfg,
		logger: logger,
		sem:    semaphore.NewWeighted(maxConcurrentScores),
	}
}

// Defaults exposes the configured per-request defaults to the API layer.
func (s *AnalyticsService) Defaults() config.AnalyticsConfig { return s.cfg }

// Health verifies the store is reachable.
func (s *AnalyticsService) Health(ctx context.Context) error {
	if err := s.store.Ping(ctx); err != nil {
		return apperrors.DatabaseError("health check failed", err)
	}
	return nil
}

// HourlyLoad returns wide hourly load rows, optionally restricted to a
// subset of regions. The returned key slice gives the column order.
func (s *AnalyticsService) HourlyLoad(ctx context.Context, q analytics.HourlyLoadQuery) ([]series.LoadRow, []series.Region, analytics.Metadata, error) {
	rows, err := s.store.HourlyLoad(ctx, q.Range)
	if err != nil {
		return nil, nil, nil, s.storeErr("fetch hourly load", err)
	}

	keys := q.Regions
	if len(keys) == 0 {
		keys = series.Regions()
	} else {
		rows = series.Pivot(series.Unpivot(rows, keys))
	}

	meta := s.newMetadata()
	addRangeMeta(meta, q.Range)
	meta["regions"] = regionNames(keys)
	meta["num_rows"] = len(rows)
	return rows, keys, meta, nil
}

// LoadComparison returns wide actual/expected rows for one model.
func (s *AnalyticsService) LoadComparison(ctx context.Context, q analytics.ComparisonQuery) ([]series.ComparisonRow, []series.Region, analytics.Metadata, error) {
	rows, err := s.store.Comparison(ctx, q.Model, q.Range)
	if err != nil {
		return nil, nil, nil, s.storeErr("fetch comparison rows", err)
	}

	keys := q.Regions
	if len(keys) == 0 {
		keys = series.Regions()
	}

	meta := s.newMetadata()
	addRangeMeta(meta, q.Range)
	meta["model"] = string(q.Model)
	meta["regions"] = regionNames(keys)
	meta["num_rows"] = len(rows)
	return rows, keys, meta, nil
}

// ForecastMetrics scores one model's forecast against actuals, one row
// per requested region. Regions are scored concurrently under a bounded
// semaphore; results keep the requested region order.
func (s *AnalyticsService) ForecastMetrics(ctx context.Context, q analytics.ForecastMetricsQuery) ([]analytics.ForecastMetricsRow, analytics.Metadata, error) {
	rows, err := s.store.Comparison(ctx, q.Model, q.Range)
	if err != nil {
		return nil, nil, s.storeErr("fetch comparison rows", err)
	}

	keys := q.Regions
	if len(keys) == 0 {
		keys = series.Regions()
	}

	pairsByKey := make(map[series.Region][]series.ComparisonObservation, len(keys))
	for _, obs := range series.UnpivotComparison(rows, keys) {
		pairsByKey[obs.Key] = append(pairsByKey[obs.Key], obs)
	}

	results := make([]analytics.ForecastMetricsRow, len(keys))
	g, gctx := errgroup.WithContext(ctx)
	for i, key := range keys {
		i, key := i, key
		g.Go(func() error {
			if err := s.sem.Acquire(gctx, 1); err != nil {
				return err
			}
			defer s.sem.Release(1)

			score := engine.ScoreForecast(pairsByKey[key])
			results[i] = analytics.ForecastMetricsRow{
				Region:  key,
				N:       score.N,
				MSE:     score.MSE,
				MAE:     score.MAE,
				MAPEPct: score.MAPEPct,
				R2:      score.R2,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, apperrors.Wrap(err, "forecast scoring interrupted")
	}
	s.logger.Debug("scored %d regions against model %s", len(keys), q.Model)

	meta := s.newMetadata()
	addRangeMeta(meta, q.Range)
	meta["model"] = string(q.Model)
	meta["regions"] = regionNames(keys)
	return results, meta, nil
}

// HeatwaveStreaks detects, per zone, maximal runs of consecutive days
// whose daily maximum temperature reached the threshold. Dispersion of a
// run's daily peak load rides along when load data overlaps it. The
// start/end filters select which detected streaks are reported; detection
// itself always runs over the full daily history so a window boundary
// cannot split a streak.
func (s *AnalyticsService) HeatwaveStreaks(ctx context.Context, q analytics.HeatwaveQuery) ([]analytics.Streak, analytics.Metadata, error) {
	if err := q.Validate(); err != nil {
		return nil, nil, apperrors.WithCode(apperrors.CodeInvalidInput, err)
	}

	var (
		weather []series.WeatherRow
		loads   []series.LoadRow
		zones   map[string]series.Region
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		weather, err = s.store.HourlyWeather(gctx, core.TimeRange{})
		return err
	})
	g.Go(func() (err error) {
		loads, err = s.store.HourlyLoad(gctx, core.TimeRange{})
		return err
	})
	g.Go(func() (err error) {
		zones, err = s.store.StationZones(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, s.storeErr("fetch heatwave inputs", err)
	}

	tempDaily := engine.AggregateDaily(zoneTempsF(weather, zones, q.Zones), engine.ReduceMax)
	streaks := engine.DetectStreaks(tempDaily, func(a series.DailyAggregate) bool {
		return a.Value >= q.MinTempF
	}, q.MinDays)

	streaks = filterStreaks(streaks, q.Start, q.End)
	peakDaily := engine.AggregateDaily(series.Unpivot(loads, series.Zones()), engine.ReduceMax)
	engine.AttachPeakLoad(streaks, peakDaily)

	meta := s.newMetadata()
	meta["min_temp_f"] = q.MinTempF
	meta["min_consecutive_days"] = q.MinDays
	addDayMeta(meta, q.Start, q.End)
	meta["num_streaks"] = len(streaks)
	return streaks, meta, nil
}

// PrecipitationImpact compares mean daily load between rainy and dry days
// per zone. Load and weather are fetched concurrently.
func (s *AnalyticsService) PrecipitationImpact(ctx context.Context, q analytics.PrecipImpactQuery) ([]analytics.PrecipImpactRow, analytics.Metadata, error) {
	fetch := dayFetchRange(q.Start, q.End)

	var (
		weather []series.WeatherRow
		loads   []series.LoadRow
		zones   map[string]series.Region
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		weather, err = s.store.HourlyWeather(gctx, fetch)
		return err
	})
	g.Go(func() (err error) {
		loads, err = s.store.HourlyLoad(gctx, fetch)
		return err
	})
	g.Go(func() (err error) {
		zones, err = s.store.StationZones(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, s.storeErr("fetch precipitation inputs", err)
	}

	zoneKeys := q.Zones
	if len(zoneKeys) == 0 {
		zoneKeys = series.Zones()
	}
	precipDaily := engine.AggregateDaily(zonePrecip(weather, zones, q.Zones), engine.ReduceSum)
	loadDaily := engine.AggregateDaily(series.Unpivot(loads, zoneKeys), engine.ReduceMean)

	within := dayWindow(q.Start, q.End)
	rows := engine.PrecipitationImpact(filterDaily(precipDaily, within), filterDaily(loadDaily, within))

	meta := s.newMetadata()
	addDayMeta(meta, q.Start, q.End)
	meta["zones"] = regionNames(zoneKeys)
	return rows, meta, nil
}

// ExtremeHeatPeakLoad computes, per zone, the median daily peak load over
// the zone's extreme-heat days. The temperature threshold is a continuous
// percentile over the zone's full daily-max history; the start/end window
// then selects which qualifying days contribute to the median.
func (s *AnalyticsService) ExtremeHeatPeakLoad(ctx context.Context, q analytics.ExtremeHeatQuery) ([]analytics.ExtremeHeatRow, analytics.Metadata, error) {
	if err := q.Validate(); err != nil {
		return nil, nil, apperrors.WithCode(apperrors.CodeInvalidInput, err)
	}

	var (
		weather []series.WeatherRow
		loads   []series.LoadRow
		zones   map[string]series.Region
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		weather, err = s.store.HourlyWeather(gctx, core.TimeRange{})
		return err
	})
	g.Go(func() (err error) {
		loads, err = s.store.HourlyLoad(gctx, core.TimeRange{})
		return err
	})
	g.Go(func() (err error) {
		zones, err = s.store.StationZones(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, s.storeErr("fetch extreme heat inputs", err)
	}

	tempDaily := engine.AggregateDaily(zoneTempsF(weather, zones, q.Zones), engine.ReduceMax)
	peakDaily := engine.AggregateDaily(series.Unpivot(loads, series.Zones()), engine.ReduceMax)
	rows := engine.ExtremeHeat(tempDaily, peakDaily, q.Percentile, dayWindow(q.Start, q.End))

	meta := s.newMetadata()
	meta["threshold_percentile"] = q.Percentile
	addDayMeta(meta, q.Start, q.End)
	return rows, meta, nil
}

// HourlyOutliers classifies hourly load values against each region's
// dispersion. The dispersion baseline is the same filtered population the
// values come from: the time range applies before statistics, never after.
// Rows order newest first, then by region, and the limit truncates after
// ordering.
func (s *AnalyticsService) HourlyOutliers(ctx context.Context, q analytics.OutlierQuery) ([]analytics.OutlierRow, analytics.Metadata, error) {
	if err := q.Validate(); err != nil {
		return nil, nil, apperrors.WithCode(apperrors.CodeInvalidInput, err)
	}

	rows, err := s.store.HourlyLoad(ctx, q.Range)
	if err != nil {
		return nil, nil, s.storeErr("fetch hourly load", err)
	}

	keys := q.Regions
	if len(keys) == 0 {
		keys = series.Regions()
	}

	var out []analytics.OutlierRow
	for _, key := range keys {
		var values []float64
		var at []time.Time
		for _, row := range rows {
			if v := row.Value(key); v != nil {
				values = append(values, *v)
				at = append(at, row.HourEnd)
			}
		}
		ds := engine.Describe(values)
		if ds.StdDev == nil {
			continue
		}
		for i, v := range values {
			class, z := engine.Classify(v, ds, q.StdDevThreshold)
			if class == "" || (q.Class != "" && class != q.Class) {
				continue
			}
			out = append(out, analytics.OutlierRow{
				HourEnd:     at[i],
				Region:      key,
				LoadMW:      v,
				Mean:        ds.Mean,
				StdDev:      *ds.StdDev,
				ZScore:      *z,
				OutlierType: class,
			})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].HourEnd.Equal(out[j].HourEnd) {
			return out[i].HourEnd.After(out[j].HourEnd)
		}
		return out[i].Region < out[j].Region
	})
	total := len(out)
	if len(out) > q.Limit {
		out = out[:q.Limit]
	}

	meta := s.newMetadata()
	addRangeMeta(meta, q.Range)
	meta["std_dev_threshold"] = q.StdDevThreshold
	meta["limit"] = q.Limit
	meta["regions"] = regionNames(keys)
	if q.Class != "" {
		meta["outlier_type"] = string(q.Class)
	}
	meta["total_outliers"] = total
	return out, meta, nil
}

// MonthlyOutlierWeather classifies each day's system-wide average load
// against its own calendar month, then reports mean weather conditions
// per (month, outlier group). Weather for a day reduces across every
// reporting station first (mean, except precipitation which is the daily
// total), so dense station clusters do not dominate. Outlier days with no
// weather rows at all drop out of the join, including from num_days.
func (s *AnalyticsService) MonthlyOutlierWeather(ctx context.Context, q analytics.MonthlyOutlierWeatherQuery) ([]analytics.MonthlyOutlierWeatherRow, analytics.Metadata, error) {
	if err := q.Validate(); err != nil {
		return nil, nil, apperrors.WithCode(apperrors.CodeInvalidInput, err)
	}
	fetch := dayFetchRange(q.Start, q.End)

	var (
		weather []series.WeatherRow
		loads   []series.LoadRow
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		weather, err = s.store.HourlyWeather(gctx, fetch)
		return err
	})
	g.Go(func() (err error) {
		loads, err = s.store.HourlyLoad(gctx, fetch)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, s.storeErr("fetch outlier weather inputs", err)
	}

	daily := engine.AggregateDaily(series.Unpivot(loads, []series.Region{series.RegionSystem}), engine.ReduceMean)
	within := dayWindow(q.Start, q.End)
	months := monthSet(q.Months)
	daily = filterDaily(daily, func(d core.Day) bool {
		if !within(d) {
			return false
		}
		return months == nil || months[d.MonthStart()]
	})

	outlierDays := engine.MonthlyOutlierDays(daily, q.StdDevThreshold)
	dailyWeather := averageDailyWeather(weather)

	type groupKey struct {
		month core.Day
		class analytics.OutlierClass
	}
	type accum struct {
		days int
		sum  [numWeatherMetrics]float64
		n    [numWeatherMetrics]int
	}
	groups := make(map[groupKey]*accum)
	for _, od := range outlierDays {
		if q.Class != "" && od.Class != q.Class {
			continue
		}
		dw, ok := dailyWeather[od.Day]
		if !ok {
			continue
		}
		gk := groupKey{month: od.MonthStart, class: od.Class}
		a := groups[gk]
		if a == nil {
			a = &accum{}
			groups[gk] = a
		}
		a.days++
		for m := 0; m < numWeatherMetrics; m++ {
			if dw.n[m] > 0 {
				a.sum[m] += dw.value(m)
				a.n[m]++
			}
		}
	}

	rows := make([]analytics.MonthlyOutlierWeatherRow, 0, len(groups))
	for gk, a := range groups {
		avg := func(m int) *float64 {
			if a.n[m] == 0 {
				return nil
			}
			v := a.sum[m] / float64(a.n[m])
			return &v
		}
		rows = append(rows, analytics.MonthlyOutlierWeatherRow{
			MonthStart:       gk.month,
			OutlierGroup:     gk.class,
			NumDays:          a.days,
			AvgTempC:         avg(metricTemp),
			AvgRHPct:         avg(metricRH),
			AvgPrecipMM:      avg(metricPrecip),
			AvgWindKMH:       avg(metricWind),
			AvgPressureHPA:   avg(metricPressure),
			AvgCloudCoverPct: avg(metricCloud),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].MonthStart.Equal(rows[j].MonthStart) {
			return rows[i].MonthStart.Before(rows[j].MonthStart)
		}
		return rows[i].OutlierGroup < rows[j].OutlierGroup
	})

	meta := s.newMetadata()
	addDayMeta(meta, q.Start, q.End)
	meta["std_dev_threshold"] = q.StdDevThreshold
	if q.Class != "" {
		meta["outlier_type"] = string(q.Class)
	}
	meta["num_outlier_days"] = len(outlierDays)
	return rows, meta, nil
}

func (s *AnalyticsService) newMetadata() analytics.Metadata {
	return analytics.Metadata{
		"analysis_id":  core.NewAnalysisID().String(),
		"generated_at": time.Now().UTC().Format(time.RFC3339),
	}
}

func (s *AnalyticsService) storeErr(op string, err error) error {
	if errors.Is(err, ports.ErrDatasetUnavailable) {
		return apperrors.NotImplemented(err.Error())
	}
	s.logger.Error("%s: %v", op, err)
	return apperrors.DatabaseError("failed to "+op, err)
}

// zoneTempsF converts station temperature readings into per-zone
// Fahrenheit observations. Unmapped stations and null readings drop out;
// a non-empty zone filter keeps only the named zones.
func zoneTempsF(weather []series.WeatherRow, zones map[string]series.Region, filter []series.Region) []series.Observation {
	keep := regionSet(filter)
	var obs []series.Observation
	for _, w := range weather {
		if w.TempC == nil {
			continue
		}
		zone, ok := zones[w.StationID]
		if !ok || (keep != nil && !keep[zone]) {
			continue
		}
		f := series.CToF(*w.TempC)
		obs = append(obs, series.Observation{At: w.Time, Key: zone, Value: &f})
	}
	return obs
}

// zonePrecip maps station precipitation readings onto zones.
func zonePrecip(weather []series.WeatherRow, zones map[string]series.Region, filter []series.Region) []series.Observation {
	keep := regionSet(filter)
	var obs []series.Observation
	for _, w := range weather {
		if w.PrecipMM == nil {
			continue
		}
		zone, ok := zones[w.StationID]
		if !ok || (keep != nil && !keep[zone]) {
			continue
		}
		v := *w.PrecipMM
		obs = append(obs, series.Observation{At: w.Time, Key: zone, Value: &v})
	}
	return obs
}

// Weather metric indexes, in WeatherRow field order.
const (
	metricTemp = iota
	metricRH
	metricPrecip
	metricWind
	metricPressure
	metricCloud
	numWeatherMetrics
)

// dailyWeatherAccum accumulates one day's readings per measurement.
type dailyWeatherAccum struct {
	sum [numWeatherMetrics]float64
	n   [numWeatherMetrics]int
}

// value reduces one day's readings for metric m. Precipitation is the
// daily total; every other metric is the daily mean across readings.
// Callers must check n[m] > 0 first.
func (a *dailyWeatherAccum) value(m int) float64 {
	if m == metricPrecip {
		return a.sum[m]
	}
	return a.sum[m] / float64(a.n[m])
}

func averageDailyWeather(weather []series.WeatherRow) map[core.Day]*dailyWeatherAccum {
	out := make(map[core.Day]*dailyWeatherAccum)
	for _, w := range weather {
		day := core.DayOf(w.Time)
		a := out[day]
		if a == nil {
			a = &dailyWeatherAccum{}
			out[day] = a
		}
		for m, v := range []*float64{w.TempC, w.RHPct, w.PrecipMM, w.WindKMH, w.PressureHPA, w.CloudPct} {
			if v != nil {
				a.sum[m] += *v
				a.n[m]++
			}
		}
	}
	return out
}

func filterStreaks(streaks []analytics.Streak, start, end core.Day) []analytics.Streak {
	if start.IsZero() && end.IsZero() {
		return streaks
	}
	out := streaks[:0]
	for _, s := range streaks {
		if !start.IsZero() && s.Start.Before(start) {
			continue
		}
		if !end.IsZero() && s.End.After(end) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func filterDaily(aggs []series.DailyAggregate, within func(core.Day) bool) []series.DailyAggregate {
	out := aggs[:0]
	for _, a := range aggs {
		if within(a.Day) {
			out = append(out, a)
		}
	}
	return out
}

func dayWindow(start, end core.Day) func(core.Day) bool {
	return func(d core.Day) bool {
		if !start.IsZero() && d.Before(start) {
			return false
		}
		if !end.IsZero() && d.After(end) {
			return false
		}
		return true
	}
}

// dayFetchRange widens a day window into an instant range for the store.
// The end bound extends to the following midnight because hour-ending
// timestamps for a day's last hour land on it.
func dayFetchRange(start, end core.Day) core.TimeRange {
	var tr core.TimeRange
	if !start.IsZero() {
		t := start.Time()
		tr.Start = &t
	}
	if !end.IsZero() {
		t := end.Next().Time()
		tr.End = &t
	}
	return tr
}

func regionSet(rs []series.Region) map[series.Region]bool {
	if len(rs) == 0 {
		return nil
	}
	set := make(map[series.Region]bool, len(rs))
	for _, r := range rs {
		set[r] = true
	}
	return set
}

func monthSet(months []core.Day) map[core.Day]bool {
	if len(months) == 0 {
		return nil
	}
	set := make(map[core.Day]bool, len(months))
	for _, m := range months {
		set[m.MonthStart()] = true
	}
	return set
}

func regionNames(rs []series.Region) []string {
	names := make([]string, len(rs))
	for i, r := range rs {
		names[i] = string(r)
	}
	return names
}

func addRangeMeta(meta analytics.Metadata, r core.TimeRange) {
	if r.Start != nil {
		meta["start"] = r.Start.UTC().Format(time.RFC3339)
	} else {
		meta["start"] = nil
	}
	if r.End != nil {
		meta["end"] = r.End.UTC().Format(time.RFC3339)
	} else {
		meta["end"] = nil
	}
}

func addDayMeta(meta analytics.Metadata, start, end core.Day) {
	if !start.IsZero() {
		meta["start_date"] = start.String()
	} else {
		meta["start_date"] = nil
	}
	if !end.IsZero() {
		meta["end_date"] = end.String()
	} else {
		meta["end_date"] = nil
	}
}

package analytics

import (
	"math"
	"testing"
	"time"

	"gridpulse/domain/series"
)

func pair(at time.Time, actual, expected *float64) series.ComparisonObservation {
	return series.ComparisonObservation{At: at, Key: series.RegionSystem, Actual: actual, Expected: expected}
}

func TestScoreForecast(t *testing.T) {
	t0 := time.Date(2024, 7, 1, 1, 0, 0, 0, time.UTC)

	t.Run("perfect forecast", func(t *testing.T) {
		var pairs []series.ComparisonObservation
		for i, v := range []float64{100, 110, 120} {
			pairs = append(pairs, pair(t0.Add(time.Duration(i)*time.Hour), fp(v), fp(v)))
		}
		score := ScoreForecast(pairs)
		if score.N != 3 {
			t.Fatalf("n = %d, want 3", score.N)
		}
		if *score.MSE != 0 || *score.MAE != 0 || *score.MAPEPct != 0 {
			t.Errorf("errors not zero: mse=%g mae=%g mape=%g", *score.MSE, *score.MAE, *score.MAPEPct)
		}
		if score.R2 == nil || *score.R2 != 1 {
			t.Errorf("r2 = %v, want 1", score.R2)
		}
	})

	t.Run("known errors", func(t *testing.T) {
		pairs := []series.ComparisonObservation{
			pair(t0, fp(100), fp(90)),
			pair(t0.Add(time.Hour), fp(200), fp(220)),
		}
		score := ScoreForecast(pairs)
		if *score.MSE != (100+400)/2.0 {
			t.Errorf("mse = %g, want 250", *score.MSE)
		}
		if *score.MAE != 15 {
			t.Errorf("mae = %g, want 15", *score.MAE)
		}
		wantMAPE := 100 * (0.1 + 0.1) / 2
		if math.Abs(*score.MAPEPct-wantMAPE) > 1e-9 {
			t.Errorf("mape = %g, want %g", *score.MAPEPct, wantMAPE)
		}
	})

	t.Run("constant actuals have nil r2", func(t *testing.T) {
		pairs := []series.ComparisonObservation{
			pair(t0, fp(100), fp(90)),
			pair(t0.Add(time.Hour), fp(100), fp(110)),
		}
		score := ScoreForecast(pairs)
		if score.R2 != nil {
			t.Errorf("r2 = %g, want nil for zero-variance actuals", *score.R2)
		}
		if score.MSE == nil || *score.MSE != 100 {
			t.Errorf("mse = %v, want 100", score.MSE)
		}
	})

	t.Run("zero actuals excluded from mape only", func(t *testing.T) {
		pairs := []series.ComparisonObservation{
			pair(t0, fp(0), fp(10)),
			pair(t0.Add(time.Hour), fp(100), fp(110)),
		}
		score := ScoreForecast(pairs)
		if score.N != 2 {
			t.Errorf("n = %d, want 2 (zero actual still counts)", score.N)
		}
		if math.Abs(*score.MAPEPct-10) > 1e-9 {
			t.Errorf("mape = %g, want 10 (only the nonzero pair)", *score.MAPEPct)
		}
	})

	t.Run("all-zero actuals give nil mape", func(t *testing.T) {
		pairs := []series.ComparisonObservation{
			pair(t0, fp(0), fp(5)),
			pair(t0.Add(time.Hour), fp(0), fp(3)),
		}
		score := ScoreForecast(pairs)
		if score.MAPEPct != nil {
			t.Errorf("mape = %g, want nil", *score.MAPEPct)
		}
		if score.N != 2 {
			t.Errorf("n = %d, want 2", score.N)
		}
	})

	t.Run("one-sided pairs drop out", func(t *testing.T) {
		pairs := []series.ComparisonObservation{
			pair(t0, nil, fp(10)),
			pair(t0.Add(time.Hour), fp(10), nil),
			pair(t0.Add(2*time.Hour), fp(10), fp(10)),
		}
		score := ScoreForecast(pairs)
		if score.N != 1 {
			t.Errorf("n = %d, want 1", score.N)
		}
	})

	t.Run("no complete pairs", func(t *testing.T) {
		score := ScoreForecast([]series.ComparisonObservation{pair(t0, nil, nil)})
		if score.N != 0 || score.MSE != nil || score.MAE != nil || score.MAPEPct != nil || score.R2 != nil {
			t.Errorf("degenerate score = %+v", score)
		}
	})
}

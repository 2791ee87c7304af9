package analytics

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"gridpulse/domain/series"
)

// ForecastScore holds the regression metrics for one group key. N counts
// pairs with both sides present; the per-metric fields are nil when their
// denominator degenerates (no pairs, all-zero actuals, zero variance).
type ForecastScore struct {
	N       int
	MSE     *float64
	MAE     *float64
	MAPEPct *float64
	R2      *float64
}

// ScoreForecast computes MSE, MAE, MAPE and R² between paired actual and
// expected values for one group key. Pairs with either side absent are
// excluded entirely. Pairs whose actual is zero are excluded from the
// MAPE average only, not from n. R² is nil when the actuals carry zero
// total variance; degenerate inputs never produce an error or infinity.
func ScoreForecast(pairs []series.ComparisonObservation) ForecastScore {
	var actuals []float64
	var sumSq, sumAbs float64
	var sumPct float64
	var pctN int

	for _, p := range pairs {
		if p.Actual == nil || p.Expected == nil {
			continue
		}
		a, e := *p.Actual, *p.Expected
		d := a - e
		actuals = append(actuals, a)
		sumSq += d * d
		sumAbs += math.Abs(d)
		if a != 0 {
			sumPct += math.Abs(d) / math.Abs(a)
			pctN++
		}
	}

	score := ForecastScore{N: len(actuals)}
	if score.N == 0 {
		return score
	}

	mse := sumSq / float64(score.N)
	mae := sumAbs / float64(score.N)
	score.MSE = &mse
	score.MAE = &mae

	if pctN > 0 {
		mape := 100 * sumPct / float64(pctN)
		score.MAPEPct = &mape
	}

	yBar := stat.Mean(actuals, nil)
	ssTot := 0.0
	for _, a := range actuals {
		ssTot += (a - yBar) * (a - yBar)
	}
	if ssTot != 0 {
		r2 := 1 - sumSq/ssTot
		score.R2 = &r2
	}
	return score
}

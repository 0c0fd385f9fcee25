package model

// RateRow is one down-payment tier of the rate table.
// A period missing from Rates is unavailable for the tier.
type RateRow struct {
	Rates       map[Period]float64
	TierPercent float64
}

// Rate returns the interest rate for period, if the tier offers it.
func (r RateRow) Rate(period Period) (float64, bool) {
	rate, ok := r.Rates[period]
	return rate, ok
}

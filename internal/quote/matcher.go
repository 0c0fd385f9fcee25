package quote

import (
	"fmt"

	"github.com/Veraticus/carquote/internal/model"
	"github.com/Veraticus/carquote/internal/ratetable"
)

const (
	// HighDownPaymentTier is the tier whose row governs down payments above it.
	HighDownPaymentTier = 30.0
	// MinimumInterest is the total interest a period must exceed to qualify
	// under the high down payment scheme.
	MinimumInterest = 25000.0
)

// Scheme identifies which calculation path a request follows.
type Scheme int

const (
	// SchemeStandard matches the greatest tier at or below the down payment percentage.
	SchemeStandard Scheme = iota
	// SchemeHighDownPayment evaluates the 30% row across every period.
	SchemeHighDownPayment
)

func (s Scheme) String() string {
	switch s {
	case SchemeStandard:
		return "standard"
	case SchemeHighDownPayment:
		return "high down payment"
	default:
		return fmt.Sprintf("Scheme(%d)", int(s))
	}
}

// PeriodRate pairs a period with the interest rate offered for it.
type PeriodRate struct {
	Period      model.Period
	RatePercent float64
}

// Matcher selects the rate tier or tiers that govern a request.
type Matcher struct {
	table *ratetable.Table
}

// NewMatcher creates a matcher over table.
func NewMatcher(table *ratetable.Table) *Matcher {
	return &Matcher{table: table}
}

// Scheme decides the calculation path. A percentage of exactly 30 stays on
// the standard scheme.
func (m *Matcher) Scheme(downPercent float64) Scheme {
	if downPercent > HighDownPaymentTier && m.table.HasTier(HighDownPaymentTier) {
		return SchemeHighDownPayment
	}
	return SchemeStandard
}

// MatchTier returns the greatest tier at or below downPercent.
func (m *Matcher) MatchTier(downPercent float64) (float64, error) {
	matched, found := 0.0, false
	for tier := range m.table.Tiers() {
		if tier > downPercent {
			break
		}
		matched, found = tier, true
	}
	if !found {
		return 0, fmt.Errorf("%w: %.2f%%", ErrNoQualifyingTier, downPercent)
	}
	return matched, nil
}

// Rate returns the rate for tier and period.
func (m *Matcher) Rate(tier float64, period model.Period) (float64, error) {
	rate, ok := m.table.RateFor(tier, period)
	if !ok {
		return 0, fmt.Errorf("%w: tier %.1f%%, %s", ErrUnavailablePeriod, tier, period)
	}
	return rate, nil
}

// QualifyingPeriods evaluates the high down payment row for every allowed
// period and returns, in period order, those whose total interest on loan
// exceeds MinimumInterest. Periods without a rate in that row are skipped.
func (m *Matcher) QualifyingPeriods(loan float64) []PeriodRate {
	var qualifying []PeriodRate
	for _, period := range model.AllowedPeriods {
		rate, ok := m.table.RateFor(HighDownPaymentTier, period)
		if !ok {
			continue
		}
		if TotalInterest(loan, rate, period) > MinimumInterest {
			qualifying = append(qualifying, PeriodRate{Period: period, RatePercent: rate})
		}
	}
	return qualifying
}

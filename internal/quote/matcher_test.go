package quote

import (
	"testing"

	"github.com/Veraticus/carquote/internal/model"
	"github.com/Veraticus/carquote/internal/ratetable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tierTable builds a table with the given tiers, each offering rate for every allowed period.
func tierTable(rate float64, tiers ...float64) *ratetable.Table {
	rows := make([]model.RateRow, 0, len(tiers))
	for _, tier := range tiers {
		rates := make(map[model.Period]float64, len(model.AllowedPeriods))
		for _, p := range model.AllowedPeriods {
			rates[p] = rate
		}
		rows = append(rows, model.RateRow{TierPercent: tier, Rates: rates})
	}
	return ratetable.New(rows)
}

func TestMatcher_MatchTier(t *testing.T) {
	m := NewMatcher(tierTable(2, 5, 10, 15, 20, 25, 30))

	tests := []struct {
		downPercent float64
		want        float64
	}{
		{downPercent: 22, want: 20},
		{downPercent: 5, want: 5},
		{downPercent: 14.999, want: 10},
		{downPercent: 15, want: 15},
		{downPercent: 30, want: 30},
		{downPercent: 100, want: 30},
	}

	for _, tt := range tests {
		got, err := m.MatchTier(tt.downPercent)
		require.NoError(t, err, "down percent %v", tt.downPercent)
		assert.InDelta(t, tt.want, got, 1e-12, "down percent %v", tt.downPercent)
	}
}

func TestMatcher_MatchTier_NoQualifyingTier(t *testing.T) {
	m := NewMatcher(tierTable(2, 5, 10))

	_, err := m.MatchTier(4.99)
	assert.ErrorIs(t, err, ErrNoQualifyingTier)
}

func TestMatcher_Scheme(t *testing.T) {
	withThirty := NewMatcher(tierTable(2, 10, 20, 30))
	withoutThirty := NewMatcher(tierTable(2, 10, 20, 25))

	assert.Equal(t, SchemeStandard, withThirty.Scheme(29.9))
	assert.Equal(t, SchemeStandard, withThirty.Scheme(30.0), "exactly 30 stays on the standard scheme")
	assert.Equal(t, SchemeHighDownPayment, withThirty.Scheme(30.0001))
	assert.Equal(t, SchemeStandard, withoutThirty.Scheme(45), "no 30 tier means standard matching")
}

func TestMatcher_Rate_UnavailablePeriod(t *testing.T) {
	table := ratetable.New([]model.RateRow{
		{TierPercent: 10, Rates: map[model.Period]float64{model.Period48: 2}},
	})
	m := NewMatcher(table)

	_, err := m.Rate(10, model.Period84)
	assert.ErrorIs(t, err, ErrUnavailablePeriod)

	rate, err := m.Rate(10, model.Period48)
	require.NoError(t, err)
	assert.InDelta(t, 2, rate, 1e-12)
}

func TestMatcher_QualifyingPeriods(t *testing.T) {
	table := ratetable.New([]model.RateRow{
		{TierPercent: 30, Rates: map[model.Period]float64{
			model.Period48: 1.0, // 500000 * 1% * 4 = 20000
			model.Period60: 1.0, // 500000 * 1% * 5 = 25000, not strictly above
			model.Period84: 1.5, // 500000 * 1.5% * 7 = 52500
		}},
	})
	m := NewMatcher(table)

	got := m.QualifyingPeriods(500_000)
	require.Len(t, got, 1)
	assert.Equal(t, model.Period84, got[0].Period)
	assert.InDelta(t, 1.5, got[0].RatePercent, 1e-12)
}

func TestMatcher_QualifyingPeriods_None(t *testing.T) {
	m := NewMatcher(tierTable(0.5, 30))
	assert.Empty(t, m.QualifyingPeriods(100_000))
}

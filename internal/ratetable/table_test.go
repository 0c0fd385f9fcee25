package ratetable

import (
	"math"
	"slices"
	"testing"

	"github.com/Veraticus/carquote/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(tier float64, rates map[model.Period]float64) model.RateRow {
	return model.RateRow{TierPercent: tier, Rates: rates}
}

func TestNew_SortsAndDeduplicates(t *testing.T) {
	table := New([]model.RateRow{
		row(20, map[model.Period]float64{model.Period60: 2.2}),
		row(5, map[model.Period]float64{model.Period60: 3.0}),
		row(20, map[model.Period]float64{model.Period60: 9.9}),
		row(10, nil),
	})

	assert.Equal(t, []float64{5, 10, 20}, slices.Collect(table.Tiers()))

	rate, ok := table.RateFor(20, model.Period60)
	require.True(t, ok)
	assert.InDelta(t, 2.2, rate, 1e-12, "first occurrence of a duplicate tier wins")
}

func TestNew_DropsInvalidTiersAndRates(t *testing.T) {
	table := New([]model.RateRow{
		row(-1, map[model.Period]float64{model.Period48: 1}),
		row(101, map[model.Period]float64{model.Period48: 1}),
		row(math.NaN(), map[model.Period]float64{model.Period48: 1}),
		row(30, map[model.Period]float64{
			model.Period48:   math.NaN(),
			model.Period60:   -2,
			model.Period72:   math.Inf(1),
			model.Period84:   1.8,
			model.Period(36): 1.0,
		}),
	})

	require.Equal(t, 1, table.Len())
	for _, p := range []model.Period{model.Period48, model.Period60, model.Period72, model.Period(36)} {
		_, ok := table.RateFor(30, p)
		assert.False(t, ok, "period %d should be unavailable", p)
	}
	rate, ok := table.RateFor(30, model.Period84)
	require.True(t, ok)
	assert.InDelta(t, 1.8, rate, 1e-12)
}

func TestTiers_Restartable(t *testing.T) {
	table := New([]model.RateRow{row(5, nil), row(10, nil), row(15, nil)})

	first := slices.Collect(table.Tiers())
	second := slices.Collect(table.Tiers())
	assert.Equal(t, first, second)

	var partial []float64
	for tier := range table.Tiers() {
		partial = append(partial, tier)
		if tier == 10 {
			break
		}
	}
	assert.Equal(t, []float64{5, 10}, partial)
}

func TestRateFor_Unavailable(t *testing.T) {
	table := New([]model.RateRow{row(10, map[model.Period]float64{model.Period60: 2})})

	_, ok := table.RateFor(15, model.Period60)
	assert.False(t, ok, "unknown tier")

	_, ok = table.RateFor(10, model.Period84)
	assert.False(t, ok, "period missing from row")
}

func TestTable_Immutable(t *testing.T) {
	rates := map[model.Period]float64{model.Period60: 2}
	table := New([]model.RateRow{row(10, rates)})

	rates[model.Period60] = 99
	got, ok := table.RateFor(10, model.Period60)
	require.True(t, ok)
	assert.InDelta(t, 2, got, 1e-12)

	r, _ := table.Row(10)
	r.Rates[model.Period60] = 42
	got, _ = table.RateFor(10, model.Period60)
	assert.InDelta(t, 2, got, 1e-12)
}

func TestNilTable(t *testing.T) {
	var table *Table
	assert.True(t, table.Empty())
	assert.Equal(t, 0, table.Len())
	assert.Empty(t, slices.Collect(table.Tiers()))
	_, ok := table.RateFor(10, model.Period60)
	assert.False(t, ok)
	_, ok = table.DefaultDownPercent()
	assert.False(t, ok)
}

func TestDefaultDownPercent(t *testing.T) {
	tests := []struct {
		name  string
		tiers []float64
		want  float64
	}{
		{name: "prefers ten", tiers: []float64{5, 10, 15}, want: 10},
		{name: "falls back to fifteen", tiers: []float64{5, 15, 20}, want: 15},
		{name: "falls back to lowest", tiers: []float64{20, 25}, want: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := make([]model.RateRow, 0, len(tt.tiers))
			for _, tier := range tt.tiers {
				rows = append(rows, row(tier, nil))
			}
			got, ok := New(rows).DefaultDownPercent()
			require.True(t, ok)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

// Package ratetable holds the down-payment tier by period interest-rate matrix.
package ratetable

import (
	"iter"
	"math"
	"sort"

	"github.com/Veraticus/carquote/internal/model"
)

// Table is an immutable rate table ordered by ascending tier percent.
// A nil or empty Table is valid and means no rate data is available.
type Table struct {
	rows []model.RateRow
}

// New builds a Table from typed rows. Rows with a tier outside [0,100] are
// dropped, duplicate tiers keep their first occurrence, and rates that are
// negative or not finite are treated as unavailable.
func New(rows []model.RateRow) *Table {
	seen := make(map[float64]struct{}, len(rows))
	cleaned := make([]model.RateRow, 0, len(rows))

	for _, row := range rows {
		if !validTier(row.TierPercent) {
			continue
		}
		if _, dup := seen[row.TierPercent]; dup {
			continue
		}
		seen[row.TierPercent] = struct{}{}

		rates := make(map[model.Period]float64, len(row.Rates))
		for period, rate := range row.Rates {
			if !period.Valid() || !validRate(rate) {
				continue
			}
			rates[period] = rate
		}
		cleaned = append(cleaned, model.RateRow{TierPercent: row.TierPercent, Rates: rates})
	}

	sort.SliceStable(cleaned, func(i, j int) bool {
		return cleaned[i].TierPercent < cleaned[j].TierPercent
	})

	return &Table{rows: cleaned}
}

// Tiers yields the available tier percents in ascending order.
// The sequence can be ranged over any number of times.
func (t *Table) Tiers() iter.Seq[float64] {
	return func(yield func(float64) bool) {
		if t == nil {
			return
		}
		for _, row := range t.rows {
			if !yield(row.TierPercent) {
				return
			}
		}
	}
}

// Len returns the number of tiers.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// Empty reports whether the table carries no tiers.
func (t *Table) Empty() bool {
	return t.Len() == 0
}

// HasTier reports whether a tier with exactly this percent exists.
func (t *Table) HasTier(tier float64) bool {
	_, ok := t.Row(tier)
	return ok
}

// Row returns a copy of the row for tier.
func (t *Table) Row(tier float64) (model.RateRow, bool) {
	if t == nil {
		return model.RateRow{}, false
	}
	i := sort.Search(len(t.rows), func(i int) bool {
		return t.rows[i].TierPercent >= tier
	})
	if i == len(t.rows) || t.rows[i].TierPercent != tier {
		return model.RateRow{}, false
	}
	return copyRow(t.rows[i]), true
}

// RateFor returns the interest rate for an exact tier and period.
// It returns false when the tier is absent or the period has no numeric rate.
func (t *Table) RateFor(tier float64, period model.Period) (float64, bool) {
	row, ok := t.Row(tier)
	if !ok {
		return 0, false
	}
	return row.Rate(period)
}

// Rows returns a copy of every row in tier order.
func (t *Table) Rows() []model.RateRow {
	if t == nil {
		return nil
	}
	rows := make([]model.RateRow, len(t.rows))
	for i, row := range t.rows {
		rows[i] = copyRow(row)
	}
	return rows
}

// DefaultDownPercent suggests a starting percentage for percent-mode entry:
// 10 if offered, else 15, else the lowest tier.
func (t *Table) DefaultDownPercent() (float64, bool) {
	if t.Empty() {
		return 0, false
	}
	for _, preferred := range []float64{10, 15} {
		if t.HasTier(preferred) {
			return preferred, true
		}
	}
	return t.rows[0].TierPercent, true
}

func copyRow(row model.RateRow) model.RateRow {
	rates := make(map[model.Period]float64, len(row.Rates))
	for period, rate := range row.Rates {
		rates[period] = rate
	}
	return model.RateRow{TierPercent: row.TierPercent, Rates: rates}
}

func validTier(tier float64) bool {
	return !math.IsNaN(tier) && tier >= 0 && tier <= 100
}

func validRate(rate float64) bool {
	return !math.IsNaN(rate) && !math.IsInf(rate, 0) && rate >= 0
}

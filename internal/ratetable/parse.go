package ratetable

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/Veraticus/carquote/internal/model"
)

// tierColumns are the header names accepted for the down-payment tier column.
var tierColumns = map[string]struct{}{
	"ดาวน์":        {},
	"down":         {},
	"down payment": {},
	"tier":         {},
}

// Parse builds a Table from raw spreadsheet rows. The header must contain a
// tier column and at least one allowed-period column ("48", "60", "72", "84").
// Cells such as "10%" or " 1.5 % " are accepted; anything else that does not
// parse as a finite number is treated as missing.
func Parse(header []string, records [][]string) (*Table, error) {
	tierCol := -1
	periodCols := make(map[int]model.Period)

	for i, name := range header {
		normalized := normalizeHeader(name)
		if _, ok := tierColumns[normalized]; ok && tierCol < 0 {
			tierCol = i
			continue
		}
		if period, err := model.ParsePeriod(normalized); err == nil {
			periodCols[i] = period
		}
	}

	if tierCol < 0 {
		return nil, &InvalidTableError{Reason: "missing down payment tier column", Rows: len(records)}
	}
	if len(periodCols) == 0 {
		return nil, &InvalidTableError{Reason: "no period columns", Rows: len(records)}
	}

	rows := make([]model.RateRow, 0, len(records))
	skipped := 0

	for _, record := range records {
		tier, ok := cell(record, tierCol)
		if !ok || !validTier(tier) {
			skipped++
			continue
		}

		rates := make(map[model.Period]float64, len(periodCols))
		for col, period := range periodCols {
			if rate, ok := cell(record, col); ok && rate >= 0 {
				rates[period] = rate
			}
		}
		rows = append(rows, model.RateRow{TierPercent: tier, Rates: rates})
	}

	if skipped > 0 {
		slog.Debug("Skipped rate rows without a usable tier", "skipped", skipped, "total", len(records))
	}

	table := New(rows)
	if table.Empty() {
		return nil, &InvalidTableError{Reason: "no row has a valid down payment tier", Rows: len(records)}
	}

	return table, nil
}

// ParsePercent coerces a cell such as "12.5%" into 12.5.
func ParsePercent(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid percentage %q: %w", s, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid percentage %q: not a finite number", s)
	}
	return v, nil
}

func cell(record []string, col int) (float64, bool) {
	if col >= len(record) {
		return 0, false
	}
	v, err := ParsePercent(record[col])
	if err != nil {
		return 0, false
	}
	return v, true
}

func normalizeHeader(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.ReplaceAll(name, "_", " ")
}

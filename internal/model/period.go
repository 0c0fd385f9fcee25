// Package model defines the core domain models used throughout the application.
package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Period is a repayment period in months.
type Period int

// Allowed repayment periods.
const (
	Period48 Period = 48
	Period60 Period = 60
	Period72 Period = 72
	Period84 Period = 84
)

// AllowedPeriods lists every period a rate table may carry, in ascending order.
var AllowedPeriods = []Period{Period48, Period60, Period72, Period84}

// Months returns the period length as a float for arithmetic.
func (p Period) Months() float64 {
	return float64(p)
}

// Valid reports whether p is one of the allowed periods.
func (p Period) Valid() bool {
	for _, allowed := range AllowedPeriods {
		if p == allowed {
			return true
		}
	}
	return false
}

func (p Period) String() string {
	return fmt.Sprintf("%d months", int(p))
}

// ParsePeriod parses a period column header or user input such as "60" or "60 months".
func ParsePeriod(s string) (Period, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.TrimSuffix(s, "months")
	s = strings.TrimSuffix(s, "m")
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid period %q: %w", s, err)
	}

	p := Period(n)
	if !p.Valid() {
		return 0, fmt.Errorf("invalid period %d: must be one of %v", n, AllowedPeriods)
	}
	return p, nil
}

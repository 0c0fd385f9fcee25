package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Rounding selects how monetary figures are rounded for display. Quote
// values are never rounded before this point.
type Rounding string

const (
	// RoundCeil rounds up to the whole baht.
	RoundCeil Rounding = "ceil"
	// RoundHalfUp rounds to satang, half away from zero.
	RoundHalfUp Rounding = "round"
	// RoundBank rounds to satang, half to even.
	RoundBank Rounding = "bank"
)

// DefaultRounding shows amounts to the satang.
const DefaultRounding = RoundHalfUp

// Roundings lists every supported rounding policy.
var Roundings = []Rounding{RoundCeil, RoundHalfUp, RoundBank}

// ParseRounding parses a rounding policy name. An empty name selects DefaultRounding.
func ParseRounding(s string) (Rounding, error) {
	r := Rounding(strings.ToLower(strings.TrimSpace(s)))
	if r == "" {
		return DefaultRounding, nil
	}
	for _, known := range Roundings {
		if r == known {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown rounding %q: must be one of ceil, round, bank", s)
}

// Apply rounds v under the policy.
func (r Rounding) Apply(v float64) decimal.Decimal {
	d := decimal.NewFromFloat(v)
	switch r {
	case RoundHalfUp:
		return d.Round(2)
	case RoundBank:
		return d.RoundBank(2)
	default:
		// Drop float noise such as 60480.000000000015 before rounding up.
		return d.Round(8).Ceil()
	}
}

func (r Rounding) places() int32 {
	if r == RoundHalfUp || r == RoundBank {
		return 2
	}
	return 0
}

// Money formats v as baht with thousands separators, e.g. "฿1,234,567.50".
func (r Rounding) Money(v float64) string {
	return "฿" + groupThousands(r.Apply(v).StringFixed(r.places()))
}

// ParseNumber parses user input such as "1,250,000" or "15%".
func ParseNumber(s string) (float64, error) {
	cleaned := strings.TrimSpace(strings.TrimSuffix(strings.ReplaceAll(strings.TrimSpace(s), ",", ""), "%"))
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	return v, nil
}

// Percent formats a percentage with at most two decimals, e.g. "12.5%".
func Percent(v float64) string {
	return decimal.NewFromFloat(v).Round(2).String() + "%"
}

func groupThousands(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	whole, frac, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	for i, c := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}

	if hasFrac {
		return sign + b.String() + "." + frac
	}
	return sign + b.String()
}

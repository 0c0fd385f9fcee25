package config

import (
	"fmt"
	"math"

	"github.com/Veraticus/carquote/internal/common"
	"github.com/spf13/viper"
)

// DefaultMinimumDownPercent is the smallest down payment the sales team quotes.
const DefaultMinimumDownPercent = 5.0

// Quote holds the settings applied to every quote.
type Quote struct {
	Rounding           string
	MinimumDownPercent float64
}

// LoadQuoteConfig reads the quote.* keys.
func LoadQuoteConfig() (Quote, error) {
	cfg := Quote{
		MinimumDownPercent: DefaultMinimumDownPercent,
		Rounding:           "round",
	}

	if viper.IsSet("quote.minimum_down_percent") {
		cfg.MinimumDownPercent = viper.GetFloat64("quote.minimum_down_percent")
	}
	if v := viper.GetString("quote.rounding"); v != "" {
		cfg.Rounding = v
	}

	m := cfg.MinimumDownPercent
	if math.IsNaN(m) || m < 0 || m > 100 {
		return Quote{}, fmt.Errorf("%w: quote.minimum_down_percent must be between 0 and 100, got %v",
			common.ErrInvalidConfig, m)
	}

	return cfg, nil
}

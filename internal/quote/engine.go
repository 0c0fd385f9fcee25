// Package quote implements the financing quote engine: tier matching,
// the high down payment rule and installment arithmetic.
package quote

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/Veraticus/carquote/internal/model"
	"github.com/Veraticus/carquote/internal/ratetable"
)

// Config holds configuration options for the quote engine.
type Config struct {
	// MinimumDownPercent rejects requests whose down payment is a smaller
	// share of the price. Zero disables the check.
	MinimumDownPercent float64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{}
}

// Engine turns quote requests into results. It holds no per-request state
// and is safe for concurrent use.
type Engine struct {
	config Config
}

// New creates an engine with the default configuration.
func New() *Engine {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates an engine with custom configuration.
func NewWithConfig(config Config) *Engine {
	return &Engine{config: config}
}

// Quote computes the result for req against table.
//
// Malformed requests return an error wrapping ErrInvalidRequest, and an empty
// table returns ErrNoRateData. Every other outcome, including rejections, is
// reported through the returned Result.
func (e *Engine) Quote(req model.QuoteRequest, table *ratetable.Table) (Result, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	down, percent := req.DownPayment.Resolve(req.Price)
	if down >= req.Price {
		return NoFinancingNeeded{Price: req.Price, DownPaymentAmount: down}, nil
	}

	if e.config.MinimumDownPercent > 0 && percent < e.config.MinimumDownPercent {
		return nil, fmt.Errorf("%w: %w: %.2f%% is below %.2f%%",
			ErrInvalidRequest, ErrBelowMinimumDown, percent, e.config.MinimumDownPercent)
	}

	if table.Empty() {
		return nil, fmt.Errorf("%w: %w", ErrNoRateData, ratetable.ErrInvalidTable)
	}

	matcher := NewMatcher(table)
	scheme := matcher.Scheme(percent)

	slog.Debug("Selected quote scheme",
		"scheme", scheme.String(),
		"down_percent", percent,
		"period", int(req.Period))

	if scheme == SchemeHighDownPayment {
		return highDownPaymentResult(matcher, req, down, percent), nil
	}
	return standardResult(matcher, req, down, percent), nil
}

func standardResult(m *Matcher, req model.QuoteRequest, down, percent float64) Result {
	reject := func(err error) Result {
		return Rejected{Reason: err, Scheme: SchemeStandard, DownPercent: percent, Period: req.Period}
	}

	tier, err := m.MatchTier(percent)
	if err != nil {
		return reject(err)
	}

	rate, err := m.Rate(tier, req.Period)
	if err != nil {
		return reject(err)
	}

	installment, err := Calculate(req.Price, down, req.Period, rate)
	if err != nil {
		return reject(err)
	}

	return SingleQuote{Quote: buildQuote(req.Period, down, percent, tier, rate, installment)}
}

func highDownPaymentResult(m *Matcher, req model.QuoteRequest, down, percent float64) Result {
	candidates := m.QualifyingPeriods(req.Price - down)
	if len(candidates) == 0 {
		return Rejected{
			Reason:      ErrNoQualifyingPeriod,
			Scheme:      SchemeHighDownPayment,
			DownPercent: percent,
			Period:      req.Period,
		}
	}

	quotes := make([]model.Quote, 0, len(candidates))
	for _, candidate := range candidates {
		installment, err := Calculate(req.Price, down, candidate.Period, candidate.RatePercent)
		if err != nil {
			slog.Warn("Skipping period under high down payment rule", "period", int(candidate.Period), "error", err)
			continue
		}
		quotes = append(quotes, buildQuote(candidate.Period, down, percent, HighDownPaymentTier, candidate.RatePercent, installment))
	}

	return MultiQuote{Quotes: quotes}
}

func buildQuote(period model.Period, down, percent, tier, rate float64, installment Installment) model.Quote {
	return model.Quote{
		DownPaymentAmount:   down,
		DownPercent:         percent,
		Period:              period,
		MatchedTierPercent:  tier,
		InterestRatePercent: rate,
		LoanAmount:          installment.LoanAmount,
		TotalInterest:       installment.TotalInterest,
		MonthlyInstallment:  installment.MonthlyInstallment,
	}
}

func validateRequest(req model.QuoteRequest) error {
	var problems []error

	if !finite(req.Price) || req.Price <= 0 {
		problems = append(problems, fmt.Errorf("price must be positive, got %v", req.Price))
	}
	if !req.Period.Valid() {
		problems = append(problems, fmt.Errorf("period must be one of %v, got %d", model.AllowedPeriods, int(req.Period)))
	}

	value := req.DownPayment.Value
	switch req.DownPayment.Mode {
	case model.DownPaymentAmount:
		if !finite(value) || value < 0 {
			problems = append(problems, fmt.Errorf("down payment amount must not be negative, got %v", value))
		}
	case model.DownPaymentPercent:
		if !finite(value) || value < 0 || value > 100 {
			problems = append(problems, fmt.Errorf("down payment percent must be within [0,100], got %v", value))
		}
	default:
		problems = append(problems, fmt.Errorf("unknown down payment mode %q", req.DownPayment.Mode))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, errors.Join(problems...))
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

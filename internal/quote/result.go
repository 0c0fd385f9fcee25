package quote

import "github.com/Veraticus/carquote/internal/model"

// Result is the outcome of a quote request. It is one of SingleQuote,
// MultiQuote, Rejected or NoFinancingNeeded.
type Result interface {
	isResult()
}

// SingleQuote is the standard scheme outcome for the requested period.
type SingleQuote struct {
	Quote model.Quote
}

// MultiQuote lists every qualifying period under the high down payment scheme.
type MultiQuote struct {
	Quotes []model.Quote
}

// Rejected means no quote could be produced. Reason wraps one of the
// rejection errors (ErrNoQualifyingTier, ErrUnavailablePeriod,
// ErrInvalidPeriod, ErrNoQualifyingPeriod).
type Rejected struct {
	Reason      error
	Scheme      Scheme
	DownPercent float64
	Period      model.Period
}

// NoFinancingNeeded means the down payment covers the price.
type NoFinancingNeeded struct {
	Price             float64
	DownPaymentAmount float64
}

func (SingleQuote) isResult()       {}
func (MultiQuote) isResult()        {}
func (Rejected) isResult()          {}
func (NoFinancingNeeded) isResult() {}

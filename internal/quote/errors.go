package quote

import "errors"

// Quote errors.
var (
	// Request errors, returned to the caller.
	ErrInvalidRequest   = errors.New("invalid quote request")
	ErrBelowMinimumDown = errors.New("down payment below required minimum")
	ErrNoRateData       = errors.New("no rate data available")

	// Rejection reasons, carried by Rejected.
	ErrNoQualifyingTier   = errors.New("no rate tier at or below the down payment percentage")
	ErrUnavailablePeriod  = errors.New("no interest rate for the requested period")
	ErrInvalidPeriod      = errors.New("period must be a positive number of months")
	ErrNoQualifyingPeriod = errors.New("no period exceeds the minimum interest under the high down payment rule")

	// ErrNoFinancingNeeded is returned by Calculate when the down payment covers the price.
	ErrNoFinancingNeeded = errors.New("down payment covers the full price")
)

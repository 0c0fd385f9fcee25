package quote

import (
	"fmt"

	"github.com/Veraticus/carquote/internal/model"
)

// Installment is the un-rounded result of a flat-interest calculation.
type Installment struct {
	LoanAmount         float64
	TotalInterest      float64
	MonthlyInstallment float64
}

// Calculate applies the flat-interest formulas:
//
//	loan     = price - down
//	interest = loan * rate/100 * months/12
//	monthly  = (loan + interest) / months
func Calculate(price, downPayment float64, period model.Period, ratePercent float64) (Installment, error) {
	if period <= 0 {
		return Installment{}, fmt.Errorf("%w: got %d", ErrInvalidPeriod, int(period))
	}
	if downPayment >= price {
		return Installment{}, ErrNoFinancingNeeded
	}

	loan := price - downPayment
	interest := TotalInterest(loan, ratePercent, period)

	return Installment{
		LoanAmount:         loan,
		TotalInterest:      interest,
		MonthlyInstallment: (loan + interest) / period.Months(),
	}, nil
}

// TotalInterest returns the flat interest owed on loan over period.
func TotalInterest(loan, ratePercent float64, period model.Period) float64 {
	return loan * (ratePercent / 100) * (period.Months() / 12)
}

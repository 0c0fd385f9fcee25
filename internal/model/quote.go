package model

// DownPaymentMode indicates how a down payment was entered.
type DownPaymentMode string

const (
	// DownPaymentAmount means Value is a currency amount.
	DownPaymentAmount DownPaymentMode = "amount"
	// DownPaymentPercent means Value is a percentage of the price.
	DownPaymentPercent DownPaymentMode = "percent"
)

// DownPayment is a down payment entered either as an amount or as a percentage.
type DownPayment struct {
	Mode  DownPaymentMode
	Value float64
}

// AmountDown returns a down payment entered as a currency amount.
func AmountDown(amount float64) DownPayment {
	return DownPayment{Mode: DownPaymentAmount, Value: amount}
}

// PercentDown returns a down payment entered as a percentage of the price.
func PercentDown(percent float64) DownPayment {
	return DownPayment{Mode: DownPaymentPercent, Value: percent}
}

// Resolve returns the down payment as both an amount and a percentage of price.
// The caller guarantees price > 0.
func (d DownPayment) Resolve(price float64) (amount, percent float64) {
	if d.Mode == DownPaymentPercent {
		return d.Value / 100 * price, d.Value
	}
	return d.Value, d.Value / price * 100
}

// QuoteRequest is a single financing quote request.
type QuoteRequest struct {
	DownPayment DownPayment
	Price       float64
	Period      Period
}

// Quote is the financing outcome for one period. Values are not rounded.
type Quote struct {
	DownPaymentAmount   float64
	DownPercent         float64
	MatchedTierPercent  float64
	InterestRatePercent float64
	LoanAmount          float64
	TotalInterest       float64
	MonthlyInstallment  float64
	Period              Period
}

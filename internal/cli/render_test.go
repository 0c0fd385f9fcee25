package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Veraticus/carquote/internal/model"
	"github.com/Veraticus/carquote/internal/quote"
	"github.com/stretchr/testify/assert"
)

func TestRenderResult_SingleQuote(t *testing.T) {
	out := RenderResult(quote.SingleQuote{Quote: model.Quote{
		DownPaymentAmount:   100_000,
		DownPercent:         10,
		Period:              model.Period60,
		MatchedTierPercent:  10,
		InterestRatePercent: 2,
		LoanAmount:          900_000,
		TotalInterest:       90_000,
		MonthlyInstallment:  16_500,
	}}, RoundCeil)

	assert.Contains(t, out, "Your Quote")
	assert.Contains(t, out, "฿900,000")
	assert.Contains(t, out, "฿90,000")
	assert.Contains(t, out, "60 months")
	assert.Contains(t, out, "Monthly installment: ฿16,500")
}

func TestRenderResult_MultiQuote(t *testing.T) {
	quotes := []model.Quote{
		{DownPaymentAmount: 320_000, DownPercent: 40, LoanAmount: 480_000, Period: model.Period60, InterestRatePercent: 1.2, TotalInterest: 28_800, MonthlyInstallment: 8_480},
		{DownPaymentAmount: 320_000, DownPercent: 40, LoanAmount: 480_000, Period: model.Period72, InterestRatePercent: 1.5, TotalInterest: 43_200, MonthlyInstallment: 7266.666666666667},
	}

	out := RenderResult(quote.MultiQuote{Quotes: quotes}, RoundHalfUp)

	assert.Contains(t, out, "High down payment options")
	assert.Contains(t, out, "72 months")
	assert.Contains(t, out, "฿7,266.67")
	assert.Contains(t, out, "฿25,000.00")
	assert.Contains(t, out, "Loan amount: ฿480,000.00")
}

func TestRenderResult_Rejected(t *testing.T) {
	tests := []struct {
		reason error
		name   string
		want   string
	}{
		{name: "no tier", reason: quote.ErrNoQualifyingTier, want: "below the lowest rate tier"},
		{name: "no period rate", reason: fmt.Errorf("tier 10: %w", quote.ErrUnavailablePeriod), want: "No interest rate is offered for 84 months"},
		{name: "no qualifying period", reason: quote.ErrNoQualifyingPeriod, want: "no period earns more than ฿25,000"},
		{name: "other", reason: errors.New("something odd"), want: "something odd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := RenderResult(quote.Rejected{Reason: tt.reason, DownPercent: 5, Period: model.Period84}, RoundCeil)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestRenderResult_NoFinancingNeeded(t *testing.T) {
	out := RenderResult(quote.NoFinancingNeeded{Price: 699_900, DownPaymentAmount: 699_900}, RoundCeil)
	assert.Contains(t, out, "No financing needed")
	assert.Contains(t, out, "฿699,900")
}

func TestRenderResult_EmptyMultiQuote(t *testing.T) {
	out := RenderResult(quote.MultiQuote{}, RoundCeil)
	assert.Contains(t, out, "no period earns more than")
}

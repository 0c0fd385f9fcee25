package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Veraticus/carquote/internal/model"
	"github.com/Veraticus/carquote/internal/quote"
)

// RenderResult formats a quote result for the terminal.
func RenderResult(result quote.Result, rounding Rounding) string {
	switch r := result.(type) {
	case quote.SingleQuote:
		return renderSingle(r.Quote, rounding)
	case quote.MultiQuote:
		return renderMulti(r.Quotes, rounding)
	case quote.Rejected:
		return renderRejected(r)
	case quote.NoFinancingNeeded:
		return FormatSuccess(fmt.Sprintf("A down payment of %s covers the full price of %s. No financing needed.",
			rounding.Money(r.DownPaymentAmount), rounding.Money(r.Price)))
	default:
		return FormatError(fmt.Sprintf("unknown result %T", result))
	}
}

func renderSingle(q model.Quote, rounding Rounding) string {
	lines := []string{
		fmt.Sprintf("Down payment:        %s (%s)", rounding.Money(q.DownPaymentAmount), Percent(q.DownPercent)),
		fmt.Sprintf("Rate tier:           %s down", Percent(q.MatchedTierPercent)),
		fmt.Sprintf("Interest rate:       %s per year", Percent(q.InterestRatePercent)),
		fmt.Sprintf("Loan amount:         %s", rounding.Money(q.LoanAmount)),
		fmt.Sprintf("Total interest:      %s", rounding.Money(q.TotalInterest)),
		fmt.Sprintf("Period:              %s", q.Period),
		"",
		HighlightStyle.Render(fmt.Sprintf("Monthly installment: %s", rounding.Money(q.MonthlyInstallment))),
	}
	return RenderBox(MoneyIcon+" Your Quote", strings.Join(lines, "\n"))
}

func renderMulti(quotes []model.Quote, rounding Rounding) string {
	if len(quotes) == 0 {
		return renderRejected(quote.Rejected{Reason: quote.ErrNoQualifyingPeriod})
	}

	var b strings.Builder

	first := quotes[0]
	b.WriteString(FormatTitle("High down payment options"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Down payment %s (%s) uses the %s tier. Periods shown earn more than %s interest.\n\n",
		rounding.Money(first.DownPaymentAmount), Percent(first.DownPercent),
		Percent(quote.HighDownPaymentTier), rounding.Money(quote.MinimumInterest))

	t := NewTable("Option", "Period", "Rate", "Total interest", "Monthly")
	for i, q := range quotes {
		t.Row(strconv.Itoa(i+1), q.Period.String(), Percent(q.InterestRatePercent),
			rounding.Money(q.TotalInterest), rounding.Money(q.MonthlyInstallment))
	}
	b.WriteString(t.Render())

	fmt.Fprintf(&b, "\n\nLoan amount: %s\n", rounding.Money(first.LoanAmount))
	return b.String()
}

func renderRejected(r quote.Rejected) string {
	var msg string
	switch {
	case errors.Is(r.Reason, quote.ErrNoQualifyingTier):
		msg = fmt.Sprintf("A %s down payment is below the lowest rate tier. Try a larger down payment.",
			Percent(r.DownPercent))
	case errors.Is(r.Reason, quote.ErrUnavailablePeriod):
		msg = fmt.Sprintf("No interest rate is offered for %s at a %s down payment. Try another period.",
			r.Period, Percent(r.DownPercent))
	case errors.Is(r.Reason, quote.ErrNoQualifyingPeriod):
		msg = fmt.Sprintf("With %s down, no period earns more than %s in interest. Try a smaller down payment.",
			Percent(r.DownPercent), DefaultRounding.Money(quote.MinimumInterest))
	case r.Reason != nil:
		msg = r.Reason.Error()
	default:
		msg = "No quote available."
	}
	return FormatError(msg)
}

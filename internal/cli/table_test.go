package cli

import (
	"strings"
	"testing"

	"github.com/Veraticus/carquote/internal/model"
	"github.com/Veraticus/carquote/internal/quote"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTable_ColoredHeaderAligned(t *testing.T) {
	profile := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.TrueColor)
	t.Cleanup(func() { lipgloss.SetColorProfile(profile) })

	out := NewTable("Option", "Period", "Monthly").
		Row("1", "60 months", "฿8,480.00").
		Row("2", "84 months", "฿6,434.29").
		Render()

	assert.Contains(t, out, "\x1b[", "header should carry styling")

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Greater(t, len(lines), 3)
	want := lipgloss.Width(lines[0])
	for i, line := range lines {
		assert.Equal(t, want, lipgloss.Width(line), "line %d: %q", i, line)
	}
}

func TestRenderResult_MultiQuoteColumnsAligned(t *testing.T) {
	profile := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.TrueColor)
	t.Cleanup(func() { lipgloss.SetColorProfile(profile) })

	out := RenderResult(quote.MultiQuote{Quotes: []model.Quote{
		{DownPercent: 40, LoanAmount: 480_000, Period: model.Period60, InterestRatePercent: 1.2, TotalInterest: 28_800, MonthlyInstallment: 8_480},
		{DownPercent: 40, LoanAmount: 480_000, Period: model.Period84, InterestRatePercent: 1.8, TotalInterest: 60_480, MonthlyInstallment: 6434.285714285714},
	}}, RoundHalfUp)

	var widths []int
	for _, line := range strings.Split(out, "\n") {
		if strings.ContainsAny(line, "╭│├╰") {
			widths = append(widths, lipgloss.Width(line))
		}
	}
	require.Len(t, widths, 5)
	for _, w := range widths {
		assert.Equal(t, widths[0], w)
	}
}

package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/carquote/internal/cli"
	"github.com/Veraticus/carquote/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.step {
	case StepVehicle:
		body = m.renderVehicleStep()
	case StepDownPayment:
		body = m.renderDownPaymentStep()
	case StepPeriod:
		body = m.renderPeriodStep()
	case StepResult:
		body = m.renderResultStep()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Title.Render(cli.CarIcon+" Car Financing Quote"),
		body,
		"",
		m.help.View(m.keymap),
	)
}

func (m Model) renderVehicleStep() string {
	if len(m.vehicles) == 0 {
		return m.theme.StatusError.Render("No vehicles available. Run carquote sync first.")
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Subtitle.Render("1/3 Choose a vehicle"),
		m.vehicleTable.View(),
	)
}

func (m Model) renderDownPaymentStep() string {
	lines := []string{
		m.theme.Subtitle.Render("2/3 Down payment"),
		m.theme.Bold.Render(fmt.Sprintf("%s  %s", m.vehicle.DisplayName(), m.rounding.Money(m.vehicle.Price))),
		"",
		m.downInput.View(),
		m.theme.Muted.Render("Tab switches between amount and percentage"),
	}
	if m.inputErr != nil {
		lines = append(lines, m.theme.StatusError.Render(cli.ErrorIcon+" "+m.inputErr.Error()))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderPeriodStep() string {
	var b strings.Builder
	b.WriteString(m.theme.Subtitle.Render("3/3 Repayment period"))
	b.WriteString("\n")

	for i, period := range model.AllowedPeriods {
		line := "  " + period.String()
		if i == m.periodCursor {
			line = m.theme.Selected.Render("> " + period.String())
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderResultStep() string {
	header := m.theme.Bold.Render(fmt.Sprintf("%s  %s", m.vehicle.DisplayName(), m.rounding.Money(m.vehicle.Price)))
	if m.err != nil {
		return lipgloss.JoinVertical(lipgloss.Left,
			header,
			m.theme.StatusError.Render(cli.ErrorIcon+" "+m.err.Error()),
		)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		cli.RenderResult(m.result, m.rounding),
		m.theme.Muted.Render("n: new quote  Esc: change period"),
	)
}

package cli

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
	tableHeaderStyle = tableCellStyle.Bold(true).Foreground(PrimaryColor)
)

// NewTable returns a bordered table with styled headers. Column widths are
// measured after styling, so colored headers stay aligned with their rows.
func NewTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(SubtleColor)).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle
		})
}

package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the quote wizard and blocks until the user quits or ctx is done.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Catalog == nil || cfg.Catalog.Len() == 0 {
		return fmt.Errorf("no vehicles available")
	}
	if cfg.Rates.Empty() {
		return fmt.Errorf("no rate data available")
	}

	p := tea.NewProgram(New(cfg), tea.WithContext(ctx), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("quote wizard failed: %w", err)
	}
	return nil
}

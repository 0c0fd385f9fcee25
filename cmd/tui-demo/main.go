// Package main runs the quote wizard against built-in sample data.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/Veraticus/carquote/internal/catalog"
	"github.com/Veraticus/carquote/internal/cli"
	"github.com/Veraticus/carquote/internal/quote"
	"github.com/Veraticus/carquote/internal/ratetable"
	"github.com/Veraticus/carquote/internal/testutil"
	"github.com/Veraticus/carquote/internal/tui"
	"github.com/Veraticus/carquote/internal/tui/themes"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := tui.Run(ctx, tui.Config{
		Catalog:  catalog.New(testutil.SampleVehicles()),
		Rates:    ratetable.New(testutil.SampleRates()),
		Engine:   quote.New(),
		Rounding: cli.DefaultRounding,
		Theme:    themes.Default,
	})
	if err != nil {
		// Use explicit error check to satisfy forbidigo
		_, _ = fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

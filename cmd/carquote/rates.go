package main

import (
	"fmt"
	"time"

	"github.com/Veraticus/carquote/internal/cli"
	"github.com/Veraticus/carquote/internal/common"
	"github.com/Veraticus/carquote/internal/model"
	"github.com/spf13/cobra"
)

func ratesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rates",
		Short: "Show the interest rate table",
		Long: `Show the interest rate for every down payment tier and period from the last
sync. A dash means the tier does not offer that period.`,
		RunE: runRates,
	}
}

func runRates(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			common.LogError(closeErr, "Failed to close storage", nil)
		}
	}()

	data, err := loadStoredData(ctx, store)
	if err != nil {
		return err
	}

	info, err := store.GetLastSync(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("%s Interest rates", cli.MoneyIcon)))
	fmt.Fprintln(out, cli.SubtleStyle.Render(fmt.Sprintf("Synced %s from %s",
		info.SyncedAt.Local().Format(time.DateTime), info.Source)))

	if data.rates.Empty() {
		fmt.Fprintln(out, cli.FormatWarning("The rate table is empty"))
		return nil
	}

	header := []string{"Down payment"}
	for _, p := range model.AllowedPeriods {
		header = append(header, p.String())
	}
	t := cli.NewTable(header...)

	for tier := range data.rates.Tiers() {
		row := []string{cli.Percent(tier)}
		for _, p := range model.AllowedPeriods {
			if rate, ok := data.rates.RateFor(tier, p); ok {
				row = append(row, cli.Percent(rate))
			} else {
				row = append(row, "-")
			}
		}
		t.Row(row...)
	}

	_, err = fmt.Fprintln(out, t.Render())
	return err
}

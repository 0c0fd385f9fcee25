package main

import (
	"errors"
	"fmt"

	"github.com/Veraticus/carquote/internal/cli"
	"github.com/Veraticus/carquote/internal/common"
	"github.com/Veraticus/carquote/internal/config"
	"github.com/Veraticus/carquote/internal/model"
	"github.com/Veraticus/carquote/internal/quote"
	"github.com/Veraticus/carquote/internal/tui"
	"github.com/Veraticus/carquote/internal/tui/themes"
	"github.com/spf13/cobra"
)

func quoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Quote monthly installments for a vehicle",
		Long: `Quote monthly installments for a vehicle from the synced price list and rate table.

Pick the vehicle with --model and --submodel (or give a --price directly), and
the down payment with either --down-amount or --down-percent. Down payments
above 30% of the price list every period that meets the minimum interest.

Run with -i to be asked each question, or --tui for the full-screen wizard.`,
		Example: `  carquote quote --model Civic --submodel EL --down-percent 20 --period 60
  carquote quote --price 1000000 --down-amount 100000 --period 48
  carquote quote -i`,
		RunE: runQuote,
	}

	cmd.Flags().String("model", "", "Vehicle model")
	cmd.Flags().String("submodel", "", "Vehicle sub model")
	cmd.Flags().Float64("price", 0, "Vehicle price (overrides the catalog)")
	cmd.Flags().Float64("down-amount", 0, "Down payment amount")
	cmd.Flags().Float64("down-percent", 0, "Down payment as a percentage of the price")
	cmd.Flags().Int("period", 0, "Repayment period in months (48, 60, 72 or 84)")
	cmd.Flags().String("rounding", "", "Rounding for displayed amounts (ceil, round, bank)")
	cmd.Flags().Float64("min-down", -1, "Minimum down payment percentage (overrides config)")
	cmd.Flags().BoolP("interactive", "i", false, "Answer each question interactively")
	cmd.Flags().Bool("tui", false, "Use the full-screen quote wizard")
	cmd.Flags().Bool("live", false, "Read the sheets directly instead of the synced data")

	cmd.MarkFlagsMutuallyExclusive("down-amount", "down-percent")
	cmd.MarkFlagsMutuallyExclusive("interactive", "tui")

	return cmd
}

func runQuote(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	quoteCfg, err := config.LoadQuoteConfig()
	if err != nil {
		return err
	}
	if v, _ := cmd.Flags().GetString("rounding"); v != "" {
		quoteCfg.Rounding = v
	}
	if v, _ := cmd.Flags().GetFloat64("min-down"); v >= 0 {
		quoteCfg.MinimumDownPercent = v
	}

	rounding, err := cli.ParseRounding(quoteCfg.Rounding)
	if err != nil {
		return common.NewUserError("Unknown rounding, use ceil, round or bank", err)
	}

	data, err := loadQuoteData(cmd)
	if err != nil {
		return err
	}

	engine := quote.NewWithConfig(quote.Config{MinimumDownPercent: quoteCfg.MinimumDownPercent})

	if useTUI, _ := cmd.Flags().GetBool("tui"); useTUI {
		return tui.Run(ctx, tui.Config{
			Catalog:  data.catalog,
			Rates:    data.rates,
			Engine:   engine,
			Rounding: rounding,
			Theme:    themes.Default,
		})
	}

	var (
		vehicle model.Vehicle
		req     model.QuoteRequest
	)

	if interactive, _ := cmd.Flags().GetBool("interactive"); interactive {
		interruptHandler := cli.NewInterruptHandler(out)
		ctx = interruptHandler.HandleInterrupts(ctx, "Quote")

		prompter := cli.NewQuotePrompter(cmd.InOrStdin(), out)
		vehicle, req, err = prompter.PromptRequest(ctx, data.catalog, data.rates)
		if err != nil {
			if interruptHandler.WasInterrupted() || errors.Is(err, cli.ErrInputTerminated) {
				return nil
			}
			return fmt.Errorf("failed to read quote details: %w", err)
		}
	} else {
		vehicle, req, err = requestFromFlags(cmd, data)
		if err != nil {
			return err
		}
	}

	result, err := engine.Quote(req, data.rates)
	switch {
	case errors.Is(err, quote.ErrBelowMinimumDown):
		return common.NewUserError(
			fmt.Sprintf("Down payment must be at least %s of the price", cli.Percent(quoteCfg.MinimumDownPercent)), err)
	case errors.Is(err, quote.ErrInvalidRequest):
		return common.NewUserError("Invalid quote request", err)
	case errors.Is(err, quote.ErrNoRateData):
		return common.NewUserError("The rate table is empty. Run 'carquote sync' to refresh it", err)
	case err != nil:
		return err
	}

	if vehicle.Model != "" {
		fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("%s %s  %s", cli.CarIcon, vehicle.DisplayName(), rounding.Money(vehicle.Price))))
	}
	fmt.Fprintln(out, cli.RenderResult(result, rounding))

	return nil
}

func loadQuoteData(cmd *cobra.Command) (*quoteData, error) {
	ctx := cmd.Context()

	if live, _ := cmd.Flags().GetBool("live"); live {
		return loadLiveData(ctx)
	}

	store, err := initStorage(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			common.LogError(closeErr, "Failed to close storage", nil)
		}
	}()

	return loadStoredData(ctx, store)
}

// requestFromFlags builds a request from the command line. The vehicle is
// zero when the price is given directly.
func requestFromFlags(cmd *cobra.Command, data *quoteData) (model.Vehicle, model.QuoteRequest, error) {
	modelName, _ := cmd.Flags().GetString("model")
	subModel, _ := cmd.Flags().GetString("submodel")
	price, _ := cmd.Flags().GetFloat64("price")
	periodMonths, _ := cmd.Flags().GetInt("period")

	var vehicle model.Vehicle
	if modelName != "" || subModel != "" {
		found, err := data.catalog.Find(modelName, subModel)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return model.Vehicle{}, model.QuoteRequest{}, common.NewUserError(
					fmt.Sprintf("No vehicle %q %q in the price list. Run 'carquote vehicles' to see what is available", modelName, subModel), err)
			}
			return model.Vehicle{}, model.QuoteRequest{}, err
		}
		vehicle = found
		if !cmd.Flags().Changed("price") {
			price = found.Price
		}
	}
	if price <= 0 {
		return model.Vehicle{}, model.QuoteRequest{}, common.NewUserError(
			"Choose a vehicle with --model and --submodel, or give a --price", common.ErrInvalidInput)
	}

	var down model.DownPayment
	switch {
	case cmd.Flags().Changed("down-amount"):
		amount, _ := cmd.Flags().GetFloat64("down-amount")
		down = model.AmountDown(amount)
	case cmd.Flags().Changed("down-percent"):
		percent, _ := cmd.Flags().GetFloat64("down-percent")
		down = model.PercentDown(percent)
	default:
		percent, ok := data.rates.DefaultDownPercent()
		if !ok {
			return model.Vehicle{}, model.QuoteRequest{}, common.NewUserError(
				"Give a down payment with --down-amount or --down-percent", common.ErrInvalidInput)
		}
		down = model.PercentDown(percent)
	}

	period := model.Period(periodMonths)
	if !period.Valid() {
		return model.Vehicle{}, model.QuoteRequest{}, common.NewUserError(
			"Period must be 48, 60, 72 or 84 months", common.ErrInvalidInput)
	}

	return vehicle, model.QuoteRequest{Price: price, DownPayment: down, Period: period}, nil
}

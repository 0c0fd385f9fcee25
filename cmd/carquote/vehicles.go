package main

import (
	"fmt"

	"github.com/Veraticus/carquote/internal/cli"
	"github.com/Veraticus/carquote/internal/common"
	"github.com/Veraticus/carquote/internal/config"
	"github.com/spf13/cobra"
)

func vehiclesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vehicles",
		Short: "List vehicles in the price list",
		Long:  `List the vehicles and prices from the last sync, optionally filtered by model.`,
		RunE:  runVehicles,
	}

	cmd.Flags().String("model", "", "Only show this model")
	cmd.Flags().Bool("images", false, "Show image links")

	return cmd
}

func runVehicles(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	modelFilter, _ := cmd.Flags().GetString("model")
	showImages, _ := cmd.Flags().GetBool("images")

	quoteCfg, err := config.LoadQuoteConfig()
	if err != nil {
		return err
	}
	rounding, err := cli.ParseRounding(quoteCfg.Rounding)
	if err != nil {
		return err
	}

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

	vehicles := data.catalog.Vehicles()
	if modelFilter != "" {
		if len(data.catalog.SubModels(modelFilter)) == 0 {
			return common.NewUserError(fmt.Sprintf("No model %q in the price list", modelFilter), common.ErrNotFound)
		}
		vehicles = nil
		for _, v := range data.catalog.Vehicles() {
			if v.Model == modelFilter {
				vehicles = append(vehicles, v)
			}
		}
	}

	fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("%s Vehicles (%d)", cli.CarIcon, len(vehicles))))

	header := []string{"Model", "Sub model", "Price"}
	if showImages {
		header = append(header, "Image")
	}
	t := cli.NewTable(header...)
	for _, v := range vehicles {
		row := []string{v.Model, v.SubModel, rounding.Money(v.Price)}
		if showImages {
			row = append(row, v.ImageURL)
		}
		t.Row(row...)
	}

	_, err = fmt.Fprintln(out, t.Render())
	return err
}

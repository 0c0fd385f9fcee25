package main

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/carquote/internal/cli"
	"github.com/Veraticus/carquote/internal/common"
	"github.com/Veraticus/carquote/internal/sheets"
	"github.com/spf13/cobra"
)

const stepSave = "saving snapshot"

func syncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Download the vehicle catalog and rate table",
		Long: `Download the vehicle catalog and rate table from Google Sheets and store them
locally, replacing the previous snapshot.

Public share links (sheets.catalog_url and sheets.rates_url) are downloaded as
CSV. Otherwise the Sheets API is used with sheets.spreadsheet_id and the
credentials from 'carquote auth sheets' or a service account.`,
		RunE: runSync,
	}

	cmd.Flags().Bool("dry-run", false, "Download and validate without saving")
	cmd.Flags().Bool("no-progress", false, "Hide the progress bar")

	return cmd
}

func runSync(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	noProgress, _ := cmd.Flags().GetBool("no-progress")

	interruptHandler := cli.NewInterruptHandler(out)
	ctx := interruptHandler.HandleInterrupts(cmd.Context(), "Sync")

	var progress *cli.SyncProgress
	report := func(string) {}
	if !noProgress {
		progress = cli.NewSyncProgress(out, len(sheets.SyncSteps)+1)
		report = progress.Step
	}

	snap, err := fetchLiveSnapshot(ctx, report)
	if err != nil {
		if interruptHandler.WasInterrupted() {
			return nil
		}
		return fmt.Errorf("sync failed: %w", err)
	}

	if dryRun {
		if progress != nil {
			progress.Finish()
		}
		fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("Dry run: %d vehicles and %d rate tiers are valid, nothing saved",
			len(snap.Vehicles), len(snap.Rates))))
		return nil
	}

	report(stepSave)
	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Error("Failed to close storage", "error", closeErr)
		}
	}()

	if err := store.SaveSnapshot(ctx, *snap); err != nil {
		if interruptHandler.WasInterrupted() {
			return nil
		}
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	if progress != nil {
		progress.Finish()
	}

	common.LogInfo("Sync completed", common.Fields{
		"vehicles": len(snap.Vehicles),
		"tiers":    len(snap.Rates),
		"source":   snap.Source,
	})
	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("%s Synced %d vehicles and %d rate tiers",
		cli.SyncIcon, len(snap.Vehicles), len(snap.Rates))))

	return nil
}

package main

import (
	"fmt"

	"github.com/gartstein/efportfolio/internal/portfolio/ingest"
	"github.com/spf13/cobra"
)

var dedupeArgs struct {
	dryRun bool
}

var dedupeCmd = &cobra.Command{
	Use:   "dedupe",
	Short: "Remove founders duplicated within a company",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		defer syncLogger(logger)

		ctx := cmd.Context()
		repo, err := initDatabase(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer repo.Close()

		publisher := initPublisher(cfg, logger)
		defer publisher.Close()

		report, err := ingest.NewDeduplicator(repo, publisher, logger, dedupeArgs.dryRun).Run(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Initial founders: %d\nDuplicates found: %d\nDeleted: %d\nFinal founders: %d\n",
			report.Initial, report.Duplicates, report.Deleted, report.Final)
		return nil
	},
}

func init() {
	dedupeCmd.Flags().BoolVar(&dedupeArgs.dryRun, "dry-run", false, "report duplicates without deleting them")
}

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/gartstein/efportfolio/internal/portfolio/ingest"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Upsert a scraped JSON dump of companies and founders",
	Long:  "Reads a JSON array of companies with nested founders from file, or stdin when no file or \"-\" is given.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, argv []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		defer syncLogger(logger)

		var in io.Reader = cmd.InOrStdin()
		if len(argv) == 1 && argv[0] != "-" {
			f, err := os.Open(argv[0])
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}

		ctx := cmd.Context()
		repo, err := initDatabase(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer repo.Close()

		snapshots := initCache(ctx, cfg, logger)
		defer snapshots.Close()

		publisher := initPublisher(cfg, logger)
		defer publisher.Close()

		report, err := ingest.NewImporter(repo, publisher, snapshots, logger).Import(ctx, in)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Companies: %d\nFounders: %d\nSkipped: %d\n",
			report.Companies, report.Founders, report.Skipped)
		return nil
	},
}

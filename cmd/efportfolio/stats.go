package main

import (
	"time"

	"github.com/gartstein/efportfolio/internal/portfolio/browser"
	"github.com/gartstein/efportfolio/internal/portfolio/cache"
	"github.com/gartstein/efportfolio/internal/portfolio/controller"
	"github.com/gartstein/efportfolio/internal/portfolio/engine"
	"github.com/spf13/cobra"
)

var founderStatsArgs struct {
	year int
	top  int
}

var founderStatsCmd = &cobra.Command{
	Use:   "founder-stats",
	Short: "Print founder age, education and employer statistics",
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

		year := founderStatsArgs.year
		if year == 0 {
			year = time.Now().Year()
		}
		stats, err := controller.NewDirectoryService(repo, cache.Nop{}, logger).FounderStats(ctx, year, founderStatsArgs.top)
		if err != nil {
			return err
		}
		return browser.RenderFounderStats(cmd.OutOrStdout(), stats)
	},
}

func init() {
	founderStatsCmd.Flags().IntVar(&founderStatsArgs.year, "year", 0, "reference year for ages (default current year)")
	founderStatsCmd.Flags().IntVar(&founderStatsArgs.top, "top", engine.DefaultTopN, "number of universities and employers to rank")
}

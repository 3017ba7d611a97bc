package main

import (
	"os/signal"
	"syscall"

	"github.com/gartstein/efportfolio/internal/portfolio/browser"
	"github.com/gartstein/efportfolio/internal/portfolio/client"
	"github.com/gartstein/efportfolio/internal/portfolio/controller"
	"github.com/spf13/cobra"
)

var browseArgs struct {
	api   string
	local bool
}

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the portfolio interactively",
	Long:  "Loads the company snapshot from the API (or the local database with --local) and reads commands from stdin.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		defer syncLogger(logger)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		var source client.Source
		if browseArgs.local {
			repo, err := initDatabase(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer repo.Close()
			snapshots := initCache(ctx, cfg, logger)
			defer snapshots.Close()
			source = controller.NewDirectoryService(repo, snapshots, logger)
		} else {
			baseURL := cfg.APIURL
			if browseArgs.api != "" {
				baseURL = browseArgs.api
			}
			source, err = client.NewHTTPClient(baseURL, nil, logger)
			if err != nil {
				return err
			}
		}

		store := browser.NewStore(source, logger)
		defer store.Wait()
		return browser.NewConsole(store, cmd.OutOrStdout(), logger).Run(ctx, cmd.InOrStdin())
	},
}

func init() {
	browseCmd.Flags().StringVar(&browseArgs.api, "api", "", "API base URL (default API_URL)")
	browseCmd.Flags().BoolVar(&browseArgs.local, "local", false, "read straight from the configured database")
}


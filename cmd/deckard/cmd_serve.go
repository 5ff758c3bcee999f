package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/salscrudato/deckard/internal/projectconfig"
	"github.com/salscrudato/deckard/internal/webserver"
)

func newServeCommand() *cobra.Command {
	var port int
	var resultsDir string
	var noBrowser bool
	var corsOrigins []string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve stored analysis results over HTTP",
		Long: `Serve stored analysis results over HTTP.

The server reads the outcome JSON files that deckard analyze --store
writes and exposes them as a JSON API on localhost:

  GET  /api/health
  GET  /api/summary         Aggregate stats across stored analyses
  GET  /api/analyses        List analyses (?sort=, ?order=)
  GET  /api/analyses/{id}   One stored analysis in full
  GET  /api/layouts         The layout catalog
  GET  /api/rules           The scoring rule table
  POST /api/recommend       Recommend a layout for posted slide content
  POST /api/visualize       Sibling visualization check for posted content
  POST /api/analyze         Analyze a posted deck without storing it`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := projectconfig.Load(".")
			if err != nil {
				return err
			}
			if port == 0 {
				port = cfg.Server.Port
			}
			if resultsDir == "" {
				resultsDir = cfg.Server.ResultsDir
				if resultsDir == "" || resultsDir == "." {
					resultsDir = cfg.Paths.Results
				}
			}

			absResults, err := filepath.Abs(resultsDir)
			if err != nil {
				return fmt.Errorf("resolving results dir: %w", err)
			}

			eng, err := buildEngine(cfg.Rules.WeightsFile)
			if err != nil {
				return err
			}

			srv, err := webserver.New(webserver.Config{
				Port:           port,
				ResultsDir:     absResults,
				NoBrowser:      noBrowser,
				AllowedOrigins: corsOrigins,
				Engine:         eng,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Serving analysis results from %s\n", absResults)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default: 3000 or server.port)")
	cmd.Flags().StringVar(&resultsDir, "results-dir", "", "Directory of stored outcome files (default: results/ or server.results_dir)")
	cmd.Flags().BoolVar(&noBrowser, "no-browser", false, "Do not open a browser window")
	cmd.Flags().StringSliceVar(&corsOrigins, "cors-origin", nil, "Origin allowed to call the API cross-site (repeatable)")

	return cmd
}

package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/salscrudato/deckard/internal/cache"
	"github.com/salscrudato/deckard/internal/projectconfig"
)

var cacheDir string

func newCacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the slide analysis cache",
		Long: `Manage the slide analysis cache.

The cache stores per-slide recommendations so repeated analyses of
unchanged slides are instant. Entries are keyed by slide content, the
rule table fingerprint, and the scoring version, so editing a slide or
changing rule weights invalidates only what those edits touch.`,
	}

	cmd.AddCommand(newCacheClearCommand())

	return cmd
}

func newCacheClearCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear the slide analysis cache",
		Long: `Clear all cached slide analyses.

The next analysis re-scores every slide from scratch.`,
		RunE: cacheClearE,
	}

	cmd.Flags().StringVar(&cacheDir, "cache-dir", "", "Cache directory to clear (default: .deckard-cache or cache.dir)")

	return cmd
}

func cacheClearE(cmd *cobra.Command, args []string) error {
	if cacheDir == "" {
		cfg, err := projectconfig.Load(".")
		if err != nil {
			return err
		}
		cacheDir = cfg.Cache.Dir
	}

	absDir, err := filepath.Abs(cacheDir)
	if err != nil {
		return fmt.Errorf("resolving cache directory: %w", err)
	}

	c := cache.New(absDir)
	if err := c.Clear(); err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}

	fmt.Printf("Cache cleared: %s\n", absDir)
	return nil
}

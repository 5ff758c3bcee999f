package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/salscrudato/deckard/internal/scaffold"
	"github.com/salscrudato/deckard/internal/wizard"
)

func newInitCommand() *cobra.Command {
	var (
		interactive bool
		deckName    string
		noConfig    bool
	)

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a deck project",
		Long: `Initialize a deck project with a starter deck and project config.

Creates a decks/ directory with a starter deck file, a results/ directory
for stored analyses, and a .deckard.yaml project config.

Use --interactive to run a guided wizard that collects the deck name,
audience and topics before generating the starter deck.

If no directory is specified, the current directory is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return initCommandE(cmd, args, interactive, deckName, noConfig)
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Run the guided deck wizard")
	cmd.Flags().StringVar(&deckName, "name", "", "Deck name (default: the target directory's name)")
	cmd.Flags().BoolVar(&noConfig, "no-config", false, "Skip writing .deckard.yaml")

	return cmd
}

func initCommandE(cmd *cobra.Command, args []string, interactive bool, deckName string, noConfig bool) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	spec := &wizard.DeckSpec{Name: deckName, IncludeChart: true}
	if interactive {
		collected, err := wizard.RunDeckWizard(cmd.InOrStdin(), cmd.OutOrStdout(), deckName)
		if err != nil {
			return err
		}
		spec = collected
	}

	if spec.Name == "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return fmt.Errorf("resolving directory: %w", err)
		}
		spec.Name = scaffold.Slugify(filepath.Base(abs))
	}
	if err := scaffold.ValidateName(spec.Name); err != nil {
		return err
	}

	// Create decks/ and results/ subdirectories
	decksDir := filepath.Join(dir, "decks")
	resultsDir := filepath.Join(dir, "results")

	if err := os.MkdirAll(decksDir, 0o755); err != nil {
		return fmt.Errorf("failed to create decks directory: %w", err)
	}
	if err := os.MkdirAll(resultsDir, 0o755); err != nil {
		return fmt.Errorf("failed to create results directory: %w", err)
	}

	// Write the starter deck, never clobbering an existing one
	deckPath := filepath.Join(decksDir, spec.Name+".deck.yaml")
	if _, err := os.Stat(deckPath); err == nil {
		return fmt.Errorf("%s already exists", deckPath)
	}
	deckContent := wizard.GenerateDeckYAML(spec)
	if err := os.WriteFile(deckPath, []byte(deckContent), 0o644); err != nil {
		return fmt.Errorf("failed to write starter deck: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Initialized deck project:") //nolint:errcheck
	fmt.Fprintf(out, "  %s\n", deckPath)           //nolint:errcheck

	// Write project config unless present or suppressed
	configPath := filepath.Join(dir, ".deckard.yaml")
	if !noConfig {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			if err := os.WriteFile(configPath, []byte(scaffold.ProjectConfigYAML()), 0o644); err != nil {
				return fmt.Errorf("failed to write .deckard.yaml: %w", err)
			}
			fmt.Fprintf(out, "  %s\n", configPath) //nolint:errcheck
		}
	}

	fmt.Fprintln(out)                                            //nolint:errcheck
	fmt.Fprintln(out, "Next steps:")                             //nolint:errcheck
	fmt.Fprintf(out, "  1. Edit %s\n", deckPath)                 //nolint:errcheck
	fmt.Fprintf(out, "  2. Run: deckard analyze %s\n", deckPath) //nolint:errcheck
	fmt.Fprintln(out, "  3. Browse stored analyses with: deckard analyze --store && deckard serve") //nolint:errcheck

	return nil
}

package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/salscrudato/deckard/internal/discovery"
	"github.com/salscrudato/deckard/internal/projectconfig"
	"github.com/salscrudato/deckard/internal/validation"
)

var (
	validateAll      bool
	validateDecksDir string
)

func newValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [deck files...]",
		Short: "Validate deck files without analyzing them",
		Long: `Validate deck files without analyzing them.

Each file is checked against the deck schema, then loaded to catch
semantic problems the schema cannot express (duplicate slide ids,
unknown preferred layouts). Markdown decks skip the schema step since
they have no structural shape to check.`,
		Args: cobra.ArbitraryArgs,
		RunE: validateCommandE,
	}

	cmd.Flags().BoolVar(&validateAll, "all", false, "Validate every deck under the decks directory")
	cmd.Flags().StringVar(&validateDecksDir, "decks-dir", "", "Directory to search with --all (default: decks/ or paths.decks)")

	return cmd
}

func validateCommandE(cmd *cobra.Command, args []string) error {
	cfg, err := projectconfig.Load(".")
	if err != nil {
		return err
	}
	if validateDecksDir == "" {
		validateDecksDir = cfg.Paths.Decks
	}

	var paths []string
	if validateAll {
		decks, err := discovery.Discover(validateDecksDir)
		if err != nil {
			return err
		}
		for _, d := range decks {
			paths = append(paths, d.Path)
		}
		if len(paths) == 0 {
			return fmt.Errorf("no deck files found under %s", validateDecksDir)
		}
	} else {
		paths = args
	}
	if len(paths) == 0 {
		return fmt.Errorf("no deck files given (pass paths or use --all)")
	}

	out := cmd.OutOrStdout()
	failed := 0
	for _, path := range paths {
		problems := validateDeckPath(path)
		if len(problems) == 0 {
			fmt.Fprintf(out, "✓ %s\n", path)
			continue
		}
		failed++
		fmt.Fprintf(out, "✗ %s\n", path)
		for _, p := range problems {
			fmt.Fprintf(out, "    %s\n", p)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d deck file(s) failed validation", failed, len(paths))
	}
	fmt.Fprintf(out, "\n%d deck file(s) valid\n", len(paths))
	return nil
}

// validateDeckPath returns every problem found in one deck file, schema
// errors first, then load errors.
func validateDeckPath(path string) []string {
	var problems []string

	if !strings.EqualFold(filepath.Ext(path), ".md") {
		schemaErrs, err := validation.ValidateDeckFile(path)
		if err != nil {
			return []string{err.Error()}
		}
		problems = append(problems, schemaErrs...)
	}

	// Schema-valid files can still fail semantic checks on load.
	if len(problems) == 0 {
		if _, err := loadDeckFile(path); err != nil {
			problems = append(problems, err.Error())
		}
	}
	return problems
}

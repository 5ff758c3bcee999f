package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/salscrudato/deckard/internal/comparison"
	"github.com/salscrudato/deckard/internal/models"
)

var compareFormat string

func newCompareCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <outcome.json> <outcome.json> [more...]",
		Short: "Compare stored analysis outcomes",
		Long: `Compare two or more stored analysis outcomes.

Outcome files are the JSON documents written by "deckard analyze --store"
or by "deckard analyze --format json -o". Deltas read last minus first,
so pass the oldest outcome first. The per-slide section marks layout
changes and confidence movement, which shows what a rule weight override
or a deck edit actually changed.`,
		Args: cobra.MinimumNArgs(2),
		RunE: compareCommandE,
	}

	cmd.Flags().StringVarP(&compareFormat, "format", "f", "table", "Output format: table, json")

	return cmd
}

func compareCommandE(cmd *cobra.Command, args []string) error {
	outcomes := make([]*models.DeckOutcome, 0, len(args))
	for _, path := range args {
		outcome, err := loadOutcomeFile(path)
		if err != nil {
			return err
		}
		outcomes = append(outcomes, outcome)
	}

	report, err := comparison.Compare(args, outcomes)
	if err != nil {
		return err
	}

	switch compareFormat {
	case "json":
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling comparison: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	case "table", "":
		printOutcomeComparison(cmd.OutOrStdout(), report)
	default:
		return fmt.Errorf("unknown format %q (expected table or json)", compareFormat)
	}

	return nil
}

func loadOutcomeFile(path string) (*models.DeckOutcome, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading outcome file: %w", err)
	}
	var outcome models.DeckOutcome
	if err := json.Unmarshal(data, &outcome); err != nil {
		return nil, fmt.Errorf("parsing outcome file %s: %w", path, err)
	}
	return &outcome, nil
}

func printOutcomeComparison(w io.Writer, report *comparison.Report) {
	fmt.Fprintln(w, "═"+strings.Repeat("═", 62))
	fmt.Fprintln(w, " OUTCOME COMPARISON (deltas are last run minus first)")
	fmt.Fprintln(w, "═"+strings.Repeat("═", 62))
	fmt.Fprintln(w)

	for i, label := range report.Labels {
		fmt.Fprintf(w, " [%d] %s (deck %s, ruleset %s)\n", i+1, label, report.Decks[i], report.Fingerprints[i])
	}
	if report.RulesetChanged {
		fmt.Fprintln(w, " Ruleset fingerprint changed between first and last run.")
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, " %-6s %-8s %-9s %-10s %s\n", "Run", "Slides", "Flagged", "Avg Conf", "Duration")
	fmt.Fprintln(w, "─"+strings.Repeat("─", 62))
	for i := range report.Labels {
		duration := time.Duration(report.DurationsMs[i]) * time.Millisecond
		fmt.Fprintf(w, " [%d]    %-8d %-9d %-10.3f %s\n",
			i+1, report.SlideCounts[i], report.FlaggedCounts[i],
			report.AvgConfidences[i], formatDuration(duration))
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, " Avg confidence delta: %s\n", formatDelta(report.AvgConfidenceDelta))
	fmt.Fprintf(w, " Flagged delta:        %+d %s\n", report.FlaggedDelta, deltaMark(float64(report.FlaggedDelta)))
	fmt.Fprintf(w, " Layout changes:       %d slide(s)\n", report.LayoutChanges)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "─"+strings.Repeat("─", 62))
	fmt.Fprintln(w, " PER-SLIDE DELTAS")
	fmt.Fprintln(w, "─"+strings.Repeat("─", 62))

	last := len(report.Labels) - 1
	for _, sd := range report.Slides {
		label := padRight(truncateLabel(sd.SlideID), 22)
		switch {
		case sd.Statuses[0] == "n/a":
			fmt.Fprintf(w, "  + %s %s (only in last run)\n", label, sd.Layouts[last])
		case sd.Statuses[last] == "n/a":
			fmt.Fprintf(w, "  - %s %s (only in first run)\n", label, sd.Layouts[0])
		case sd.LayoutChanged:
			fmt.Fprintf(w, "  → %s %s → %s (%s)\n",
				label, sd.Layouts[0], sd.Layouts[last], formatDelta(sd.ConfidenceDelta))
		default:
			fmt.Fprintf(w, "    %s %s (%s)\n",
				label, sd.Layouts[last], formatDelta(sd.ConfidenceDelta))
		}
	}
	fmt.Fprintln(w)
}

// deltaMark returns the movement icon for a signed delta.
func deltaMark(delta float64) string {
	switch {
	case delta > 0:
		return "↑"
	case delta < 0:
		return "↓"
	default:
		return "·"
	}
}

func formatDelta(delta float64) string {
	return fmt.Sprintf("%+.3f %s", delta, deltaMark(delta))
}

// truncateLabel keeps long slide IDs from blowing out the table columns.
func truncateLabel(s string) string {
	const max = 22
	if runewidth.StringWidth(s) <= max {
		return s
	}
	return runewidth.Truncate(s, max, "...")
}

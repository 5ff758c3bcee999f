package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/salscrudato/deckard/internal/engine"
	"github.com/salscrudato/deckard/internal/projectconfig"
)

var (
	rulesFormat  string
	rulesWeights string
)

func newRulesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the scoring rule table",
		Long: `List the scoring rule table with weights and target layouts.

Pass --weights to preview a weight override file: the listing shows the
effective weights and the fingerprint the overridden table would carve
into stored results.`,
		RunE: rulesCommandE,
	}

	cmd.Flags().StringVar(&rulesFormat, "format", "table", "Output format: table, json")
	cmd.Flags().StringVar(&rulesWeights, "weights", "", "Weight override YAML file to preview")

	return cmd
}

// ruleInfo is the JSON shape for one rule row. The match predicate is code,
// not data, so only the declarative fields serialize.
type ruleInfo struct {
	ID        string   `json:"id"`
	Weight    float64  `json:"weight"`
	Layouts   []string `json:"layouts"`
	Rationale string   `json:"rationale"`
}

func rulesCommandE(cmd *cobra.Command, args []string) error {
	weightsPath := rulesWeights
	if weightsPath == "" {
		cfg, err := projectconfig.Load(".")
		if err != nil {
			return err
		}
		weightsPath = cfg.Rules.WeightsFile
	}

	eng, err := buildEngine(weightsPath)
	if err != nil {
		return err
	}
	registry := eng.Registry()

	switch rulesFormat {
	case "json":
		infos := make([]ruleInfo, 0, registry.Len())
		for _, r := range registry.Rules() {
			infos = append(infos, ruleInfo{ID: r.ID, Weight: r.Weight, Layouts: r.Layouts, Rationale: r.Rationale})
		}
		payload := struct {
			ScoringVersion string     `json:"scoringVersion"`
			Fingerprint    string     `json:"fingerprint"`
			Rules          []ruleInfo `json:"rules"`
		}{engine.ScoringVersion, registry.Fingerprint(), infos}
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling rules: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	case "table", "":
	default:
		return fmt.Errorf("unknown output format: %s (supported: table, json)", rulesFormat)
	}

	idWidth := len("RULE")
	for _, r := range registry.Rules() {
		if w := len(r.ID); w > idWidth {
			idWidth = w
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s  %s  %s\n", padRight("RULE", idWidth), "WEIGHT", "LAYOUTS")
	for _, r := range registry.Rules() {
		fmt.Fprintf(out, "%s  %6.2f  %s\n", padRight(r.ID, idWidth), r.Weight, strings.Join(r.Layouts, ", "))
		fmt.Fprintf(out, "%s          %s\n", strings.Repeat(" ", idWidth), r.Rationale)
	}
	fmt.Fprintf(out, "\n%d rules, scoring %s, fingerprint %s\n", registry.Len(), engine.ScoringVersion, registry.Fingerprint())
	if weightsPath != "" {
		fmt.Fprintf(out, "Weights applied from: %s\n", weightsPath)
	}

	return nil
}

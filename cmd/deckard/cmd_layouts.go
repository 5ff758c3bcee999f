package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/salscrudato/deckard/internal/models"
)

var layoutsFormat string

func newLayoutsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layouts",
		Short: "List the layout catalog",
		Long: `List the layout catalog the analyzer recommends from.

Catalog order matters: when two layouts tie on every scoring criterion,
the one listed first wins.`,
		RunE: layoutsCommandE,
	}

	cmd.Flags().StringVar(&layoutsFormat, "format", "table", "Output format: table, json")

	return cmd
}

func layoutsCommandE(cmd *cobra.Command, args []string) error {
	layouts := models.Catalog()

	switch layoutsFormat {
	case "json":
		data, err := json.MarshalIndent(layouts, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling layouts: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	case "table", "":
	default:
		return fmt.Errorf("unknown output format: %s (supported: table, json)", layoutsFormat)
	}

	idWidth, nameWidth := len("ID"), len("NAME")
	for _, l := range layouts {
		if w := len(l.ID); w > idWidth {
			idWidth = w
		}
		if w := len(l.Name); w > nameWidth {
			nameWidth = w
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s  %s  %s  %s\n",
		padRight("ID", idWidth), padRight("NAME", nameWidth), "IMAGE", "DESCRIPTION")
	for _, l := range layouts {
		ratio := "    -"
		if l.ImageRegionRatio > 0 {
			ratio = fmt.Sprintf("%5.3f", l.ImageRegionRatio)
		}
		fmt.Fprintf(out, "%s  %s  %s  %s\n",
			padRight(l.ID, idWidth), padRight(l.Name, nameWidth), ratio, l.Description)
	}
	fmt.Fprintf(out, "\n%d layouts. IMAGE is the width:height ratio of the image region.\n", len(layouts))

	return nil
}

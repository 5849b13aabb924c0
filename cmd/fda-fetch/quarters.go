// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/fda-fetch/internal/httputil"
	"github.com/pdiddy/fda-fetch/internal/openfda"
	"github.com/pdiddy/fda-fetch/pkg/types"
)

var quartersCmd = &cobra.Command{
	Use:   "quarters",
	Short: "List the quarters available for download",
	Long: `Quarters fetches the openFDA download index and groups the drug
adverse-event files by quarter, printing the file count, size and record
total of each. By default the ten newest quarters are shown.`,
	RunE: runQuarters,
}

func init() {
	quartersCmd.Flags().Int("limit", 10, "number of quarters to show (0 for all)")
	quartersCmd.Flags().String("order", "desc", "quarter order: desc (newest first), asc, or seen (index order)")
	quartersCmd.Flags().String("format", "table", "output format: table, json, or yaml")

	rootCmd.AddCommand(quartersCmd)
}

func runQuarters(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	order, _ := cmd.Flags().GetString("order")
	format, _ := cmd.Flags().GetString("format")

	// Structured formats keep stdout parseable; progress goes to stderr.
	progress := io.Writer(os.Stdout)
	if format != "table" {
		progress = os.Stderr
	}

	index, err := fetchIndex(cmd.Context(), newHTTPClient(), cfg, progress)
	if err != nil {
		return err
	}

	names, err := orderedNames(index, order, limit)
	if err != nil {
		return err
	}
	return writeQuarters(index, names, format, os.Stdout)
}

// fetchIndex runs the metadata fetch and quarter grouping.
func fetchIndex(ctx context.Context, client httputil.Doer, c types.Config, w io.Writer) (*types.QuarterIndex, error) {
	meta, err := openfda.FetchMetadata(ctx, client, c.Download.HTTPConfig, c.MetadataURL, w)
	if err != nil {
		return nil, err
	}
	return openfda.ListQuarters(meta, w)
}

func orderedNames(index *types.QuarterIndex, order string, limit int) ([]string, error) {
	var names []string
	switch order {
	case "desc":
		names = index.Sorted(true)
	case "asc":
		names = index.Sorted(false)
	case "seen":
		names = index.Names()
	default:
		return nil, fmt.Errorf("unknown order %q: want desc, asc, or seen", order)
	}
	if limit > 0 && len(names) > limit {
		names = names[:limit]
	}
	return names, nil
}

func writeQuarters(index *types.QuarterIndex, names []string, format string, w io.Writer) error {
	switch format {
	case "table":
		openfda.FormatTable(index, names, w)
		return nil
	case "json":
		return openfda.FormatJSON(index, names, w)
	case "yaml":
		return openfda.FormatYAML(index, names, w)
	default:
		return fmt.Errorf("unknown format %q: want table, json, or yaml", format)
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package openfda

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/fda-fetch/pkg/types"
)

// QuarterSummary is the serialized form of a quarter in JSON and YAML output.
type QuarterSummary struct {
	Quarter      string   `json:"quarter" yaml:"quarter"`
	Files        int      `json:"files" yaml:"files"`
	TotalSizeMB  float64  `json:"total_size_mb" yaml:"total_size_mb"`
	TotalRecords int      `json:"total_records" yaml:"total_records"`
	URLs         []string `json:"urls" yaml:"urls"`
}

// Summaries returns one QuarterSummary per name, skipping unknown names.
func Summaries(index *types.QuarterIndex, names []string) []QuarterSummary {
	out := make([]QuarterSummary, 0, len(names))
	for _, name := range names {
		g, ok := index.Get(name)
		if !ok {
			continue
		}
		s := QuarterSummary{
			Quarter:      g.Name,
			Files:        len(g.Files),
			TotalSizeMB:  g.TotalSizeMB,
			TotalRecords: g.TotalRecords,
		}
		for _, p := range g.Files {
			s.URLs = append(s.URLs, p.File)
		}
		out = append(out, s)
	}
	return out
}

// FormatTable writes one line per quarter to w.
func FormatTable(index *types.QuarterIndex, names []string, w io.Writer) {
	if len(names) == 0 {
		fmt.Fprintln(w, "No quarters found.")
		return
	}
	fmt.Fprintln(w, "\nAvailable quarters:")
	fmt.Fprintf(w, "  %-15s  %5s  %10s  %12s\n", "Quarter", "Files", "MB", "Records")
	fmt.Fprintln(w, "  "+strings.Repeat("-", 48))
	for _, s := range Summaries(index, names) {
		fmt.Fprintf(w, "  %-15s  %5d  %10.2f  %12s\n",
			s.Quarter, s.Files, s.TotalSizeMB, formatThousands(s.TotalRecords))
	}
}

// FormatJSON writes the quarters as indented JSON to w.
func FormatJSON(index *types.QuarterIndex, names []string, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Summaries(index, names))
}

// FormatYAML writes the quarters as a YAML sequence to w.
func FormatYAML(index *types.QuarterIndex, names []string, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Summaries(index, names)); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}

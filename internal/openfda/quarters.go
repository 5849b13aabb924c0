// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package openfda

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pdiddy/fda-fetch/pkg/types"
)

// QuarterLabel returns the quarter part of a partition display name: the
// text before the first " (" separator, or the whole name without one.
func QuarterLabel(displayName string) string {
	label, _, _ := strings.Cut(displayName, " (")
	return label
}

// ListQuarters prints dataset totals to w and groups the drug-event
// partitions by quarter label. Quarters keep first-seen order and files keep
// input order within a quarter.
func ListQuarters(meta *types.Metadata, w io.Writer) (*types.QuarterIndex, error) {
	events, err := DrugEvents(meta)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(w, "\nTotal records: %s\n", formatThousands(events.TotalRecords))
	fmt.Fprintf(w, "Export date: %s\n", events.ExportDate)
	fmt.Fprintf(w, "Total files: %d\n", len(events.Partitions))

	index := types.NewQuarterIndex()
	for _, p := range events.Partitions {
		size, err := p.Size()
		if err != nil {
			return nil, err
		}
		index.Add(QuarterLabel(p.DisplayName), p, size)
	}
	return index, nil
}

// formatThousands renders n with comma separators, e.g. 12345678 -> "12,345,678".
func formatThousands(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	pre := len(s) % 3
	if pre > 0 {
		b.WriteString(s[:pre])
	}
	for i := pre; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the data structures shared by the fda-fetch stages:
// the openFDA download metadata, quarter groupings, per-file download
// results, and configuration.
package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Metadata is the subset of https://api.fda.gov/download.json that fda-fetch
// reads. Intermediate objects are pointers so a missing key is detectable
// rather than silently zero.
type Metadata struct {
	Results *MetadataResults `json:"results"`
}

// MetadataResults holds the per-category datasets.
type MetadataResults struct {
	Drug *DrugDatasets `json:"drug"`
}

// DrugDatasets holds the drug datasets; only adverse events are modeled.
type DrugDatasets struct {
	Event *EventDataset `json:"event"`
}

// EventDataset describes the drug adverse-event export.
type EventDataset struct {
	TotalRecords int         `json:"total_records" yaml:"total_records"`
	ExportDate   string      `json:"export_date" yaml:"export_date"`
	Partitions   []Partition `json:"partitions" yaml:"partitions"`
}

// Partition is one downloadable export file.
type Partition struct {
	// File is the remote URL of the zip archive.
	File string `json:"file" yaml:"file"`

	// DisplayName embeds the quarter label and a size annotation,
	// e.g. "2015 Q4 (part 1 of 3)".
	DisplayName string `json:"display_name" yaml:"display_name"`

	// SizeMB is the archive size in megabytes as a decimal string.
	SizeMB string `json:"size_mb" yaml:"size_mb"`

	// Records is the number of event records in the file.
	Records int `json:"records" yaml:"records"`
}

// Size parses SizeMB.
func (p Partition) Size() (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(p.SizeMB), 64)
	if err != nil {
		return 0, fmt.Errorf("partition %q: invalid size_mb %q: %w", p.DisplayName, p.SizeMB, err)
	}
	return v, nil
}

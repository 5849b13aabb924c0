// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package openfda reads the openFDA download metadata and groups the
// drug-event export files by quarter.
package openfda

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/pdiddy/fda-fetch/internal/httputil"
	"github.com/pdiddy/fda-fetch/pkg/types"
)

// DefaultMetadataURL is the openFDA download index.
const DefaultMetadataURL = "https://api.fda.gov/download.json"

// ErrUnexpectedShape is returned when the metadata document lacks a key on
// the results.drug.event path.
var ErrUnexpectedShape = errors.New("unexpected metadata shape")

// FetchMetadata downloads and decodes the metadata document at metadataURL.
// Errors are returned as-is; nothing is retried.
func FetchMetadata(ctx context.Context, client httputil.Doer, cfg types.HTTPConfig, metadataURL string, w io.Writer) (*types.Metadata, error) {
	fmt.Fprintln(w, "Fetching openFDA download metadata...")

	ctx, cancel := httputil.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	resp, err := httputil.Get(ctx, client, metadataURL, cfg)
	if err != nil {
		return nil, fmt.Errorf("fetching metadata: %w", err)
	}
	defer resp.Body.Close()

	var meta types.Metadata
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return nil, fmt.Errorf("parsing metadata: %w", err)
	}
	if _, err := DrugEvents(&meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// DrugEvents returns the drug-event dataset, or an error wrapping
// ErrUnexpectedShape naming the first missing key.
func DrugEvents(meta *types.Metadata) (*types.EventDataset, error) {
	switch {
	case meta == nil || meta.Results == nil:
		return nil, fmt.Errorf("%w: missing results", ErrUnexpectedShape)
	case meta.Results.Drug == nil:
		return nil, fmt.Errorf("%w: missing results.drug", ErrUnexpectedShape)
	case meta.Results.Drug.Event == nil:
		return nil, fmt.Errorf("%w: missing results.drug.event", ErrUnexpectedShape)
	case meta.Results.Drug.Event.Partitions == nil:
		return nil, fmt.Errorf("%w: missing results.drug.event.partitions", ErrUnexpectedShape)
	}
	return meta.Results.Drug.Event, nil
}

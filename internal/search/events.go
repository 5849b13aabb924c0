// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search queries the openFDA drug adverse-event search API.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/pdiddy/fda-fetch/internal/httputil"
	"github.com/pdiddy/fda-fetch/pkg/types"
)

// DefaultURL is the drug adverse-event search endpoint.
const DefaultURL = "https://api.fda.gov/drug/event.json"

// DefaultQuery looks up reports that mention Aspirin by brand name.
const DefaultQuery = `patient.drug.openfda.brand_name:"Aspirin"`

const (
	maxCases        = 5
	maxDrugsPerCase = 2
)

// EventResponse is the part of a search response that is printed.
type EventResponse struct {
	Meta    EventMeta     `json:"meta"`
	Results []EventReport `json:"results"`
}

// EventMeta carries the total match count.
type EventMeta struct {
	Results struct {
		Skip  int `json:"skip"`
		Limit int `json:"limit"`
		Total int `json:"total"`
	} `json:"results"`
}

// EventReport is one adverse-event report. Patient is optional.
type EventReport struct {
	SafetyReportID string   `json:"safetyreportid"`
	Patient        *Patient `json:"patient"`
}

// Patient lists the drugs involved in a report.
type Patient struct {
	Drug []Drug `json:"drug"`
}

// Drug is one drug entry of a report.
type Drug struct {
	MedicinalProduct string `json:"medicinalproduct"`
}

// SearchEvents runs query against cfg.URL with the given result limit and
// prints the total match count and up to two drug names for each of the
// first five reports. A non-200 response is reported on w and yields a nil
// response with a nil error.
func SearchEvents(ctx context.Context, client httputil.Doer, cfg types.SearchConfig, query string, limit int, w io.Writer, log *zap.Logger) (*EventResponse, error) {
	if log == nil {
		log = zap.NewNop()
	}
	endpoint := cfg.URL
	if endpoint == "" {
		endpoint = DefaultURL
	}

	params := url.Values{
		"search": {query},
		"limit":  {strconv.Itoa(limit)},
	}
	if cfg.APIKey != "" {
		params.Set("api_key", cfg.APIKey)
	}

	fmt.Fprintf(w, "\nSearch: %s\n", query)
	log.Debug("searching drug events", zap.String("query", query), zap.Int("limit", limit), zap.Bool("api_key", cfg.APIKey != ""))

	ctx, cancel := httputil.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	resp, err := httputil.Do(ctx, client, endpoint+"?"+params.Encode(), cfg.HTTPConfig)
	if err != nil {
		return nil, fmt.Errorf("openFDA search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		fmt.Fprintf(w, "query failed: HTTP %d\n", resp.StatusCode)
		log.Warn("search returned non-200", zap.Int("status", resp.StatusCode))
		return nil, nil
	}

	var er EventResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
		return nil, fmt.Errorf("parsing search response: %w", err)
	}

	FormatCases(&er, w)
	return &er, nil
}

// FormatCases prints the total and, for up to five reports that list drugs,
// the medicinal products of up to two drugs. Drugs without a product name
// are skipped.
func FormatCases(er *EventResponse, w io.Writer) {
	fmt.Fprintf(w, "Total matches: %d\n", er.Meta.Results.Total)
	fmt.Fprintf(w, "\nTop %d results:\n", min(maxCases, len(er.Results)))

	for i, r := range er.Results {
		if i >= maxCases {
			break
		}
		if r.Patient == nil || r.Patient.Drug == nil {
			continue
		}
		fmt.Fprintf(w, "\n  Case %d:\n", i+1)
		for j, d := range r.Patient.Drug {
			if j >= maxDrugsPerCase {
				break
			}
			if d.MedicinalProduct != "" {
				fmt.Fprintf(w, "    Drug: %s\n", d.MedicinalProduct)
			}
		}
	}
}

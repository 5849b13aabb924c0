// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/fda-fetch/pkg/types"
)

const sampleSearchJSON = `{
  "meta": {"results": {"skip": 0, "limit": 5, "total": 4321}},
  "results": [
    {"safetyreportid": "1", "patient": {"drug": [
      {"medicinalproduct": "ASPIRIN"},
      {"medicinalproduct": "IBUPROFEN"},
      {"medicinalproduct": "THIRD"}
    ]}},
    {"safetyreportid": "2"},
    {"safetyreportid": "3", "patient": {"patientsex": "1"}},
    {"safetyreportid": "4", "patient": {"drug": [{"drugcharacterization": "1"}, {"medicinalproduct": "BAYER"}]}},
    {"safetyreportid": "5", "patient": {"drug": [{"medicinalproduct": "FIFTH"}]}},
    {"safetyreportid": "6", "patient": {"drug": [{"medicinalproduct": "SIXTH"}]}}
  ]
}`

func testConfig(endpoint string) types.SearchConfig {
	return types.SearchConfig{
		HTTPConfig: types.HTTPConfig{UserAgent: "fda-fetch/test"},
		URL:        endpoint,
	}
}

func TestSearchEvents(t *testing.T) {
	var gotQuery url.Values
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, sampleSearchJSON)
	}))
	defer ts.Close()

	var buf bytes.Buffer
	resp, err := SearchEvents(context.Background(), ts.Client(), testConfig(ts.URL), DefaultQuery, 5, &buf, nil)
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, DefaultQuery, gotQuery.Get("search"))
	assert.Equal(t, "5", gotQuery.Get("limit"))
	assert.False(t, gotQuery.Has("api_key"))
	assert.Equal(t, 4321, resp.Meta.Results.Total)
	assert.Len(t, resp.Results, 6)

	out := buf.String()
	assert.Contains(t, out, "Total matches: 4321")
	assert.Contains(t, out, "Case 1:\n    Drug: ASPIRIN\n    Drug: IBUPROFEN\n")
	assert.NotContains(t, out, "THIRD")
	assert.NotContains(t, out, "Case 2:")
	assert.NotContains(t, out, "Case 3:")
	assert.Contains(t, out, "Case 4:\n    Drug: BAYER\n")
	assert.Contains(t, out, "FIFTH")
	assert.NotContains(t, out, "SIXTH")
}

func TestSearchEvents_APIKey(t *testing.T) {
	var gotKey string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("api_key")
		fmt.Fprint(w, `{"meta": {"results": {"total": 0}}, "results": []}`)
	}))
	defer ts.Close()

	cfg := testConfig(ts.URL)
	cfg.APIKey = "secret-key"
	var buf bytes.Buffer
	_, err := SearchEvents(context.Background(), ts.Client(), cfg, "receivedate:[20040101 TO 20081231]", 1, &buf, nil)
	require.NoError(t, err)
	assert.Equal(t, "secret-key", gotKey)
	assert.NotContains(t, buf.String(), "secret-key")
}

func TestSearchEvents_NonOK(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error": {"code": "NOT_FOUND", "message": "No matches found!"}}`)
	}))
	defer ts.Close()

	var buf bytes.Buffer
	resp, err := SearchEvents(context.Background(), ts.Client(), testConfig(ts.URL), "x", 5, &buf, nil)
	require.NoError(t, err)
	assert.Nil(t, resp)
	assert.Contains(t, buf.String(), "query failed: HTTP 404")
}

func TestSearchEvents_InvalidJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"meta":`)
	}))
	defer ts.Close()

	_, err := SearchEvents(context.Background(), ts.Client(), testConfig(ts.URL), "x", 5, &bytes.Buffer{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing search response")
}

func TestSearchEvents_TransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	endpoint := ts.URL
	ts.Close()

	_, err := SearchEvents(context.Background(), http.DefaultClient, testConfig(endpoint), "x", 5, &bytes.Buffer{}, nil)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "openFDA search"))
}

func TestFormatCases_Empty(t *testing.T) {
	var buf bytes.Buffer
	FormatCases(&EventResponse{}, &buf)
	assert.Contains(t, buf.String(), "Total matches: 0")
	assert.NotContains(t, buf.String(), "Case")
}

func TestFormatCases_HeaderCountsReturnedResults(t *testing.T) {
	er := &EventResponse{Results: []EventReport{
		{SafetyReportID: "1", Patient: &Patient{Drug: []Drug{{MedicinalProduct: "ASPIRIN"}}}},
		{SafetyReportID: "2", Patient: &Patient{Drug: []Drug{{MedicinalProduct: "BAYER"}}}},
	}}
	var buf bytes.Buffer
	FormatCases(er, &buf)
	assert.Contains(t, buf.String(), "Top 2 results:")
	assert.NotContains(t, buf.String(), "Top 5 results:")

	buf.Reset()
	FormatCases(&EventResponse{}, &buf)
	assert.Contains(t, buf.String(), "Top 0 results:")
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package inspect

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleEventJSON = `{
  "meta": {"disclaimer": "Do not rely on openFDA to make decisions regarding medical care.", "results": {"total": 3}},
  "results": [
    {"safetyreportid": "1", "receivedate": "20151001", "serious": "1", "patient": {"drug": [{"medicinalproduct": "ASPIRIN"}]},
     "primarysource": {}, "sender": {}, "receiver": {}, "occurcountry": "US", "transmissiondate": "20151101",
     "reporttype": "1", "companynumb": "X", "fulfillexpeditecriteria": "1"},
    {"safetyreportid": "2"},
    {"safetyreportid": "3", "nested": [[1, 2], {"a": [3]}]}
  ]
}`

// writeZip creates an archive at dir/name containing the given entries.
func writeZip(t *testing.T, dir, name string, entries map[string]string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for entry, content := range entries {
		ew, err := zw.Create(entry)
		require.NoError(t, err)
		_, err = ew.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}

func TestSummarize(t *testing.T) {
	s, err := Summarize(strings.NewReader(sampleEventJSON))
	require.NoError(t, err)
	assert.True(t, s.HasResults)
	assert.Equal(t, 3, s.Records)
	assert.Equal(t, []string{
		"safetyreportid", "receivedate", "serious", "patient", "primarysource",
		"sender", "receiver", "occurcountry", "transmissiondate", "reporttype",
	}, s.Fields)
}

func TestSummarize_Variants(t *testing.T) {
	tests := []struct {
		name        string
		doc         string
		wantResults bool
		wantRecords int
		wantFields  []string
	}{
		{"no results key", `{"meta": {"x": [1, 2]}}`, false, 0, nil},
		{"empty results", `{"results": []}`, true, 0, nil},
		{"results before meta", `{"results": [{"b": 1, "a": 2}], "meta": {}}`, true, 1, []string{"b", "a"}},
		{"scalar entries", `{"results": [1, 2, 3]}`, true, 3, nil},
		{"results object", `{"results": {"k": [1]}}`, true, 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Summarize(strings.NewReader(tt.doc))
			require.NoError(t, err)
			assert.Equal(t, tt.wantResults, s.HasResults)
			assert.Equal(t, tt.wantRecords, s.Records)
			assert.Equal(t, tt.wantFields, s.Fields)
		})
	}
}

func TestSummarize_Malformed(t *testing.T) {
	for _, doc := range []string{`[1, 2]`, `{"results": [`, ``} {
		_, err := Summarize(strings.NewReader(doc))
		assert.Error(t, err, "doc %q", doc)
	}
}

func TestExtractArchive(t *testing.T) {
	dir := t.TempDir()
	zipPath := writeZip(t, dir, "a.zip", map[string]string{
		"drug-event-0001.json": sampleEventJSON,
		"sub/readme.txt":       "hello",
	})
	dest := filepath.Join(dir, "extracted")

	files, err := ExtractArchive(zipPath, dest)
	require.NoError(t, err)
	assert.Len(t, files, 2)

	data, err := os.ReadFile(filepath.Join(dest, "sub", "readme.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestExtractArchive_RejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	zipPath := writeZip(t, dir, "evil.zip", map[string]string{
		"../../escaped.txt": "nope",
	})
	dest := filepath.Join(dir, "out", "extracted")

	_, err := ExtractArchive(zipPath, dest)
	assert.ErrorIs(t, err, ErrUnsafePath)
	_, statErr := os.Stat(filepath.Join(dir, "escaped.txt"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestExtractArchive_NotAZip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.zip")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0o644))
	_, err := ExtractArchive(path, filepath.Join(dir, "extracted"))
	assert.Error(t, err)
}

func TestInspectArchives(t *testing.T) {
	dir := t.TempDir()
	first := writeZip(t, dir, "a.zip", map[string]string{"drug-event-0001.json": sampleEventJSON})
	second := writeZip(t, dir, "b.zip", map[string]string{"notes.txt": "no json here"})
	extractDir := filepath.Join(dir, "extracted")

	var buf bytes.Buffer
	reports, err := InspectArchives([]string{first, second}, extractDir, &buf)
	require.NoError(t, err)
	require.Len(t, reports, 2)

	assert.Equal(t, filepath.Join(extractDir, "drug-event-0001.json"), reports[0].JSONFile)
	assert.True(t, reports[0].HasResults)
	assert.Equal(t, 3, reports[0].Records)
	assert.Len(t, reports[0].Fields, maxFields)

	// The shared directory still holds the first archive's JSON.
	assert.Equal(t, reports[0].JSONFile, reports[1].JSONFile)

	out := buf.String()
	assert.Contains(t, out, "Extracting: a.zip")
	assert.Contains(t, out, "JSON file: drug-event-0001.json")
	assert.Contains(t, out, "Records: 3")
	assert.Contains(t, out, "    - safetyreportid")
}

func TestInspectArchives_FirstJSONInLexicalOrder(t *testing.T) {
	dir := t.TempDir()
	zipPath := writeZip(t, dir, "a.zip", map[string]string{
		"b.json": `{"results": [{"z": 1}]}`,
		"a.json": `{"meta": {}}`,
	})

	var buf bytes.Buffer
	reports, err := InspectArchives([]string{zipPath}, filepath.Join(dir, "extracted"), &buf)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "a.json", filepath.Base(reports[0].JSONFile))
	assert.False(t, reports[0].HasResults)
	assert.NotContains(t, buf.String(), "Records:")
}

func TestInspectArchives_NoJSON(t *testing.T) {
	dir := t.TempDir()
	zipPath := writeZip(t, dir, "a.zip", map[string]string{"x.txt": "x"})

	var buf bytes.Buffer
	reports, err := InspectArchives([]string{zipPath}, filepath.Join(dir, "extracted"), &buf)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Empty(t, reports[0].JSONFile)
	assert.Contains(t, buf.String(), "no JSON file found")
}

func TestInspectArchives_StopsOnBadArchive(t *testing.T) {
	dir := t.TempDir()
	good := writeZip(t, dir, "a.zip", map[string]string{"a.json": `{"results": []}`})
	bad := filepath.Join(dir, "missing.zip")

	reports, err := InspectArchives([]string{good, bad}, filepath.Join(dir, "extracted"), &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), fmt.Sprintf("extracting %s", bad))
	assert.Len(t, reports, 1)
}

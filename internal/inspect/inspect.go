// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package inspect extracts downloaded openFDA archives and summarizes the
// JSON documents they contain.
package inspect

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// maxFields is the number of first-record field names reported.
const maxFields = 10

// ErrUnsafePath is returned for an archive entry that would be written
// outside the extraction directory.
var ErrUnsafePath = errors.New("archive entry escapes extraction directory")

// Report summarizes one inspected archive.
type Report struct {
	Archive    string   `json:"archive"`
	JSONFile   string   `json:"json_file,omitempty"`
	HasResults bool     `json:"has_results"`
	Records    int      `json:"records"`
	Fields     []string `json:"fields,omitempty"`
}

// InspectArchives extracts each archive into extractDir and summarizes the
// first JSON file found there afterwards. Archives share extractDir, so a
// later archive overwrites same-named files from an earlier one.
func InspectArchives(paths []string, extractDir string, w io.Writer) ([]Report, error) {
	var reports []Report
	for _, p := range paths {
		fmt.Fprintf(w, "\nExtracting: %s\n", filepath.Base(p))

		if _, err := ExtractArchive(p, extractDir); err != nil {
			return reports, fmt.Errorf("extracting %s: %w", p, err)
		}

		report := Report{Archive: p}
		jsonFiles, err := filepath.Glob(filepath.Join(extractDir, "*.json"))
		if err != nil {
			return reports, fmt.Errorf("listing JSON files: %w", err)
		}
		sort.Strings(jsonFiles)
		if len(jsonFiles) == 0 {
			fmt.Fprintln(w, "  no JSON file found")
			reports = append(reports, report)
			continue
		}

		report.JSONFile = jsonFiles[0]
		fmt.Fprintf(w, "  JSON file: %s\n", filepath.Base(report.JSONFile))

		summary, err := SummarizeFile(report.JSONFile)
		if err != nil {
			return reports, err
		}
		report.HasResults = summary.HasResults
		report.Records = summary.Records
		report.Fields = summary.Fields

		if report.HasResults {
			fmt.Fprintf(w, "  Records: %d\n", report.Records)
			if len(report.Fields) > 0 {
				fmt.Fprintln(w, "\n  Fields of first record:")
				for _, f := range report.Fields {
					fmt.Fprintf(w, "    - %s\n", f)
				}
			}
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// ExtractArchive writes every entry of the zip at zipPath below destDir,
// creating directories as needed and overwriting existing files. It returns
// the paths of the extracted files.
func ExtractArchive(zipPath, destDir string) ([]string, error) {
	r, err := zip.OpenReader(zipPath)
	if errors.Is(err, zip.ErrInsecurePath) {
		if r != nil {
			r.Close()
		}
		return nil, fmt.Errorf("%w: %v", ErrUnsafePath, err)
	}
	if err != nil {
		return nil, err
	}
	defer r.Close()

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating directory %s: %w", destDir, err)
	}

	var written []string
	for _, f := range r.File {
		target, err := entryPath(destDir, f.Name)
		if err != nil {
			return written, err
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return written, err
			}
			continue
		}
		if err := extractFile(f, target); err != nil {
			return written, fmt.Errorf("writing %s: %w", f.Name, err)
		}
		written = append(written, target)
	}
	return written, nil
}

func entryPath(destDir, name string) (string, error) {
	if filepath.IsAbs(name) || strings.HasPrefix(name, "/") {
		return "", fmt.Errorf("%w: %s", ErrUnsafePath, name)
	}
	target := filepath.Join(destDir, name)
	rel, err := filepath.Rel(destDir, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrUnsafePath, name)
	}
	return target, nil
}

func extractFile(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// FileResult is the outcome of downloading one partition.
type FileResult struct {
	Name    string
	URL     string
	Path    string
	Skipped bool
	Bytes   int64
	Err     error
}

// OK reports whether the file is present locally after the attempt.
func (r FileResult) OK() bool {
	return r.Err == nil
}

// BatchResult holds the ordered per-file outcomes of a quarter download.
type BatchResult struct {
	Quarter    string
	Found      bool
	Results    []FileResult
	Downloaded int
	Skipped    int
	Failed     int
}

// Total returns the number of files attempted.
func (r BatchResult) Total() int {
	return r.Downloaded + r.Skipped + r.Failed
}

// HasFailures reports whether any file failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Paths returns the local paths of the files that are present, in input order.
func (r BatchResult) Paths() []string {
	var paths []string
	for _, fr := range r.Results {
		if fr.OK() {
			paths = append(paths, fr.Path)
		}
	}
	return paths
}

// Failures returns the results that carry an error.
func (r BatchResult) Failures() []FileResult {
	var out []FileResult
	for _, fr := range r.Results {
		if !fr.OK() {
			out = append(out, fr)
		}
	}
	return out
}

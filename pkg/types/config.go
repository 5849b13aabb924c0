// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by every command that talks to
// api.fda.gov.
type HTTPConfig struct {
	// Timeout bounds a single metadata or search request, and the wait for
	// response headers on file downloads.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "fda-fetch/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// DownloadConfig holds settings for the download stage.
type DownloadConfig struct {
	HTTPConfig `yaml:",inline"`

	// DownloadDir is the directory downloaded files are written to. The
	// extracted/ subdirectory holds unzip output.
	DownloadDir string `json:"download_dir" yaml:"download_dir"`

	// DownloadTimeout bounds one file transfer end to end. Zero disables it.
	DownloadTimeout time.Duration `json:"download_timeout" yaml:"download_timeout"`

	// Delay is the courtesy pause between consecutive downloads (default 300ms).
	Delay time.Duration `json:"delay" yaml:"delay"`
}

// SearchConfig holds settings for the drug-event search query.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// URL is the drug-event search endpoint.
	URL string `json:"search_url" yaml:"search_url"`

	// APIKey is an optional openFDA API key for higher rate limits.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
}

// LogConfig controls the diagnostic logger.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level" yaml:"level"`

	// Format is console or json.
	Format string `json:"format" yaml:"format"`
}

// Config groups everything the CLI reads from flags, environment and the
// config file.
type Config struct {
	Download    DownloadConfig `json:"download" yaml:"download"`
	Search      SearchConfig   `json:"search" yaml:"search"`
	MetadataURL string         `json:"metadata_url" yaml:"metadata_url"`
	Log         LogConfig      `json:"log" yaml:"log"`
}

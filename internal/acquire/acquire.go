// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package acquire downloads openFDA export files into the local download
// directory, one at a time, skipping files that already exist.
package acquire

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/fda-fetch/internal/httputil"
	"github.com/pdiddy/fda-fetch/pkg/types"
)

// chunkSize is the copy buffer used when streaming a response to disk.
const chunkSize = 8 * 1024

// Downloader fetches partitions into cfg.DownloadDir.
type Downloader struct {
	cfg    types.DownloadConfig
	client httputil.Doer
	w      io.Writer
	log    *zap.Logger

	// wait pauses between consecutive downloads. Tests replace it.
	wait func(ctx context.Context, d time.Duration) error
}

// New returns a Downloader that writes progress lines to w. A nil logger
// disables diagnostic logging.
func New(client httputil.Doer, cfg types.DownloadConfig, w io.Writer, log *zap.Logger) *Downloader {
	if log == nil {
		log = zap.NewNop()
	}
	if w == nil {
		w = io.Discard
	}
	return &Downloader{
		cfg:    cfg,
		client: client,
		w:      w,
		log:    log,
		wait:   sleepContext,
	}
}

// DownloadFile saves rawURL as filename inside the download directory and
// returns the local path. When the file already exists no request is made and
// skipped is true; existence is the only check performed.
func (d *Downloader) DownloadFile(ctx context.Context, rawURL, filename string) (localPath string, skipped bool, err error) {
	localPath, _, skipped, err = d.downloadFile(ctx, rawURL, filename)
	return localPath, skipped, err
}

func (d *Downloader) downloadFile(ctx context.Context, rawURL, filename string) (string, int64, bool, error) {
	if err := validateFilename(filename); err != nil {
		return "", 0, false, err
	}
	if err := os.MkdirAll(d.cfg.DownloadDir, 0o755); err != nil {
		return "", 0, false, fmt.Errorf("creating directory %s: %w", d.cfg.DownloadDir, err)
	}

	destPath := filepath.Join(d.cfg.DownloadDir, filename)
	if _, err := os.Stat(destPath); err == nil {
		fmt.Fprintf(d.w, "  already exists: %s\n", filename)
		d.log.Debug("skipping existing file", zap.String("file", filename), zap.String("path", destPath))
		return destPath, 0, true, nil
	}

	fmt.Fprintf(d.w, "  downloading: %s ... ", filename)
	start := time.Now()

	ctx, cancel := httputil.WithTimeout(ctx, d.cfg.DownloadTimeout)
	defer cancel()

	n, err := d.fetch(ctx, rawURL, destPath)
	if err != nil {
		fmt.Fprintln(d.w)
		return "", 0, false, err
	}

	fmt.Fprintln(d.w, "done")
	d.log.Info("downloaded file",
		zap.String("file", filename),
		zap.Int64("bytes", n),
		zap.Duration("duration", time.Since(start)))
	return destPath, n, false, nil
}

// fetch streams rawURL into a temporary file next to destPath and renames it
// into place once the body has been fully written.
func (d *Downloader) fetch(ctx context.Context, rawURL, destPath string) (int64, error) {
	resp, err := httputil.Get(ctx, d.client, rawURL, d.cfg.HTTPConfig)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".download-*.tmp")
	if err != nil {
		return 0, fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	n, copyErr := io.CopyBuffer(tmpFile, resp.Body, make([]byte, chunkSize))
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("renaming temp file: %w", err)
	}
	return n, nil
}

// FilenameFromURL returns the last path segment of rawURL as it appears in
// the URL, without the query or fragment. Percent-escapes are kept.
func FilenameFromURL(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil {
		if p := u.EscapedPath(); p != "" {
			return path.Base(p)
		}
	}
	name, _, _ := strings.Cut(rawURL, "?")
	name, _, _ = strings.Cut(name, "#")
	if i := strings.LastIndex(name, "/"); i >= 0 {
		return name[i+1:]
	}
	return name
}

// validateFilename rejects names that would resolve outside the download
// directory.
func validateFilename(name string) error {
	switch {
	case name == "", name == ".", name == "..", name == "/":
		return fmt.Errorf("invalid filename %q", name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("invalid filename %q: must not contain a path separator", name)
	}
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/fda-fetch/internal/acquire"
	"github.com/pdiddy/fda-fetch/internal/httputil"
	"github.com/pdiddy/fda-fetch/internal/inspect"
	"github.com/pdiddy/fda-fetch/pkg/types"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [ZIP...]",
	Short: "Extract downloaded archives and summarize their JSON contents",
	Long: `Inspect extracts each zip archive into <download-dir>/extracted and prints
the record count and the first field names of the first JSON document found
there. Archives share the extraction directory.

With --quarter, the archives of that quarter already present in the download
directory are inspected instead of the arguments.`,
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().String("quarter", "", `inspect the downloaded files of this quarter (e.g. "2015 Q4")`)
	inspectCmd.Flags().Int("first", 0, "with --quarter, only the first N files (0 for all)")

	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	quarter, _ := cmd.Flags().GetString("quarter")
	first, _ := cmd.Flags().GetInt("first")

	paths := args
	if quarter != "" {
		var err error
		paths, err = localQuarterFiles(cmd.Context(), newHTTPClient(), cfg, quarter, first, os.Stdout)
		if err != nil {
			return err
		}
	}
	if len(paths) == 0 {
		return fmt.Errorf("provide one or more zip files, or --quarter")
	}

	_, err := inspect.InspectArchives(paths, filepath.Join(cfg.Download.DownloadDir, extractedDir), os.Stdout)
	return err
}

// localQuarterFiles returns the download-directory paths of quarter's files
// that exist locally, reporting the ones that do not.
func localQuarterFiles(ctx context.Context, client httputil.Doer, c types.Config, quarter string, first int, w io.Writer) ([]string, error) {
	index, err := fetchIndex(ctx, client, c, w)
	if err != nil {
		return nil, err
	}
	group, ok := index.Get(quarter)
	if !ok {
		return nil, fmt.Errorf("quarter %q not found", quarter)
	}

	files := group.Files
	if first > 0 && first < len(files) {
		files = files[:first]
	}

	var paths []string
	for _, p := range files {
		path := filepath.Join(c.Download.DownloadDir, acquire.FilenameFromURL(p.File))
		if _, err := os.Stat(path); err != nil {
			fmt.Fprintf(w, "  not downloaded: %s\n", filepath.Base(path))
			continue
		}
		paths = append(paths, path)
	}
	return paths, nil
}

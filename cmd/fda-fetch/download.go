// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/fda-fetch/internal/acquire"
	"github.com/pdiddy/fda-fetch/internal/httputil"
	"github.com/pdiddy/fda-fetch/pkg/types"
)

var downloadCmd = &cobra.Command{
	Use:   "download QUARTER...",
	Short: `Download all files of one or more quarters (e.g. "2015 Q4")`,
	Long: `Download fetches the openFDA download index and downloads every file of
each named quarter into the download directory, one file at a time with a
short pause between files. Files that already exist are skipped. A failed
file is reported and the remaining files are still downloaded.

Use --first to fetch only the first N files of each quarter.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDownload,
}

func init() {
	downloadCmd.Flags().Int("first", 0, "download only the first N files of each quarter (0 for all)")
	downloadCmd.Flags().Duration("delay", defaultDelay, "pause between consecutive downloads")
	downloadCmd.Flags().Duration("download-timeout", defaultDownloadTimeout, "limit for a single file transfer (0 for none)")
	bindFlags(viper.GetViper(), downloadCmd.Flags(), map[string]string{
		"delay":            keyDelay,
		"download-timeout": keyDownloadTimeout,
	})

	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, args []string) error {
	first, _ := cmd.Flags().GetInt("first")
	_, err := downloadQuarters(cmd.Context(), newHTTPClient(), cfg, args, first, os.Stdout, logger)
	return err
}

// downloadQuarters fetches the index and downloads each named quarter. It
// returns the per-quarter results and an error when a quarter is unknown or
// any file failed.
func downloadQuarters(ctx context.Context, client httputil.Doer, c types.Config, quarters []string, first int, w io.Writer, log *zap.Logger) ([]types.BatchResult, error) {
	index, err := fetchIndex(ctx, client, c, w)
	if err != nil {
		return nil, err
	}

	d := acquire.New(client, c.Download, w, log)
	var (
		results []types.BatchResult
		missing int
		failed  int
	)
	for _, q := range quarters {
		var r types.BatchResult
		group, ok := index.Get(q)
		if ok && first > 0 && first < len(group.Files) {
			fmt.Fprintf(w, "\nDownloading first %d of %d files of %s\n\n", first, len(group.Files), q)
			r = d.DownloadPartitions(ctx, q, group.Files[:first])
		} else {
			r = d.DownloadQuarter(ctx, q, index)
		}
		results = append(results, r)

		if !r.Found {
			missing++
		}
		failed += r.Failed
		if ctx.Err() != nil {
			return results, ctx.Err()
		}
	}

	switch {
	case missing > 0 && failed > 0:
		return results, fmt.Errorf("%d quarter(s) not found, %d file(s) failed", missing, failed)
	case missing > 0:
		return results, fmt.Errorf("%d quarter(s) not found", missing)
	case failed > 0:
		return results, fmt.Errorf("%d file(s) failed", failed)
	}
	return results, nil
}

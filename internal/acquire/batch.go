// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package acquire

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pdiddy/fda-fetch/pkg/types"
)

// DownloadQuarter downloads every file of quarterName in index order. An
// unknown quarter is reported on the progress writer and yields a result
// with Found unset and no files; it is not an error.
func (d *Downloader) DownloadQuarter(ctx context.Context, quarterName string, index *types.QuarterIndex) types.BatchResult {
	group, ok := index.Get(quarterName)
	if !ok {
		fmt.Fprintf(d.w, "error: quarter %q not found\n", quarterName)
		return types.BatchResult{Quarter: quarterName}
	}

	fmt.Fprintf(d.w, "\nDownloading %s: %d files, %.2f MB\n\n", quarterName, len(group.Files), group.TotalSizeMB)
	return d.DownloadPartitions(ctx, quarterName, group.Files)
}

// DownloadPartitions downloads parts sequentially, pausing cfg.Delay between
// consecutive files. A failed file is recorded and the batch continues. When
// ctx is cancelled the remaining files are recorded as failed with ctx.Err().
func (d *Downloader) DownloadPartitions(ctx context.Context, label string, parts []types.Partition) types.BatchResult {
	result := types.BatchResult{Quarter: label, Found: true}
	log := d.log.With(zap.String("run_id", uuid.NewString()), zap.String("quarter", label))
	log.Info("starting batch", zap.Int("files", len(parts)))

	for i, p := range parts {
		fr := types.FileResult{Name: FilenameFromURL(p.File), URL: p.File}

		if i > 0 {
			if err := d.wait(ctx, d.cfg.Delay); err != nil {
				fr.Err = err
			}
		}
		if fr.Err == nil {
			fmt.Fprintf(d.w, "[%d/%d] ", i+1, len(parts))
			fr.Path, fr.Bytes, fr.Skipped, fr.Err = d.downloadFile(ctx, p.File, fr.Name)
		}

		switch {
		case fr.Err != nil:
			if ctx.Err() == nil {
				fmt.Fprintf(d.w, "failed: %v\n", fr.Err)
			}
			log.Warn("download failed", zap.String("file", fr.Name), zap.Error(fr.Err))
			result.Failed++
		case fr.Skipped:
			result.Skipped++
		default:
			result.Downloaded++
		}
		result.Results = append(result.Results, fr)
	}

	fmt.Fprintf(d.w, "\nBatch summary: %d downloaded, %d skipped, %d failed (total: %d)\n",
		result.Downloaded, result.Skipped, result.Failed, result.Total())
	log.Info("finished batch",
		zap.Int("downloaded", result.Downloaded),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed))
	return result
}

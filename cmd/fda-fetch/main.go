// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the fda-fetch CLI, which lists and
// downloads the openFDA drug adverse-event export files and inspects the
// downloaded archives.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/fda-fetch/internal/httputil"
	"github.com/pdiddy/fda-fetch/internal/logging"
	"github.com/pdiddy/fda-fetch/internal/openfda"
	"github.com/pdiddy/fda-fetch/internal/secrets"
	"github.com/pdiddy/fda-fetch/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// cfg is assembled from flags, environment and config file before each
	// command runs.
	cfg types.Config

	// logger carries diagnostics to stderr.
	logger = zap.NewNop()
)

// rootCmd is the base command for the fda-fetch CLI.
var rootCmd = &cobra.Command{
	Use:   "fda-fetch",
	Short: "List and download openFDA drug adverse-event export files",
	Long: `fda-fetch reads the openFDA download index (api.fda.gov/download.json),
groups the drug adverse-event export files by quarter, and downloads them into
a local directory. Files that already exist are skipped.

Downloaded archives can be extracted and summarized with inspect, and search
runs a single query against the drug-event search API.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/", os.Stderr)
		if err != nil {
			return err
		}
		if keys := s.Keys(); len(keys) > 0 {
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}

		cfg = configFrom(viper.GetViper(), s)

		l, err := logging.New(cfg.Log, os.Stderr)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./fda-fetch.yaml or ~/.config/fda-fetch/config.yaml)")
	pf.String("download-dir", defaultDownloadDir, "directory downloaded files are written to")
	pf.String("metadata-url", openfda.DefaultMetadataURL, "openFDA download index URL")
	pf.Duration("timeout", defaultTimeout, "timeout for metadata and search requests, and for download response headers")
	pf.String("log-level", logging.DefaultLevel, "diagnostic log level: debug, info, warn, error")
	pf.String("log-format", logging.FormatConsole, "diagnostic log format: console or json")

	setDefaults(viper.GetViper())
	bindFlags(viper.GetViper(), pf, map[string]string{
		"download-dir": keyDownloadDir,
		"metadata-url": keyMetadataURL,
		"timeout":      keyTimeout,
		"log-level":    keyLogLevel,
		"log-format":   keyLogFormat,
	})
}

func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "warning: reading .env:", err)
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("fda-fetch")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "fda-fetch"))
		}
	}

	bindEnv(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		fmt.Fprintln(os.Stderr, "warning: reading config file:", err)
	}
}

// newHTTPClient returns the client shared by the stages of one command.
func newHTTPClient() httputil.Doer {
	return httputil.NewClient(cfg.Download.HTTPConfig)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

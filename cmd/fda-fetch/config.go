// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/fda-fetch/internal/logging"
	"github.com/pdiddy/fda-fetch/internal/openfda"
	"github.com/pdiddy/fda-fetch/internal/search"
	"github.com/pdiddy/fda-fetch/internal/secrets"
	"github.com/pdiddy/fda-fetch/pkg/types"
)

const (
	defaultDownloadDir     = "./fda_data"
	defaultTimeout         = 60 * time.Second
	defaultDownloadTimeout = 30 * time.Minute
	defaultDelay           = 300 * time.Millisecond
	defaultUserAgent       = "fda-fetch/0.1"
	extractedDir           = "extracted"
	envPrefix              = "FDA_FETCH"
)

// Config keys shared by flags, environment and the config file.
const (
	keyDownloadDir     = "download_dir"
	keyMetadataURL     = "metadata_url"
	keySearchURL       = "search_url"
	keyTimeout         = "timeout"
	keyDownloadTimeout = "download_timeout"
	keyDelay           = "delay"
	keyUserAgent       = "user_agent"
	keyLogLevel        = "log.level"
	keyLogFormat       = "log.format"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault(keyDownloadDir, defaultDownloadDir)
	v.SetDefault(keyMetadataURL, openfda.DefaultMetadataURL)
	v.SetDefault(keySearchURL, search.DefaultURL)
	v.SetDefault(keyTimeout, defaultTimeout)
	v.SetDefault(keyDownloadTimeout, defaultDownloadTimeout)
	v.SetDefault(keyDelay, defaultDelay)
	v.SetDefault(keyUserAgent, defaultUserAgent)
	v.SetDefault(keyLogLevel, logging.DefaultLevel)
	v.SetDefault(keyLogFormat, logging.FormatConsole)
}

// bindEnv makes every key readable from FDA_FETCH_<KEY>, with dots mapped to
// underscores (log.level -> FDA_FETCH_LOG_LEVEL).
func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// bindFlags ties flag names to config keys. Unknown flags are skipped.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet, keys map[string]string) {
	for flagName, key := range keys {
		if f := fs.Lookup(flagName); f != nil {
			v.BindPFlag(key, f)
		}
	}
}

// configFrom assembles the stage configurations from v.
func configFrom(v *viper.Viper, s secrets.Secrets) types.Config {
	httpCfg := types.HTTPConfig{
		Timeout:   v.GetDuration(keyTimeout),
		UserAgent: v.GetString(keyUserAgent),
	}
	return types.Config{
		Download: types.DownloadConfig{
			HTTPConfig:      httpCfg,
			DownloadDir:     v.GetString(keyDownloadDir),
			DownloadTimeout: v.GetDuration(keyDownloadTimeout),
			Delay:           v.GetDuration(keyDelay),
		},
		Search: types.SearchConfig{
			HTTPConfig: httpCfg,
			URL:        v.GetString(keySearchURL),
			APIKey:     s.Get(secrets.OpenFDAAPIKey),
		},
		MetadataURL: v.GetString(keyMetadataURL),
		Log: types.LogConfig{
			Level:  v.GetString(keyLogLevel),
			Format: v.GetString(keyLogFormat),
		},
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging builds the diagnostic logger. Progress output meant for
// the user is written separately to stdout by each stage.
package logging

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/fda-fetch/pkg/types"
)

// Log encodings accepted in LogConfig.Format.
const (
	// FormatConsole writes human-readable, tab-separated lines.
	FormatConsole = "console"
	// FormatJSON writes one JSON object per entry.
	FormatJSON = "json"
)

// DefaultLevel keeps diagnostics quiet unless something goes wrong.
const DefaultLevel = "warn"

// New returns a zap logger writing to out at the configured level and
// format. An empty level or format falls back to warn and console.
func New(cfg types.LogConfig, out io.Writer) (*zap.Logger, error) {
	levelName := strings.ToLower(strings.TrimSpace(cfg.Level))
	if levelName == "" {
		levelName = DefaultLevel
	}
	level, err := zapcore.ParseLevel(levelName)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	switch strings.ToLower(cfg.Format) {
	case "", FormatConsole:
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	case FormatJSON:
		enc = zapcore.NewJSONEncoder(encCfg)
	default:
		return nil, fmt.Errorf("invalid log format %q: want %s or %s", cfg.Format, FormatConsole, FormatJSON)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(out), level)
	return zap.New(core), nil
}

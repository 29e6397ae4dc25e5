// SPDX-License-Identifier: EPL-2.0

// Package logging builds the zap logger used by the command and server.
package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ik5/pcmwav/internal/config"
)

// New returns a logger writing to the rotated file named in cfg, or to
// stderr when no file is set.
func New(cfg config.LoggingConfig) (*zap.Logger, error) {
	var sink zapcore.WriteSyncer
	if cfg.File != "" {
		sink = SyncerWithRotation(cfg)
	} else {
		sink = zapcore.Lock(os.Stderr)
	}

	return NewWithSyncer(cfg, sink)
}

// NewWithSyncer is New with an explicit destination.
func NewWithSyncer(cfg config.LoggingConfig, sink zapcore.WriteSyncer) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}

	var encoder zapcore.Encoder
	switch cfg.Format {
	case "json":
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	case "console", "":
		encCfg := zap.NewDevelopmentEncoderConfig()
		if cfg.File == "" {
			encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
		encoder = zapcore.NewConsoleEncoder(encCfg)
	default:
		return nil, fmt.Errorf("initializing logger: unknown format %q", cfg.Format)
	}

	core := zapcore.NewCore(encoder, sink, zap.NewAtomicLevelAt(level))

	return zap.New(core, zap.AddCaller()).Named("pcmwav"), nil
}

// SyncerWithRotation writes to cfg.File and rotates it by size.
func SyncerWithRotation(cfg config.LoggingConfig) zapcore.WriteSyncer {
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		Compress:   cfg.Compress,
	})
}

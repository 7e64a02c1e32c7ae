// Package zstfx provides an fx module for a zstd transcoder.
package zstfx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/discochess/zst"
	"github.com/discochess/zst/internal/codec/zstdcodec"
	"github.com/discochess/zst/internal/stats"
	"github.com/discochess/zst/internal/stats/logger"
)

// Config holds configuration for the transcoder.
type Config struct {
	// Level is the compression level, 1 to 22.
	// Default is 3.
	Level int
}

// Module provides a *zst.Transcoder.
// Requires a Config and a *zap.Logger to be provided.
var Module = fx.Module("zst",
	fx.Provide(
		newStatsCollector,
		newTranscoder,
	),
)

func newStatsCollector(log *zap.Logger) stats.Collector {
	return logger.New(log.Named("zst.stats"))
}

// Params holds dependencies for creating the transcoder.
type Params struct {
	fx.In

	Config    Config
	Logger    *zap.Logger
	Collector stats.Collector
}

// Result holds the provided transcoder.
type Result struct {
	fx.Out

	Transcoder *zst.Transcoder
}

func newTranscoder(p Params) (Result, error) {
	level := p.Config.Level
	if level == 0 {
		level = zstdcodec.DefaultLevel
	}

	codec, err := zstdcodec.New(level)
	if err != nil {
		return Result{}, err
	}

	t, err := zst.New(
		zst.WithCodec(codec),
		zst.WithStats(p.Collector),
		zst.WithLogger(p.Logger.Named("zst")),
	)
	if err != nil {
		return Result{}, err
	}

	return Result{Transcoder: t}, nil
}

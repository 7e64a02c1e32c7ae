package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/discochess/zst"
	"github.com/discochess/zst/internal/codec/zstdcodec"
	"github.com/discochess/zst/internal/endpoint"
	"github.com/discochess/zst/internal/stats"
	statslogger "github.com/discochess/zst/internal/stats/logger"
	"github.com/discochess/zst/internal/stats/prometheus"
)

func runRoot(cmd *cobra.Command, env *environment, f *flags, args []string) error {
	mode, err := f.mode()
	if err != nil {
		return err
	}

	logger := newLogger(env.stderr, f.verbose)
	defer logger.Sync()

	if mode == zst.Decompress && cmd.Flags().Changed("level") {
		logger.Debug("--level has no effect when decompressing", zap.Int("level", f.level))
	}

	var input string
	if len(args) == 1 {
		input = args[0]
	}

	codec, err := zstdcodec.New(f.level)
	if err != nil {
		return zst.Usagef("%v", err)
	}

	var promCollector *prometheus.Collector
	var collector stats.Collector = stats.NewNoop()
	switch {
	case f.metricsFile != "":
		promCollector = prometheus.New(nil)
		collector = promCollector
	case f.verbose:
		collector = statslogger.New(logger.Named("stats"))
	}

	transcoder, err := zst.New(
		zst.WithCodec(codec),
		zst.WithStats(collector),
		zst.WithLogger(logger.Named("transcoder")),
	)
	if err != nil {
		return err
	}

	// Resolve both ends before any byte is transformed.
	resolver := endpoint.NewResolver(
		endpoint.WithStdin(env.stdin),
		endpoint.WithStdout(env.stdout),
		endpoint.WithLogger(logger.Named("endpoint")),
	)
	src, sink, err := resolver.Resolve(cmd.Context(), endpoint.Request{
		Mode:            mode,
		Input:           input,
		Output:          f.outputFile,
		Force:           f.force,
		StdinIsTerminal: env.stdinIsTerminal(),
	})
	if err != nil {
		return err
	}
	defer src.Close()

	res, runErr := transcoder.Run(cmd.Context(), mode, sink, src)
	if runErr == nil {
		runErr = sink.Close()
	}
	if runErr != nil {
		if err := sink.Abort(); err != nil {
			logger.Warn("removing partial output", zap.String("path", sink.Path), zap.Error(err))
		}
	} else {
		logger.Info(summary(mode, src.Name(), sink.Name(), res))
	}

	if promCollector != nil {
		if err := promCollector.WriteTextfile(f.metricsFile); err != nil {
			if runErr != nil {
				logger.Warn("writing metrics", zap.String("path", f.metricsFile), zap.Error(err))
			} else {
				runErr = fmt.Errorf("writing metrics to %s: %w", f.metricsFile, err)
			}
		}
	}

	return runErr
}

// newLogger returns a console logger on w. Only warnings and errors are
// shown unless verbose is set.
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	encCfg.CallerKey = ""

	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), level)
	return zap.New(core).Named("zst")
}

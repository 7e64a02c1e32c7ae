// Package zst compresses and decompresses whole byte streams with zstd.
//
// A Transcoder performs exactly one transform per call: it consumes the
// entire source, writes the entire result, and either succeeds or returns
// a single *Error.
//
//	c, err := zstdcodec.New(zstdcodec.DefaultLevel)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	t, err := zst.New(zst.WithCodec(c))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := t.Compress(ctx, os.Stdout, os.Stdin)
package zst

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/discochess/zst/internal/codec"
	"github.com/discochess/zst/internal/stats"
)

// ErrNoCodec indicates no codec was provided.
var ErrNoCodec = errors.New("zst: no codec provided")

// Mode selects the direction of the transform.
type Mode int

const (
	// Compress encodes the source into a zstd stream.
	Compress Mode = iota
	// Decompress decodes a zstd stream from the source.
	Decompress
)

// String returns "compress" or "decompress".
func (m Mode) String() string {
	switch m {
	case Compress:
		return OpCompress
	case Decompress:
		return OpDecompress
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Result describes a completed transform.
type Result struct {
	BytesIn  int64
	BytesOut int64
	Duration time.Duration
}

// Transcoder runs a codec over a source and a sink.
type Transcoder struct {
	codec  codec.Codec
	stats  stats.Collector
	logger *zap.Logger
}

// New creates a Transcoder with the given options.
// A codec must be supplied with WithCodec.
func New(opts ...Option) (*Transcoder, error) {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt.apply(&cfg)
	}

	if cfg.codec == nil {
		return nil, ErrNoCodec
	}

	return &Transcoder{
		codec:  cfg.codec,
		stats:  cfg.stats,
		logger: cfg.logger,
	}, nil
}

// Compress reads all of src and writes its compressed form to dst.
func (t *Transcoder) Compress(ctx context.Context, dst io.Writer, src io.Reader) (Result, error) {
	return t.Run(ctx, Compress, dst, src)
}

// Decompress reads a compressed stream from src and writes the original bytes to dst.
func (t *Transcoder) Decompress(ctx context.Context, dst io.Writer, src io.Reader) (Result, error) {
	return t.Run(ctx, Decompress, dst, src)
}

// Run transforms src into dst according to mode.
// The context is checked once before any byte is read; a started
// transform always runs to completion.
func (t *Transcoder) Run(ctx context.Context, mode Mode, dst io.Writer, src io.Reader) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	in := &countingReader{r: src}
	out := &countingWriter{w: dst}

	t.stats.IncCounter(stats.MetricRuns, 1)
	start := time.Now()

	var err error
	switch mode {
	case Compress:
		err = t.compress(out, in)
	case Decompress:
		err = t.decompress(out, in)
	default:
		err = Usagef("unknown mode %v", mode)
	}

	res := Result{BytesIn: in.n, BytesOut: out.n, Duration: time.Since(start)}
	t.stats.IncCounter(stats.MetricInputBytes, res.BytesIn)
	t.stats.IncCounter(stats.MetricOutputBytes, res.BytesOut)
	t.stats.ObserveHistogram(stats.MetricDuration, res.Duration.Seconds())

	if err != nil {
		t.stats.IncCounter(stats.MetricFailures, 1)
		err = classify(mode, err, in, out)
		t.logger.Debug("transform failed",
			zap.Stringer("mode", mode),
			zap.Int64("bytesIn", res.BytesIn),
			zap.Int64("bytesOut", res.BytesOut),
			zap.Error(err),
		)
		return res, err
	}

	t.stats.SetGauge(stats.MetricLastSuccess, time.Now().Unix())
	t.logger.Debug("transform complete",
		zap.Stringer("mode", mode),
		zap.Int64("bytesIn", res.BytesIn),
		zap.Int64("bytesOut", res.BytesOut),
		zap.Duration("elapsed", res.Duration),
	)
	return res, nil
}

func (t *Transcoder) compress(dst io.Writer, src io.Reader) error {
	w, err := t.codec.Writer(dst)
	if err != nil {
		return fmt.Errorf("creating compressor: %w", err)
	}
	if _, err := io.Copy(w, src); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func (t *Transcoder) decompress(dst io.Writer, src io.Reader) error {
	r, err := t.codec.Reader(src)
	if err != nil {
		return fmt.Errorf("creating decompressor: %w", err)
	}
	defer r.Close()

	_, err = io.Copy(dst, r)
	return err
}

// classify maps a transform failure onto the error taxonomy. I/O errors
// raised by the source or the sink are reported as such; anything else
// came from the codec.
func classify(mode Mode, err error, in *countingReader, out *countingWriter) error {
	var zerr *Error
	if errors.As(err, &zerr) {
		return err
	}
	if out.err != nil && errors.Is(err, out.err) {
		return &Error{Kind: KindPathNotAccessible, Op: OpWrite, Path: pathOf(out.w), Err: out.err}
	}
	if in.err != nil && errors.Is(err, in.err) {
		return &Error{Kind: KindPathNotAccessible, Op: OpRead, Path: pathOf(in.r), Err: in.err}
	}
	return &Error{Kind: KindCodec, Op: mode.String(), Err: err}
}

// pathOf returns the name of v when it exposes one, or a stream label.
func pathOf(v any) string {
	if n, ok := v.(interface{ Name() string }); ok {
		return n.Name()
	}
	return "<stream>"
}

type countingReader struct {
	r   io.Reader
	n   int64
	err error
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	if err != nil && err != io.EOF {
		c.err = err
	}
	return n, err
}

type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	if err != nil {
		c.err = err
	}
	return n, err
}

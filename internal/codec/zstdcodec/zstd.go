// Package zstdcodec provides a zstd compression codec.
package zstdcodec

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/discochess/zst/internal/codec"
)

// Compile-time check that Codec implements codec.Codec.
var _ codec.Codec = (*Codec)(nil)

// Compression levels accepted by New, using the reference zstd numbering.
const (
	MinLevel     = 1
	DefaultLevel = 3
	MaxLevel     = 22
)

// Codec implements zstd compression at a fixed level.
// Encoders and decoders run on a single goroutine.
type Codec struct {
	level int
}

// New returns a zstd codec compressing at the given level.
// The level must be in [MinLevel, MaxLevel]; it is mapped onto the nearest
// encoder speed the library implements.
func New(level int) (*Codec, error) {
	if level < MinLevel || level > MaxLevel {
		return nil, fmt.Errorf("compression level must be between %d and %d, got %d", MinLevel, MaxLevel, level)
	}
	return &Codec{level: level}, nil
}

// Level returns the configured compression level.
func (c *Codec) Level() int {
	return c.level
}

// Reader wraps r to decompress zstd data.
func (c *Codec) Reader(r io.Reader) (io.ReadCloser, error) {
	decoder, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, err
	}
	return decoder.IOReadCloser(), nil
}

// Writer wraps w to compress data with zstd.
func (c *Codec) Writer(w io.Writer) (io.WriteCloser, error) {
	return zstd.NewWriter(w,
		zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(c.level)),
		zstd.WithEncoderConcurrency(1),
		zstd.WithZeroFrames(true),
	)
}

// Extension returns "zst".
func (c *Codec) Extension() string {
	return "zst"
}

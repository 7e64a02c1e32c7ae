package endpoint

import (
	"io"
	"os"

	"go.uber.org/zap"
)

// Option configures a Resolver.
type Option interface {
	apply(*options)
}

type options struct {
	stdin    io.Reader
	stdout   io.Writer
	fileMode os.FileMode
	logger   *zap.Logger
}

func defaultOptions() options {
	return options{
		stdin:    os.Stdin,
		stdout:   os.Stdout,
		fileMode: 0o644,
		logger:   zap.NewNop(),
	}
}

type optionFunc func(*options)

var _ Option = optionFunc(nil)

func (f optionFunc) apply(o *options) { f(o) }

// WithStdin sets the reader used for Stream sources. Default os.Stdin.
func WithStdin(r io.Reader) Option {
	return optionFunc(func(o *options) {
		o.stdin = r
	})
}

// WithStdout sets the writer used for Stream sinks. Default os.Stdout.
func WithStdout(w io.Writer) Option {
	return optionFunc(func(o *options) {
		o.stdout = w
	})
}

// WithFileMode sets the permissions of output files the resolver creates.
// Default 0644, before umask.
func WithFileMode(mode os.FileMode) Option {
	return optionFunc(func(o *options) {
		o.fileMode = mode
	})
}

// WithLogger sets the logger.
// If not set, a no-op logger is used.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(o *options) {
		o.logger = l
	})
}

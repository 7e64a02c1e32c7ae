package endpoint

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"

	"go.uber.org/zap"

	"github.com/discochess/zst"
)

// Request is everything the resolver needs to pick a source and a sink.
type Request struct {
	Mode zst.Mode
	// Input is the input path; empty or "-" selects standard input.
	Input string
	// Output is the explicit output path; empty derives one from Input,
	// "-" selects standard output.
	Output string
	// Force allows an existing output file to be truncated.
	Force bool
	// StdinIsTerminal reports whether standard input is an interactive terminal.
	StdinIsTerminal bool
}

// DeriveOutputPath returns the default output path for input under mode.
func DeriveOutputPath(mode zst.Mode, input string) string {
	if mode == zst.Decompress {
		return DecompressedName(input)
	}
	return CompressedName(input)
}

// Resolver turns a Request into an opened Source and Sink.
type Resolver struct {
	stdin    io.Reader
	stdout   io.Writer
	fileMode os.FileMode
	logger   *zap.Logger
}

// NewResolver creates a Resolver with the given options.
func NewResolver(opts ...Option) *Resolver {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt.apply(&cfg)
	}
	return &Resolver{
		stdin:    cfg.stdin,
		stdout:   cfg.stdout,
		fileMode: cfg.fileMode,
		logger:   cfg.logger,
	}
}

// Resolve picks and opens the source and the sink for req.
//
// The source is resolved first. Every check on the sink happens before it
// is opened, and nothing is ever written to it here. On failure any handle
// already opened is closed and a *zst.Error is returned.
func (r *Resolver) Resolve(ctx context.Context, req Request) (*Source, *Sink, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	src, err := r.openSource(req)
	if err != nil {
		return nil, nil, err
	}
	r.logger.Debug("resolved input",
		zap.Stringer("kind", src.Kind),
		zap.String("path", src.Path),
	)

	out := r.outputEndpoint(req, src.Endpoint)
	sink, err := r.openSink(out, req.Force, src.info)
	if err != nil {
		src.Close()
		return nil, nil, err
	}
	r.logger.Debug("resolved output",
		zap.Stringer("kind", sink.Kind),
		zap.String("path", sink.Path),
		zap.Bool("derived", sink.Derived),
	)

	return src, sink, nil
}

func (r *Resolver) openSource(req Request) (*Source, error) {
	if isStdio(req.Input) {
		if req.StdinIsTerminal {
			return nil, &zst.Error{Kind: zst.KindTerminalInput}
		}
		return &Source{
			Endpoint: Endpoint{Kind: Stream},
			r:        io.NopCloser(r.stdin),
		}, nil
	}

	path := req.Input
	info, err := os.Stat(path)
	if err != nil {
		return nil, &zst.Error{Kind: zst.KindPathNotAccessible, Op: zst.OpStat, Path: path, Err: unwrapPathError(err)}
	}
	if info.IsDir() {
		return nil, &zst.Error{Kind: zst.KindPathIsDirectory, Path: path}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &zst.Error{Kind: zst.KindPathNotAccessible, Op: zst.OpOpen, Path: path, Err: unwrapPathError(err)}
	}

	return &Source{
		Endpoint: Endpoint{Kind: File, Path: path},
		r:        f,
		info:     info,
	}, nil
}

func (r *Resolver) outputEndpoint(req Request, in Endpoint) Endpoint {
	switch {
	case req.Output == StdioSentinel:
		return Endpoint{Kind: Stream}
	case req.Output != "":
		return Endpoint{Kind: File, Path: req.Output}
	case in.IsFile():
		return Endpoint{Kind: File, Path: DeriveOutputPath(req.Mode, in.Path), Derived: true}
	default:
		return Endpoint{Kind: Stream}
	}
}

func (r *Resolver) openSink(ep Endpoint, force bool, srcInfo os.FileInfo) (*Sink, error) {
	if !ep.IsFile() {
		return &Sink{Endpoint: ep, w: nopWriteCloser{r.stdout}}, nil
	}

	path := ep.Path
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC

	info, err := os.Stat(path)
	switch {
	case err == nil:
		if info.IsDir() {
			return nil, &zst.Error{Kind: zst.KindPathIsDirectory, Path: path}
		}
		if srcInfo != nil && os.SameFile(srcInfo, info) {
			return nil, &zst.Error{Kind: zst.KindSameFile, Path: path}
		}
		if info.Mode().IsRegular() && !force {
			return nil, &zst.Error{Kind: zst.KindOutputExists, Path: path}
		}
	case errors.Is(err, fs.ErrNotExist):
		// Lose a race with another writer rather than truncate its file.
		if !force {
			flags |= os.O_EXCL
		}
	default:
		return nil, &zst.Error{Kind: zst.KindPathNotAccessible, Op: zst.OpStat, Path: path, Err: unwrapPathError(err)}
	}

	f, err := os.OpenFile(path, flags, r.fileMode)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, &zst.Error{Kind: zst.KindOutputExists, Path: path}
		}
		return nil, &zst.Error{Kind: zst.KindPathNotAccessible, Op: zst.OpCreate, Path: path, Err: unwrapPathError(err)}
	}

	return &Sink{Endpoint: ep, w: f}, nil
}

// unwrapPathError strips the *fs.PathError wrapper so messages do not
// repeat the operation and path.
func unwrapPathError(err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}
	return err
}

// Source is the resolved input of a run.
type Source struct {
	Endpoint
	r    io.ReadCloser
	info os.FileInfo
}

// Read reads from the underlying stream or file.
func (s *Source) Read(p []byte) (int, error) {
	return s.r.Read(p)
}

// Name returns the input path, or "<stdin>" for the standard stream.
func (s *Source) Name() string {
	if s.IsFile() {
		return s.Path
	}
	return "<stdin>"
}

// Close closes an input file. Standard input is left open.
func (s *Source) Close() error {
	return s.r.Close()
}

// Sink is the resolved output of a run.
type Sink struct {
	Endpoint
	w      io.WriteCloser
	closed bool
}

// Write writes to the underlying stream or file.
func (s *Sink) Write(p []byte) (int, error) {
	return s.w.Write(p)
}

// Name returns the output path, or "<stdout>" for the standard stream.
func (s *Sink) Name() string {
	if s.IsFile() {
		return s.Path
	}
	return "<stdout>"
}

// Close closes an output file. Standard output is left open.
// Closing twice is a no-op.
func (s *Sink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.w.Close(); err != nil {
		return &zst.Error{Kind: zst.KindPathNotAccessible, Op: zst.OpClose, Path: s.Name(), Err: unwrapPathError(err)}
	}
	return nil
}

// Abort closes the sink and removes the output file, leaving no partial
// output behind after a failed transform. It does nothing for streams.
func (s *Sink) Abort() error {
	if !s.IsFile() {
		return nil
	}
	s.Close()
	if err := os.Remove(s.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

package zst

import (
	"errors"
	"fmt"
)

// Kind classifies the fatal conditions a run can end with.
type Kind int

const (
	// KindUsage indicates bad or missing command-line arguments.
	KindUsage Kind = iota + 1

	// KindPathIsDirectory indicates an input or output path names a directory.
	KindPathIsDirectory

	// KindPathNotAccessible indicates a stat, open, read, write or close
	// failure on a path other than "not found" for an output.
	KindPathNotAccessible

	// KindOutputExists indicates the output file exists and overwriting
	// was not requested.
	KindOutputExists

	// KindTerminalInput indicates input would be read from an interactive terminal.
	KindTerminalInput

	// KindCodec indicates the compression library reported a failure.
	KindCodec

	// KindSameFile indicates the output path denotes the input file.
	KindSameFile
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindUsage:
		return "usage"
	case KindPathIsDirectory:
		return "path-is-directory"
	case KindPathNotAccessible:
		return "path-not-accessible"
	case KindOutputExists:
		return "output-exists"
	case KindTerminalInput:
		return "terminal-input"
	case KindCodec:
		return "codec"
	case KindSameFile:
		return "same-file"
	default:
		return "unknown"
	}
}

// Operation names recorded in Error.Op.
const (
	OpStat       = "stat"
	OpOpen       = "open"
	OpCreate     = "create"
	OpRead       = "read"
	OpWrite      = "write"
	OpClose      = "close"
	OpCompress   = "compress"
	OpDecompress = "decompress"
)

// Error is the error type returned for every fatal condition.
// Path is empty when the condition does not concern a file.
type Error struct {
	Kind Kind
	Op   string
	Path string
	Err  error
}

// Error returns a one-line, user-facing message.
func (e *Error) Error() string {
	switch e.Kind {
	case KindUsage:
		if e.Err != nil {
			return e.Err.Error()
		}
		return "invalid usage"
	case KindPathIsDirectory:
		return fmt.Sprintf("%s: is a directory, not a file", e.Path)
	case KindOutputExists:
		return fmt.Sprintf("%s: file exists; use --force to overwrite", e.Path)
	case KindTerminalInput:
		return "refusing to read from a terminal; name an input file or pipe data to stdin"
	case KindSameFile:
		return fmt.Sprintf("%s: output and input are the same file", e.Path)
	case KindCodec:
		return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
	case KindPathNotAccessible:
		return fmt.Sprintf("%s: %s", e.Path, e.describeAccess())
	default:
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
}

func (e *Error) describeAccess() string {
	var what string
	switch e.Op {
	case OpStat:
		what = "cannot access"
	case OpOpen:
		what = "cannot open for reading"
	case OpCreate:
		what = "cannot open for writing"
	case OpRead:
		what = "read error"
	case OpWrite:
		what = "write error"
	case OpClose:
		what = "error closing"
	default:
		what = e.Op
	}
	if e.Err == nil {
		return what
	}
	return fmt.Sprintf("%s: %v", what, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Usagef returns a KindUsage error with a formatted message.
func Usagef(format string, args ...any) error {
	return &Error{Kind: KindUsage, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the Kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsKind reports whether err carries an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

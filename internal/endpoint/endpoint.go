// Package endpoint resolves where a run reads its bytes from and writes
// them to, and guards the files involved before the transform begins.
package endpoint

import "strings"

// Kind tags an Endpoint as a standard stream or a named file.
type Kind int

const (
	// Stream is standard input for a source, standard output for a sink.
	Stream Kind = iota
	// File is a named path on disk.
	File
)

// String returns "stream" or "file".
func (k Kind) String() string {
	if k == File {
		return "file"
	}
	return "stream"
}

// Endpoint describes one side of a run.
type Endpoint struct {
	Kind Kind
	// Path is set for File endpoints.
	Path string
	// Derived is true when Path was computed from the input path rather
	// than supplied by the user.
	Derived bool
}

// IsFile reports whether the endpoint names a file.
func (e Endpoint) IsFile() bool {
	return e.Kind == File
}

// String returns the path for files and "-" for streams.
func (e Endpoint) String() string {
	if e.Kind == File {
		return e.Path
	}
	return StdioSentinel
}

// StdioSentinel is the path meaning "use the standard stream".
const StdioSentinel = "-"

// Suffix is appended by compression and stripped by decompression.
const Suffix = ".zst"

// UnknownSuffix is appended when decompressing a file whose name does not
// carry Suffix.
const UnknownSuffix = ".unzst"

// isStdio reports whether path selects the standard stream.
func isStdio(path string) bool {
	return path == "" || path == StdioSentinel
}

// CompressedName returns the default output path when compressing input.
func CompressedName(input string) string {
	return input + Suffix
}

// DecompressedName returns the default output path when decompressing input.
// A trailing Suffix is stripped when something remains; otherwise
// UnknownSuffix is appended.
func DecompressedName(input string) string {
	if len(input) > len(Suffix) && strings.HasSuffix(input, Suffix) {
		return strings.TrimSuffix(input, Suffix)
	}
	return input + UnknownSuffix
}

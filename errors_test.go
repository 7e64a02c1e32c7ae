package zst

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"
)

func TestError_Messages(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "directory",
			err:  &Error{Kind: KindPathIsDirectory, Path: "logs"},
			want: "logs: is a directory, not a file",
		},
		{
			name: "exists",
			err:  &Error{Kind: KindOutputExists, Path: "a.zst"},
			want: "a.zst: file exists; use --force to overwrite",
		},
		{
			name: "stat",
			err:  &Error{Kind: KindPathNotAccessible, Op: OpStat, Path: "in", Err: fs.ErrNotExist},
			want: "in: cannot access: file does not exist",
		},
		{
			name: "open",
			err:  &Error{Kind: KindPathNotAccessible, Op: OpOpen, Path: "in", Err: fs.ErrPermission},
			want: "in: cannot open for reading: permission denied",
		},
		{
			name: "create",
			err:  &Error{Kind: KindPathNotAccessible, Op: OpCreate, Path: "out", Err: fs.ErrPermission},
			want: "out: cannot open for writing: permission denied",
		},
		{
			name: "codec",
			err:  &Error{Kind: KindCodec, Op: OpDecompress, Err: errors.New("magic number mismatch")},
			want: "decompress failed: magic number mismatch",
		},
		{
			name: "same file",
			err:  &Error{Kind: KindSameFile, Path: "x"},
			want: "x: output and input are the same file",
		},
		{
			name: "usage",
			err:  &Error{Kind: KindUsage, Err: errors.New("too many arguments")},
			want: "too many arguments",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
			if strings.Contains(got, "\n") {
				t.Errorf("Error() spans several lines: %q", got)
			}
		})
	}
}

func TestError_TerminalMessage(t *testing.T) {
	msg := (&Error{Kind: KindTerminalInput}).Error()
	if !strings.Contains(msg, "terminal") {
		t.Errorf("Error() = %q, want mention of terminal", msg)
	}
}

func TestKindOf(t *testing.T) {
	base := &Error{Kind: KindOutputExists, Path: "a"}
	wrapped := fmt.Errorf("resolving: %w", base)

	if got := KindOf(wrapped); got != KindOutputExists {
		t.Errorf("KindOf(wrapped) = %v, want %v", got, KindOutputExists)
	}
	if !IsKind(wrapped, KindOutputExists) {
		t.Error("IsKind(wrapped) = false")
	}
	if IsKind(nil, KindOutputExists) {
		t.Error("IsKind(nil) = true")
	}
	if got := KindOf(errors.New("plain")); got != 0 {
		t.Errorf("KindOf(plain) = %v, want 0", got)
	}
}

func TestError_Unwrap(t *testing.T) {
	err := &Error{Kind: KindPathNotAccessible, Op: OpStat, Path: "p", Err: fs.ErrNotExist}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("errors.Is(err, fs.ErrNotExist) = false")
	}
}

func TestUsagef(t *testing.T) {
	err := Usagef("level %d out of range", 99)
	if !IsKind(err, KindUsage) {
		t.Fatalf("Usagef() kind = %v", KindOf(err))
	}
	if err.Error() != "level 99 out of range" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestKind_String(t *testing.T) {
	for k := KindUsage; k <= KindSameFile; k++ {
		if k.String() == "unknown" {
			t.Errorf("Kind(%d).String() = unknown", k)
		}
	}
	if Kind(0).String() != "unknown" {
		t.Error("Kind(0).String() should be unknown")
	}
}

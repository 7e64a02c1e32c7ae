// Package main provides the zst command, which compresses or decompresses
// a file or standard input with zstd.
package main

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/discochess/zst"
)

// environment is the process state a run depends on.
type environment struct {
	stdin           io.Reader
	stdout          io.Writer
	stderr          io.Writer
	stdinIsTerminal func() bool
}

func processEnvironment() *environment {
	return &environment{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		stdinIsTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
	}
}

func main() {
	os.Exit(execute(processEnvironment(), os.Args[1:]))
}

// execute runs the command with args and returns the process exit code.
// It is the only place where failures are reported.
func execute(env *environment, args []string) int {
	if args == nil {
		args = []string{}
	}

	cmd := newRootCmd(env)
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(env.stderr, "zst: %v\n", err)
		if zst.IsKind(err, zst.KindUsage) {
			fmt.Fprint(env.stderr, cmd.UsageString())
		}
		return 1
	}
	return 0
}

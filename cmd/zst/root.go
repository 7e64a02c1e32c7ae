package main

import (
	"github.com/spf13/cobra"

	"github.com/discochess/zst"
	"github.com/discochess/zst/internal/codec/zstdcodec"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// flags holds the parsed command line.
type flags struct {
	compress    bool
	decompress  bool
	level       int
	force       bool
	outputFile  string
	verbose     bool
	metricsFile string
}

func newRootCmd(env *environment) *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   "zst [flags] [file]",
		Short: "Compress or decompress a file with zstd",
		Long: `zst compresses or decompresses a single file or standard input with zstd.

Without a file argument, or with "-", data is read from standard input and
written to standard output. zst refuses to read from an interactive terminal.

When a file is given and no --output-file is set, the output path is derived:
  compress:   FILE -> FILE.zst
  decompress: FILE.zst -> FILE, anything else -> FILE.unzst

An existing output file is never replaced unless --force is given.

Examples:
  # Compress notes.txt into notes.txt.zst
  zst notes.txt

  # Decompress archive.zst into archive
  zst -d archive.zst

  # Compress a stream at level 19
  tar cf - dir | zst -l 19 > dir.tar.zst

  # Decompress to standard output
  zst -d -o - archive.zst | less`,
		Version:       version,
		Args:          maxOneInput,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, env, f, args)
		},
	}

	cmd.SetIn(env.stdin)
	cmd.SetOut(env.stdout)
	cmd.SetErr(env.stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &zst.Error{Kind: zst.KindUsage, Err: err}
	})

	fs := cmd.Flags()
	fs.BoolVarP(&f.compress, "compress", "c", false, "compress (the default)")
	fs.BoolVarP(&f.decompress, "decompress", "d", false, "decompress")
	fs.IntVarP(&f.level, "level", "l", zstdcodec.DefaultLevel, "compression level, 1 (fastest) to 22 (smallest)")
	fs.BoolVarP(&f.force, "force", "f", false, "overwrite an existing output file")
	fs.StringVarP(&f.outputFile, "output-file", "o", "", `output path ("-" for standard output)`)
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log progress to standard error")
	fs.StringVar(&f.metricsFile, "metrics-file", "", "write Prometheus metrics to this file after the run")

	return cmd
}

func maxOneInput(_ *cobra.Command, args []string) error {
	if len(args) > 1 {
		return zst.Usagef("accepts at most one input file, got %d", len(args))
	}
	return nil
}

// mode validates the mode and level flags.
func (f *flags) mode() (zst.Mode, error) {
	if f.compress && f.decompress {
		return 0, zst.Usagef("--compress and --decompress are mutually exclusive")
	}
	if f.level < zstdcodec.MinLevel || f.level > zstdcodec.MaxLevel {
		return 0, zst.Usagef("--level must be between %d and %d, got %d", zstdcodec.MinLevel, zstdcodec.MaxLevel, f.level)
	}
	if f.decompress {
		return zst.Decompress, nil
	}
	return zst.Compress, nil
}

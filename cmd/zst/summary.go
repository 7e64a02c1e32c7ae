package main

import (
	"fmt"

	"github.com/discochess/zst"
)

// summary describes a finished run, e.g.
// "notes.txt: 218.18% (11 B => 24 B, notes.txt.zst)".
func summary(mode zst.Mode, from, to string, res zst.Result) string {
	in, out := res.BytesIn, res.BytesOut
	if mode == zst.Decompress {
		return fmt.Sprintf("%s: %s => %s, %s", from, formatBytes(in), formatBytes(out), to)
	}
	ratio := 0.0
	if in > 0 {
		ratio = float64(out) * 100 / float64(in)
	}
	return fmt.Sprintf("%s: %.2f%% (%s => %s, %s)", from, ratio, formatBytes(in), formatBytes(out), to)
}

func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

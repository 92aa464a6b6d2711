// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"sort"

	"pnator/pkg/api"
)

// ReportFunc renders a whole run.
type ReportFunc func(w io.Writer, run *api.RunV1) error

// Reports maps a format name to its whole-run writer. Formats register
// themselves in init() blocks; "jsonl" streams instead and is handled by
// StartReportWriter.
var Reports = map[string]ReportFunc{}

// Register adds or replaces the writer for format (last wins).
func Register(format string, fn ReportFunc) { Reports[format] = fn }

// Formats lists every accepted --report-format value, sorted.
func Formats() []string {
	out := []string{FormatJSONL}
	for f := range Reports {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// WriteReport dispatches run to the writer registered for format.
func WriteReport(format string, w io.Writer, run *api.RunV1) error {
	fn, ok := Reports[format]
	if !ok {
		return fmt.Errorf("unknown report format %q (no writer registered)", format)
	}
	return fn(w, run)
}

// internal/writers/text.go
package writers

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"pnator/pkg/api"
)

// TextHeader is the TSV column header of the text report.
const TextHeader = "source\tmodel\tchain\tseq\tfrom\tto\tvalid\tunproduced\twarnings"

func init() { Register("text", WriteText) }

// WriteText renders run as TSV, one row per residue. File-level outcomes are
// '#' comment lines so the rows stay machine readable.
func WriteText(w io.Writer, run *api.RunV1) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# run %s (pnator %s)\n", run.RunID, run.Version)
	fmt.Fprintln(bw, TextHeader)
	for _, f := range run.Files {
		if f.Error != "" {
			fmt.Fprintf(bw, "# %s: error: %s\n", f.Source, f.Error)
			continue
		}
		invalid, failures := 0, 0
		for _, c := range f.Chains {
			invalid += c.Invalid
			failures += c.BackboneFailures
		}
		for _, r := range f.Residues {
			fmt.Fprintf(bw, "%s\t%d\t%s\t%d\t%s\t%s\t%t\t%s\t%s\n",
				f.Source, r.Model, r.Chain, r.Seq, r.From, r.To, r.Valid,
				orDash(strings.Join(r.Unproduced, ",")), orDash(strings.Join(r.Warnings, "; ")))
		}
		for _, wn := range f.Warnings {
			fmt.Fprintf(bw, "# %s: %s\n", f.Source, wn)
		}
		fmt.Fprintf(bw, "# %s (%s): %d residues, %d invalid, %d backbone failures -> %s\n",
			f.Source, f.StructureID, len(f.Residues), invalid, failures, orDash(f.Output))
	}
	return bw.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

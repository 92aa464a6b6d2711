// internal/writers/report.go
package writers

import (
	"io"

	"pnator-core/pna"
	"pnator/internal/jsonlutil"
	"pnator/pkg/api"
)

// FormatJSONL streams one api.FileV1 per line as results arrive.
const FormatJSONL = "jsonl"

// ToAPIFile converts one file's outcome into the public wire type.
// fileErr is the error that stopped the file; residueErr carries the joined
// residue-level errors of a conversion that otherwise completed.
func ToAPIFile(source, output string, sum pna.Summary, fileErr, residueErr error) api.FileV1 {
	f := api.FileV1{
		Source:      source,
		StructureID: sum.StructureID,
		Output:      output,
		Warnings:    ErrorLines(residueErr),
	}
	if fileErr != nil {
		f.Error = fileErr.Error()
		f.Output = ""
	}
	for _, c := range sum.Chains {
		f.Chains = append(f.Chains, api.ChainV1{
			Model:            c.Model,
			Chain:            c.Chain,
			Residues:         c.Residues,
			BackboneFailures: c.BackboneFailures,
			Invalid:          c.Invalid,
		})
	}
	for _, r := range sum.Reports {
		f.Residues = append(f.Residues, ToAPIResidue(r))
	}
	return f
}

// ToAPIResidue converts a residue report.
func ToAPIResidue(r pna.Report) api.ResidueV1 {
	return api.ResidueV1{
		Model:           r.Key.Model,
		Chain:           r.Key.Chain,
		Seq:             r.Key.Seq,
		From:            r.Residue,
		To:              pna.PNAName(r.Residue),
		Valid:           r.Valid(),
		Unproduced:      r.Unproduced(),
		Synthesized:     append([]string(nil), r.Synthesized...),
		Removed:         append([]string(nil), r.Removed...),
		Relocated:       append([]string(nil), r.Relocated...),
		Warnings:        append([]string(nil), r.Warnings...),
		BackboneFailure: r.BackboneFailure,
	}
}

// ErrorLines flattens an errors.Join tree into one string per leaf.
func ErrorLines(err error) []string {
	if err == nil {
		return nil
	}
	j, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return []string{err.Error()}
	}
	var out []string
	for _, e := range j.Unwrap() {
		out = append(out, ErrorLines(e)...)
	}
	return out
}

// StartReportWriter spins up a writer goroutine for per-file reports.
// jsonl streams each file as it arrives (stamped with run.RunID); every other
// format buffers the files into run and renders once the channel is closed.
func StartReportWriter(out io.Writer, format string, run api.RunV1, bufSize int) (chan<- api.FileV1, <-chan error) {
	if format == FormatJSONL {
		return jsonlutil.Start(out, bufSize, func(f api.FileV1) any {
			f.RunID = run.RunID
			return f
		}, IsBrokenPipe)
	}
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan api.FileV1, bufSize)
	errCh := make(chan error, 1)

	go func() {
		for f := range in {
			run.Files = append(run.Files, f)
		}
		err := WriteReport(format, out, &run)
		if IsBrokenPipe(err) {
			err = nil
		}
		errCh <- err
	}()

	return in, errCh
}

// internal/app/convert.go
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"pnator-core/pna"
	"pnator-core/structure"
	"pnator/internal/cli"
	"pnator/internal/cmdutil"
	"pnator/internal/fetch"
	"pnator/internal/metrics"
	"pnator/internal/pipeline"
	"pnator/internal/version"
	"pnator/internal/writers"
	"pnator/pkg/api"
)

func newConvertCmd(stdout, stderr io.Writer) *cobra.Command {
	flags := cli.Defaults()
	cmd := &cobra.Command{
		Use:   "convert [flags] <file.pdb[.gz]|->...",
		Short: "Convert nucleotide residues of PDB structures to PNA",
		Example: `  pnator convert 1bna.pdb                 # writes 1bna_pna.pdb
  pnator convert --fetch 1BNA --out-dir out --report - --report-format json
  zcat pdb1bna.ent.gz | pnator convert - > 1bna_pna.pdb`,
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := cli.Resolve(cmd.Flags(), flags, args)
			if err != nil {
				return usageErr(err)
			}
			return runConvert(cmd.Context(), o, stdout, stderr)
		},
	}
	cli.Bind(cmd.Flags(), &flags)
	return cmd
}

// sources turns local inputs and fetch ids into pipeline sources.
func sources(o cli.Options, client *fetch.Client) ([]pipeline.Source, error) {
	var srcs []pipeline.Source
	for _, in := range o.Inputs {
		out, err := outputFor(o, in, false)
		if err != nil {
			return nil, err
		}
		srcs = append(srcs, pipeline.FileSource(in, out))
	}
	for _, raw := range o.Fetch {
		id, err := fetch.NormalizeID(raw)
		if err != nil {
			return nil, err
		}
		out, err := outputFor(o, id, true)
		if err != nil {
			return nil, err
		}
		srcs = append(srcs, pipeline.Source{
			Name:   "rcsb:" + id,
			Output: out,
			Load: func(ctx context.Context) (*structure.Structure, error) {
				return client.Fetch(ctx, id)
			},
		})
	}
	return srcs, nil
}

// openReport returns the report destination; "-" is stdout and is not closed.
func openReport(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "-" {
		return stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func runConvert(ctx context.Context, o cli.Options, stdout, stderr io.Writer) error {
	log, err := cmdutil.NewLogger(stderr, o.LogLevel, o.LogFormat, o.Quiet)
	if err != nil {
		return usageErr(err)
	}
	if o.BondLength > 0 && o.BondLength != pna.BondLength {
		cmdutil.Warnf(stderr, o.Quiet, "--bond-length %g replaces the standard %g Å C=O distance", o.BondLength, pna.BondLength)
	}
	runID := uuid.NewString()
	log = log.With(slog.String("run_id", runID))

	srcs, err := sources(o, fetch.New(o.FetchBase, log))
	if err != nil {
		return usageErr(err)
	}
	if o.OutDir != "" {
		if err := os.MkdirAll(o.OutDir, 0o755); err != nil {
			return runtimeErr(err)
		}
	}

	threads := o.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	conv := pna.New(pna.Config{Logger: log, BondLength: o.BondLength, Workers: o.ChainWorkers})
	m := metrics.New()

	var (
		repIn   chan<- api.FileV1
		repDone <-chan error
		closeFn = func() error { return nil }
	)
	if o.Report != "" {
		w, c, err := openReport(o.Report, stdout)
		if err != nil {
			return runtimeErr(err)
		}
		closeFn = c
		repIn, repDone = writers.StartReportWriter(w, o.ReportFormat,
			api.RunV1{RunID: runID, Version: version.Version}, threads*4)
	}

	start := time.Now()
	var files, failed, residues, invalid int
	perr := pipeline.Run(ctx, pipeline.Config{Threads: threads, Converter: conv, Stdout: stdout}, srcs,
		func(r pipeline.Result) error {
			files++
			m.ObserveFile(r.Summary, r.Err, r.Elapsed)
			flog := log.With(slog.String("source", r.Source.Name))
			switch {
			case errors.Is(r.Err, context.Canceled):
			case r.Err != nil:
				failed++
				flog.Error("conversion failed", slog.Any("error", r.Err))
			default:
				residues += len(r.Summary.Reports)
				invalid += len(r.Summary.Invalid())
				for _, msg := range writers.ErrorLines(r.ResidueErr) {
					flog.Warn("residue error", slog.String("error", msg))
				}
				flog.Info("file converted",
					slog.String("structure", r.Summary.StructureID),
					slog.String("output", r.Source.Output),
					slog.Int("residues", len(r.Summary.Reports)),
					slog.Int("invalid", len(r.Summary.Invalid())),
					slog.Duration("elapsed", r.Elapsed))
			}
			if repIn == nil {
				return nil
			}
			f := writers.ToAPIFile(r.Source.Name, r.Source.Output, r.Summary, r.Err, r.ResidueErr)
			select {
			case repIn <- f:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})

	var werr error
	if repIn != nil {
		close(repIn)
		werr = errors.Join(<-repDone, closeFn())
	}
	if o.MetricsFile != "" {
		if err := m.WriteFile(o.MetricsFile); err != nil {
			werr = errors.Join(werr, fmt.Errorf("metrics: %w", err))
		}
	}

	log.Info("run complete",
		slog.Int("files", files),
		slog.Int("failed", failed),
		slog.Int("residues", residues),
		slog.Int("invalid", invalid),
		slog.Duration("elapsed", time.Since(start)))

	switch {
	case perr != nil && errors.Is(perr, context.Canceled):
		return &exitError{code: ExitCancelled, err: perr}
	case perr != nil:
		return runtimeErr(perr)
	case werr != nil && !writers.IsBrokenPipe(werr):
		return runtimeErr(werr)
	case failed > 0:
		return exitCode(ExitRuntime)
	case invalid > 0 && o.InvalidExitCode != 0:
		return exitCode(o.InvalidExitCode)
	}
	return nil
}

// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"golang.org/x/sync/errgroup"

	"pnator-core/pdb"
	"pnator-core/pna"
	"pnator-core/structure"
)

// Source is one input structure.
type Source struct {
	// Name identifies the input in reports (path, "-" or "rcsb:<ID>").
	Name string
	// Load produces the structure to convert.
	Load func(ctx context.Context) (*structure.Structure, error)
	// Output is where the converted structure goes: "" skips writing,
	// "-" means Config.Stdout.
	Output string
}

// FileSource reads path (gzip and "-" aware) and writes to output.
func FileSource(path, output string) Source {
	return Source{
		Name:   path,
		Output: output,
		Load: func(context.Context) (*structure.Structure, error) {
			return pdb.ReadFile(path)
		},
	}
}

// Config controls the pipeline.
type Config struct {
	Threads   int // inputs processed concurrently (>=1)
	Converter *pna.Converter
	Stdout    io.Writer // destination for Output "-"
}

// Result is the outcome of one Source.
type Result struct {
	Index     int
	Source    Source
	Structure *structure.Structure
	Summary   pna.Summary
	// Err stopped this input (load, cancel or write failure); nothing was written.
	Err error
	// ResidueErr joins residue-level errors; the converted file was still written.
	ResidueErr error
	Elapsed    time.Duration
}

// Run processes srcs with up to cfg.Threads workers and calls visit once per
// source, in input order. A failing source does not stop the others; its
// Result carries the error. Run returns the first visit error, or the context
// error when cancelled.
func Run(parent context.Context, cfg Config, srcs []Source, visit func(Result) error) error {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}
	if cfg.Converter == nil {
		cfg.Converter = pna.New(pna.Config{})
	}
	if cfg.Stdout == nil {
		cfg.Stdout = io.Discard
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	results := make([]Result, len(srcs))
	ready := make([]chan struct{}, len(srcs))
	for i := range ready {
		ready[i] = make(chan struct{})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Threads)
	fed := make(chan struct{})
	go func() {
		defer close(fed)
		for i, src := range srcs {
			if err := gctx.Err(); err != nil {
				results[i] = Result{Index: i, Source: src, Err: err}
				close(ready[i])
				continue
			}
			g.Go(func() error {
				results[i] = process(gctx, cfg, i, src)
				close(ready[i])
				return nil
			})
		}
	}()

	var verr error
	for i := range srcs {
		<-ready[i]
		if verr != nil {
			continue
		}
		if err := visit(results[i]); err != nil {
			verr = err
			cancel()
		}
	}
	<-fed
	_ = g.Wait()

	if verr != nil {
		return verr
	}
	return parent.Err()
}

func process(ctx context.Context, cfg Config, i int, src Source) (res Result) {
	res = Result{Index: i, Source: src}
	start := time.Now()
	defer func() { res.Elapsed = time.Since(start) }()

	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}
	s, err := src.Load(ctx)
	if err != nil {
		res.Err = err
		return res
	}
	res.Structure = s

	sum, err := cfg.Converter.Convert(ctx, s)
	if ctxErr := ctx.Err(); ctxErr != nil {
		res.Err = ctxErr
		return res
	}
	res.Summary = sum
	res.ResidueErr = err

	if err := write(src.Output, cfg.Stdout, s); err != nil {
		res.Err = fmt.Errorf("write %s: %w", src.Output, err)
	}
	return res
}

func write(dst string, stdout io.Writer, s *structure.Structure) error {
	switch dst {
	case "":
		return nil
	case "-":
		return pdb.Write(stdout, s)
	default:
		return pdb.WriteFile(dst, s)
	}
}


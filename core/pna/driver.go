// core/pna/driver.go
package pna

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"pnator-core/structure"
)

// ChainSummary aggregates one chain's conversion.
type ChainSummary struct {
	Model            int
	Chain            string
	Residues         int
	BackboneFailures int
	Invalid          int
}

// Summary is the outcome of converting one structure.
type Summary struct {
	StructureID string
	Chains      []ChainSummary
	Reports     []Report
}

// Valid reports whether every converted residue passed validation.
func (s Summary) Valid() bool {
	for _, r := range s.Reports {
		if !r.Valid() {
			return false
		}
	}
	return true
}

// Invalid returns the reports that failed validation.
func (s Summary) Invalid() []Report {
	var out []Report
	for _, r := range s.Reports {
		if !r.Valid() {
			out = append(out, r)
		}
	}
	return out
}

// ConvertStructure converts s in place with default settings and returns it.
// The error, if any, joins the residue-level fatal errors; every convertible
// residue has still been converted.
func ConvertStructure(s *structure.Structure) (*structure.Structure, error) {
	_, err := New(Config{}).Convert(context.Background(), s)
	return s, err
}

type chainResult struct {
	summary ChainSummary
	reports []Report
	err     error
}

// Convert converts every nucleotide residue of s in place. Chains without
// nucleotides are skipped. Residues within a chain are converted in order;
// chains may run concurrently when Config.Workers > 1. Reports come back in
// chain order either way.
func (c *Converter) Convert(ctx context.Context, s *structure.Structure) (Summary, error) {
	ids := structure.NewIDAllocator(s.MaxAtomID())
	chains := s.Chains()
	results := make([]chainResult, len(chains))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i, ch := range chains {
		residues := ch.NucleotideResidues()
		if len(residues) == 0 {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = c.convertChain(gctx, s, ids, ch, residues)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{StructureID: s.ID}, err
	}

	sum := Summary{StructureID: s.ID}
	var errs []error
	for _, res := range results {
		if res.reports == nil {
			continue
		}
		sum.Chains = append(sum.Chains, res.summary)
		sum.Reports = append(sum.Reports, res.reports...)
		if res.err != nil {
			errs = append(errs, res.err)
		}
	}
	c.log.InfoContext(ctx, "structure converted",
		slog.String("structure", s.ID),
		slog.Int("chains", len(sum.Chains)),
		slog.Int("residues", len(sum.Reports)),
		slog.Int("invalid", len(sum.Invalid())))
	return sum, errors.Join(errs...)
}

// convertChain runs the residue converter over one chain. The failure
// counter lives here, so it starts from zero for every chain.
func (c *Converter) convertChain(ctx context.Context, s *structure.Structure, ids *structure.IDAllocator,
	ch *structure.Chain, residues []*structure.Residue) chainResult {

	st := &chainState{s: s, ids: ids}
	out := chainResult{summary: ChainSummary{Model: ch.Model, Chain: ch.ID}}
	var errs []error
	for _, res := range residues {
		rep, err := c.convertResidue(ctx, st, res)
		if err != nil {
			errs = append(errs, err)
		}
		out.reports = append(out.reports, rep)
		if !rep.Valid() {
			out.summary.Invalid++
		}
	}
	out.summary.Residues = len(residues)
	out.summary.BackboneFailures = st.failures
	out.err = errors.Join(errs...)
	return out
}

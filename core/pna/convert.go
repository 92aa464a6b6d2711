// core/pna/convert.go
package pna

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"pnator-core/structure"
)

// Config controls a Converter. The zero value is usable.
type Config struct {
	// Logger receives per-residue diagnostics; nil means slog.Default().
	Logger *slog.Logger
	// BondLength overrides the C=O distance of synthesized oxygens (0 = 1.21).
	BondLength float64
	// Workers > 1 converts chains concurrently.
	Workers int
}

// Converter turns nucleotide residues into PNA residues.
type Converter struct {
	log        *slog.Logger
	bondLength float64
	workers    int
}

// New returns a Converter for cfg.
func New(cfg Config) *Converter {
	c := &Converter{log: cfg.Logger, bondLength: cfg.BondLength, workers: cfg.Workers}
	if c.log == nil {
		c.log = slog.Default()
	}
	if c.bondLength <= 0 {
		c.bondLength = BondLength
	}
	if c.workers < 1 {
		c.workers = 1
	}
	return c
}

// chainState is the mutable state of one chain's conversion.
type chainState struct {
	s        *structure.Structure
	ids      *structure.IDAllocator
	failures int
}

// ConvertResidue converts a single residue of s. Residues relocate atoms into
// their predecessor, so callers converting a whole chain should use Convert.
func (c *Converter) ConvertResidue(s *structure.Structure, res *structure.Residue) (Report, error) {
	st := &chainState{s: s, ids: structure.NewIDAllocator(s.MaxAtomID())}
	return c.convertResidue(context.Background(), st, res)
}

func (c *Converter) convertResidue(ctx context.Context, st *chainState, res *structure.Residue) (Report, error) {
	rep := NewReport(res.Key, res.Name)
	if IsPNAName(res.Name) {
		return rep, fmt.Errorf("%s: %w", res.Key, ErrAlreadyConverted)
	}
	log := c.log.With(slog.String("residue", res.Key.String()), slog.String("name", res.Name))
	var errs []error

	// 1. resolve
	op1 := Resolve(FirstPhosphateOxygen, res)
	op2 := Resolve(SecondPhosphateOxygen, res)
	p := Resolve(Phosphate, res)
	c1 := Resolve(OnePrimeCarbon, res)
	c2 := Resolve(TwoPrimeCarbon, res)
	c3 := Resolve(ThreePrimeCarbon, res)
	o4 := Resolve(FourPrimeOxygen, res)
	o2 := Resolve(TwoPrimeOxygen, res)
	ho2 := Resolve(TwoPrimeHydrogen, res)

	var prev *structure.Residue
	if p != nil {
		prev = st.s.Predecessor(res)
		if prev == nil {
			errs = append(errs, fmt.Errorf("%s: phosphate cannot move to residue %d: %w",
				res.Key, res.Key.Seq-1, ErrMissingPrecedingResidue))
		}
	}

	// 2. O7' on C3'
	if c1 != nil && c2 != nil && c3 != nil {
		o7, err := Synthesize(c1, c3, c3, false, "O7'", structure.Oxygen, c.bondLength, st.ids)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", res.Key, err))
		} else {
			res.AddAtom(o7)
			res.AddBond(c3, o7)
			rep.Synthesized = append(rep.Synthesized, o7.Name)
		}
	} else {
		msg := "missing " + missing(map[Role]*structure.Atom{
			OnePrimeCarbon: c1, TwoPrimeCarbon: c2, ThreePrimeCarbon: c3,
		}) + " for O7' synthesis"
		rep.warn(msg)
		log.WarnContext(ctx, "could not synthesize O7'", slog.String("reason", msg))
	}

	// 3. O1' on P, placed in the preceding residue
	switch {
	case op1 != nil && op2 != nil && p != nil:
		if prev == nil {
			break
		}
		o1, err := Synthesize(op1, op2, p, true, "O1'", structure.Oxygen, c.bondLength, st.ids)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", res.Key, err))
			break
		}
		prev.AddAtom(o1)
		prev.AddBond(p, o1)
		rep.Synthesized = append(rep.Synthesized, o1.Name)
		rep.Relocated = append(rep.Relocated, o1.Name)
	default:
		st.failures++
		rep.BackboneFailure = true
		msg := "missing " + missing(map[Role]*structure.Atom{
			FirstPhosphateOxygen: op1, SecondPhosphateOxygen: op2, Phosphate: p,
		}) + " for O1' synthesis"
		rep.warn(msg)
		if st.failures == 1 {
			log.WarnContext(ctx, "could not calculate backbone", slog.String("reason", msg))
		} else {
			log.WarnContext(ctx, "repeated backbone failure in chain",
				slog.String("reason", msg), slog.Int("failures", st.failures))
		}
	}

	// 4. drop atoms the PNA backbone has no place for
	drop := []*structure.Atom{op1, op2, o4, o2, ho2}
	if o2 != nil {
		for _, id := range res.BondedTo(o2.ID()) {
			if a := res.Atom(id); a != nil && a.Element == structure.Hydrogen {
				drop = append(drop, a)
			}
		}
	}
	for _, a := range drop {
		if a == nil {
			continue
		}
		name := a.Name
		if res.RemoveAtom(a.ID()) {
			rep.Removed = append(rep.Removed, name)
		}
	}

	// 5. relabel; the former phosphate closes the preceding unit
	if cp := relabelResidue(res, &rep); cp != nil && prev != nil {
		a, bonds := res.TakeAtom(cp.ID())
		prev.AddAtom(a)
		prev.AddBonds(bonds...)
		rep.Relocated = append(rep.Relocated, a.Name)
	}
	res.Name = PNAName(res.Name)

	// 6. report
	if rep.Valid() {
		log.DebugContext(ctx, "residue converted", slog.String("pna", res.Name))
	} else {
		log.WarnContext(ctx, "incomplete relabeling",
			slog.String("unproduced", strings.Join(rep.Unproduced(), ",")))
	}
	return rep, errors.Join(errs...)
}

// missing lists the canonical names of the nil entries, in role order.
func missing(atoms map[Role]*structure.Atom) string {
	var names []string
	for _, r := range Roles() {
		if a, ok := atoms[r]; ok && a == nil {
			names = append(names, r.Name())
		}
	}
	return strings.Join(names, ",")
}

package pna

import (
	"bytes"
	"io"
	"log/slog"

	"gonum.org/v1/gonum/spatial/r3"

	"pnator-core/structure"
)

type atomSpec struct {
	name string
	el   structure.Element
	pos  r3.Vec
}

// zigzag is a full DNA backbone laid out as a planar zig-zag, plus the
// phosphate oxygens and O4' off the plane.
var zigzag = []atomSpec{
	{"P", structure.Phosphorus, r3.Vec{X: -1, Y: 1}},
	{"OP1", structure.Oxygen, r3.Vec{X: -1, Y: 2, Z: 1}},
	{"OP2", structure.Oxygen, r3.Vec{X: -1, Y: 2, Z: -1}},
	{"O5'", structure.Oxygen, r3.Vec{X: 0, Y: 0}},
	{"C5'", structure.Carbon, r3.Vec{X: 1, Y: 1}},
	{"C4'", structure.Carbon, r3.Vec{X: 2, Y: 0}},
	{"O4'", structure.Oxygen, r3.Vec{X: 3, Y: -1, Z: 1}},
	{"C3'", structure.Carbon, r3.Vec{X: 3, Y: 1}},
	{"C2'", structure.Carbon, r3.Vec{X: 4, Y: 0}},
	{"C1'", structure.Carbon, r3.Vec{X: 5, Y: 1}},
	{"O3'", structure.Oxygen, r3.Vec{X: 6, Y: 0}},
	{"N9", structure.Nitrogen, r3.Vec{X: 5, Y: 2, Z: 1}},
}

// without returns zigzag minus the named atoms.
func without(names ...string) []atomSpec {
	skip := map[string]bool{}
	for _, n := range names {
		skip[n] = true
	}
	var out []atomSpec
	for _, a := range zigzag {
		if !skip[a.name] {
			out = append(out, a)
		}
	}
	return out
}

// renamed returns zigzag with names rewritten through m.
func renamed(m map[string]string) []atomSpec {
	out := make([]atomSpec, len(zigzag))
	copy(out, zigzag)
	for i := range out {
		if n, ok := m[out[i].name]; ok {
			out[i].name = n
		}
	}
	return out
}

// addResidue appends a residue to chain of model 1, shifted 10 Å along x per
// sequence number, with ids continuing from the structure's current maximum.
func addResidue(s *structure.Structure, chain string, seq int, name string, atoms []atomSpec) *structure.Residue {
	key := structure.ResidueKey{PDBID: s.ID, Model: 1, Chain: chain, Seq: seq}
	r := structure.NewResidue(key, name)
	next := s.MaxAtomID()
	for _, a := range atoms {
		next++
		pos := r3.Add(a.pos, r3.Vec{X: 10 * float64(seq)})
		r.AddAtom(structure.NewAtom(next, a.el, a.name, pos))
	}
	s.ModelOrNew(1).ChainOrNew(chain).AddResidue(r)
	return r
}

// twoResidueChain builds a 5'-terminal residue without phosphate followed by
// the full zig-zag residue.
func twoResidueChain() (*structure.Structure, *structure.Residue, *structure.Residue) {
	s := structure.New("TEST")
	first := addResidue(s, "A", 1, "DG", without("P", "OP1", "OP2"))
	second := addResidue(s, "A", 2, "DA", zigzag)
	return s, first, second
}

func names(r *structure.Residue) map[string]int {
	m := map[string]int{}
	for _, a := range r.Atoms() {
		m[a.Name]++
	}
	return m
}

func quietLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

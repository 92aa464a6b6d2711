// core/structure/structure.go
package structure

import (
	"strings"
	"sync/atomic"
)

// Chain is an ordered sequence of residues.
type Chain struct {
	ID    string
	Model int

	residues []*Residue
	bySeq    map[int]*Residue
}

// NewChain returns an empty chain.
func NewChain(model int, id string) *Chain {
	return &Chain{ID: id, Model: model, bySeq: make(map[int]*Residue)}
}

// AddResidue appends r. The first residue registered under a sequence number
// is the one returned by Residue.
func (c *Chain) AddResidue(r *Residue) {
	c.residues = append(c.residues, r)
	if _, ok := c.bySeq[r.Key.Seq]; !ok {
		c.bySeq[r.Key.Seq] = r
	}
}

// Residues returns the chain's residues in file order.
func (c *Chain) Residues() []*Residue {
	out := make([]*Residue, len(c.residues))
	copy(out, c.residues)
	return out
}

// NucleotideResidues returns the DNA/RNA residues in file order.
func (c *Chain) NucleotideResidues() []*Residue {
	var out []*Residue
	for _, r := range c.residues {
		if r.IsNucleotide() {
			out = append(out, r)
		}
	}
	return out
}

// Residue returns the residue with sequence number seq, or nil.
func (c *Chain) Residue(seq int) *Residue { return c.bySeq[seq] }

// Predecessor returns the residue that precedes r in the chain. Insertion
// codes order residues sharing a number (10, 10A, 10B), so the predecessor is
// the same number with the nearest lower insertion code, or else the residue
// numbered Seq-1 with the highest insertion code. It returns nil if neither
// exists.
func (c *Chain) Predecessor(r *Residue) *Residue {
	var same, before *Residue
	ic := insertion(r)
	for _, o := range c.residues {
		if o == r {
			continue
		}
		oc := insertion(o)
		switch {
		case o.Key.Seq == r.Key.Seq && oc < ic:
			if same == nil || oc > insertion(same) {
				same = o
			}
		case o.Key.Seq == r.Key.Seq-1:
			if before == nil || oc > insertion(before) {
				before = o
			}
		}
	}
	if same != nil {
		return same
	}
	return before
}

// insertion returns r's insertion code with blank normalized to 0.
func insertion(r *Residue) byte {
	if r.InsertionCode == ' ' {
		return 0
	}
	return r.InsertionCode
}

// Model is one coordinate set of a structure.
type Model struct {
	Num    int
	chains []*Chain
}

// Chains returns the model's chains in file order.
func (m *Model) Chains() []*Chain {
	out := make([]*Chain, len(m.chains))
	copy(out, m.chains)
	return out
}

// Chain returns the chain with the given id, or nil.
func (m *Model) Chain(id string) *Chain {
	for _, c := range m.chains {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// ChainOrNew returns the chain with the given id, creating it if needed.
func (m *Model) ChainOrNew(id string) *Chain {
	if c := m.Chain(id); c != nil {
		return c
	}
	c := NewChain(m.Num, id)
	m.chains = append(m.chains, c)
	return c
}

// Structure is the in-memory graph of one structure file.
type Structure struct {
	ID string

	models []*Model
}

// New returns an empty structure with the given PDB id.
func New(id string) *Structure { return &Structure{ID: id} }

// Models returns the models in file order.
func (s *Structure) Models() []*Model {
	out := make([]*Model, len(s.models))
	copy(out, s.models)
	return out
}

// Model returns the model numbered num, or nil.
func (s *Structure) Model(num int) *Model {
	for _, m := range s.models {
		if m.Num == num {
			return m
		}
	}
	return nil
}

// ModelOrNew returns the model numbered num, creating it if needed.
func (s *Structure) ModelOrNew(num int) *Model {
	if m := s.Model(num); m != nil {
		return m
	}
	m := &Model{Num: num}
	s.models = append(s.models, m)
	return m
}

// Chains returns every chain of every model, models first.
func (s *Structure) Chains() []*Chain {
	var out []*Chain
	for _, m := range s.models {
		out = append(out, m.chains...)
	}
	return out
}

// ResidueAt looks a residue up by its full key. It returns nil when the
// structure id does not match or no such residue exists.
func (s *Structure) ResidueAt(pdbID string, model int, chain string, seq int) *Residue {
	if !strings.EqualFold(pdbID, s.ID) {
		return nil
	}
	m := s.Model(model)
	if m == nil {
		return nil
	}
	c := m.Chain(chain)
	if c == nil {
		return nil
	}
	return c.Residue(seq)
}

// Predecessor returns the residue preceding res in its own chain, or nil.
func (s *Structure) Predecessor(res *Residue) *Residue {
	m := s.Model(res.Key.Model)
	if m == nil {
		return nil
	}
	c := m.Chain(res.Key.Chain)
	if c == nil {
		return nil
	}
	return c.Predecessor(res)
}

// EachAtom calls fn for every atom in the structure.
func (s *Structure) EachAtom(fn func(*Residue, *Atom)) {
	for _, c := range s.Chains() {
		for _, r := range c.residues {
			for _, a := range r.atoms {
				fn(r, a)
			}
		}
	}
}

// MaxAtomID returns the highest atom id present, or 0 for an empty structure.
func (s *Structure) MaxAtomID() int {
	hi := 0
	s.EachAtom(func(_ *Residue, a *Atom) {
		if a.ID() > hi {
			hi = a.ID()
		}
	})
	return hi
}

// AtomIDs returns every atom id in traversal order, duplicates included.
func (s *Structure) AtomIDs() []int {
	var ids []int
	s.EachAtom(func(_ *Residue, a *Atom) { ids = append(ids, a.ID()) })
	return ids
}

// IDAllocator hands out atom ids above a seed. It is safe for concurrent use.
type IDAllocator struct {
	last atomic.Int64
}

// NewIDAllocator returns an allocator whose first id is seed+1.
func NewIDAllocator(seed int) *IDAllocator {
	a := &IDAllocator{}
	a.last.Store(int64(seed))
	return a
}

// Next returns a fresh id.
func (a *IDAllocator) Next() int { return int(a.last.Add(1)) }

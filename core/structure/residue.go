// core/structure/residue.go
package structure

import (
	"fmt"
	"strings"
)

// ResidueKey identifies a residue inside a structure.
type ResidueKey struct {
	PDBID string
	Model int
	Chain string
	Seq   int
}

func (k ResidueKey) String() string {
	return fmt.Sprintf("%s/%d/%s/%d", k.PDBID, k.Model, k.Chain, k.Seq)
}

// Residue owns an ordered list of atoms and the bonds recorded between them.
// Bonds may reference an atom living in a neighbouring residue.
type Residue struct {
	Key           ResidueKey
	Name          string
	InsertionCode byte

	atoms []*Atom
	bonds []Bond
}

// NewResidue returns an empty residue.
func NewResidue(key ResidueKey, name string) *Residue {
	return &Residue{Key: key, Name: name}
}

// Atoms returns a snapshot of the residue's atoms in insertion order.
func (r *Residue) Atoms() []*Atom {
	out := make([]*Atom, len(r.atoms))
	copy(out, r.atoms)
	return out
}

// Len returns the number of atoms.
func (r *Residue) Len() int { return len(r.atoms) }

// AtomByName returns the first atom whose current name equals name, or nil.
func (r *Residue) AtomByName(name string) *Atom {
	for _, a := range r.atoms {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// Atom returns the atom with the given id, or nil.
func (r *Residue) Atom(id int) *Atom {
	if i := r.index(id); i >= 0 {
		return r.atoms[i]
	}
	return nil
}

// AddAtom appends a. Adding an atom whose id is already present is ignored.
func (r *Residue) AddAtom(a *Atom) {
	if a == nil || r.index(a.ID()) >= 0 {
		return
	}
	r.atoms = append(r.atoms, a)
}

// RemoveAtom deletes the atom with the given id together with every bond
// touching it. It reports whether the atom was present.
func (r *Residue) RemoveAtom(id int) bool {
	a, _ := r.TakeAtom(id)
	return a != nil
}

// TakeAtom detaches the atom with the given id and returns it with the bonds
// that touched it, so it can be moved to another residue.
func (r *Residue) TakeAtom(id int) (*Atom, []Bond) {
	i := r.index(id)
	if i < 0 {
		return nil, nil
	}
	a := r.atoms[i]
	r.atoms = append(r.atoms[:i], r.atoms[i+1:]...)

	var taken []Bond
	kept := r.bonds[:0]
	for _, b := range r.bonds {
		if b.Has(id) {
			taken = append(taken, b)
			continue
		}
		kept = append(kept, b)
	}
	r.bonds = kept
	return a, taken
}

// AddBond records a single bond between a and b. Duplicate and self bonds are
// ignored.
func (r *Residue) AddBond(a, b *Atom) {
	if a == nil || b == nil {
		return
	}
	r.addBond(Bond{A: a.ID(), B: b.ID()})
}

// AddBonds records already-built bonds, e.g. the ones returned by TakeAtom.
func (r *Residue) AddBonds(bs ...Bond) {
	for _, b := range bs {
		r.addBond(b)
	}
}

func (r *Residue) addBond(nb Bond) {
	if nb.A == nb.B {
		return
	}
	for _, b := range r.bonds {
		if (b.A == nb.A && b.B == nb.B) || (b.A == nb.B && b.B == nb.A) {
			return
		}
	}
	r.bonds = append(r.bonds, nb)
}

// Bonds returns a snapshot of the residue's bonds.
func (r *Residue) Bonds() []Bond {
	out := make([]Bond, len(r.bonds))
	copy(out, r.bonds)
	return out
}

// BondedTo returns the ids bonded to id according to this residue's bonds.
func (r *Residue) BondedTo(id int) []int {
	var ids []int
	for _, b := range r.bonds {
		if o := b.Other(id); o >= 0 {
			ids = append(ids, o)
		}
	}
	return ids
}

// IsNucleotide reports whether the residue name is a DNA or RNA nucleotide.
func (r *Residue) IsNucleotide() bool { return IsNucleotideName(r.Name) }

func (r *Residue) index(id int) int {
	for i, a := range r.atoms {
		if a.ID() == id {
			return i
		}
	}
	return -1
}

func (r *Residue) String() string {
	return fmt.Sprintf("%s %s", r.Name, r.Key)
}

var nucleotideNames = map[string]bool{
	"A": true, "C": true, "G": true, "U": true, "T": true, "I": true, "N": true,
	"DA": true, "DC": true, "DG": true, "DT": true, "DU": true, "DI": true, "DN": true,
}

// IsNucleotideName reports whether name is a standard nucleotide residue code.
func IsNucleotideName(name string) bool {
	return nucleotideNames[strings.ToUpper(strings.TrimSpace(name))]
}

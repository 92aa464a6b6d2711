// core/structure/atom.go
package structure

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Atom is one node of the structure graph. The id and position are fixed at
// construction; name and element may be rewritten in place.
type Atom struct {
	id  int
	pos r3.Vec

	Name    string
	Element Element

	// PDB passthrough fields; the converter never reads them.
	Het       bool
	AltLoc    byte
	Occupancy float64
	BFactor   float64
}

// NewAtom returns an atom with occupancy 1.
func NewAtom(id int, el Element, name string, pos r3.Vec) *Atom {
	return &Atom{id: id, pos: pos, Name: name, Element: el, Occupancy: 1}
}

// ID returns the structure-unique atom id.
func (a *Atom) ID() int { return a.id }

// Position returns the atom's coordinates.
func (a *Atom) Position() r3.Vec { return a.pos }

func (a *Atom) String() string {
	return fmt.Sprintf("(%d, %s, %s, [%0.3f %0.3f %0.3f])",
		a.id, a.Name, a.Element, a.pos.X, a.pos.Y, a.pos.Z)
}

// Bond is an undirected single-bond edge between two atom ids.
type Bond struct {
	A, B int
}

// Has reports whether the bond touches atom id.
func (b Bond) Has(id int) bool { return b.A == id || b.B == id }

// Other returns the partner of id, or -1 if the bond does not touch id.
func (b Bond) Other(id int) int {
	switch id {
	case b.A:
		return b.B
	case b.B:
		return b.A
	}
	return -1
}

// core/pna/synth.go
package pna

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"pnator-core/structure"
)

// BondLength is the C=O double bond distance (Å) used to place synthesized
// oxygens.
const BondLength = 1.21

// minDirection is the shortest direction vector we are willing to normalize.
const minDirection = 1e-12

// Synthesize places a new atom at bondLength from bonded along the line
// through the centroid of anchorA and anchorB: towards the centroid when
// forward is true, away from it otherwise. The returned atom has a fresh id
// from ids and is not attached to any residue.
func Synthesize(anchorA, anchorB, bonded *structure.Atom, forward bool, name string,
	el structure.Element, bondLength float64, ids *structure.IDAllocator) (*structure.Atom, error) {

	pos, err := project(anchorA.Position(), anchorB.Position(), bonded.Position(), forward, bondLength)
	if err != nil {
		return nil, fmt.Errorf("%s from %s/%s on %s: %w", name, anchorA.Name, anchorB.Name, bonded.Name, err)
	}
	return structure.NewAtom(ids.Next(), el, name, pos), nil
}

func project(a, b, c r3.Vec, forward bool, bondLength float64) (r3.Vec, error) {
	if r3.Norm(r3.Sub(a, b)) < minDirection {
		return r3.Vec{}, ErrDegenerateGeometry
	}
	centroid := r3.Scale(0.5, r3.Add(a, b))
	dir := r3.Sub(centroid, c)
	if r3.Norm(dir) < minDirection {
		return r3.Vec{}, ErrDegenerateGeometry
	}
	dir = r3.Unit(dir)
	if !forward {
		dir = r3.Scale(-1, dir)
	}
	return r3.Add(c, r3.Scale(bondLength, dir)), nil
}

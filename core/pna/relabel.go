// core/pna/relabel.go
package pna

import (
	"strings"

	"pnator-core/structure"
)

// Relabel is one backbone rename: the atom playing Role becomes Name/Element.
type Relabel struct {
	Role    Role
	Name    string
	Element structure.Element
}

// relabels is the fixed backbone table, in validation order.
var relabels = []Relabel{
	{FivePrimeOxygen, "N1'", structure.Nitrogen},
	{FivePrimeCarbon, "C2'", structure.Carbon},
	{FourPrimeCarbon, "C3'", structure.Carbon},
	{ThreePrimeCarbon, "N4'", structure.Nitrogen},
	{TwoPrimeCarbon, "C7'", structure.Carbon},
	{OnePrimeCarbon, "C8'", structure.Carbon},
	{ThreePrimeOxygen, "C5'", structure.Carbon},
	{Phosphate, "C'", structure.Carbon},
}

// Relabels returns a copy of the backbone relabel table.
func Relabels() []Relabel { return append([]Relabel(nil), relabels...) }

// Targets returns the PNA names every converted residue must carry.
func Targets() []string {
	out := make([]string, len(relabels))
	for i, rl := range relabels {
		out[i] = rl.Name
	}
	return out
}

var relabelByRole = func() map[Role]Relabel {
	m := make(map[Role]Relabel, len(relabels))
	for _, rl := range relabels {
		m[rl.Role] = rl
	}
	return m
}()

// relabelResidue renames every backbone atom of res once, in a single pass
// over a snapshot of the atoms, so a freshly written "C2'" is never read back
// as a source name. It returns the atom that was the phosphate, if any.
// Residues already carrying a PNA name are left alone.
func relabelResidue(res *structure.Residue, rep *Report) *structure.Atom {
	if IsPNAName(res.Name) {
		return nil
	}
	var phosphate *structure.Atom
	for _, a := range res.Atoms() {
		role, ok := roleOf[a.Name]
		if !ok {
			continue
		}
		rl, ok := relabelByRole[role]
		if !ok {
			continue
		}
		a.Name = rl.Name
		a.Element = rl.Element
		rep.Mark(rl.Name)
		if role == Phosphate {
			phosphate = a
		}
	}
	return phosphate
}

// pnaNames maps nucleotide codes to the PDB chemical component ids of the
// corresponding PNA monomers. Uracil has no PNA monomer of its own and maps
// onto thymine.
var pnaNames = map[string]string{
	"A": "APN", "DA": "APN",
	"C": "CPN", "DC": "CPN",
	"G": "GPN", "DG": "GPN",
	"T": "TPN", "DT": "TPN",
	"U": "TPN", "DU": "TPN",
}

// PNAName returns the PNA residue name for a nucleotide code; XPN for bases
// without a PNA monomer.
func PNAName(nucleotide string) string {
	if n, ok := pnaNames[strings.ToUpper(strings.TrimSpace(nucleotide))]; ok {
		return n
	}
	return "XPN"
}

// IsPNAName reports whether name is one of the PNA residue names.
func IsPNAName(name string) bool {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "APN", "CPN", "GPN", "TPN", "XPN":
		return true
	}
	return false
}

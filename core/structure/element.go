// core/structure/element.go
package structure

import (
	"strings"
	"unicode"
)

// Element is a chemical element symbol as written in PDB columns 77-78.
type Element string

const (
	Hydrogen   Element = "H"
	Carbon     Element = "C"
	Nitrogen   Element = "N"
	Oxygen     Element = "O"
	Phosphorus Element = "P"
	Sulfur     Element = "S"
	Unknown    Element = ""
)

// twoLetter lists the two-letter elements we expect to meet in nucleic-acid
// files (ions and crystallization additives).
var twoLetter = map[string]Element{
	"MG": "MG", "NA": "NA", "CL": "CL", "ZN": "ZN", "CA": "CA",
	"MN": "MN", "BR": "BR", "CO": "CO", "SR": "SR", "BA": "BA",
}

// ParseElement normalizes an element column ("  C", "Mg") to an Element.
func ParseElement(s string) Element {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return Unknown
	}
	return Element(s)
}

// ElementFromName guesses an element from an atom name when the element
// column is blank. Leading digits (old hydrogen names like "2HO*") are skipped.
// Two-letter elements are only recognized for single-atom ion residues, since
// "CA" in a polymer residue is a carbon.
func ElementFromName(name, resName string) Element {
	n := strings.ToUpper(strings.TrimLeftFunc(strings.TrimSpace(name), unicode.IsDigit))
	if n == "" {
		return Unknown
	}
	if el, ok := twoLetter[n]; ok && n == strings.ToUpper(strings.TrimSpace(resName)) {
		return el
	}
	return Element(n[:1])
}

func (e Element) String() string { return string(e) }

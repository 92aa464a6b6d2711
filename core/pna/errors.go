// core/pna/errors.go
package pna

import "errors"

var (
	// ErrMissingPrecedingResidue is returned when a residue carries a
	// phosphate but the residue numbered one lower does not exist.
	ErrMissingPrecedingResidue = errors.New("pna: preceding residue missing")

	// ErrDegenerateGeometry is returned when a synthesis direction vector has
	// zero length (coincident anchors, or bonded atom on the centroid).
	ErrDegenerateGeometry = errors.New("pna: degenerate synthesis geometry")

	// ErrAlreadyConverted is returned when a residue already carries a PNA name.
	ErrAlreadyConverted = errors.New("pna: residue already converted")
)

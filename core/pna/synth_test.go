package pna

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"pnator-core/structure"
)

func at(id int, x, y, z float64) *structure.Atom {
	return structure.NewAtom(id, structure.Carbon, "X", r3.Vec{X: x, Y: y, Z: z})
}

func TestSynthesizeDirection(t *testing.T) {
	ids := structure.NewIDAllocator(10)
	a, b, c := at(1, 0, 2, 0), at(2, 2, 2, 0), at(3, 1, 0, 0)

	fwd, err := Synthesize(a, b, c, true, "O1'", structure.Oxygen, BondLength, ids)
	require.NoError(t, err)
	assert.Equal(t, 11, fwd.ID())
	assert.Equal(t, "O1'", fwd.Name)
	assert.Equal(t, structure.Oxygen, fwd.Element)
	assert.InDelta(t, 1.0, fwd.Position().X, 1e-12)
	assert.InDelta(t, 1.21, fwd.Position().Y, 1e-12)

	back, err := Synthesize(a, b, c, false, "O7'", structure.Oxygen, BondLength, ids)
	require.NoError(t, err)
	assert.Equal(t, 12, back.ID())
	assert.InDelta(t, -1.21, back.Position().Y, 1e-12)
	assert.InDelta(t, BondLength, r3.Norm(r3.Sub(back.Position(), c.Position())), 1e-9)

	// inputs are untouched
	assert.Equal(t, r3.Vec{X: 1}, c.Position())
}

func TestSynthesizeDegenerate(t *testing.T) {
	ids := structure.NewIDAllocator(0)

	_, err := Synthesize(at(1, 1, 1, 1), at(2, 1, 1, 1), at(3, 0, 0, 0), true, "O", structure.Oxygen, BondLength, ids)
	assert.ErrorIs(t, err, ErrDegenerateGeometry, "coincident anchors")

	_, err = Synthesize(at(1, 0, 0, 0), at(2, 2, 0, 0), at(3, 1, 0, 0), true, "O", structure.Oxygen, BondLength, ids)
	assert.ErrorIs(t, err, ErrDegenerateGeometry, "bonded atom on the centroid")
}

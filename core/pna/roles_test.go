package pna

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pnator-core/structure"
)

func TestResolveAliases(t *testing.T) {
	s := structure.New("T")
	r := addResidue(s, "A", 1, "DA", renamed(map[string]string{"OP1": "O1P", "C5'": "C5*"}))

	op1 := Resolve(FirstPhosphateOxygen, r)
	require.NotNil(t, op1)
	assert.Equal(t, "O1P", op1.Name)

	c5 := Resolve(FivePrimeCarbon, r)
	require.NotNil(t, c5)
	assert.Equal(t, "C5*", c5.Name)

	// RNA roles are simply absent from DNA.
	assert.Nil(t, Resolve(TwoPrimeOxygen, r))
	assert.Nil(t, Resolve(TwoPrimeHydrogen, r))
	assert.Nil(t, Resolve(Role(99), r))
}

func TestResolveFirstAliasWins(t *testing.T) {
	s := structure.New("T")
	r := addResidue(s, "A", 1, "DA", []atomSpec{
		{"O1P", structure.Oxygen, zigzag[1].pos},
		zigzag[1],
	})
	got := Resolve(FirstPhosphateOxygen, r)
	require.NotNil(t, got)
	assert.Equal(t, "OP1", got.Name)
}

func TestRoleTable(t *testing.T) {
	roles := Roles()
	require.Len(t, roles, int(numRoles))
	for _, r := range roles {
		assert.NotEmpty(t, r.Aliases(), r.String())
		assert.NotEqual(t, "unknown", r.String())
		assert.Equal(t, r.Aliases()[0], r.Name())
	}
	assert.True(t, TwoPrimeOxygen.Optional())
	assert.False(t, FourPrimeOxygen.Optional())

	// Aliases hands out a copy.
	a := Phosphate.Aliases()
	a[0] = "X"
	assert.Equal(t, "P", Phosphate.Name())
}

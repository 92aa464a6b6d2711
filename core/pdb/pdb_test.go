package pdb

import (
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"pnator-core/structure"
)

const fixture = `HEADER    DNA                                     25-JAN-81   1BNA              
ATOM      1  O5'  DC A   1      18.935  34.195  25.617  1.00 20.00           O
ATOM      2  C5'  DC A   1      19.130  33.921  24.219  1.00 20.00           C
ATOM      3  P    DG A   2      19.130  31.700  20.939  1.00 20.00           P
ATOM      4  OP1A DG A   2      19.200  32.100  19.500  1.00 20.00           O
ATOM      5  OP1B DG A   2      19.900  32.100  19.500  1.00 20.00           O
TER       6       DG A   2
HETATM    7  O   HOH A 101       1.000   2.000   3.000  1.00 20.00
CONECT    1    2
END
`

func TestReadFixture(t *testing.T) {
	s, err := Read(strings.NewReader(fixture), "fallback")
	require.NoError(t, err)
	assert.Equal(t, "1BNA", s.ID)

	chains := s.Chains()
	require.Len(t, chains, 1)
	res := chains[0].Residues()
	require.Len(t, res, 3)
	assert.Equal(t, "DC", res[0].Name)
	assert.Equal(t, structure.ResidueKey{PDBID: "1BNA", Model: 1, Chain: "A", Seq: 2}, res[1].Key)
	assert.Len(t, chains[0].NucleotideResidues(), 2)

	o5 := res[0].AtomByName("O5'")
	require.NotNil(t, o5)
	assert.Equal(t, 1, o5.ID())
	assert.Equal(t, structure.Oxygen, o5.Element)
	assert.InDelta(t, 18.935, o5.Position().X, 1e-9)
	assert.InDelta(t, 20.0, o5.BFactor, 1e-9)
	assert.Equal(t, []structure.Bond{{A: 1, B: 2}}, res[0].Bonds())

	// altLoc B is dropped
	assert.Equal(t, 2, res[1].Len())

	// blank element column falls back to the name
	water := res[2].AtomByName("O")
	require.NotNil(t, water)
	assert.True(t, water.Het)
	assert.Equal(t, structure.Oxygen, water.Element)
}

func TestReadMultiModelKeepsIDsUnique(t *testing.T) {
	in := "MODEL        1\n" +
		"ATOM      1  P    DG A   2      19.130  31.700  20.939  1.00 20.00           P\n" +
		"ENDMDL\n" +
		"MODEL        2\n" +
		"ATOM      1  P    DG A   2      29.130  31.700  20.939  1.00 20.00           P\n" +
		"ENDMDL\n"
	s, err := Read(strings.NewReader(in), "2xyz")
	require.NoError(t, err)
	require.Len(t, s.Models(), 2)
	assert.Equal(t, []int{1, 2}, s.AtomIDs())
	assert.NotNil(t, s.ResidueAt("2xyz", 2, "A", 2))
}

func TestReadErrors(t *testing.T) {
	_, err := Read(strings.NewReader("HEADER    nothing\n"), "x")
	assert.ErrorIs(t, err, ErrNoAtoms)

	_, err = Read(strings.NewReader("ATOM      1  P    DG A   2      19.130\n"), "x")
	assert.ErrorContains(t, err, "line 1")

	_, err = Read(strings.NewReader("ATOM      1  P    DG A  XX      19.130  31.700  20.939\n"), "x")
	assert.ErrorContains(t, err, "bad residue number")
}

func TestReadFileGzip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pdb1bna.ent.gz")
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	_, err := gw.Write([]byte(strings.Replace(fixture, "1BNA", "    ", 1)))
	require.NoError(t, err)
	require.NoError(t, gw.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	s, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1BNA", s.ID, "id falls back to the file name")

	_, err = ReadFile(filepath.Join(dir, "missing.pdb"))
	assert.Error(t, err)
}

func TestIDFromPath(t *testing.T) {
	assert.Equal(t, "1BNA", IDFromPath("/data/pdb1bna.ent.gz"))
	assert.Equal(t, "1BNA", IDFromPath("1bna.pdb"))
	assert.Equal(t, "MYDNA", IDFromPath("mydna.pdb"))
	assert.Equal(t, "STDIN", IDFromPath("-"))
}

func TestWriteLayout(t *testing.T) {
	s := structure.New("1BNA")
	c := s.ModelOrNew(1).ChainOrNew("A")
	r := structure.NewResidue(structure.ResidueKey{PDBID: "1BNA", Model: 1, Chain: "A", Seq: 1}, "APN")
	n1 := structure.NewAtom(40, structure.Nitrogen, "N1'", r3.Vec{X: 18.935, Y: 34.195, Z: 25.617})
	cp := structure.NewAtom(41, structure.Carbon, "C'", r3.Vec{X: 1, Y: 2, Z: 3})
	r.AddAtom(n1)
	r.AddAtom(cp)
	r.AddBond(n1, cp)
	c.AddResidue(r)

	var out bytes.Buffer
	require.NoError(t, Write(&out, s))
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")

	assert.Equal(t, "1BNA", lines[0][62:66])
	assert.Equal(t, "ATOM      1  N1' APN A   1      18.935  34.195  25.617  1.00  0.00           N", lines[1])
	assert.Equal(t, " C' ", lines[2][12:16])
	assert.True(t, strings.HasPrefix(lines[3], "TER       3      APN A   1"))
	assert.Equal(t, "CONECT    1    2", lines[4])
	assert.Equal(t, "CONECT    2    1", lines[5])
	assert.Equal(t, "END", lines[6])

	back, err := Read(strings.NewReader(out.String()), "x")
	require.NoError(t, err)
	got := back.Chains()[0].Residues()[0]
	assert.Equal(t, "C'", got.Atoms()[1].Name)
	assert.Len(t, got.Bonds(), 1)
}

func TestWriteMultiModel(t *testing.T) {
	s := structure.New("2XYZ")
	for _, m := range []int{1, 2} {
		c := s.ModelOrNew(m).ChainOrNew("B")
		r := structure.NewResidue(structure.ResidueKey{PDBID: "2XYZ", Model: m, Chain: "B", Seq: 5}, "DA")
		r.AddAtom(structure.NewAtom(m, structure.Phosphorus, "P", r3.Vec{}))
		c.AddResidue(r)
	}
	var out bytes.Buffer
	require.NoError(t, Write(&out, s))
	assert.Contains(t, out.String(), "MODEL        1\n")
	assert.Contains(t, out.String(), "MODEL        2\n")
	assert.Equal(t, 2, strings.Count(out.String(), "ENDMDL\n"))
}

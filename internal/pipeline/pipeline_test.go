package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pnator-core/pdb"
	"pnator-core/pna"
	"pnator-core/structure"
)

const fixture = "testdata/9pna.pdb"

func discardLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func quiet() *pna.Converter {
	return pna.New(pna.Config{Logger: discardLogger()})
}

func TestRunConvertsAndWrites(t *testing.T) {
	out := filepath.Join(t.TempDir(), "9pna_pna.pdb")
	var got []Result
	err := Run(context.Background(), Config{Threads: 1, Converter: quiet()},
		[]Source{FileSource(fixture, out)},
		func(r Result) error { got = append(got, r); return nil })
	require.NoError(t, err)
	require.Len(t, got, 1)

	r := got[0]
	require.NoError(t, r.Err)
	require.NoError(t, r.ResidueErr)
	assert.Equal(t, "9PNA", r.Summary.StructureID)
	assert.Len(t, r.Summary.Reports, 3)

	back, err := pdb.ReadFile(out)
	require.NoError(t, err)
	res := back.Chains()[0].Residues()
	require.Len(t, res, 3)
	assert.Equal(t, []string{"GPN", "APN", "CPN"}, []string{res[0].Name, res[1].Name, res[2].Name})
	assert.NotNil(t, res[0].AtomByName("C'"), "phosphate of residue 2 closes residue 1")
	assert.NotNil(t, res[0].AtomByName("O1'"))
	assert.Nil(t, res[2].AtomByName("OP1"))
}

func TestRunKeepsInputOrderAndIsolatesFailures(t *testing.T) {
	dir := t.TempDir()
	var srcs []Source
	for i := 0; i < 8; i++ {
		if i == 3 {
			srcs = append(srcs, FileSource(filepath.Join(dir, "missing.pdb"), ""))
			continue
		}
		srcs = append(srcs, FileSource(fixture, filepath.Join(dir, fmt.Sprintf("out%d.pdb", i))))
	}

	var order []int
	err := Run(context.Background(), Config{Threads: 4, Converter: quiet()}, srcs, func(r Result) error {
		order = append(order, r.Index)
		if r.Index == 3 {
			assert.ErrorIs(t, r.Err, os.ErrNotExist)
		} else {
			assert.NoError(t, r.Err)
			assert.FileExists(t, r.Source.Output)
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, order)
}

func TestRunStdoutOutput(t *testing.T) {
	var stdout bytes.Buffer
	err := Run(context.Background(), Config{Converter: quiet(), Stdout: &stdout},
		[]Source{FileSource(fixture, "-")}, func(Result) error { return nil })
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "APN A   2")
	assert.True(t, strings.HasSuffix(stdout.String(), "END\n"))
}

func TestRunStopsOnVisitError(t *testing.T) {
	stop := errors.New("stop")
	calls := 0
	srcs := []Source{FileSource(fixture, ""), FileSource(fixture, ""), FileSource(fixture, "")}
	err := Run(context.Background(), Config{Threads: 1, Converter: quiet()}, srcs, func(Result) error {
		calls++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	loads := 0
	src := Source{Name: "gen", Load: func(context.Context) (*structure.Structure, error) {
		loads++
		cancel()
		return structure.New("X"), nil
	}}
	var errs []error
	err := Run(ctx, Config{Threads: 1, Converter: quiet()}, []Source{src, src, src}, func(r Result) error {
		errs = append(errs, r.Err)
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, loads)
	require.Len(t, errs, 3)
	for _, e := range errs {
		assert.ErrorIs(t, e, context.Canceled)
	}
}

func TestRunResidueErrorsStillWrite(t *testing.T) {
	// residue 3 alone: its phosphate has nowhere to go
	s, err := pdb.ReadFile(fixture)
	require.NoError(t, err)
	lone := structure.New("LONE")
	lone.ModelOrNew(1).ChainOrNew("A").AddResidue(s.Chains()[0].Residues()[2])

	out := filepath.Join(t.TempDir(), "lone.pdb")
	src := Source{Name: "lone", Output: out, Load: func(context.Context) (*structure.Structure, error) { return lone, nil }}
	var got Result
	require.NoError(t, Run(context.Background(), Config{Converter: quiet()}, []Source{src},
		func(r Result) error { got = r; return nil }))

	assert.NoError(t, got.Err)
	assert.ErrorIs(t, got.ResidueErr, pna.ErrMissingPrecedingResidue)
	assert.FileExists(t, out)
}

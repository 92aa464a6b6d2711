// core/pdb/reader.go
package pdb

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"pnator-core/structure"
)

// ErrNoAtoms is returned when a file contains no ATOM/HETATM records.
var ErrNoAtoms = errors.New("pdb: no ATOM or HETATM records")

// ReadFile parses a PDB file. Gzip input and "-" (stdin) are accepted.
// The structure id comes from the HEADER record, falling back to the file name.
func ReadFile(path string) (*structure.Structure, error) {
	rc, err := openReader(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	s, err := Read(rc, IDFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// reader carries parse state across lines.
type reader struct {
	s        *structure.Structure
	model    int
	maxID    int
	ids      map[int]bool
	bySerial map[int]*structure.Atom
	owner    map[int]*structure.Residue
	current  *structure.Residue
	header   bool
}

// Read parses PDB records from r. fallbackID is used when there is no HEADER.
func Read(r io.Reader, fallbackID string) (*structure.Structure, error) {
	p := &reader{
		s:        structure.New(fallbackID),
		model:    1,
		ids:      make(map[int]bool),
		bySerial: make(map[int]*structure.Atom),
		owner:    make(map[int]*structure.Residue),
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 1024), 1<<20)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if len(line) < 6 {
			line += strings.Repeat(" ", 6-len(line))
		}
		var err error
		switch strings.TrimSpace(line[0:6]) {
		case "HEADER":
			p.parseHeader(line)
		case "MODEL":
			err = p.parseModel(line)
		case "ENDMDL":
			p.current = nil
		case "ATOM":
			err = p.parseAtom(line, false)
		case "HETATM":
			err = p.parseAtom(line, true)
		case "CONECT":
			p.parseConect(line)
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(p.ids) == 0 {
		return nil, ErrNoAtoms
	}
	return p.s, nil
}

// parseHeader reads the idCode from columns 63-66.
func (p *reader) parseHeader(line string) {
	if p.header || len(line) < 66 {
		return
	}
	if id := strings.TrimSpace(line[62:66]); id != "" {
		p.s.ID = strings.ToUpper(id)
		p.header = true
	}
}

// parseModel reads the model serial from columns 11-14.
func (p *reader) parseModel(line string) error {
	f := strings.TrimSpace(field(line, 10, 14))
	if f == "" {
		f = strings.TrimSpace(field(line, 6, len(line)))
	}
	n, err := strconv.Atoi(f)
	if err != nil {
		return fmt.Errorf("bad MODEL serial %q", f)
	}
	p.model = n
	p.current = nil
	return nil
}

// parseAtom reads one ATOM/HETATM record:
// serial 7-11, name 13-16, altLoc 17, resName 18-20, chain 22, resSeq 23-26,
// iCode 27, x/y/z 31-54, occupancy 55-60, tempFactor 61-66, element 77-78.
func (p *reader) parseAtom(line string, het bool) error {
	if len(line) < 54 {
		return fmt.Errorf("short coordinate record (%d columns)", len(line))
	}
	alt := line[16]
	if alt != ' ' && alt != 'A' {
		return nil
	}

	resName := strings.TrimSpace(line[17:20])
	chainID := strings.TrimSpace(line[21:22])
	if chainID == "" {
		chainID = "_"
	}
	seq, err := strconv.Atoi(strings.TrimSpace(line[22:26]))
	if err != nil {
		return fmt.Errorf("bad residue number %q", line[22:26])
	}
	icode := line[26]

	var xyz [3]float64
	for i, col := 0, 30; i < 3; i, col = i+1, col+8 {
		v, err := strconv.ParseFloat(strings.TrimSpace(line[col:col+8]), 64)
		if err != nil {
			return fmt.Errorf("bad coordinate %q", line[col:col+8])
		}
		xyz[i] = v
	}

	name := strings.TrimSpace(line[12:16])
	el := structure.ParseElement(field(line, 76, 78))
	if el == structure.Unknown {
		el = structure.ElementFromName(name, resName)
	}

	serial, serr := strconv.Atoi(strings.TrimSpace(line[6:11]))
	id := serial
	if serr != nil || serial <= 0 || p.ids[serial] {
		id = p.maxID + 1
	}
	p.ids[id] = true
	if id > p.maxID {
		p.maxID = id
	}

	a := structure.NewAtom(id, el, name, r3.Vec{X: xyz[0], Y: xyz[1], Z: xyz[2]})
	a.Het = het
	a.AltLoc = alt
	if v, err := strconv.ParseFloat(strings.TrimSpace(field(line, 54, 60)), 64); err == nil {
		a.Occupancy = v
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(field(line, 60, 66)), 64); err == nil {
		a.BFactor = v
	}

	res := p.residue(chainID, seq, icode, resName)
	res.AddAtom(a)
	if serr == nil {
		if _, seen := p.bySerial[serial]; !seen {
			p.bySerial[serial] = a
		}
	}
	p.owner[id] = res
	return nil
}

// residue returns the residue the next atom belongs to. Consecutive records
// with the same chain, number, insertion code and name share a residue.
func (p *reader) residue(chainID string, seq int, icode byte, name string) *structure.Residue {
	cur := p.current
	if cur != nil && cur.Key.Chain == chainID && cur.Key.Seq == seq &&
		cur.InsertionCode == icode && cur.Name == name {
		return cur
	}
	key := structure.ResidueKey{PDBID: p.s.ID, Model: p.model, Chain: chainID, Seq: seq}
	res := structure.NewResidue(key, name)
	res.InsertionCode = icode
	p.s.ModelOrNew(p.model).ChainOrNew(chainID).AddResidue(res)
	p.current = res
	return res
}

// parseConect reads CONECT records (serial in 7-11, partners in 12-31).
// Bonds are stored on the residue owning the first atom.
func (p *reader) parseConect(line string) {
	from, err := strconv.Atoi(strings.TrimSpace(field(line, 6, 11)))
	if err != nil {
		return
	}
	a := p.bySerial[from]
	if a == nil {
		return
	}
	res := p.owner[a.ID()]
	for col := 11; col+5 <= 31; col += 5 {
		to, err := strconv.Atoi(strings.TrimSpace(field(line, col, col+5)))
		if err != nil {
			continue
		}
		if b := p.bySerial[to]; b != nil {
			res.AddBond(a, b)
		}
	}
}

// field returns line[from:to], clipped to the line length.
func field(line string, from, to int) string {
	if from >= len(line) {
		return ""
	}
	if to > len(line) {
		to = len(line)
	}
	return line[from:to]
}

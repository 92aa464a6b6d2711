// core/pdb/writer.go
package pdb

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"

	"pnator-core/structure"
)

// WriteFile writes s to path ("-" writes to stdout).
func WriteFile(path string, s *structure.Structure) error {
	if path == "-" {
		return Write(os.Stdout, s)
	}
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(fh, s); err != nil {
		_ = fh.Close()
		return err
	}
	return fh.Close()
}

// Write serializes s as PDB records. Serial numbers are reassigned
// sequentially within each model; CONECT records use the new serials.
func Write(w io.Writer, s *structure.Structure) error {
	bw := bufio.NewWriter(w)
	models := s.Models()
	multi := len(models) > 1

	if s.ID != "" {
		fmt.Fprintf(bw, "HEADER    %-40s%12s%-4s\n", "PEPTIDE NUCLEIC ACID", "", truncate(s.ID, 4))
	}

	var conect []string
	for _, m := range models {
		if multi {
			fmt.Fprintf(bw, "MODEL     %4d\n", m.Num)
		}
		serials := make(map[int]int)
		serial := 0
		for _, c := range m.Chains() {
			var last *structure.Residue
			for _, r := range c.Residues() {
				for _, a := range r.Atoms() {
					serial++
					serials[a.ID()] = serial
					writeAtom(bw, serial, a, r)
				}
				last = r
			}
			if last != nil {
				serial++
				fmt.Fprintf(bw, "TER   %5d      %3s %1s%4d%c\n",
					serial%100000, truncate(last.Name, 3), chainCol(c.ID), last.Key.Seq, icode(last))
			}
		}
		if multi {
			fmt.Fprintln(bw, "ENDMDL")
		}
		// CONECT only for the first model, as is customary.
		if conect == nil {
			conect = conectRecords(m, serials)
		}
	}
	for _, l := range conect {
		fmt.Fprintln(bw, l)
	}
	fmt.Fprintln(bw, "END")
	return bw.Flush()
}

func writeAtom(w io.Writer, serial int, a *structure.Atom, r *structure.Residue) {
	rec := "ATOM"
	if a.Het {
		rec = "HETATM"
	}
	alt := a.AltLoc
	if alt == 0 {
		alt = ' '
	}
	p := a.Position()
	fmt.Fprintf(w, "%-6s%5d %-4s%c%3s %1s%4d%c   %8.3f%8.3f%8.3f%6.2f%6.2f          %2s\n",
		rec, serial%100000, atomName(a), alt, truncate(r.Name, 3), chainCol(r.Key.Chain),
		r.Key.Seq, icode(r), p.X, p.Y, p.Z, a.Occupancy, a.BFactor, truncate(string(a.Element), 2))
}

// atomName aligns names the PDB way: one-letter elements start in column 14
// unless the name already uses all four columns.
func atomName(a *structure.Atom) string {
	n := a.Name
	if len(n) < 4 && len(a.Element) < 2 {
		n = " " + n
	}
	return truncate(n, 4)
}

func conectRecords(m *structure.Model, serials map[int]int) []string {
	adj := make(map[int][]int)
	for _, c := range m.Chains() {
		for _, r := range c.Residues() {
			for _, b := range r.Bonds() {
				sa, okA := serials[b.A]
				sb, okB := serials[b.B]
				if !okA || !okB {
					continue
				}
				adj[sa] = appendUnique(adj[sa], sb)
				adj[sb] = appendUnique(adj[sb], sa)
			}
		}
	}
	from := make([]int, 0, len(adj))
	for k := range adj {
		from = append(from, k)
	}
	sort.Ints(from)

	var out []string
	for _, f := range from {
		to := adj[f]
		sort.Ints(to)
		for i := 0; i < len(to); i += 4 {
			end := i + 4
			if end > len(to) {
				end = len(to)
			}
			line := fmt.Sprintf("CONECT%5d", f%100000)
			for _, t := range to[i:end] {
				line += fmt.Sprintf("%5d", t%100000)
			}
			out = append(out, line)
		}
	}
	if out == nil {
		out = []string{}
	}
	return out
}

func appendUnique(xs []int, x int) []int {
	for _, v := range xs {
		if v == x {
			return xs
		}
	}
	return append(xs, x)
}

func icode(r *structure.Residue) byte {
	if r.InsertionCode == 0 {
		return ' '
	}
	return r.InsertionCode
}

// chainCol undoes the "_" placeholder the reader uses for blank chain ids.
func chainCol(id string) string {
	if id == "_" {
		return " "
	}
	return truncate(id, 1)
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

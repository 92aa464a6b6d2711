// core/pna/report.go
package pna

import "pnator-core/structure"

// Report tracks, for one residue, which mandatory PNA atoms were produced by
// the relabel step, plus what else happened to the residue.
type Report struct {
	Key structure.ResidueKey
	// Residue name before conversion.
	Residue string

	Synthesized []string
	Removed     []string
	Relocated   []string
	Warnings    []string
	// BackboneFailure is set when OP1/OP2/P were not all present.
	BackboneFailure bool

	produced map[string]bool
}

// NewReport returns a report with every target unproduced.
func NewReport(key structure.ResidueKey, residue string) Report {
	rep := Report{Key: key, Residue: residue, produced: make(map[string]bool, len(relabels))}
	for _, rl := range relabels {
		rep.produced[rl.Name] = false
	}
	return rep
}

// Mark records that target name was produced. Names outside the target set
// are ignored; the return value reports whether name was a target.
func (r *Report) Mark(name string) bool {
	if _, ok := r.produced[name]; !ok {
		return false
	}
	r.produced[name] = true
	return true
}

// Produced reports whether target name was produced.
func (r Report) Produced(name string) bool { return r.produced[name] }

// Valid reports whether every target was produced.
func (r Report) Valid() bool {
	for _, ok := range r.produced {
		if !ok {
			return false
		}
	}
	return len(r.produced) > 0
}

// Unproduced returns the targets that were not produced, in table order.
func (r Report) Unproduced() []string {
	var out []string
	for _, rl := range relabels {
		if !r.produced[rl.Name] {
			out = append(out, rl.Name)
		}
	}
	return out
}

func (r *Report) warn(msg string) { r.Warnings = append(r.Warnings, msg) }

// Package pna rebuilds the backbone of DNA/RNA residues into a peptide nucleic
// acid (PNA) backbone.
//
// Per residue the converter:
//   - resolves backbone atoms by role across naming dialects (OP1/O1P, C5'/C5*),
//   - synthesizes the carbonyl oxygens O7' (on C3') and O1' (on P, placed in
//     the preceding residue) by centroid projection,
//   - removes OP1, OP2, O4' and the RNA 2'-hydroxyl,
//   - relabels the remaining backbone atoms to their PNA names and elements,
//   - validates that every mandatory PNA atom was produced.
//
// Residues are processed in chain order because the phosphate of residue i
// becomes the closing carbon of residue i-1. The preceding residue is found
// through the chain, so insertion-coded residues (10, 10A) link to each other.
//
// Besides atom names and elements, a converted residue's name is rewritten to
// its PNA code (DA to APN, and so on). Running the converter again on its own
// output therefore finds no nucleotides and changes nothing.
package pna

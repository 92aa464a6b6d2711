// pkg/api/report_v1.go
package api

// RunV1 is the stable JSON/YAML schema for one pnator invocation.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type RunV1 struct {
	RunID   string   `json:"run_id" yaml:"run_id"`
	Version string   `json:"version" yaml:"version"`
	Files   []FileV1 `json:"files" yaml:"files"`
}

// FileV1 describes one converted input. It is also the JSONL line type.
type FileV1 struct {
	RunID       string      `json:"run_id,omitempty" yaml:"-"`
	Source      string      `json:"source" yaml:"source"`
	StructureID string      `json:"structure_id,omitempty" yaml:"structure_id,omitempty"`
	Output      string      `json:"output,omitempty" yaml:"output,omitempty"`
	Error       string      `json:"error,omitempty" yaml:"error,omitempty"`
	Warnings    []string    `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Chains      []ChainV1   `json:"chains,omitempty" yaml:"chains,omitempty"`
	Residues    []ResidueV1 `json:"residues,omitempty" yaml:"residues,omitempty"`
}

// ChainV1 summarizes one chain.
type ChainV1 struct {
	Model            int    `json:"model" yaml:"model"`
	Chain            string `json:"chain" yaml:"chain"`
	Residues         int    `json:"residues" yaml:"residues"`
	BackboneFailures int    `json:"backbone_failures" yaml:"backbone_failures"`
	Invalid          int    `json:"invalid" yaml:"invalid"`
}

// ResidueV1 is the per-residue conversion report.
type ResidueV1 struct {
	Model           int      `json:"model" yaml:"model"`
	Chain           string   `json:"chain" yaml:"chain"`
	Seq             int      `json:"seq" yaml:"seq"`
	From            string   `json:"from" yaml:"from"`
	To              string   `json:"to" yaml:"to"`
	Valid           bool     `json:"valid" yaml:"valid"`
	Unproduced      []string `json:"unproduced,omitempty" yaml:"unproduced,omitempty"`
	Synthesized     []string `json:"synthesized,omitempty" yaml:"synthesized,omitempty"`
	Removed         []string `json:"removed,omitempty" yaml:"removed,omitempty"`
	Relocated       []string `json:"relocated,omitempty" yaml:"relocated,omitempty"`
	Warnings        []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	BackboneFailure bool     `json:"backbone_failure,omitempty" yaml:"backbone_failure,omitempty"`
}

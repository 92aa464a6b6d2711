// Package writers turns conversion results into serialized reports.
//
// Design:
//   - Writers own all presentation knowledge (TSV text, JSON, JSONL, YAML).
//   - core/pna stays domain-only; the pipeline stays orchestration-only.
//   - Every format goes through pkg/api (v1) for a stable wire shape.
package writers

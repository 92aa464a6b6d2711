// Package pipeline loads structures, runs them through a pna.Converter and
// writes the converted files, several inputs at a time, and hands each
// Result to a visit callback in input order.
//
// A Source only has to know how to load itself, so local files, stdin and
// downloaded entries share one path through the pipeline.
package pipeline

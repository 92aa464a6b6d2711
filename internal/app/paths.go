// internal/app/paths.go
package app

import (
	"fmt"
	"path/filepath"
	"strings"

	"pnator/internal/cli"
)

// structure file extensions stripped before the suffix is added
var pdbExts = []string{".pdb", ".ent", ".brk"}

// stem strips directory, a trailing .gz and one PDB extension.
func stem(path string) string {
	base := filepath.Base(path)
	if strings.HasSuffix(strings.ToLower(base), ".gz") {
		base = base[:len(base)-3]
	}
	lower := strings.ToLower(base)
	for _, ext := range pdbExts {
		if strings.HasSuffix(lower, ext) {
			return base[:len(base)-len(ext)]
		}
	}
	return base
}

// outputFor derives where the converted input goes. in is a path or "-";
// fetched inputs pass their PDB id and fetched=true.
func outputFor(o cli.Options, in string, fetched bool) (string, error) {
	if o.Output != "" {
		return o.Output, nil
	}
	var dir, name string
	switch {
	case fetched:
		dir, name = ".", in
	case in == "-":
		if o.OutDir == "" {
			return "-", nil
		}
		name = "stdin"
	default:
		dir, name = filepath.Dir(in), stem(in)
	}
	if o.OutDir != "" {
		dir = o.OutDir
	}
	out := filepath.Join(dir, name+o.Suffix+".pdb")
	if !fetched && in != "-" && filepath.Clean(out) == filepath.Clean(in) {
		return "", fmt.Errorf("output %s would overwrite its input; set --suffix or --out-dir", out)
	}
	return out, nil
}

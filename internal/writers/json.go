// internal/writers/json.go
package writers

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"pnator/pkg/api"
)

func init() {
	Register("json", WriteJSON)
	Register("yaml", WriteYAML)
}

// WriteJSON writes run as indented JSON.
func WriteJSON(w io.Writer, run *api.RunV1) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(run)
}

// WriteYAML writes run as a YAML document.
func WriteYAML(w io.Writer, run *api.RunV1) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(run); err != nil {
		return err
	}
	return enc.Close()
}

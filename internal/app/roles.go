// internal/app/roles.go
package app

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"pnator-core/pna"
)

type roleRow struct {
	Role     string   `json:"role"`
	Aliases  []string `json:"aliases"`
	Optional bool     `json:"optional,omitempty"`
	// PNA is the relabel target; empty when the atom is removed.
	PNA     string `json:"pna,omitempty"`
	Element string `json:"element,omitempty"`
}

func roleTable() []roleRow {
	targets := map[pna.Role]pna.Relabel{}
	for _, rl := range pna.Relabels() {
		targets[rl.Role] = rl
	}
	var rows []roleRow
	for _, r := range pna.Roles() {
		row := roleRow{Role: r.String(), Aliases: r.Aliases(), Optional: r.Optional()}
		if rl, ok := targets[r]; ok {
			row.PNA, row.Element = rl.Name, string(rl.Element)
		}
		rows = append(rows, row)
	}
	return rows
}

func newRolesCmd(stdout io.Writer) *cobra.Command {
	asJSON := false
	cmd := &cobra.Command{
		Use:   "roles",
		Short: "Print the backbone atom roles, their aliases and PNA targets",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			rows := roleTable()
			if asJSON {
				enc := json.NewEncoder(stdout)
				enc.SetIndent("", "  ")
				enc.SetEscapeHTML(false)
				return enc.Encode(rows)
			}
			fmt.Fprintln(stdout, "role\taliases\tpna")
			for _, r := range rows {
				target := "removed"
				if r.PNA != "" {
					target = r.PNA + " (" + r.Element + ")"
				}
				role := r.Role
				if r.Optional {
					role += " (rna)"
				}
				fmt.Fprintf(stdout, "%s\t%s\t%s\n", role, strings.Join(r.Aliases, ","), target)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}

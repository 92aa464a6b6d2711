// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"pnator/internal/version"
	"pnator/internal/writers"
)

// Exit codes.
const (
	ExitOK        = 0
	ExitUsage     = 2
	ExitRuntime   = 3
	ExitCancelled = 130
)

// exitError carries the process exit code out of a cobra RunE.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

func usageErr(err error) error   { return &exitError{code: ExitUsage, err: err} }
func runtimeErr(err error) error { return &exitError{code: ExitRuntime, err: err} }

// exitCode is a silent non-zero exit (the reason was already logged).
func exitCode(code int) error { return &exitError{code: code} }

// RunContext executes the pnator command line and returns the exit code.
func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)

	root := newRoot(outw, stderr)
	root.SetArgs(argv)
	err := root.ExecuteContext(ctx)

	if e := outw.Flush(); e != nil && !writers.IsBrokenPipe(e) {
		_, _ = fmt.Fprintln(stderr, e)
		return ExitRuntime
	}
	if err == nil {
		return ExitOK
	}

	var ee *exitError
	if !errors.As(err, &ee) {
		// cobra's own errors: unknown command or flag, bad arguments
		ee = &exitError{code: ExitUsage, err: err}
	}
	if ee.err != nil {
		if errors.Is(ee.err, context.Canceled) {
			return ExitCancelled
		}
		_, _ = fmt.Fprintln(stderr, "error:", ee.err)
		if ee.code == ExitUsage {
			_, _ = fmt.Fprintln(stderr, "Run 'pnator --help' for usage.")
		}
	}
	return ee.code
}

// Run is RunContext with a background context.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func newRoot(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "pnator",
		Short: "Convert DNA/RNA structures into PNA analogs",
		Long: `pnator rebuilds the sugar-phosphate backbone of every nucleotide in a PDB
structure as a peptide nucleic acid backbone: backbone atoms are relabeled,
the carbonyl oxygens O7' and O1' are placed by centroid projection, and
atoms without a PNA counterpart are removed.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetVersionTemplate("pnator version {{.Version}}\n")
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usageErr(err) })

	root.AddCommand(newConvertCmd(stdout, stderr), newRolesCmd(stdout), newVersionCmd(stdout))
	return root
}

func newVersionCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			_, _ = fmt.Fprintf(stdout, "pnator version %s\n", version.Version)
		},
	}
}

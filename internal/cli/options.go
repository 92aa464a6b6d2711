// internal/cli/options.go
package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Options holds every convert setting. Fields carry the YAML key used in
// --config files; the flag name is the same key with dashes.
type Options struct {
	ConfigFile string `yaml:"-"`

	// Input
	Inputs    []string `yaml:"inputs" validate:"dive,required"`
	Fetch     []string `yaml:"fetch" validate:"dive,len=4,alphanum"`
	FetchBase string   `yaml:"fetch_base" validate:"omitempty,url"`

	// Output
	Output string `yaml:"output"`
	OutDir string `yaml:"out_dir" validate:"excluded_with=Output"`
	Suffix string `yaml:"suffix"`

	// Reports and telemetry
	Report       string `yaml:"report"`
	ReportFormat string `yaml:"report_format" validate:"oneof=text json jsonl yaml"`
	MetricsFile  string `yaml:"metrics_file"`
	LogLevel     string `yaml:"log_level" validate:"oneof=debug info warn error"`
	LogFormat    string `yaml:"log_format" validate:"oneof=auto text json"`
	Quiet        bool   `yaml:"quiet"`

	// Conversion
	Threads      int     `yaml:"threads" validate:"gte=0"`
	ChainWorkers int     `yaml:"chain_workers" validate:"gte=1"`
	BondLength   float64 `yaml:"bond_length" validate:"gte=0,lte=5"`

	InvalidExitCode int `yaml:"invalid_exit_code" validate:"gte=0,lte=125"`
}

// Defaults returns the built-in settings.
func Defaults() Options {
	return Options{
		Suffix:       "_pna",
		ReportFormat: "text",
		LogLevel:     "info",
		LogFormat:    "auto",
		ChainWorkers: 1,
	}
}

// Bind registers the convert flags on fs, writing into o.
func Bind(fs *pflag.FlagSet, o *Options) {
	fs.StringVar(&o.ConfigFile, "config", "", "YAML file with defaults for any flag below")

	fs.StringSliceVar(&o.Fetch, "fetch", nil, "download PDB entry by id (repeatable or comma separated)")
	fs.StringVar(&o.FetchBase, "fetch-base", "", "download base URL (default https://files.rcsb.org/download)")

	fs.StringVarP(&o.Output, "output", "o", "", "output file for a single input ('-' = stdout)")
	fs.StringVar(&o.OutDir, "out-dir", "", "directory for converted files (default: next to each input)")
	fs.StringVar(&o.Suffix, "suffix", o.Suffix, "appended to the input name when deriving output names")

	fs.StringVar(&o.Report, "report", "", "write a conversion report to this path ('-' = stdout)")
	fs.StringVar(&o.ReportFormat, "report-format", o.ReportFormat, "report format: text | json | jsonl | yaml")
	fs.StringVar(&o.MetricsFile, "metrics-file", "", "write Prometheus metrics in textfile format")
	fs.StringVar(&o.LogLevel, "log-level", o.LogLevel, "debug | info | warn | error")
	fs.StringVar(&o.LogFormat, "log-format", o.LogFormat, "auto | text | json (auto = text on a terminal)")
	fs.BoolVarP(&o.Quiet, "quiet", "q", false, "only log errors")

	fs.IntVar(&o.Threads, "threads", 0, "inputs converted concurrently (0 = all CPUs)")
	fs.IntVar(&o.ChainWorkers, "chain-workers", o.ChainWorkers, "chains converted concurrently within one structure")
	fs.Float64Var(&o.BondLength, "bond-length", 0, "experimental: override the standard 1.21 Å C=O distance of synthesized oxygens (0 = standard)")

	fs.IntVar(&o.InvalidExitCode, "invalid-exit-code", 0, "exit code when any residue fails validation")
}

// LoadConfig merges the YAML file at path into o. Unknown keys are errors.
func LoadConfig(path string, o *Options) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(o); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// overrides copies one flag's value; keyed by flag name.
var overrides = map[string]func(dst, src *Options){
	"fetch":             func(d, s *Options) { d.Fetch = s.Fetch },
	"fetch-base":        func(d, s *Options) { d.FetchBase = s.FetchBase },
	"output":            func(d, s *Options) { d.Output = s.Output },
	"out-dir":           func(d, s *Options) { d.OutDir = s.OutDir },
	"suffix":            func(d, s *Options) { d.Suffix = s.Suffix },
	"report":            func(d, s *Options) { d.Report = s.Report },
	"report-format":     func(d, s *Options) { d.ReportFormat = s.ReportFormat },
	"metrics-file":      func(d, s *Options) { d.MetricsFile = s.MetricsFile },
	"log-level":         func(d, s *Options) { d.LogLevel = s.LogLevel },
	"log-format":        func(d, s *Options) { d.LogFormat = s.LogFormat },
	"quiet":             func(d, s *Options) { d.Quiet = s.Quiet },
	"threads":           func(d, s *Options) { d.Threads = s.Threads },
	"chain-workers":     func(d, s *Options) { d.ChainWorkers = s.ChainWorkers },
	"bond-length":       func(d, s *Options) { d.BondLength = s.BondLength },
	"invalid-exit-code": func(d, s *Options) { d.InvalidExitCode = s.InvalidExitCode },
}

// Resolve layers defaults, the --config file, and explicitly set flags (in
// that order), appends the positional inputs and validates the result.
// flags is the struct Bind wrote into.
func Resolve(fs *pflag.FlagSet, flags Options, args []string) (Options, error) {
	o := Defaults()
	o.ConfigFile = flags.ConfigFile
	if o.ConfigFile != "" {
		if err := LoadConfig(o.ConfigFile, &o); err != nil {
			return o, err
		}
	}
	fs.Visit(func(f *pflag.Flag) {
		if apply, ok := overrides[f.Name]; ok {
			apply(&o, &flags)
		}
	})
	o.Inputs = append(o.Inputs, args...)
	return o, Validate(o)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return strings.ReplaceAll(name, "_", "-")
	})
	return v
}

// Validate checks field rules and the cross-field constraints.
func Validate(o Options) error {
	if err := validate.Struct(o); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) && len(ve) > 0 {
			return fieldError(ve[0])
		}
		return err
	}

	n := len(o.Inputs) + len(o.Fetch)
	switch {
	case n == 0:
		return errors.New("no input: give PDB files, '-' for stdin, or --fetch ID")
	case o.Output != "" && n > 1:
		return errors.New("--output needs exactly one input; use --out-dir for several")
	case o.Output == "" && o.OutDir == "" && o.Suffix == "":
		return errors.New("--suffix may only be empty together with --out-dir or --output")
	case o.Output == "-" && o.Report == "-":
		return errors.New("--output and --report cannot both be stdout")
	}
	stdin := 0
	for _, in := range o.Inputs {
		if in == "-" {
			stdin++
		}
	}
	if stdin > 1 {
		return errors.New("stdin ('-') can only be read once")
	}
	if stdin == 1 && o.Output == "" && o.OutDir == "" && o.Report == "-" {
		return errors.New("stdin input is converted to stdout; pass --output or --out-dir to report on stdout")
	}
	return nil
}

func fieldError(fe validator.FieldError) error {
	rule := fe.Tag()
	if fe.Param() != "" {
		rule += "=" + fe.Param()
	}
	return fmt.Errorf("invalid --%s %v (%s)", fe.Field(), fe.Value(), rule)
}

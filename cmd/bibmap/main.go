// Package main provides the bibmap CLI.
//
// bibmap translates bibliographic records between BibLaTeX or BibTeX
// entries and CSL-JSON items using an ordered rule table:
//   - import: source entries (JSON) to CSL-JSON
//   - export: CSL-JSON to source entries
//   - check: validate a rule table against converters and field metadata
//   - rules: print the effective rule table
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"bibmap/internal/config"
	"bibmap/internal/engine"
	"bibmap/internal/metadata"
	"bibmap/internal/rules"
)

// app carries the flags and the state built before a command runs.
type app struct {
	configPath string
	dialect    string
	rulesPath  string
	workers    int
	verbose    bool

	cfg    config.Config
	logger *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "bibmap",
		Short: "Translate bibliographic records between BibLaTeX/BibTeX and CSL-JSON",
		Long: `bibmap converts records between a source schema (BibLaTeX or BibTeX
entries) and CSL-JSON items with a declarative, ordered rule table.

Input is a JSON array, optionally gzip-compressed. Source entries have the
shape {"type": ..., "label": ..., "properties": {...}}.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = a.logger.Sync()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "configuration file (default ./"+config.DefaultFile+" when present)")
	flags.StringVar(&a.dialect, "dialect", "", "source dialect: biblatex or bibtex")
	flags.StringVar(&a.rulesPath, "rules", "", "custom rule table (YAML)")
	flags.IntVar(&a.workers, "workers", 0, "parallel translations, 0 means GOMAXPROCS")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newImportCmd(a),
		newExportCmd(a),
		newCheckCmd(a),
		newRulesCmd(a),
	)

	return root
}

// setup loads the configuration, applies flag overrides and builds the
// logger.
func (a *app) setup(cmd *cobra.Command) error {
	var (
		cfg config.Config
		err error
	)

	if a.configPath != "" {
		cfg, err = config.Load(a.configPath)
	} else {
		cfg, err = config.LoadIfExists(config.DefaultFile)
	}

	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("dialect") {
		cfg.Dialect = a.dialect
	}

	if flags.Changed("rules") {
		cfg.Rules = a.rulesPath
	}

	if flags.Changed("workers") {
		cfg.Workers = a.workers
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg

	logger, err := cfg.Logging.ZapConfig(a.verbose).Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	a.logger = logger

	return nil
}

// table returns the configured rule table: the custom file when set, the
// embedded table of the dialect otherwise.
func (a *app) table() (*rules.Table, error) {
	if a.cfg.Rules == "" {
		return rules.Builtin(a.cfg.DialectValue())
	}

	return rules.LoadFile(a.cfg.Rules)
}

// translator compiles the configured rule table.
func (a *app) translator() (*engine.Translator, *metadata.Tables, error) {
	meta, err := metadata.Load(a.cfg.DialectValue())
	if err != nil {
		return nil, nil, err
	}

	tbl, err := a.table()
	if err != nil {
		return nil, nil, err
	}

	tr, err := engine.FromTable(tbl, meta, engine.WithLogger(a.logger))
	if err != nil {
		return nil, nil, err
	}

	return tr, meta, nil
}

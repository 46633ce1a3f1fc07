package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"bibmap/internal/check"
	"bibmap/internal/convert"
	"bibmap/internal/diagnostic"
	"bibmap/internal/metadata"
	"bibmap/internal/rules"
)

var errCheckFailed = errors.New("rule table has errors")

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the rule table",
		Long: `Checks the configured rule table: converters must exist and fit the
key counts of their rules, conditions must be well formed, and fields
copied without a converter must be single-valued fields of the dialect.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			meta, err := metadata.Load(a.cfg.DialectValue())
			if err != nil {
				return err
			}

			tbl, err := a.table()
			if err != nil {
				return err
			}

			diags := rules.Validate(tbl, convert.NewRegistryFor(meta))
			diags.Merge(*check.Rules(tbl, meta.Fields))

			printDiagnostics(cmd, diags)

			if diags.HasErrors() {
				return errCheckFailed
			}

			return nil
		},
	}
}

func printDiagnostics(cmd *cobra.Command, diags *diagnostic.Diagnostics) {
	out := cmd.OutOrStdout()

	for _, d := range diags.All() {
		fmt.Fprintln(out, d.String())
	}

	fmt.Fprintf(out, "%d error(s), %d warning(s), %d info(s)\n",
		len(diags.Errors), len(diags.Warnings), len(diags.Infos))
}

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"bibmap/internal/rules"
)

func newRulesCmd(a *app) *cobra.Command {
	var summary bool

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Print the effective rule table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tbl, err := a.table()
			if err != nil {
				return err
			}

			if !summary {
				data, err := rules.Marshal(tbl)
				if err != nil {
					return err
				}

				_, err = cmd.OutOrStdout().Write(data)

				return err
			}

			for i := range tbl.Rules {
				r := &tbl.Rules[i]

				conv := r.Converter
				if conv == "" {
					conv = "-"
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%-14s %-4s %-18s %s -> %s\n",
					tbl.RuleID(i), r.GetCardinality(), conv,
					strings.Join(r.Source.Strings(), ","),
					strings.Join(r.Target.Strings(), ","))
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&summary, "summary", false, "one line per rule instead of YAML")

	return cmd
}

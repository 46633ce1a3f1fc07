package main

import (
	"github.com/spf13/cobra"

	"bibmap/internal/pipeline"
	"bibmap/internal/record"
)

func newImportCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Translate source entries into CSL-JSON",
		Long: `Reads a JSON array of source entries, resolves crossref inheritance
within the batch and writes the CSL-JSON items. Reads stdin when no file
is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openInput(argOrEmpty(args), cmd.InOrStdin())
			if err != nil {
				return err
			}
			defer in.Close()

			entries, err := record.DecodeEntries(in)
			if err != nil {
				return err
			}

			p, err := a.pipeline(true)
			if err != nil {
				return err
			}

			recs, err := p.Import(cmd.Context(), entries)
			if err != nil {
				return err
			}

			return a.write(cmd, output, recs)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	var (
		output string
		prefix string
	)

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Translate CSL-JSON items into source entries",
		Long: `Reads a JSON array of CSL-JSON items and writes source entries. Items
without an id get a generated label. Reads stdin when no file is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("label-prefix") {
				a.cfg.LabelPrefix = prefix
			}

			in, err := openInput(argOrEmpty(args), cmd.InOrStdin())
			if err != nil {
				return err
			}
			defer in.Close()

			recs, err := record.DecodeRecords(in)
			if err != nil {
				return err
			}

			p, err := a.pipeline(false)
			if err != nil {
				return err
			}

			entries, err := p.Export(cmd.Context(), recs)
			if err != nil {
				return err
			}

			return a.write(cmd, output, entries)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&prefix, "label-prefix", "", "prefix of generated labels")

	return cmd
}

// pipeline builds a batch pipeline. withRequired reports entries that lack
// required fields.
func (a *app) pipeline(withRequired bool) (*pipeline.Pipeline, error) {
	tr, meta, err := a.translator()
	if err != nil {
		return nil, err
	}

	opts := pipeline.Options{
		Workers:     a.cfg.Workers,
		Logger:      a.logger,
		LabelPrefix: a.cfg.LabelPrefix,
	}
	if withRequired {
		opts.Required = meta.Required
	}

	return pipeline.New(tr, opts), nil
}

func (a *app) write(cmd *cobra.Command, path string, v any) error {
	w, closeFn, err := openOutput(path, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	if err := record.Encode(w, v); err != nil {
		_ = closeFn()
		return err
	}

	return closeFn()
}

func argOrEmpty(args []string) string {
	if len(args) == 0 {
		return ""
	}

	return args[0]
}

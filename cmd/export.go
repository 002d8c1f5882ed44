package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/assetview/internal/export"
	"github.com/oakwood-commons/assetview/internal/render"
)

func newExportCmd(o *rootOptions) *cobra.Command {
	var (
		rf     renderFlags
		format string
		dir    string
		stdout bool
	)
	names := make([]string, 0, len(export.Formats()))
	for _, f := range export.Formats() {
		names = append(names, string(f))
	}

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Write the value to a timestamped file",
		Long: `Export serializes the value and writes it to <asset>_<unix millis>.<ext>
in the export directory. Existing files are never overwritten.

CSV is lossy: nested values become JSON text in their cell.`,
		Example: `  assetview export report.json --format csv
  cat report.json | assetview export --format md --asset audit --dir out/`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := format
			if !cmd.Flags().Changed("format") && o.cfg.Export.Format != "" {
				name = o.cfg.Export.Format
			}
			f, err := export.ParseFormat(name)
			if err != nil {
				return usageErrorf("%w (expected one of %s)", err, strings.Join(names, ", "))
			}
			if err := rf.limiter().Validate(); err != nil {
				return usageErrorf("record limiting: %w", err)
			}
			opts := rf.options(cmd.Flags(), o.cfg.Render)
			if err := opts.ValidateExplicit(); err != nil {
				return usageError{err: err}
			}

			v, err := o.loadInput(cmd, args)
			if errors.Is(err, errShowHelp) {
				return cmd.Help()
			}
			if err != nil {
				return err
			}
			if v, err = rf.prepare(o.ctx, v, o.log); err != nil {
				return err
			}

			r := render.New(opts)
			if stdout {
				out, err := export.Render(v, f, r, o.run.Input.AssetName)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(out, "\n"))
				return err
			}

			target := dir
			if !cmd.Flags().Changed("dir") && o.cfg.Export.Dir != "" {
				target = o.cfg.Export.Dir
			}
			exp := &export.Exporter{Dir: target, Renderer: r, Log: o.log}
			path, err := exp.Write(o.ctx, o.run.Input.AssetName, v, f)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	rf.register(cmd.Flags())
	cmd.Flags().StringVarP(&format, "format", "f", string(export.FormatJSON), "export format: "+strings.Join(names, "|"))
	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "directory to write into")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "print the export instead of writing a file")
	return cmd
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/metaphox/monkey/dump"
	"github.com/metaphox/monkey/internal/config"
	"github.com/metaphox/monkey/parser"
)

func newParseCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a file and print the result",
		Long: `Parse a file and print either its canonical source, with every
operator fully parenthesized, or the syntax tree as YAML.

All syntax errors are reported, each with its line and column.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("format") {
				format = a.cfg.Output.Format
			}

			name, src, err := readSource(cmd, args)
			if err != nil {
				return err
			}

			prog, errs := parser.ParseString(src)
			if len(errs) > 0 {
				return a.reportErrors(cmd, name, src, errs)
			}
			a.logger.Debug("parsed", "file", name, "statements", len(prog.Statements))

			switch format {
			case config.FormatSource:
				_, err := fmt.Fprintln(cmd.OutOrStdout(), prog.String())
				return err
			case config.FormatYAML:
				return dump.Program(cmd.OutOrStdout(), prog)
			default:
				return fmt.Errorf("unknown format %q (want %s or %s)", format, config.FormatSource, config.FormatYAML)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", config.FormatSource, "output format: source or yaml")
	return cmd
}

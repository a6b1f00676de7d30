package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/metaphox/monkey/dump"
	"github.com/metaphox/monkey/lexer"
)

func newLexCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "lex [file]",
		Short: "Print the token stream of a file",
		Long: `Print every token of a file, up to and including EOF.

Unknown characters show up as ILLEGAL tokens; lexing itself never fails.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, src, err := readSource(cmd, args)
			if err != nil {
				return err
			}
			a.logger.Debug("lexing", "file", name, "bytes", len(src))

			switch format {
			case "text":
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				for _, t := range dump.CollectTokens(lexer.New(src)) {
					fmt.Fprintf(tw, "%d:%d\t%s\t%s\n", t.Line, t.Col, t.Kind, t.Literal)
				}
				return tw.Flush()
			case "yaml":
				return dump.Tokens(cmd.OutOrStdout(), lexer.New(src))
			default:
				return fmt.Errorf("unknown format %q (want text or yaml)", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text or yaml")
	return cmd
}

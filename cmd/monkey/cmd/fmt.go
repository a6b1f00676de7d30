package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/metaphox/monkey/parser"
)

var errNotFormatted = errors.New("file is not in canonical form")

func newFmtCmd(a *app) *cobra.Command {
	var (
		check bool
		write bool
	)

	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Print a file in canonical form",
		Long: `Print a file in the canonical form produced by the parser.

With --check nothing is printed except the name of a file that would
change, and the command fails. With --write the file is rewritten in place.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, src, err := readSource(cmd, args)
			if err != nil {
				return err
			}

			prog, errs := parser.ParseString(src)
			if len(errs) > 0 {
				return a.reportErrors(cmd, name, src, errs)
			}
			formatted := prog.String()
			changed := formatted != strings.TrimRight(src, "\n")

			switch {
			case check:
				if changed {
					fmt.Fprintln(cmd.OutOrStdout(), name)
					return errNotFormatted
				}
				return nil
			case write:
				if len(args) == 0 || args[0] == "-" {
					return errors.New("--write needs a file argument")
				}
				if !changed {
					return nil
				}
				a.logger.Info("rewriting", "file", name)
				return os.WriteFile(args[0], []byte(formatted+"\n"), 0o644)
			default:
				_, err := fmt.Fprintln(cmd.OutOrStdout(), formatted)
				return err
			}
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "fail if the input is not in canonical form")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "rewrite the file in place")
	cmd.MarkFlagsMutuallyExclusive("check", "write")
	return cmd
}

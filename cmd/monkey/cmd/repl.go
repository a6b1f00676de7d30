package cmd

import (
	"github.com/spf13/cobra"

	"github.com/metaphox/monkey/internal/repl"
)

func newREPLCmd(a *app) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Parse input lines interactively",
		Long: `Start an interactive shell. Every line is parsed on enter and the
canonical form or the syntax errors are shown. Nothing is evaluated.

The terminal UI is used unless --plain or repl.plain is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			prompt := a.cfg.REPL.Prompt
			if plain || a.cfg.REPL.Plain {
				a.logger.Debug("starting plain repl")
				return repl.Start(cmd.InOrStdin(), cmd.OutOrStdout(), prompt)
			}

			a.logger.Debug("starting terminal repl")
			return repl.Run(repl.Options{Prompt: prompt, Color: a.cfg.Output.Color})
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "line based shell instead of the terminal UI")
	return cmd
}

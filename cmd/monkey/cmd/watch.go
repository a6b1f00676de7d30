package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/metaphox/monkey/internal/diag"
	"github.com/metaphox/monkey/internal/watch"
	"github.com/metaphox/monkey/parser"
)

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <file>",
		Short: "Re-parse a file whenever it changes",
		Long: `Parse a file, then parse it again every time it is saved, printing
the canonical form or the syntax errors. Stop with Ctrl+C.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			path := args[0]
			a.logger.Info("watching", "file", path)
			return a.watch(ctx, cmd, path)
		},
	}
}

func (a *app) watch(ctx context.Context, cmd *cobra.Command, path string) error {
	out := cmd.OutOrStdout()
	pr := diag.Printer{Color: a.cfg.Output.Color, Filename: path}

	return watch.Run(ctx, path, func(src []byte) {
		start := time.Now()
		prog, errs := parser.ParseString(string(src))
		a.logger.Debug("reparsed", "file", path, "errors", len(errs), "took", time.Since(start))

		fmt.Fprintf(out, "── %s  %s\n", path, time.Now().Format("15:04:05"))
		if len(errs) > 0 {
			fmt.Fprint(out, pr.Render(string(src), errs))
			return
		}
		fmt.Fprintln(out, prog.String())
	})
}

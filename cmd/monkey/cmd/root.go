package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/metaphox/monkey/internal/config"
	"github.com/metaphox/monkey/internal/diag"
	"github.com/metaphox/monkey/parser"
)

// Version is the front end version checked against language.requires.
const Version = "0.1.0"

// errParseFailed is returned after parse errors have been printed.
var errParseFailed = errors.New("parse failed")

// app carries the state shared by all subcommands.
type app struct {
	cfgFile string
	verbose bool

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "monkey",
		Short: "Lexer and parser for the Monkey language",
		Long: `monkey turns Monkey source into tokens and syntax trees.

Commands:
  lex      - print the token stream
  parse    - print the syntax tree or its canonical source
  fmt      - rewrite a file in canonical form
  repl     - parse lines interactively
  watch    - re-parse a file whenever it changes
  version  - print the front end version`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (TOML)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")

	root.AddCommand(
		newLexCmd(a),
		newParseCmd(a),
		newFmtCmd(a),
		newREPLCmd(a),
		newWatchCmd(a),
		newVersionCmd(),
	)
	return root
}

// Execute runs the command line and prints any error that was not already
// reported.
func Execute() error {
	root := newRootCmd()
	err := root.Execute()
	if err != nil && !errors.Is(err, errParseFailed) {
		printError(root.ErrOrStderr(), err)
	}
	return err
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	if err := cfg.Validate(Version); err != nil {
		return err
	}

	level := cfg.SlogLevel()
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	a.cfg = cfg

	a.logger.Debug("configuration loaded",
		"config", a.cfgFile,
		"format", cfg.Output.Format,
		"color", cfg.Output.Color,
	)
	return nil
}

// readSource returns the display name and contents of the input named by
// args. No argument or "-" reads standard input.
func readSource(cmd *cobra.Command, args []string) (string, string, error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return "<stdin>", string(b), nil
	}

	b, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", err
	}
	return args[0], string(b), nil
}

// reportErrors prints errs for the source file name and returns
// errParseFailed.
func (a *app) reportErrors(cmd *cobra.Command, name, src string, errs parser.ErrorList) error {
	a.logger.Debug("parse failed", "file", name, "errors", len(errs))
	pr := diag.Printer{Color: a.cfg.Output.Color, Filename: name}
	fmt.Fprint(cmd.ErrOrStderr(), pr.Render(src, errs))
	return errParseFailed
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "error: %v\n", err)
}

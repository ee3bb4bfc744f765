package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alttpo/yalisp"
	"github.com/alttpo/yalisp/config"
	yalua "github.com/alttpo/yalisp/lua"
	"github.com/alttpo/yalisp/repl"
	"github.com/jcgregorio/logger"
	"github.com/jcgregorio/slog"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	lua "github.com/yuin/gopher-lua"
	"golang.org/x/term"
)

var errLinesFailed = errors.New("one or more lines failed")

func newRootCmd() *cobra.Command {
	var flags config.Flags

	root := &cobra.Command{
		Use:   "yalisp",
		Short: "Yet Another Lisp: a one-line S-expression interpreter.",
		Long: `Yet Another Lisp: a one-line S-expression interpreter.

Each input line holds one expression built from integers, strings and the
builtin operators +, - and concat:

	(yalisp) > (+ 1 (- 10 4))
	7
	(yalisp) > (concat "a" "b")
	"ab"
`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(cmd, &flags)
		},
	}
	flags.Register(root.PersistentFlags())

	root.AddCommand(
		&cobra.Command{
			Use:   "repl",
			Short: "Run the read-eval-print loop on stdin.",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runRepl(cmd, &flags)
			},
		},
		&cobra.Command{
			Use:   "eval EXPR...",
			Short: "Evaluate each argument as one input line.",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runEval(cmd, &flags, args)
			},
		},
		&cobra.Command{
			Use:   "parse EXPR",
			Short: "Print the tree of the first expression and the cursor after it.",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runParse(cmd, args[0])
			},
		},
		&cobra.Command{
			Use:   "lua SCRIPT",
			Short: "Run a Lua script with the yalisp module preloaded.",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runLua(cmd, &flags, args[0])
			},
		},
	)

	return root
}

func newLogger(verbose bool) slog.Logger {
	if !verbose {
		return logger.NewNopLogger()
	}
	return logger.NewFromOptions(&logger.Options{
		SyncWriter:   os.Stderr,
		IncludeDebug: true,
	})
}

func isTerminal(v interface{}) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// session builds a repl.Session from the resolved flags and the command's
// streams.
func session(cmd *cobra.Command, flags *config.Flags, in io.Reader) (*repl.Session, slog.Logger, error) {
	log := newLogger(flags.Verbose)

	cfg, err := flags.Resolve(cmd.Flags())
	if err != nil {
		return nil, nil, err
	}
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		log.Debugf("Flags: --%s=%v", f.Name, f.Value)
	})

	out := cmd.OutOrStdout()
	colored := false
	switch cfg.Color {
	case config.ColorAlways:
		colored = true
	case config.ColorAuto:
		colored = isTerminal(out)
	}

	s := repl.New(cfg, in, out, repl.Options{
		Interactive: isTerminal(in),
		Color:       colored,
		Logger:      log,
	})
	return s, log, nil
}

func runRepl(cmd *cobra.Command, flags *config.Flags) error {
	s, log, err := session(cmd, flags, cmd.InOrStdin())
	if err != nil {
		return err
	}
	stats, err := s.Run(cmd.Context())
	log.Infof("session ended: %d lines, %d errors", stats.Lines, stats.Errors)
	return err
}

func runEval(cmd *cobra.Command, flags *config.Flags, args []string) error {
	s, _, err := session(cmd, flags, cmd.InOrStdin())
	if err != nil {
		return err
	}

	failed := false
	for _, arg := range args {
		text, ok := s.Render([]byte(arg))
		if !ok {
			failed = true
		}
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), text); err != nil {
			return errors.Wrap(err, "write result")
		}
	}
	if failed {
		return errLinesFailed
	}
	return nil
}

func runParse(cmd *cobra.Command, expr string) error {
	n, pos, err := yalisp.ParseString(expr)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", n, pos)
	return errors.Wrap(err, "write tree")
}

func runLua(cmd *cobra.Command, flags *config.Flags, path string) error {
	log := newLogger(flags.Verbose)

	L := lua.NewState()
	defer L.Close()
	yalua.Preload(L)

	log.Debugf("running %s", path)
	return L.DoFile(path)
}

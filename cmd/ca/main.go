// Command ca generates integer sequences from elementary cellular automata.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"camusicgen/internal/app"
	"camusicgen/internal/logging"
)

// env carries the state shared by every subcommand.
type env struct {
	cfg     *app.Config
	cfgFile string
	log     zerolog.Logger

	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

func main() {
	root := newRootCmd(os.Stdin, os.Stdout, os.Stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	e := &env{cfg: app.NewConfig(), in: in, out: out, errOut: errOut, log: zerolog.Nop()}

	root := &cobra.Command{
		Use:           "ca",
		Short:         "Generate musical integer sequences from elementary cellular automata",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.setup(cmd)
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&e.cfgFile, "config", "", "YAML file with default parameters")
	e.cfg.Bind(pf)
	e.cfg.BindLogging(pf)

	root.AddCommand(
		newGenerateCmd(e),
		newStepCmd(e),
		newEncodeCmd(e),
		newDecodeCmd(e),
		newServeCmd(e),
		newViewCmd(e),
	)
	return root
}

// setup loads the config file, re-applies explicit flags on top of it,
// validates the result and builds the logger.
func (e *env) setup(cmd *cobra.Command) error {
	if e.cfgFile != "" {
		changed := map[string]string{}
		cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = f.Value.String() })
		if err := e.cfg.LoadFile(e.cfgFile); err != nil {
			return err
		}
		for name, v := range changed {
			if err := cmd.Flags().Set(name, v); err != nil {
				return err
			}
		}
	}
	if err := e.cfg.Validate(); err != nil {
		return err
	}
	log, err := logging.New(e.errOut, e.cfg.LogLevel, logging.Format(e.cfg.LogFormat), !isTerminal(e.errOut))
	if err != nil {
		return err
	}
	e.log = log.With().Str("cmd", cmd.Name()).Logger()
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

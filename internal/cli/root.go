// Package cli implements the candid command.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/candid/canister"
	"github.com/wippyai/candid/internal/config"
	"github.com/wippyai/candid/internal/highlight"
	"github.com/wippyai/candid/value"
	"github.com/wippyai/candid/wire"
)

// Options is the state shared by all commands once flags are parsed.
type Options struct {
	Config *config.Config
	Logger *zap.Logger
}

// NewRootCommand creates the candid command tree.
func NewRootCommand() *cobra.Command {
	opts := &Options{Config: config.Default(), Logger: zap.NewNop()}

	cmd := &cobra.Command{
		Use:   "candid",
		Short: "Work with Candid values, types and messages",
		Long: `candid parses, prints, encodes and decodes Candid, the interface
description language of the Internet Computer.

Values are written in Candid text, for example:

  candid encode '(42 : nat8, record { name = "alice" })'
  candid decode 4449444c0001710568656c6c6f`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromFlags(cmd.Flags())
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg.LogLevel)
			if err != nil {
				return err
			}
			opts.Config = cfg
			opts.Logger = logger
			wire.SetLogger(logger)
			canister.SetLogger(logger)
			return nil
		},
	}

	config.BindFlags(cmd.PersistentFlags())

	cmd.AddCommand(NewParseCommand(opts))
	cmd.AddCommand(NewTypeCommand(opts))
	cmd.AddCommand(NewEncodeCommand(opts))
	cmd.AddCommand(NewDecodeCommand(opts))
	cmd.AddCommand(NewPrincipalCommand(opts))
	cmd.AddCommand(NewHashCommand(opts))
	cmd.AddCommand(NewMetaCommand(opts))
	cmd.AddCommand(NewReplCommand(opts))

	return cmd
}

// Execute runs the command tree with the process arguments and returns the
// exit code.
func Execute() int {
	cmd := NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	var cfg zap.Config
	if lvl.Level() == zap.DebugLevel {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Encoding = "console"
	}
	cfg.Level = lvl
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

// printer returns the value printer for the configured width.
func (o *Options) printer() value.Printer {
	return value.Printer{Width: o.Config.Width}
}

// writeCandid writes Candid text, highlighted when w is a terminal or color
// is forced.
func (o *Options) writeCandid(w io.Writer, s string) error {
	f, _ := w.(*os.File)
	if (f != nil || o.Config.Color == config.ColorAlways) && highlight.Enabled(o.Config.Color, f) {
		s = highlight.String(s)
	}
	_, err := fmt.Fprintln(w, s)
	return err
}

// input returns the command arguments joined by spaces, or standard input
// when there are none or the only argument is "-".
func input(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(data)), nil
	}
	return strings.Join(args, " "), nil
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/wippyai/candid/text"
	"github.com/wippyai/candid/types"
)

// NewParseCommand creates the parse command.
func NewParseCommand(opts *Options) *cobra.Command {
	var asArgs bool

	cmd := &cobra.Command{
		Use:   "parse [--args] <text>",
		Short: "Parse Candid text and print it canonically",
		Long: `Parse a Candid value, or an argument list with --args, and print its
canonical form. Reads standard input when no text is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := input(cmd, args)
			if err != nil {
				return err
			}
			p := opts.printer()
			if asArgs {
				a, err := text.ParseArgs(src)
				if err != nil {
					return err
				}
				return opts.writeCandid(cmd.OutOrStdout(), p.Args(a))
			}
			v, err := text.ParseValue(src)
			if err != nil {
				return err
			}
			return opts.writeCandid(cmd.OutOrStdout(), p.Value(v))
		},
	}

	cmd.Flags().BoolVarP(&asArgs, "args", "a", false, "parse an argument list")
	return cmd
}

// NewTypeCommand creates the type command.
func NewTypeCommand(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "type <args>",
		Short: "Print the types inferred for an argument list",
		Long: `Print the Candid types inferred for an argument list. Untyped numbers
are int; vector element types are unified across elements.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := input(cmd, args)
			if err != nil {
				return err
			}
			a, err := text.ParseArgs(src)
			if err != nil {
				return err
			}
			ts, err := a.Types()
			if err != nil {
				return err
			}
			return opts.writeCandid(cmd.OutOrStdout(), types.TupleString(ts))
		},
	}
	return cmd
}

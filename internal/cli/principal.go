package cli

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/wippyai/candid/principal"
)

// NewPrincipalCommand creates the principal command and its subcommands.
func NewPrincipalCommand(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "principal",
		Short: "Convert principals between text and bytes",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "parse <text>",
		Short: "Print the bytes of a textual principal as hex",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := principal.FromText(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(p.Bytes()))
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "encode <hex>",
		Short: "Print the textual form of principal bytes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := parseHex(args[0])
			if err != nil {
				return err
			}
			p, err := principal.FromBytes(raw)
			if err != nil {
				return err
			}
			return printPrincipal(cmd.OutOrStdout(), p)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "anonymous",
		Short: "Print the anonymous principal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printPrincipal(cmd.OutOrStdout(), principal.Anonymous())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "management",
		Short: "Print the management canister principal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printPrincipal(cmd.OutOrStdout(), principal.Management())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "self-auth <public-key-hex>",
		Short: "Derive the self-authenticating principal of a DER public key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := parseHex(args[0])
			if err != nil {
				return err
			}
			return printPrincipal(cmd.OutOrStdout(), principal.SelfAuthenticating(key))
		},
	})

	return cmd
}

func printPrincipal(w io.Writer, p principal.Principal) error {
	_, err := fmt.Fprintln(w, p.String())
	return err
}

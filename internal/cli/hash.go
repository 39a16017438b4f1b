package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wippyai/candid/types"
)

// NewHashCommand creates the hash command.
func NewHashCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "hash <name>...",
		Short: "Print the field ids of record and variant labels",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range args {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", name, types.IDHash(name)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

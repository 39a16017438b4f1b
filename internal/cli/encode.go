package cli

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/candid/text"
	"github.com/wippyai/candid/wire"
)

// NewEncodeCommand creates the encode command.
func NewEncodeCommand(opts *Options) *cobra.Command {
	var (
		typeList string
		raw      bool
	)

	cmd := &cobra.Command{
		Use:   "encode [--types \"(t, ...)\"] <args>",
		Short: "Encode an argument list as a Candid message",
		Long: `Encode a Candid argument list in the binary wire format and print it as
hex. Types are inferred from the values unless --types declares them.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := input(cmd, args)
			if err != nil {
				return err
			}
			a, err := text.ParseArgs(src)
			if err != nil {
				return err
			}

			var data []byte
			if typeList != "" {
				ts, err := text.ParseTypes(typeList)
				if err != nil {
					return fmt.Errorf("--types: %w", err)
				}
				data, err = wire.EncodeWithTypes(a, ts)
				if err != nil {
					return err
				}
			} else if data, err = wire.Encode(a); err != nil {
				return err
			}

			opts.Logger.Debug("encoded message", zap.Int("args", a.Len()), zap.Int("bytes", len(data)))
			out := cmd.OutOrStdout()
			if raw {
				_, err = out.Write(data)
				return err
			}
			_, err = fmt.Fprintln(out, hex.EncodeToString(data))
			return err
		},
	}

	cmd.Flags().StringVarP(&typeList, "types", "t", "", "declared argument types, e.g. \"(nat8, text)\"")
	cmd.Flags().BoolVar(&raw, "raw", false, "write raw bytes instead of hex")
	return cmd
}

package cli

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wippyai/candid/export"
	"github.com/wippyai/candid/text"
	"github.com/wippyai/candid/types"
	"github.com/wippyai/candid/wire"
)

// NewDecodeCommand creates the decode command.
func NewDecodeCommand(opts *Options) *cobra.Command {
	var (
		file      string
		format    string
		typeList  string
		showTypes bool
		raw       bool
	)

	cmd := &cobra.Command{
		Use:   "decode [--file f] [--format candid|json|cbor|msgpack|yaml] <hex>",
		Short: "Decode a Candid message",
		Long: `Decode a Candid message given as hex, or read from a file with --file.
The file may hold raw bytes or hex text. With --types, record fields and
variant cases are named after the declared types.

Binary formats (cbor, msgpack) are printed as hex unless --raw is set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := message(cmd, args, file)
			if err != nil {
				return err
			}

			m, err := wire.DecodeMessage(data)
			if err != nil {
				return err
			}
			decoded := m.Args
			if typeList != "" {
				ts, err := text.ParseTypes(typeList)
				if err != nil {
					return fmt.Errorf("--types: %w", err)
				}
				decoded = m.Relabel(ts)
			}

			out := cmd.OutOrStdout()
			if showTypes {
				if err := opts.writeCandid(out, types.TupleString(m.Types)); err != nil {
					return err
				}
			}

			if format == "" {
				format = opts.Config.Format
			}
			if format == "candid" {
				return opts.writeCandid(out, opts.printer().Args(decoded))
			}

			codec, err := export.ByName(format)
			if err != nil {
				return err
			}
			b, err := codec.MarshalArgs(decoded)
			if err != nil {
				return err
			}
			switch {
			case raw:
				_, err = out.Write(b)
			case format == "cbor" || format == "msgpack":
				_, err = fmt.Fprintln(out, hex.EncodeToString(b))
			default:
				_, err = fmt.Fprintln(out, strings.TrimRight(string(b), "\n"))
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "read the message from a file")
	cmd.Flags().StringVar(&format, "format", "", "output format (candid|"+strings.Join(export.Names(), "|")+")")
	cmd.Flags().StringVarP(&typeList, "types", "t", "", "declared argument types used to name fields")
	cmd.Flags().BoolVar(&showTypes, "show-types", false, "print the message's argument types first")
	cmd.Flags().BoolVar(&raw, "raw", false, "write binary formats as raw bytes")
	return cmd
}

// message reads the bytes to decode from a file or the arguments.
func message(cmd *cobra.Command, args []string, file string) ([]byte, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		if b, err := parseHex(string(data)); err == nil {
			return b, nil
		}
		return data, nil
	}
	src, err := input(cmd, args)
	if err != nil {
		return nil, err
	}
	return parseHex(src)
}

// parseHex decodes hex text, ignoring whitespace and an optional 0x prefix.
func parseHex(s string) ([]byte, error) {
	s = strings.Join(strings.Fields(s), "")
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex message: %w", err)
	}
	return b, nil
}

package cli

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/candid/canister"
)

// NewMetaCommand creates the meta command.
func NewMetaCommand(opts *Options) *cobra.Command {
	var service bool

	cmd := &cobra.Command{
		Use:   "meta <canister.wasm>",
		Short: "Show the Candid metadata of a canister module",
		Long: `List the icp:* metadata sections and exported methods of a canister
Wasm module. With --service, print only its Candid interface.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			md, err := canister.ReadMetadata(cmd.Context(), data)
			if err != nil {
				return err
			}
			opts.Logger.Debug("read metadata", zap.String("file", args[0]))

			out := cmd.OutOrStdout()
			if service {
				svc, err := md.Service()
				if err != nil {
					return err
				}
				return opts.writeCandid(out, strings.TrimRight(svc, "\n"))
			}

			names := make([]string, 0, len(md.Sections))
			for name := range md.Sections {
				names = append(names, name)
			}
			slices.Sort(names)

			fmt.Fprintln(out, "Sections:")
			for _, name := range names {
				s := md.Sections[name]
				fmt.Fprintf(out, "  %s (%s, %d bytes)\n", name, s.Visibility, len(s.Data))
			}
			fmt.Fprintln(out, "Methods:")
			for _, m := range md.Methods {
				fmt.Fprintf(out, "  %s %s\n", m.Kind, m.Name)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&service, "service", "s", false, "print the candid:service section")
	return cmd
}

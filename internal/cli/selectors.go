package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xab-mack/contractscope/internal/evm"
)

func newSelectorsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "selectors", Short: "Inspect the known-selector table"}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List known 4-byte function selectors",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, s := range evm.KnownSelectors() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t(%s)\n", s.Selector, s.Signature, strings.Join(s.Inputs, ","))
			}
			return nil
		},
	})
	return cmd
}

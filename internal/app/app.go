package app

import (
	"github.com/spf13/cobra"
	"github.com/xab-mack/contractscope/internal/cli"
)

func BuildRoot() *cobra.Command {
	root := &cobra.Command{Use: "contractscope", Short: "Heuristic static analysis for smart contract sources and bytecode"}
	cli.AddCommands(root)
	return root
}

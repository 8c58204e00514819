// Command hbase-pricesort copies book prices from the input tables into an
// output table keyed by zero padded price, so the output scans cheapest first.
package main

import (
	"os"

	"github.com/challenai/hbaseops/internal/cli"
	"github.com/spf13/cobra"
)

func main() {
	var flags cli.Flags
	root := newRootCommand(func(cmd *cobra.Command) (*cli.Env, error) {
		return flags.Setup(cmd.OutOrStdout())
	})
	flags.Register(root)
	root.SetOut(os.Stdout)
	flags.Execute(root)
}

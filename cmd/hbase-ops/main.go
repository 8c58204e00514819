// Command hbase-ops runs table administration tasks against an HBase Thrift2
// gateway: listing, scanning, family changes, truncation and row counts.
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

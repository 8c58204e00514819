package main

import (
	"github.com/challenai/hbaseops"
	"github.com/challenai/hbaseops/internal/cli"
	"github.com/spf13/cobra"
)

type setupFunc func(cmd *cobra.Command) (*cli.Env, error)

// run adapts fn into a cobra RunE.
func run(setup setupFunc, fn func(cmd *cobra.Command, env *cli.Env, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		env, err := setup(cmd)
		if err != nil {
			return err
		}
		return fn(cmd, env, args)
	}
}

func newRootCommand(setup setupFunc) *cobra.Command {
	root := &cobra.Command{
		Use:          "hbase-ops",
		Short:        "HBase table administration",
		SilenceUsage: true,
	}
	root.AddCommand(
		newListCommand(setup),
		newCreateCommand(setup),
		newScanCommand(setup),
		newAddFamilyCommand(setup),
		newRemoveFamilyCommand(setup),
		newTruncateCommand(setup),
		newCountCommand(setup),
		newDemoCommand(setup),
	)
	return root
}

func newListCommand(setup setupFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the user tables",
		Args:  cobra.NoArgs,
		RunE: run(setup, func(cmd *cobra.Command, env *cli.Env, _ []string) error {
			return listTables(cmd, env)
		}),
	}
}

func listTables(cmd *cobra.Command, env *cli.Env) error {
	names, err := env.DB.ListTables(cmd.Context())
	if err != nil {
		return err
	}
	env.Printf("HBase Tables:\n")
	for _, n := range names {
		env.Printf(" - %s\n", n)
	}
	return nil
}

func newCreateCommand(setup setupFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "create <table> <family>...",
		Short: "Create a table, replacing any table of the same name",
		Args:  cobra.MinimumNArgs(2),
		RunE: run(setup, func(cmd *cobra.Command, env *cli.Env, args []string) error {
			return env.DB.CreateTable(cmd.Context(), args[0], args[1:]...)
		}),
	}
}

func newScanCommand(setup setupFunc) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "scan <table>",
		Short: "Print every cell of a table",
		Args:  cobra.ExactArgs(1),
		RunE: run(setup, func(cmd *cobra.Command, env *cli.Env, args []string) error {
			return scanTable(cmd, env, args[0], limit)
		}),
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "stop after this many rows, 0 prints all")
	return cmd
}

func scanTable(cmd *cobra.Command, env *cli.Env, table string, limit int) error {
	return env.DB.ScanRows(cmd.Context(), table, hbaseops.ScanOptions{Limit: limit}, func(row hbaseops.Row) error {
		env.Printf("Row: %s\n", row.Key)
		for _, c := range row.Cells {
			env.Printf("  Column: %s:%s, Value: %s\n", c.Family, c.Qualifier, c.Value)
		}
		return nil
	})
}

func newAddFamilyCommand(setup setupFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "add-family <table> <family>",
		Short: "Add a column family, the table stays online",
		Args:  cobra.ExactArgs(2),
		RunE: run(setup, func(cmd *cobra.Command, env *cli.Env, args []string) error {
			return env.DB.AddColumnFamily(cmd.Context(), args[0], args[1])
		}),
	}
}

func newRemoveFamilyCommand(setup setupFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "remove-family <table> <family>",
		Short: "Remove a column family, the table is offline meanwhile",
		Args:  cobra.ExactArgs(2),
		RunE: run(setup, func(cmd *cobra.Command, env *cli.Env, args []string) error {
			return env.DB.RemoveColumnFamily(cmd.Context(), args[0], args[1])
		}),
	}
}

func newTruncateCommand(setup setupFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "truncate <table>",
		Short: "Remove every row and keep the schema",
		Args:  cobra.ExactArgs(1),
		RunE: run(setup, func(cmd *cobra.Command, env *cli.Env, args []string) error {
			return env.DB.TruncateTable(cmd.Context(), args[0])
		}),
	}
}

func newCountCommand(setup setupFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "count <table>",
		Short: "Count the rows of a table",
		Args:  cobra.ExactArgs(1),
		RunE: run(setup, func(cmd *cobra.Command, env *cli.Env, args []string) error {
			return countRows(cmd, env, args[0])
		}),
	}
}

func countRows(cmd *cobra.Command, env *cli.Env, table string) error {
	n, err := env.DB.CountRows(cmd.Context(), table)
	if err != nil {
		return err
	}
	env.Printf("%s linecount: %d\n", table, n)
	return nil
}

// newDemoCommand runs the administration walkthrough: list, scan, add and
// remove a family, truncate, then count another table.
func newDemoCommand(setup setupFunc) *cobra.Command {
	var (
		table      = "test_table"
		addFamily  = "cf2"
		dropFamily = "cf3"
		countTable = "count_table"
	)
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the administration walkthrough",
		Args:  cobra.NoArgs,
		RunE: run(setup, func(cmd *cobra.Command, env *cli.Env, _ []string) error {
			ctx := cmd.Context()
			if err := listTables(cmd, env); err != nil {
				return err
			}
			if err := scanTable(cmd, env, table, 0); err != nil {
				return err
			}
			if err := env.DB.AddColumnFamily(ctx, table, addFamily); err != nil {
				return err
			}
			if err := env.DB.RemoveColumnFamily(ctx, table, dropFamily); err != nil {
				return err
			}
			if err := env.DB.TruncateTable(ctx, table); err != nil {
				return err
			}
			return countRows(cmd, env, countTable)
		}),
	}
	f := cmd.Flags()
	f.StringVar(&table, "table", table, "table to scan, alter and truncate")
	f.StringVar(&addFamily, "add-family", addFamily, "family to add")
	f.StringVar(&dropFamily, "remove-family", dropFamily, "family to remove")
	f.StringVar(&countTable, "count-table", countTable, "table to count")
	return cmd
}

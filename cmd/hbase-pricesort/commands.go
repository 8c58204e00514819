package main

import (
	"context"

	"github.com/challenai/hbaseops"
	"github.com/challenai/hbaseops/internal/cli"
	"github.com/challenai/hbaseops/sortjob"
	"github.com/spf13/cobra"
)

type setupFunc func(cmd *cobra.Command) (*cli.Env, error)

// run adapts fn into a cobra RunE.
func run(setup setupFunc, fn func(ctx context.Context, env *cli.Env) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		env, err := setup(cmd)
		if err != nil {
			return err
		}
		return fn(cmd.Context(), env)
	}
}

func newRootCommand(setup setupFunc) *cobra.Command {
	root := &cobra.Command{
		Use:          "hbase-pricesort",
		Short:        "Sort book rows by price into an output table",
		SilenceUsage: true,
	}
	root.AddCommand(newRunCommand(setup), newSeedCommand(setup))
	return root
}

func newRunCommand(setup setupFunc) *cobra.Command {
	var show bool
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the sort job with the [job] settings",
		Args:  cobra.NoArgs,
		RunE: run(setup, func(ctx context.Context, env *cli.Env) error {
			conf := sortjob.FromConf(env.Conf.Job)
			counters, err := sortjob.Run(ctx, env.DB, conf)
			if err != nil {
				return err
			}
			env.Printf("read %d rows, wrote %d rows to %s\n", counters.InputRows, counters.OutputRows, conf.Output)
			if !show {
				return nil
			}
			return printOutput(ctx, env, conf)
		}),
	}
	cmd.Flags().BoolVar(&show, "show", false, "print the output table when done")
	return cmd
}

func printOutput(ctx context.Context, env *cli.Env, conf sortjob.Config) error {
	cdc := env.DB.Codec()
	return env.DB.ScanRows(ctx, conf.Output, hbaseops.ScanOptions{}, func(row hbaseops.Row) error {
		book, _ := row.Value(conf.OutputFamily, sortjob.BookColumn)
		raw, _ := row.Value(conf.OutputFamily, sortjob.PriceColumn)
		price, err := cdc.DecodeInt32(raw)
		if err != nil {
			return err
		}
		env.Printf("%s\t%s\t%d\n", row.Key, book, price)
		return nil
	})
}

func newSeedCommand(setup setupFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Recreate the job tables and fill the inputs with sample books",
		Args:  cobra.NoArgs,
		RunE: run(setup, func(ctx context.Context, env *cli.Env) error {
			return sortjob.Seed(ctx, env.DB, sortjob.FromConf(env.Conf.Job), nil)
		}),
	}
}

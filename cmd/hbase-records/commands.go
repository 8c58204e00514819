package main

import (
	"context"
	"strings"

	"github.com/challenai/hbaseops"
	"github.com/challenai/hbaseops/internal/cli"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type setupFunc func(cmd *cobra.Command) (*cli.Env, error)

func run(setup setupFunc, fn func(ctx context.Context, env *cli.Env, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		env, err := setup(cmd)
		if err != nil {
			return err
		}
		return fn(cmd.Context(), env, args)
	}
}

func newRootCommand(setup setupFunc) *cobra.Command {
	root := &cobra.Command{
		Use:          "hbase-records",
		Short:        "HBase record operations",
		SilenceUsage: true,
	}
	root.AddCommand(
		&cobra.Command{
			Use:   "create-table <table> <family>...",
			Short: "Create a table, replacing any table of the same name",
			Args:  cobra.MinimumNArgs(2),
			RunE: run(setup, func(ctx context.Context, env *cli.Env, args []string) error {
				return env.DB.CreateTable(ctx, args[0], args[1:]...)
			}),
		},
		&cobra.Command{
			Use:   "add <table> <row> <family:qualifier=value>...",
			Short: "Write one record",
			Args:  cobra.MinimumNArgs(3),
			RunE: run(setup, func(ctx context.Context, env *cli.Env, args []string) error {
				columns, values, err := parseAssignments(args[2:])
				if err != nil {
					return err
				}
				return env.DB.AddRecord(ctx, args[0], args[1], columns, values)
			}),
		},
		&cobra.Command{
			Use:   "scan-column <table> <family|family:qualifier>",
			Short: "Print the cells of one family or column",
			Args:  cobra.ExactArgs(2),
			RunE: run(setup, func(ctx context.Context, env *cli.Env, args []string) error {
				return scanColumn(ctx, env, args[0], args[1])
			}),
		},
		&cobra.Command{
			Use:   "modify <table> <row> <family:qualifier> <value>",
			Short: "Overwrite one cell",
			Args:  cobra.ExactArgs(4),
			RunE: run(setup, func(ctx context.Context, env *cli.Env, args []string) error {
				return env.DB.Modify(ctx, args[0], args[1], args[2], env.DB.Codec().EncodeString(args[3]))
			}),
		},
		&cobra.Command{
			Use:   "delete-row <table> <row>",
			Short: "Delete every cell of a row",
			Args:  cobra.ExactArgs(2),
			RunE: run(setup, func(ctx context.Context, env *cli.Env, args []string) error {
				return env.DB.DeleteRow(ctx, args[0], args[1])
			}),
		},
		&cobra.Command{
			Use:   "demo",
			Short: "Create and fill the student, course and sc tables",
			Args:  cobra.NoArgs,
			RunE: run(setup, func(ctx context.Context, env *cli.Env, _ []string) error {
				return loadSample(ctx, env)
			}),
		},
	)
	return root
}

// parseAssignments splits "info:name=Zhangsan" arguments on the first '='.
func parseAssignments(args []string) (columns, values []string, err error) {
	for _, arg := range args {
		i := strings.IndexByte(arg, '=')
		if i <= 0 {
			return nil, nil, &hbaseops.ArgumentError{
				Op:  "add record",
				Err: errors.Wrapf(hbaseops.ErrMalformedColumn, "%q is not family:qualifier=value", arg),
			}
		}
		columns = append(columns, arg[:i])
		values = append(values, arg[i+1:])
	}
	return columns, values, nil
}

func scanColumn(ctx context.Context, env *cli.Env, table, column string) error {
	return env.DB.Scan(ctx, table, column, func(c hbaseops.Cell) error {
		env.Printf("Row: %s | Column: %s | Value: %s\n", c.Row, c.Qualifier, c.Value)
		return nil
	})
}

type record struct {
	row     string
	columns []string
	values  []string
}

type sampleTable struct {
	name     string
	families []string
	records  []record
}

var studentColumns = []string{"info:S_Name", "info:S_Sex", "info:S_Age"}
var courseColumns = []string{"course_info:C_Name", "course_info:C_Credit"}

var sampleTables = []sampleTable{
	{
		name:     "student",
		families: []string{"info", "score"},
		records: []record{
			{"2015001", studentColumns, []string{"Zhangsan", "male", "23"}},
			{"2015002", studentColumns, []string{"Mary", "female", "22"}},
			{"2015003", studentColumns, []string{"Lisi", "male", "24"}},
		},
	},
	{
		name:     "course",
		families: []string{"course_info"},
		records: []record{
			{"123001", courseColumns, []string{"Math", "2.0"}},
			{"123002", courseColumns, []string{"Computer Science", "5.0"}},
			{"123003", courseColumns, []string{"English", "3.0"}},
		},
	},
	{
		name:     "sc",
		families: []string{"score"},
		records: []record{
			{"2015001", []string{"score:123001", "score:123003"}, []string{"86", "69"}},
			{"2015002", []string{"score:123002", "score:123003"}, []string{"77", "99"}},
			{"2015003", []string{"score:123001", "score:123002"}, []string{"98", "95"}},
		},
	},
}

func loadSample(ctx context.Context, env *cli.Env) error {
	for _, t := range sampleTables {
		if err := env.DB.CreateTable(ctx, t.name, t.families...); err != nil {
			return err
		}
		env.Printf("Table %s created successfully.\n", t.name)
		for _, r := range t.records {
			if err := env.DB.AddRecord(ctx, t.name, r.row, r.columns, r.values); err != nil {
				return err
			}
		}
	}
	return nil
}

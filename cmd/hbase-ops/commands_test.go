package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/challenai/hbaseops"
	"github.com/challenai/hbaseops/config"
	"github.com/challenai/hbaseops/internal/cli"
	"github.com/challenai/hbaseops/internal/hbasemock"
	"github.com/challenai/hbaseops/logger"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEnv(t *testing.T) (*cli.Env, *bytes.Buffer) {
	t.Helper()
	store := hbasemock.NewStore()
	out := &bytes.Buffer{}
	conf := config.DefaultConf
	return &cli.Env{
		Conf: &conf,
		Log:  logger.Nop(),
		DB: hbaseops.NewDB(func(ctx context.Context) (hbaseops.Conn, error) {
			c, err := store.Open(ctx)
			if err != nil {
				return nil, err
			}
			return c, nil
		}, nil, nil),
		Out: out,
	}, out
}

func execute(t *testing.T, env *cli.Env, args ...string) error {
	t.Helper()
	root := newRootCommand(func(*cobra.Command) (*cli.Env, error) { return env, nil })
	root.SetArgs(args)
	root.SetOut(env.Out)
	root.SetErr(env.Out)
	return root.ExecuteContext(context.Background())
}

func TestDemo(t *testing.T) {
	env, out := testEnv(t)
	ctx := context.Background()
	require.NoError(t, env.DB.CreateTable(ctx, "test_table", "cf1", "cf3"))
	require.NoError(t, env.DB.Put(ctx, "test_table", "r1", map[string][]byte{"cf1:a": []byte("v1")}))
	require.NoError(t, env.DB.CreateTable(ctx, "count_table", "cf"))
	for _, key := range []string{"a", "b", "c"} {
		require.NoError(t, env.DB.Put(ctx, "count_table", key, map[string][]byte{"cf:x": []byte(key)}))
	}

	require.NoError(t, execute(t, env, "demo"))

	assert.Contains(t, out.String(), " - count_table\n - test_table\n")
	assert.Contains(t, out.String(), "Row: r1\n  Column: cf1:a, Value: v1\n")
	assert.Contains(t, out.String(), "count_table linecount: 3\n")

	desc, err := env.DB.Describe(ctx, "test_table")
	require.NoError(t, err)
	assert.Equal(t, []string{"cf1", "cf2"}, desc.FamilyNames())
	n, err := env.DB.CountRows(ctx, "test_table")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCreateAndCount(t *testing.T) {
	env, out := testEnv(t)
	require.NoError(t, execute(t, env, "create", "t", "cf1", "cf2"))
	require.NoError(t, execute(t, env, "count", "t"))
	assert.Equal(t, "t linecount: 0\n", out.String())
}

func TestRemoveMissingFamily(t *testing.T) {
	env, _ := testEnv(t)
	require.NoError(t, execute(t, env, "create", "t", "cf1"))
	err := execute(t, env, "remove-family", "t", "nope")
	assert.ErrorIs(t, err, hbaseops.ErrFamilyNotFound)
}

func TestArgsChecked(t *testing.T) {
	env, _ := testEnv(t)
	assert.Error(t, execute(t, env, "truncate"))
	assert.Error(t, execute(t, env, "add-family", "t"))
}

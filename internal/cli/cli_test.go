package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/challenai/hbaseops/logger"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagsOverrideConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
log-level = "warn"

[hbase]
host = "hbase.internal"
port = 9095
`), 0o644))

	var f Flags
	root := &cobra.Command{Use: "x", RunE: func(*cobra.Command, []string) error { return nil }}
	f.Register(root)
	root.SetArgs([]string{"--config", path, "--port", "9191"})
	require.NoError(t, root.Execute())

	conf, err := f.Load()
	require.NoError(t, err)
	assert.Equal(t, "hbase.internal", conf.HBase.Host)
	assert.Equal(t, 9191, conf.HBase.Port)
	assert.Equal(t, "warn", conf.LogLevel)
}

func TestFlagsInvalid(t *testing.T) {
	f := Flags{Port: 70000}
	_, err := f.Load()
	assert.Error(t, err)

	f = Flags{ConfigPath: filepath.Join(t.TempDir(), "missing.toml")}
	_, err = f.Load()
	assert.Error(t, err)
}

func TestSetup(t *testing.T) {
	out := &bytes.Buffer{}
	env, err := (&Flags{LogLevel: "error"}).Setup(out)
	require.NoError(t, err)
	assert.Equal(t, "localhost", env.Conf.HBase.Host)
	assert.NotNil(t, env.DB)

	env.Printf("n=%d", 3)
	assert.Equal(t, "n=3", out.String())
}

func TestExecuteLogsFailure(t *testing.T) {
	logged, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	f := Flags{log: logger.NewWriterLogger(logged)}
	root := &cobra.Command{Use: "hbase-ops", SilenceUsage: true, RunE: func(*cobra.Command, []string) error {
		return errors.New("table t not found")
	}}
	root.SetArgs([]string{})
	root.SetErr(stderr)

	err := f.execute(root)
	assert.EqualError(t, err, "table t not found")
	assert.Equal(t, "[ERROR] hbase-ops: table t not found\n", logged.String())
	assert.Empty(t, stderr.String(), "cobra does not print the error again")
}

func TestExecuteLogsSetupFailure(t *testing.T) {
	stderr := &bytes.Buffer{}
	f := Flags{ConfigPath: filepath.Join(t.TempDir(), "missing.toml")}
	root := &cobra.Command{Use: "hbase-ops", SilenceUsage: true, RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := f.Setup(cmd.OutOrStdout())
		return err
	}}
	root.SetArgs([]string{})
	root.SetErr(stderr)

	require.Error(t, f.execute(root))
	assert.Contains(t, stderr.String(), "[ERROR] hbase-ops: ")
	assert.Contains(t, stderr.String(), "missing.toml")
}

func TestSetupKeepsLogger(t *testing.T) {
	f := Flags{LogLevel: "error"}
	env, err := f.Setup(&bytes.Buffer{})
	require.NoError(t, err)
	assert.Same(t, env.Log, f.errorLogger(&cobra.Command{}))
}

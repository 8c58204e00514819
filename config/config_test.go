package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	conf, err := Load("")
	require.NoError(t, err)
	require.NoError(t, conf.Validate())
	assert.Equal(t, "localhost", conf.HBase.Host)
	assert.Equal(t, 10*time.Second, conf.HBase.Timeout.Duration)
	assert.Equal(t, []string{"table1", "table2"}, conf.Job.Inputs)

	// the defaults must not be shared with the loaded copy
	conf.Job.Inputs[0] = "changed"
	assert.Equal(t, "table1", DefaultConf.Job.Inputs[0])
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hbase.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
log-level = "debug"

[hbase]
host = "hbase-thrift.internal"
port = 9095
timeout = "3s"

[hbase.headers]
Authorization = "Bearer abc"

[job]
inputs = ["books"]
reducers = 4
`), 0o644))

	conf, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, conf.Validate())
	assert.Equal(t, "debug", conf.LogLevel)
	assert.Equal(t, "hbase-thrift.internal", conf.HBase.Host)
	assert.Equal(t, 9095, conf.HBase.Port)
	assert.Equal(t, 3*time.Second, conf.HBase.Timeout.Duration)
	assert.Equal(t, "Bearer abc", conf.HBase.Headers["Authorization"])
	assert.Equal(t, []string{"books"}, conf.Job.Inputs)
	assert.Equal(t, 4, conf.Job.Reducers)
	// untouched keys keep their defaults
	assert.Equal(t, "sorted_prices", conf.Job.Output)
	assert.Equal(t, "info", conf.Job.InputFamily)
}

func TestLoadBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[hbase]\ntimeout = \"soon\"\n"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	conf, err := Load("")
	require.NoError(t, err)

	conf.HBase.Port = 70000
	assert.Error(t, conf.Validate())
	conf.HBase.Port = 9090

	conf.Job.Reducers = 0
	assert.Error(t, conf.Validate())
	conf.Job.Reducers = 1

	conf.HBase.Timeout = Duration{}
	assert.Error(t, conf.Validate())
}

package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf)
	l.SetLevel(LevelWarn)

	l.Debugf("scan %s", "t1")
	l.Infof("count %d", 3)
	l.Warnf("table %s left disabled", "t1")
	l.Errorf("put failed: %v", "boom")

	assert.Equal(t, "[WARN] table t1 left disabled\n[ERROR] put failed: boom\n", buf.String())
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("WARNING")
	require.NoError(t, err)
	assert.Equal(t, LevelWarn, lvl)

	lvl, err = ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, LevelInfo, lvl)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestNewFileAndZap(t *testing.T) {
	dir := t.TempDir()

	text := filepath.Join(dir, "text.log")
	l, err := New("info", text, "text")
	require.NoError(t, err)
	l.Infof("listed %d tables", 2)
	data, err := os.ReadFile(text)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[INFO] listed 2 tables")

	js := filepath.Join(dir, "json.log")
	z, err := New("debug", js, "json")
	require.NoError(t, err)
	z.Debugf("truncate %s", "t1")
	data, err = os.ReadFile(js)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"truncate t1"`)
}

package codec

import (
	"bytes"
	"sort"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInt32MatchesHBaseBytes(t *testing.T) {
	c := &BytesCodec{}
	// Bytes.toBytes(86)
	assert.Equal(t, []byte{0, 0, 0, 86}, c.EncodeInt32(86))
	// Bytes.toBytes(-1)
	assert.Equal(t, []byte{0xff, 0xff, 0xff, 0xff}, c.EncodeInt32(-1))

	n, err := c.DecodeInt32([]byte{0, 0, 1, 0})
	require.NoError(t, err)
	assert.Equal(t, int32(256), n)

	_, err = c.DecodeInt32([]byte("86"))
	assert.Error(t, err)
}

// plainCodec keeps prices as decimal text.
type plainCodec struct{}

func (plainCodec) EncodeString(s string) []byte { return []byte(s) }

func (plainCodec) DecodeString(b []byte) (string, error) { return string(b), nil }

func (plainCodec) EncodeInt32(n int32) []byte { return []byte(strconv.Itoa(int(n))) }

func (plainCodec) DecodeInt32(b []byte) (int32, error) {
	n, err := strconv.ParseInt(string(b), 10, 32)
	return int32(n), err
}

func TestCustomCodec(t *testing.T) {
	var c Codec = plainCodec{}
	assert.Equal(t, []byte("86"), c.EncodeInt32(86))
	n, err := c.DecodeInt32([]byte("-7"))
	require.NoError(t, err)
	assert.Equal(t, int32(-7), n)

	s, err := c.DecodeString(c.EncodeString("A"))
	require.NoError(t, err)
	assert.Equal(t, "A", s)
}

func TestSortableInt32Order(t *testing.T) {
	values := []int32{86, -3, 69, 0, 77, 99, -200, 98, 95, 1 << 30}
	keys := make([][]byte, len(values))
	for i, v := range values {
		keys[i] = SortableInt32(v)
	}
	sort.Slice(keys, func(i, j int) bool { return bytes.Compare(keys[i], keys[j]) < 0 })

	got := make([]int32, len(keys))
	for i, k := range keys {
		v, err := FromSortableInt32(k)
		require.NoError(t, err)
		got[i] = v
	}
	assert.Equal(t, []int32{-200, -3, 0, 69, 77, 86, 95, 98, 99, 1 << 30}, got)
}

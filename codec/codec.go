package codec

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// Codec converts typed values to and from cell bytes.
type Codec interface {
	EncodeInt32(int32) []byte
	DecodeInt32([]byte) (int32, error)
	EncodeString(string) []byte
	DecodeString([]byte) (string, error)
}

// BytesCodec produces the same bytes as HBase's org.apache.hadoop.hbase.util.Bytes,
// so cells written from Java with Bytes.toBytes(int) or Bytes.toBytes(String)
// decode here.
type BytesCodec struct{}

var _ Codec = (*BytesCodec)(nil)

func checkLen(kind string, b []byte, n int) error {
	if len(b) != n {
		return errors.Errorf("failed to parse bytes to %s, want %d bytes, got %d", kind, n, len(b))
	}
	return nil
}

func (*BytesCodec) EncodeInt32(n int32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, uint32(n))
	return b
}

func (*BytesCodec) DecodeInt32(b []byte) (int32, error) {
	if err := checkLen("int32", b, 4); err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(b)), nil
}

func (*BytesCodec) EncodeString(s string) []byte {
	return []byte(s)
}

func (*BytesCodec) DecodeString(b []byte) (string, error) {
	return string(b), nil
}

// SortableInt32 encodes n so that bytewise order of the result is numeric
// order of n, negatives included.
func SortableInt32(n int32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, uint32(n)^(1<<31))
	return b
}

// FromSortableInt32 reverses SortableInt32.
func FromSortableInt32(b []byte) (int32, error) {
	if err := checkLen("sortable int32", b, 4); err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(b) ^ (1 << 31)), nil
}

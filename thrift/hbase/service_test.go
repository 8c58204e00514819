package hbase

import (
	"context"
	"testing"

	"github.com/apache/thrift/lib/go/thrift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// replayClient encodes the call arguments and answers with a canned reply,
// both through the binary protocol.
type replayClient struct {
	method string
	sent   *thrift.TMemoryBuffer
	reply  thrift.TStruct
}

func (c *replayClient) Call(ctx context.Context, method string, args, result thrift.TStruct) (thrift.ResponseMeta, error) {
	c.method = method
	c.sent = thrift.NewTMemoryBuffer()
	if err := args.Write(ctx, thrift.NewTBinaryProtocolConf(c.sent, nil)); err != nil {
		return thrift.ResponseMeta{}, err
	}
	buf := thrift.NewTMemoryBuffer()
	proto := thrift.NewTBinaryProtocolConf(buf, nil)
	if err := c.reply.Write(ctx, proto); err != nil {
		return thrift.ResponseMeta{}, err
	}
	return thrift.ResponseMeta{}, result.Read(ctx, proto)
}

type resultsReply struct {
	results []*TResult_
}

func (r *resultsReply) Write(ctx context.Context, p thrift.TProtocol) error {
	return writeStruct(ctx, p, "getScannerResults_result", func() error {
		return writeList(ctx, p, "success", 0, thrift.STRUCT, len(r.results), func(i int) error {
			return r.results[i].Write(ctx, p)
		})
	})
}

func (r *resultsReply) Read(context.Context, thrift.TProtocol) error { return nil }

type emptyReply struct{}

func (emptyReply) Write(ctx context.Context, p thrift.TProtocol) error {
	return writeStruct(ctx, p, "empty_result", func() error { return nil })
}

func (emptyReply) Read(context.Context, thrift.TProtocol) error { return nil }

func TestGetScannerResults(t *testing.T) {
	ctx := context.Background()
	rc := &replayClient{reply: &resultsReply{results: []*TResult_{
		{Row: []byte("r1"), ColumnValues: []*TColumnValue{{Family: []byte("cf"), Qualifier: []byte("a"), Value: []byte("1")}}},
		{Row: []byte("r2"), ColumnValues: []*TColumnValue{{Family: []byte("cf"), Qualifier: []byte("b"), Value: []byte("2")}}},
	}}}
	client := NewTHBaseServiceClient(rc)

	scan := NewTScan()
	scan.StartRow = []byte("r")
	scan.FilterString = []byte("FirstKeyOnlyFilter()")
	results, err := client.GetScannerResults(ctx, []byte("t1"), scan, 64)
	require.NoError(t, err)
	assert.Equal(t, "getScannerResults", rc.method)
	require.Len(t, results, 2)
	assert.Equal(t, []byte("r2"), results[1].GetRow())
	assert.Equal(t, []byte("2"), results[1].ColumnValues[0].GetValue())

	// decode what went over the wire
	var (
		table   []byte
		sent    = &TScan{}
		numRows int32
	)
	proto := thrift.NewTBinaryProtocolConf(rc.sent, nil)
	err = readStruct(ctx, proto, "args", func(id int16, typ thrift.TType) (bool, error) {
		var err error
		switch id {
		case 1:
			table, err = proto.ReadBinary(ctx)
		case 2:
			err = sent.Read(ctx, proto)
		case 3:
			numRows, err = proto.ReadI32(ctx)
		default:
			return false, nil
		}
		return true, err
	})
	require.NoError(t, err)
	assert.Equal(t, []byte("t1"), table)
	assert.Equal(t, int32(64), numRows)
	assert.Equal(t, []byte("r"), sent.StartRow)
	assert.Nil(t, sent.StopRow)
	assert.Equal(t, []byte("FirstKeyOnlyFilter()"), sent.FilterString)
	assert.Equal(t, int32(1), sent.GetMaxVersions())
}

func TestCallReturnsDeclaredException(t *testing.T) {
	msg := "org.apache.hadoop.hbase.TableNotFoundException: nope"
	rc := &replayClient{reply: &callResult{method: "put", io: &TIOError{Message: &msg}}}
	client := NewTHBaseServiceClient(rc)

	err := client.Put(context.Background(), []byte("nope"), &TPut{Row: []byte("r")})
	require.Error(t, err)
	ioErr, ok := err.(*TIOError)
	require.True(t, ok, "got %T", err)
	assert.Equal(t, msg, ioErr.GetMessage())
}

func TestCallMissingResult(t *testing.T) {
	client := NewTHBaseServiceClient(&replayClient{reply: emptyReply{}})

	_, err := client.TableExists(context.Background(), &TTableName{Qualifier: []byte("t")})
	require.Error(t, err)
	appErr, ok := err.(thrift.TApplicationException)
	require.True(t, ok, "got %T", err)
	assert.Equal(t, int32(thrift.MISSING_RESULT), appErr.TypeId())
}

func TestUnknownFieldsAreSkipped(t *testing.T) {
	ctx := context.Background()
	buf := thrift.NewTMemoryBuffer()
	proto := thrift.NewTBinaryProtocolConf(buf, nil)
	err := writeStruct(ctx, proto, "TResult", func() error {
		if err := writeBinary(ctx, proto, "row", 1, []byte("row-1")); err != nil {
			return err
		}
		if err := writeList(ctx, proto, "columnValues", 2, thrift.STRUCT, 0, nil); err != nil {
			return err
		}
		// stale and partial, newer gateways send them
		if err := writeBool(ctx, proto, "stale", 3, false); err != nil {
			return err
		}
		return writeBool(ctx, proto, "partial", 4, true)
	})
	require.NoError(t, err)

	res := &TResult_{}
	require.NoError(t, res.Read(ctx, proto))
	assert.Equal(t, []byte("row-1"), res.Row)
	assert.Empty(t, res.ColumnValues)
}

func TestTableDescriptorRequiresName(t *testing.T) {
	buf := thrift.NewTMemoryBuffer()
	err := (&TTableDescriptor{}).Write(context.Background(), thrift.NewTBinaryProtocolConf(buf, nil))
	assert.Error(t, err)
}

func fieldIDs(t *testing.T, data []byte) []int16 {
	t.Helper()
	ctx := context.Background()
	buf := thrift.NewTMemoryBuffer()
	_, err := buf.Write(data)
	require.NoError(t, err)
	proto := thrift.NewTBinaryProtocolConf(buf, nil)
	var ids []int16
	err = readStruct(ctx, proto, "any", func(id int16, _ thrift.TType) (bool, error) {
		ids = append(ids, id)
		return false, nil
	})
	require.NoError(t, err)
	return ids
}

func TestColumnFamilyDescriptorRoundTrip(t *testing.T) {
	ctx := context.Background()
	i16, i32 := int16(3), int32(7)
	yes := true
	bloom, compression := TBloomFilterType_ROWPREFIX_FIXED_LENGTH, TCompressionAlgorithm_LZ4
	encoding, keep := TDataBlockEncoding_ROW_INDEX_V1, TKeepDeletedCells_TRUE
	in := &TColumnFamilyDescriptor{
		Name:                []byte("cf"),
		Attributes:          map[string][]byte{"b": []byte("2"), "a": []byte("1")},
		Configuration:       map[string]string{"z": "26", "y": "25"},
		BlockSize:           &i32,
		BloomnFilterType:    &bloom,
		CompressionType:     &compression,
		DfsReplication:      &i16,
		DataBlockEncoding:   &encoding,
		KeepDeletedCells:    &keep,
		MaxVersions:         &i32,
		MinVersions:         &i32,
		Scope:               &i32,
		TimeToLive:          &i32,
		BlockCacheEnabled:   &yes,
		CacheBloomsOnWrite:  &yes,
		CacheDataOnWrite:    &yes,
		CacheIndexesOnWrite: &yes,
		CompressTags:        &yes,
		EvictBlocksOnClose:  &yes,
		InMemory:            &yes,
	}

	buf := thrift.NewTMemoryBuffer()
	proto := thrift.NewTBinaryProtocolConf(buf, nil)
	require.NoError(t, in.Write(ctx, proto))
	first := append([]byte(nil), buf.Bytes()...)
	assert.Equal(t, []int16{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20}, fieldIDs(t, first))

	out := &TColumnFamilyDescriptor{}
	require.NoError(t, out.Read(ctx, proto))
	assert.Equal(t, in, out)

	require.NoError(t, out.Write(ctx, proto))
	assert.Equal(t, first, buf.Bytes(), "maps are written in key order")
}

func TestTableDescriptorRoundTrip(t *testing.T) {
	ctx := context.Background()
	durability := TDurability_ASYNC_WAL
	in := &TTableDescriptor{
		TableName:  &TTableName{Ns: []byte("ns"), Qualifier: []byte("t")},
		Columns:    []*TColumnFamilyDescriptor{{Name: []byte("cf")}},
		Attributes: map[string][]byte{"k": []byte("v")},
		Durability: &durability,
	}
	buf := thrift.NewTMemoryBuffer()
	proto := thrift.NewTBinaryProtocolConf(buf, nil)
	require.NoError(t, in.Write(ctx, proto))
	assert.Equal(t, []int16{1, 2, 3, 4}, fieldIDs(t, buf.Bytes()))

	out := &TTableDescriptor{}
	require.NoError(t, out.Read(ctx, proto))
	assert.Equal(t, in, out)
}

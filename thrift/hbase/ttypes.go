package hbase

import (
	"context"
	"fmt"

	"github.com/apache/thrift/lib/go/thrift"
)

// TColumn addresses a family, or a single column when Qualifier is set.
type TColumn struct {
	Family    []byte
	Qualifier []byte
	Timestamp *int64
}

func (p *TColumn) Write(ctx context.Context, oprot thrift.TProtocol) error {
	return writeStruct(ctx, oprot, "TColumn", func() error {
		if err := writeBinary(ctx, oprot, "family", 1, p.Family); err != nil {
			return err
		}
		if p.Qualifier != nil {
			if err := writeBinary(ctx, oprot, "qualifier", 2, p.Qualifier); err != nil {
				return err
			}
		}
		if p.Timestamp != nil {
			return writeI64(ctx, oprot, "timestamp", 3, *p.Timestamp)
		}
		return nil
	})
}

func (p *TColumn) Read(ctx context.Context, iprot thrift.TProtocol) (err error) {
	return readStruct(ctx, iprot, "TColumn", func(id int16, typ thrift.TType) (bool, error) {
		switch {
		case id == 1 && typ == thrift.STRING:
			p.Family, err = iprot.ReadBinary(ctx)
		case id == 2 && typ == thrift.STRING:
			p.Qualifier, err = iprot.ReadBinary(ctx)
		case id == 3 && typ == thrift.I64:
			p.Timestamp, err = readI64Ptr(ctx, iprot)
		default:
			return false, nil
		}
		return true, err
	})
}

func (p *TColumn) String() string {
	if p == nil {
		return "<nil>"
	}
	return fmt.Sprintf("TColumn(%+v)", *p)
}

// TColumnValue is one cell of a put or of a result.
type TColumnValue struct {
	Family    []byte
	Qualifier []byte
	Value     []byte
	Timestamp *int64
}

func (p *TColumnValue) GetValue() []byte {
	return p.Value
}

func (p *TColumnValue) GetTimestamp() int64 {
	if p.Timestamp == nil {
		return 0
	}
	return *p.Timestamp
}

func (p *TColumnValue) Write(ctx context.Context, oprot thrift.TProtocol) error {
	return writeStruct(ctx, oprot, "TColumnValue", func() error {
		if err := writeBinary(ctx, oprot, "family", 1, p.Family); err != nil {
			return err
		}
		if err := writeBinary(ctx, oprot, "qualifier", 2, p.Qualifier); err != nil {
			return err
		}
		if err := writeBinary(ctx, oprot, "value", 3, p.Value); err != nil {
			return err
		}
		if p.Timestamp != nil {
			return writeI64(ctx, oprot, "timestamp", 4, *p.Timestamp)
		}
		return nil
	})
}

func (p *TColumnValue) Read(ctx context.Context, iprot thrift.TProtocol) (err error) {
	return readStruct(ctx, iprot, "TColumnValue", func(id int16, typ thrift.TType) (bool, error) {
		switch {
		case id == 1 && typ == thrift.STRING:
			p.Family, err = iprot.ReadBinary(ctx)
		case id == 2 && typ == thrift.STRING:
			p.Qualifier, err = iprot.ReadBinary(ctx)
		case id == 3 && typ == thrift.STRING:
			p.Value, err = iprot.ReadBinary(ctx)
		case id == 4 && typ == thrift.I64:
			p.Timestamp, err = readI64Ptr(ctx, iprot)
		default:
			return false, nil
		}
		return true, err
	})
}

func (p *TColumnValue) String() string {
	if p == nil {
		return "<nil>"
	}
	return fmt.Sprintf("TColumnValue(%s:%s=%q)", p.Family, p.Qualifier, p.Value)
}

// TResult_ is a row returned by get or scan. The trailing underscore mirrors
// the name the thrift compiler gives it.
type TResult_ struct {
	Row          []byte
	ColumnValues []*TColumnValue
}

func (p *TResult_) GetRow() []byte {
	return p.Row
}

func (p *TResult_) Write(ctx context.Context, oprot thrift.TProtocol) error {
	return writeStruct(ctx, oprot, "TResult", func() error {
		if p.Row != nil {
			if err := writeBinary(ctx, oprot, "row", 1, p.Row); err != nil {
				return err
			}
		}
		return writeList(ctx, oprot, "columnValues", 2, thrift.STRUCT, len(p.ColumnValues), func(i int) error {
			return p.ColumnValues[i].Write(ctx, oprot)
		})
	})
}

func (p *TResult_) Read(ctx context.Context, iprot thrift.TProtocol) (err error) {
	return readStruct(ctx, iprot, "TResult", func(id int16, typ thrift.TType) (bool, error) {
		switch {
		case id == 1 && typ == thrift.STRING:
			p.Row, err = iprot.ReadBinary(ctx)
		case id == 2 && typ == thrift.LIST:
			err = readList(ctx, iprot, func() error {
				cv := &TColumnValue{}
				if err := cv.Read(ctx, iprot); err != nil {
					return err
				}
				p.ColumnValues = append(p.ColumnValues, cv)
				return nil
			})
		default:
			return false, nil
		}
		return true, err
	})
}

// TPut writes ColumnValues under Row.
type TPut struct {
	Row          []byte
	ColumnValues []*TColumnValue
	Timestamp    *int64
}

func (p *TPut) Write(ctx context.Context, oprot thrift.TProtocol) error {
	return writeStruct(ctx, oprot, "TPut", func() error {
		if err := writeBinary(ctx, oprot, "row", 1, p.Row); err != nil {
			return err
		}
		if err := writeList(ctx, oprot, "columnValues", 2, thrift.STRUCT, len(p.ColumnValues), func(i int) error {
			return p.ColumnValues[i].Write(ctx, oprot)
		}); err != nil {
			return err
		}
		if p.Timestamp != nil {
			return writeI64(ctx, oprot, "timestamp", 3, *p.Timestamp)
		}
		return nil
	})
}

func (p *TPut) Read(ctx context.Context, iprot thrift.TProtocol) (err error) {
	return readStruct(ctx, iprot, "TPut", func(id int16, typ thrift.TType) (bool, error) {
		switch {
		case id == 1 && typ == thrift.STRING:
			p.Row, err = iprot.ReadBinary(ctx)
		case id == 2 && typ == thrift.LIST:
			err = readList(ctx, iprot, func() error {
				cv := &TColumnValue{}
				if err := cv.Read(ctx, iprot); err != nil {
					return err
				}
				p.ColumnValues = append(p.ColumnValues, cv)
				return nil
			})
		case id == 3 && typ == thrift.I64:
			p.Timestamp, err = readI64Ptr(ctx, iprot)
		default:
			return false, nil
		}
		return true, err
	})
}

type TDeleteType int64

const (
	TDeleteType_DELETE_COLUMN         TDeleteType = 0
	TDeleteType_DELETE_COLUMNS        TDeleteType = 1
	TDeleteType_DELETE_FAMILY         TDeleteType = 2
	TDeleteType_DELETE_FAMILY_VERSION TDeleteType = 3
)

const TDelete_DeleteType_DEFAULT TDeleteType = TDeleteType_DELETE_COLUMNS

// TDelete removes cells of Row. With no Columns the whole row goes.
type TDelete struct {
	Row        []byte
	Columns    []*TColumn
	Timestamp  *int64
	DeleteType TDeleteType
}

func NewTDelete() *TDelete {
	return &TDelete{DeleteType: TDelete_DeleteType_DEFAULT}
}

func (p *TDelete) Write(ctx context.Context, oprot thrift.TProtocol) error {
	return writeStruct(ctx, oprot, "TDelete", func() error {
		if err := writeBinary(ctx, oprot, "row", 1, p.Row); err != nil {
			return err
		}
		if p.Columns != nil {
			if err := writeList(ctx, oprot, "columns", 2, thrift.STRUCT, len(p.Columns), func(i int) error {
				return p.Columns[i].Write(ctx, oprot)
			}); err != nil {
				return err
			}
		}
		if p.Timestamp != nil {
			if err := writeI64(ctx, oprot, "timestamp", 3, *p.Timestamp); err != nil {
				return err
			}
		}
		if p.DeleteType != TDelete_DeleteType_DEFAULT {
			return writeI32(ctx, oprot, "deleteType", 4, int32(p.DeleteType))
		}
		return nil
	})
}

func (p *TDelete) Read(ctx context.Context, iprot thrift.TProtocol) (err error) {
	p.DeleteType = TDelete_DeleteType_DEFAULT
	return readStruct(ctx, iprot, "TDelete", func(id int16, typ thrift.TType) (bool, error) {
		switch {
		case id == 1 && typ == thrift.STRING:
			p.Row, err = iprot.ReadBinary(ctx)
		case id == 2 && typ == thrift.LIST:
			err = readList(ctx, iprot, func() error {
				col := &TColumn{}
				if err := col.Read(ctx, iprot); err != nil {
					return err
				}
				p.Columns = append(p.Columns, col)
				return nil
			})
		case id == 3 && typ == thrift.I64:
			p.Timestamp, err = readI64Ptr(ctx, iprot)
		case id == 4 && typ == thrift.I32:
			var v int32
			v, err = iprot.ReadI32(ctx)
			p.DeleteType = TDeleteType(v)
		default:
			return false, nil
		}
		return true, err
	})
}

const TScan_MaxVersions_DEFAULT int32 = 1

// TScan describes a range scan. StartRow is inclusive, StopRow exclusive.
type TScan struct {
	StartRow     []byte
	StopRow      []byte
	Columns      []*TColumn
	Caching      *int32
	MaxVersions  int32
	FilterString []byte
	BatchSize    *int32
	Limit        *int32
}

func NewTScan() *TScan {
	return &TScan{MaxVersions: TScan_MaxVersions_DEFAULT}
}

func (p *TScan) GetMaxVersions() int32 {
	if p.MaxVersions == 0 {
		return TScan_MaxVersions_DEFAULT
	}
	return p.MaxVersions
}

func (p *TScan) Write(ctx context.Context, oprot thrift.TProtocol) error {
	return writeStruct(ctx, oprot, "TScan", func() error {
		if p.StartRow != nil {
			if err := writeBinary(ctx, oprot, "startRow", 1, p.StartRow); err != nil {
				return err
			}
		}
		if p.StopRow != nil {
			if err := writeBinary(ctx, oprot, "stopRow", 2, p.StopRow); err != nil {
				return err
			}
		}
		if p.Columns != nil {
			if err := writeList(ctx, oprot, "columns", 3, thrift.STRUCT, len(p.Columns), func(i int) error {
				return p.Columns[i].Write(ctx, oprot)
			}); err != nil {
				return err
			}
		}
		if p.Caching != nil {
			if err := writeI32(ctx, oprot, "caching", 4, *p.Caching); err != nil {
				return err
			}
		}
		if v := p.GetMaxVersions(); v != TScan_MaxVersions_DEFAULT {
			if err := writeI32(ctx, oprot, "maxVersions", 5, v); err != nil {
				return err
			}
		}
		if p.FilterString != nil {
			if err := writeBinary(ctx, oprot, "filterString", 7, p.FilterString); err != nil {
				return err
			}
		}
		if p.BatchSize != nil {
			if err := writeI32(ctx, oprot, "batchSize", 8, *p.BatchSize); err != nil {
				return err
			}
		}
		if p.Limit != nil {
			return writeI32(ctx, oprot, "limit", 15, *p.Limit)
		}
		return nil
	})
}

func (p *TScan) Read(ctx context.Context, iprot thrift.TProtocol) (err error) {
	p.MaxVersions = TScan_MaxVersions_DEFAULT
	return readStruct(ctx, iprot, "TScan", func(id int16, typ thrift.TType) (bool, error) {
		switch {
		case id == 1 && typ == thrift.STRING:
			p.StartRow, err = iprot.ReadBinary(ctx)
		case id == 2 && typ == thrift.STRING:
			p.StopRow, err = iprot.ReadBinary(ctx)
		case id == 3 && typ == thrift.LIST:
			err = readList(ctx, iprot, func() error {
				col := &TColumn{}
				if err := col.Read(ctx, iprot); err != nil {
					return err
				}
				p.Columns = append(p.Columns, col)
				return nil
			})
		case id == 4 && typ == thrift.I32:
			p.Caching, err = readI32Ptr(ctx, iprot)
		case id == 5 && typ == thrift.I32:
			p.MaxVersions, err = iprot.ReadI32(ctx)
		case id == 7 && typ == thrift.STRING:
			p.FilterString, err = iprot.ReadBinary(ctx)
		case id == 8 && typ == thrift.I32:
			p.BatchSize, err = readI32Ptr(ctx, iprot)
		case id == 15 && typ == thrift.I32:
			p.Limit, err = readI32Ptr(ctx, iprot)
		default:
			return false, nil
		}
		return true, err
	})
}

// TTableName is a namespace-qualified table name. A nil Ns means the
// default namespace.
type TTableName struct {
	Ns        []byte
	Qualifier []byte
}

func (p *TTableName) Write(ctx context.Context, oprot thrift.TProtocol) error {
	return writeStruct(ctx, oprot, "TTableName", func() error {
		if p.Ns != nil {
			if err := writeBinary(ctx, oprot, "ns", 1, p.Ns); err != nil {
				return err
			}
		}
		return writeBinary(ctx, oprot, "qualifier", 2, p.Qualifier)
	})
}

func (p *TTableName) Read(ctx context.Context, iprot thrift.TProtocol) (err error) {
	return readStruct(ctx, iprot, "TTableName", func(id int16, typ thrift.TType) (bool, error) {
		switch {
		case id == 1 && typ == thrift.STRING:
			p.Ns, err = iprot.ReadBinary(ctx)
		case id == 2 && typ == thrift.STRING:
			p.Qualifier, err = iprot.ReadBinary(ctx)
		default:
			return false, nil
		}
		return true, err
	})
}

func (p *TTableName) String() string {
	if p == nil {
		return "<nil>"
	}
	if len(p.Ns) == 0 {
		return string(p.Qualifier)
	}
	return fmt.Sprintf("%s:%s", p.Ns, p.Qualifier)
}

type TBloomFilterType int64

const (
	TBloomFilterType_NONE                   TBloomFilterType = 0
	TBloomFilterType_ROW                    TBloomFilterType = 1
	TBloomFilterType_ROWCOL                 TBloomFilterType = 2
	TBloomFilterType_ROWPREFIX_FIXED_LENGTH TBloomFilterType = 3
)

type TCompressionAlgorithm int64

const (
	TCompressionAlgorithm_LZO    TCompressionAlgorithm = 0
	TCompressionAlgorithm_GZ     TCompressionAlgorithm = 1
	TCompressionAlgorithm_NONE   TCompressionAlgorithm = 2
	TCompressionAlgorithm_SNAPPY TCompressionAlgorithm = 3
	TCompressionAlgorithm_LZ4    TCompressionAlgorithm = 4
	TCompressionAlgorithm_BZIP2  TCompressionAlgorithm = 5
	TCompressionAlgorithm_ZSTD   TCompressionAlgorithm = 6
)

type TDataBlockEncoding int64

const (
	TDataBlockEncoding_NONE         TDataBlockEncoding = 0
	TDataBlockEncoding_PREFIX       TDataBlockEncoding = 2
	TDataBlockEncoding_DIFF         TDataBlockEncoding = 3
	TDataBlockEncoding_FAST_DIFF    TDataBlockEncoding = 4
	TDataBlockEncoding_ROW_INDEX_V1 TDataBlockEncoding = 7
)

type TKeepDeletedCells int64

const (
	TKeepDeletedCells_FALSE TKeepDeletedCells = 0
	TKeepDeletedCells_TRUE  TKeepDeletedCells = 1
	TKeepDeletedCells_TTL   TKeepDeletedCells = 2
)

type TDurability int64

const (
	TDurability_USE_DEFAULT TDurability = 0
	TDurability_SKIP_WAL    TDurability = 1
	TDurability_ASYNC_WAL   TDurability = 2
	TDurability_SYNC_WAL    TDurability = 3
	TDurability_FSYNC_WAL   TDurability = 4
)

func enumPtr(ctx context.Context, p thrift.TProtocol) (*int64, error) {
	v, err := p.ReadI32(ctx)
	if err != nil {
		return nil, err
	}
	n := int64(v)
	return &n, nil
}

// TColumnFamilyDescriptor carries every property of a column family. Nil
// fields leave the server default in place.
type TColumnFamilyDescriptor struct {
	Name                []byte
	Attributes          map[string][]byte
	Configuration       map[string]string
	BlockSize           *int32
	BloomnFilterType    *TBloomFilterType
	CompressionType     *TCompressionAlgorithm
	DfsReplication      *int16
	DataBlockEncoding   *TDataBlockEncoding
	KeepDeletedCells    *TKeepDeletedCells
	MaxVersions         *int32
	MinVersions         *int32
	Scope               *int32
	TimeToLive          *int32
	BlockCacheEnabled   *bool
	CacheBloomsOnWrite  *bool
	CacheDataOnWrite    *bool
	CacheIndexesOnWrite *bool
	CompressTags        *bool
	EvictBlocksOnClose  *bool
	InMemory            *bool
}

type i32Field struct {
	name string
	id   int16
	v    *int32
}

type boolField struct {
	name string
	id   int16
	v    *bool
}

func enumField(name string, id int16, v *int64) i32Field {
	if v == nil {
		return i32Field{name, id, nil}
	}
	n := int32(*v)
	return i32Field{name, id, &n}
}

func (p *TColumnFamilyDescriptor) Write(ctx context.Context, oprot thrift.TProtocol) error {
	return writeStruct(ctx, oprot, "TColumnFamilyDescriptor", func() error {
		if err := writeBinary(ctx, oprot, "name", 1, p.Name); err != nil {
			return err
		}
		if p.Attributes != nil {
			if err := writeBinaryMap(ctx, oprot, "attributes", 2, p.Attributes); err != nil {
				return err
			}
		}
		if p.Configuration != nil {
			if err := writeStringMap(ctx, oprot, "configuration", 3, p.Configuration); err != nil {
				return err
			}
		}
		if err := writeI32Fields(ctx, oprot,
			i32Field{"blockSize", 4, p.BlockSize},
			enumField("bloomnFilterType", 5, (*int64)(p.BloomnFilterType)),
			enumField("compressionType", 6, (*int64)(p.CompressionType)),
		); err != nil {
			return err
		}
		if p.DfsReplication != nil {
			if err := writeI16(ctx, oprot, "dfsReplication", 7, *p.DfsReplication); err != nil {
				return err
			}
		}
		if err := writeI32Fields(ctx, oprot,
			enumField("dataBlockEncoding", 8, (*int64)(p.DataBlockEncoding)),
			enumField("keepDeletedCells", 9, (*int64)(p.KeepDeletedCells)),
			i32Field{"maxVersions", 10, p.MaxVersions},
			i32Field{"minVersions", 11, p.MinVersions},
			i32Field{"scope", 12, p.Scope},
			i32Field{"timeToLive", 13, p.TimeToLive},
		); err != nil {
			return err
		}
		for _, f := range []boolField{
			{"blockCacheEnabled", 14, p.BlockCacheEnabled},
			{"cacheBloomsOnWrite", 15, p.CacheBloomsOnWrite},
			{"cacheDataOnWrite", 16, p.CacheDataOnWrite},
			{"cacheIndexesOnWrite", 17, p.CacheIndexesOnWrite},
			{"compressTags", 18, p.CompressTags},
			{"evictBlocksOnClose", 19, p.EvictBlocksOnClose},
			{"inMemory", 20, p.InMemory},
		} {
			if f.v == nil {
				continue
			}
			if err := writeBool(ctx, oprot, f.name, f.id, *f.v); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeI32Fields(ctx context.Context, oprot thrift.TProtocol, fields ...i32Field) error {
	for _, f := range fields {
		if f.v == nil {
			continue
		}
		if err := writeI32(ctx, oprot, f.name, f.id, *f.v); err != nil {
			return err
		}
	}
	return nil
}

func (p *TColumnFamilyDescriptor) Read(ctx context.Context, iprot thrift.TProtocol) (err error) {
	return readStruct(ctx, iprot, "TColumnFamilyDescriptor", func(id int16, typ thrift.TType) (bool, error) {
		var e *int64
		switch {
		case id == 1 && typ == thrift.STRING:
			p.Name, err = iprot.ReadBinary(ctx)
		case id == 2 && typ == thrift.MAP:
			p.Attributes, err = readBinaryMap(ctx, iprot)
		case id == 3 && typ == thrift.MAP:
			p.Configuration, err = readStringMap(ctx, iprot)
		case id == 4 && typ == thrift.I32:
			p.BlockSize, err = readI32Ptr(ctx, iprot)
		case id == 5 && typ == thrift.I32:
			e, err = enumPtr(ctx, iprot)
			p.BloomnFilterType = (*TBloomFilterType)(e)
		case id == 6 && typ == thrift.I32:
			e, err = enumPtr(ctx, iprot)
			p.CompressionType = (*TCompressionAlgorithm)(e)
		case id == 7 && typ == thrift.I16:
			p.DfsReplication, err = readI16Ptr(ctx, iprot)
		case id == 8 && typ == thrift.I32:
			e, err = enumPtr(ctx, iprot)
			p.DataBlockEncoding = (*TDataBlockEncoding)(e)
		case id == 9 && typ == thrift.I32:
			e, err = enumPtr(ctx, iprot)
			p.KeepDeletedCells = (*TKeepDeletedCells)(e)
		case id == 10 && typ == thrift.I32:
			p.MaxVersions, err = readI32Ptr(ctx, iprot)
		case id == 11 && typ == thrift.I32:
			p.MinVersions, err = readI32Ptr(ctx, iprot)
		case id == 12 && typ == thrift.I32:
			p.Scope, err = readI32Ptr(ctx, iprot)
		case id == 13 && typ == thrift.I32:
			p.TimeToLive, err = readI32Ptr(ctx, iprot)
		case id == 14 && typ == thrift.BOOL:
			p.BlockCacheEnabled, err = readBoolPtr(ctx, iprot)
		case id == 15 && typ == thrift.BOOL:
			p.CacheBloomsOnWrite, err = readBoolPtr(ctx, iprot)
		case id == 16 && typ == thrift.BOOL:
			p.CacheDataOnWrite, err = readBoolPtr(ctx, iprot)
		case id == 17 && typ == thrift.BOOL:
			p.CacheIndexesOnWrite, err = readBoolPtr(ctx, iprot)
		case id == 18 && typ == thrift.BOOL:
			p.CompressTags, err = readBoolPtr(ctx, iprot)
		case id == 19 && typ == thrift.BOOL:
			p.EvictBlocksOnClose, err = readBoolPtr(ctx, iprot)
		case id == 20 && typ == thrift.BOOL:
			p.InMemory, err = readBoolPtr(ctx, iprot)
		default:
			return false, nil
		}
		return true, err
	})
}

type TTableDescriptor struct {
	TableName  *TTableName
	Columns    []*TColumnFamilyDescriptor
	Attributes map[string][]byte
	Durability *TDurability
}

func (p *TTableDescriptor) Write(ctx context.Context, oprot thrift.TProtocol) error {
	return writeStruct(ctx, oprot, "TTableDescriptor", func() error {
		if p.TableName == nil {
			return thrift.NewTProtocolExceptionWithType(thrift.INVALID_DATA, fmt.Errorf("required field tableName is not set"))
		}
		if err := writeStructField(ctx, oprot, "tableName", 1, p.TableName); err != nil {
			return err
		}
		if p.Columns != nil {
			if err := writeList(ctx, oprot, "columns", 2, thrift.STRUCT, len(p.Columns), func(i int) error {
				return p.Columns[i].Write(ctx, oprot)
			}); err != nil {
				return err
			}
		}
		if p.Attributes != nil {
			if err := writeBinaryMap(ctx, oprot, "attributes", 3, p.Attributes); err != nil {
				return err
			}
		}
		if p.Durability != nil {
			return writeI32(ctx, oprot, "durability", 4, int32(*p.Durability))
		}
		return nil
	})
}

func (p *TTableDescriptor) Read(ctx context.Context, iprot thrift.TProtocol) (err error) {
	return readStruct(ctx, iprot, "TTableDescriptor", func(id int16, typ thrift.TType) (bool, error) {
		switch {
		case id == 1 && typ == thrift.STRUCT:
			p.TableName = &TTableName{}
			err = p.TableName.Read(ctx, iprot)
		case id == 2 && typ == thrift.LIST:
			err = readList(ctx, iprot, func() error {
				cf := &TColumnFamilyDescriptor{}
				if err := cf.Read(ctx, iprot); err != nil {
					return err
				}
				p.Columns = append(p.Columns, cf)
				return nil
			})
		case id == 3 && typ == thrift.MAP:
			p.Attributes, err = readBinaryMap(ctx, iprot)
		case id == 4 && typ == thrift.I32:
			var e *int64
			e, err = enumPtr(ctx, iprot)
			p.Durability = (*TDurability)(e)
		default:
			return false, nil
		}
		return true, err
	})
}

// TIOError is raised by the gateway for any failure of the underlying
// HBase call, the Java exception text ends up in Message.
type TIOError struct {
	Message  *string
	CanRetry *bool
}

func (p *TIOError) GetMessage() string {
	if p.Message == nil {
		return ""
	}
	return *p.Message
}

func (p *TIOError) Error() string {
	return fmt.Sprintf("TIOError(%s)", p.GetMessage())
}

func (p *TIOError) Write(ctx context.Context, oprot thrift.TProtocol) error {
	return writeStruct(ctx, oprot, "TIOError", func() error {
		if p.Message != nil {
			if err := writeString(ctx, oprot, "message", 1, *p.Message); err != nil {
				return err
			}
		}
		if p.CanRetry != nil {
			return writeBool(ctx, oprot, "canRetry", 2, *p.CanRetry)
		}
		return nil
	})
}

func (p *TIOError) Read(ctx context.Context, iprot thrift.TProtocol) (err error) {
	return readStruct(ctx, iprot, "TIOError", func(id int16, typ thrift.TType) (bool, error) {
		switch {
		case id == 1 && typ == thrift.STRING:
			var s string
			s, err = iprot.ReadString(ctx)
			p.Message = &s
		case id == 2 && typ == thrift.BOOL:
			var b bool
			b, err = iprot.ReadBool(ctx)
			p.CanRetry = &b
		default:
			return false, nil
		}
		return true, err
	})
}

// TIllegalArgument is raised when the request itself is malformed, for
// example an unparsable filter string.
type TIllegalArgument struct {
	Message *string
}

func (p *TIllegalArgument) GetMessage() string {
	if p.Message == nil {
		return ""
	}
	return *p.Message
}

func (p *TIllegalArgument) Error() string {
	return fmt.Sprintf("TIllegalArgument(%s)", p.GetMessage())
}

func (p *TIllegalArgument) Write(ctx context.Context, oprot thrift.TProtocol) error {
	return writeStruct(ctx, oprot, "TIllegalArgument", func() error {
		if p.Message != nil {
			return writeString(ctx, oprot, "message", 1, *p.Message)
		}
		return nil
	})
}

func (p *TIllegalArgument) Read(ctx context.Context, iprot thrift.TProtocol) (err error) {
	return readStruct(ctx, iprot, "TIllegalArgument", func(id int16, typ thrift.TType) (bool, error) {
		if id == 1 && typ == thrift.STRING {
			var s string
			s, err = iprot.ReadString(ctx)
			p.Message = &s
			return true, err
		}
		return false, nil
	})
}

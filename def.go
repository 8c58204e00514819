package hbaseops

import (
	"strings"

	"github.com/challenai/hbaseops/thrift/hbase"
	"github.com/pkg/errors"
)

const defaultNamespace = "default"

// TableName identifies a table, Namespace is empty for the default namespace.
type TableName struct {
	Namespace string
	Name      string
}

// ParseTableName accepts "ns:name" or "name".
func ParseTableName(s string) TableName {
	if i := strings.IndexByte(s, ':'); i >= 0 {
		ns := s[:i]
		if ns == defaultNamespace {
			ns = ""
		}
		return TableName{Namespace: ns, Name: s[i+1:]}
	}
	return TableName{Name: s}
}

func (t TableName) String() string {
	if t.Namespace == "" || t.Namespace == defaultNamespace {
		return t.Name
	}
	return t.Namespace + ":" + t.Name
}

func (t TableName) thrift() *hbase.TTableName {
	tn := &hbase.TTableName{Qualifier: []byte(t.Name)}
	if t.Namespace != "" {
		tn.Ns = []byte(t.Namespace)
	}
	return tn
}

func tableNameFromThrift(tn *hbase.TTableName) TableName {
	return ParseTableName(tn.String())
}

// Cell is one (family, qualifier) value of a row.
type Cell struct {
	Row       []byte
	Family    []byte
	Qualifier []byte
	Value     []byte
	Timestamp int64
}

// Row is a row key with its cells in store order.
type Row struct {
	Key   []byte
	Cells []Cell
}

// Value returns the cell value of family:qualifier.
func (r Row) Value(family, qualifier string) ([]byte, bool) {
	for _, c := range r.Cells {
		if string(c.Family) == family && string(c.Qualifier) == qualifier {
			return c.Value, true
		}
	}
	return nil, false
}

func rowFromResult(res *hbase.TResult_) Row {
	row := Row{Key: res.GetRow(), Cells: make([]Cell, 0, len(res.ColumnValues))}
	for _, cv := range res.ColumnValues {
		row.Cells = append(row.Cells, Cell{
			Row:       res.GetRow(),
			Family:    cv.Family,
			Qualifier: cv.Qualifier,
			Value:     cv.GetValue(),
			Timestamp: cv.GetTimestamp(),
		})
	}
	return row
}

func (r Row) put() *hbase.TPut {
	put := &hbase.TPut{Row: r.Key, ColumnValues: make([]*hbase.TColumnValue, 0, len(r.Cells))}
	for _, c := range r.Cells {
		cv := &hbase.TColumnValue{Family: c.Family, Qualifier: c.Qualifier, Value: c.Value}
		if c.Timestamp != 0 {
			ts := c.Timestamp
			cv.Timestamp = &ts
		}
		put.ColumnValues = append(put.ColumnValues, cv)
	}
	return put
}

// ColumnFamily describes a column family. Zero values leave the store's
// default in place.
type ColumnFamily struct {
	Name        string
	MaxVersions int32
	MinVersions int32
	TimeToLive  int32 // seconds
	BlockSize   int32
	InMemory    bool
	// Compression is an HBase algorithm name: NONE, GZ, LZO, SNAPPY, LZ4,
	// BZIP2 or ZSTD.
	Compression string
	// BloomFilter is NONE, ROW, ROWCOL or ROWPREFIX_FIXED_LENGTH.
	BloomFilter string
	// Scope is the replication scope, 1 replicates the family.
	Scope         int32
	Attributes    map[string][]byte
	Configuration map[string]string
}

var compressions = map[string]hbase.TCompressionAlgorithm{
	"LZO":    hbase.TCompressionAlgorithm_LZO,
	"GZ":     hbase.TCompressionAlgorithm_GZ,
	"NONE":   hbase.TCompressionAlgorithm_NONE,
	"SNAPPY": hbase.TCompressionAlgorithm_SNAPPY,
	"LZ4":    hbase.TCompressionAlgorithm_LZ4,
	"BZIP2":  hbase.TCompressionAlgorithm_BZIP2,
	"ZSTD":   hbase.TCompressionAlgorithm_ZSTD,
}

var blooms = map[string]hbase.TBloomFilterType{
	"NONE":                   hbase.TBloomFilterType_NONE,
	"ROW":                    hbase.TBloomFilterType_ROW,
	"ROWCOL":                 hbase.TBloomFilterType_ROWCOL,
	"ROWPREFIX_FIXED_LENGTH": hbase.TBloomFilterType_ROWPREFIX_FIXED_LENGTH,
}

func int32Ptr(v int32) *int32 {
	if v == 0 {
		return nil
	}
	return &v
}

func (cf ColumnFamily) validate() error {
	if cf.Name == "" {
		return errors.Wrap(ErrMalformedColumn, "empty family name")
	}
	if _, ok := compressions[strings.ToUpper(cf.Compression)]; cf.Compression != "" && !ok {
		return errors.Errorf("family %s: unknown compression %q", cf.Name, cf.Compression)
	}
	if _, ok := blooms[strings.ToUpper(cf.BloomFilter)]; cf.BloomFilter != "" && !ok {
		return errors.Errorf("family %s: unknown bloom filter %q", cf.Name, cf.BloomFilter)
	}
	return nil
}

func (cf ColumnFamily) thrift() *hbase.TColumnFamilyDescriptor {
	d := &hbase.TColumnFamilyDescriptor{
		Name:          []byte(cf.Name),
		Attributes:    cf.Attributes,
		Configuration: cf.Configuration,
		MaxVersions:   int32Ptr(cf.MaxVersions),
		MinVersions:   int32Ptr(cf.MinVersions),
		TimeToLive:    int32Ptr(cf.TimeToLive),
		BlockSize:     int32Ptr(cf.BlockSize),
		Scope:         int32Ptr(cf.Scope),
	}
	if cf.InMemory {
		inMemory := true
		d.InMemory = &inMemory
	}
	if c, ok := compressions[strings.ToUpper(cf.Compression)]; ok {
		d.CompressionType = &c
	}
	if b, ok := blooms[strings.ToUpper(cf.BloomFilter)]; ok {
		d.BloomnFilterType = &b
	}
	return d
}

func columnFamilyFromThrift(d *hbase.TColumnFamilyDescriptor) ColumnFamily {
	cf := ColumnFamily{
		Name:          string(d.Name),
		Attributes:    d.Attributes,
		Configuration: d.Configuration,
	}
	for _, f := range []struct {
		dst *int32
		src *int32
	}{
		{&cf.MaxVersions, d.MaxVersions},
		{&cf.MinVersions, d.MinVersions},
		{&cf.TimeToLive, d.TimeToLive},
		{&cf.BlockSize, d.BlockSize},
		{&cf.Scope, d.Scope},
	} {
		if f.src != nil {
			*f.dst = *f.src
		}
	}
	if d.InMemory != nil {
		cf.InMemory = *d.InMemory
	}
	if d.CompressionType != nil {
		for name, c := range compressions {
			if c == *d.CompressionType {
				cf.Compression = name
			}
		}
	}
	if d.BloomnFilterType != nil {
		for name, b := range blooms {
			if b == *d.BloomnFilterType {
				cf.BloomFilter = name
			}
		}
	}
	return cf
}

// TableDescriptor is the schema of a table.
type TableDescriptor struct {
	Name       TableName
	Families   []ColumnFamily
	Attributes map[string][]byte
}

func (d TableDescriptor) Family(name string) (ColumnFamily, bool) {
	for _, cf := range d.Families {
		if cf.Name == name {
			return cf, true
		}
	}
	return ColumnFamily{}, false
}

func (d TableDescriptor) FamilyNames() []string {
	names := make([]string, 0, len(d.Families))
	for _, cf := range d.Families {
		names = append(names, cf.Name)
	}
	return names
}

func (d TableDescriptor) thrift() *hbase.TTableDescriptor {
	td := &hbase.TTableDescriptor{TableName: d.Name.thrift(), Attributes: d.Attributes}
	for _, cf := range d.Families {
		td.Columns = append(td.Columns, cf.thrift())
	}
	return td
}

func tableDescriptorFromThrift(td *hbase.TTableDescriptor) TableDescriptor {
	d := TableDescriptor{Attributes: td.Attributes}
	if td.TableName != nil {
		d.Name = tableNameFromThrift(td.TableName)
	}
	for _, cf := range td.Columns {
		d.Families = append(d.Families, columnFamilyFromThrift(cf))
	}
	return d
}

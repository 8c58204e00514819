// Package hbasemock is an in-memory stand-in for an HBase Thrift2 gateway.
// It keeps tables, families and cells, enforces enabled/disabled state the
// way HBase does and reports failures with the gateway's exception texts.
package hbasemock

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/apache/thrift/lib/go/thrift"
	"github.com/challenai/hbaseops/thrift/hbase"
)

const firstKeyOnly = "FirstKeyOnlyFilter()"

type cellKey struct {
	family, qualifier string
}

type table struct {
	name    string
	desc    *hbase.TTableDescriptor
	enabled bool
	rows    map[string]map[cellKey][]byte
}

func (t *table) hasFamily(name []byte) bool {
	for _, f := range t.desc.Columns {
		if bytes.Equal(f.Name, name) {
			return true
		}
	}
	return false
}

// Store holds the tables of one fake cluster. It is safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	tables   map[string]*table
	failures map[string][]error
	openErr  error
	opened   int
	closed   int
	calls    []string
}

func NewStore() *Store {
	return &Store{
		tables:   map[string]*table{},
		failures: map[string][]error{},
	}
}

// FailNext makes the next call of method (thrift name, e.g. "enableTable")
// return err instead of running.
func (s *Store) FailNext(method string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method] = append(s.failures[method], err)
}

// FailOpen makes every Open fail with err until reset with nil.
func (s *Store) FailOpen(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.openErr = err
}

// Conns reports how many connections were opened and closed.
func (s *Store) Conns() (opened, closed int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opened, s.closed
}

// Calls returns the thrift method names called so far, in order.
func (s *Store) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// Open returns a new connection to the store.
func (s *Store) Open(ctx context.Context) (*Conn, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.openErr != nil {
		return nil, s.openErr
	}
	s.opened++
	return &Conn{s: s}, nil
}

func ioError(format string, args ...interface{}) *hbase.TIOError {
	msg := fmt.Sprintf(format, args...)
	return &hbase.TIOError{Message: &msg}
}

func illegalArgument(format string, args ...interface{}) *hbase.TIllegalArgument {
	msg := fmt.Sprintf(format, args...)
	return &hbase.TIllegalArgument{Message: &msg}
}

func normalize(name string) string {
	if !strings.Contains(name, ":") {
		return "default:" + name
	}
	return name
}

func display(name string) string {
	return strings.TrimPrefix(name, "default:")
}

func thriftName(tn *hbase.TTableName) string {
	if len(tn.Ns) == 0 {
		return normalize(string(tn.Qualifier))
	}
	return string(tn.Ns) + ":" + string(tn.Qualifier)
}

// Conn is one connection. Calls after Close fail like a closed transport.
type Conn struct {
	s      *Store
	closed bool
}

var _ hbase.THBaseService = (*Conn)(nil)

func (c *Conn) Close() error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	if c.closed {
		return thrift.NewTTransportException(thrift.NOT_OPEN, "connection already closed")
	}
	c.closed = true
	c.s.closed++
	return nil
}

// begin locks the store and runs the common checks of every call. The caller
// must unlock s.mu when err is nil.
func (c *Conn) begin(ctx context.Context, method string) error {
	if err := ctx.Err(); err != nil {
		return thrift.NewTTransportExceptionFromError(err)
	}
	c.s.mu.Lock()
	if c.closed {
		c.s.mu.Unlock()
		return thrift.NewTTransportException(thrift.NOT_OPEN, "connection not open")
	}
	c.s.calls = append(c.s.calls, method)
	if errs := c.s.failures[method]; len(errs) > 0 {
		c.s.failures[method] = errs[1:]
		c.s.mu.Unlock()
		return errs[0]
	}
	return nil
}

func (c *Conn) lookup(name string) (*table, error) {
	t, ok := c.s.tables[name]
	if !ok {
		return nil, ioError("org.apache.hadoop.hbase.TableNotFoundException: %s", display(name))
	}
	return t, nil
}

func (c *Conn) lookupEnabled(name string) (*table, error) {
	t, err := c.lookup(name)
	if err != nil {
		return nil, err
	}
	if !t.enabled {
		return nil, ioError("org.apache.hadoop.hbase.TableNotEnabledException: %s is disabled", display(name))
	}
	return t, nil
}

func (c *Conn) put(t *table, tput *hbase.TPut) error {
	for _, cv := range tput.ColumnValues {
		if !t.hasFamily(cv.Family) {
			return ioError("org.apache.hadoop.hbase.regionserver.NoSuchColumnFamilyException: Column family %s does not exist in region of table %s", cv.Family, display(t.name))
		}
	}
	row := t.rows[string(tput.Row)]
	if row == nil {
		row = map[cellKey][]byte{}
		t.rows[string(tput.Row)] = row
	}
	for _, cv := range tput.ColumnValues {
		row[cellKey{string(cv.Family), string(cv.Qualifier)}] = append([]byte(nil), cv.Value...)
	}
	return nil
}

func (c *Conn) Put(ctx context.Context, tbl []byte, tput *hbase.TPut) error {
	if err := c.begin(ctx, "put"); err != nil {
		return err
	}
	defer c.s.mu.Unlock()
	t, err := c.lookupEnabled(normalize(string(tbl)))
	if err != nil {
		return err
	}
	return c.put(t, tput)
}

func (c *Conn) PutMultiple(ctx context.Context, tbl []byte, tputs []*hbase.TPut) error {
	if err := c.begin(ctx, "putMultiple"); err != nil {
		return err
	}
	defer c.s.mu.Unlock()
	t, err := c.lookupEnabled(normalize(string(tbl)))
	if err != nil {
		return err
	}
	for _, tput := range tputs {
		if err := c.put(t, tput); err != nil {
			return err
		}
	}
	return nil
}

func (c *Conn) DeleteSingle(ctx context.Context, tbl []byte, tdelete *hbase.TDelete) error {
	if err := c.begin(ctx, "deleteSingle"); err != nil {
		return err
	}
	defer c.s.mu.Unlock()
	t, err := c.lookupEnabled(normalize(string(tbl)))
	if err != nil {
		return err
	}
	row := t.rows[string(tdelete.Row)]
	if row == nil {
		return nil
	}
	if len(tdelete.Columns) == 0 {
		delete(t.rows, string(tdelete.Row))
		return nil
	}
	for _, col := range tdelete.Columns {
		for k := range row {
			if k.family == string(col.Family) && (col.Qualifier == nil || k.qualifier == string(col.Qualifier)) {
				delete(row, k)
			}
		}
	}
	if len(row) == 0 {
		delete(t.rows, string(tdelete.Row))
	}
	return nil
}

func wanted(cols []*hbase.TColumn, k cellKey) bool {
	if len(cols) == 0 {
		return true
	}
	for _, col := range cols {
		if string(col.Family) == k.family && (col.Qualifier == nil || string(col.Qualifier) == k.qualifier) {
			return true
		}
	}
	return false
}

func (c *Conn) GetScannerResults(ctx context.Context, tbl []byte, tscan *hbase.TScan, numRows int32) ([]*hbase.TResult_, error) {
	if err := c.begin(ctx, "getScannerResults"); err != nil {
		return nil, err
	}
	defer c.s.mu.Unlock()
	t, err := c.lookupEnabled(normalize(string(tbl)))
	if err != nil {
		return nil, err
	}
	filter := string(tscan.FilterString)
	if filter != "" && filter != firstKeyOnly {
		return nil, illegalArgument("unsupported filter %q", filter)
	}
	for _, col := range tscan.Columns {
		if !t.hasFamily(col.Family) {
			return nil, ioError("org.apache.hadoop.hbase.regionserver.NoSuchColumnFamilyException: Column family %s does not exist in region of table %s", col.Family, display(t.name))
		}
	}
	if numRows <= 0 {
		numRows = 1
	}

	keys := make([]string, 0, len(t.rows))
	for k := range t.rows {
		if len(tscan.StartRow) > 0 && k < string(tscan.StartRow) {
			continue
		}
		if len(tscan.StopRow) > 0 && k >= string(tscan.StopRow) {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var results []*hbase.TResult_
	for _, k := range keys {
		if int32(len(results)) == numRows {
			break
		}
		row := t.rows[k]
		cells := make([]cellKey, 0, len(row))
		for ck := range row {
			if wanted(tscan.Columns, ck) {
				cells = append(cells, ck)
			}
		}
		if len(cells) == 0 {
			continue
		}
		sort.Slice(cells, func(i, j int) bool {
			if cells[i].family != cells[j].family {
				return cells[i].family < cells[j].family
			}
			return cells[i].qualifier < cells[j].qualifier
		})
		if filter == firstKeyOnly {
			cells = cells[:1]
		}
		res := &hbase.TResult_{Row: []byte(k)}
		for _, ck := range cells {
			res.ColumnValues = append(res.ColumnValues, &hbase.TColumnValue{
				Family:    []byte(ck.family),
				Qualifier: []byte(ck.qualifier),
				Value:     append([]byte(nil), row[ck]...),
			})
		}
		results = append(results, res)
	}
	return results, nil
}

// clone deep copies desc by encoding it, so the store keeps every field the
// client sent and callers never share memory with it.
func clone(ctx context.Context, desc *hbase.TTableDescriptor) (*hbase.TTableDescriptor, error) {
	buf := thrift.NewTMemoryBuffer()
	proto := thrift.NewTBinaryProtocolConf(buf, nil)
	if err := desc.Write(ctx, proto); err != nil {
		return nil, err
	}
	out := &hbase.TTableDescriptor{}
	if err := out.Read(ctx, proto); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Conn) GetTableDescriptor(ctx context.Context, tn *hbase.TTableName) (*hbase.TTableDescriptor, error) {
	if err := c.begin(ctx, "getTableDescriptor"); err != nil {
		return nil, err
	}
	defer c.s.mu.Unlock()
	t, err := c.lookup(thriftName(tn))
	if err != nil {
		return nil, err
	}
	return clone(ctx, t.desc)
}

func (c *Conn) GetTableNamesByPattern(ctx context.Context, regex *string, includeSysTables bool) ([]*hbase.TTableName, error) {
	if err := c.begin(ctx, "getTableNamesByPattern"); err != nil {
		return nil, err
	}
	defer c.s.mu.Unlock()
	var re *regexp.Regexp
	if regex != nil {
		var err error
		if re, err = regexp.Compile(*regex); err != nil {
			return nil, ioError("java.util.regex.PatternSyntaxException: %v", err)
		}
	}
	names := make([]string, 0, len(c.s.tables))
	for name := range c.s.tables {
		if re != nil && !re.MatchString(display(name)) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]*hbase.TTableName, 0, len(names))
	for _, name := range names {
		i := strings.IndexByte(name, ':')
		out = append(out, &hbase.TTableName{Ns: []byte(name[:i]), Qualifier: []byte(name[i+1:])})
	}
	return out, nil
}

func (c *Conn) CreateTable(ctx context.Context, desc *hbase.TTableDescriptor, splitKeys [][]byte) error {
	if err := c.begin(ctx, "createTable"); err != nil {
		return err
	}
	defer c.s.mu.Unlock()
	name := thriftName(desc.TableName)
	if _, ok := c.s.tables[name]; ok {
		return ioError("org.apache.hadoop.hbase.TableExistsException: %s", display(name))
	}
	if len(desc.Columns) == 0 {
		return ioError("org.apache.hadoop.hbase.DoNotRetryIOException: Table should have at least one column family.")
	}
	stored, err := clone(ctx, desc)
	if err != nil {
		return err
	}
	c.s.tables[name] = &table{
		name:    name,
		desc:    stored,
		enabled: true,
		rows:    map[string]map[cellKey][]byte{},
	}
	return nil
}

func (c *Conn) DeleteTable(ctx context.Context, tn *hbase.TTableName) error {
	if err := c.begin(ctx, "deleteTable"); err != nil {
		return err
	}
	defer c.s.mu.Unlock()
	name := thriftName(tn)
	t, err := c.lookup(name)
	if err != nil {
		return err
	}
	if t.enabled {
		return ioError("org.apache.hadoop.hbase.TableNotDisabledException: %s", display(name))
	}
	delete(c.s.tables, name)
	return nil
}

func (c *Conn) TruncateTable(ctx context.Context, tn *hbase.TTableName, preserveSplits bool) error {
	if err := c.begin(ctx, "truncateTable"); err != nil {
		return err
	}
	defer c.s.mu.Unlock()
	t, err := c.lookup(thriftName(tn))
	if err != nil {
		return err
	}
	if t.enabled {
		return ioError("org.apache.hadoop.hbase.TableNotDisabledException: %s", display(t.name))
	}
	t.rows = map[string]map[cellKey][]byte{}
	t.enabled = true
	return nil
}

func (c *Conn) EnableTable(ctx context.Context, tn *hbase.TTableName) error {
	if err := c.begin(ctx, "enableTable"); err != nil {
		return err
	}
	defer c.s.mu.Unlock()
	t, err := c.lookup(thriftName(tn))
	if err != nil {
		return err
	}
	if t.enabled {
		return ioError("org.apache.hadoop.hbase.TableNotDisabledException: %s", display(t.name))
	}
	t.enabled = true
	return nil
}

func (c *Conn) DisableTable(ctx context.Context, tn *hbase.TTableName) error {
	if err := c.begin(ctx, "disableTable"); err != nil {
		return err
	}
	defer c.s.mu.Unlock()
	t, err := c.lookup(thriftName(tn))
	if err != nil {
		return err
	}
	if !t.enabled {
		return ioError("org.apache.hadoop.hbase.TableNotEnabledException: %s", display(t.name))
	}
	t.enabled = false
	return nil
}

func (c *Conn) IsTableEnabled(ctx context.Context, tn *hbase.TTableName) (bool, error) {
	if err := c.begin(ctx, "isTableEnabled"); err != nil {
		return false, err
	}
	defer c.s.mu.Unlock()
	t, err := c.lookup(thriftName(tn))
	if err != nil {
		return false, err
	}
	return t.enabled, nil
}

func (c *Conn) TableExists(ctx context.Context, tn *hbase.TTableName) (bool, error) {
	if err := c.begin(ctx, "tableExists"); err != nil {
		return false, err
	}
	defer c.s.mu.Unlock()
	_, ok := c.s.tables[thriftName(tn)]
	return ok, nil
}

// ModifyTable replaces the whole descriptor. Cells of dropped families go away.
func (c *Conn) ModifyTable(ctx context.Context, desc *hbase.TTableDescriptor) error {
	if err := c.begin(ctx, "modifyTable"); err != nil {
		return err
	}
	defer c.s.mu.Unlock()
	t, err := c.lookup(thriftName(desc.TableName))
	if err != nil {
		return err
	}
	if len(desc.Columns) == 0 {
		return ioError("org.apache.hadoop.hbase.DoNotRetryIOException: Table should have at least one column family.")
	}
	stored, err := clone(ctx, desc)
	if err != nil {
		return err
	}
	t.desc = stored
	for key, row := range t.rows {
		for ck := range row {
			if !t.hasFamily([]byte(ck.family)) {
				delete(row, ck)
			}
		}
		if len(row) == 0 {
			delete(t.rows, key)
		}
	}
	return nil
}

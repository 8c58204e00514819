package hbaseops

import (
	"fmt"
	"strings"

	"github.com/apache/thrift/lib/go/thrift"
	"github.com/challenai/hbaseops/thrift/hbase"
	"github.com/pkg/errors"
)

var (
	ErrTableNotFound   = errors.New("table not found")
	ErrTableExists     = errors.New("table already exists")
	ErrFamilyNotFound  = errors.New("column family not found")
	ErrFamilyExists    = errors.New("column family already exists")
	ErrNoFamilies      = errors.New("table needs at least one column family")
	ErrColumnMismatch  = errors.New("columns and values must have the same length")
	ErrMalformedColumn = errors.New("malformed column specifier")

	// ErrStopScan ends a scan early when returned from a scan callback.
	ErrStopScan = errors.New("stop scan")
)

// ConnectionError means the gateway could not be reached or the connection
// broke during a call.
type ConnectionError struct {
	Op   string
	Addr string
	Err  error
}

func (e *ConnectionError) Error() string {
	if e.Addr == "" {
		return fmt.Sprintf("connection error: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("connection error: %s (%s): %v", e.Op, e.Addr, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }
func (e *ConnectionError) Cause() error  { return e.Err }

// SchemaError reports a missing or conflicting table or family, or a schema
// mutation the store rejected. Step names the step of a multi-step operation
// that failed, LeftDisabled is set when that failure left the table offline.
type SchemaError struct {
	Op           string
	Table        string
	Step         string
	LeftDisabled bool
	Err          error
}

func (e *SchemaError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "schema error: %s", e.Op)
	if e.Table != "" {
		fmt.Fprintf(&b, " %s", e.Table)
	}
	if e.Step != "" {
		fmt.Fprintf(&b, " at %s", e.Step)
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	if e.LeftDisabled {
		b.WriteString(" (table left disabled)")
	}
	return b.String()
}

func (e *SchemaError) Unwrap() error { return e.Err }
func (e *SchemaError) Cause() error  { return e.Err }

// ArgumentError reports a malformed request: bad column specifiers,
// mismatched lengths or undecodable cell values.
type ArgumentError struct {
	Op  string
	Err error
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("argument error: %s: %v", e.Op, e.Err)
}

func (e *ArgumentError) Unwrap() error { return e.Err }
func (e *ArgumentError) Cause() error  { return e.Err }

func isTransport(err error) bool {
	var te thrift.TTransportException
	return errors.As(err, &te)
}

// schemaNotFound recognises the gateway's text for missing tables and
// families, the Java exception class name leads the TIOError message.
func schemaNotFound(err error) bool {
	var ioErr *hbase.TIOError
	if !errors.As(err, &ioErr) {
		return false
	}
	msg := ioErr.GetMessage()
	return strings.Contains(msg, "TableNotFoundException") || strings.Contains(msg, "NoSuchColumnFamilyException")
}

// schemaErr turns an error from an admin call into the error taxonomy.
func (h *DB) schemaErr(op, table, step string, leftDisabled bool, err error) error {
	var ia *hbase.TIllegalArgument
	switch {
	case err == nil:
		return nil
	case isTransport(err):
		return &ConnectionError{Op: op, Addr: h.addr, Err: err}
	case errors.As(err, &ia):
		return &ArgumentError{Op: op, Err: err}
	}
	return &SchemaError{Op: op, Table: table, Step: step, LeftDisabled: leftDisabled, Err: err}
}

// dataErr turns an error from a data call into the error taxonomy. Plain
// remote failures are wrapped with the operation and table.
func (h *DB) dataErr(op, table string, err error) error {
	var ia *hbase.TIllegalArgument
	switch {
	case err == nil:
		return nil
	case isTransport(err):
		return &ConnectionError{Op: op, Addr: h.addr, Err: err}
	case errors.As(err, &ia):
		return &ArgumentError{Op: op, Err: err}
	case schemaNotFound(err):
		return &SchemaError{Op: op, Table: table, Err: err}
	}
	return errors.Wrapf(err, "%s %s", op, table)
}

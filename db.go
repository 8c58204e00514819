package hbaseops

import (
	"context"

	"github.com/challenai/hbaseops/codec"
	"github.com/challenai/hbaseops/logger"
	"github.com/challenai/hbaseops/thrift/hbase"
)

const (
	// BatchResultSize is the number of rows fetched per scan page.
	BatchResultSize int32 = 1 << 6
)

// Conn is an open connection to the gateway.
type Conn interface {
	hbase.THBaseService
	Close() error
}

// Connector opens a new connection. Every DB operation opens its own and
// closes it before returning.
type Connector func(ctx context.Context) (Conn, error)

// DB runs admin and data operations against one HBase cluster.
type DB struct {
	connect Connector
	cdc     codec.Codec
	log     logger.Logger
	addr    string
}

// NewDB creates a DB from a connector. A nil codec or logger falls back to
// codec.BytesCodec and a discarding logger.
func NewDB(connect Connector, c codec.Codec, log logger.Logger) *DB {
	if c == nil {
		c = &codec.BytesCodec{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &DB{
		connect: connect,
		cdc:     c,
		log:     log,
	}
}

// Codec is the value codec shared with callers that build cells.
func (h *DB) Codec() codec.Codec {
	return h.cdc
}

// Logger is the logger the DB reports schema changes and failures to.
func (h *DB) Logger() logger.Logger {
	return h.log
}

// withConn opens a connection, runs fn and closes the connection on every
// path. A failed close is logged, it never replaces fn's result.
func (h *DB) withConn(ctx context.Context, op string, fn func(conn Conn) error) error {
	conn, err := h.connect(ctx)
	if err != nil {
		return &ConnectionError{Op: op, Addr: h.addr, Err: err}
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			h.log.Warnf("%s: close connection: %v", op, cerr)
		}
	}()
	return fn(conn)
}

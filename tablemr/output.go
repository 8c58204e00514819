package tablemr

import (
	"context"

	"github.com/challenai/hbaseops"
	"github.com/challenai/hbaseops/codec"
)

// Output buffers reducer rows and writes them to the output table in
// batches of hbaseops.BatchResultSize rows.
type Output struct {
	db      *hbaseops.DB
	table   string
	rows    []hbaseops.Row
	written int64
}

func newOutput(db *hbaseops.DB, table string) *Output {
	return &Output{db: db, table: table}
}

// Table is the name of the output table.
func (o *Output) Table() string {
	return o.table
}

// Codec is the value codec of the output DB.
func (o *Output) Codec() codec.Codec {
	return o.db.Codec()
}

// Write queues one row. It is sent with the next flush.
func (o *Output) Write(row hbaseops.Row) {
	o.rows = append(o.rows, row)
}

func (o *Output) maybeFlush(ctx context.Context) error {
	if len(o.rows) < int(hbaseops.BatchResultSize) {
		return nil
	}
	return o.Flush(ctx)
}

// Flush writes every queued row.
func (o *Output) Flush(ctx context.Context) error {
	if len(o.rows) == 0 {
		return nil
	}
	if err := o.db.PutRows(ctx, o.table, o.rows); err != nil {
		return err
	}
	o.written += int64(len(o.rows))
	o.rows = o.rows[:0]
	return nil
}

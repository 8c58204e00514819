// Package sortjob rewrites book price rows from one or more input tables into
// an output table keyed "%08d_<book>", so a scan of the output lists books by
// ascending price.
package sortjob

import (
	"context"

	"github.com/challenai/hbaseops"
	"github.com/challenai/hbaseops/codec"
	"github.com/challenai/hbaseops/config"
	"github.com/challenai/hbaseops/tablemr"
	"github.com/challenai/hbaseops/utils"
	"github.com/pkg/errors"
)

const (
	PriceColumn = "price"
	BookColumn  = "bookName"

	keyWidth = 8
)

// Config names the tables and families of a run.
type Config struct {
	Inputs       []string
	InputFamily  string
	Output       string
	OutputFamily string
	Reducers     int
	Workers      int
}

// FromConf reads the [job] section.
func FromConf(c config.Job) Config {
	return Config{
		Inputs:       append([]string(nil), c.Inputs...),
		InputFamily:  c.InputFamily,
		Output:       c.Output,
		OutputFamily: c.OutputFamily,
		Reducers:     c.Reducers,
		Workers:      c.Workers,
	}
}

// RowKey is the output row key of a book.
func RowKey(price int32, book string) string {
	return utils.PadInt(int64(price), keyWidth) + "_" + book
}

// Mapper emits (price, book) for every row with a price cell. Rows without
// one are skipped, a price that is not a 4 byte int fails the job.
func Mapper(cdc codec.Codec, family string) tablemr.Mapper {
	return func(_ context.Context, table string, row hbaseops.Row, emit func(tablemr.KeyValue)) error {
		raw, ok := row.Value(family, PriceColumn)
		if !ok {
			return nil
		}
		price, err := cdc.DecodeInt32(raw)
		if err != nil {
			return &hbaseops.ArgumentError{
				Op:  "map price",
				Err: errors.WithMessagef(err, "%s row %q", table, row.Key),
			}
		}
		book, _ := row.Value(family, BookColumn)
		emit(tablemr.KeyValue{Key: codec.SortableInt32(price), Value: book})
		return nil
	}
}

// Reducer writes one output row per book of a price.
func Reducer(family string) tablemr.Reducer {
	return func(_ context.Context, key []byte, values [][]byte, out *tablemr.Output) error {
		price, err := codec.FromSortableInt32(key)
		if err != nil {
			return &hbaseops.ArgumentError{Op: "reduce price", Err: err}
		}
		cdc := out.Codec()
		for _, book := range values {
			out.Write(hbaseops.Row{
				Key: []byte(RowKey(price, string(book))),
				Cells: []hbaseops.Cell{
					{Family: []byte(family), Qualifier: []byte(BookColumn), Value: book},
					{Family: []byte(family), Qualifier: []byte(PriceColumn), Value: cdc.EncodeInt32(price)},
				},
			})
		}
		return nil
	}
}

// NewJob builds the sort job. Only the input family is scanned.
func NewJob(cdc codec.Codec, conf Config) *tablemr.Job {
	return &tablemr.Job{
		Name:    "price-sort",
		Inputs:  conf.Inputs,
		Scan:    hbaseops.ScanOptions{Columns: []string{conf.InputFamily}},
		Output:  conf.Output,
		Map:     Mapper(cdc, conf.InputFamily),
		Reduce:  Reducer(conf.OutputFamily),
		NReduce: conf.Reducers,
		Workers: conf.Workers,
	}
}

// Run sorts the configured inputs into the output table, which must exist.
func Run(ctx context.Context, db *hbaseops.DB, conf Config) (tablemr.Counters, error) {
	return tablemr.Run(ctx, db, NewJob(db.Codec(), conf))
}

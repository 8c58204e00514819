package hbaseops

import (
	"context"
	"sort"

	"github.com/challenai/hbaseops/thrift/hbase"
	"github.com/challenai/hbaseops/utils"
	"github.com/pkg/errors"
)

// FirstKeyOnlyFilter makes the server return only the first cell of each row.
const FirstKeyOnlyFilter = "FirstKeyOnlyFilter()"

// ScanOptions restricts a scan. The zero value scans the whole table.
type ScanOptions struct {
	StartRow []byte // inclusive
	StopRow  []byte // exclusive
	// Columns holds "family" or "family:qualifier" entries.
	Columns []string
	// Filter is a filter string in the HBase filter language.
	Filter string
	// Limit caps the number of rows, 0 means no cap.
	Limit int
	// BatchSize is the number of rows per page, 0 means BatchResultSize.
	BatchSize int32
}

func parseColumn(spec string) (*hbase.TColumn, error) {
	family, qualifier, ok := utils.SplitColumn(spec)
	if family == "" {
		return nil, errors.Wrapf(ErrMalformedColumn, "%q has no family", spec)
	}
	col := &hbase.TColumn{Family: []byte(family)}
	if ok {
		col.Qualifier = []byte(qualifier)
	}
	return col, nil
}

func (o ScanOptions) tscan() (*hbase.TScan, error) {
	scan := hbase.NewTScan()
	scan.StartRow = o.StartRow
	scan.StopRow = o.StopRow
	for _, spec := range o.Columns {
		col, err := parseColumn(spec)
		if err != nil {
			return nil, err
		}
		scan.Columns = append(scan.Columns, col)
	}
	if o.Filter != "" {
		scan.FilterString = []byte(o.Filter)
	}
	return scan, nil
}

func getQuerySize(batchSz, diff int32) int32 {
	if diff <= 0 {
		return 0
	}
	if batchSz < diff {
		return batchSz
	}
	return diff
}

// ScanRows calls fn for every row of table matching opts, fetching one page
// at a time. Returning ErrStopScan from fn ends the scan without error, any
// other error aborts it and is returned as is. A scan cannot be resumed, call
// again with a later StartRow instead.
func (h *DB) ScanRows(ctx context.Context, table string, opts ScanOptions, fn func(Row) error) error {
	const op = "scan"
	tScan, err := opts.tscan()
	if err != nil {
		return &ArgumentError{Op: op, Err: err}
	}
	batch := opts.BatchSize
	if batch <= 0 {
		batch = BatchResultSize
	}
	tableBytes := []byte(ParseTableName(table).String())

	return h.withConn(ctx, op, func(conn Conn) error {
		seen := 0
		for {
			resultSz := batch
			if opts.Limit > 0 {
				resultSz = getQuerySize(batch, int32(opts.Limit-seen))
				if resultSz == 0 {
					return nil
				}
			}
			results, err := conn.GetScannerResults(ctx, tableBytes, tScan, resultSz)
			if err != nil {
				return h.dataErr(op, table, err)
			}
			if len(results) == 0 {
				return nil
			}
			for _, res := range results {
				seen++
				if err := fn(rowFromResult(res)); err != nil {
					if errors.Is(err, ErrStopScan) {
						return nil
					}
					return err
				}
			}
			tScan.StartRow = utils.ClosestRowAfter(results[len(results)-1].Row)
		}
	})
}

// Scan calls fn for every cell of table. familyOrColumn restricts the scan
// to a family ("info") or a single column ("info:name"), empty scans all.
func (h *DB) Scan(ctx context.Context, table, familyOrColumn string, fn func(Cell) error) error {
	var opts ScanOptions
	if familyOrColumn != "" {
		opts.Columns = []string{familyOrColumn}
	}
	return h.ScanRows(ctx, table, opts, func(row Row) error {
		for _, c := range row.Cells {
			if err := fn(c); err != nil {
				return err
			}
		}
		return nil
	})
}

// CountRows counts the rows of table. Only the first cell of each row is
// transferred, the cost is still one pass over every row.
func (h *DB) CountRows(ctx context.Context, table string) (int64, error) {
	var n int64
	err := h.ScanRows(ctx, table, ScanOptions{Filter: FirstKeyOnlyFilter}, func(Row) error {
		n++
		return nil
	})
	if err != nil {
		return 0, err
	}
	h.log.Debugf("count rows %s: %d", table, n)
	return n, nil
}

func columnValue(spec string, value []byte) (*hbase.TColumnValue, error) {
	family, qualifier, ok := utils.SplitColumn(spec)
	if family == "" || !ok {
		return nil, errors.Wrapf(ErrMalformedColumn, "%q is not family:qualifier", spec)
	}
	return &hbase.TColumnValue{Family: []byte(family), Qualifier: []byte(qualifier), Value: value}, nil
}

func (h *DB) put(ctx context.Context, op, table string, put *hbase.TPut) error {
	tableBytes := []byte(ParseTableName(table).String())
	return h.withConn(ctx, op, func(conn Conn) error {
		return h.dataErr(op, table, conn.Put(ctx, tableBytes, put))
	})
}

// Put writes one row. Column keys are "family:qualifier", split on the first
// colon.
func (h *DB) Put(ctx context.Context, table, rowKey string, columns map[string][]byte) error {
	const op = "put"
	specs := make([]string, 0, len(columns))
	for spec := range columns {
		specs = append(specs, spec)
	}
	sort.Strings(specs)
	put := &hbase.TPut{Row: []byte(rowKey)}
	for _, spec := range specs {
		cv, err := columnValue(spec, columns[spec])
		if err != nil {
			return &ArgumentError{Op: op, Err: err}
		}
		put.ColumnValues = append(put.ColumnValues, cv)
	}
	if len(put.ColumnValues) == 0 {
		return &ArgumentError{Op: op, Err: errors.Wrap(ErrMalformedColumn, "no columns to put")}
	}
	return h.put(ctx, op, table, put)
}

// AddRecord writes one row from parallel column and value slices, values
// are stored as strings.
func (h *DB) AddRecord(ctx context.Context, table, rowKey string, columns, values []string) error {
	const op = "add record"
	if len(columns) != len(values) {
		return &ArgumentError{Op: op, Err: errors.Wrapf(ErrColumnMismatch, "%d columns, %d values", len(columns), len(values))}
	}
	put := &hbase.TPut{Row: []byte(rowKey)}
	for i, spec := range columns {
		cv, err := columnValue(spec, h.cdc.EncodeString(values[i]))
		if err != nil {
			return &ArgumentError{Op: op, Err: err}
		}
		put.ColumnValues = append(put.ColumnValues, cv)
	}
	if len(put.ColumnValues) == 0 {
		return &ArgumentError{Op: op, Err: errors.Wrap(ErrMalformedColumn, "no columns to put")}
	}
	if err := h.put(ctx, op, table, put); err != nil {
		return err
	}
	h.log.Debugf("%s: %s/%s with %d columns", op, table, rowKey, len(columns))
	return nil
}

// PutRows writes rows in a single request.
func (h *DB) PutRows(ctx context.Context, table string, rows []Row) error {
	const op = "put rows"
	if len(rows) == 0 {
		return nil
	}
	puts := make([]*hbase.TPut, 0, len(rows))
	for _, r := range rows {
		if len(r.Cells) == 0 {
			return &ArgumentError{Op: op, Err: errors.Wrapf(ErrMalformedColumn, "row %q has no cells", r.Key)}
		}
		puts = append(puts, r.put())
	}
	tableBytes := []byte(ParseTableName(table).String())
	return h.withConn(ctx, op, func(conn Conn) error {
		return h.dataErr(op, table, conn.PutMultiple(ctx, tableBytes, puts))
	})
}

// Modify overwrites a single cell, the newest version wins on read.
func (h *DB) Modify(ctx context.Context, table, rowKey, column string, value []byte) error {
	const op = "modify"
	cv, err := columnValue(column, value)
	if err != nil {
		return &ArgumentError{Op: op, Err: err}
	}
	return h.put(ctx, op, table, &hbase.TPut{Row: []byte(rowKey), ColumnValues: []*hbase.TColumnValue{cv}})
}

// DeleteRow deletes every cell under rowKey.
func (h *DB) DeleteRow(ctx context.Context, table, rowKey string) error {
	const op = "delete row"
	del := hbase.NewTDelete()
	del.Row = []byte(rowKey)
	tableBytes := []byte(ParseTableName(table).String())
	return h.withConn(ctx, op, func(conn Conn) error {
		return h.dataErr(op, table, conn.DeleteSingle(ctx, tableBytes, del))
	})
}

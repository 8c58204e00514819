package sortjob

import (
	"context"

	"github.com/challenai/hbaseops"
	"github.com/pkg/errors"
)

// Book is one sample input row.
type Book struct {
	Name  string
	Price int32
}

// SampleBooks are the rows Seed writes when given none.
var SampleBooks = []Book{
	{"A", 86},
	{"B", 69},
	{"C", 77},
	{"D", 99},
	{"E", 98},
	{"F", 95},
}

// Seed recreates the input and output tables and spreads books over the
// inputs round robin. Existing tables of those names are dropped.
func Seed(ctx context.Context, db *hbaseops.DB, conf Config, books []Book) error {
	if len(conf.Inputs) == 0 {
		return errors.New("seed needs at least one input table")
	}
	if books == nil {
		books = SampleBooks
	}
	for _, table := range conf.Inputs {
		if err := db.CreateTable(ctx, table, conf.InputFamily); err != nil {
			return err
		}
	}
	if err := db.CreateTable(ctx, conf.Output, conf.OutputFamily); err != nil {
		return err
	}

	cdc := db.Codec()
	rows := make([][]hbaseops.Row, len(conf.Inputs))
	for i, b := range books {
		n := i % len(conf.Inputs)
		rows[n] = append(rows[n], hbaseops.Row{
			Key: []byte(b.Name),
			Cells: []hbaseops.Cell{
				{Family: []byte(conf.InputFamily), Qualifier: []byte(BookColumn), Value: cdc.EncodeString(b.Name)},
				{Family: []byte(conf.InputFamily), Qualifier: []byte(PriceColumn), Value: cdc.EncodeInt32(b.Price)},
			},
		})
	}
	for i, table := range conf.Inputs {
		if err := db.PutRows(ctx, table, rows[i]); err != nil {
			return err
		}
	}
	db.Logger().Infof("seeded %d books into %v", len(books), conf.Inputs)
	return nil
}

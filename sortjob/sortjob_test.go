package sortjob

import (
	"context"
	"testing"

	"github.com/challenai/hbaseops"
	"github.com/challenai/hbaseops/config"
	"github.com/challenai/hbaseops/internal/hbasemock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDB(store *hbasemock.Store) *hbaseops.DB {
	return hbaseops.NewDB(func(ctx context.Context) (hbaseops.Conn, error) {
		c, err := store.Open(ctx)
		if err != nil {
			return nil, err
		}
		return c, nil
	}, nil, nil)
}

type outRow struct {
	key   string
	book  string
	price int32
}

func readOutput(t *testing.T, db *hbaseops.DB, conf Config) []outRow {
	t.Helper()
	var rows []outRow
	require.NoError(t, db.ScanRows(context.Background(), conf.Output, hbaseops.ScanOptions{}, func(r hbaseops.Row) error {
		book, _ := r.Value(conf.OutputFamily, BookColumn)
		raw, _ := r.Value(conf.OutputFamily, PriceColumn)
		price, err := db.Codec().DecodeInt32(raw)
		if err != nil {
			return err
		}
		rows = append(rows, outRow{string(r.Key), string(book), price})
		return nil
	}))
	return rows
}

func TestSortSampleBooks(t *testing.T) {
	for _, reducers := range []int{1, 4} {
		store := hbasemock.NewStore()
		db := newDB(store)
		conf := FromConf(config.DefaultConf.Job)
		conf.Reducers = reducers
		ctx := context.Background()

		require.NoError(t, Seed(ctx, db, conf, nil))
		counters, err := Run(ctx, db, conf)
		require.NoError(t, err)
		assert.Equal(t, int64(6), counters.InputRows)
		assert.Equal(t, int64(6), counters.OutputRows)

		assert.Equal(t, []outRow{
			{"00000069_B", "B", 69},
			{"00000077_C", "C", 77},
			{"00000086_A", "A", 86},
			{"00000095_F", "F", 95},
			{"00000098_E", "E", 98},
			{"00000099_D", "D", 99},
		}, readOutput(t, db, conf), "reducers=%d", reducers)
	}
}

func TestSortEqualPrices(t *testing.T) {
	db := newDB(hbasemock.NewStore())
	conf := FromConf(config.DefaultConf.Job)
	ctx := context.Background()

	require.NoError(t, Seed(ctx, db, conf, []Book{{"Y", 10}, {"X", 10}, {"Z", 5}}))
	_, err := Run(ctx, db, conf)
	require.NoError(t, err)

	assert.Equal(t, []outRow{
		{"00000005_Z", "Z", 5},
		{"00000010_X", "X", 10},
		{"00000010_Y", "Y", 10},
	}, readOutput(t, db, conf))
}

func TestSortSkipsRowsWithoutPrice(t *testing.T) {
	db := newDB(hbasemock.NewStore())
	conf := FromConf(config.DefaultConf.Job)
	ctx := context.Background()
	require.NoError(t, Seed(ctx, db, conf, []Book{{"A", 1}}))
	require.NoError(t, db.Put(ctx, "table2", "G", map[string][]byte{"info:bookName": []byte("G")}))

	counters, err := Run(ctx, db, conf)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counters.InputRows)
	assert.Equal(t, int64(1), counters.OutputRows)
	assert.Equal(t, []outRow{{"00000001_A", "A", 1}}, readOutput(t, db, conf))
}

func TestSortBadPrice(t *testing.T) {
	db := newDB(hbasemock.NewStore())
	conf := FromConf(config.DefaultConf.Job)
	ctx := context.Background()
	require.NoError(t, Seed(ctx, db, conf, []Book{{"A", 1}}))
	require.NoError(t, db.Put(ctx, "table1", "H", map[string][]byte{"info:price": []byte("12")}))

	_, err := Run(ctx, db, conf)
	var ae *hbaseops.ArgumentError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, "map price", ae.Op)
}

func TestRowKey(t *testing.T) {
	assert.Equal(t, "00000086_A", RowKey(86, "A"))
	assert.Equal(t, "123456789_B", RowKey(123456789, "B"))
}

func TestSeedNeedsInputs(t *testing.T) {
	db := newDB(hbasemock.NewStore())
	assert.Error(t, Seed(context.Background(), db, Config{Output: "o", OutputFamily: "r"}, nil))
}

package hbaseops

import (
	"context"
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type triple struct {
	row, column, value string
}

func collect(t *testing.T, db *DB, table, column string) []triple {
	t.Helper()
	var got []triple
	require.NoError(t, db.Scan(context.Background(), table, column, func(c Cell) error {
		got = append(got, triple{string(c.Row), string(c.Family) + ":" + string(c.Qualifier), string(c.Value)})
		return nil
	}))
	return got
}

func TestPutThenScan(t *testing.T) {
	db, store := newTestDB(t)
	ctx := context.Background()
	require.NoError(t, db.CreateTable(ctx, "student", "info", "score"))

	require.NoError(t, db.AddRecord(ctx, "student", "2015001",
		[]string{"info:S_Name", "info:S_Sex", "info:S_Age"},
		[]string{"Zhangsan", "male", "23"}))
	require.NoError(t, db.AddRecord(ctx, "student", "2015002",
		[]string{"info:S_Name", "score:Math"},
		[]string{"Mary", "86"}))

	assert.Equal(t, []triple{
		{"2015001", "info:S_Age", "23"},
		{"2015001", "info:S_Name", "Zhangsan"},
		{"2015001", "info:S_Sex", "male"},
		{"2015002", "info:S_Name", "Mary"},
		{"2015002", "score:Math", "86"},
	}, collect(t, db, "student", ""))

	assert.Equal(t, []triple{
		{"2015001", "info:S_Name", "Zhangsan"},
		{"2015002", "info:S_Name", "Mary"},
	}, collect(t, db, "student", "info:S_Name"))

	assert.Equal(t, []triple{
		{"2015002", "score:Math", "86"},
	}, collect(t, db, "student", "score"))

	assertAllClosed(t, store)
}

func TestCountRows(t *testing.T) {
	db, _ := newTestDB(t)
	ctx := context.Background()
	require.NoError(t, db.CreateTable(ctx, "t", "cf"))

	const k = 150
	rows := make([]Row, 0, k)
	for i := 0; i < k; i++ {
		key := []byte(fmt.Sprintf("row%03d", i))
		rows = append(rows, Row{Key: key, Cells: []Cell{
			{Family: []byte("cf"), Qualifier: []byte("a"), Value: []byte("x")},
			{Family: []byte("cf"), Qualifier: []byte("b"), Value: []byte("y")},
		}})
	}
	require.NoError(t, db.PutRows(ctx, "t", rows))

	n, err := db.CountRows(ctx, "t")
	require.NoError(t, err)
	assert.Equal(t, int64(k), n)

	_, err = db.CountRows(ctx, "missing")
	var se *SchemaError
	require.True(t, errors.As(err, &se))
}

func TestScanRowsPaging(t *testing.T) {
	db, store := newTestDB(t)
	ctx := context.Background()
	require.NoError(t, db.CreateTable(ctx, "t", "cf"))
	for i := 0; i < 10; i++ {
		require.NoError(t, db.Put(ctx, "t", fmt.Sprintf("k%02d", i), map[string][]byte{"cf:v": {byte(i)}}))
	}

	var keys []string
	err := db.ScanRows(ctx, "t", ScanOptions{BatchSize: 3, Limit: 7}, func(r Row) error {
		keys = append(keys, string(r.Key))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"k00", "k01", "k02", "k03", "k04", "k05", "k06"}, keys)

	keys = nil
	err = db.ScanRows(ctx, "t", ScanOptions{StartRow: []byte("k03"), StopRow: []byte("k06"), BatchSize: 2}, func(r Row) error {
		keys = append(keys, string(r.Key))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"k03", "k04", "k05"}, keys)

	keys = nil
	err = db.ScanRows(ctx, "t", ScanOptions{BatchSize: 4}, func(r Row) error {
		keys = append(keys, string(r.Key))
		if len(keys) == 5 {
			return ErrStopScan
		}
		return nil
	})
	require.NoError(t, err)
	assert.Len(t, keys, 5)
	assertAllClosed(t, store)
}

func TestScanCallbackError(t *testing.T) {
	db, store := newTestDB(t)
	ctx := context.Background()
	require.NoError(t, db.CreateTable(ctx, "t", "cf"))
	require.NoError(t, db.Put(ctx, "t", "r", map[string][]byte{"cf:v": []byte("1")}))

	boom := errors.New("boom")
	err := db.Scan(ctx, "t", "", func(Cell) error { return boom })
	assert.Equal(t, boom, err)
	assertAllClosed(t, store)
}

func TestScanUnknownFamily(t *testing.T) {
	db, _ := newTestDB(t)
	ctx := context.Background()
	require.NoError(t, db.CreateTable(ctx, "t", "cf"))

	err := db.Scan(ctx, "t", "nope:x", func(Cell) error { return nil })
	var se *SchemaError
	require.True(t, errors.As(err, &se))

	err = db.ScanRows(ctx, "t", ScanOptions{Filter: "PrefixFilter('a')"}, func(Row) error { return nil })
	var ae *ArgumentError
	require.True(t, errors.As(err, &ae))

	err = db.Scan(ctx, "t", ":x", func(Cell) error { return nil })
	require.True(t, errors.As(err, &ae))
	assert.ErrorIs(t, err, ErrMalformedColumn)
}

func TestAddRecordArguments(t *testing.T) {
	db, store := newTestDB(t)
	ctx := context.Background()

	err := db.AddRecord(ctx, "t", "r", []string{"info:a", "info:b"}, []string{"1"})
	var ae *ArgumentError
	require.True(t, errors.As(err, &ae))
	assert.ErrorIs(t, err, ErrColumnMismatch)

	err = db.AddRecord(ctx, "t", "r", []string{"info"}, []string{"1"})
	require.True(t, errors.As(err, &ae))
	assert.ErrorIs(t, err, ErrMalformedColumn)

	err = db.Put(ctx, "t", "r", nil)
	require.True(t, errors.As(err, &ae))

	opened, _ := store.Conns()
	assert.Zero(t, opened)
}

func TestPutSplitsOnFirstColon(t *testing.T) {
	db, _ := newTestDB(t)
	ctx := context.Background()
	require.NoError(t, db.CreateTable(ctx, "t", "info"))

	require.NoError(t, db.Put(ctx, "t", "r", map[string][]byte{"info:a:b": []byte("v")}))
	assert.Equal(t, []triple{{"r", "info:a:b", "v"}}, collect(t, db, "t", ""))

	var qualifier string
	require.NoError(t, db.ScanRows(ctx, "t", ScanOptions{}, func(r Row) error {
		qualifier = string(r.Cells[0].Qualifier)
		return nil
	}))
	assert.Equal(t, "a:b", qualifier)
}

func TestPutUnknownFamily(t *testing.T) {
	db, store := newTestDB(t)
	ctx := context.Background()
	require.NoError(t, db.CreateTable(ctx, "t", "info"))

	err := db.Put(ctx, "t", "r", map[string][]byte{"nope:a": []byte("v")})
	var se *SchemaError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "put", se.Op)

	err = db.Put(ctx, "missing", "r", map[string][]byte{"info:a": []byte("v")})
	require.True(t, errors.As(err, &se))
	assertAllClosed(t, store)
}

func TestModifyAndDeleteRow(t *testing.T) {
	db, _ := newTestDB(t)
	ctx := context.Background()
	require.NoError(t, db.CreateTable(ctx, "sc", "score"))
	require.NoError(t, db.AddRecord(ctx, "sc", "2015001", []string{"score:123001"}, []string{"86"}))
	require.NoError(t, db.AddRecord(ctx, "sc", "2015002", []string{"score:123001"}, []string{"77"}))

	require.NoError(t, db.Modify(ctx, "sc", "2015001", "score:123001", []byte("90")))
	assert.Equal(t, []triple{
		{"2015001", "score:123001", "90"},
		{"2015002", "score:123001", "77"},
	}, collect(t, db, "sc", ""))

	require.NoError(t, db.DeleteRow(ctx, "sc", "2015001"))
	assert.Equal(t, []triple{{"2015002", "score:123001", "77"}}, collect(t, db, "sc", ""))

	require.NoError(t, db.DeleteRow(ctx, "sc", "no-such-row"))

	err := db.Modify(ctx, "sc", "2015002", "score", []byte("1"))
	assert.ErrorIs(t, err, ErrMalformedColumn)
}

func TestRowValue(t *testing.T) {
	row := Row{Key: []byte("r"), Cells: []Cell{
		{Family: []byte("info"), Qualifier: []byte("price"), Value: []byte{0, 0, 0, 86}},
	}}
	v, ok := row.Value("info", "price")
	assert.True(t, ok)
	assert.Equal(t, []byte{0, 0, 0, 86}, v)
	_, ok = row.Value("info", "name")
	assert.False(t, ok)
}

func TestParseTableName(t *testing.T) {
	assert.Equal(t, TableName{Name: "t"}, ParseTableName("t"))
	assert.Equal(t, TableName{Name: "t"}, ParseTableName("default:t"))
	assert.Equal(t, TableName{Namespace: "ns", Name: "t"}, ParseTableName("ns:t"))
	assert.Equal(t, "ns:t", ParseTableName("ns:t").String())
	assert.Equal(t, "t", ParseTableName("default:t").String())
}

// Package tablemr runs small map/reduce jobs whose input and output are
// HBase tables. Every input table is one map task, map output is split into
// NReduce partitions by key hash and each partition is reduced in byte order
// of its keys.
package tablemr

import (
	"bytes"
	"context"
	"hash/fnv"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/challenai/hbaseops"
	"github.com/challenai/hbaseops/logger"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

type Phase int32

const (
	MapPhase Phase = iota
	ReducePhase
	DonePhase
)

func (p Phase) String() string {
	switch p {
	case MapPhase:
		return "map"
	case ReducePhase:
		return "reduce"
	case DonePhase:
		return "done"
	}
	return "unknown"
}

// KeyValue is one map output record.
type KeyValue struct {
	Key   []byte
	Value []byte
}

// Mapper turns an input row into zero or more records passed to emit.
type Mapper func(ctx context.Context, table string, row hbaseops.Row, emit func(KeyValue)) error

// Reducer receives every value of one key, in map emission order, and writes
// output rows to out.
type Reducer func(ctx context.Context, key []byte, values [][]byte, out *Output) error

// Counters are the job statistics, safe to read once Run returns.
type Counters struct {
	InputRows    int64
	MapOutputs   int64
	ReduceGroups int64
	OutputRows   int64
}

// Job describes one run. Scan applies to every input table.
type Job struct {
	Name    string
	Inputs  []string
	Scan    hbaseops.ScanOptions
	Output  string
	Map     Mapper
	Reduce  Reducer
	NReduce int
	// Workers bounds the tasks running at once, 0 means no bound.
	Workers int

	phase    atomic.Int32
	counters Counters
}

// Phase reports how far Run got.
func (job *Job) Phase() Phase {
	return Phase(job.phase.Load())
}

func (job *Job) validate() error {
	switch {
	case len(job.Inputs) == 0:
		return errors.Errorf("job %s has no input tables", job.Name)
	case job.Output == "":
		return errors.Errorf("job %s has no output table", job.Name)
	case job.Map == nil || job.Reduce == nil:
		return errors.Errorf("job %s needs a mapper and a reducer", job.Name)
	case job.NReduce <= 0:
		return errors.Errorf("job %s: NReduce must be positive, got %d", job.Name, job.NReduce)
	case job.Workers < 0:
		return errors.Errorf("job %s: Workers must not be negative, got %d", job.Name, job.Workers)
	}
	return nil
}

func ihash(key []byte) int {
	h := fnv.New32a()
	h.Write(key)
	return int(h.Sum32() & 0x7fffffff)
}

// Run executes job against db and returns its counters. The first failing
// task cancels the others. Output rows already flushed by then stay written.
func Run(ctx context.Context, db *hbaseops.DB, job *Job) (Counters, error) {
	if err := job.validate(); err != nil {
		return Counters{}, err
	}
	log := db.Logger()
	job.phase.Store(int32(MapPhase))
	job.counters = Counters{}

	partitions, err := job.doMap(ctx, db, log)
	if err != nil {
		return job.counters, err
	}
	log.Infof("job %s: map done, %d rows in, %d records out", job.Name, job.counters.InputRows, job.counters.MapOutputs)

	job.phase.Store(int32(ReducePhase))
	if err := job.doReduce(ctx, db, partitions); err != nil {
		return job.counters, err
	}
	job.phase.Store(int32(DonePhase))
	log.Infof("job %s: reduce done, %d groups, %d rows written to %s", job.Name, job.counters.ReduceGroups, job.counters.OutputRows, job.Output)
	return job.counters, nil
}

func (job *Job) group(ctx context.Context) (*errgroup.Group, context.Context) {
	g, gctx := errgroup.WithContext(ctx)
	if job.Workers > 0 {
		g.SetLimit(job.Workers)
	}
	return g, gctx
}

// doMap scans every input table concurrently and returns the map output
// split into NReduce partitions, each sorted by key. Records with equal keys
// keep input table order, then emission order.
func (job *Job) doMap(ctx context.Context, db *hbaseops.DB, log logger.Logger) ([][]KeyValue, error) {
	var mu sync.Mutex
	results := make([][][]KeyValue, len(job.Inputs))

	g, gctx := job.group(ctx)
	for mapID, table := range job.Inputs {
		mapID, table := mapID, table
		g.Go(func() error {
			local := make([][]KeyValue, job.NReduce)
			var rows, outputs int64
			emit := func(kv KeyValue) {
				r := ihash(kv.Key) % job.NReduce
				local[r] = append(local[r], kv)
				outputs++
			}
			err := db.ScanRows(gctx, table, job.Scan, func(row hbaseops.Row) error {
				rows++
				return job.Map(gctx, table, row, emit)
			})
			if err != nil {
				log.Errorf("job %s: map %d over %s failed: %v", job.Name, mapID, table, err)
				return errors.WithMessagef(err, "map %d (%s)", mapID, table)
			}
			log.Debugf("job %s: map %d over %s: %d rows, %d records", job.Name, mapID, table, rows, outputs)

			mu.Lock()
			defer mu.Unlock()
			results[mapID] = local
			job.counters.InputRows += rows
			job.counters.MapOutputs += outputs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	partitions := make([][]KeyValue, job.NReduce)
	for _, local := range results {
		for r := range local {
			partitions[r] = append(partitions[r], local[r]...)
		}
	}
	for _, kvs := range partitions {
		sort.SliceStable(kvs, func(i, j int) bool {
			return bytes.Compare(kvs[i].Key, kvs[j].Key) < 0
		})
	}
	return partitions, nil
}

// doReduce reduces every partition concurrently, one Output per partition.
func (job *Job) doReduce(ctx context.Context, db *hbaseops.DB, partitions [][]KeyValue) error {
	var groups, written atomic.Int64
	g, gctx := job.group(ctx)
	for reduceID, kvs := range partitions {
		reduceID, kvs := reduceID, kvs
		g.Go(func() error {
			out := newOutput(db, job.Output)
			n := 0
			for i := 0; i < len(kvs); {
				j := i + 1
				for j < len(kvs) && bytes.Equal(kvs[j].Key, kvs[i].Key) {
					j++
				}
				values := make([][]byte, 0, j-i)
				for _, kv := range kvs[i:j] {
					values = append(values, kv.Value)
				}
				if err := job.Reduce(gctx, kvs[i].Key, values, out); err != nil {
					return errors.WithMessagef(err, "reduce %d", reduceID)
				}
				if err := out.maybeFlush(gctx); err != nil {
					return errors.WithMessagef(err, "reduce %d", reduceID)
				}
				n++
				i = j
			}
			if err := out.Flush(gctx); err != nil {
				return errors.WithMessagef(err, "reduce %d", reduceID)
			}
			groups.Add(int64(n))
			written.Add(out.written)
			db.Logger().Debugf("job %s: reduce %d: %d groups, %d rows", job.Name, reduceID, n, out.written)
			return nil
		})
	}
	err := g.Wait()
	job.counters.ReduceGroups = groups.Load()
	job.counters.OutputRows = written.Load()
	return err
}

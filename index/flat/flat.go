// Package flat provides an exact (brute-force) k-nearest-neighbor index over
// dense feature vectors. Results are deterministic: ascending by distance,
// ties broken by lowest row ID.
package flat

import (
	"container/heap"
	"fmt"

	"github.com/hupe1980/lazymode/distance"
)

// Errors returned by Query.
var (
	ErrEmptyIndex = fmt.Errorf("index contains no vectors")
	ErrInvalidK   = fmt.Errorf("k must be positive")
)

// ErrDimensionMismatch indicates a query/row dimensionality mismatch.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// Result is a single nearest-neighbor match.
type Result struct {
	ID       uint32  // row index into the training set
	Distance float32 // metric distance to the query
}

// Options contains configuration for the flat index.
type Options struct {
	// Metric selects the distance function. Default: cosine.
	Metric distance.Metric

	// Accelerated selects the SIMD distance kernels. Ordering is identical
	// to the pure-Go path within floating-point tolerance.
	Accelerated bool
}

// DefaultOptions are the defaults applied by New.
var DefaultOptions = Options{
	Metric:      distance.MetricCosine,
	Accelerated: true,
}

// Index is a flat exact-search index. Rows are installed wholesale via
// SetVectors; the index never mutates them afterwards. Concurrent Query
// calls are safe as long as no SetVectors call is in flight.
type Index struct {
	opts      Options
	distFunc  distance.Func
	rows      [][]float32
	dimension int
}

// New creates a flat index.
func New(optFns ...func(o *Options)) (*Index, error) {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	distFunc, err := distance.Provider(opts.Metric, opts.Accelerated)
	if err != nil {
		return nil, err
	}

	return &Index{opts: opts, distFunc: distFunc}, nil
}

// SetVectors replaces the indexed rows. All rows must share one dimension.
func (idx *Index) SetVectors(rows [][]float32) error {
	dim := 0
	if len(rows) > 0 {
		dim = len(rows[0])
	}
	for i, row := range rows {
		if len(row) != dim {
			return &ErrDimensionMismatch{Expected: dim, Actual: len(rows[i])}
		}
	}
	idx.rows = rows
	idx.dimension = dim
	return nil
}

// Len returns the number of indexed rows.
func (idx *Index) Len() int { return len(idx.rows) }

// Dimension returns the row dimensionality (0 when empty).
func (idx *Index) Dimension() int { return idx.dimension }

// Metric returns the configured distance metric.
func (idx *Index) Metric() distance.Metric { return idx.opts.Metric }

// Query returns the min(k, Len) nearest rows to q, ascending by distance,
// ties broken by lowest ID. An empty index is an error, never an empty
// result set.
func (idx *Index) Query(q []float32, k int) ([]Result, error) {
	return idx.query(q, k, nil)
}

// QueryWithin behaves like Query but only considers the given row IDs.
// IDs out of range are ignored; an empty candidate list falls back to a
// full scan so the contract of Query is preserved.
func (idx *Index) QueryWithin(q []float32, k int, ids []uint32) ([]Result, error) {
	if len(ids) == 0 {
		return idx.query(q, k, nil)
	}
	return idx.query(q, k, ids)
}

func (idx *Index) query(q []float32, k int, ids []uint32) ([]Result, error) {
	if k < 1 {
		return nil, ErrInvalidK
	}
	if len(idx.rows) == 0 {
		return nil, ErrEmptyIndex
	}
	if len(q) != idx.dimension {
		return nil, &ErrDimensionMismatch{Expected: idx.dimension, Actual: len(q)}
	}

	// Bounded max-heap of the k best candidates; the heap top is the worst
	// kept result, so a new candidate replaces it only when strictly better
	// under the (distance, ID) order.
	h := &resultHeap{}
	heap.Init(h)

	consider := func(id uint32) {
		d := idx.distFunc(q, idx.rows[id])
		if h.Len() < k {
			heap.Push(h, Result{ID: id, Distance: d})
			return
		}
		worst := (*h)[0]
		if d < worst.Distance || (d == worst.Distance && id < worst.ID) {
			(*h)[0] = Result{ID: id, Distance: d}
			heap.Fix(h, 0)
		}
	}

	if ids == nil {
		for id := range idx.rows {
			consider(uint32(id))
		}
	} else {
		for _, id := range ids {
			if int(id) < len(idx.rows) {
				consider(id)
			}
		}
	}

	// Drain the heap worst-first into ascending order.
	results := make([]Result, h.Len())
	for i := len(results) - 1; i >= 0; i-- {
		results[i] = heap.Pop(h).(Result)
	}
	return results, nil
}

// resultHeap is a max-heap under the (distance, ID) total order: the root is
// the worst retained result.
type resultHeap []Result

func (h resultHeap) Len() int { return len(h) }

func (h resultHeap) Less(i, j int) bool {
	if h[i].Distance != h[j].Distance {
		return h[i].Distance > h[j].Distance
	}
	return h[i].ID > h[j].ID
}

func (h resultHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *resultHeap) Push(x any) { *h = append(*h, x.(Result)) }

func (h *resultHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

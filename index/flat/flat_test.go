package flat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/lazymode/distance"
)

func newL2Index(t *testing.T, rows [][]float32) *Index {
	t.Helper()
	idx, err := New(func(o *Options) {
		o.Metric = distance.MetricSquaredL2
		o.Accelerated = false
	})
	require.NoError(t, err)
	require.NoError(t, idx.SetVectors(rows))
	return idx
}

func TestQuery_Ordering(t *testing.T) {
	idx := newL2Index(t, [][]float32{
		{0, 3}, // distance 9
		{0, 1}, // distance 1
		{0, 2}, // distance 4
	})

	results, err := idx.Query([]float32{0, 0}, 3)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, uint32(1), results[0].ID)
	assert.Equal(t, uint32(2), results[1].ID)
	assert.Equal(t, uint32(0), results[2].ID)
	assert.Less(t, results[0].Distance, results[1].Distance)
	assert.Less(t, results[1].Distance, results[2].Distance)
}

func TestQuery_KLargerThanN(t *testing.T) {
	idx := newL2Index(t, [][]float32{{1}, {2}})

	results, err := idx.Query([]float32{0}, 10)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestQuery_TieBreakLowestID(t *testing.T) {
	idx := newL2Index(t, [][]float32{
		{1, 1},
		{1, 1},
		{1, 1},
	})

	results, err := idx.Query([]float32{0, 0}, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, uint32(0), results[0].ID)
	assert.Equal(t, uint32(1), results[1].ID)
}

func TestQuery_Errors(t *testing.T) {
	t.Run("EmptyIndex", func(t *testing.T) {
		idx, err := New()
		require.NoError(t, err)
		_, err = idx.Query([]float32{1}, 1)
		assert.ErrorIs(t, err, ErrEmptyIndex)
	})

	t.Run("InvalidK", func(t *testing.T) {
		idx := newL2Index(t, [][]float32{{1}})
		_, err := idx.Query([]float32{1}, 0)
		assert.ErrorIs(t, err, ErrInvalidK)
	})

	t.Run("DimensionMismatch", func(t *testing.T) {
		idx := newL2Index(t, [][]float32{{1, 2}})
		_, err := idx.Query([]float32{1}, 1)
		var dm *ErrDimensionMismatch
		require.ErrorAs(t, err, &dm)
		assert.Equal(t, 2, dm.Expected)
		assert.Equal(t, 1, dm.Actual)
	})
}

func TestSetVectors_RaggedRows(t *testing.T) {
	idx, err := New()
	require.NoError(t, err)
	err = idx.SetVectors([][]float32{{1, 2}, {1}})
	var dm *ErrDimensionMismatch
	assert.ErrorAs(t, err, &dm)
}

func TestQueryWithin(t *testing.T) {
	idx := newL2Index(t, [][]float32{
		{0, 1}, // distance 1, excluded
		{0, 2}, // distance 4
		{0, 3}, // distance 9
	})

	t.Run("RestrictsToCandidates", func(t *testing.T) {
		results, err := idx.QueryWithin([]float32{0, 0}, 2, []uint32{1, 2})
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, uint32(1), results[0].ID)
		assert.Equal(t, uint32(2), results[1].ID)
	})

	t.Run("EmptyCandidatesFallsBackToFullScan", func(t *testing.T) {
		results, err := idx.QueryWithin([]float32{0, 0}, 1, nil)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, uint32(0), results[0].ID)
	})

	t.Run("OutOfRangeIDsIgnored", func(t *testing.T) {
		results, err := idx.QueryWithin([]float32{0, 0}, 3, []uint32{1, 99})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, uint32(1), results[0].ID)
	})
}

func TestQuery_CosineAcceleratedParity(t *testing.T) {
	rows := [][]float32{
		{0.6, 0.8, 0},
		{0, 0.6, 0.8},
		{1, 0, 0},
		{0, 0, 1},
	}
	query := []float32{0.577, 0.577, 0.577}

	build := func(accel bool) *Index {
		idx, err := New(func(o *Options) {
			o.Metric = distance.MetricCosine
			o.Accelerated = accel
		})
		require.NoError(t, err)
		require.NoError(t, idx.SetVectors(rows))
		return idx
	}

	cpuResults, err := build(false).Query(query, 4)
	require.NoError(t, err)
	accelResults, err := build(true).Query(query, 4)
	require.NoError(t, err)

	require.Len(t, accelResults, len(cpuResults))
	for i := range cpuResults {
		assert.Equal(t, cpuResults[i].ID, accelResults[i].ID)
		assert.InDelta(t, cpuResults[i].Distance, accelResults[i].Distance, 1e-4)
	}
}

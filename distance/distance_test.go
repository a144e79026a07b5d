package distance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricString(t *testing.T) {
	assert.Equal(t, "cosine", MetricCosine.String())
	assert.Equal(t, "squared_l2", MetricSquaredL2.String())
}

func TestParseMetric(t *testing.T) {
	m, err := ParseMetric("cosine")
	require.NoError(t, err)
	assert.Equal(t, MetricCosine, m)

	m, err = ParseMetric("squared_l2")
	require.NoError(t, err)
	assert.Equal(t, MetricSquaredL2, m)

	_, err = ParseMetric("manhattan")
	assert.Error(t, err)
}

func TestKernels(t *testing.T) {
	a := []float32{1, 0, 2}
	b := []float32{0, 1, 2}

	assert.InDelta(t, 4.0, Dot(a, b), 1e-6)
	assert.InDelta(t, 2.0, SquaredL2(a, b), 1e-6)
	assert.InDelta(t, 0.0, SquaredL2(a, a), 1e-6)
	assert.InDelta(t, 0.0, Cosine(a, a), 1e-6)

	// Orthogonal vectors have the maximum cosine distance 1.
	assert.InDelta(t, 1.0, Cosine([]float32{1, 0}, []float32{0, 1}), 1e-6)
}

func TestCosine_ZeroVector(t *testing.T) {
	assert.Equal(t, float32(1), Cosine([]float32{0, 0}, []float32{1, 2}))
	assert.Equal(t, float32(1), Cosine([]float32{1, 2}, []float32{0, 0}))
}

func TestNormalizeL2InPlace(t *testing.T) {
	v := []float32{3, 4}
	require.True(t, NormalizeL2InPlace(v))
	assert.InDelta(t, 0.6, v[0], 1e-6)
	assert.InDelta(t, 0.8, v[1], 1e-6)

	zero := []float32{0, 0}
	assert.False(t, NormalizeL2InPlace(zero))
	assert.Equal(t, []float32{0, 0}, zero)
}

func TestProvider_AcceleratedParity(t *testing.T) {
	vectors := [][]float32{
		{1, 0, 0, 2},
		{0.5, 0.5, 0.5, 0.5},
		{0, 0, 0, 0},
		{-1, 2, -3, 4},
	}
	query := []float32{0.1, 0.2, 0.3, 0.4}

	for _, metric := range []Metric{MetricCosine, MetricSquaredL2} {
		cpu, err := Provider(metric, false)
		require.NoError(t, err)
		accel, err := Provider(metric, true)
		require.NoError(t, err)

		for _, vec := range vectors {
			assert.InDelta(t, cpu(query, vec), accel(query, vec), 1e-4,
				"metric %v vector %v", metric, vec)
		}
	}
}

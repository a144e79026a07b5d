// Package distance provides the distance metrics used for nearest-neighbor
// matching, with a pure-Go implementation and a SIMD-accelerated variant
// backed by github.com/viant/vec. Both variants produce the same ordering
// within floating-point tolerance; acceleration is a performance choice, not
// a semantic one.
package distance

import (
	"fmt"
	"math"

	"github.com/viant/vec/search"
)

// Metric identifies the distance function used for vector comparison.
type Metric int

const (
	// MetricCosine is cosine distance (1 - cosine similarity). With
	// L2-normalized vectors it reduces to 1 - dot product. Default.
	MetricCosine Metric = iota
	// MetricSquaredL2 is squared Euclidean distance.
	MetricSquaredL2
)

func (m Metric) String() string {
	switch m {
	case MetricCosine:
		return "cosine"
	case MetricSquaredL2:
		return "squared_l2"
	default:
		return fmt.Sprintf("unknown(%d)", int(m))
	}
}

// ParseMetric resolves a metric by its stable name, as stored in snapshots.
func ParseMetric(name string) (Metric, error) {
	switch name {
	case "cosine":
		return MetricCosine, nil
	case "squared_l2":
		return MetricSquaredL2, nil
	default:
		return 0, fmt.Errorf("unknown metric: %q", name)
	}
}

// Func computes the distance between two vectors of equal length.
// Lower is closer for all supported metrics.
type Func func(a, b []float32) float32

// Dot returns the dot product of a and b.
// Assumes equal length (caller's responsibility).
func Dot(a, b []float32) float32 {
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// SquaredL2 returns the squared Euclidean distance between a and b.
func SquaredL2(a, b []float32) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// Cosine returns the cosine distance between a and b. A zero vector on
// either side yields the maximum distance 1.
func Cosine(a, b []float32) float32 {
	var dot, na, nb float32
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 1
	}
	return 1 - dot/(float32(math.Sqrt(float64(na)))*float32(math.Sqrt(float64(nb))))
}

// NormalizeL2InPlace L2-normalizes v in place.
// Returns false if v has zero L2 norm (v is left unchanged).
func NormalizeL2InPlace(v []float32) bool {
	norm2 := Dot(v, v)
	if norm2 == 0 {
		return false
	}
	inv := 1 / float32(math.Sqrt(float64(norm2)))
	for i := range v {
		v[i] *= inv
	}
	return true
}

// acceleratedSquaredL2 computes squared L2 via the viant/vec SIMD kernels.
func acceleratedSquaredL2(a, b []float32) float32 {
	d := search.Float32s(a).EuclideanDistance(b)
	return d * d
}

// acceleratedCosine computes cosine distance via the viant/vec SIMD kernels.
func acceleratedCosine(a, b []float32) float32 {
	va := search.Float32s(a)
	vb := search.Float32s(b)
	ma := va.Magnitude()
	mb := vb.Magnitude()
	if ma == 0 || mb == 0 {
		return 1
	}
	return va.CosineDistanceWithMagnitude(b, ma, mb)
}

// Provider returns the distance function for the given metric.
// With accelerated set, SIMD kernels are used where available.
func Provider(m Metric, accelerated bool) (Func, error) {
	switch m {
	case MetricCosine:
		if accelerated {
			return acceleratedCosine, nil
		}
		return Cosine, nil
	case MetricSquaredL2:
		if accelerated {
			return acceleratedSquaredL2, nil
		}
		return SquaredL2, nil
	default:
		return nil, fmt.Errorf("unsupported metric: %v", m)
	}
}

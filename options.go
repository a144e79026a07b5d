package lazymode

import (
	"github.com/hupe1980/lazymode/codec"
	"github.com/hupe1980/lazymode/distance"
	"github.com/hupe1980/lazymode/persistence"
)

// Options contains configuration for a Model.
type Options struct {
	// K is the number of nearest neighbors considered per prediction.
	K int

	// MaxFeatures caps the vectorizer vocabulary size.
	MaxFeatures int

	// Metric selects the distance function. Default: cosine.
	Metric distance.Metric

	// Accelerated selects the SIMD distance kernels. Ordering is identical
	// to the pure-Go path within floating-point tolerance; this is a
	// performance choice only.
	Accelerated bool

	// FallbackThreshold is the minimum cosine similarity of the best match
	// below which the placeholder skeleton is used instead of adapting a
	// neighbor template. 0 disables the threshold (the nearest match is
	// always used, however dissimilar). Only meaningful for MetricCosine.
	FallbackThreshold float32

	// LexicalPruning restricts cosine search to training rows sharing at
	// least one token with the query. Exact for cosine (disjoint rows
	// score 0); ignored for other metrics.
	LexicalPruning bool

	// Codec encodes snapshot payloads. Default: codec.Default.
	Codec codec.Codec

	// Compression selects snapshot payload compression.
	Compression persistence.Compression

	// Logger receives structured operation logs. Default: NoopLogger.
	Logger *Logger

	// Metrics receives operational metrics. Default: NoopMetricsCollector.
	Metrics MetricsCollector
}

// DefaultOptions are the defaults applied by New.
var DefaultOptions = Options{
	K:                 3,
	MaxFeatures:       500,
	Metric:            distance.MetricCosine,
	Accelerated:       true,
	FallbackThreshold: 0.1,
	LexicalPruning:    true,
	Compression:       persistence.CompressionZstd,
}

// WithK sets the neighbor count.
func WithK(k int) func(*Options) {
	return func(o *Options) { o.K = k }
}

// WithMaxFeatures sets the vocabulary cap.
func WithMaxFeatures(n int) func(*Options) {
	return func(o *Options) { o.MaxFeatures = n }
}

// WithMetric sets the distance metric.
func WithMetric(m distance.Metric) func(*Options) {
	return func(o *Options) { o.Metric = m }
}

// WithAcceleration enables or disables the SIMD distance kernels.
func WithAcceleration(on bool) func(*Options) {
	return func(o *Options) { o.Accelerated = on }
}

// WithFallbackThreshold sets the minimum best-match similarity; 0 disables
// the fallback.
func WithFallbackThreshold(t float32) func(*Options) {
	return func(o *Options) { o.FallbackThreshold = t }
}

// WithLogger sets the logger.
func WithLogger(l *Logger) func(*Options) {
	return func(o *Options) { o.Logger = l }
}

// WithMetrics sets the metrics collector.
func WithMetrics(m MetricsCollector) func(*Options) {
	return func(o *Options) { o.Metrics = m }
}

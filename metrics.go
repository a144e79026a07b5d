package lazymode

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus; all methods must be safe for concurrent use.
type MetricsCollector interface {
	// RecordTrain is called after each training run.
	RecordTrain(examples int, duration time.Duration, err error)

	// RecordPredict is called after each prediction. fallback reports
	// whether the placeholder skeleton was used instead of a matched
	// template.
	RecordPredict(duration time.Duration, fallback bool, err error)

	// RecordSave is called after each snapshot save.
	RecordSave(duration time.Duration, err error)

	// RecordLoad is called after each snapshot load.
	RecordLoad(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordTrain(int, time.Duration, error)    {}
func (NoopMetricsCollector) RecordPredict(time.Duration, bool, error) {}
func (NoopMetricsCollector) RecordSave(time.Duration, error)          {}
func (NoopMetricsCollector) RecordLoad(time.Duration, error)          {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and tests without external dependencies.
type BasicMetricsCollector struct {
	TrainCount        atomic.Int64
	TrainErrors       atomic.Int64
	PredictCount      atomic.Int64
	PredictFallbacks  atomic.Int64
	PredictErrors     atomic.Int64
	PredictTotalNanos atomic.Int64
	SaveCount         atomic.Int64
	SaveErrors        atomic.Int64
	LoadCount         atomic.Int64
	LoadErrors        atomic.Int64
}

func (b *BasicMetricsCollector) RecordTrain(_ int, _ time.Duration, err error) {
	b.TrainCount.Add(1)
	if err != nil {
		b.TrainErrors.Add(1)
	}
}

func (b *BasicMetricsCollector) RecordPredict(d time.Duration, fallback bool, err error) {
	b.PredictCount.Add(1)
	b.PredictTotalNanos.Add(d.Nanoseconds())
	if fallback {
		b.PredictFallbacks.Add(1)
	}
	if err != nil {
		b.PredictErrors.Add(1)
	}
}

func (b *BasicMetricsCollector) RecordSave(_ time.Duration, err error) {
	b.SaveCount.Add(1)
	if err != nil {
		b.SaveErrors.Add(1)
	}
}

func (b *BasicMetricsCollector) RecordLoad(_ time.Duration, err error) {
	b.LoadCount.Add(1)
	if err != nil {
		b.LoadErrors.Add(1)
	}
}

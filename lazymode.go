// Package lazymode formats free-form bug and issue descriptions into a fixed
// GitHub-issue Markdown template.
//
// The model is a nearest-neighbor template matcher: training inputs are
// vectorized with a capped-vocabulary TF-IDF vectorizer, predictions find
// the closest training example and adapt its formatted output to the new
// input. There is no language understanding beyond lexical similarity.
//
// # Quick start
//
//	model, err := lazymode.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	inputs, outputs := dataset.Pairs(dataset.Demo())
//	if _, err := model.Train(inputs, outputs); err != nil {
//	    log.Fatal(err)
//	}
//	md, err := model.Predict("App crashes on login button")
//
// A trained model round-trips through Save/Load as a single checksummed
// snapshot blob; see the persistence and blobstore packages.
//
// # Concurrency
//
// A Model is not internally synchronized. Concurrent Predict and Evaluate
// calls are safe as long as no Train or Load is in flight; coordinating
// Train against readers is the caller's responsibility.
package lazymode

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"github.com/hupe1980/lazymode/blobstore"
	"github.com/hupe1980/lazymode/distance"
	"github.com/hupe1980/lazymode/index/flat"
	"github.com/hupe1980/lazymode/issue"
	"github.com/hupe1980/lazymode/lexical"
	"github.com/hupe1980/lazymode/persistence"
	"github.com/hupe1980/lazymode/vectorizer"
)

// Model is the nearest-neighbor issue formatter. The zero value is not
// usable; construct with New or Load.
type Model struct {
	opts    Options
	logger  *Logger
	metrics MetricsCollector

	vectorizer *vectorizer.Vectorizer
	index      *flat.Index
	lexical    *lexical.Index
	inputs     []string
	outputs    []string
	trained    bool
}

// TrainStats summarizes a training run.
type TrainStats struct {
	Examples       int
	VocabularySize int
	Duration       time.Duration
}

// EvalStats is the diagnostic score of Evaluate. Both values are in [0, 1].
type EvalStats struct {
	// StructuralAccuracy is the fraction of predictions carrying a title
	// heading, a Description section and a task list.
	StructuralAccuracy float64

	// SectionCoverage is the average fraction of expected template
	// sections present per prediction.
	SectionCoverage float64
}

// Stats describes a model's in-memory state.
type Stats struct {
	Trained        bool
	Examples       int
	VocabularySize int
	SizeBytes      int64
}

// New creates an untrained Model.
func New(optFns ...func(o *Options)) (*Model, error) {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.K < 1 {
		return nil, fmt.Errorf("k must be positive, got %d", opts.K)
	}
	// Validate the metric up front so Train cannot fail on configuration.
	if _, err := distance.Provider(opts.Metric, opts.Accelerated); err != nil {
		return nil, err
	}

	m := &Model{
		opts:    opts,
		logger:  opts.Logger,
		metrics: opts.Metrics,
	}
	if m.logger == nil {
		m.logger = NoopLogger()
	}
	if m.metrics == nil {
		m.metrics = NoopMetricsCollector{}
	}
	return m, nil
}

// Train fits the model on parallel input/output pairs, replacing any
// previous state wholesale. Validation happens before any mutation: on
// error the previously trained state is untouched.
func (m *Model) Train(inputs, outputs []string) (TrainStats, error) {
	start := time.Now()

	if len(inputs) != len(outputs) {
		err := fmt.Errorf("%w: %d inputs, %d outputs", ErrInvalidTrainingData, len(inputs), len(outputs))
		m.metrics.RecordTrain(len(inputs), time.Since(start), err)
		m.logger.LogTrain(context.Background(), len(inputs), 0, time.Since(start), err)
		return TrainStats{}, err
	}
	if len(inputs) == 0 {
		err := fmt.Errorf("%w: no training pairs", ErrInvalidTrainingData)
		m.metrics.RecordTrain(0, time.Since(start), err)
		m.logger.LogTrain(context.Background(), 0, 0, time.Since(start), err)
		return TrainStats{}, err
	}

	vec := vectorizer.New(m.opts.MaxFeatures)
	rows := vec.FitTransform(inputs)

	idx, err := flat.New(func(o *flat.Options) {
		o.Metric = m.opts.Metric
		o.Accelerated = m.opts.Accelerated
	})
	if err != nil {
		return TrainStats{}, err
	}
	if err := idx.SetVectors(rows); err != nil {
		return TrainStats{}, err
	}

	var lex *lexical.Index
	if m.opts.LexicalPruning && m.opts.Metric == distance.MetricCosine {
		lex = lexical.Build(inputs)
	}

	// Commit the new state only now that every step has succeeded.
	m.vectorizer = vec
	m.index = idx
	m.lexical = lex
	m.inputs = slices.Clone(inputs)
	m.outputs = slices.Clone(outputs)
	m.trained = true

	stats := TrainStats{
		Examples:       len(inputs),
		VocabularySize: vec.Dimension(),
		Duration:       time.Since(start),
	}
	m.metrics.RecordTrain(stats.Examples, stats.Duration, nil)
	m.logger.LogTrain(context.Background(), stats.Examples, stats.VocabularySize, stats.Duration, nil)
	return stats, nil
}

// Predict formats input as GitHub-issue Markdown using the nearest training
// example's template. Side-effect free.
func (m *Model) Predict(input string) (string, error) {
	start := time.Now()
	out, fallback, err := m.predict(input)
	m.metrics.RecordPredict(time.Since(start), fallback, err)
	m.logger.LogPredict(context.Background(), fallback, time.Since(start), err)
	return out, err
}

func (m *Model) predict(input string) (out string, fallback bool, err error) {
	if !m.trained {
		return "", false, ErrNotTrained
	}

	query, err := m.vectorizer.Transform(input)
	if err != nil {
		return "", false, err
	}

	// A zero query vector shares no vocabulary with the training set;
	// cosine distance is undefined there, so it always takes the fallback.
	if isZero(query) {
		return issue.Fallback(input), true, nil
	}

	results, err := m.search(input, query)
	if err != nil {
		return "", false, err
	}

	best := results[0]
	if m.opts.Metric == distance.MetricCosine && m.opts.FallbackThreshold > 0 {
		if similarity := 1 - best.Distance; similarity < m.opts.FallbackThreshold {
			return issue.Fallback(input), true, nil
		}
	}
	return issue.Adapt(input, m.outputs[best.ID]), false, nil
}

func (m *Model) search(input string, query []float32) ([]flat.Result, error) {
	if m.lexical != nil {
		if candidates := m.lexical.Candidates(input); !candidates.IsEmpty() {
			return m.index.QueryWithin(query, m.opts.K, candidates.ToArray())
		}
	}
	return m.index.Query(query, m.opts.K)
}

// Evaluate predicts over the test inputs and scores the structural quality
// of the output. Diagnostic only; it makes no correctness guarantee.
func (m *Model) Evaluate(testInputs, testOutputs []string) (EvalStats, error) {
	if !m.trained {
		return EvalStats{}, ErrNotTrained
	}
	if len(testInputs) != len(testOutputs) {
		return EvalStats{}, fmt.Errorf("%w: %d test inputs, %d test outputs",
			ErrInvalidTrainingData, len(testInputs), len(testOutputs))
	}
	if len(testInputs) == 0 {
		return EvalStats{}, nil
	}

	var correct, sectionHits int
	for _, input := range testInputs {
		predicted, err := m.Predict(input)
		if err != nil {
			return EvalStats{}, err
		}

		hasTitle := len(predicted) >= 2 && predicted[:2] == "##"
		hasDescription := issue.HasSection(predicted, "Description")
		hasTasks := issue.HasSection(predicted, "Proposed Tasks")
		if hasTitle && hasDescription && hasTasks {
			correct++
		}
		for _, section := range issue.Sections {
			if issue.HasSection(predicted, section) {
				sectionHits++
			}
		}
	}

	n := len(testInputs)
	return EvalStats{
		StructuralAccuracy: float64(correct) / float64(n),
		SectionCoverage:    float64(sectionHits) / float64(n*len(issue.Sections)),
	}, nil
}

// Stats returns the model's current state, including an approximate
// in-memory size.
func (m *Model) Stats() Stats {
	s := Stats{Trained: m.trained, Examples: len(m.outputs)}
	if m.vectorizer != nil {
		s.VocabularySize = m.vectorizer.Dimension()
	}
	for _, in := range m.inputs {
		s.SizeBytes += int64(len(in))
	}
	for _, out := range m.outputs {
		s.SizeBytes += int64(len(out))
	}
	if m.index != nil {
		s.SizeBytes += int64(m.index.Len()) * int64(m.index.Dimension()) * 4
	}
	return s
}

// Save writes the full model state as a snapshot blob. The model must be
// trained.
func (m *Model) Save(ctx context.Context, store blobstore.Store, name string) error {
	start := time.Now()
	err := m.save(ctx, store, name)
	m.metrics.RecordSave(time.Since(start), err)
	m.logger.LogSave(ctx, name, time.Since(start), err)
	return err
}

func (m *Model) save(ctx context.Context, store blobstore.Store, name string) error {
	if !m.trained {
		return ErrNotTrained
	}

	vecSnap := m.vectorizer.Snapshot()
	snap := &persistence.Snapshot{
		SchemaVersion:     persistence.SchemaVersion,
		K:                 m.opts.K,
		MaxFeatures:       vecSnap.MaxFeatures,
		Metric:            m.opts.Metric.String(),
		FallbackThreshold: m.opts.FallbackThreshold,
		Vocabulary:        vecSnap.Vocabulary,
		IDF:               vecSnap.IDF,
		Vectors:           m.trainingVectors(),
		Inputs:            m.inputs,
		Outputs:           m.outputs,
	}

	blob, err := store.Create(ctx, name)
	if err != nil {
		return err
	}
	if err := persistence.Write(blob, snap, m.opts.Codec, m.opts.Compression); err != nil {
		blob.Close()
		return err
	}
	return blob.Close()
}

// trainingVectors recomputes the stored rows from the training inputs.
// Transform is deterministic over a frozen vocabulary, so this equals the
// matrix built at train time.
func (m *Model) trainingVectors() [][]float32 {
	rows := make([][]float32, len(m.inputs))
	for i, in := range m.inputs {
		rows[i], _ = m.vectorizer.Transform(in)
	}
	return rows
}

// SaveFile writes the model snapshot to a local file path.
func (m *Model) SaveFile(path string) error {
	store := blobstore.NewLocalStore(filepath.Dir(path))
	return m.Save(context.Background(), store, filepath.Base(path))
}

// Load reads a model snapshot from a blob store. Configuration recorded in
// the snapshot (k, vocabulary cap, metric, fallback threshold) wins over
// the same settings in optFns; runtime-only options (logger, metrics,
// acceleration) apply as given. Any failure yields *ErrModelLoad and no
// model.
func Load(ctx context.Context, store blobstore.Store, name string, optFns ...func(o *Options)) (*Model, error) {
	m, err := load(ctx, store, name, optFns...)
	if err != nil {
		return nil, err
	}
	m.metrics.RecordLoad(0, nil)
	m.logger.LogLoad(ctx, name, len(m.outputs), nil)
	return m, nil
}

func load(ctx context.Context, store blobstore.Store, name string, optFns ...func(o *Options)) (*Model, error) {
	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, &ErrModelLoad{Name: name, cause: err}
	}
	defer blob.Close()

	snap, err := persistence.Read(blob)
	if err != nil {
		return nil, &ErrModelLoad{Name: name, cause: err}
	}

	metric, err := distance.ParseMetric(snap.Metric)
	if err != nil {
		return nil, &ErrModelLoad{Name: name, cause: err}
	}

	m, err := New(append(slices.Clone(optFns), func(o *Options) {
		o.K = snap.K
		o.MaxFeatures = snap.MaxFeatures
		o.Metric = metric
		o.FallbackThreshold = snap.FallbackThreshold
	})...)
	if err != nil {
		return nil, &ErrModelLoad{Name: name, cause: err}
	}

	vec, err := vectorizer.FromSnapshot(vectorizer.Snapshot{
		MaxFeatures: snap.MaxFeatures,
		Vocabulary:  snap.Vocabulary,
		IDF:         snap.IDF,
	})
	if err != nil {
		return nil, &ErrModelLoad{Name: name, cause: err}
	}

	idx, err := flat.New(func(o *flat.Options) {
		o.Metric = metric
		o.Accelerated = m.opts.Accelerated
	})
	if err != nil {
		return nil, &ErrModelLoad{Name: name, cause: err}
	}
	if err := idx.SetVectors(snap.Vectors); err != nil {
		return nil, &ErrModelLoad{Name: name, cause: err}
	}

	m.vectorizer = vec
	m.index = idx
	if m.opts.LexicalPruning && metric == distance.MetricCosine {
		m.lexical = lexical.Build(snap.Inputs)
	}
	m.inputs = snap.Inputs
	m.outputs = snap.Outputs
	m.trained = true
	return m, nil
}

// LoadFile reads a model snapshot from a local file path.
func LoadFile(path string, optFns ...func(o *Options)) (*Model, error) {
	store := blobstore.NewLocalStore(filepath.Dir(path))
	return Load(context.Background(), store, filepath.Base(path), optFns...)
}

func isZero(v []float32) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}

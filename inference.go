package lazymode

import (
	"context"
	"errors"
	"path/filepath"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/hupe1980/lazymode/blobstore"
	"github.com/hupe1980/lazymode/dataset"
)

// DefaultModelPath is the snapshot location used when no model or path is
// supplied to FormatIssue.
func DefaultModelPath() string {
	return filepath.Join("models", "lazymode.model")
}

// defaultModels caches demo models by resolved snapshot path so repeated
// FormatIssue calls share one trained instance. singleflight deduplicates
// the initial train-or-load across concurrent first callers.
var (
	defaultModels sync.Map // abs path -> *Model
	defaultGroup  singleflight.Group
)

// DefaultModel returns the process-wide model for path, loading the
// snapshot if it exists and otherwise training on the demo corpus and
// saving the result to path.
func DefaultModel(path string, optFns ...func(o *Options)) (*Model, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if cached, ok := defaultModels.Load(abs); ok {
		return cached.(*Model), nil
	}

	v, err, _ := defaultGroup.Do(abs, func() (any, error) {
		if cached, ok := defaultModels.Load(abs); ok {
			return cached, nil
		}
		m, err := loadOrTrainDefault(abs, optFns...)
		if err != nil {
			return nil, err
		}
		defaultModels.Store(abs, m)
		return m, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Model), nil
}

func loadOrTrainDefault(path string, optFns ...func(o *Options)) (*Model, error) {
	m, err := LoadFile(path, optFns...)
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, blobstore.ErrNotFound) {
		return nil, err
	}

	m, err = New(optFns...)
	if err != nil {
		return nil, err
	}
	inputs, outputs := dataset.Pairs(dataset.Demo())
	if _, err := m.Train(inputs, outputs); err != nil {
		return nil, err
	}
	if err := m.SaveFile(path); err != nil {
		return nil, err
	}
	return m, nil
}

// ResetDefaultModels drops all cached default models. Mainly for tests and
// for reloading after an external snapshot update.
func ResetDefaultModels() {
	defaultModels.Range(func(key, _ any) bool {
		defaultModels.Delete(key)
		return true
	})
}

// FormatOptions configures the standalone formatting helpers.
type FormatOptions struct {
	// Model, when set, is used directly and no default model is loaded.
	Model *Model

	// ModelPath overrides DefaultModelPath for the cached default model.
	ModelPath string

	// ModelOptions apply when the default model is trained or loaded.
	ModelOptions []func(o *Options)

	// Concurrency bounds the FormatIssues worker count.
	// Default: runtime.GOMAXPROCS(0).
	Concurrency int
}

// WithModel uses a pre-trained model.
func WithModel(m *Model) func(*FormatOptions) {
	return func(o *FormatOptions) { o.Model = m }
}

// WithModelPath sets the default model's snapshot path.
func WithModelPath(path string) func(*FormatOptions) {
	return func(o *FormatOptions) { o.ModelPath = path }
}

// WithModelOptions forwards model options to default-model initialization.
func WithModelOptions(optFns ...func(o *Options)) func(*FormatOptions) {
	return func(o *FormatOptions) { o.ModelOptions = optFns }
}

func resolveModel(optFns []func(*FormatOptions)) (*Model, FormatOptions, error) {
	var fo FormatOptions
	for _, fn := range optFns {
		fn(&fo)
	}
	if fo.Model != nil {
		return fo.Model, fo, nil
	}
	path := fo.ModelPath
	if path == "" {
		path = DefaultModelPath()
	}
	m, err := DefaultModel(path, fo.ModelOptions...)
	return m, fo, err
}

// FormatIssue formats a raw issue description into GitHub-issue Markdown.
// Without options it uses the cached default model, training and saving a
// demo model on first use.
func FormatIssue(rawInput string, optFns ...func(*FormatOptions)) (string, error) {
	m, _, err := resolveModel(optFns)
	if err != nil {
		return "", err
	}
	return m.Predict(rawInput)
}

// FormatIssues formats multiple inputs, preserving input order. Predictions
// run concurrently with bounded parallelism; the first error cancels the
// remaining work.
func FormatIssues(ctx context.Context, rawInputs []string, optFns ...func(*FormatOptions)) ([]string, error) {
	m, fo, err := resolveModel(optFns)
	if err != nil {
		return nil, err
	}

	limit := fo.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	results := make([]string, len(rawInputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, input := range rawInputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out, err := m.Predict(input)
			if err != nil {
				return err
			}
			results[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// QuickFormat trains a throwaway in-memory model on the demo corpus and
// formats rawInput with it. Slower than FormatIssue but leaves no files
// behind.
func QuickFormat(rawInput string) (string, error) {
	m, err := New()
	if err != nil {
		return "", err
	}
	inputs, outputs := dataset.Pairs(dataset.Demo())
	if _, err := m.Train(inputs, outputs); err != nil {
		return "", err
	}
	return m.Predict(rawInput)
}

package dataset

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/lazymode/issue"
)

func TestDemo(t *testing.T) {
	examples := Demo()
	require.GreaterOrEqual(t, len(examples), 10)

	seen := make(map[string]bool, len(examples))
	for _, ex := range examples {
		assert.NotEmpty(t, ex.Input)
		assert.False(t, seen[ex.Input], "duplicate input %q", ex.Input)
		seen[ex.Input] = true

		// Every demo output is a complete issue document.
		assert.True(t, strings.HasPrefix(ex.Output, "## "), "output for %q has no heading", ex.Input)
		for _, section := range issue.Sections {
			assert.True(t, issue.HasSection(ex.Output, section),
				"output for %q missing section %q", ex.Input, section)
		}
	}
}

func TestPairs(t *testing.T) {
	examples := []Example{
		{Input: "a", Output: "A"},
		{Input: "b", Output: "B"},
	}
	inputs, outputs := Pairs(examples)
	assert.Equal(t, []string{"a", "b"}, inputs)
	assert.Equal(t, []string{"A", "B"}, outputs)
}

func TestSplit(t *testing.T) {
	examples := make([]Example, 10)

	train, validation := Split(examples, 0.9)
	assert.Len(t, train, 9)
	assert.Len(t, validation, 1)

	train, validation = Split(examples, 0)
	assert.Empty(t, train)
	assert.Len(t, validation, 10)

	// Out-of-range ratios clamp instead of panicking.
	train, validation = Split(examples, 1.5)
	assert.Len(t, train, 10)
	assert.Empty(t, validation)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.json")
	examples := Demo()[:3]

	require.NoError(t, Save(path, examples))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, examples, loaded)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

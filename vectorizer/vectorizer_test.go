package vectorizer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"app", "crashes", "on", "login"}, Tokenize("App crashes on login!"))
	assert.Equal(t, []string{"error", "500", "api"}, Tokenize("Error-500 (API)"))
	assert.Empty(t, Tokenize("!!! ???"))
	assert.Empty(t, Tokenize(""))
}

func TestFit_TopFeaturesAndTieBreak(t *testing.T) {
	v := New(2)
	v.Fit([]string{
		"alpha beta gamma",
		"alpha beta",
		"alpha",
	})

	// alpha(3) and beta(2) win; gamma(1) is cut by the cap.
	require.Equal(t, 2, v.Dimension())
	snap := v.Snapshot()
	assert.Equal(t, 0, snap.Vocabulary["alpha"])
	assert.Equal(t, 1, snap.Vocabulary["beta"])
	assert.NotContains(t, snap.Vocabulary, "gamma")
}

func TestFit_TiesBrokenByFirstSeen(t *testing.T) {
	v := New(3)
	v.Fit([]string{"zebra yak xenon"})

	snap := v.Snapshot()
	assert.Equal(t, 0, snap.Vocabulary["zebra"])
	assert.Equal(t, 1, snap.Vocabulary["yak"])
	assert.Equal(t, 2, snap.Vocabulary["xenon"])
}

func TestTransform(t *testing.T) {
	v := New(10)
	v.Fit([]string{"login crash", "database timeout"})

	t.Run("NormalizedOutput", func(t *testing.T) {
		vec, err := v.Transform("login crash crash")
		require.NoError(t, err)
		require.Len(t, vec, v.Dimension())

		var norm float64
		for _, x := range vec {
			norm += float64(x) * float64(x)
		}
		assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-5)
	})

	t.Run("UnseenTokensIgnored", func(t *testing.T) {
		vec, err := v.Transform("completely unrelated words")
		require.NoError(t, err)
		require.Len(t, vec, v.Dimension())
		for _, x := range vec {
			assert.Zero(t, x)
		}
	})

	t.Run("EmptyInputIsZeroVector", func(t *testing.T) {
		vec, err := v.Transform("")
		require.NoError(t, err)
		for _, x := range vec {
			assert.Zero(t, x)
		}
	})
}

func TestTransform_NotFitted(t *testing.T) {
	v := New(10)
	_, err := v.Transform("anything")
	assert.ErrorIs(t, err, ErrNotFitted)
}

func TestFitTransform_RowsMatchTransform(t *testing.T) {
	texts := []string{"app crashes on login", "database timeout", "slow dashboard"}

	v := New(50)
	rows := v.FitTransform(texts)
	require.Len(t, rows, len(texts))

	for i, text := range texts {
		vec, err := v.Transform(text)
		require.NoError(t, err)
		assert.Equal(t, vec, rows[i])
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	v := New(10)
	v.Fit([]string{"login crash", "database timeout", "login slow"})

	restored, err := FromSnapshot(v.Snapshot())
	require.NoError(t, err)
	require.True(t, restored.Fitted())
	assert.Equal(t, v.Dimension(), restored.Dimension())

	want, err := v.Transform("login timeout")
	require.NoError(t, err)
	got, err := restored.Transform("login timeout")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFromSnapshot_Invalid(t *testing.T) {
	_, err := FromSnapshot(Snapshot{
		MaxFeatures: 10,
		Vocabulary:  map[string]int{"a": 0, "b": 1},
		IDF:         []float32{1},
	})
	assert.Error(t, err)

	_, err = FromSnapshot(Snapshot{
		MaxFeatures: 10,
		Vocabulary:  map[string]int{"a": 5},
		IDF:         []float32{1},
	})
	assert.Error(t, err)
}

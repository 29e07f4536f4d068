package match_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/GregoryLi360/ciridae-takehome/pkg/errors"
	"github.com/GregoryLi360/ciridae-takehome/pkg/estimate"
	"github.com/GregoryLi360/ciridae-takehome/pkg/match"
	"github.com/GregoryLi360/ciridae-takehome/pkg/oracle"
)

// matrixScorer returns a fixed score matrix.
func matrixScorer(matrix [][]float64) oracle.Scorer {
	return oracle.ScorerFunc(func(_ context.Context, _, _ []estimate.LineItem) ([][]float64, error) {
		return matrix, nil
	})
}

func items(descriptions ...string) []estimate.LineItem {
	out := make([]estimate.LineItem, len(descriptions))
	for i, d := range descriptions {
		out[i] = estimate.LineItem{Description: d}
	}
	return out
}

func TestItemsBasic(t *testing.T) {
	ctx := context.Background()
	source := items("Carpet", "Paint walls")
	counterpart := items("Carpet - per specs", "Paint the walls - one coat")

	result, err := match.Items(ctx, source, counterpart, matrixScorer([][]float64{
		{0.9, 0.2},
		{0.1, 0.95},
	}), 0.85)
	require.NoError(t, err)

	require.Len(t, result.Matched, 2)
	assert.Equal(t, "Carpet", result.Matched[0].Source.Description)
	assert.Equal(t, "Carpet - per specs", result.Matched[0].Counterpart.Description)
	assert.Equal(t, 0.9, result.Matched[0].Score)
	assert.Empty(t, result.UnmatchedSource)
	assert.Empty(t, result.UnmatchedCounterpart)
}

func TestItemsOptimalNotGreedy(t *testing.T) {
	// Greedy would take (0,0)=0.9 and strand row 1 with 0.3; the optimal
	// assignment takes (0,1)=0.88 and (1,0)=0.87 for a higher total.
	ctx := context.Background()
	result, err := match.Items(ctx, items("a", "b"), items("x", "y"), matrixScorer([][]float64{
		{0.9, 0.88},
		{0.87, 0.3},
	}), 0.85)
	require.NoError(t, err)

	require.Len(t, result.Matched, 2)
	assert.Equal(t, "y", result.Matched[0].Counterpart.Description)
	assert.Equal(t, "x", result.Matched[1].Counterpart.Description)
}

func TestItemsThresholdFilter(t *testing.T) {
	ctx := context.Background()

	t.Run("below-floor pairs return to unmatched pools", func(t *testing.T) {
		result, err := match.Items(ctx, items("a"), items("x"), matrixScorer([][]float64{
			{0.5},
		}), 0.85)
		require.NoError(t, err)

		assert.Empty(t, result.Matched)
		assert.Len(t, result.UnmatchedSource, 1)
		assert.Len(t, result.UnmatchedCounterpart, 1)
	})

	t.Run("raising threshold never adds matches", func(t *testing.T) {
		matrix := [][]float64{
			{0.9, 0.6, 0.2},
			{0.3, 0.86, 0.7},
			{0.1, 0.4, 0.84},
		}
		src := items("a", "b", "c")
		ctr := items("x", "y", "z")

		prev := len(src) + 1
		for _, tau := range []float64{0.5, 0.7, 0.85, 0.87, 0.95} {
			result, err := match.Items(ctx, src, ctr, matrixScorer(matrix), tau)
			require.NoError(t, err)
			assert.LessOrEqual(t, len(result.Matched), prev, "tau=%v", tau)
			prev = len(result.Matched)
		}
	})

	t.Run("zero threshold selects default", func(t *testing.T) {
		result, err := match.Items(ctx, items("a"), items("x"), matrixScorer([][]float64{
			{0.849},
		}), 0)
		require.NoError(t, err)
		assert.Empty(t, result.Matched)
	})
}

func TestItemsPartition(t *testing.T) {
	// matched + unmatched must repartition the inputs exactly, on both sides.
	ctx := context.Background()
	source := items("a", "b", "c")
	counterpart := items("x", "y")

	result, err := match.Items(ctx, source, counterpart, matrixScorer([][]float64{
		{0.9, 0.1},
		{0.1, 0.2},
		{0.1, 0.88},
	}), 0.85)
	require.NoError(t, err)

	gotSource := []string{}
	gotCounterpart := []string{}
	for _, m := range result.Matched {
		gotSource = append(gotSource, m.Source.Description)
		gotCounterpart = append(gotCounterpart, m.Counterpart.Description)
	}
	for _, it := range result.UnmatchedSource {
		gotSource = append(gotSource, it.Description)
	}
	for _, it := range result.UnmatchedCounterpart {
		gotCounterpart = append(gotCounterpart, it.Description)
	}
	assert.ElementsMatch(t, []string{"a", "b", "c"}, gotSource)
	assert.ElementsMatch(t, []string{"x", "y"}, gotCounterpart)
}

func TestItemsEmptySides(t *testing.T) {
	ctx := context.Background()
	scorer := oracle.ScorerFunc(func(_ context.Context, _, _ []estimate.LineItem) ([][]float64, error) {
		t.Fatal("scorer must not be called for empty inputs")
		return nil, nil
	})

	t.Run("empty counterpart", func(t *testing.T) {
		result, err := match.Items(ctx, items("only"), nil, scorer, 0.85)
		require.NoError(t, err)
		assert.Empty(t, result.Matched)
		require.Len(t, result.UnmatchedSource, 1)
		assert.Equal(t, "only", result.UnmatchedSource[0].Description)
		assert.Empty(t, result.UnmatchedCounterpart)
	})

	t.Run("both empty", func(t *testing.T) {
		result, err := match.Items(ctx, nil, nil, scorer, 0.85)
		require.NoError(t, err)
		assert.Empty(t, result.Matched)
	})
}

func TestItemsDeterministic(t *testing.T) {
	ctx := context.Background()
	matrix := [][]float64{
		{0.9, 0.9},
		{0.9, 0.9},
	}
	first, err := match.Items(ctx, items("a", "b"), items("x", "y"), matrixScorer(matrix), 0.85)
	require.NoError(t, err)

	for i := 0; i < 25; i++ {
		again, err := match.Items(ctx, items("a", "b"), items("x", "y"), matrixScorer(matrix), 0.85)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestItemsOracleFailure(t *testing.T) {
	boom := errors.New("scorer offline")
	scorer := oracle.ScorerFunc(func(_ context.Context, _, _ []estimate.LineItem) ([][]float64, error) {
		return nil, boom
	})

	_, err := match.Items(context.Background(), items("a"), items("x"), scorer, 0.85)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsOracleUnavailable(err))
	assert.True(t, errors.Is(err, boom))
}

func TestItemsMalformedMatrix(t *testing.T) {
	_, err := match.Items(context.Background(), items("a", "b"), items("x"), matrixScorer([][]float64{
		{0.5},
	}), 0.85)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsOracleUnavailable(err))
}

package oracle_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GregoryLi360/ciridae-takehome/pkg/estimate"
	"github.com/GregoryLi360/ciridae-takehome/pkg/oracle"
)

func TestLexicalPairer(t *testing.T) {
	ctx := context.Background()
	pairer := oracle.LexicalPairer{}

	t.Run("exact and qualified names pair up", func(t *testing.T) {
		pairings, err := pairer.PairRooms(ctx,
			[]string{"Bathroom", "Kitchen", "Debris Removal"},
			[]string{"Hall Bathroom", "Kitchen"})
		require.NoError(t, err)

		bynames := map[string]string{}
		for _, p := range pairings {
			bynames[p.Source] = p.Counterpart
		}
		assert.Equal(t, "Hall Bathroom", bynames["Bathroom"])
		assert.Equal(t, "Kitchen", bynames["Kitchen"])
		assert.Equal(t, "", bynames["Debris Removal"])
	})

	t.Run("every room appears exactly once", func(t *testing.T) {
		source := []string{"Bedroom 1", "Bedroom 2"}
		counterpart := []string{"Bedroom", "Garage"}
		pairings, err := pairer.PairRooms(ctx, source, counterpart)
		require.NoError(t, err)

		seen := map[string]int{}
		for _, p := range pairings {
			if p.Source != "" {
				seen["s:"+p.Source]++
			}
			if p.Counterpart != "" {
				seen["c:"+p.Counterpart]++
			}
		}
		for name, count := range seen {
			assert.Equal(t, 1, count, name)
		}
		assert.Len(t, seen, len(source)+len(counterpart))
	})

	t.Run("unpairable counterpart rooms come back alone", func(t *testing.T) {
		pairings, err := pairer.PairRooms(ctx, nil, []string{"Attic"})
		require.NoError(t, err)
		require.Len(t, pairings, 1)
		assert.Equal(t, oracle.RoomPairing{Counterpart: "Attic"}, pairings[0])
	})
}

func TestLexicalScorer(t *testing.T) {
	ctx := context.Background()
	scorer := oracle.LexicalScorer{}

	source := []estimate.LineItem{
		{Description: "Carpet"},
		{Description: "Paint the walls - one coat"},
	}
	counterpart := []estimate.LineItem{
		{Description: "Carpet - per specs"},
		{Description: "Tandem axle dump trailer"},
	}

	matrix, err := scorer.Score(ctx, source, counterpart)
	require.NoError(t, err)
	require.Len(t, matrix, 2)
	require.Len(t, matrix[0], 2)

	// Related descriptions outscore unrelated ones.
	assert.Greater(t, matrix[0][0], matrix[0][1])
	assert.Greater(t, matrix[0][0], matrix[1][0])

	t.Run("identical descriptions score 1", func(t *testing.T) {
		m, err := scorer.Score(ctx,
			[]estimate.LineItem{{Description: "Carpet pad"}},
			[]estimate.LineItem{{Description: "carpet  pad"}})
		require.NoError(t, err)
		assert.Equal(t, 1.0, m[0][0])
	})

	t.Run("empty sides yield empty matrix rows", func(t *testing.T) {
		m, err := scorer.Score(ctx, source, nil)
		require.NoError(t, err)
		require.Len(t, m, 2)
		assert.Empty(t, m[0])
	})
}

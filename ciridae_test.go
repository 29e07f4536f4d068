package ciridae_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ciridae "github.com/GregoryLi360/ciridae-takehome"
	"github.com/GregoryLi360/ciridae-takehome/pkg/errors"
	"github.com/GregoryLi360/ciridae-takehome/pkg/estimate"
	"github.com/GregoryLi360/ciridae-takehome/pkg/logging"
	"github.com/GregoryLi360/ciridae-takehome/pkg/oracle"
)

// identityPairer pairs rooms by exact name and leaves the rest unmatched.
func identityPairer() oracle.RoomPairer {
	return oracle.RoomPairerFunc(func(_ context.Context, source, counterpart []string) ([]oracle.RoomPairing, error) {
		other := map[string]bool{}
		for _, n := range counterpart {
			other[n] = true
		}
		var pairings []oracle.RoomPairing
		for _, n := range source {
			if other[n] {
				pairings = append(pairings, oracle.RoomPairing{Source: n, Counterpart: n})
			}
		}
		return pairings, nil
	})
}

// fixedScorer scores every cross pair with the same value.
func fixedScorer(score float64) oracle.Scorer {
	return oracle.ScorerFunc(func(_ context.Context, source, counterpart []estimate.LineItem) ([][]float64, error) {
		matrix := make([][]float64, len(source))
		for i := range matrix {
			row := make([]float64, len(counterpart))
			for j := range row {
				row[j] = score
			}
			matrix[i] = row
		}
		return matrix, nil
	})
}

func newEngine(t *testing.T, opts ...ciridae.Option) ciridae.Comparer {
	t.Helper()
	opts = append([]ciridae.Option{
		ciridae.WithRoomPairer(identityPairer()),
		ciridae.WithScorer(fixedScorer(0.9)),
		ciridae.WithLogger(logging.Nop),
	}, opts...)
	engine, err := ciridae.New(opts...)
	require.NoError(t, err)
	return engine
}

func singleRoomDoc(label, room string, items ...estimate.LineItem) estimate.Document {
	return estimate.Document{
		Label: label,
		Rooms: []estimate.Room{{Name: room, Items: items}},
	}
}

func TestCompareMatchedWithDiffs(t *testing.T) {
	// Same unit, drifting quantity and price: one match, category differing.
	source := singleRoomDoc("contractor", "Living Room", estimate.LineItem{
		Description: "Carpet",
		Quantity:    estimate.Some(100),
		Unit:        "SF",
		UnitPrice:   estimate.Some(3.88),
	})
	counterpart := singleRoomDoc("insurance", "Living Room", estimate.LineItem{
		Description: "Carpet - per specs",
		Quantity:    estimate.Some(120),
		Unit:        "SF",
		UnitPrice:   estimate.Some(4.67),
	})

	result, err := newEngine(t).Compare(context.Background(), source, counterpart)
	require.NoError(t, err)

	require.Len(t, result.Rooms, 1)
	room := result.Rooms[0]
	require.Len(t, room.Matched, 1)
	assert.Equal(t, estimate.Differing, room.Matched[0].Category)

	fields := make([]string, 0, 2)
	for _, d := range room.Matched[0].Diffs {
		fields = append(fields, d.Field)
	}
	assert.Equal(t, []string{estimate.FieldQuantity, estimate.FieldUnitPrice}, fields)
}

func TestCompareUnitMismatch(t *testing.T) {
	// Differing units: quantity and price are skipped, the unit diff is
	// unconditional, and totals are compared instead.
	source := singleRoomDoc("contractor", "Living Room", estimate.LineItem{
		Description: "Carpet",
		Quantity:    estimate.Some(100),
		Unit:        "SF",
		UnitPrice:   estimate.Some(3.88),
		Total:       estimate.Some(388),
	})
	counterpart := singleRoomDoc("insurance", "Living Room", estimate.LineItem{
		Description: "Carpet - per specs",
		Quantity:    estimate.Some(120),
		Unit:        "LF",
		UnitPrice:   estimate.Some(4.67),
		Total:       estimate.Some(560.40),
	})

	result, err := newEngine(t).Compare(context.Background(), source, counterpart)
	require.NoError(t, err)

	require.Len(t, result.Rooms, 1)
	require.Len(t, result.Rooms[0].Matched, 1)
	pair := result.Rooms[0].Matched[0]
	assert.Equal(t, estimate.Differing, pair.Category)

	fields := make([]string, 0, 2)
	for _, d := range pair.Diffs {
		fields = append(fields, d.Field)
	}
	assert.Equal(t, []string{estimate.FieldUnit, estimate.FieldTotal}, fields)
}

func TestCompareLoneSourceItem(t *testing.T) {
	source := singleRoomDoc("contractor", "Living Room", estimate.LineItem{Description: "Carpet"})
	counterpart := singleRoomDoc("insurance", "Living Room")

	result, err := newEngine(t).Compare(context.Background(), source, counterpart)
	require.NoError(t, err)

	require.Len(t, result.Rooms, 1)
	room := result.Rooms[0]
	assert.Empty(t, room.Matched)
	require.Len(t, room.UnmatchedSource, 1)
	assert.Equal(t, "Carpet", room.UnmatchedSource[0].Description)
	assert.Empty(t, room.UnmatchedCounterpart)
}

func TestCompareRoomCoverage(t *testing.T) {
	source := estimate.Document{Label: "contractor", Rooms: []estimate.Room{
		{Name: "Living Room"}, {Name: "Kitchen"}, {Name: "Garage"},
	}}
	counterpart := estimate.Document{Label: "insurance", Rooms: []estimate.Room{
		{Name: "Kitchen"}, {Name: "Hall Bathroom"},
	}}

	result, err := newEngine(t).Compare(context.Background(), source, counterpart)
	require.NoError(t, err)

	var gotSource, gotCounterpart []string
	for _, room := range result.Rooms {
		if room.Pair.HasSource() {
			gotSource = append(gotSource, room.Pair.Source)
		}
		if room.Pair.HasCounterpart() {
			gotCounterpart = append(gotCounterpart, room.Pair.Counterpart)
		}
	}
	assert.ElementsMatch(t, []string{"Living Room", "Kitchen", "Garage"}, gotSource)
	assert.ElementsMatch(t, []string{"Kitchen", "Hall Bathroom"}, gotCounterpart)
}

func TestCompareCrossRoomFallback(t *testing.T) {
	// The source garage has no counterpart room, but its item describes
	// the same work as an unmatched insurance item in another room.
	haul := estimate.LineItem{
		Description: "Haul debris",
		Quantity:    estimate.Some(1),
		Unit:        "EA",
		UnitPrice:   estimate.Some(150),
	}
	paint := estimate.LineItem{
		Description: "Paint walls",
		Quantity:    estimate.Some(200),
		Unit:        "SF",
		UnitPrice:   estimate.Some(1.10),
	}
	source := estimate.Document{Label: "contractor", Rooms: []estimate.Room{
		{Name: "Kitchen", Items: []estimate.LineItem{paint}},
		{Name: "Garage", Items: []estimate.LineItem{haul}},
	}}
	counterpart := estimate.Document{Label: "insurance", Rooms: []estimate.Room{
		{Name: "Kitchen", Items: []estimate.LineItem{paint, haul}},
	}}

	scorer := oracle.ScorerFunc(func(_ context.Context, source, counterpart []estimate.LineItem) ([][]float64, error) {
		matrix := make([][]float64, len(source))
		for i := range source {
			matrix[i] = make([]float64, len(counterpart))
			for j := range counterpart {
				if source[i].Description == counterpart[j].Description {
					matrix[i][j] = 1.0
				}
			}
		}
		return matrix, nil
	})

	result, err := newEngine(t, ciridae.WithScorer(scorer)).Compare(context.Background(), source, counterpart)
	require.NoError(t, err)

	require.Len(t, result.Rooms, 3)

	kitchen := result.Rooms[0]
	require.Len(t, kitchen.Matched, 1)
	assert.Equal(t, "Paint walls", kitchen.Matched[0].Source.Description)
	assert.Empty(t, kitchen.UnmatchedCounterpart, "fallback must pull the matched item out of its room pool")

	garage := result.Rooms[1]
	assert.Empty(t, garage.UnmatchedSource, "fallback must pull the orphan out of its room pool")

	cross := result.Rooms[2]
	assert.Equal(t, "(cross-room)", cross.Pair.Source)
	require.Len(t, cross.Matched, 1)
	assert.Equal(t, "Haul debris", cross.Matched[0].Source.Description)
	assert.Equal(t, estimate.Exact, cross.Matched[0].Category)
}

func TestCompareContinuationRooms(t *testing.T) {
	// A continuation page produces a prefixed duplicate of the room name;
	// normalization lets the identity pairer line it up.
	source := singleRoomDoc("contractor", "CONTINUED - Main Level")
	counterpart := singleRoomDoc("insurance", "Main Level")

	result, err := newEngine(t).Compare(context.Background(), source, counterpart)
	require.NoError(t, err)

	require.Len(t, result.Rooms, 1)
	assert.Equal(t, "CONTINUED - Main Level", result.Rooms[0].Pair.Source)
	assert.Equal(t, "Main Level", result.Rooms[0].Pair.Counterpart)
}

func TestCompareDuplicateRoomsRejected(t *testing.T) {
	source := estimate.Document{Label: "contractor", Rooms: []estimate.Room{
		{Name: "Kitchen"}, {Name: "Kitchen"},
	}}
	counterpart := singleRoomDoc("insurance", "Kitchen")

	_, err := newEngine(t).Compare(context.Background(), source, counterpart)
	require.Error(t, err)
	assert.True(t, errors.IsMalformedInput(err))
}

func TestCompareOracleFailurePropagates(t *testing.T) {
	pairer := oracle.RoomPairerFunc(func(_ context.Context, _, _ []string) ([]oracle.RoomPairing, error) {
		return nil, assert.AnError
	})
	source := singleRoomDoc("contractor", "Kitchen")
	counterpart := singleRoomDoc("insurance", "Kitchen")

	_, err := newEngine(t, ciridae.WithRoomPairer(pairer)).Compare(context.Background(), source, counterpart)
	require.Error(t, err)
	assert.True(t, errors.IsOracleUnavailable(err))
}

func TestNewRejectsBadOptions(t *testing.T) {
	_, err := ciridae.New(ciridae.WithSimilarityFloor(1.5))
	assert.Error(t, err)

	_, err = ciridae.New(ciridae.WithScorer(nil))
	assert.Error(t, err)
}

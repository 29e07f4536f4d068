// Package oracle defines the external judgment contracts the engine depends
// on: room pairing and item similarity scoring. The engine is agnostic to the
// technology behind an oracle; implementations range from the deterministic
// lexical ones in this package to the Gemini-backed adapter in the genai
// subpackage.
package oracle

import (
	"context"

	"github.com/GregoryLi360/ciridae-takehome/pkg/estimate"
)

// RoomPairing is one proposed association between a source room and a
// counterpart room. An empty string means the room has no partner on that
// side.
type RoomPairing struct {
	Source      string
	Counterpart string
}

// RoomPairer judges which rooms from the two documents describe the same
// physical space. Implementations receive normalized room names and must
// return each input room at most once.
type RoomPairer interface {
	PairRooms(ctx context.Context, source, counterpart []string) ([]RoomPairing, error)
}

// RoomPairerFunc adapts a function to the RoomPairer interface.
type RoomPairerFunc func(ctx context.Context, source, counterpart []string) ([]RoomPairing, error)

// PairRooms implements RoomPairer.
func (f RoomPairerFunc) PairRooms(ctx context.Context, source, counterpart []string) ([]RoomPairing, error) {
	return f(ctx, source, counterpart)
}

// Scorer produces a similarity score for every cross pair of items. The
// returned matrix must have len(source) rows and len(counterpart) columns;
// higher scores mean more similar.
type Scorer interface {
	Score(ctx context.Context, source, counterpart []estimate.LineItem) ([][]float64, error)
}

// ScorerFunc adapts a function to the Scorer interface.
type ScorerFunc func(ctx context.Context, source, counterpart []estimate.LineItem) ([][]float64, error)

// Score implements Scorer.
func (f ScorerFunc) Score(ctx context.Context, source, counterpart []estimate.LineItem) ([][]float64, error) {
	return f(ctx, source, counterpart)
}

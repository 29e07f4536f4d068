// Package match computes an optimal 1:1 assignment of line items between the
// two sides of a room pair. Similarity scoring is supplied externally; this
// package owns the assignment itself (an optimal solver over the full score
// matrix, never a greedy pass) and the similarity floor that turns weak
// assignments back into unmatched items.
package match

import (
	"context"
	"fmt"

	"github.com/GregoryLi360/ciridae-takehome/pkg/errors"
	"github.com/GregoryLi360/ciridae-takehome/pkg/estimate"
	"github.com/GregoryLi360/ciridae-takehome/pkg/logging"
	"github.com/GregoryLi360/ciridae-takehome/pkg/oracle"
)

// DefaultThreshold is the default similarity floor: assignments scoring
// below it are discarded after optimization.
const DefaultThreshold = 0.85

// Match is one accepted source/counterpart assignment with its score.
type Match struct {
	Source      estimate.LineItem
	Counterpart estimate.LineItem
	Score       float64
}

// Result partitions both item lists after matching. Every input item appears
// exactly once: either inside Matched or in its side's unmatched list.
type Result struct {
	Matched              []Match
	UnmatchedSource      []estimate.LineItem
	UnmatchedCounterpart []estimate.LineItem
}

// Items matches the two item lists using scores from the oracle, keeping
// only assignments at or above threshold. A threshold <= 0 selects
// DefaultThreshold. Output order is deterministic: matches are sorted by
// source input index, and unmatched lists preserve input order.
func Items(ctx context.Context, source, counterpart []estimate.LineItem, scorer oracle.Scorer, threshold float64) (Result, error) {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	// Nothing to optimize when either side is empty.
	if len(source) == 0 || len(counterpart) == 0 {
		return Result{
			UnmatchedSource:      append([]estimate.LineItem{}, source...),
			UnmatchedCounterpart: append([]estimate.LineItem{}, counterpart...),
		}, nil
	}

	scores, err := scorer.Score(ctx, source, counterpart)
	if err != nil {
		return Result{}, errors.WrapOracle("similarity-scorer", "match", err)
	}
	if err := checkMatrix(scores, len(source), len(counterpart)); err != nil {
		return Result{}, err
	}

	// Maximize total similarity by minimizing negated scores.
	cost := make([][]float64, len(source))
	for i, row := range scores {
		cost[i] = make([]float64, len(counterpart))
		for j, s := range row {
			cost[i][j] = -s
		}
	}
	assignment := solveAssignment(cost)

	result := Result{}
	matchedCounterpart := make(map[int]bool, len(counterpart))

	for i := range source {
		j := assignment[i]
		if j >= 0 && scores[i][j] >= threshold {
			result.Matched = append(result.Matched, Match{
				Source:      source[i],
				Counterpart: counterpart[j],
				Score:       scores[i][j],
			})
			matchedCounterpart[j] = true
		} else {
			result.UnmatchedSource = append(result.UnmatchedSource, source[i])
		}
	}
	for j := range counterpart {
		if !matchedCounterpart[j] {
			result.UnmatchedCounterpart = append(result.UnmatchedCounterpart, counterpart[j])
		}
	}

	logging.FromContext(ctx).Debug().
		Int("matched", len(result.Matched)).
		Int("unmatched_source", len(result.UnmatchedSource)).
		Int("unmatched_counterpart", len(result.UnmatchedCounterpart)).
		Float64("threshold", threshold).
		Msg("item matching complete")

	return result, nil
}

// checkMatrix rejects score matrices that do not cover every cross pair.
func checkMatrix(scores [][]float64, rows, cols int) error {
	if len(scores) != rows {
		return errors.NewOracleError("similarity-scorer", "match",
			fmt.Errorf("score matrix has %d rows, want %d", len(scores), rows))
	}
	for i, row := range scores {
		if len(row) != cols {
			return errors.NewOracleError("similarity-scorer", "match",
				fmt.Errorf("score matrix row %d has %d columns, want %d", i, len(row), cols))
		}
	}
	return nil
}

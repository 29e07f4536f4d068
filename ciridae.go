// Package ciridae reconciles two construction repair estimates for the
// same property. It aligns rooms through a pairing oracle, matches line
// items with an optimal assignment over oracle similarity scores, and
// classifies every matched pair field by field.
package ciridae

import (
	"context"

	"github.com/GregoryLi360/ciridae-takehome/pkg/align"
	"github.com/GregoryLi360/ciridae-takehome/pkg/classify"
	"github.com/GregoryLi360/ciridae-takehome/pkg/estimate"
	"github.com/GregoryLi360/ciridae-takehome/pkg/match"
)

// Comparer compares a source estimate against a counterpart estimate.
type Comparer interface {
	// Compare reconciles the two documents room by room and returns the
	// categorized comparison.
	Compare(ctx context.Context, source, counterpart estimate.Document) (*estimate.ComparisonResult, error)
}

// crossRoomLabel names the synthetic room group holding matches found by
// the orphan fallback pass.
const crossRoomLabel = "(cross-room)"

// engine is the internal implementation of the Comparer interface.
type engine struct {
	config *config
}

// New creates a new Comparer with the given options.
func New(opts ...Option) (Comparer, error) {
	e := &engine{config: defaultConfig()}
	if err := e.options(opts...); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *engine) options(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(e.config); err != nil {
			return err
		}
	}
	return nil
}

// Compare implements Comparer.
func (e *engine) Compare(ctx context.Context, source, counterpart estimate.Document) (*estimate.ComparisonResult, error) {
	if err := source.Validate(); err != nil {
		return nil, err
	}
	if err := counterpart.Validate(); err != nil {
		return nil, err
	}

	log := e.config.logger
	pairs, err := align.Rooms(ctx, source.RoomNames(), counterpart.RoomNames(), e.config.pairer)
	if err != nil {
		return nil, err
	}

	result := &estimate.ComparisonResult{Rooms: make([]estimate.RoomComparison, 0, len(pairs))}

	// Rooms with no counterpart hold their items back for the fallback
	// pass, recorded by comparison index.
	var orphanComps []int

	for _, pair := range pairs {
		comparison, err := e.compareRoom(ctx, pair, source, counterpart)
		if err != nil {
			return nil, err
		}
		if pair.HasSource() && !pair.HasCounterpart() && len(comparison.UnmatchedSource) > 0 {
			orphanComps = append(orphanComps, len(result.Rooms))
		}
		result.Rooms = append(result.Rooms, comparison)
	}

	if len(orphanComps) > 0 {
		if err := e.crossRoomFallback(ctx, result, orphanComps); err != nil {
			return nil, err
		}
	}

	summary := result.Summarize()
	log.Info().
		Int("rooms", len(result.Rooms)).
		Int("matched", summary.Matched).
		Int("exact", summary.Exact).
		Int("differing", summary.Differing).
		Int("source_only", summary.SourceOnly).
		Int("counterpart_only", summary.CounterpartOnly).
		Msg("comparison complete")

	return result, nil
}

// compareRoom matches and classifies the items of one room pair.
func (e *engine) compareRoom(ctx context.Context, pair estimate.RoomPair, source, counterpart estimate.Document) (estimate.RoomComparison, error) {
	comparison := estimate.RoomComparison{Pair: pair}

	var sourceItems, counterpartItems []estimate.LineItem
	if pair.HasSource() {
		if room, ok := source.Room(pair.Source); ok {
			sourceItems = room.Items
		}
	}
	if pair.HasCounterpart() {
		if room, ok := counterpart.Room(pair.Counterpart); ok {
			counterpartItems = room.Items
		}
	}

	matched, err := match.Items(ctx, sourceItems, counterpartItems, e.config.scorer, e.config.threshold)
	if err != nil {
		return comparison, err
	}

	comparison.Matched = classifyMatches(matched.Matched)
	comparison.UnmatchedSource = matched.UnmatchedSource
	comparison.UnmatchedCounterpart = matched.UnmatchedCounterpart

	e.config.logger.Debug().
		Str("source_room", pair.Source).
		Str("counterpart_room", pair.Counterpart).
		Int("matched", len(comparison.Matched)).
		Int("source_only", len(comparison.UnmatchedSource)).
		Int("counterpart_only", len(comparison.UnmatchedCounterpart)).
		Msg("room compared")

	return comparison, nil
}

// crossRoomFallback gives items from rooms with no counterpart a second
// chance against every still-unmatched counterpart item in the document.
// Accepted matches move out of their room comparisons into one synthetic
// cross-room group, keeping the overall matching 1:1.
func (e *engine) crossRoomFallback(ctx context.Context, result *estimate.ComparisonResult, orphanComps []int) error {
	var orphans []estimate.LineItem
	for _, idx := range orphanComps {
		orphans = append(orphans, result.Rooms[idx].UnmatchedSource...)
	}

	var candidates []estimate.LineItem
	for _, room := range result.Rooms {
		candidates = append(candidates, room.UnmatchedCounterpart...)
	}
	if len(candidates) == 0 {
		return nil
	}

	fallback, err := match.Items(ctx, orphans, candidates, e.config.scorer, e.config.threshold)
	if err != nil {
		return err
	}
	if len(fallback.Matched) == 0 {
		return nil
	}

	// The unmatched outputs preserve input order, so each pool can be
	// filtered back onto its originating rooms with a subsequence walk.
	keepSource := fallback.UnmatchedSource
	for _, idx := range orphanComps {
		result.Rooms[idx].UnmatchedSource, keepSource = takeSubsequence(result.Rooms[idx].UnmatchedSource, keepSource)
	}
	keepCounterpart := fallback.UnmatchedCounterpart
	for i := range result.Rooms {
		result.Rooms[i].UnmatchedCounterpart, keepCounterpart = takeSubsequence(result.Rooms[i].UnmatchedCounterpart, keepCounterpart)
	}

	result.Rooms = append(result.Rooms, estimate.RoomComparison{
		Pair:    estimate.RoomPair{Source: crossRoomLabel, Counterpart: crossRoomLabel},
		Matched: classifyMatches(fallback.Matched),
	})

	e.config.logger.Debug().
		Int("matched", len(fallback.Matched)).
		Msg("cross-room fallback matched orphaned items")

	return nil
}

// takeSubsequence keeps the items of pool that appear next in keep, in
// order, returning the filtered pool and the remainder of keep.
func takeSubsequence(pool, keep []estimate.LineItem) ([]estimate.LineItem, []estimate.LineItem) {
	var kept []estimate.LineItem
	for _, item := range pool {
		if len(keep) > 0 && item == keep[0] {
			kept = append(kept, item)
			keep = keep[1:]
		}
	}
	return kept, keep
}

func classifyMatches(matches []match.Match) []estimate.MatchedPair {
	if len(matches) == 0 {
		return nil
	}
	pairs := make([]estimate.MatchedPair, len(matches))
	for i, m := range matches {
		category, diffs := classify.Pair(m.Source, m.Counterpart)
		pairs[i] = estimate.MatchedPair{
			Source:      m.Source,
			Counterpart: m.Counterpart,
			Category:    category,
			Diffs:       diffs,
		}
	}
	return pairs
}

package oracle

import (
	"context"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/GregoryLi360/ciridae-takehome/pkg/estimate"
)

// LexicalPairer pairs rooms by normalized name equality, then by containment
// ("Hall Bathroom" vs "Bathroom"), then by edit similarity. It is fully
// deterministic and needs no network, which makes it the default oracle for
// tests and offline runs.
type LexicalPairer struct {
	// MinSimilarity is the edit-similarity floor for fuzzy name pairing.
	// Zero means the default of 0.8.
	MinSimilarity float64
}

// PairRooms implements RoomPairer.
func (p LexicalPairer) PairRooms(_ context.Context, source, counterpart []string) ([]RoomPairing, error) {
	floor := p.MinSimilarity
	if floor == 0 {
		floor = 0.8
	}

	pairings := make([]RoomPairing, 0, len(source)+len(counterpart))
	usedCounterpart := make(map[int]bool, len(counterpart))

	for _, src := range source {
		best := -1
		bestScore := 0.0
		for j, ctr := range counterpart {
			if usedCounterpart[j] {
				continue
			}
			score := nameSimilarity(src, ctr)
			if score > bestScore {
				bestScore = score
				best = j
			}
		}
		if best >= 0 && bestScore >= floor {
			usedCounterpart[best] = true
			pairings = append(pairings, RoomPairing{Source: src, Counterpart: counterpart[best]})
		} else {
			pairings = append(pairings, RoomPairing{Source: src})
		}
	}

	for j, ctr := range counterpart {
		if !usedCounterpart[j] {
			pairings = append(pairings, RoomPairing{Counterpart: ctr})
		}
	}

	return pairings, nil
}

// nameSimilarity scores two room names in [0,1].
func nameSimilarity(a, b string) float64 {
	na, nb := normalizeName(a), normalizeName(b)
	if na == "" || nb == "" {
		return 0
	}
	if na == nb {
		return 1
	}
	// One name qualifying the other ("hall bathroom" / "bathroom") is a
	// strong signal in estimate layouts.
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return 0.9
	}
	return editSimilarity(na, nb)
}

// editSimilarity converts Levenshtein distance into a [0,1] ratio.
func editSimilarity(a, b string) float64 {
	longest := max(len(a), len(b))
	if longest == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(longest)
}

func normalizeName(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// LexicalScorer scores item similarity from descriptions alone: a blend of
// token overlap and whole-string edit similarity. It stands in for semantic
// scoring when no LLM is configured.
type LexicalScorer struct{}

// Score implements Scorer.
func (LexicalScorer) Score(_ context.Context, source, counterpart []estimate.LineItem) ([][]float64, error) {
	matrix := make([][]float64, len(source))
	for i, src := range source {
		matrix[i] = make([]float64, len(counterpart))
		for j, ctr := range counterpart {
			matrix[i][j] = descriptionSimilarity(src.Description, ctr.Description)
		}
	}
	return matrix, nil
}

// descriptionSimilarity blends token-set overlap with edit similarity so that
// reworded but related descriptions still score above truly unrelated ones.
func descriptionSimilarity(a, b string) float64 {
	na, nb := normalizeName(a), normalizeName(b)
	if na == nb {
		return 1
	}

	overlap := tokenOverlap(na, nb)
	edit := editSimilarity(na, nb)
	return 0.6*overlap + 0.4*edit
}

// tokenOverlap is the Jaccard index of the two token sets.
func tokenOverlap(a, b string) float64 {
	ta, tb := strings.Fields(a), strings.Fields(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	set := make(map[string]bool, len(ta))
	for _, tok := range ta {
		set[tok] = true
	}
	shared := 0
	union := len(set)
	seen := make(map[string]bool, len(tb))
	for _, tok := range tb {
		if seen[tok] {
			continue
		}
		seen[tok] = true
		if set[tok] {
			shared++
		} else {
			union++
		}
	}
	return float64(shared) / float64(union)
}

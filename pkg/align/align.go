// Package align pairs room names between two documents. The equivalence
// judgment itself is delegated to an external pairing oracle; this package
// owns name normalization and invariant enforcement: every room from either
// list appears in exactly one returned pair, and pairings referencing rooms
// the oracle invented are rejected fail-soft.
package align

import (
	"context"
	"strings"

	"github.com/GregoryLi360/ciridae-takehome/pkg/errors"
	"github.com/GregoryLi360/ciridae-takehome/pkg/estimate"
	"github.com/GregoryLi360/ciridae-takehome/pkg/logging"
	"github.com/GregoryLi360/ciridae-takehome/pkg/oracle"
)

// continuationPrefix marks a room section that spills over from a previous
// page in Xactimate-style layouts.
const continuationPrefix = "CONTINUED - "

// Normalize strips continuation markers and collapses whitespace so the
// oracle sees canonical room names.
func Normalize(name string) string {
	trimmed := strings.TrimSpace(name)
	for {
		rest, found := strings.CutPrefix(trimmed, continuationPrefix)
		if !found {
			break
		}
		trimmed = strings.TrimSpace(rest)
	}
	return strings.Join(strings.Fields(trimmed), " ")
}

// Rooms pairs the two room-name lists via the oracle and returns pairs
// covering every input room exactly once. Returned pairs carry the original
// (unnormalized) names so callers can resolve rooms in their documents.
func Rooms(ctx context.Context, source, counterpart []string, pairer oracle.RoomPairer) ([]estimate.RoomPair, error) {
	log := logging.FromContext(ctx)

	srcByNorm := normalizedIndex(source)
	ctrByNorm := normalizedIndex(counterpart)

	pairings, err := pairer.PairRooms(ctx, normalizedNames(source, srcByNorm), normalizedNames(counterpart, ctrByNorm))
	if err != nil {
		return nil, errors.WrapOracle("room-pairer", "align", err)
	}

	pairs := make([]estimate.RoomPair, 0, len(source)+len(counterpart))
	usedSrc := make(map[string]bool, len(source))
	usedCtr := make(map[string]bool, len(counterpart))

	for _, p := range pairings {
		srcName, srcOK := resolve(p.Source, srcByNorm)
		ctrName, ctrOK := resolve(p.Counterpart, ctrByNorm)

		// A pairing that names a room absent from its input list is a
		// hallucination; drop the pairing and let the real rooms fall
		// through to the unmatched pass below.
		if p.Source != "" && !srcOK {
			log.Warn().Str("room", p.Source).Msg("pairing oracle returned unknown source room; rejecting pairing")
			continue
		}
		if p.Counterpart != "" && !ctrOK {
			log.Warn().Str("room", p.Counterpart).Msg("pairing oracle returned unknown counterpart room; rejecting pairing")
			continue
		}
		if srcName == "" && ctrName == "" {
			continue
		}
		if srcName != "" && usedSrc[srcName] {
			log.Warn().Str("room", srcName).Msg("pairing oracle repeated a source room; keeping first pairing")
			continue
		}
		if ctrName != "" && usedCtr[ctrName] {
			log.Warn().Str("room", ctrName).Msg("pairing oracle repeated a counterpart room; keeping first pairing")
			continue
		}

		if srcName != "" {
			usedSrc[srcName] = true
		}
		if ctrName != "" {
			usedCtr[ctrName] = true
		}
		pairs = append(pairs, estimate.RoomPair{Source: srcName, Counterpart: ctrName})
	}

	// Coverage: any room the oracle never mentioned (or whose pairing was
	// rejected) is emitted unmatched, in input order.
	for _, name := range source {
		if !usedSrc[name] {
			pairs = append(pairs, estimate.RoomPair{Source: name})
		}
	}
	for _, name := range counterpart {
		if !usedCtr[name] {
			pairs = append(pairs, estimate.RoomPair{Counterpart: name})
		}
	}

	log.Debug().Int("pairs", len(pairs)).Msg("room alignment complete")
	return pairs, nil
}

// normalizedIndex maps normalized names back to their first original form.
// When two inputs normalize identically (a room and its continuation), the
// later one keeps its raw name as its own key so coverage still holds.
func normalizedIndex(names []string) map[string]string {
	index := make(map[string]string, len(names))
	for _, name := range names {
		key := Normalize(name)
		if _, taken := index[key]; taken {
			key = name
		}
		index[key] = name
	}
	return index
}

// normalizedNames returns the oracle-facing name for each input room.
func normalizedNames(names []string, index map[string]string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		key := Normalize(name)
		if index[key] != name {
			key = name
		}
		out = append(out, key)
	}
	return out
}

// resolve maps an oracle-returned name back to the original input name.
func resolve(name string, index map[string]string) (string, bool) {
	if name == "" {
		return "", false
	}
	if original, ok := index[name]; ok {
		return original, true
	}
	// Oracles sometimes echo the raw name; accept it when it maps cleanly.
	if original, ok := index[Normalize(name)]; ok {
		return original, true
	}
	return "", false
}

// Package classify labels a matched line-item pair as exact or differing
// under a unit-aware relative tolerance.
package classify

import (
	"math"
	"strings"

	"github.com/GregoryLi360/ciridae-takehome/pkg/estimate"
)

// Tolerance is the relative difference allowed before two numeric values
// count as a discrepancy.
const Tolerance = 0.02

// epsilon keeps the relative-difference denominator away from zero so a
// pair of zeros compares equal instead of dividing by zero.
const epsilon = 1e-9

// Pair compares a matched source/counterpart pair field by field and
// returns the category with the recorded diffs. The category is Exact
// exactly when no diff was recorded.
//
// Units decide what is comparable. With equal units, quantity and unit
// price are each checked at the tolerance. With differing units those two
// fields are not commensurable and are skipped; the unit diff is recorded
// unconditionally and the line totals are compared instead, so this branch
// can never come out Exact.
func Pair(source, counterpart estimate.LineItem) (estimate.Category, []estimate.FieldDiff) {
	var diffs []estimate.FieldDiff

	if normalizeUnit(source.Unit) == normalizeUnit(counterpart.Unit) {
		if !withinTolerance(source.Quantity, counterpart.Quantity) {
			diffs = append(diffs, numberDiff(estimate.FieldQuantity, source.Quantity, counterpart.Quantity))
		}
		if !withinTolerance(source.UnitPrice, counterpart.UnitPrice) {
			diffs = append(diffs, numberDiff(estimate.FieldUnitPrice, source.UnitPrice, counterpart.UnitPrice))
		}
	} else {
		diffs = append(diffs, estimate.FieldDiff{
			Field:            estimate.FieldUnit,
			SourceValue:      source.Unit,
			CounterpartValue: counterpart.Unit,
		})
		if !withinTolerance(source.Total, counterpart.Total) {
			diffs = append(diffs, numberDiff(estimate.FieldTotal, source.Total, counterpart.Total))
		}
	}

	if len(diffs) == 0 {
		return estimate.Exact, nil
	}
	return estimate.Differing, diffs
}

// withinTolerance reports whether two extracted values agree. A value
// missing on either side is always a mismatch.
func withinTolerance(a, b estimate.Number) bool {
	av, aok := a.Value()
	bv, bok := b.Value()
	if !aok || !bok {
		return false
	}
	denom := math.Max(math.Max(math.Abs(av), math.Abs(bv)), epsilon)
	return math.Abs(av-bv)/denom <= Tolerance
}

func numberDiff(field string, source, counterpart estimate.Number) estimate.FieldDiff {
	return estimate.FieldDiff{
		Field:            field,
		SourceValue:      source.String(),
		CounterpartValue: counterpart.String(),
	}
}

func normalizeUnit(unit string) string {
	return strings.Join(strings.Fields(strings.ToLower(unit)), " ")
}

// Package locate recovers per-field bounding regions for line items on a
// page, tracking claimed regions so repeated rows never highlight the same
// spot twice.
package locate

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/GregoryLi360/ciridae-takehome/pkg/estimate"
	"github.com/GregoryLi360/ciridae-takehome/pkg/geometry"
)

const (
	// rowTolerance is the vertical distance in points within which a
	// numeric or unit token counts as sitting on the description's row.
	rowTolerance = 15.0

	// minMatchRatio is the fraction of description tokens a word run must
	// match before the run is accepted.
	minMatchRatio = 0.8

	// minPrefixLen skips prefix-fallback queries too short to be
	// distinctive.
	minPrefixLen = 5
)

// prefixLengths are the successively shorter literal prefixes tried when
// fuzzy run matching finds nothing.
var prefixLengths = []int{60, 40, 25}

// englishPrinter formats numbers with thousands separators the way the
// documents print them.
var englishPrinter = message.NewPrinter(language.English)

// Fields finds a bounding box for each of the item's field values on the
// page, skipping regions already claimed by earlier items. Fields that
// cannot be found are left empty; that is an expected outcome, not an
// error. Every box found is claimed in the returned set, so callers must
// thread the set sequentially through all items on one page.
func Fields(item estimate.LineItem, page geometry.Page, claims geometry.ClaimSet) (estimate.FieldBoxes, geometry.ClaimSet) {
	var boxes estimate.FieldBoxes

	boxes.Description = findDescription(item.Description, page.Words, claims)
	claims = claims.Claim(boxes.Description)

	if !boxes.Description.IsEmpty() {
		band := boxes.Description.MidY()
		boxes.Quantity = findNumber(item.Quantity, page.Words, band, claims)
		claims = claims.Claim(boxes.Quantity)

		boxes.UnitPrice = findNumber(item.UnitPrice, page.Words, band, claims)
		claims = claims.Claim(boxes.UnitPrice)

		boxes.Total = findNumber(item.Total, page.Words, band, claims)
		claims = claims.Claim(boxes.Total)

		boxes.Unit = findUnit(item.Unit, page.Words, band, claims)
		claims = claims.Claim(boxes.Unit)
	}

	return boxes, claims
}

// findDescription searches the page's word sequence for the contiguous run
// whose normalized tokens best match the description, then falls back to
// literal prefix search.
func findDescription(description string, words []geometry.Word, claims geometry.ClaimSet) geometry.BBox {
	text := stripLineNumber(description)
	query := tokenize(text)
	if len(query) == 0 {
		return geometry.BBox{}
	}

	if box := findTokenRun(query, words, claims); !box.IsEmpty() {
		return box
	}

	runes := []rune(text)
	for _, length := range prefixLengths {
		prefix := text
		if len(runes) > length {
			prefix = string(runes[:length])
		}
		prefix = strings.TrimSpace(prefix)
		if len(prefix) < minPrefixLen {
			continue
		}
		if box := findLiteralRun(tokenize(prefix), words, claims); !box.IsEmpty() {
			return box
		}
	}
	return geometry.BBox{}
}

// findTokenRun scans every run of len(query) consecutive words and keeps
// the unclaimed run with the highest fraction of fuzzy token matches.
// Word boxes for a wrapped line stay contiguous in reading order, so a run
// spans multi-line descriptions without special handling. Earlier runs win
// ties, keeping the search deterministic.
func findTokenRun(query []string, words []geometry.Word, claims geometry.ClaimSet) geometry.BBox {
	var best geometry.BBox
	bestRatio := 0.0

	for start := 0; start+len(query) <= len(words); start++ {
		matched := 0
		for i, q := range query {
			if tokensEqual(normalizeToken(words[start+i].Text), q) {
				matched++
			}
		}
		ratio := float64(matched) / float64(len(query))
		if ratio < minMatchRatio || ratio <= bestRatio {
			continue
		}
		box := runUnion(words[start : start+len(query)])
		if claims.Overlaps(box) {
			continue
		}
		best = box
		bestRatio = ratio
	}
	return best
}

// findLiteralRun looks for the first unclaimed run of words whose
// normalized tokens equal the query tokens exactly. The final query token
// may match by prefix, since cutting a description at a fixed length
// routinely splits its last word.
func findLiteralRun(query []string, words []geometry.Word, claims geometry.ClaimSet) geometry.BBox {
	if len(query) == 0 {
		return geometry.BBox{}
	}
	for start := 0; start+len(query) <= len(words); start++ {
		ok := true
		for i, q := range query {
			got := normalizeToken(words[start+i].Text)
			if i == len(query)-1 {
				if !strings.HasPrefix(got, q) {
					ok = false
				}
				break
			}
			if got != q {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		box := runUnion(words[start : start+len(query)])
		if !claims.Overlaps(box) {
			return box
		}
	}
	return geometry.BBox{}
}

// findNumber looks for a token equal to the value under its common
// formatting variants, restricted to the description's row.
func findNumber(value estimate.Number, words []geometry.Word, rowMid float64, claims geometry.ClaimSet) geometry.BBox {
	v, ok := value.Value()
	if !ok {
		return geometry.BBox{}
	}
	for _, variant := range numberVariants(v) {
		for _, w := range words {
			if strings.Trim(w.Text, ",;:") != variant {
				continue
			}
			if math.Abs(w.Box.MidY()-rowMid) >= rowTolerance {
				continue
			}
			if claims.Overlaps(w.Box) {
				continue
			}
			return w.Box
		}
	}
	return geometry.BBox{}
}

// numberVariants lists the spellings a value typically takes in the
// documents: grouped and plain two-decimal forms, plus bare integer forms
// for whole values.
func numberVariants(v float64) []string {
	variants := []string{
		englishPrinter.Sprintf("%.2f", v),
		strconv.FormatFloat(v, 'f', 2, 64),
	}
	if v == math.Trunc(v) {
		variants = append(variants,
			englishPrinter.Sprintf("%d", int64(v)),
			strconv.FormatInt(int64(v), 10),
		)
	}
	return variants
}

// findUnit looks for the unit code on the description's row.
func findUnit(unit string, words []geometry.Word, rowMid float64, claims geometry.ClaimSet) geometry.BBox {
	if unit == "" {
		return geometry.BBox{}
	}
	want := normalizeToken(unit)
	if want == "" {
		return geometry.BBox{}
	}
	for _, w := range words {
		if normalizeToken(w.Text) != want {
			continue
		}
		if math.Abs(w.Box.MidY()-rowMid) >= rowTolerance {
			continue
		}
		if claims.Overlaps(w.Box) {
			continue
		}
		return w.Box
	}
	return geometry.BBox{}
}

func runUnion(words []geometry.Word) geometry.BBox {
	var box geometry.BBox
	for _, w := range words {
		box = box.Union(w.Box)
	}
	return box
}

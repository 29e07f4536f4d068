package locate

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// lineNumberPrefix matches the "12. " numbering extraction leaves on some
// descriptions. The page text never carries it, so it is stripped before
// searching.
var lineNumberPrefix = regexp.MustCompile(`^\d+\.\s*`)

// asciiFolder strips combining marks so accented page text and its plain
// extracted form normalize to the same tokens.
var asciiFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// punctReplacer folds typographic punctuation variants onto their ASCII
// forms before tokenizing. PDF extractors and LLM extraction frequently
// disagree on quote and dash glyphs for the same visible text.
var punctReplacer = strings.NewReplacer(
	"‘", "'",
	"’", "'",
	"“", `"`,
	"”", `"`,
	"–", "-",
	"—", "-",
	" ", " ",
)

func stripLineNumber(s string) string {
	return lineNumberPrefix.ReplaceAllString(s, "")
}

// normalizeToken lowercases a token, folds punctuation variants, and trims
// surrounding punctuation so "Carpet," matches "carpet".
func normalizeToken(s string) string {
	s = punctReplacer.Replace(s)
	if folded, _, err := transform.String(asciiFolder, s); err == nil {
		s = folded
	}
	s = strings.ToLower(s)
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSymbol(r)
	})
}

// tokenize splits text into normalized tokens, dropping any that normalize
// to nothing (bare punctuation).
func tokenize(s string) []string {
	fields := strings.Fields(punctReplacer.Replace(s))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if t := normalizeToken(f); t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// tokensEqual is the fuzzy per-token equality used for description runs.
// It accepts exact matches, truncation (either token a prefix of the
// other), and a single-character edit for longer tokens, so OCR typos and
// cut-off cell text still line up.
func tokensEqual(a, b string) bool {
	if a == b {
		return a != ""
	}
	if len(a) >= 3 && len(b) >= 3 {
		if strings.HasPrefix(a, b) || strings.HasPrefix(b, a) {
			return true
		}
	}
	if len(a) >= 5 && len(b) >= 5 {
		return levenshtein.ComputeDistance(a, b) <= 1
	}
	return false
}

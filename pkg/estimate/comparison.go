package estimate

// Category labels the outcome for one line item after matching and
// classification.
type Category string

const (
	// Exact means the pair matched with every comparable field within tolerance.
	Exact Category = "exact"
	// Differing means the pair matched but at least one field diff was recorded.
	Differing Category = "differing"
	// SourceOnly means a source item found no counterpart.
	SourceOnly Category = "source_only"
	// CounterpartOnly means a counterpart item found no source match.
	CounterpartOnly Category = "counterpart_only"
)

// FieldDiff records a single-field discrepancy for a matched pair.
type FieldDiff struct {
	Field            string `yaml:"field"`
	SourceValue      string `yaml:"source_value"`
	CounterpartValue string `yaml:"counterpart_value"`
}

// MatchedPair is one line item from each document judged to describe the
// same work, with its classification.
type MatchedPair struct {
	Source      LineItem    `yaml:"source"`
	Counterpart LineItem    `yaml:"counterpart"`
	Category    Category    `yaml:"category"`
	Diffs       []FieldDiff `yaml:"diffs,omitempty"`
}

// RoomComparison is the outcome for one room pair.
type RoomComparison struct {
	Pair                 RoomPair      `yaml:"pair"`
	Matched              []MatchedPair `yaml:"matched,omitempty"`
	UnmatchedSource      []LineItem    `yaml:"unmatched_source,omitempty"`
	UnmatchedCounterpart []LineItem    `yaml:"unmatched_counterpart,omitempty"`
}

// ComparisonResult is the full matched/diffed comparison of two documents.
type ComparisonResult struct {
	Rooms []RoomComparison `yaml:"rooms"`
}

// Summary aggregates outcome counts across all rooms.
type Summary struct {
	Matched         int `yaml:"matched"`
	Exact           int `yaml:"exact"`
	Differing       int `yaml:"differing"`
	SourceOnly      int `yaml:"source_only"`
	CounterpartOnly int `yaml:"counterpart_only"`
}

// Summarize computes outcome counts for the whole comparison.
func (r ComparisonResult) Summarize() Summary {
	var s Summary
	for _, room := range r.Rooms {
		s.Matched += len(room.Matched)
		for _, pair := range room.Matched {
			if pair.Category == Exact {
				s.Exact++
			} else {
				s.Differing++
			}
		}
		s.SourceOnly += len(room.UnmatchedSource)
		s.CounterpartOnly += len(room.UnmatchedCounterpart)
	}
	return s
}

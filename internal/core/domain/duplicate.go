package domain

// DuplicateKind distinguishes how a DuplicateGroup was formed.
type DuplicateKind string

// Duplicate kinds.
const (
	// DuplicateExact groups lines with the same content fingerprint.
	DuplicateExact DuplicateKind = "exact"

	// DuplicateApproximate groups lines whose similarity passed a threshold.
	DuplicateApproximate DuplicateKind = "approximate"
)

// String returns the string representation.
func (k DuplicateKind) String() string {
	return string(k)
}

// DuplicateMember is one line of a duplicate group.
type DuplicateMember struct {
	Location Location `json:"location"`
	Text     string   `json:"text"`
}

// DuplicateGroup is a set of lines considered duplicates of each other.
// Members are ordered by location.
type DuplicateGroup struct {
	Kind DuplicateKind `json:"kind"`

	// Fingerprint is set for exact groups.
	Fingerprint string `json:"fingerprint,omitempty"`

	// Score is the representative similarity of an approximate group.
	// Exact groups carry 1.0.
	Score float64 `json:"score"`

	Members []DuplicateMember `json:"members"`
}

// Count returns the number of members.
func (g DuplicateGroup) Count() int {
	return len(g.Members)
}

// Locations returns the member locations in order.
func (g DuplicateGroup) Locations() []Location {
	locs := make([]Location, len(g.Members))
	for i, m := range g.Members {
		locs[i] = m.Location
	}
	return locs
}

// ContextVerdict says whether a duplicate group repeats within one context.
type ContextVerdict string

// Context verdicts.
const (
	ContextSame      ContextVerdict = "same_context"
	ContextDifferent ContextVerdict = "different_contexts"
)

// DuplicateContext splits one exact group into same-context clusters.
type DuplicateContext struct {
	Group    DuplicateGroup `json:"group"`
	Clusters [][]Location   `json:"clusters"`
	Verdict  ContextVerdict `json:"verdict"`
}

// ConceptOccurrences lists the lines that mention one concept.
type ConceptOccurrences struct {
	Concept   string     `json:"concept"`
	Locations []Location `json:"locations"`
}

// ConceptHit is one concept occurrence with a fixed amount of surrounding lines.
type ConceptHit struct {
	Line    Location `json:"line"`
	Content string   `json:"content"`
	Context []string `json:"context"`
	Start   Location `json:"start"`
	End     Location `json:"end"`
}

// ContextMatch merges nearby occurrences of a concept into one window.
type ContextMatch struct {
	Concept string        `json:"concept"`
	Matches []Location    `json:"matches"`
	Window  ContextWindow `json:"window"`
	Text    []string      `json:"text"`
}

// PatternMatch is one regular-expression hit on a line.
type PatternMatch struct {
	Line    Location `json:"line"`
	Content string   `json:"content"`
	Match   string   `json:"match"`
	Start   int      `json:"start"`
	End     int      `json:"end"`
}

// RelatedGroup records concepts co-occurring in a window around CenterLine.
// Concepts[0] is the concept whose occurrence produced the window.
type RelatedGroup struct {
	CenterLine  Location      `json:"center_line"`
	Window      ContextWindow `json:"context_range"`
	Concepts    []string      `json:"related_concepts"`
	ContextText []string      `json:"context_text"`
}

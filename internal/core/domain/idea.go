package domain

import "strings"

// IdeaRecord is a parsed idea note.
// It is created by the parser; ImportanceScore is set afterwards by the
// quality scorer and is otherwise derived from content.
type IdeaRecord struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Content         string   `json:"content"`
	Category        string   `json:"category"`
	Date            string   `json:"date"`
	Equations       []string `json:"equations"`
	Keywords        []string `json:"keywords"`
	ContentHash     string   `json:"similarity_hash"`
	ImportanceScore float64  `json:"importance_score"`
	StartLine       Location `json:"start_line"`
	EndLine         Location `json:"end_line"`
}

// Text returns the title and content as one string.
func (r IdeaRecord) Text() string {
	if r.Title == "" {
		return r.Content
	}
	if r.Content == "" {
		return r.Title
	}
	return r.Title + "\n" + r.Content
}

// Body returns the content, or the title for a title-only idea.
// Fingerprints and word overlap are computed on the body.
func (r IdeaRecord) Body() string {
	if strings.TrimSpace(r.Content) == "" {
		return r.Title
	}
	return r.Content
}

// HasKeyword reports whether kw was detected in the idea.
func (r IdeaRecord) HasKeyword(kw string) bool {
	for _, k := range r.Keywords {
		if k == kw {
			return true
		}
	}
	return false
}

// Month returns the YYYY-MM prefix of Date, or "" when Date is not ISO shaped.
func (r IdeaRecord) Month() string {
	if len(r.Date) < 7 || strings.Count(r.Date[:7], "-") != 1 {
		return ""
	}
	return r.Date[:7]
}

// ParseResult is the output of parsing a document into idea blocks.
type ParseResult struct {
	Ideas []IdeaRecord `json:"ideas"`

	// Skipped counts malformed blocks that produced no idea.
	Skipped int `json:"skipped"`

	// Warnings describe skipped blocks and invalid patterns.
	Warnings []string `json:"warnings,omitempty"`
}

// Statistics summarises an idea collection.
type Statistics struct {
	TotalIdeas             int            `json:"total_ideas"`
	Categories             map[string]int `json:"categories"`
	EquationCount          int            `json:"equations_count"`
	KeywordFrequency       map[string]int `json:"keywords_frequency"`
	ImportanceDistribution map[string]int `json:"importance_distribution"`
	MonthlyDistribution    map[string]int `json:"monthly_distribution"`
}

// Importance bands used by Statistics.
const (
	ImportanceHigh   = "high"
	ImportanceMedium = "medium"
	ImportanceLow    = "low"
)

// ImportanceBand classifies a score into high (>=10), medium (>=5) or low.
func ImportanceBand(score float64) string {
	switch {
	case score >= 10:
		return ImportanceHigh
	case score >= 5:
		return ImportanceMedium
	default:
		return ImportanceLow
	}
}

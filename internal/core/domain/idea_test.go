package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdeaRecord_Text(t *testing.T) {
	assert.Equal(t, "T\nC", IdeaRecord{Title: "T", Content: "C"}.Text())
	assert.Equal(t, "C", IdeaRecord{Content: "C"}.Text())
	assert.Equal(t, "T", IdeaRecord{Title: "T"}.Text())
}

func TestIdeaRecord_Body(t *testing.T) {
	assert.Equal(t, "C", IdeaRecord{Title: "T", Content: "C"}.Body())
	assert.Equal(t, "T", IdeaRecord{Title: "T", Content: "  "}.Body())
}

func TestIdeaRecord_Month(t *testing.T) {
	assert.Equal(t, "2025-07", IdeaRecord{Date: "2025-07-26"}.Month())
	assert.Equal(t, "", IdeaRecord{Date: "today"}.Month())
	assert.Equal(t, "", IdeaRecord{}.Month())
}

func TestIdeaRecord_HasKeyword(t *testing.T) {
	r := IdeaRecord{Keywords: []string{"zeta", "prime"}}
	assert.True(t, r.HasKeyword("prime"))
	assert.False(t, r.HasKeyword("proof"))
}

func TestImportanceBand(t *testing.T) {
	assert.Equal(t, ImportanceHigh, ImportanceBand(12))
	assert.Equal(t, ImportanceMedium, ImportanceBand(5))
	assert.Equal(t, ImportanceLow, ImportanceBand(4.99))
}

func TestCatalog_Helpers(t *testing.T) {
	c := Catalog{
		Concepts:            []Concept{{Name: "theory"}, {Name: "proof"}},
		ImportantCategories: []string{"zeta"},
	}
	assert.Equal(t, []string{"theory", "proof"}, c.ConceptNames())
	assert.True(t, c.IsImportant("zeta"))
	assert.False(t, c.IsImportant("general"))
}

func TestRecommendation_Best(t *testing.T) {
	assert.Equal(t, RankedVersion{}, Recommendation{}.Best())

	r := Recommendation{Ranked: []RankedVersion{{Rank: 1, Quality: 3}, {Rank: 2}}}
	assert.Equal(t, 1, r.Best().Rank)
}

func TestQualityAssessment_Mean(t *testing.T) {
	q := QualityAssessment{
		Clarity: 0.7, MathematicalBeauty: 0.7, ScientificLogic: 0.7, MathematicalPower: 0.7,
		Innovation: 0.7, LiteraryCoherence: 0.7, Applicability: 0.7,
	}
	assert.InDelta(t, 0.7, q.Mean(), 1e-9)
}

package reconcile

import (
	"fmt"

	"github.com/custodia-labs/ideaforge/internal/core/domain"
)

// Assessor rates a text on the seven quality criteria.
type Assessor interface {
	Assess(text string) domain.QualityAssessment
}

// Classifier decides how a new idea text relates to stored ideas.
type Classifier struct {
	similarity TextSimilarity
	assessor   Assessor
	thresholds domain.ThresholdSettings
}

// NewClassifier creates a Classifier. It uses SameIdea, Similar and
// ImprovementMargin from thresholds.
func NewClassifier(sim TextSimilarity, assessor Assessor, thresholds domain.ThresholdSettings) *Classifier {
	return &Classifier{similarity: sim, assessor: assessor, thresholds: thresholds}
}

// Classify compares text with every stored idea.
//
// Above SameIdea the text is a duplicate and is ignored. Above Similar it
// either improves on its closest match (its assessed quality beats the
// match by ImprovementMargin) and should replace it, or is merely similar
// and worth considering. Otherwise it is new.
func (c *Classifier) Classify(text string, existing []domain.IdeaRecord) domain.IntegrationVerdict {
	v := domain.IntegrationVerdict{
		Quality: c.assessor.Assess(text),
		Scores:  make([]domain.IdeaSimilarity, 0, len(existing)),
	}

	var closest *domain.IdeaRecord
	for i := range existing {
		idea := &existing[i]
		s := c.similarity.Blended(text, idea.Text())
		v.Scores = append(v.Scores, domain.IdeaSimilarity{IdeaID: idea.ID, Title: idea.Title, Similarity: s})
		if closest == nil || s > v.Similarity {
			closest, v.Similarity = idea, s
		}
	}
	if closest != nil {
		v.MostSimilarID = closest.ID
	}

	th := c.thresholds
	switch {
	case closest != nil && v.Similarity > th.SameIdea:
		v.Status, v.Action = domain.IntegrationDuplicate, domain.IntegrationIgnore
		v.Reasoning = fmt.Sprintf("near-identical to %s (%.2f)", closest.ID, v.Similarity)
	case closest != nil && v.Similarity > th.Similar:
		newQ := v.Quality.Mean()
		oldQ := c.assessor.Assess(closest.Text()).Mean()
		if newQ > oldQ+th.ImprovementMargin {
			v.Status, v.Action = domain.IntegrationImprovement, domain.IntegrationReplace
			v.Reasoning = fmt.Sprintf("improves on %s: quality %.2f vs %.2f", closest.ID, newQ, oldQ)
		} else {
			v.Status, v.Action = domain.IntegrationSimilar, domain.IntegrationConsider
			v.Reasoning = fmt.Sprintf("similar to %s (%.2f) without clear improvement", closest.ID, v.Similarity)
		}
	default:
		v.Status, v.Action = domain.IntegrationNew, domain.IntegrationAdd
		v.Reasoning = fmt.Sprintf("new idea, highest similarity %.2f", v.Similarity)
	}
	return v
}

package domain

// Disposition is the reconciler's recommendation for a set of idea versions.
type Disposition string

// Dispositions.
const (
	// DispositionKeep is returned for a single candidate.
	DispositionKeep Disposition = "keep"

	// DispositionKeepBest keeps the best-ranked version and discards the rest.
	DispositionKeepBest Disposition = "keep_best"

	// DispositionReview asks a human to decide.
	DispositionReview Disposition = "review_manual"

	// DispositionKeepAll keeps every version; they are different enough.
	DispositionKeepAll Disposition = "keep_all"
)

// String returns the string representation.
func (d Disposition) String() string {
	return string(d)
}

// Description returns a human-readable description.
func (d Disposition) Description() string {
	switch d {
	case DispositionKeep:
		return "Single version, keep it"
	case DispositionKeepBest:
		return "Versions are near-identical, keep the best"
	case DispositionReview:
		return "Versions partly overlap, review manually"
	case DispositionKeepAll:
		return "Versions are distinct, keep all"
	default:
		return unknownDescription
	}
}

// RankedVersion is one candidate with its quality score and 1-based rank.
type RankedVersion struct {
	Idea    IdeaRecord `json:"idea"`
	Quality float64    `json:"quality"`
	Rank    int        `json:"rank"`
}

// Recommendation is the reconciler's output.
// Similarity is indexed in Ranked order.
type Recommendation struct {
	Disposition   Disposition     `json:"disposition"`
	Ranked        []RankedVersion `json:"ranked"`
	Similarity    [][]float64     `json:"similarity"`
	MaxSimilarity float64         `json:"max_similarity"`
}

// Best returns the top-ranked version.
func (r Recommendation) Best() RankedVersion {
	if len(r.Ranked) == 0 {
		return RankedVersion{}
	}
	return r.Ranked[0]
}

// AdmissionStatus is the outcome of offering an idea to the database.
type AdmissionStatus string

// Admission statuses.
const (
	AdmissionNew            AdmissionStatus = "new"
	AdmissionExactDuplicate AdmissionStatus = "exact_duplicate"
	AdmissionReconcile      AdmissionStatus = "reconcile"
)

// String returns the string representation.
func (s AdmissionStatus) String() string {
	return string(s)
}

// AdmissionResult reports what happened to an offered idea.
type AdmissionResult struct {
	Status AdmissionStatus `json:"status"`

	// Idea is the offered idea; its ID is set when it was inserted.
	Idea IdeaRecord `json:"idea"`

	// MatchedIDs lists existing ideas that matched, most similar first.
	MatchedIDs []string `json:"matched_ids,omitempty"`

	MaxSimilarity float64 `json:"max_similarity"`

	// Recommendation is set when Status is AdmissionReconcile.
	Recommendation *Recommendation `json:"recommendation,omitempty"`

	// Action describes how the recommendation was applied, if it was.
	Action string `json:"action,omitempty"`
}

// Admission actions recorded in AdmissionResult.Action.
const (
	ActionInserted = "inserted"
	ActionReplaced = "replaced"
	ActionDropped  = "dropped"
	ActionPending  = "pending_review"
)

// IntegrationStatus classifies a new idea against the stored collection.
type IntegrationStatus string

// Integration statuses.
const (
	IntegrationDuplicate   IntegrationStatus = "duplicate"
	IntegrationImprovement IntegrationStatus = "improvement"
	IntegrationSimilar     IntegrationStatus = "similar"
	IntegrationNew         IntegrationStatus = "new"
)

// IntegrationAction is what the caller should do with a classified idea.
type IntegrationAction string

// Integration actions.
const (
	IntegrationIgnore   IntegrationAction = "ignore"
	IntegrationReplace  IntegrationAction = "replace"
	IntegrationConsider IntegrationAction = "consider"
	IntegrationAdd      IntegrationAction = "add"
)

// QualityAssessment rates a text on seven 0..1 criteria.
type QualityAssessment struct {
	Clarity            float64 `json:"clarity"`
	MathematicalBeauty float64 `json:"mathematical_beauty"`
	ScientificLogic    float64 `json:"scientific_logic"`
	MathematicalPower  float64 `json:"mathematical_power"`
	Innovation         float64 `json:"innovation"`
	LiteraryCoherence  float64 `json:"literary_coherence"`
	Applicability      float64 `json:"applicability"`
}

// Mean returns the average of the seven criteria.
func (q QualityAssessment) Mean() float64 {
	sum := q.Clarity + q.MathematicalBeauty + q.ScientificLogic + q.MathematicalPower +
		q.Innovation + q.LiteraryCoherence + q.Applicability
	return sum / 7
}

// IdeaSimilarity is the similarity of a new text to one stored idea.
type IdeaSimilarity struct {
	IdeaID     string  `json:"idea_id"`
	Title      string  `json:"title"`
	Similarity float64 `json:"similarity"`
}

// IntegrationVerdict is the classifier's decision for a new idea text.
type IntegrationVerdict struct {
	Status             IntegrationStatus `json:"status"`
	Action             IntegrationAction `json:"action"`
	MostSimilarID      string            `json:"most_similar_id,omitempty"`
	Similarity         float64           `json:"similarity"`
	Scores             []IdeaSimilarity  `json:"similarity_scores"`
	Quality            QualityAssessment `json:"quality"`
	RecommendedSection string            `json:"recommended_section,omitempty"`
	SectionScore       float64           `json:"section_score"`
	Reasoning          string            `json:"reasoning"`
}

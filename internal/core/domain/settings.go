package domain

import "fmt"

const unknownDescription = "Unknown"

// ClusterMode selects how approximate duplicates are grouped.
type ClusterMode string

// Available cluster modes.
const (
	// ClusterGreedy compares each unprocessed seed with later lines only.
	// Membership is not transitive.
	ClusterGreedy ClusterMode = "greedy"

	// ClusterTransitive links every qualifying pair and takes connected
	// components.
	ClusterTransitive ClusterMode = "transitive"
)

// IsValid returns true if the mode is recognised.
func (m ClusterMode) IsValid() bool {
	switch m {
	case ClusterGreedy, ClusterTransitive:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m ClusterMode) String() string {
	return string(m)
}

// Description returns a human-readable description of the mode.
func (m ClusterMode) Description() string {
	switch m {
	case ClusterGreedy:
		return "Greedy (seed compared with later lines, non-transitive)"
	case ClusterTransitive:
		return "Transitive (connected components of similar pairs)"
	default:
		return unknownDescription
	}
}

// AllClusterModes returns all available cluster modes.
func AllClusterModes() []ClusterMode {
	return []ClusterMode{ClusterGreedy, ClusterTransitive}
}

// AnalysisSettings tunes line-level analysis.
type AnalysisSettings struct {
	// MinLineLength is the minimum normalised rune length a line needs
	// before it takes part in duplicate detection.
	MinLineLength int

	// SimilarityThreshold is the approximate-duplicate cut-off.
	SimilarityThreshold float64

	// ContextWordBudget is the per-direction word budget of a context window.
	ContextWordBudget int

	// ClusterMode selects greedy or transitive approximate grouping.
	ClusterMode ClusterMode
}

// ThresholdSettings holds the independent similarity thresholds.
type ThresholdSettings struct {
	// SameIdea marks a new idea as a duplicate of a stored one.
	SameIdea float64

	// Admission routes an offered idea to the reconciler.
	Admission float64

	// Similar marks a new idea as related to a stored one.
	Similar float64

	// KeepBest is the reconciler's near-identical cut-off.
	KeepBest float64

	// Review is the reconciler's partial-overlap cut-off.
	Review float64

	// ImprovementMargin is how much better a new idea must assess to replace a match.
	ImprovementMargin float64
}

// SimilarityWeights blends sequence and concept similarity.
type SimilarityWeights struct {
	Sequence float64
	Concept  float64
}

// QualityWeights parameterise the importance score.
type QualityWeights struct {
	Equation          float64
	Keyword           float64
	LengthDivisor     float64
	LengthCap         float64
	Header            float64
	Example           float64
	Logic             float64
	Transition        float64
	SentenceBonus     float64
	SentenceMin       float64
	SentenceMax       float64
	ImportantCategory float64
}

// Settings holds all analysis configuration.
type Settings struct {
	Analysis   AnalysisSettings
	Thresholds ThresholdSettings
	Similarity SimilarityWeights
	Quality    QualityWeights
}

// DefaultSettings returns settings with the documented defaults.
func DefaultSettings() Settings {
	return Settings{
		Analysis: AnalysisSettings{
			MinLineLength:       10,
			SimilarityThreshold: 0.7,
			ContextWordBudget:   10,
			ClusterMode:         ClusterGreedy,
		},
		Thresholds: ThresholdSettings{
			SameIdea:          0.95,
			Admission:         0.8,
			Similar:           0.7,
			KeepBest:          0.8,
			Review:            0.5,
			ImprovementMargin: 0.1,
		},
		Similarity: SimilarityWeights{
			Sequence: 0.6,
			Concept:  0.4,
		},
		Quality: DefaultQualityWeights(),
	}
}

// DefaultQualityWeights returns the default importance score weights.
func DefaultQualityWeights() QualityWeights {
	return QualityWeights{
		Equation:          2.0,
		Keyword:           1.5,
		LengthDivisor:     100,
		LengthCap:         5.0,
		Header:            1.0,
		Example:           1.5,
		Logic:             0.5,
		Transition:        0.5,
		SentenceBonus:     2.0,
		SentenceMin:       10,
		SentenceMax:       25,
		ImportantCategory: 3.0,
	}
}

// Validate checks every value is in range.
func (s Settings) Validate() error {
	a := s.Analysis
	if a.MinLineLength < 0 {
		return fmt.Errorf("%w: analysis.min_line_length must be >= 0", ErrInvalidSettings)
	}
	if a.ContextWordBudget < 0 {
		return fmt.Errorf("%w: analysis.context_word_budget must be >= 0", ErrInvalidSettings)
	}
	if !a.ClusterMode.IsValid() {
		return fmt.Errorf("%w: unknown cluster mode %q", ErrInvalidSettings, a.ClusterMode)
	}

	if a.SimilarityThreshold <= 0 {
		return fmt.Errorf("%w: analysis.similarity_threshold must be within (0, 1], got %v", ErrInvalidSettings, a.SimilarityThreshold)
	}

	ratios := map[string]float64{
		"analysis.similarity_threshold": a.SimilarityThreshold,
		"thresholds.same_idea":          s.Thresholds.SameIdea,
		"thresholds.admission":          s.Thresholds.Admission,
		"thresholds.similar":            s.Thresholds.Similar,
		"thresholds.keep_best":          s.Thresholds.KeepBest,
		"thresholds.review":             s.Thresholds.Review,
		"thresholds.improvement_margin": s.Thresholds.ImprovementMargin,
		"similarity.sequence_weight":    s.Similarity.Sequence,
		"similarity.concept_weight":     s.Similarity.Concept,
	}
	for key, v := range ratios {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: %s must be within [0, 1], got %v", ErrInvalidSettings, key, v)
		}
	}

	if s.Thresholds.Review > s.Thresholds.KeepBest {
		return fmt.Errorf("%w: thresholds.review must not exceed thresholds.keep_best", ErrInvalidSettings)
	}
	if s.Similarity.Sequence+s.Similarity.Concept == 0 {
		return fmt.Errorf("%w: similarity weights must not both be zero", ErrInvalidSettings)
	}
	if s.Quality.LengthDivisor <= 0 {
		return fmt.Errorf("%w: quality.length_divisor must be > 0", ErrInvalidSettings)
	}
	return nil
}

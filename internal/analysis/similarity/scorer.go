package similarity

// ConceptDetector reports which catalog concepts a text mentions.
type ConceptDetector interface {
	Detect(text string) Set
}

// Scorer blends sequence similarity with concept overlap.
type Scorer struct {
	detector       ConceptDetector
	sequenceWeight float64
	conceptWeight  float64
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithWeights sets the sequence and concept weights.
func WithWeights(sequence, concept float64) Option {
	return func(s *Scorer) {
		s.sequenceWeight = sequence
		s.conceptWeight = concept
	}
}

// Default blend weights.
const (
	DefaultSequenceWeight = 0.6
	DefaultConceptWeight  = 0.4
)

// NewScorer creates a Scorer. A nil detector disables the concept component.
func NewScorer(detector ConceptDetector, opts ...Option) *Scorer {
	s := &Scorer{
		detector:       detector,
		sequenceWeight: DefaultSequenceWeight,
		conceptWeight:  DefaultConceptWeight,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sequence returns the sequence ratio of the normalised texts.
func (s *Scorer) Sequence(a, b string) float64 {
	return Sequence(a, b)
}

// ConceptOverlap returns the Jaccard overlap of the concepts detected in a and b.
func (s *Scorer) ConceptOverlap(a, b string) float64 {
	if s.detector == nil {
		return 0
	}
	return Jaccard(s.detector.Detect(a), s.detector.Detect(b))
}

// Blended returns the weighted blend of sequence and concept similarity.
// When neither text mentions a concept the concept component is undefined
// and the sequence ratio is returned alone.
func (s *Scorer) Blended(a, b string) float64 {
	seq := s.Sequence(a, b)
	if s.detector == nil || s.conceptWeight == 0 {
		return seq
	}
	ca, cb := s.detector.Detect(a), s.detector.Detect(b)
	if len(ca) == 0 && len(cb) == 0 {
		return seq
	}
	total := s.sequenceWeight + s.conceptWeight
	return (s.sequenceWeight*seq + s.conceptWeight*Jaccard(ca, cb)) / total
}

// Score implements the scoring function used by the duplicate detectors.
func (s *Scorer) Score(a, b string) float64 {
	return s.Blended(a, b)
}

package domain

// Concept is a named pattern detected in text.
// Pattern is a regular expression matched case-insensitively.
type Concept struct {
	Name    string `json:"name" toml:"name"`
	Pattern string `json:"pattern" toml:"pattern"`
}

// Category groups ideas by the keywords they mention.
// Categories are evaluated in catalog order; the first match wins.
type Category struct {
	Name     string   `json:"name" toml:"name"`
	Keywords []string `json:"keywords" toml:"keywords"`
}

// Markers are word lists that signal writing qualities.
type Markers struct {
	Example    []string `json:"example" toml:"example"`
	Logic      []string `json:"logic" toml:"logic"`
	Transition []string `json:"transition" toml:"transition"`
	Innovation []string `json:"innovation" toml:"innovation"`
}

// Catalog holds every piece of domain vocabulary the analysers use.
// The core never hard-codes vocabulary; a Catalog is always injected.
type Catalog struct {
	// Concepts are detected by the similarity scorer and concept locator.
	Concepts []Concept `json:"concepts" toml:"concepts"`

	// Categories classify parsed ideas.
	Categories []Category `json:"categories" toml:"categories"`

	// Keywords are collected into IdeaRecord.Keywords.
	Keywords []string `json:"keywords" toml:"keywords"`

	// ImportantCategories earn a quality bonus.
	ImportantCategories []string `json:"important_categories" toml:"important_categories"`

	// BlockPatterns start a new idea block when they match a line.
	BlockPatterns []string `json:"block_patterns" toml:"block_patterns"`

	// EquationPatterns extract equations from idea content, in priority order.
	EquationPatterns []string `json:"equation_patterns" toml:"equation_patterns"`

	// HeadingPatterns recognise structural heading lines.
	HeadingPatterns []string `json:"heading_patterns" toml:"heading_patterns"`

	// NoisePatterns open sections that are conversational chatter.
	NoisePatterns []string `json:"noise_patterns" toml:"noise_patterns"`

	// Markers feed the quality scorer and assessor.
	Markers Markers `json:"markers" toml:"markers"`

	// DefaultDate is used when an idea block carries no date.
	DefaultDate string `json:"default_date" toml:"default_date"`

	// DefaultCategory is used when no category keyword matches.
	DefaultCategory string `json:"default_category" toml:"default_category"`

	// DefaultSection is recommended when no reference section matches.
	DefaultSection string `json:"default_section" toml:"default_section"`
}

// ConceptNames returns the concept names in catalog order.
func (c Catalog) ConceptNames() []string {
	names := make([]string, 0, len(c.Concepts))
	for _, concept := range c.Concepts {
		names = append(names, concept.Name)
	}
	return names
}

// IsImportant reports whether category earns the importance bonus.
func (c Catalog) IsImportant(category string) bool {
	for _, name := range c.ImportantCategories {
		if name == category {
			return true
		}
	}
	return false
}

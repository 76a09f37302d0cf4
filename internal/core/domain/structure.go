package domain

// StructureItem is one structural element found on a line.
type StructureItem struct {
	Line    Location `json:"line"`
	Content string   `json:"content"`
	Match   string   `json:"match,omitempty"`
}

// Structure describes the layout of a document.
type Structure struct {
	MainHeaders   []StructureItem `json:"main_headers"`
	SubHeaders    []StructureItem `json:"sub_headers"`
	NumberedItems []StructureItem `json:"numbered_items"`
	BulletPoints  []StructureItem `json:"bullet_points"`
	Equations     []StructureItem `json:"equations"`
	Dates         []StructureItem `json:"dates"`
}

// Section is a named span of a document.
type Section struct {
	Name  string   `json:"name"`
	Start Location `json:"start"`
	End   Location `json:"end"`
	Lines []string `json:"lines"`
}

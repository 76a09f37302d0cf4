package driven

import "context"

// Normaliser converts a notebook export (HTML, DOCX) into plain text lines
// that the analysers can read. Headings are rendered as markdown "#" lines
// so block and structure detection still see them.
type Normaliser interface {
	// Extensions lists the lower-case file extensions handled, dot included.
	Extensions() []string

	// Normalise returns the text content of data.
	Normalise(ctx context.Context, data []byte) (string, error)
}

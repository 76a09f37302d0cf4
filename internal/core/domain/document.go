package domain

import "strings"

// Location is a 0-based line index into a Document.
type Location int

// Number returns the 1-based line number used in human-facing output.
func (l Location) Number() int {
	return int(l) + 1
}

// Document is an ordered, immutable sequence of lines.
// Every analysis in ideaforge operates on one Document held in memory.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// URI is the original location (file path, "-" for stdin).
	URI string

	lines []string
}

// NewDocument creates a document over a copy of lines.
func NewDocument(id, uri string, lines []string) *Document {
	cp := make([]string, len(lines))
	copy(cp, lines)
	return &Document{ID: id, URI: uri, lines: cp}
}

// NewDocumentFromText splits text on newlines, dropping carriage returns
// and a single trailing newline.
func NewDocumentFromText(id, uri, text string) *Document {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return NewDocument(id, uri, nil)
	}
	return NewDocument(id, uri, strings.Split(text, "\n"))
}

// Len returns the number of lines.
func (d *Document) Len() int {
	return len(d.lines)
}

// Valid reports whether loc addresses a line of the document.
func (d *Document) Valid(loc Location) bool {
	return loc >= 0 && int(loc) < len(d.lines)
}

// Line returns the line at loc, or "" when loc is out of range.
func (d *Document) Line(loc Location) string {
	if !d.Valid(loc) {
		return ""
	}
	return d.lines[loc]
}

// Lines returns a copy of all lines.
func (d *Document) Lines() []string {
	cp := make([]string, len(d.lines))
	copy(cp, d.lines)
	return cp
}

// Slice returns a copy of lines start..end inclusive, clamped to the document.
func (d *Document) Slice(start, end Location) []string {
	if start < 0 {
		start = 0
	}
	if int(end) >= len(d.lines) {
		end = Location(len(d.lines) - 1)
	}
	if start > end {
		return nil
	}
	cp := make([]string, end-start+1)
	copy(cp, d.lines[start:end+1])
	return cp
}

// Text joins all lines with newlines.
func (d *Document) Text() string {
	return strings.Join(d.lines, "\n")
}

// WordCount returns the number of whitespace-separated words on the line at loc.
func (d *Document) WordCount(loc Location) int {
	return len(strings.Fields(d.Line(loc)))
}

// ContextWindow is an inclusive line range around a center line.
type ContextWindow struct {
	Start     Location `json:"start"`
	End       Location `json:"end"`
	WordCount int      `json:"word_count"`
}

// Contains reports whether loc falls inside the window.
func (w ContextWindow) Contains(loc Location) bool {
	return loc >= w.Start && loc <= w.End
}

// Len returns the number of lines covered.
func (w ContextWindow) Len() int {
	return int(w.End-w.Start) + 1
}

// LineRange is an inclusive span of lines.
type LineRange struct {
	Start Location `json:"start"`
	End   Location `json:"end"`
}

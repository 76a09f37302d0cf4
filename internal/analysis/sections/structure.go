// Package sections analyses document layout: headings, lists, inline
// markers, keyword-triggered sections and conversational noise.
package sections

import (
	"regexp"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/custodia-labs/ideaforge/internal/core/domain"
)

var (
	boldPattern     = regexp.MustCompile(`\*\*(.+?)\*\*`)
	equationPattern = regexp.MustCompile(`\$\$?.+?\$\$?`)
	datePattern     = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
)

// source is a document rendered for the markdown parser with a table of
// line start offsets for mapping AST segments back to lines.
type source struct {
	doc    *domain.Document
	bytes  []byte
	starts []int
}

func newSource(doc *domain.Document) *source {
	s := &source{doc: doc, starts: make([]int, 0, doc.Len())}
	var b strings.Builder
	for i := 0; i < doc.Len(); i++ {
		s.starts = append(s.starts, b.Len())
		b.WriteString(doc.Line(domain.Location(i)))
		b.WriteByte('\n')
	}
	s.bytes = []byte(b.String())
	return s
}

func (s *source) parse() ast.Node {
	return goldmark.New().Parser().Parse(text.NewReader(s.bytes))
}

// lineOf maps a byte offset to its line.
func (s *source) lineOf(offset int) domain.Location {
	return domain.Location(sort.SearchInts(s.starts, offset+1) - 1)
}

// firstSegment returns the first text segment of n or its descendants.
func firstSegment(n ast.Node) (text.Segment, bool) {
	if n.Type() == ast.TypeBlock && n.Lines().Len() > 0 {
		return n.Lines().At(0), true
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if seg, ok := firstSegment(c); ok {
			return seg, true
		}
	}
	return text.Segment{}, false
}

// Analyze reports headings, numbered and bulleted list items, bold
// sub-headers, inline equations and ISO dates, each with its line.
func Analyze(doc *domain.Document) domain.Structure {
	st := domain.Structure{
		MainHeaders:   []domain.StructureItem{},
		SubHeaders:    []domain.StructureItem{},
		NumberedItems: []domain.StructureItem{},
		BulletPoints:  []domain.StructureItem{},
		Equations:     []domain.StructureItem{},
		Dates:         []domain.StructureItem{},
	}

	src := newSource(doc)
	item := func(seg text.Segment) domain.StructureItem {
		loc := src.lineOf(seg.Start)
		return domain.StructureItem{
			Line:    loc,
			Content: strings.TrimSpace(doc.Line(loc)),
			Match:   strings.TrimSpace(string(seg.Value(src.bytes))),
		}
	}

	_ = ast.Walk(src.parse(), func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			if seg, ok := firstSegment(node); ok {
				st.MainHeaders = append(st.MainHeaders, item(seg))
			}
		case *ast.ListItem:
			seg, ok := firstSegment(node)
			if !ok {
				break
			}
			if list, isList := node.Parent().(*ast.List); isList && list.IsOrdered() {
				st.NumberedItems = append(st.NumberedItems, item(seg))
			} else {
				st.BulletPoints = append(st.BulletPoints, item(seg))
			}
		}
		return ast.WalkContinue, nil
	})

	for i := 0; i < doc.Len(); i++ {
		loc := domain.Location(i)
		line := doc.Line(loc)
		st.SubHeaders = appendMatches(st.SubHeaders, boldPattern, loc, line)
		st.Equations = appendMatches(st.Equations, equationPattern, loc, line)
		st.Dates = appendMatches(st.Dates, datePattern, loc, line)
	}
	return st
}

func appendMatches(items []domain.StructureItem, re *regexp.Regexp, loc domain.Location, line string) []domain.StructureItem {
	for _, m := range re.FindAllString(line, -1) {
		items = append(items, domain.StructureItem{Line: loc, Content: strings.TrimSpace(line), Match: m})
	}
	return items
}

// Outline splits a document into sections at headings of the given level
// or higher. Text before the first such heading is not a section.
func Outline(doc *domain.Document, level int) []domain.Section {
	src := newSource(doc)
	type heading struct {
		name string
		line domain.Location
	}
	var heads []heading
	_ = ast.Walk(src.parse(), func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		h, ok := n.(*ast.Heading)
		if !entering || !ok || h.Level > level {
			return ast.WalkContinue, nil
		}
		if seg, found := firstSegment(h); found {
			heads = append(heads, heading{
				name: strings.TrimSpace(string(seg.Value(src.bytes))),
				line: src.lineOf(seg.Start),
			})
		}
		return ast.WalkSkipChildren, nil
	})

	out := make([]domain.Section, 0, len(heads))
	for i, h := range heads {
		end := domain.Location(doc.Len() - 1)
		if i+1 < len(heads) {
			end = heads[i+1].line - 1
		}
		out = append(out, domain.Section{
			Name:  h.name,
			Start: h.line,
			End:   end,
			Lines: doc.Slice(h.line+1, end),
		})
	}
	return out
}

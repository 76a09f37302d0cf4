// Package parser splits a notebook document into idea blocks and turns
// each block into an IdeaRecord.
//
// A block starts at any line matching one of the configured block
// patterns (anchored at the start of the trimmed line) and runs until the
// next such line. Text before the first block start forms a block of its
// own.
package parser

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/custodia-labs/ideaforge/internal/analysis/textnorm"
	"github.com/custodia-labs/ideaforge/internal/core/domain"
	"github.com/custodia-labs/ideaforge/internal/logger"
)

// DefaultCategory is used when the catalog names none.
const DefaultCategory = "general"

var (
	isoDate      = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
	leadingIndex = regexp.MustCompile(`^\d+[.)]\s+`)
)

// Config holds the vocabulary and patterns the parser uses.
type Config struct {
	BlockPatterns    []string
	EquationPatterns []string
	Keywords         []string
	Categories       []domain.Category
	DefaultDate      string
	DefaultCategory  string
}

// ConfigFromCatalog extracts the parser configuration from a catalog.
func ConfigFromCatalog(c domain.Catalog) Config {
	return Config{
		BlockPatterns:    c.BlockPatterns,
		EquationPatterns: c.EquationPatterns,
		Keywords:         c.Keywords,
		Categories:       c.Categories,
		DefaultDate:      c.DefaultDate,
		DefaultCategory:  c.DefaultCategory,
	}
}

// Parser turns documents into idea records.
type Parser struct {
	blockStarts []*regexp.Regexp
	equations   []*regexp.Regexp
	keywords    []string
	categories  []domain.Category
	defaultDate string
	defaultCat  string
	warnings    []string
}

// New compiles cfg. Patterns that fail to compile are skipped; each one
// is reported in the warnings of every ParseResult.
func New(cfg Config) *Parser {
	p := &Parser{
		keywords:    cfg.Keywords,
		categories:  cfg.Categories,
		defaultDate: cfg.DefaultDate,
		defaultCat:  cfg.DefaultCategory,
	}
	if p.defaultCat == "" {
		p.defaultCat = DefaultCategory
	}
	for _, pattern := range cfg.BlockPatterns {
		re, err := regexp.Compile(`^(?:` + pattern + `)`)
		if err != nil {
			p.warn("block pattern %q skipped: %v", pattern, err)
			continue
		}
		p.blockStarts = append(p.blockStarts, re)
	}
	for _, pattern := range cfg.EquationPatterns {
		re, err := regexp.Compile(`(?s)` + pattern)
		if err != nil {
			p.warn("equation pattern %q skipped: %v", pattern, err)
			continue
		}
		p.equations = append(p.equations, re)
	}
	return p
}

func (p *Parser) warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	logger.Warn("%s", msg)
	p.warnings = append(p.warnings, msg)
}

// Warnings returns the pattern compilation warnings.
func (p *Parser) Warnings() []string {
	return append([]string(nil), p.warnings...)
}

// block is a span of lines belonging to one idea.
type block struct {
	start, end domain.Location
	lines      []string
}

// blocks splits doc into idea blocks with leading and trailing blank lines
// trimmed. Blocks that are entirely blank are dropped.
func (p *Parser) blocks(doc *domain.Document) []block {
	var blocks []block
	start := domain.Location(0)
	flush := func(end domain.Location) {
		if end < start {
			return
		}
		s, e := start, end
		for s <= e && strings.TrimSpace(doc.Line(s)) == "" {
			s++
		}
		for e >= s && strings.TrimSpace(doc.Line(e)) == "" {
			e--
		}
		if s <= e {
			blocks = append(blocks, block{start: s, end: e, lines: doc.Slice(s, e)})
		}
	}

	for i := 0; i < doc.Len(); i++ {
		loc := domain.Location(i)
		if loc > start && p.isBlockStart(doc.Line(loc)) {
			flush(loc - 1)
			start = loc
		}
	}
	flush(domain.Location(doc.Len() - 1))
	return blocks
}

func (p *Parser) isBlockStart(line string) bool {
	trimmed := strings.TrimSpace(line)
	for _, re := range p.blockStarts {
		if re.MatchString(trimmed) {
			return true
		}
	}
	return false
}

// Parse splits doc into blocks and parses each one. Malformed blocks are
// skipped and counted. IDs are left empty; they are assigned on admission.
func (p *Parser) Parse(doc *domain.Document) domain.ParseResult {
	res := domain.ParseResult{Ideas: []domain.IdeaRecord{}, Warnings: p.Warnings()}
	for _, b := range p.blocks(doc) {
		idea, err := p.ParseBlock(b.lines)
		if err != nil {
			res.Skipped++
			res.Warnings = append(res.Warnings, fmt.Sprintf("lines %d-%d: %v", b.start.Number(), b.end.Number(), err))
			logger.Warn("skipping block at line %d: %v", b.start.Number(), err)
			continue
		}
		idea.StartLine, idea.EndLine = b.start, b.end
		res.Ideas = append(res.Ideas, idea)
	}
	logger.Debug("parsed %d ideas from %s, skipped %d blocks", len(res.Ideas), doc.URI, res.Skipped)
	return res
}

// ParseBlock turns the lines of one block into an IdeaRecord.
// The first line is the title; the rest is the content.
func (p *Parser) ParseBlock(lines []string) (domain.IdeaRecord, error) {
	if len(lines) == 0 {
		return domain.IdeaRecord{}, fmt.Errorf("%w: empty block", domain.ErrInvalidInput)
	}
	title := cleanTitle(lines[0])
	content := strings.TrimSpace(strings.Join(lines[1:], "\n"))
	if title == "" && content == "" {
		return domain.IdeaRecord{}, fmt.Errorf("%w: block has no title or content", domain.ErrInvalidInput)
	}

	full := title + "\n" + content
	idea := domain.IdeaRecord{
		Title:     title,
		Content:   content,
		Date:      p.date(full),
		Equations: p.extractEquations(content),
		Keywords:  p.extractKeywords(full),
	}
	idea.Category = p.categorize(full)
	idea.ContentHash, _ = textnorm.FingerprintText(idea.Body())
	return idea, nil
}

// cleanTitle strips markdown markers and a leading list index.
func cleanTitle(line string) string {
	t := strings.TrimSpace(line)
	t = leadingIndex.ReplaceAllString(t, "")
	return strings.Trim(t, "#* \t")
}

// date returns the first valid ISO date in text, or the default.
func (p *Parser) date(text string) string {
	for _, candidate := range isoDate.FindAllString(text, -1) {
		if _, err := time.Parse(time.DateOnly, candidate); err == nil {
			return candidate
		}
	}
	return p.defaultDate
}

// extractEquations applies the equation patterns in priority order; a match
// overlapping an already accepted one is dropped. Results follow text order.
func (p *Parser) extractEquations(content string) []string {
	type span struct{ start, end int }
	var accepted []span
	overlaps := func(s span) bool {
		for _, a := range accepted {
			if s.start < a.end && a.start < s.end {
				return true
			}
		}
		return false
	}
	for _, re := range p.equations {
		for _, loc := range re.FindAllStringIndex(content, -1) {
			s := span{loc[0], loc[1]}
			if !overlaps(s) {
				accepted = append(accepted, s)
			}
		}
	}
	sort.Slice(accepted, func(i, j int) bool { return accepted[i].start < accepted[j].start })

	out := []string{}
	for _, s := range accepted {
		if eq := strings.TrimSpace(content[s.start:s.end]); eq != "" {
			out = append(out, eq)
		}
	}
	return out
}

// extractKeywords returns the catalog keywords present in text, in catalog order.
func (p *Parser) extractKeywords(text string) []string {
	folded := textnorm.Fold(text)
	out := []string{}
	seen := make(map[string]bool)
	for _, kw := range p.keywords {
		if seen[kw] || kw == "" {
			continue
		}
		if strings.Contains(folded, textnorm.Fold(kw)) {
			seen[kw] = true
			out = append(out, kw)
		}
	}
	return out
}

// categorize returns the first category with a keyword present in text.
func (p *Parser) categorize(text string) string {
	folded := textnorm.Fold(text)
	for _, cat := range p.categories {
		for _, kw := range cat.Keywords {
			if kw != "" && strings.Contains(folded, textnorm.Fold(kw)) {
				return cat.Name
			}
		}
	}
	return p.defaultCat
}

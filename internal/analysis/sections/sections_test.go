package sections

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ideaforge/internal/core/domain"
)

func doc(lines ...string) *domain.Document {
	return domain.NewDocument("doc", "test.md", lines)
}

func isHeading(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "##")
}

func TestAnalyze(t *testing.T) {
	d := doc(
		"# Main title",                     // 0
		"",                                 // 1
		"Intro with **bold part** and $x$", // 2
		"",                                 // 3
		"1. first step",                    // 4
		"2. second step",                   // 5
		"",                                 // 6
		"- bullet one",                     // 7
		"* bullet two",                     // 8
		"",                                 // 9
		"### Sub heading 2025-07-26",       // 10
		"$$E = mc^2$$",                     // 11
	)

	st := Analyze(d)

	require.Len(t, st.MainHeaders, 2)
	assert.Equal(t, domain.Location(0), st.MainHeaders[0].Line)
	assert.Equal(t, "Main title", st.MainHeaders[0].Match)
	assert.Equal(t, domain.Location(10), st.MainHeaders[1].Line)

	require.Len(t, st.NumberedItems, 2)
	assert.Equal(t, domain.Location(4), st.NumberedItems[0].Line)
	assert.Equal(t, "first step", st.NumberedItems[0].Match)
	assert.Equal(t, domain.Location(5), st.NumberedItems[1].Line)

	require.Len(t, st.BulletPoints, 2)
	assert.Equal(t, domain.Location(7), st.BulletPoints[0].Line)
	assert.Equal(t, domain.Location(8), st.BulletPoints[1].Line)

	require.Len(t, st.SubHeaders, 1)
	assert.Equal(t, "**bold part**", st.SubHeaders[0].Match)

	require.Len(t, st.Equations, 2)
	assert.Equal(t, "$x$", st.Equations[0].Match)
	assert.Equal(t, domain.Location(11), st.Equations[1].Line)

	require.Len(t, st.Dates, 1)
	assert.Equal(t, "2025-07-26", st.Dates[0].Match)
}

func TestAnalyze_EmptyDocument(t *testing.T) {
	st := Analyze(doc())
	assert.Empty(t, st.MainHeaders)
	assert.NotNil(t, st.Dates)
}

func TestOutline(t *testing.T) {
	d := doc(
		"preface",        // 0
		"## Chapter one", // 1
		"zeta text",      // 2
		"### Detail",     // 3
		"more zeta",      // 4
		"## Chapter two", // 5
		"primes text",    // 6
	)

	out := Outline(d, 2)
	require.Len(t, out, 2)
	assert.Equal(t, "Chapter one", out[0].Name)
	assert.Equal(t, domain.Location(1), out[0].Start)
	assert.Equal(t, domain.Location(4), out[0].End)
	assert.Equal(t, []string{"zeta text", "### Detail", "more zeta"}, out[0].Lines)
	assert.Equal(t, "Chapter two", out[1].Name)
	assert.Equal(t, []string{"primes text"}, out[1].Lines)
}

func TestExtract(t *testing.T) {
	d := doc(
		"## Method A",             // 0
		"setup line",              // 1
		"uses the filament trick", // 2
		"conclusion",              // 3
		"## Method B",             // 4
		"the FILAMENT again",      // 5
		"end",                     // 6
	)

	out := Extract(d, []string{"filament", "conclusion"}, isHeading, DefaultMaxSpan)

	require.Len(t, out, 2)
	assert.Equal(t, "filament", out[0].Name)
	assert.Equal(t, domain.Location(1), out[0].Start)
	assert.Equal(t, domain.Location(3), out[0].End)
	assert.Equal(t, domain.Location(5), out[1].Start)
	assert.Equal(t, domain.Location(6), out[1].End)
}

func TestExtract_SpanLimit(t *testing.T) {
	lines := make([]string, 20)
	for i := range lines {
		lines[i] = "filler"
	}
	lines[10] = "keyword here"

	out := Extract(doc(lines...), []string{"keyword"}, isHeading, 3)
	require.Len(t, out, 1)
	assert.Equal(t, domain.Location(8), out[0].Start)
	assert.Equal(t, domain.Location(12), out[0].End)
}

func TestNoiseDetector(t *testing.T) {
	d := doc(
		"### Real idea",      // 0
		"content",            // 1
		"Great! Let me help", // 2
		"chatter continues",  // 3
		"**Next topic**",     // 4
		"body",               // 5
	)

	det, err := NewNoiseDetector([]string{`great!`, `(`}, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidPattern))

	ranges := det.Detect(d)
	require.Len(t, ranges, 1)
	assert.Equal(t, domain.LineRange{Start: 2, End: 3}, ranges[0])

	cleaned := Remove(d, ranges)
	assert.Equal(t, []string{"### Real idea", "content", "**Next topic**", "body"}, cleaned.Lines())
}

func TestNoiseDetector_SpanLimit(t *testing.T) {
	d := doc("noise start", "a", "b", "c", "d")
	det, err := NewNoiseDetector([]string{`noise`}, 2)
	require.NoError(t, err)

	assert.Equal(t, []domain.LineRange{{Start: 0, End: 1}}, det.Detect(d))
}

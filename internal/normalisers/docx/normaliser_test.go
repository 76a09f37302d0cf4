package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ideaforge/internal/core/domain"
)

// createTestDOCX creates a minimal valid DOCX file in memory.
func createTestDOCX(t *testing.T, documentXML string) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)

	contentTypes, err := w.Create("[Content_Types].xml")
	require.NoError(t, err)
	_, err = contentTypes.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="xml" ContentType="application/xml"/>
</Types>`))
	require.NoError(t, err)

	if documentXML != "" {
		doc, err := w.Create("word/document.xml")
		require.NoError(t, err)
		_, err = doc.Write([]byte(documentXML))
		require.NoError(t, err)
	}

	require.NoError(t, w.Close())
	return buf.Bytes()
}

const wordNS = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"`

func TestNormaliser_Extensions(t *testing.T) {
	assert.Equal(t, []string{".docx"}, New().Extensions())
}

func TestNormalise_Success(t *testing.T) {
	docXML := `<?xml version="1.0" encoding="UTF-8"?>
<w:document ` + wordNS + `>
<w:body>
<w:p><w:pPr><w:pStyle w:val="Heading3"/></w:pPr><w:r><w:t>فكرة (1)</w:t></w:r></w:p>
<w:p><w:r><w:t xml:space="preserve">دالة زيتا </w:t></w:r><w:r><w:t>والأعداد الأولية</w:t></w:r></w:p>
<w:p></w:p>
<w:p><w:pPr><w:pStyle w:val="Normal"/></w:pPr><w:r><w:t>E = mc^2</w:t></w:r></w:p>
</w:body>
</w:document>`

	text, err := New().Normalise(context.Background(), createTestDOCX(t, docXML))

	require.NoError(t, err)
	assert.Equal(t, "### فكرة (1)\nدالة زيتا والأعداد الأولية\n\nE = mc^2", text)
}

func TestNormalise_Errors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"not a zip", []byte("plain text")},
		{"missing document.xml", createTestDOCX(t, "")},
		{"malformed xml", createTestDOCX(t, "<w:document><w:body>")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().Normalise(context.Background(), tt.data)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestHeadingLevel(t *testing.T) {
	tests := []struct {
		style    string
		expected int
	}{
		{"Heading1", 1},
		{"Heading6", 6},
		{"heading 2", 2},
		{"Title", 1},
		{"Heading7", 0},
		{"Heading10", 0},
		{"Normal", 0},
		{"", 0},
	}

	for _, tt := range tests {
		t.Run(tt.style, func(t *testing.T) {
			assert.Equal(t, tt.expected, headingLevel(tt.style))
		})
	}
}

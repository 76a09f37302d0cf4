// Package filesystem loads notebook files from disk and watches them for
// changes.
package filesystem

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/custodia-labs/ideaforge/internal/core/domain"
	"github.com/custodia-labs/ideaforge/internal/core/ports/driven"
)

// StdinURI reads the document from standard input.
const StdinURI = "-"

// Ensure Loader implements the interface.
var _ driven.DocumentLoader = (*Loader)(nil)

// Formats resolves the normaliser for a file path.
type Formats interface {
	ForPath(path string) (driven.Normaliser, bool)
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithFormats converts files that have a normaliser (HTML, DOCX exports)
// instead of reading them as text.
func WithFormats(formats Formats) LoaderOption {
	return func(l *Loader) {
		l.formats = formats
	}
}

// Loader reads UTF-8 text files into documents.
// A byte-order mark is removed; UTF-16 files with a BOM are transcoded.
type Loader struct {
	stdin   io.Reader
	formats Formats
}

// NewLoader creates a Loader. stdin serves the "-" URI and may be nil.
func NewLoader(stdin io.Reader, opts ...LoaderOption) *Loader {
	l := &Loader{stdin: stdin}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads uri into a Document with a fresh id.
func (l *Loader) Load(ctx context.Context, uri string) (*domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var raw []byte
	var err error
	path := ResolvePath(uri)
	if uri == StdinURI {
		if l.stdin == nil {
			return nil, fmt.Errorf("%w: standard input not available", domain.ErrInvalidInput)
		}
		raw, err = io.ReadAll(l.stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, uri)
		}
		return nil, fmt.Errorf("reading %s: %w", uri, err)
	}

	text, err := l.convert(ctx, path, raw)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", uri, err)
	}
	return domain.NewDocumentFromText(uuid.New().String(), uri, text), nil
}

// convert picks the normaliser for path, or decodes raw as text.
func (l *Loader) convert(ctx context.Context, path string, raw []byte) (string, error) {
	if l.formats != nil && path != StdinURI {
		if n, ok := l.formats.ForPath(path); ok {
			return n.Normalise(ctx, raw)
		}
	}
	return decodeText(raw)
}

var (
	utf8BOM    = []byte{0xEF, 0xBB, 0xBF}
	utf16BEBOM = []byte{0xFE, 0xFF}
	utf16LEBOM = []byte{0xFF, 0xFE}
)

// decodeText strips a UTF-8 BOM, transcodes UTF-16 with a BOM, and rejects
// anything else that is not valid UTF-8.
func decodeText(raw []byte) (string, error) {
	if bytes.HasPrefix(raw, utf16BEBOM) || bytes.HasPrefix(raw, utf16LEBOM) {
		out, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), raw)
		if err != nil {
			return "", err
		}
		return string(out), nil
	}

	raw = bytes.TrimPrefix(raw, utf8BOM)
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("%w: not UTF-8 text", domain.ErrUnsupportedType)
	}
	return string(raw), nil
}

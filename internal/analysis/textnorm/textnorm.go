// Package textnorm canonicalises text for comparison and fingerprints it.
//
// Normalisation keeps letters, digits and underscores from any script,
// case-folds them, and collapses whitespace. The result is what every
// duplicate and similarity computation in ideaforge compares.
package textnorm

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Normalize returns the canonical form of s: NFC composed, case-folded,
// with punctuation and combining marks removed and runs of whitespace
// collapsed to one space.
// Normalize is idempotent.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = Fold(s)

	var b strings.Builder
	b.Grow(len(s))
	pendingSpace := false
	for _, r := range s {
		switch {
		case isWordRune(r):
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
		case unicode.IsSpace(r):
			pendingSpace = true
		}
	}
	return b.String()
}

// Fold case-folds s after NFC composition.
// It is used for case-insensitive substring matching.
func Fold(s string) string {
	// A Caser is stateful, so each call gets its own.
	return cases.Fold().String(norm.NFC.String(s))
}

// Words splits s on whitespace.
func Words(s string) []string {
	return strings.Fields(s)
}

// WordCount returns the number of whitespace-separated words in s.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// Fingerprint returns the SHA-256 hex digest of already-normalised text.
// Text that is empty after trimming has no fingerprint.
func Fingerprint(normalized string) (string, bool) {
	if strings.TrimSpace(normalized) == "" {
		return "", false
	}
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:]), true
}

// FingerprintText normalises raw text and fingerprints the result.
func FingerprintText(raw string) (string, bool) {
	return Fingerprint(Normalize(raw))
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_'
}

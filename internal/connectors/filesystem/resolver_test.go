package filesystem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolvePath(t *testing.T) {
	tests := []struct {
		name string
		uri  string
		want string
	}{
		{"file URI", "file:///notes/ideas.md", "/notes/ideas.md"},
		{"file URI with spaces", "file:///notes/my ideas.md", "/notes/my ideas.md"},
		{"bare path", "/notes/ideas.md", "/notes/ideas.md"},
		{"relative path", "notes/ideas.md", "notes/ideas.md"},
		{"empty", "", ""},
		{"prefix only", "file://", ""},
		{"windows path", "C:\\notes\\ideas.md", "C:\\notes\\ideas.md"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolvePath(tt.uri))
		})
	}
}

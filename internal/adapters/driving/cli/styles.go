package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Palette shared with the rest of the custodia tools.
var (
	colourPrimary   = lipgloss.Color("#7C3AED")
	colourSecondary = lipgloss.Color("#06B6D4")
	colourMuted     = lipgloss.Color("#6C7086")
	colourSuccess   = lipgloss.Color("#A6E3A1")
	colourWarning   = lipgloss.Color("#F9E2AF")
	colourError     = lipgloss.Color("#F38BA8")
)

// styles are the lipgloss styles used for terminal output.
type styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Muted    lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Number   lipgloss.Style
}

// newStyles returns coloured styles for a terminal and no-op styles otherwise.
func newStyles(w io.Writer) *styles {
	if !isTerminal(w) {
		plain := lipgloss.NewStyle()
		return &styles{plain, plain, plain, plain, plain, plain, plain}
	}
	return &styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(colourPrimary),
		Subtitle: lipgloss.NewStyle().Bold(true).Foreground(colourSecondary),
		Muted:    lipgloss.NewStyle().Foreground(colourMuted),
		Success:  lipgloss.NewStyle().Foreground(colourSuccess),
		Warning:  lipgloss.NewStyle().Foreground(colourWarning),
		Error:    lipgloss.NewStyle().Foreground(colourError),
		Number:   lipgloss.NewStyle().Foreground(colourSecondary),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// printer writes command output to the command's stdout.
// Warnings go to the command's stderr.
type printer struct {
	w io.Writer
	e io.Writer
	s *styles
}

func newPrinter(cmd *cobra.Command) *printer {
	w := cmd.OutOrStdout()
	return &printer{w: w, e: cmd.ErrOrStderr(), s: newStyles(w)}
}

func (p *printer) printf(format string, args ...any) {
	fmt.Fprintf(p.w, format, args...)
}

func (p *printer) println(args ...any) {
	fmt.Fprintln(p.w, args...)
}

// title prints a heading with an underline.
func (p *printer) title(text string) {
	p.println(p.s.Title.Render(text))
	p.println(p.s.Muted.Render(strings.Repeat("=", utf8.RuneCountInString(text))))
}

// printJSON writes v as indented JSON without HTML escaping.
func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	return nil
}

package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ideaforge/internal/analysis/concepts"
	"github.com/custodia-labs/ideaforge/internal/core/domain"
	"github.com/custodia-labs/ideaforge/internal/core/ports/driving"
)

var (
	dupsContext      bool
	similarThreshold float64
	similarMode      string
	similarBlended   bool
	searchContext    int
	searchWindowed   bool
	extractCompare   bool
)

var dupsCmd = &cobra.Command{
	Use:   "dups FILE",
	Short: "Find lines repeated verbatim",
	Long: `Groups lines whose normalised text is identical. Lines shorter than
analysis.min_line_length are ignored.

With --context each group is split into clusters of repetitions that sit in
the same context window, telling accidental double pastes apart from a
phrase reused across sections.`,
	Args: cobra.ExactArgs(1),
	RunE: runDups,
}

var similarCmd = &cobra.Command{
	Use:   "similar FILE",
	Short: "Find near-identical lines",
	Long: `Groups lines whose similarity passes a threshold.

Modes:
  greedy      - each seed collects later similar lines (default)
  transitive  - similar pairs are linked into connected groups`,
	Args: cobra.ExactArgs(1),
	RunE: runSimilar,
}

var mapCmd = &cobra.Command{
	Use:   "map FILE [TERM...]",
	Short: "Map where concepts are mentioned",
	Long:  `Lists the lines mentioning each term. Without terms the catalog concepts are mapped.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runMap,
}

var searchCmd = &cobra.Command{
	Use:   "search FILE TERM",
	Short: "Show every mention of a term with context",
	Args:  cobra.ExactArgs(2),
	RunE:  runSearch,
}

var relatedCmd = &cobra.Command{
	Use:   "related FILE [TERM...]",
	Short: "Find concepts mentioned together",
	Long:  `Reports terms that co-occur inside one context window. Without terms the catalog concepts are used.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRelated,
}

var patternCmd = &cobra.Command{
	Use:   "pattern FILE REGEX",
	Short: "Match a regular expression against every line",
	Args:  cobra.ExactArgs(2),
	RunE:  runPattern,
}

var structureCmd = &cobra.Command{
	Use:   "structure FILE",
	Short: "Show headers, lists, equations and dates",
	Args:  cobra.ExactArgs(1),
	RunE:  runStructure,
}

var extractCmd = &cobra.Command{
	Use:   "extract FILE [KEYWORD...]",
	Short: "Extract the sections introduced by keywords",
	Long: `Extracts each section whose heading mentions a keyword, up to the next
heading. Without keywords the catalog keywords are used.

With --compare sections sharing a keyword are reconciled as versions of
one idea.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExtract,
}

var noiseCmd = &cobra.Command{
	Use:   "noise FILE",
	Short: "Find conversational chatter sections",
	Args:  cobra.ExactArgs(1),
	RunE:  runNoise,
}

func init() {
	dupsCmd.Flags().BoolVarP(&dupsContext, "context", "c", false, "split groups by context window")
	similarCmd.Flags().Float64VarP(&similarThreshold, "threshold", "t", 0, "similarity cut-off (default analysis.similarity_threshold)")
	similarCmd.Flags().StringVarP(&similarMode, "mode", "m", "", "greedy or transitive (default analysis.cluster_mode)")
	similarCmd.Flags().BoolVar(&similarBlended, "blended", false, "blend in concept overlap")
	searchCmd.Flags().IntVarP(&searchContext, "context", "C", 2, "lines of context around each mention")
	searchCmd.Flags().BoolVarP(&searchWindowed, "windowed", "w", false, "merge mentions sharing a context window")
	extractCmd.Flags().BoolVar(&extractCompare, "compare", false, "reconcile sections with the same keyword")

	rootCmd.AddCommand(dupsCmd, similarCmd, mapCmd, searchCmd, relatedCmd,
		patternCmd, structureCmd, extractCmd, noiseCmd)
}

// loadDocument reads uri through the configured loader.
func loadDocument(cmd *cobra.Command, uri string) (*domain.Document, error) {
	if documentLoader == nil {
		return nil, errors.New("document loader not configured")
	}
	doc, err := documentLoader.Load(cmd.Context(), uri)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", uri, err)
	}
	return doc, nil
}

// analysisInput resolves the service and loads the document argument.
func analysisInput(cmd *cobra.Command, uri string) (driving.AnalysisService, *domain.Document, error) {
	svc, err := requireAnalysis()
	if err != nil {
		return nil, nil, err
	}
	doc, err := loadDocument(cmd, uri)
	if err != nil {
		return nil, nil, err
	}
	return svc, doc, nil
}

func runDups(cmd *cobra.Command, args []string) error {
	svc, doc, err := analysisInput(cmd, args[0])
	if err != nil {
		return err
	}

	if dupsContext {
		results, err := svc.DuplicatesWithContext(cmd.Context(), doc)
		if err != nil {
			return fmt.Errorf("duplicate analysis failed: %w", err)
		}
		if jsonOutput {
			return printJSON(cmd, results)
		}
		p := newPrinter(cmd)
		if len(results) == 0 {
			p.println("No duplicate lines found.")
			return nil
		}
		p.title(fmt.Sprintf("Duplicates in context (%d groups)", len(results)))
		for i, r := range results {
			p.println()
			p.printf("[%d] %s  %s\n", i+1, p.s.Subtitle.Render(string(r.Verdict)), preview(r.Group.Members[0].Text))
			for _, cluster := range r.Clusters {
				p.printf("    cluster: lines %s\n", p.s.Number.Render(lineList(cluster)))
			}
		}
		return nil
	}

	groups, err := svc.ExactDuplicates(cmd.Context(), doc)
	if err != nil {
		return fmt.Errorf("duplicate analysis failed: %w", err)
	}
	return outputGroups(cmd, "Exact duplicates", groups)
}

func runSimilar(cmd *cobra.Command, args []string) error {
	svc, doc, err := analysisInput(cmd, args[0])
	if err != nil {
		return err
	}

	opts := driving.SimilarOptions{
		Threshold: similarThreshold,
		Mode:      domain.ClusterMode(similarMode),
		Blended:   similarBlended,
	}
	groups, err := svc.SimilarLines(cmd.Context(), doc, opts)
	if err != nil {
		return fmt.Errorf("similarity analysis failed: %w", err)
	}
	return outputGroups(cmd, "Similar lines", groups)
}

func outputGroups(cmd *cobra.Command, heading string, groups []domain.DuplicateGroup) error {
	if jsonOutput {
		return printJSON(cmd, groups)
	}

	p := newPrinter(cmd)
	if len(groups) == 0 {
		p.println("No duplicate lines found.")
		return nil
	}
	p.title(fmt.Sprintf("%s (%d groups)", heading, len(groups)))
	for i, g := range groups {
		p.println()
		p.printf("[%d] %d lines, score %.2f\n", i+1, g.Count(), g.Score)
		for _, m := range g.Members {
			p.printf("  %s  %s\n", p.s.Number.Render(fmt.Sprintf("%5d", m.Location.Number())), preview(m.Text))
		}
	}
	return nil
}

func runMap(cmd *cobra.Command, args []string) error {
	svc, doc, err := analysisInput(cmd, args[0])
	if err != nil {
		return err
	}

	var occurrences []domain.ConceptOccurrences
	if terms := args[1:]; len(terms) > 0 {
		occurrences, err = svc.LocateConcepts(cmd.Context(), doc, terms)
	} else {
		occurrences, err = svc.LocateCatalog(cmd.Context(), doc)
	}
	if err != nil {
		return fmt.Errorf("concept mapping failed: %w", err)
	}
	if jsonOutput {
		return printJSON(cmd, occurrences)
	}

	p := newPrinter(cmd)
	p.title("Concept map")
	for _, occ := range occurrences {
		if len(occ.Locations) == 0 {
			p.printf("  %s: %s\n", occ.Concept, p.s.Muted.Render("not mentioned"))
			continue
		}
		p.printf("  %s (%d): lines %s\n", p.s.Subtitle.Render(occ.Concept), len(occ.Locations),
			p.s.Number.Render(lineList(occ.Locations)))
	}
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	svc, doc, err := analysisInput(cmd, args[0])
	if err != nil {
		return err
	}
	term := args[1]
	p := newPrinter(cmd)

	if searchWindowed {
		matches, err := svc.SearchConceptWithContext(cmd.Context(), doc, term)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
		if jsonOutput {
			return printJSON(cmd, matches)
		}
		if len(matches) == 0 {
			p.println("No results found.")
			return nil
		}
		p.title(fmt.Sprintf("%q in %d context windows", term, len(matches)))
		for _, m := range matches {
			p.println()
			p.printf("lines %d-%d, mentions at %s\n", m.Window.Start.Number(), m.Window.End.Number(),
				p.s.Number.Render(lineList(m.Matches)))
			for _, line := range m.Text {
				p.printf("  %s\n", line)
			}
		}
		return nil
	}

	hits, err := svc.SearchConcept(cmd.Context(), doc, term, searchContext)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if jsonOutput {
		return printJSON(cmd, hits)
	}
	if len(hits) == 0 {
		p.println("No results found.")
		return nil
	}
	p.title(fmt.Sprintf("%q mentioned %d times", term, len(hits)))
	for _, hit := range hits {
		p.println()
		for i, line := range hit.Context {
			loc := hit.Start + domain.Location(i)
			marker := " "
			if loc == hit.Line {
				marker = p.s.Success.Render(">")
			}
			p.printf("%s %s  %s\n", marker, p.s.Number.Render(fmt.Sprintf("%5d", loc.Number())), line)
		}
	}
	return nil
}

func runRelated(cmd *cobra.Command, args []string) error {
	svc, doc, err := analysisInput(cmd, args[0])
	if err != nil {
		return err
	}

	result, err := svc.RelatedConcepts(cmd.Context(), doc, args[1:])
	if err != nil {
		return fmt.Errorf("related concept analysis failed: %w", err)
	}
	if jsonOutput {
		return printJSON(cmd, result)
	}

	p := newPrinter(cmd)
	if len(result.Groups) == 0 {
		p.println("No related concepts found.")
		return nil
	}
	p.title(fmt.Sprintf("Related concepts (%d windows)", len(result.Groups)))
	for _, g := range result.Groups {
		p.printf("  line %s [%d-%d]: %s\n", p.s.Number.Render(fmt.Sprint(g.CenterLine.Number())),
			g.Window.Start.Number(), g.Window.End.Number(), strings.Join(g.Concepts, ", "))
	}
	return nil
}

func runPattern(cmd *cobra.Command, args []string) error {
	svc, doc, err := analysisInput(cmd, args[0])
	if err != nil {
		return err
	}

	matches, err := svc.SearchPattern(cmd.Context(), doc, args[1])
	if err != nil {
		return fmt.Errorf("pattern search failed: %w", err)
	}
	if jsonOutput {
		return printJSON(cmd, matches)
	}

	p := newPrinter(cmd)
	if len(matches) == 0 {
		p.println("No results found.")
		return nil
	}
	for _, m := range matches {
		p.printf("%s  %s  %s\n", p.s.Number.Render(fmt.Sprintf("%5d", m.Line.Number())),
			p.s.Success.Render(m.Match), preview(m.Content))
	}
	return nil
}

func runStructure(cmd *cobra.Command, args []string) error {
	svc, doc, err := analysisInput(cmd, args[0])
	if err != nil {
		return err
	}

	structure, err := svc.Structure(cmd.Context(), doc)
	if err != nil {
		return fmt.Errorf("structure analysis failed: %w", err)
	}
	if jsonOutput {
		return printJSON(cmd, structure)
	}

	p := newPrinter(cmd)
	p.title("Document structure")
	parts := []struct {
		name  string
		items []domain.StructureItem
	}{
		{"Main headers", structure.MainHeaders},
		{"Sub headers", structure.SubHeaders},
		{"Numbered items", structure.NumberedItems},
		{"Bullet points", structure.BulletPoints},
		{"Equations", structure.Equations},
		{"Dates", structure.Dates},
	}
	for _, part := range parts {
		p.println()
		p.printf("%s (%d)\n", p.s.Subtitle.Render(part.name), len(part.items))
		for _, item := range part.items {
			text := item.Content
			if item.Match != "" {
				text = item.Match
			}
			p.printf("  %s  %s\n", p.s.Number.Render(fmt.Sprintf("%5d", item.Line.Number())), preview(text))
		}
	}
	return nil
}

func runExtract(cmd *cobra.Command, args []string) error {
	svc, doc, err := analysisInput(cmd, args[0])
	if err != nil {
		return err
	}

	sections, err := svc.ExtractSections(cmd.Context(), doc, args[1:])
	if err != nil {
		return fmt.Errorf("section extraction failed: %w", err)
	}

	if extractCompare {
		return compareSections(cmd, svc, sections)
	}
	if jsonOutput {
		return printJSON(cmd, sections)
	}

	p := newPrinter(cmd)
	if len(sections) == 0 {
		p.println("No sections found.")
		return nil
	}
	for _, sec := range sections {
		p.println()
		p.printf("%s  lines %d-%d\n", p.s.Subtitle.Render(sec.Name), sec.Start.Number(), sec.End.Number())
		for _, line := range sec.Lines {
			p.printf("  %s\n", line)
		}
	}
	return nil
}

// compareSections reconciles sections grouped by keyword, in first-seen order.
func compareSections(cmd *cobra.Command, svc driving.AnalysisService, sections []domain.Section) error {
	var names []string
	byName := make(map[string][]domain.Section)
	for _, sec := range sections {
		if _, ok := byName[sec.Name]; !ok {
			names = append(names, sec.Name)
		}
		byName[sec.Name] = append(byName[sec.Name], sec)
	}

	recs := make(map[string]domain.Recommendation, len(names))
	for _, name := range names {
		rec, err := svc.CompareSections(cmd.Context(), name, byName[name])
		if err != nil {
			return fmt.Errorf("comparing %s: %w", name, err)
		}
		recs[name] = rec
	}
	if jsonOutput {
		return printJSON(cmd, recs)
	}

	p := newPrinter(cmd)
	if len(names) == 0 {
		p.println("No sections found.")
		return nil
	}
	for _, name := range names {
		p.println()
		printRecommendation(p, name, recs[name])
	}
	return nil
}

func runNoise(cmd *cobra.Command, args []string) error {
	svc, doc, err := analysisInput(cmd, args[0])
	if err != nil {
		return err
	}

	ranges, err := svc.Noise(cmd.Context(), doc)
	if err != nil {
		return fmt.Errorf("noise detection failed: %w", err)
	}
	if jsonOutput {
		return printJSON(cmd, ranges)
	}

	p := newPrinter(cmd)
	if len(ranges) == 0 {
		p.println("No chatter found.")
		return nil
	}
	p.title(fmt.Sprintf("Chatter sections (%d)", len(ranges)))
	for _, r := range ranges {
		p.printf("  lines %d-%d  %s\n", r.Start.Number(), r.End.Number(), preview(doc.Line(r.Start)))
	}
	return nil
}

// printRecommendation renders a reconciliation.
func printRecommendation(p *printer, heading string, rec domain.Recommendation) {
	p.printf("%s: %s\n", p.s.Title.Render(heading), p.s.Warning.Render(string(rec.Disposition)))
	p.printf("  %s (max similarity %.2f)\n", rec.Disposition.Description(), rec.MaxSimilarity)
	for _, v := range rec.Ranked {
		title := v.Idea.Title
		if title == "" {
			title = v.Idea.ID
		}
		p.printf("  #%d  %-10s quality %6.2f  %s\n", v.Rank, v.Idea.ID, v.Quality, preview(title))
	}
}

// lineList renders 1-based line numbers separated by commas.
func lineList(locs []domain.Location) string {
	parts := make([]string, len(locs))
	for i, loc := range locs {
		parts[i] = fmt.Sprint(loc.Number())
	}
	return strings.Join(parts, ", ")
}

// preview shortens text to one display line.
func preview(text string) string {
	return concepts.Preview(strings.Join(strings.Fields(text), " "), 77)
}

package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ideaforge/internal/core/domain"
	"github.com/custodia-labs/ideaforge/internal/core/ports/driving"
)

var (
	integrateText      string
	integrateReference string
	listCategory       string
)

var ideasCmd = &cobra.Command{
	Use:   "ideas",
	Short: "Manage the idea database",
	Long: `Parse notebooks into idea records and curate the idea database.

New ideas are admitted in three steps: an identical fingerprint is dropped
as a duplicate, a close word overlap with stored ideas is reconciled, and
anything else is inserted.`,
}

var ideasParseCmd = &cobra.Command{
	Use:   "parse FILE",
	Short: "Parse a notebook without storing anything",
	Args:  cobra.ExactArgs(1),
	RunE:  runIdeasParse,
}

var ideasIngestCmd = &cobra.Command{
	Use:   "ingest FILE...",
	Short: "Parse notebooks and admit their ideas",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runIdeasIngest,
}

var ideasListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored ideas",
	Args:  cobra.NoArgs,
	RunE:  runIdeasList,
}

var ideasShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show one idea",
	Args:  cobra.ExactArgs(1),
	RunE:  runIdeasShow,
}

var ideasRemoveCmd = &cobra.Command{
	Use:   "remove ID",
	Short: "Remove an idea",
	Args:  cobra.ExactArgs(1),
	RunE:  runIdeasRemove,
}

var ideasStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarise the idea database",
	Args:  cobra.NoArgs,
	RunE:  runIdeasStats,
}

var ideasReconcileCmd = &cobra.Command{
	Use:   "reconcile ID ID...",
	Short: "Compare stored ideas as versions of one idea",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runIdeasReconcile,
}

var ideasIntegrateCmd = &cobra.Command{
	Use:   "integrate [FILE]",
	Short: "Classify a new idea against the database",
	Long: `Classifies a new idea as a duplicate, an improvement, similar or new,
and suggests what to do with it. The text comes from FILE or --text.

With --reference the best matching section of that document is suggested.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIdeasIntegrate,
}

func init() {
	ideasListCmd.Flags().StringVar(&listCategory, "category", "", "only list ideas in this category")
	ideasIntegrateCmd.Flags().StringVar(&integrateText, "text", "", "idea text")
	ideasIntegrateCmd.Flags().StringVar(&integrateReference, "reference", "", "reference document for section placement")

	ideasCmd.AddCommand(ideasParseCmd, ideasIngestCmd, ideasListCmd, ideasShowCmd,
		ideasRemoveCmd, ideasStatsCmd, ideasReconcileCmd, ideasIntegrateCmd)
	rootCmd.AddCommand(ideasCmd)
}

// withDatabase loads the snapshot, runs fn, and saves when write is set.
func withDatabase(cmd *cobra.Command, write bool, fn func(driving.IdeaService) error) error {
	svc, err := requireIdeas()
	if err != nil {
		return err
	}
	if err := svc.Load(cmd.Context()); err != nil {
		return fmt.Errorf("loading idea database: %w", err)
	}
	if err := fn(svc); err != nil {
		return err
	}
	if !write {
		return nil
	}
	if err := svc.Save(cmd.Context()); err != nil {
		return fmt.Errorf("saving idea database: %w", err)
	}
	return nil
}

func runIdeasParse(cmd *cobra.Command, args []string) error {
	svc, err := requireIdeas()
	if err != nil {
		return err
	}
	doc, err := loadDocument(cmd, args[0])
	if err != nil {
		return err
	}

	result, err := svc.Parse(cmd.Context(), doc)
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}
	if jsonOutput {
		return printJSON(cmd, result)
	}

	p := newPrinter(cmd)
	p.title(fmt.Sprintf("%d ideas parsed", len(result.Ideas)))
	printIdeaTable(p, result.Ideas)
	printWarnings(p, result.Skipped, result.Warnings)
	return nil
}

func runIdeasIngest(cmd *cobra.Command, args []string) error {
	return withDatabase(cmd, true, func(svc driving.IdeaService) error {
		report, err := svc.IngestFiles(cmd.Context(), args)
		if err != nil {
			return fmt.Errorf("ingest failed: %w", err)
		}
		if jsonOutput {
			return printJSON(cmd, report)
		}
		printIngestReport(newPrinter(cmd), report)
		return nil
	})
}

func printIngestReport(p *printer, report driving.IngestReport) {
	p.title("Ingest summary")
	p.printf("  parsed:     %d\n", report.Parsed)
	p.printf("  new:        %s\n", p.s.Success.Render(fmt.Sprint(report.Count(domain.AdmissionNew))))
	p.printf("  duplicates: %d\n", report.Count(domain.AdmissionExactDuplicate))
	p.printf("  reconciled: %d\n", report.Count(domain.AdmissionReconcile))

	var pending []domain.AdmissionResult
	for _, res := range report.Results {
		if res.Action == domain.ActionPending {
			pending = append(pending, res)
		}
	}
	if len(pending) > 0 {
		p.println()
		p.println(p.s.Warning.Render(fmt.Sprintf("%d ideas need review:", len(pending))))
		for _, res := range pending {
			p.printf("  %s  matches %s (%.2f)\n", preview(res.Idea.Title), strings.Join(res.MatchedIDs, ", "), res.MaxSimilarity)
		}
	}
	for _, uri := range report.Failed {
		p.println(p.s.Error.Render("failed: " + uri))
	}
	printWarnings(p, report.Skipped, report.Warnings)
}

func runIdeasList(cmd *cobra.Command, _ []string) error {
	return withDatabase(cmd, false, func(svc driving.IdeaService) error {
		ideas, err := svc.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list ideas: %w", err)
		}
		if listCategory != "" {
			filtered := ideas[:0:0]
			for _, idea := range ideas {
				if idea.Category == listCategory {
					filtered = append(filtered, idea)
				}
			}
			ideas = filtered
		}
		if jsonOutput {
			return printJSON(cmd, ideas)
		}

		p := newPrinter(cmd)
		if len(ideas) == 0 {
			p.println("No ideas stored.")
			return nil
		}
		printIdeaTable(p, ideas)
		return nil
	})
}

func runIdeasShow(cmd *cobra.Command, args []string) error {
	return withDatabase(cmd, false, func(svc driving.IdeaService) error {
		idea, err := svc.Get(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to get idea: %w", err)
		}
		if jsonOutput {
			return printJSON(cmd, idea)
		}

		p := newPrinter(cmd)
		p.title(idea.Title)
		p.printf("ID:         %s\n", idea.ID)
		p.printf("Category:   %s\n", idea.Category)
		p.printf("Date:       %s\n", idea.Date)
		p.printf("Importance: %.2f (%s)\n", idea.ImportanceScore, domain.ImportanceBand(idea.ImportanceScore))
		if len(idea.Keywords) > 0 {
			p.printf("Keywords:   %s\n", strings.Join(idea.Keywords, ", "))
		}
		for _, eq := range idea.Equations {
			p.printf("Equation:   %s\n", eq)
		}
		if idea.Content != "" {
			p.println()
			p.println(idea.Content)
		}
		return nil
	})
}

func runIdeasRemove(cmd *cobra.Command, args []string) error {
	return withDatabase(cmd, true, func(svc driving.IdeaService) error {
		if err := svc.Remove(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("failed to remove idea: %w", err)
		}
		if !jsonOutput {
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
		}
		return nil
	})
}

func runIdeasStats(cmd *cobra.Command, _ []string) error {
	return withDatabase(cmd, false, func(svc driving.IdeaService) error {
		stats, err := svc.Stats(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to compute statistics: %w", err)
		}
		if jsonOutput {
			return printJSON(cmd, stats)
		}

		p := newPrinter(cmd)
		p.title("Idea database")
		p.printf("Ideas:     %d\n", stats.TotalIdeas)
		p.printf("Equations: %d\n", stats.EquationCount)
		printCounts(p, "Categories", stats.Categories)
		printCounts(p, "Importance", stats.ImportanceDistribution)
		printCounts(p, "Keywords", stats.KeywordFrequency)
		printCounts(p, "Months", stats.MonthlyDistribution)
		return nil
	})
}

func runIdeasReconcile(cmd *cobra.Command, args []string) error {
	return withDatabase(cmd, false, func(svc driving.IdeaService) error {
		rec, err := svc.Reconcile(cmd.Context(), args)
		if err != nil {
			return fmt.Errorf("reconcile failed: %w", err)
		}
		if jsonOutput {
			return printJSON(cmd, rec)
		}
		printRecommendation(newPrinter(cmd), "Recommendation", rec)
		return nil
	})
}

func runIdeasIntegrate(cmd *cobra.Command, args []string) error {
	text := integrateText
	if len(args) == 1 {
		doc, err := loadDocument(cmd, args[0])
		if err != nil {
			return err
		}
		text = doc.Text()
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: provide FILE or --text", domain.ErrInvalidInput)
	}

	var reference *domain.Document
	if integrateReference != "" {
		doc, err := loadDocument(cmd, integrateReference)
		if err != nil {
			return err
		}
		reference = doc
	}

	return withDatabase(cmd, false, func(svc driving.IdeaService) error {
		verdict, err := svc.Integrate(cmd.Context(), text, reference)
		if err != nil {
			return fmt.Errorf("integrate failed: %w", err)
		}
		if jsonOutput {
			return printJSON(cmd, verdict)
		}

		p := newPrinter(cmd)
		p.printf("%s -> %s\n", p.s.Title.Render(string(verdict.Status)), p.s.Warning.Render(string(verdict.Action)))
		if verdict.MostSimilarID != "" {
			p.printf("Most similar: %s (%.2f)\n", verdict.MostSimilarID, verdict.Similarity)
		}
		p.printf("Quality:      %.2f\n", verdict.Quality.Mean())
		if verdict.RecommendedSection != "" {
			p.printf("Section:      %s (%.2f)\n", verdict.RecommendedSection, verdict.SectionScore)
		}
		p.println(p.s.Muted.Render(verdict.Reasoning))
		return nil
	})
}

func printIdeaTable(p *printer, ideas []domain.IdeaRecord) {
	for _, idea := range ideas {
		id := idea.ID
		if id == "" {
			id = "-"
		}
		p.printf("  %-9s %6.2f  %-12s %s\n", p.s.Number.Render(id), idea.ImportanceScore, idea.Category, preview(idea.Title))
	}
}

func printWarnings(p *printer, skipped int, warnings []string) {
	if skipped > 0 {
		p.println(p.s.Warning.Render(fmt.Sprintf("%d blocks skipped", skipped)))
	}
	for _, w := range warnings {
		fmt.Fprintln(p.e, p.s.Warning.Render("warning: "+w))
	}
}

// printCounts prints a histogram sorted by count, then key.
func printCounts(p *printer, heading string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})

	p.println()
	p.println(p.s.Subtitle.Render(heading))
	for _, k := range keys {
		p.printf("  %-20s %d\n", k, counts[k])
	}
}

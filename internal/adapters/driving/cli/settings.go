package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ideaforge/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage analysis settings",
	Long: `View and change thresholds, window budgets and quality weights.

Settings are stored in config.toml inside the configuration directory.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Change one setting",
	Long: `Change one setting. Run "ideaforge settings keys" for the list of keys.

Examples:
  ideaforge settings set analysis.cluster_mode transitive
  ideaforge settings set thresholds.admission 0.75`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List setting keys",
	Args:  cobra.NoArgs,
	RunE:  runSettingsKeys,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsReset,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Walk through the most commonly tuned settings step by step.`,
	RunE:  runSettingsWizard,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd, settingsKeysCmd, settingsResetCmd, settingsWizardCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if jsonOutput {
		return printJSON(cmd, settings)
	}

	p := newPrinter(cmd)
	p.title("Current Settings")

	a := settings.Analysis
	p.println()
	p.println(p.s.Subtitle.Render("[Analysis]"))
	p.printf("  Min line length:      %d\n", a.MinLineLength)
	p.printf("  Similarity threshold: %.2f\n", a.SimilarityThreshold)
	p.printf("  Context word budget:  %d\n", a.ContextWordBudget)
	p.printf("  Cluster mode:         %s\n", a.ClusterMode.Description())

	th := settings.Thresholds
	p.println()
	p.println(p.s.Subtitle.Render("[Thresholds]"))
	p.printf("  Same idea:            %.2f\n", th.SameIdea)
	p.printf("  Admission:            %.2f\n", th.Admission)
	p.printf("  Similar:              %.2f\n", th.Similar)
	p.printf("  Keep best:            %.2f\n", th.KeepBest)
	p.printf("  Review:               %.2f\n", th.Review)
	p.printf("  Improvement margin:   %.2f\n", th.ImprovementMargin)

	p.println()
	p.println(p.s.Subtitle.Render("[Similarity]"))
	p.printf("  Sequence weight:      %.2f\n", settings.Similarity.Sequence)
	p.printf("  Concept weight:       %.2f\n", settings.Similarity.Concept)

	q := settings.Quality
	p.println()
	p.println(p.s.Subtitle.Render("[Quality]"))
	p.printf("  Per equation:         %.2f\n", q.Equation)
	p.printf("  Per keyword:          %.2f\n", q.Keyword)
	p.printf("  Length:               1 per %.0f chars, max %.2f\n", q.LengthDivisor, q.LengthCap)
	p.printf("  Header:               %.2f\n", q.Header)
	p.printf("  Example / logic:      %.2f / %.2f\n", q.Example, q.Logic)
	p.printf("  Transition:           %.2f\n", q.Transition)
	p.printf("  Sentence bonus:       %.2f for %.0f-%.0f words\n", q.SentenceBonus, q.SentenceMin, q.SentenceMax)
	p.printf("  Important category:   %.2f\n", q.ImportantCategory)

	p.println()
	if err := settingsService.Validate(); err != nil {
		p.println(p.s.Warning.Render(fmt.Sprintf("Configuration issue: %v", err)))
	} else {
		p.println(p.s.Success.Render("Configuration is valid."))
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", args[0], args[1])
	return nil
}

func runSettingsKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	keys := settingsService.Keys()
	if jsonOutput {
		return printJSON(cmd, keys)
	}
	for _, key := range keys {
		fmt.Fprintln(cmd.OutOrStdout(), key)
	}
	return nil
}

func runSettingsReset(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	defaults := settingsService.GetDefaults()
	if err := settingsService.Save(&defaults); err != nil {
		return fmt.Errorf("failed to reset settings: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Settings restored to defaults.")
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	p := newPrinter(cmd)
	reader := bufio.NewReader(cmd.InOrStdin())
	p.title("ideaforge Settings Wizard")
	p.println()

	// Step 1: cluster mode
	p.println("Step 1: Select Cluster Mode")
	p.println("---------------------------")
	modes := domain.AllClusterModes()
	current := 1
	for i, mode := range modes {
		if mode == settings.Analysis.ClusterMode {
			current = i + 1
		}
		p.printf("  %d. %s\n", i+1, mode.Description())
	}
	p.printf("\nEnter choice [%d]: ", current)
	settings.Analysis.ClusterMode = modes[parseChoice(readLine(reader), len(modes), current)-1]
	p.println()

	// Step 2: thresholds
	p.println("Step 2: Thresholds (0-1, Enter keeps the current value)")
	p.println("-------------------------------------------------------")
	settings.Analysis.SimilarityThreshold = askRatio(p, reader, "Similar lines", settings.Analysis.SimilarityThreshold)
	settings.Thresholds.Admission = askRatio(p, reader, "Idea admission", settings.Thresholds.Admission)
	settings.Thresholds.KeepBest = askRatio(p, reader, "Keep best version", settings.Thresholds.KeepBest)
	settings.Thresholds.Review = askRatio(p, reader, "Manual review", settings.Thresholds.Review)
	p.println()

	// Step 3: window budget
	p.println("Step 3: Context Window")
	p.println("----------------------")
	p.printf("Words on each side of a line [%d]: ", settings.Analysis.ContextWordBudget)
	if n, err := strconv.Atoi(readLine(reader)); err == nil && n >= 0 {
		settings.Analysis.ContextWordBudget = n
	}
	p.println()

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	p.println(p.s.Success.Render("All settings are valid and saved."))
	return nil
}

// Helper functions.

func askRatio(p *printer, reader *bufio.Reader, label string, current float64) float64 {
	p.printf("%s [%.2f]: ", label, current)
	v, err := strconv.ParseFloat(readLine(reader), 64)
	if err != nil || v < 0 || v > 1 {
		return current
	}
	return v
}

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

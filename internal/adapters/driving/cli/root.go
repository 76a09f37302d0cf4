// Package cli provides the ideaforge command-line interface.
package cli

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ideaforge/internal/core/ports/driven"
	"github.com/custodia-labs/ideaforge/internal/core/ports/driving"
	"github.com/custodia-labs/ideaforge/internal/logger"
)

// version is set at build time.
var version = "dev"

// Services are the ports the commands call.
type Services struct {
	Analysis driving.AnalysisService
	Ideas    driving.IdeaService
	Settings driving.SettingsService
	Loader   driven.DocumentLoader
	Watcher  driven.DocumentWatcher

	// Close releases storage handles. It may be nil.
	Close func() error
}

// Options are the global flags that shape how services are built.
type Options struct {
	ConfigDir   string
	CatalogPath string
	DBPath      string
}

// Factory builds the services once global flags are parsed.
type Factory func(Options) (*Services, error)

var (
	analysisService driving.AnalysisService
	ideaService     driving.IdeaService
	settingsService driving.SettingsService
	documentLoader  driven.DocumentLoader
	documentWatcher driven.DocumentWatcher
	closeServices   func() error

	factory Factory
	options Options

	verbose    bool
	quiet      bool
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "ideaforge",
	Short: "Analyse and curate idea notebooks",
	Long: `ideaforge finds repeated and related ideas in long notebooks and keeps
a curated idea database.

Line analysis (dups, similar, map, search, related, pattern, structure,
extract, noise) works on one file. The ideas commands parse notebooks into
idea records and reconcile new versions against the database.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "show progress and debug output")
	flags.BoolVarP(&quiet, "quiet", "q", false, "hide warnings")
	flags.BoolVar(&jsonOutput, "json", false, "output results as JSON")
	flags.StringVar(&options.ConfigDir, "config-dir", "", "configuration directory (default ~/.ideaforge)")
	flags.StringVar(&options.CatalogPath, "catalog", "", "vocabulary catalog file (default <config-dir>/catalog.toml)")
	flags.StringVar(&options.DBPath, "db", "", "idea database file, .json or .db (default <config-dir>/ideas_database.json)")
}

// Execute runs the CLI. build is called once flags are parsed.
func Execute(ctx context.Context, v string, build Factory) error {
	version = v
	factory = build
	return rootCmd.ExecuteContext(ctx)
}

// setup applies logging flags and builds services unless they are already set.
func setup(_ *cobra.Command, _ []string) error {
	logger.SetOutput(os.Stderr)
	logger.SetVerbose(verbose)
	logger.SetQuiet(quiet)

	if factory == nil || analysisService != nil {
		return nil
	}
	services, err := factory(options)
	if err != nil {
		return err
	}
	analysisService = services.Analysis
	ideaService = services.Ideas
	settingsService = services.Settings
	documentLoader = services.Loader
	documentWatcher = services.Watcher
	closeServices = services.Close
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	if closeServices == nil {
		return nil
	}
	err := closeServices()
	closeServices = nil
	return err
}

// requireAnalysis returns the analysis service or a configuration error.
func requireAnalysis() (driving.AnalysisService, error) {
	if analysisService == nil {
		return nil, errors.New("analysis service not configured")
	}
	return analysisService, nil
}

// requireIdeas returns the idea service or a configuration error.
func requireIdeas() (driving.IdeaService, error) {
	if ideaService == nil {
		return nil, errors.New("idea service not configured")
	}
	return ideaService, nil
}

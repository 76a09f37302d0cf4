package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ideaforge/internal/core/domain"
	"github.com/custodia-labs/ideaforge/internal/core/ports/driven"
	"github.com/custodia-labs/ideaforge/internal/core/ports/driving"
	"github.com/custodia-labs/ideaforge/internal/logger"
)

var watchCmd = &cobra.Command{
	Use:   "watch FILE",
	Short: "Ingest a notebook whenever it changes",
	Long: `Ingests FILE once, then again each time it is written, saving the idea
database after every pass. Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if documentWatcher == nil {
		return errors.New("document watcher not configured")
	}
	uri := args[0]

	return withDatabase(cmd, false, func(svc driving.IdeaService) error {
		changes, err := documentWatcher.Watch(cmd.Context(), uri)
		if err != nil {
			return fmt.Errorf("watching %s: %w", uri, err)
		}

		p := newPrinter(cmd)
		if err := ingestAndSave(cmd, svc, p, uri); err != nil {
			return err
		}
		p.println(p.s.Muted.Render("watching " + uri + " (Ctrl+C to stop)"))

		for change := range changes {
			switch change.Type {
			case driven.ChangeCreated, driven.ChangeUpdated:
				if err := ingestAndSave(cmd, svc, p, uri); err != nil {
					logger.Warn("%v", err)
				}
			case driven.ChangeDeleted:
				logger.Warn("%s was removed; waiting for it to reappear", uri)
			}
		}
		return nil
	})
}

// ingestAndSave runs one ingest pass and persists the result.
func ingestAndSave(cmd *cobra.Command, svc driving.IdeaService, p *printer, uri string) error {
	report, err := svc.IngestFiles(cmd.Context(), []string{uri})
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}
	if err := svc.Save(cmd.Context()); err != nil {
		return fmt.Errorf("saving idea database: %w", err)
	}
	if jsonOutput {
		return printJSON(cmd, report)
	}
	p.printf("%s: %d parsed, %d new, %d duplicates, %d reconciled\n", uri, report.Parsed,
		report.Count(domain.AdmissionNew), report.Count(domain.AdmissionExactDuplicate),
		report.Count(domain.AdmissionReconcile))
	return nil
}

// Command ideaforge analyses idea notebooks and curates an idea database.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/custodia-labs/ideaforge/internal/adapters/driven/config/file"
	"github.com/custodia-labs/ideaforge/internal/adapters/driven/storage"
	"github.com/custodia-labs/ideaforge/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ideaforge/internal/adapters/driving/cli"
	"github.com/custodia-labs/ideaforge/internal/connectors/filesystem"
	"github.com/custodia-labs/ideaforge/internal/core/services"
	"github.com/custodia-labs/ideaforge/internal/normalisers"
)

// version is injected via ldflags.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx, version, buildServices); err != nil {
		stop()
		os.Exit(1)
	}
}

// buildServices wires adapters to the core services.
func buildServices(opts cli.Options) (*cli.Services, error) {
	configDir := opts.ConfigDir
	if configDir == "" {
		dir, err := file.DefaultDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		configDir = dir
	}

	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	settings := services.NewSettingsService(configStore)

	catalogPath := opts.CatalogPath
	if catalogPath == "" && opts.ConfigDir != "" {
		catalogPath = filepath.Join(configDir, file.CatalogFileName)
	}
	catalogStore, err := file.NewCatalogStore(catalogPath)
	if err != nil {
		return nil, err
	}
	catalog, err := catalogStore.Load()
	if err != nil {
		return nil, err
	}

	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = filepath.Join(configDir, storage.DefaultFileName)
	}
	snapshots, err := storage.OpenSnapshot(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open idea database: %w", err)
	}

	loader := filesystem.NewLoader(os.Stdin, filesystem.WithFormats(normalisers.Default()))
	watcher := filesystem.NewWatcher()

	return &cli.Services{
		Analysis: services.NewAnalysisService(settings, catalog),
		Ideas:    services.NewIdeaService(memory.NewIdeaStore(), snapshots, loader, settings, catalog),
		Settings: settings,
		Loader:   loader,
		Watcher:  watcher,
		Close: func() error {
			return errors.Join(snapshots.Close(), watcher.Close())
		},
	}, nil
}

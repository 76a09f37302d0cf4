package file

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/ideaforge/internal/core/domain"
	"github.com/custodia-labs/ideaforge/internal/logger"
)

// CatalogFileName is the catalog file inside the config directory.
const CatalogFileName = "catalog.toml"

//go:embed default_catalog.toml
var defaultCatalogTOML []byte

// DefaultCatalog returns the built-in vocabulary.
func DefaultCatalog() domain.Catalog {
	catalog, err := parseCatalog(defaultCatalogTOML)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return catalog
}

// CatalogStore loads the vocabulary catalog from a user-editable TOML file.
//
// Initialisation is lazy. When the store owns the default location, the first
// Load writes the built-in catalog there so users have a file to edit. An
// explicitly chosen path must already exist.
type CatalogStore struct {
	mu       sync.RWMutex
	path     string
	explicit bool
	cache    *domain.Catalog
	initOnce sync.Once
	initErr  error
}

// NewCatalogStore creates a catalog store reading path.
// If path is empty, defaults to ~/.ideaforge/catalog.toml.
func NewCatalogStore(path string) (*CatalogStore, error) {
	if path != "" {
		return &CatalogStore{path: path, explicit: true}, nil
	}
	dir, err := DefaultDir()
	if err != nil {
		return nil, fmt.Errorf("get home directory: %w", err)
	}
	return &CatalogStore{path: filepath.Join(dir, CatalogFileName)}, nil
}

// Path returns the catalog file path.
func (s *CatalogStore) Path() string {
	return s.path
}

// Load returns the catalog, reading the file on first use.
// If the default file cannot be created the built-in catalog is returned.
func (s *CatalogStore) Load() (domain.Catalog, error) {
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		logger.Warn("catalog %s unavailable, using built-in vocabulary: %v", s.path, s.initErr)
		return DefaultCatalog(), nil
	}

	s.mu.RLock()
	if s.cache != nil {
		catalog := *s.cache
		s.mu.RUnlock()
		return catalog, nil
	}
	s.mu.RUnlock()

	return s.Reload()
}

// Reload re-reads the catalog file and replaces the cached copy.
func (s *CatalogStore) Reload() (domain.Catalog, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("read catalog: %w", err)
	}
	catalog, err := parseCatalog(data)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("parse catalog %s: %w", s.path, err)
	}
	for _, perr := range checkPatterns(catalog) {
		logger.Warn("catalog %s: %v", s.path, perr)
	}

	s.mu.Lock()
	s.cache = &catalog
	s.mu.Unlock()
	return catalog, nil
}

// initialise writes the built-in catalog to the default location if missing.
func (s *CatalogStore) initialise() {
	if s.explicit {
		return
	}
	if _, err := os.Stat(s.path); err == nil {
		return
	} else if !errors.Is(err, os.ErrNotExist) {
		s.initErr = err
		return
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		s.initErr = fmt.Errorf("create catalog directory: %w", err)
		return
	}
	if err := os.WriteFile(s.path, defaultCatalogTOML, 0600); err != nil {
		s.initErr = fmt.Errorf("write default catalog: %w", err)
	}
}

// builtinHeader holds the embedded catalog as written.
var builtinHeader = sync.OnceValue(func() domain.Catalog {
	catalog, err := decodeCatalog(defaultCatalogTOML)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return catalog
})

// parseCatalog decodes TOML strictly so misspelt keys are reported.
// Missing defaults are filled from the built-in catalog header values.
func parseCatalog(data []byte) (domain.Catalog, error) {
	catalog, err := decodeCatalog(data)
	if err != nil {
		return domain.Catalog{}, err
	}
	builtin := builtinHeader()
	if catalog.DefaultDate == "" {
		catalog.DefaultDate = builtin.DefaultDate
	}
	if catalog.DefaultCategory == "" {
		catalog.DefaultCategory = builtin.DefaultCategory
	}
	if catalog.DefaultSection == "" {
		catalog.DefaultSection = builtin.DefaultSection
	}
	return catalog, nil
}

func decodeCatalog(data []byte) (domain.Catalog, error) {
	var catalog domain.Catalog
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&catalog); err != nil {
		return domain.Catalog{}, err
	}
	return catalog, nil
}

// checkPatterns compiles every pattern in the catalog.
func checkPatterns(catalog domain.Catalog) []error {
	var errs []error
	check := func(kind, pattern string) {
		if _, err := regexp.Compile(pattern); err != nil {
			errs = append(errs, fmt.Errorf("%w: %s %q: %v", domain.ErrInvalidPattern, kind, pattern, err))
		}
	}
	for _, c := range catalog.Concepts {
		check("concept "+c.Name, "(?i)"+c.Pattern)
	}
	for _, p := range catalog.BlockPatterns {
		check("block", p)
	}
	for _, p := range catalog.EquationPatterns {
		check("equation", p)
	}
	for _, p := range catalog.HeadingPatterns {
		check("heading", p)
	}
	for _, p := range catalog.NoisePatterns {
		check("noise", p)
	}
	return errs
}

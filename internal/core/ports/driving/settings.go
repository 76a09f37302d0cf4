package driving

import "github.com/custodia-labs/ideaforge/internal/core/domain"

// SettingsService manages analysis settings.
type SettingsService interface {
	// Get retrieves current settings, defaults filled in for unset keys.
	Get() (*domain.Settings, error)

	// Save validates and persists settings.
	Save(settings *domain.Settings) error

	// Set parses value for the dot key (e.g. "thresholds.keep_best")
	// and persists it if the resulting settings validate.
	Set(key, value string) error

	// Keys lists the supported dot keys in display order.
	Keys() []string

	// Validate checks the current settings.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.Settings
}

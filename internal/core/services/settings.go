package services

import (
	"fmt"
	"strconv"

	"github.com/custodia-labs/ideaforge/internal/core/domain"
	"github.com/custodia-labs/ideaforge/internal/core/ports/driven"
	"github.com/custodia-labs/ideaforge/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyMinLineLength       = "analysis.min_line_length"
	keySimilarityThreshold = "analysis.similarity_threshold"
	keyContextWordBudget   = "analysis.context_word_budget"
	keyClusterMode         = "analysis.cluster_mode"

	keySameIdea          = "thresholds.same_idea"
	keyAdmission         = "thresholds.admission"
	keySimilar           = "thresholds.similar"
	keyKeepBest          = "thresholds.keep_best"
	keyReview            = "thresholds.review"
	keyImprovementMargin = "thresholds.improvement_margin"

	keySequenceWeight = "similarity.sequence_weight"
	keyConceptWeight  = "similarity.concept_weight"

	keyQualityEquation      = "quality.equation"
	keyQualityKeyword       = "quality.keyword"
	keyQualityLengthDivisor = "quality.length_divisor"
	keyQualityLengthCap     = "quality.length_cap"
	keyQualityHeader        = "quality.header"
	keyQualityExample       = "quality.example"
	keyQualityLogic         = "quality.logic"
	keyQualityTransition    = "quality.transition"
	keyQualitySentenceBonus = "quality.sentence_bonus"
	keyQualitySentenceMin   = "quality.sentence_min"
	keyQualitySentenceMax   = "quality.sentence_max"
	keyQualityImportant     = "quality.important_category"
)

// settingKeys lists every key in display order.
var settingKeys = []string{
	keyMinLineLength, keySimilarityThreshold, keyContextWordBudget, keyClusterMode,
	keySameIdea, keyAdmission, keySimilar, keyKeepBest, keyReview, keyImprovementMargin,
	keySequenceWeight, keyConceptWeight,
	keyQualityEquation, keyQualityKeyword, keyQualityLengthDivisor, keyQualityLengthCap,
	keyQualityHeader, keyQualityExample, keyQualityLogic, keyQualityTransition,
	keyQualitySentenceBonus, keyQualitySentenceMin, keyQualitySentenceMax, keyQualityImportant,
}

// SettingsService manages analysis settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// fields maps each key to the settings field it controls.
// Values are *int, *float64 or *domain.ClusterMode.
func fields(s *domain.Settings) map[string]any {
	return map[string]any{
		keyMinLineLength:       &s.Analysis.MinLineLength,
		keySimilarityThreshold: &s.Analysis.SimilarityThreshold,
		keyContextWordBudget:   &s.Analysis.ContextWordBudget,
		keyClusterMode:         &s.Analysis.ClusterMode,

		keySameIdea:          &s.Thresholds.SameIdea,
		keyAdmission:         &s.Thresholds.Admission,
		keySimilar:           &s.Thresholds.Similar,
		keyKeepBest:          &s.Thresholds.KeepBest,
		keyReview:            &s.Thresholds.Review,
		keyImprovementMargin: &s.Thresholds.ImprovementMargin,

		keySequenceWeight: &s.Similarity.Sequence,
		keyConceptWeight:  &s.Similarity.Concept,

		keyQualityEquation:      &s.Quality.Equation,
		keyQualityKeyword:       &s.Quality.Keyword,
		keyQualityLengthDivisor: &s.Quality.LengthDivisor,
		keyQualityLengthCap:     &s.Quality.LengthCap,
		keyQualityHeader:        &s.Quality.Header,
		keyQualityExample:       &s.Quality.Example,
		keyQualityLogic:         &s.Quality.Logic,
		keyQualityTransition:    &s.Quality.Transition,
		keyQualitySentenceBonus: &s.Quality.SentenceBonus,
		keyQualitySentenceMin:   &s.Quality.SentenceMin,
		keyQualitySentenceMax:   &s.Quality.SentenceMax,
		keyQualityImportant:     &s.Quality.ImportantCategory,
	}
}

// Get retrieves current settings. Unset or unparseable keys keep their defaults.
func (s *SettingsService) Get() (*domain.Settings, error) {
	settings := domain.DefaultSettings()

	for key, field := range fields(&settings) {
		switch f := field.(type) {
		case *int:
			*f = s.getInt(key, *f)
		case *float64:
			*f = s.getFloat(key, *f)
		case *domain.ClusterMode:
			*f = s.getClusterMode(key, *f)
		}
	}

	return &settings, nil
}

// Save validates and persists settings.
func (s *SettingsService) Save(settings *domain.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	for _, key := range settingKeys {
		var value any
		switch f := fields(settings)[key].(type) {
		case *int:
			value = *f
		case *float64:
			value = *f
		case *domain.ClusterMode:
			value = f.String()
		}
		if err := s.configStore.Set(key, value); err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
	}

	return nil
}

// Set parses value for key and persists it when the result validates.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	field, ok := fields(settings)[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidSettings, key)
	}

	switch f := field.(type) {
	case *int:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s expects an integer, got %q", domain.ErrInvalidSettings, key, value)
		}
		*f = n
	case *float64:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: %s expects a number, got %q", domain.ErrInvalidSettings, key, value)
		}
		*f = v
	case *domain.ClusterMode:
		*f = domain.ClusterMode(value)
	}

	return s.Save(settings)
}

// Keys lists the supported keys in display order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, len(settingKeys))
	copy(keys, settingKeys)
	return keys
}

// Validate checks the current settings.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return settings.Validate()
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getClusterMode(key string, defaultVal domain.ClusterMode) domain.ClusterMode {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	mode := domain.ClusterMode(val)
	if !mode.IsValid() {
		return defaultVal
	}
	return mode
}

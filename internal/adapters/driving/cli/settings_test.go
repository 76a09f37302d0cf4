package cli

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ideaforge/internal/core/domain"
)

func TestParseChoice(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		maxVal     int
		defaultVal int
		expected   int
	}{
		{
			name:       "Empty input returns default",
			input:      "",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Valid choice within range",
			input:      "3",
			maxVal:     5,
			defaultVal: 1,
			expected:   3,
		},
		{
			name:       "Choice below minimum returns default",
			input:      "0",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Choice above maximum returns default",
			input:      "6",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Invalid input returns default",
			input:      "abc",
			maxVal:     5,
			defaultVal: 2,
			expected:   2,
		},
		{
			name:       "Negative number returns default",
			input:      "-1",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Whitespace returns default",
			input:      "   ",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Maximum value is valid",
			input:      "5",
			maxVal:     5,
			defaultVal: 1,
			expected:   5,
		},
		{
			name:       "Minimum value is valid",
			input:      "1",
			maxVal:     5,
			defaultVal: 3,
			expected:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseChoice(tt.input, tt.maxVal, tt.defaultVal)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestSettingsShow(t *testing.T) {
	setupTestServices(t)

	out, _, err := runCommand(t, "settings")

	require.NoError(t, err)
	assert.Contains(t, out, "Current Settings")
	assert.Contains(t, out, "[Thresholds]")
	assert.Contains(t, out, "Keep best:            0.80")
	assert.Contains(t, out, "Configuration is valid.")
}

func TestSettingsSet(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		setupTestServices(t)

		out, _, err := runCommand(t, "settings", "set", "thresholds.admission", "0.75")

		require.NoError(t, err)
		assert.Contains(t, out, "Set thresholds.admission = 0.75")
	})

	t.Run("rejected value", func(t *testing.T) {
		ts := setupTestServices(t)
		ts.settings.setErr = errors.New("out of range")

		_, _, err := runCommand(t, "settings", "set", "thresholds.admission", "7")

		assert.EqualError(t, err, "failed to set thresholds.admission: out of range")
	})
}

func TestSettingsKeys(t *testing.T) {
	setupTestServices(t)

	out, _, err := runCommand(t, "settings", "keys")

	require.NoError(t, err)
	assert.Equal(t, "analysis.cluster_mode\nthresholds.admission\n", out)
}

func TestSettingsReset(t *testing.T) {
	ts := setupTestServices(t)
	ts.settings.settings.Thresholds.KeepBest = 0.99

	_, _, err := runCommand(t, "settings", "reset")

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), ts.settings.settings)
}

func TestSettingsWizard(t *testing.T) {
	t.Run("applies answers", func(t *testing.T) {
		ts := setupTestServices(t)
		rootCmd.SetIn(strings.NewReader("2\n0.9\n\n1.5\n0.4\n60\n"))

		out, _, err := runCommand(t, "settings", "wizard")

		require.NoError(t, err)
		got := ts.settings.settings
		defaults := domain.DefaultSettings()
		assert.Equal(t, domain.ClusterTransitive, got.Analysis.ClusterMode)
		assert.Equal(t, 0.9, got.Analysis.SimilarityThreshold)
		assert.Equal(t, defaults.Thresholds.Admission, got.Thresholds.Admission)
		assert.Equal(t, defaults.Thresholds.KeepBest, got.Thresholds.KeepBest, "out of range keeps current")
		assert.Equal(t, 0.4, got.Thresholds.Review)
		assert.Equal(t, 60, got.Analysis.ContextWordBudget)
		assert.Contains(t, out, "All settings are valid and saved.")
	})

	t.Run("empty input keeps everything", func(t *testing.T) {
		ts := setupTestServices(t)
		rootCmd.SetIn(strings.NewReader(""))

		_, _, err := runCommand(t, "settings", "wizard")

		require.NoError(t, err)
		assert.Equal(t, 1, ts.settings.saved)
		assert.Equal(t, domain.DefaultSettings(), ts.settings.settings)
	})
}

func TestSettings_NotConfigured(t *testing.T) {
	setupTestServices(t)
	settingsService = nil

	for _, args := range [][]string{
		{"settings"},
		{"settings", "set", "a", "b"},
		{"settings", "keys"},
		{"settings", "reset"},
		{"settings", "wizard"},
	} {
		_, _, err := runCommand(t, args...)
		assert.EqualError(t, err, "settings service not configured", "args %v", args)
	}
}

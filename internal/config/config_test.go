package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestNewConfig verifies that NewConfig returns a Config with all expected
// default values. This serves as living documentation of the defaults and
// makes changes to them intentional.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default Timeout is 10 seconds", func(t *testing.T) {
		t.Parallel()
		if cfg.Timeout != 10*time.Second {
			t.Errorf("expected Timeout to be 10s, got %v", cfg.Timeout)
		}
	})

	t.Run("default MaxPages is 20", func(t *testing.T) {
		t.Parallel()
		if cfg.MaxPages != 20 {
			t.Errorf("expected MaxPages to be 20, got %d", cfg.MaxPages)
		}
	})

	t.Run("default MaxCandidateLinks is 50", func(t *testing.T) {
		t.Parallel()
		if cfg.MaxCandidateLinks != 50 {
			t.Errorf("expected MaxCandidateLinks to be 50, got %d", cfg.MaxCandidateLinks)
		}
	})

	t.Run("default MonthlyPageViews is 10000", func(t *testing.T) {
		t.Parallel()
		if cfg.MonthlyPageViews != 10_000 {
			t.Errorf("expected MonthlyPageViews to be 10000, got %d", cfg.MonthlyPageViews)
		}
	})

	t.Run("default carbon model constants", func(t *testing.T) {
		t.Parallel()
		if cfg.WeightMultiplier != 3.0 {
			t.Errorf("expected WeightMultiplier to be 3.0, got %v", cfg.WeightMultiplier)
		}
		if cfg.EnergyPerGBKWh != 0.5 {
			t.Errorf("expected EnergyPerGBKWh to be 0.5, got %v", cfg.EnergyPerGBKWh)
		}
		if cfg.CarbonIntensityGPerKWh != 300.0 {
			t.Errorf("expected CarbonIntensityGPerKWh to be 300, got %v", cfg.CarbonIntensityGPerKWh)
		}
	})
}

// TestConfigValidate tests the Validate method with various configurations.
// Each test case is designed to test one specific validation rule.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	// validConfig returns a minimal valid configuration.
	// Tests can modify specific fields to test validation rules.
	validConfig := func() *Config {
		cfg := NewConfig()
		cfg.Targets = []string{"https://example.com"}
		return cfg
	}

	t.Run("valid config returns nil", func(t *testing.T) {
		t.Parallel()
		if err := validConfig().Validate(); err != nil {
			t.Errorf("expected valid config to pass validation, got %v", err)
		}
	})

	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{
			name:   "no targets",
			modify: func(c *Config) { c.Targets = nil },
			want:   ErrNoTarget,
		},
		{
			name:   "zero timeout",
			modify: func(c *Config) { c.Timeout = 0 },
			want:   ErrInvalidTimeout,
		},
		{
			name:   "zero max pages",
			modify: func(c *Config) { c.MaxPages = 0 },
			want:   ErrInvalidMaxPages,
		},
		{
			name:   "zero max candidate links",
			modify: func(c *Config) { c.MaxCandidateLinks = 0 },
			want:   ErrInvalidMaxLinks,
		},
		{
			name:   "zero batch size",
			modify: func(c *Config) { c.BatchSize = 0 },
			want:   ErrInvalidBatchSize,
		},
		{
			name:   "page views below minimum",
			modify: func(c *Config) { c.MonthlyPageViews = 99 },
			want:   ErrInvalidPageViews,
		},
		{
			name:   "page views above maximum",
			modify: func(c *Config) { c.MonthlyPageViews = 1_000_001 },
			want:   ErrInvalidPageViews,
		},
		{
			name:   "negative weight multiplier",
			modify: func(c *Config) { c.WeightMultiplier = -1 },
			want:   ErrInvalidCarbonModel,
		},
		{
			name:   "conflicting report formats",
			modify: func(c *Config) { c.JSONReport = true; c.MarkdownReport = true },
			want:   ErrConflictingReportFormats,
		},
		{
			name:   "negative max body size",
			modify: func(c *Config) { c.MaxBodySize = -1 },
			want:   ErrInvalidMaxBodySize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.modify(cfg)

			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

// TestTaxonomies verifies that the taxonomy accessors return the expected
// lists and that returned slices are copies.
func TestTaxonomies(t *testing.T) {
	t.Parallel()

	t.Run("taxonomy names", func(t *testing.T) {
		t.Parallel()

		if got := RSETaxonomy().Name; got != "rse" {
			t.Errorf("expected taxonomy name 'rse', got %q", got)
		}
		if got := CarbonTaxonomy().Name; got != "carbon" {
			t.Errorf("expected taxonomy name 'carbon', got %q", got)
		}
		if got := GreenITTaxonomy().Name; got != "green_it" {
			t.Errorf("expected taxonomy name 'green_it', got %q", got)
		}
	})

	t.Run("carbon taxonomy contains explicit phrase", func(t *testing.T) {
		t.Parallel()

		found := false
		for _, kw := range CarbonTaxonomy().Keywords {
			if kw == ExplicitCarbonPhrase {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected carbon taxonomy to contain %q", ExplicitCarbonPhrase)
		}
	})

	t.Run("accessors return copies", func(t *testing.T) {
		t.Parallel()

		first := RSETaxonomy()
		first.Keywords[0] = "mutated"

		second := RSETaxonomy()
		if second.Keywords[0] == "mutated" {
			t.Error("expected RSETaxonomy to return an independent copy")
		}
	})

	t.Run("link stems include carbone", func(t *testing.T) {
		t.Parallel()

		found := false
		for _, stem := range LinkStems() {
			if stem == "carbone" {
				found = true
				break
			}
		}
		if !found {
			t.Error("expected link stems to include 'carbone'")
		}
	})
}

// TestLoadConfigFile tests loading a YAML configuration file.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("loads sites, defaults and model", func(t *testing.T) {
		t.Parallel()

		content := `
defaults:
  maxPages: 10
model:
  weightMultiplier: 2.5
  carbonIntensityGPerKwh: 50
sites:
  example.com:
    maxPages: 5
    monthlyPageViews: 25000
`
		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}

		cf, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("failed to load config file: %v", err)
		}

		site := cf.GetSiteConfig("example.com")
		if site.MaxPages != 5 {
			t.Errorf("expected site MaxPages 5, got %d", site.MaxPages)
		}
		if site.MonthlyPageViews != 25000 {
			t.Errorf("expected site MonthlyPageViews 25000, got %d", site.MonthlyPageViews)
		}

		other := cf.GetSiteConfig("other.com")
		if other.MaxPages != 10 {
			t.Errorf("expected default MaxPages 10, got %d", other.MaxPages)
		}

		cfg := NewConfig()
		cf.ApplyModel(cfg)
		if cfg.WeightMultiplier != 2.5 {
			t.Errorf("expected WeightMultiplier 2.5, got %v", cfg.WeightMultiplier)
		}
		if cfg.CarbonIntensityGPerKWh != 50 {
			t.Errorf("expected CarbonIntensityGPerKWh 50, got %v", cfg.CarbonIntensityGPerKWh)
		}
		// Energy constant untouched when not set in the file.
		if cfg.EnergyPerGBKWh != DefaultEnergyPerGBKWh {
			t.Errorf("expected EnergyPerGBKWh %v, got %v", DefaultEnergyPerGBKWh, cfg.EnergyPerGBKWh)
		}
	})

	t.Run("missing file returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("invalid YAML returns error", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		if err := os.WriteFile(path, []byte(":\n -bad"), 0600); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}

		if _, err := LoadConfigFile(path); err == nil {
			t.Error("expected error for invalid YAML")
		}
	})
}

// TestFindConfigFile tests the config file search behavior with an
// explicit path.
func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("explicit existing path", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(path, []byte("sites: {}"), 0600); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}

		if got := FindConfigFile(path); got != path {
			t.Errorf("expected %q, got %q", path, got)
		}
	})

	t.Run("explicit missing path returns empty", func(t *testing.T) {
		t.Parallel()

		if got := FindConfigFile(filepath.Join(t.TempDir(), "missing")); got != "" {
			t.Errorf("expected empty string, got %q", got)
		}
	})
}

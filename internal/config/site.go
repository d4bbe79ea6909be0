package config

// SiteConfig holds site-specific configuration for a single website.
// This allows customizing crawl behavior per target domain.
type SiteConfig struct {
	// MaxPages overrides the global page cap for this site.
	// If zero, the global MaxPages is used.
	MaxPages int `yaml:"maxPages,omitempty"`

	// MaxCandidateLinks overrides the global candidate link cap.
	// If zero, the global MaxCandidateLinks is used.
	MaxCandidateLinks int `yaml:"maxCandidateLinks,omitempty"`

	// UserAgent overrides the User-Agent header for this site.
	UserAgent string `yaml:"userAgent,omitempty"`

	// MonthlyPageViews overrides the traffic assumption for this site,
	// so known-traffic customers get a tailored estimate.
	MonthlyPageViews int `yaml:"monthlyPageViews,omitempty"`
}

// ModelConfig holds overrides for the three carbon model constants.
// Zero values mean "use the default".
type ModelConfig struct {
	// WeightMultiplier scales HTML weight to total page weight.
	WeightMultiplier float64 `yaml:"weightMultiplier,omitempty"`

	// EnergyPerGBKWh is the energy cost of one transferred gigabyte.
	EnergyPerGBKWh float64 `yaml:"energyPerGbKwh,omitempty"`

	// CarbonIntensityGPerKWh is the grid carbon intensity in gCO2/kWh.
	CarbonIntensityGPerKWh float64 `yaml:"carbonIntensityGPerKwh,omitempty"`
}

// File represents the structure of the .greenscan configuration file.
type File struct {
	// Sites maps registrable domains to their site-specific
	// configurations (e.g. "example.com").
	Sites map[string]SiteConfig `yaml:"sites,omitempty"`

	// Defaults contains default site configuration applied to all sites
	// unless overridden in the site-specific configuration.
	Defaults SiteConfig `yaml:"defaults,omitempty"`

	// Model contains overrides for the carbon model constants.
	Model ModelConfig `yaml:"model,omitempty"`
}

// GetSiteConfig returns the configuration for a specific domain.
// It merges the site-specific configuration with defaults.
func (cf *File) GetSiteConfig(domain string) SiteConfig {
	result := cf.Defaults

	if siteConfig, ok := cf.Sites[domain]; ok {
		if siteConfig.MaxPages != 0 {
			result.MaxPages = siteConfig.MaxPages
		}
		if siteConfig.MaxCandidateLinks != 0 {
			result.MaxCandidateLinks = siteConfig.MaxCandidateLinks
		}
		if siteConfig.UserAgent != "" {
			result.UserAgent = siteConfig.UserAgent
		}
		if siteConfig.MonthlyPageViews != 0 {
			result.MonthlyPageViews = siteConfig.MonthlyPageViews
		}
	}

	return result
}

// ApplyModel copies any non-zero model constants from the config file
// into cfg. Flag values already set by the user are not overridden here;
// the CLI applies file values before flags.
func (cf *File) ApplyModel(cfg *Config) {
	if cf.Model.WeightMultiplier > 0 {
		cfg.WeightMultiplier = cf.Model.WeightMultiplier
	}
	if cf.Model.EnergyPerGBKWh > 0 {
		cfg.EnergyPerGBKWh = cf.Model.EnergyPerGBKWh
	}
	if cf.Model.CarbonIntensityGPerKWh > 0 {
		cfg.CarbonIntensityGPerKWh = cf.Model.CarbonIntensityGPerKWh
	}
}

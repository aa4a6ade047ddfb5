package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for an analysis run
type Config struct {
	Company   string         `yaml:"company"`
	Objective string         `yaml:"objective"`
	Analysis  AnalysisConfig `yaml:"analysis"`
}

// AnalysisConfig holds tuning parameters for the analytics engine
type AnalysisConfig struct {
	TargetStatus      string          `yaml:"target_status"`      // funnel status counted as a conversion
	GeoTopN           int             `yaml:"geo_top_n"`          // locations kept in the geography breakdown
	SignificanceLevel float64         `yaml:"significance_level"` // p-value cutoff for the independence test
	Thresholds        ThresholdConfig `yaml:"thresholds"`
}

// ThresholdConfig holds the conversion-rate cutoffs that drive channel
// classification and the budget tier rule
type ThresholdConfig struct {
	HighPerformingRate  float64 `yaml:"high_performing_rate"`  // rate above this scales investment
	GoodRate            float64 `yaml:"good_rate"`             // rate above this grows investment
	UnderperformingRate float64 `yaml:"underperforming_rate"`  // rate below this cuts investment
	HighVolumeShare     float64 `yaml:"high_volume_share"`     // volume share flagging wasted spend at scale
	RecommendedShareCap float64 `yaml:"recommended_share_cap"` // share ceiling when scaling a winner
}

// Default returns the configuration used when no file is supplied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// LoadFromEnv loads configuration with environment variable overrides.
// It loads a .env file first (if present) so local runs can keep overrides
// out of the shell environment.
func LoadFromEnv(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("COMPANY_NAME"); v != "" {
		cfg.Company = v
	}
	if v := os.Getenv("ANALYSIS_OBJECTIVE"); v != "" {
		cfg.Objective = v
	}
	if v := os.Getenv("ANALYSIS_TARGET_STATUS"); v != "" {
		cfg.Analysis.TargetStatus = v
	}
	if v := os.Getenv("ANALYSIS_GEO_TOP_N"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Analysis.GeoTopN = n
		}
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Company == "" {
		c.Company = "ABC Inc."
	}
	if c.Objective == "" {
		c.Objective = "Increase prospect conversion"
	}
	if c.Analysis.TargetStatus == "" {
		c.Analysis.TargetStatus = "Registered"
	}
	if c.Analysis.GeoTopN == 0 {
		c.Analysis.GeoTopN = 10
	}
	if c.Analysis.SignificanceLevel == 0 {
		c.Analysis.SignificanceLevel = 0.05
	}
	if c.Analysis.Thresholds.HighPerformingRate == 0 {
		c.Analysis.Thresholds.HighPerformingRate = 20
	}
	if c.Analysis.Thresholds.GoodRate == 0 {
		c.Analysis.Thresholds.GoodRate = 10
	}
	if c.Analysis.Thresholds.UnderperformingRate == 0 {
		c.Analysis.Thresholds.UnderperformingRate = 5
	}
	if c.Analysis.Thresholds.HighVolumeShare == 0 {
		c.Analysis.Thresholds.HighVolumeShare = 10
	}
	if c.Analysis.Thresholds.RecommendedShareCap == 0 {
		c.Analysis.Thresholds.RecommendedShareCap = 40
	}
}

// Package config loads the run configuration consumed by the core. The
// result is constructed once and passed explicitly; nothing here is a
// mutable singleton.
package config

import (
	"fmt"
	"time"

	"github.com/de-tools/bill-forge/pkg/models/domain"
	"github.com/spf13/viper"
)

type fileConfig struct {
	Mode             string        `mapstructure:"mode"`
	Concurrency      int           `mapstructure:"concurrency"`
	QualityThreshold float64       `mapstructure:"quality_threshold"`
	AttemptTimeout   time.Duration `mapstructure:"attempt_timeout"`
	OutputDir        string        `mapstructure:"output_dir"`
	Backends         []string      `mapstructure:"backends"`
	Seed             int64         `mapstructure:"seed"`
}

// Defaults returns the configuration used when no file is supplied.
func Defaults() domain.RunConfig {
	return domain.RunConfig{
		Mode:             domain.ModeManual,
		Concurrency:      4,
		QualityThreshold: 0.95,
		AttemptTimeout:   60 * time.Second,
		OutputDir:        "out",
		Backends:         []string{"chrome", "wkhtmltopdf", "fpdf"},
		Seed:             time.Now().UnixNano(),
	}
}

// Load reads the YAML run configuration at path.
func Load(path string) (domain.RunConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetDefault("mode", "manual")
	v.SetDefault("concurrency", 4)
	v.SetDefault("quality_threshold", 0.95)
	v.SetDefault("attempt_timeout", "60s")
	v.SetDefault("output_dir", "out")
	v.SetDefault("backends", []string{"chrome", "wkhtmltopdf", "fpdf"})
	v.SetDefault("seed", 0)

	if err := v.ReadInConfig(); err != nil {
		return domain.RunConfig{}, fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	if err := v.Unmarshal(&fc); err != nil {
		return domain.RunConfig{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg := domain.RunConfig{
		Mode:             domain.BillingMode(fc.Mode),
		Concurrency:      fc.Concurrency,
		QualityThreshold: fc.QualityThreshold,
		AttemptTimeout:   fc.AttemptTimeout,
		OutputDir:        fc.OutputDir,
		Backends:         fc.Backends,
		Seed:             fc.Seed,
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg, validate(cfg)
}

func validate(cfg domain.RunConfig) error {
	switch cfg.Mode {
	case domain.ModeManual, domain.ModeOnline:
	default:
		return fmt.Errorf("unknown billing mode %q", cfg.Mode)
	}
	if cfg.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", cfg.Concurrency)
	}
	if cfg.QualityThreshold <= 0 || cfg.QualityThreshold > 1 {
		return fmt.Errorf("quality threshold must be in (0,1], got %v", cfg.QualityThreshold)
	}
	if len(cfg.Backends) == 0 {
		return fmt.Errorf("at least one backend must be configured")
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/meenmo/fixedincome/calendar"
	"github.com/meenmo/fixedincome/daycount"
)

// EnvPrefix namespaces environment overrides, e.g. FIXEDINCOME_PRICING_CONVENTION.
const EnvPrefix = "FIXEDINCOME"

// Config holds the settings used by the CLI and the batch pricer.
type Config struct {
	Pricing PricingConfig `mapstructure:"pricing" yaml:"pricing"`
	Batch   BatchConfig   `mapstructure:"batch"   yaml:"batch"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// PricingConfig holds defaults applied when a request leaves a field empty.
type PricingConfig struct {
	// Convention is the day count identifier, e.g. "ACT/365F".
	Convention string `mapstructure:"convention" yaml:"convention"`
	// Settlement is an optional YYYY-MM-DD default settlement date.
	Settlement string `mapstructure:"settlement" yaml:"settlement"`
	// Decimals is the number of decimal places printed for prices.
	Decimals int32 `mapstructure:"decimals" yaml:"decimals"`
	// SettlementLag is the number of business days from trade date to settlement.
	SettlementLag int `mapstructure:"settlement_lag" yaml:"settlement_lag"`
	// Holidays are YYYY-MM-DD non-business days used when applying SettlementLag.
	Holidays []string `mapstructure:"holidays" yaml:"holidays"`
}

// BatchConfig bounds batch pricing concurrency.
type BatchConfig struct {
	Workers int `mapstructure:"workers" yaml:"workers"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "json" or "text"
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Pricing: PricingConfig{
			Convention:    daycount.Act365F.String(),
			Decimals:      6,
			SettlementLag: 2,
		},
		Batch: BatchConfig{
			Workers: 4,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads configuration from the first fixedincome.yaml found in
// ./config, $HOME/.fixedincome or /etc/fixedincome. A missing file is not an
// error. FIXEDINCOME_<SECTION>_<KEY> environment variables override file values.
func Load() (*Config, error) {
	v := newViper()
	v.SetConfigName("fixedincome")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".fixedincome"))
	}
	v.AddConfigPath("/etc/fixedincome")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return decode(v)
}

// LoadFromFile reads configuration from path, with environment overrides.
func LoadFromFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v, Default())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("pricing.convention", d.Pricing.Convention)
	v.SetDefault("pricing.settlement", d.Pricing.Settlement)
	v.SetDefault("pricing.decimals", d.Pricing.Decimals)
	v.SetDefault("pricing.settlement_lag", d.Pricing.SettlementLag)
	v.SetDefault("pricing.holidays", d.Pricing.Holidays)
	v.SetDefault("batch.workers", d.Batch.Workers)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that every setting is usable.
func (c Config) Validate() error {
	if _, err := daycount.Lookup(c.Pricing.Convention); err != nil {
		return fmt.Errorf("pricing.convention: %w", err)
	}
	if c.Pricing.Settlement != "" {
		if _, err := calendar.Parse(c.Pricing.Settlement); err != nil {
			return fmt.Errorf("pricing.settlement: %w", err)
		}
	}
	if c.Pricing.Decimals < 0 || c.Pricing.Decimals > 12 {
		return fmt.Errorf("pricing.decimals: %d out of range [0, 12]", c.Pricing.Decimals)
	}
	if c.Pricing.SettlementLag < 0 {
		return fmt.Errorf("pricing.settlement_lag: %d must not be negative", c.Pricing.SettlementLag)
	}
	if _, err := calendar.NewCalendar(c.Pricing.Holidays); err != nil {
		return fmt.Errorf("pricing.holidays: %w", err)
	}
	if c.Batch.Workers < 1 {
		return fmt.Errorf("batch.workers: %d must be at least 1", c.Batch.Workers)
	}
	if _, err := logrus.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	switch c.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("logging.format: %q must be json or text", c.Logging.Format)
	}
	return nil
}

// Convention resolves Pricing.Convention. Call Validate first.
func (c Config) Convention() daycount.Convention {
	conv, _ := daycount.Lookup(c.Pricing.Convention)
	return conv
}

// Settlement resolves Pricing.Settlement; the zero Date means unset.
func (c Config) Settlement() calendar.Date {
	d, _ := calendar.Parse(c.Pricing.Settlement)
	return d
}

// Calendar builds the holiday calendar from Pricing.Holidays. Call Validate first.
func (c Config) Calendar() calendar.Calendar {
	cal, _ := calendar.NewCalendar(c.Pricing.Holidays)
	return cal
}

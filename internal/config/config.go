package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/great-dispatch/internal/fleet"
	"github.com/eugenenazirov/great-dispatch/internal/onboarding"
)

const (
	defaultLogLevel    = "info"
	defaultLogEncoding = "json"
	defaultStrategy    = string(onboarding.Closest)
)

// Config aggregates runtime configuration resolved from multiple sources.
// Precedence: CLI flags > YAML config > Environment variables > Defaults
type Config struct {
	Trucks      int           `yaml:"trucks"`
	LogLevel    string        `yaml:"log_level"`
	LogEncoding string        `yaml:"log_encoding"`
	LoadChart   bool          `yaml:"load_chart"`
	Strategy    string        `yaml:"strategy"`
	TurnBudget  time.Duration `yaml:"turn_budget"`
}

// yamlConfig represents the YAML configuration file structure.
type yamlConfig struct {
	Trucks     int            `yaml:"trucks"`
	LoadChart  *bool          `yaml:"load_chart"`
	Logging    yamlLogging    `yaml:"logging"`
	Onboarding yamlOnboarding `yaml:"onboarding"`
}

// yamlLogging represents the logging section in YAML.
type yamlLogging struct {
	Level    string `yaml:"level"`
	Encoding string `yaml:"encoding"`
}

// yamlOnboarding represents the onboarding section in YAML.
type yamlOnboarding struct {
	Strategy   string `yaml:"strategy"`
	TurnBudget string `yaml:"turn_budget"`
}

// CLIOverrides holds command-line flag overrides.
type CLIOverrides struct {
	ConfigFile  string
	Trucks      *int
	LogLevel    *string
	LogEncoding *string
	LoadChart   *bool
	Strategy    *string
	TurnBudget  *time.Duration
}

// Load extracts configuration from multiple sources with precedence:
// CLI flags > YAML config > Environment variables > Defaults
func Load(overrides *CLIOverrides) (Config, error) {
	cfg := defaultConfig()

	if err := applyEnvConfig(&cfg); err != nil {
		return Config{}, err
	}

	if overrides != nil && overrides.ConfigFile != "" {
		yamlCfg, err := loadFromFile(overrides.ConfigFile)
		if err != nil {
			return Config{}, fmt.Errorf("load YAML config: %w", err)
		}
		if err := applyYAMLConfig(&cfg, yamlCfg); err != nil {
			return Config{}, fmt.Errorf("apply YAML config: %w", err)
		}
	}

	if overrides != nil {
		applyCLIOverrides(&cfg, overrides)
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// defaultConfig returns a Config with default values.
func defaultConfig() Config {
	return Config{
		Trucks:      fleet.DefaultTrucks,
		LogLevel:    defaultLogLevel,
		LogEncoding: defaultLogEncoding,
		LoadChart:   false,
		Strategy:    defaultStrategy,
		TurnBudget:  0,
	}
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	return &yamlCfg, nil
}

// applyYAMLConfig applies YAML configuration to the Config struct.
func applyYAMLConfig(cfg *Config, yamlCfg *yamlConfig) error {
	if yamlCfg.Trucks != 0 {
		cfg.Trucks = yamlCfg.Trucks
	}

	if yamlCfg.LoadChart != nil {
		cfg.LoadChart = *yamlCfg.LoadChart
	}

	if yamlCfg.Logging.Level != "" {
		cfg.LogLevel = yamlCfg.Logging.Level
	}

	if yamlCfg.Logging.Encoding != "" {
		cfg.LogEncoding = yamlCfg.Logging.Encoding
	}

	if yamlCfg.Onboarding.Strategy != "" {
		cfg.Strategy = yamlCfg.Onboarding.Strategy
	}

	if yamlCfg.Onboarding.TurnBudget != "" {
		d, err := time.ParseDuration(yamlCfg.Onboarding.TurnBudget)
		if err != nil {
			return fmt.Errorf("parse turn_budget: %w", err)
		}
		cfg.TurnBudget = d
	}

	return nil
}

// applyEnvConfig applies environment variable configuration.
func applyEnvConfig(cfg *Config) error {
	if raw := strings.TrimSpace(os.Getenv("TRUCKS")); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid TRUCKS %q", raw)
		}
		cfg.Trucks = value
	}

	if level := strings.TrimSpace(os.Getenv("LOG_LEVEL")); level != "" {
		cfg.LogLevel = level
	}

	if encoding := strings.TrimSpace(os.Getenv("LOG_ENCODING")); encoding != "" {
		cfg.LogEncoding = encoding
	}

	if raw := strings.TrimSpace(os.Getenv("LOAD_CHART")); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("invalid LOAD_CHART %q", raw)
		}
		cfg.LoadChart = value
	}

	if strategy := strings.TrimSpace(os.Getenv("STRATEGY")); strategy != "" {
		cfg.Strategy = strategy
	}

	if raw := strings.TrimSpace(os.Getenv("TURN_BUDGET")); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid TURN_BUDGET %q", raw)
		}
		cfg.TurnBudget = d
	}

	return nil
}

// applyCLIOverrides applies command-line flag overrides.
func applyCLIOverrides(cfg *Config, overrides *CLIOverrides) {
	if overrides.Trucks != nil {
		cfg.Trucks = *overrides.Trucks
	}

	if overrides.LogLevel != nil && *overrides.LogLevel != "" {
		cfg.LogLevel = *overrides.LogLevel
	}

	if overrides.LogEncoding != nil && *overrides.LogEncoding != "" {
		cfg.LogEncoding = *overrides.LogEncoding
	}

	if overrides.LoadChart != nil {
		cfg.LoadChart = *overrides.LoadChart
	}

	if overrides.Strategy != nil && *overrides.Strategy != "" {
		cfg.Strategy = *overrides.Strategy
	}

	if overrides.TurnBudget != nil {
		cfg.TurnBudget = *overrides.TurnBudget
	}
}

// validateConfig validates the final configuration.
func validateConfig(cfg Config) error {
	if cfg.Trucks <= 0 {
		return fmt.Errorf("trucks must be > 0, got %d", cfg.Trucks)
	}
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	if cfg.LogEncoding != "json" && cfg.LogEncoding != "console" {
		return fmt.Errorf("log encoding must be json or console, got %q", cfg.LogEncoding)
	}
	if _, err := onboarding.ParseStrategy(cfg.Strategy); err != nil {
		return err
	}
	if cfg.TurnBudget < 0 {
		return fmt.Errorf("turn budget must be >= 0, got %s", cfg.TurnBudget)
	}
	return nil
}

package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// DatabaseConfig holds persistence settings.
type DatabaseConfig struct {
	// Path is the SQLite database file. ":memory:" is accepted.
	Path string `mapstructure:"path" yaml:"path"`
}

// AggregationConfig holds the fallbacks used while aggregating a day.
type AggregationConfig struct {
	// DefaultTargetMinutes is the daily target for users with no prior record.
	DefaultTargetMinutes int `mapstructure:"default_target_minutes" yaml:"default_target_minutes"`

	// DefaultTaskMinutes is credited for tasks with no recorded duration.
	DefaultTaskMinutes int `mapstructure:"default_task_minutes" yaml:"default_task_minutes"`

	// DefaultHabitMinutes is credited for check-ins when neither the
	// check-in nor its habit supplies a duration.
	DefaultHabitMinutes int `mapstructure:"default_habit_minutes" yaml:"default_habit_minutes"`
}

// ReportConfig holds rendering preferences for the CLI report.
type ReportConfig struct {
	Color bool `mapstructure:"color" yaml:"color"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	UserID      string            `mapstructure:"user_id" yaml:"user_id"`
	Database    DatabaseConfig    `mapstructure:"database" yaml:"database"`
	Aggregation AggregationConfig `mapstructure:"aggregation" yaml:"aggregation"`
	Report      ReportConfig      `mapstructure:"report" yaml:"report"`
}

// EnvPrefix is the prefix for environment variable overrides,
// e.g. LIFETRACK_DATABASE_PATH.
const EnvPrefix = "LIFETRACK"

// envKeyReplacer maps nested keys like "database.path" to DATABASE_PATH.
var envKeyReplacer = strings.NewReplacer(".", "_")

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/lifetrack/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "lifetrack", "config.yaml")
}

// defaultDatabasePath places the database next to the default config file.
func defaultDatabasePath() string {
	return filepath.Join(filepath.Dir(DefaultConfigPath()), "lifetrack.db")
}

// DefaultAppConfig returns a sensible default configuration.
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		UserID:   "default",
		Database: DatabaseConfig{Path: defaultDatabasePath()},
		Aggregation: AggregationConfig{
			DefaultTargetMinutes: DefaultTargetMinutesPerDay,
			DefaultTaskMinutes:   25,
			DefaultHabitMinutes:  30,
		},
		Report: ReportConfig{Color: true},
	}
}

// NewViper returns a viper instance preloaded with defaults and environment
// bindings. Callers may bind flags onto it before passing it to LoadConfigFrom.
func NewViper() *viper.Viper {
	def := DefaultAppConfig()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("user_id", def.UserID)
	v.SetDefault("database.path", def.Database.Path)
	v.SetDefault("aggregation.default_target_minutes", def.Aggregation.DefaultTargetMinutes)
	v.SetDefault("aggregation.default_task_minutes", def.Aggregation.DefaultTaskMinutes)
	v.SetDefault("aggregation.default_habit_minutes", def.Aggregation.DefaultHabitMinutes)
	v.SetDefault("report.color", def.Report.Color)
	return v
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// A missing file yields the defaults, still subject to environment overrides.
func LoadConfig(path string) (*AppConfig, error) {
	return LoadConfigFrom(NewViper(), path)
}

// LoadConfigFrom reads the YAML file at path into v and unmarshals the result.
func LoadConfigFrom(v *viper.Viper, path string) (*AppConfig, error) {
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		var pathErr *os.PathError
		if !errors.As(err, &notFound) && !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := DefaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings the aggregation engine cannot work with.
func (c *AppConfig) Validate() error {
	if c.UserID == "" {
		return fmt.Errorf("user_id must not be empty")
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path must not be empty")
	}
	a := c.Aggregation
	if a.DefaultTargetMinutes <= 0 || a.DefaultTargetMinutes > MinutesPerDay {
		return fmt.Errorf("aggregation.default_target_minutes must be in 1..%d, got %d",
			MinutesPerDay, a.DefaultTargetMinutes)
	}
	if a.DefaultTaskMinutes < 0 || a.DefaultHabitMinutes < 0 {
		return fmt.Errorf("aggregation default durations must not be negative")
	}
	return nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("user_id", cfg.UserID)
	v.Set("database", cfg.Database)
	v.Set("aggregation", cfg.Aggregation)
	v.Set("report", cfg.Report)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}

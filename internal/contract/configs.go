package contract

import (
	"fmt"
	"strings"

	"github.com/lineheat/lineheat/internal/heatcolor"
	"github.com/lineheat/lineheat/schema"
)

// Default values for configuration.
const (
	DefaultHeatLevels = 10
	DefaultHeatColor  = "200,0,0"
)

// Config holds the runtime configuration for a render cycle.
// This struct is the "final, validated" config: it is resolved once per
// trigger and threaded explicitly through the extractor, bucketizer and
// renderer instead of being read ambiently.
type Config struct {
	HeatLevels  int
	HeatColor   heatcolor.Color
	CoolColor   heatcolor.Color
	ShowInRuler bool
	Mode        schema.Mode
	Strategy    schema.AbsoluteStrategy
	Follow      bool

	UseColors  bool // Enable ANSI paint in terminal output
	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext
}

// ConfigRawInput holds the raw inputs from all sources (flags, env,
// config file). Viper unmarshals into this struct.
type ConfigRawInput struct {
	// Set manually from positional args, so no tag
	FilePathStr string

	HeatLevels     int    `mapstructure:"heat-levels"`
	HeatColor      string `mapstructure:"heat-color"`
	CoolColor      string `mapstructure:"cool-color"`
	ShowInRuler    bool   `mapstructure:"show-in-ruler"`
	Mode           string `mapstructure:"mode"`
	Scale          string `mapstructure:"scale"`
	Follow         bool   `mapstructure:"follow"`
	Color          string `mapstructure:"color"`
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Width          int    `mapstructure:"width"`
	CacheBackend   string `mapstructure:"cache-backend"`
	CacheDBConnect string `mapstructure:"cache-db-connect"`
}

// Clone returns a copy of the Config struct. Colors and enums are value
// types, so a shallow copy is a full copy.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// BucketScale returns the bucketing scale implied by the configured
// absolute extraction strategy: the per-line log strategy compresses
// heavy-tailed counts logarithmically, the hunk-walk strategy buckets
// linearly.
func (c *Config) BucketScale() schema.Scale {
	if c.Strategy == schema.HunksStrategy {
		return schema.LinearScale
	}
	return schema.LogScale
}

// ProcessAndValidate performs all parsing and validation on the raw
// inputs and populates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateHeatInputs(cfg, input); err != nil {
		return err
	}
	if err := validateOutputInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	return nil
}

// validateHeatInputs processes the heatmap-specific fields.
func validateHeatInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 1. Heat levels ---
	if input.HeatLevels < 1 {
		return fmt.Errorf("heat-levels must be at least 1 (received %d)", input.HeatLevels)
	}
	cfg.HeatLevels = input.HeatLevels

	// --- 2. Colors ---
	// The heat color falls back to the stock red; the cool color falls
	// back to the heat color at zero opacity.
	fallbackHot := heatcolor.ParseColor(DefaultHeatColor, heatcolor.New(200, 0, 0))
	cfg.HeatColor = heatcolor.ParseColor(input.HeatColor, fallbackHot)
	cfg.CoolColor = heatcolor.ParseColor(input.CoolColor, heatcolor.WithAlpha(cfg.HeatColor, 0))

	// --- 3. Mode ---
	cfg.Mode = schema.Mode(strings.ToLower(input.Mode))
	if _, ok := schema.ValidModes[cfg.Mode]; !ok {
		return fmt.Errorf("invalid mode '%s'. must be age or line_commit", input.Mode)
	}

	// --- 4. Absolute strategy ---
	cfg.Strategy = schema.AbsoluteStrategy(strings.ToLower(input.Scale))
	if _, ok := schema.ValidStrategies[cfg.Strategy]; !ok {
		return fmt.Errorf("invalid scale '%s'. must be line-log or hunks", input.Scale)
	}

	cfg.ShowInRuler = input.ShowInRuler
	cfg.Follow = input.Follow
	return nil
}

// validateOutputInputs processes the presentation fields.
func validateOutputInputs(cfg *Config, input *ConfigRawInput) error {
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	cfg.OutputFile = input.OutputFile

	if input.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", input.Width)
	}
	cfg.Width = input.Width
	return nil
}

// validateBackendConfigs validates the cache backend configuration.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	return ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect)
}

// ValidateDatabaseConnectionString validates the format of database
// connection strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

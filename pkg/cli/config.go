// Package cli provides CLI-specific logic including configuration loading.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/toyinlola/planetscope/pkg/apperr"
	"github.com/toyinlola/planetscope/pkg/lightcurve"
	"github.com/toyinlola/planetscope/pkg/pipeline"
	"github.com/toyinlola/planetscope/pkg/scorer"
)

// DefaultConfigFile is read from the working directory when no path is given.
const DefaultConfigFile = ".planetscope.yml"

// EnvPrefix prefixes environment overrides, e.g. PLANETSCOPE_SERVER_ADDR.
const EnvPrefix = "PLANETSCOPE"

// Config represents the .planetscope.yml configuration file.
type Config struct {
	Version    string           `mapstructure:"version" yaml:"version"`
	Server     ServerConfig     `mapstructure:"server" yaml:"server"`
	Source     SourceConfig     `mapstructure:"source" yaml:"source"`
	Archive    ArchiveConfig    `mapstructure:"archive" yaml:"archive"`
	Identifier IdentifierConfig `mapstructure:"identifier" yaml:"identifier"`
	Store      StoreConfig      `mapstructure:"store" yaml:"store"`
	Log        LogConfig        `mapstructure:"log" yaml:"log"`
	Tables     TablesConfig     `mapstructure:"tables" yaml:"tables,omitempty"`
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Addr         string        `mapstructure:"addr" yaml:"addr"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
	Gzip         bool          `mapstructure:"gzip" yaml:"gzip"`
}

// SourceConfig configures the light-curve service.
type SourceConfig struct {
	BaseURL   string        `mapstructure:"base_url" yaml:"base_url"`
	Token     string        `mapstructure:"token" yaml:"-"`
	TokenEnv  string        `mapstructure:"token_env" yaml:"token_env"`
	Timeout   time.Duration `mapstructure:"timeout" yaml:"timeout"`
	UserAgent string        `mapstructure:"user_agent" yaml:"user_agent"`
}

// ArchiveConfig configures the exoplanet archive used for transit parameters.
type ArchiveConfig struct {
	Enabled bool          `mapstructure:"enabled" yaml:"enabled"`
	BaseURL string        `mapstructure:"base_url" yaml:"base_url"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// IdentifierConfig controls identifier validation.
type IdentifierConfig struct {
	Prefix string `mapstructure:"prefix" yaml:"prefix"`
}

// StoreConfig controls classification history. An empty path disables it.
type StoreConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// LogConfig controls logging output.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// TablesConfig holds optional overrides for the tree-count tables.
type TablesConfig struct {
	TreesFromFlux      *TableConfig `mapstructure:"trees_from_flux" yaml:"trees_from_flux,omitempty"`
	TreesFromAmplitude *TableConfig `mapstructure:"trees_from_amplitude" yaml:"trees_from_amplitude,omitempty"`
}

// TableConfig is an ascending (strict <) threshold table with integer outputs.
type TableConfig struct {
	Thresholds []float64 `mapstructure:"thresholds" yaml:"thresholds"`
	Outputs    []int     `mapstructure:"outputs" yaml:"outputs"`
	Overflow   int       `mapstructure:"overflow" yaml:"overflow"`
}

// Build constructs the table, reporting malformed overrides as configuration errors.
func (t *TableConfig) Build(name string) (*scorer.Table[int], error) {
	if len(t.Thresholds) != len(t.Outputs) {
		return nil, apperr.Configuration("tables.%s: %d thresholds but %d outputs",
			name, len(t.Thresholds), len(t.Outputs))
	}
	steps := make([]scorer.Step[int], len(t.Thresholds))
	for i := range t.Thresholds {
		steps[i] = scorer.Step[int]{Threshold: t.Thresholds[i], Output: t.Outputs[i]}
	}
	table, err := scorer.NewTable(scorer.Below, steps, t.Overflow)
	if err != nil {
		return nil, fmt.Errorf("tables.%s: %w", name, err)
	}
	return table, nil
}

// LoadConfig reads a .planetscope.yml configuration file through viper,
// applying PLANETSCOPE_* environment overrides.
// If path is empty, it looks for .planetscope.yml in the current directory.
// If the default config file is not found, defaults are returned.
// If an explicitly specified config file is not found, an error is returned.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	useDefault := path == ""
	if useDefault {
		path = DefaultConfigFile
	}

	_, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("cli: parsing config %s: %w", path, err)
		}
		slog.Debug("config file read", "path", path)
	case os.IsNotExist(statErr) && useDefault:
		slog.Debug("no config file, using defaults", "path", path)
	default:
		return nil, fmt.Errorf("cli: reading config %s: %w", path, statErr)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("cli: decoding config %s: %w", path, err)
	}

	applyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfig returns a Config with the documented defaults.
func DefaultConfig() *Config {
	cfg := &Config{
		Version: "1",
		Server:  ServerConfig{Gzip: true},
		Archive: ArchiveConfig{Enabled: true},
		Identifier: IdentifierConfig{
			Prefix: pipeline.DefaultPrefix,
		},
	}
	applyDefaults(cfg)
	return cfg
}

// setDefaults registers every key with viper so environment overrides apply.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("version", d.Version)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	v.SetDefault("server.gzip", d.Server.Gzip)
	v.SetDefault("source.base_url", d.Source.BaseURL)
	v.SetDefault("source.token", d.Source.Token)
	v.SetDefault("source.token_env", d.Source.TokenEnv)
	v.SetDefault("source.timeout", d.Source.Timeout)
	v.SetDefault("source.user_agent", d.Source.UserAgent)
	v.SetDefault("archive.enabled", d.Archive.Enabled)
	v.SetDefault("archive.base_url", d.Archive.BaseURL)
	v.SetDefault("archive.timeout", d.Archive.Timeout)
	v.SetDefault("identifier.prefix", d.Identifier.Prefix)
	v.SetDefault("store.path", d.Store.Path)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// applyDefaults fills in zero-value fields with sensible defaults.
func applyDefaults(cfg *Config) {
	if cfg.Version == "" {
		cfg.Version = "1"
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Server.ReadTimeout <= 0 {
		cfg.Server.ReadTimeout = 15 * time.Second
	}
	if cfg.Server.WriteTimeout <= 0 {
		cfg.Server.WriteTimeout = 60 * time.Second
	}
	if cfg.Source.Timeout <= 0 {
		cfg.Source.Timeout = lightcurve.DefaultTimeout
	}
	if cfg.Source.UserAgent == "" {
		cfg.Source.UserAgent = "planetscope"
	}
	if cfg.Source.TokenEnv == "" {
		cfg.Source.TokenEnv = "MAST_API_TOKEN"
	}
	if cfg.Archive.BaseURL == "" {
		cfg.Archive.BaseURL = lightcurve.DefaultArchiveURL
	}
	if cfg.Archive.Timeout <= 0 {
		cfg.Archive.Timeout = lightcurve.DefaultTimeout
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}

	// Pick up the service token from the environment when not configured.
	if cfg.Source.Token == "" {
		if tok := os.Getenv(cfg.Source.TokenEnv); tok != "" {
			cfg.Source.Token = tok
			slog.Debug("light-curve token loaded from environment", "env", cfg.Source.TokenEnv)
		}
	}
}

// Validate checks enumerated settings and builds any table overrides.
func (c *Config) Validate() error {
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return apperr.Configuration("log.format must be text or json, got %q", c.Log.Format)
	}
	if _, err := c.Registry(); err != nil {
		return err
	}
	return nil
}

// RequireSource reports a configuration error when no light-curve service is set.
func (c *Config) RequireSource() error {
	if c.Source.BaseURL == "" {
		return apperr.Configuration("source.base_url must be set (config file or %s_SOURCE_BASE_URL)", EnvPrefix)
	}
	return nil
}

// Registry returns the classifier registry with any configured table overrides applied.
func (c *Config) Registry() (*scorer.Registry, error) {
	reg := scorer.DefaultRegistry()
	overrides := []struct {
		name  string
		table *TableConfig
	}{
		{scorer.TableTreesFromFlux, c.Tables.TreesFromFlux},
		{scorer.TableTreesFromAmplitude, c.Tables.TreesFromAmplitude},
	}
	for _, o := range overrides {
		if o.table == nil {
			continue
		}
		t, err := o.table.Build(o.name)
		if err != nil {
			return nil, err
		}
		reg.Replace(o.name, t)
	}
	return reg, nil
}

// CalculatorOptions returns scorer options reflecting the configured tables.
func (c *Config) CalculatorOptions() ([]scorer.Option, error) {
	var opts []scorer.Option
	if c.Tables.TreesFromFlux != nil {
		t, err := c.Tables.TreesFromFlux.Build(scorer.TableTreesFromFlux)
		if err != nil {
			return nil, err
		}
		opts = append(opts, scorer.WithTreeTable(t))
	}
	return opts, nil
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, apperr.Configuration("log.level %q is not one of debug, info, warn, error", name)
	}
	return level, nil
}

// YAML renders the effective configuration. Secrets are omitted.
func (c *Config) YAML() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("cli: encoding config: %w", err)
	}
	return out, nil
}

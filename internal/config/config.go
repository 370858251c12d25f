// Package config loads topocat settings.
//
// Values are layered, later layers winning:
//  1. built-in defaults
//  2. the config file (see FindConfigPath)
//  3. TOPOCAT_* environment variables (TOPOCAT_DB_PATH sets db-path)
//  4. command-line flags that were set explicitly
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix is the prefix of every environment override
const EnvPrefix = "TOPOCAT_"

// Config holds all configuration for the application
type Config struct {
	// Catalog selects one catalog; empty means all of them
	Catalog string `koanf:"catalog" yaml:"catalog"`
	// Format is the document format for show and the API default
	Format string `koanf:"format" yaml:"format"`
	// TopologyDir holds user topology documents, loaded as the "files" catalog
	TopologyDir string `koanf:"topology-dir" yaml:"topology-dir"`
	DBPath      string `koanf:"db-path" yaml:"db-path"`
	Addr        string `koanf:"addr" yaml:"addr"`
	Watch       bool   `koanf:"watch" yaml:"watch"`
	Workers     int    `koanf:"workers" yaml:"workers"`
	LogLevel    string `koanf:"log-level" yaml:"log-level"`
	LogFile     string `koanf:"log-file" yaml:"log-file"`
	LogJSON     bool   `koanf:"log-json" yaml:"log-json"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Format:   "json",
		DBPath:   "./topocat.db",
		Addr:     ":8080",
		LogLevel: "info",
	}
}

func (c *Config) defaults() map[string]any {
	return map[string]any{
		"catalog":      c.Catalog,
		"format":       c.Format,
		"topology-dir": c.TopologyDir,
		"db-path":      c.DBPath,
		"addr":         c.Addr,
		"watch":        c.Watch,
		"workers":      c.Workers,
		"log-level":    c.LogLevel,
		"log-file":     c.LogFile,
		"log-json":     c.LogJSON,
	}
}

// RegisterFlags adds a flag for every setting to f. Flag defaults mirror
// DefaultConfig so help output is accurate.
func RegisterFlags(f *pflag.FlagSet) {
	d := DefaultConfig()
	f.String("config", "", "config file path (overrides discovery)")
	f.String("catalog", d.Catalog, "catalog name (empty for all)")
	f.String("format", d.Format, "document format: json or yaml")
	f.String("topology-dir", d.TopologyDir, "directory of topology documents")
	f.String("db-path", d.DBPath, "SQLite snapshot database path")
	f.String("addr", d.Addr, "HTTP listen address")
	f.Bool("watch", d.Watch, "reload topology-dir on change")
	f.Int("workers", d.Workers, "verification workers (0 = one per CPU)")
	f.String("log-level", d.LogLevel, "log level")
	f.String("log-file", d.LogFile, "also write logs to this file, rotated")
	f.Bool("log-json", d.LogJSON, "log as JSON")
}

// Load builds the configuration. f may be nil. The returned path is the
// config file that was read, or empty when none was found.
func Load(f *pflag.FlagSet) (*Config, string, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(makeMapProvider(DefaultConfig().defaults()), nil); err != nil {
		return nil, "", fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	path := explicitPath(f)
	if path == "" {
		path = FindConfigPath()
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, path, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	// 3. Environment variables
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, path, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags
	if f != nil {
		if err := k.Load(posflag.Provider(f, ".", k), nil); err != nil {
			return nil, path, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, path, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, path, err
	}

	return &cfg, path, nil
}

// envKey maps TOPOCAT_TOPOLOGY_DIR to topology-dir
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", "-")
}

func explicitPath(f *pflag.FlagSet) string {
	if f == nil {
		return ""
	}
	path, err := f.GetString("config")
	if err != nil {
		return ""
	}
	return path
}

// Validate checks values that have a fixed set of choices
func (c *Config) Validate() error {
	var errs []error
	switch strings.ToLower(c.Format) {
	case "json", "yaml", "yml":
	default:
		errs = append(errs, fmt.Errorf("format: unsupported value %q", c.Format))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers: must not be negative, got %d", c.Workers))
	}
	if c.Watch && c.TopologyDir == "" {
		errs = append(errs, errors.New("watch: requires topology-dir"))
	}
	return errors.Join(errs...)
}

// Helper to use map as a provider
type mapProvider struct {
	m map[string]any
}

func makeMapProvider(m map[string]any) *mapProvider {
	return &mapProvider{m: m}
}

func (p *mapProvider) Read() (map[string]any, error) {
	return p.m, nil
}

func (p *mapProvider) ReadBytes() ([]byte, error) {
	return nil, errors.New("not implemented")
}

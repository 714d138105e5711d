package config

import (
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"avaro.dev/internal/catalog"
)

const envPrefix = "PORTFOLIO_"

// Config holds all application configuration
type Config struct {
	Server  ServerConfig  `koanf:"server" yaml:"server"`
	Content ContentConfig `koanf:"content" yaml:"content"`
	Log     LogConfig     `koanf:"log" yaml:"log"`

	// Catalog is the site content, loaded from Content.Dir after the
	// settings are resolved.
	Catalog *catalog.Catalog `koanf:"-" yaml:"-"`
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Addr     string        `koanf:"addr" yaml:"addr"`
	Origins  []string      `koanf:"origins" yaml:"origins"`
	Shutdown time.Duration `koanf:"shutdown" yaml:"shutdown"`
}

// ContentConfig points at optional content overrides
type ContentConfig struct {
	Dir string `koanf:"dir" yaml:"dir"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level   string            `koanf:"level" yaml:"level"`
	Format  string            `koanf:"format" yaml:"format"`
	File    string            `koanf:"file" yaml:"file"`
	MaxSize int               `koanf:"maxsize" yaml:"maxsize"`
	Backups int               `koanf:"backups" yaml:"backups"`
	Levels  map[string]string `koanf:"levels" yaml:"levels"`
}

// DefaultConfig returns the settings used when nothing overrides them.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:     ":8080",
			Origins:  []string{},
			Shutdown: 10 * time.Second,
		},
		Log: LogConfig{
			Level:   "info",
			Format:  "console",
			MaxSize: 10,
			Backups: 3,
		},
	}
}

// Load resolves settings (defaults, then the YAML file at path if it exists,
// then PORTFOLIO_* env vars) and loads the content catalog.
func Load(path string) (*Config, error) {
	cfg, err := LoadSettings(path)
	if err != nil {
		return nil, err
	}

	cat, err := catalog.Load(cfg.Content.Dir)
	if err != nil {
		return nil, fmt.Errorf("loading content: %w", err)
	}
	cfg.Catalog = cat
	return cfg, nil
}

// LoadSettings is Load without the content catalog.
func LoadSettings(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.ProviderWithValue(envPrefix, ".", envKeyValue), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if os.Getenv(envPrefix+"SERVER_ADDR") == "" {
		if addr := os.Getenv("SERVER_ADDR"); addr != "" {
			cfg.Server.Addr = addr
		} else if port := os.Getenv("PORT"); port != "" {
			cfg.Server.Addr = ":" + port
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envKeyValue maps PORTFOLIO_SERVER_ADDR to server.addr and
// PORTFOLIO_LOG_LEVELS_HTTP to log.levels.http. Origins are a comma-separated
// list.
func envKeyValue(name, value string) (string, interface{}) {
	key := strings.Replace(strings.ToLower(strings.TrimPrefix(name, envPrefix)), "_", ".", 1)
	if component, ok := strings.CutPrefix(key, "log.levels_"); ok {
		key = "log.levels." + component
	}
	if key == "server.origins" {
		origins := []string{}
		for _, o := range strings.Split(value, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		return key, origins
	}
	return key, value
}

var validLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "warning": true, "error": true,
}

var validFormats = map[string]bool{
	"console": true,
	"json":    true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if _, _, err := net.SplitHostPort(c.Server.Addr); err != nil {
		return fmt.Errorf("invalid server.addr %q: %w", c.Server.Addr, err)
	}
	if c.Server.Shutdown < 0 {
		return fmt.Errorf("server.shutdown must be non-negative")
	}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("invalid log.level %q: must be one of trace, debug, info, warn, error", c.Log.Level)
	}
	if !validFormats[c.Log.Format] {
		return fmt.Errorf("invalid log.format %q: must be console or json", c.Log.Format)
	}
	if c.Log.MaxSize < 0 || c.Log.Backups < 0 {
		return fmt.Errorf("log.maxsize and log.backups must be non-negative")
	}
	return nil
}

// YAML renders the settings as YAML.
func (c *Config) YAML() ([]byte, error) {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshalling config: %w", err)
	}
	return data, nil
}

// Save writes the settings to a YAML file.
func (c *Config) Save(path string) error {
	data, err := c.YAML()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

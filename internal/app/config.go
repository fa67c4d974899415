package app

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage backends for owner documents.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// LogConfig selects the logger level and encoding.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Config holds the server's runtime options, usually read from YAML.
type Config struct {
	Listen          string        `yaml:"listen"`          // e.g. :8080
	DataDir         string        `yaml:"dataDir"`         // where stores and the token key live
	Backend         string        `yaml:"backend"`         // file or sqlite
	SQLitePath      string        `yaml:"sqlitePath"`      // default <dataDir>/meteradmin.db
	TokenTTL        time.Duration `yaml:"tokenTTL"`        // default 24h
	TokenSecretFile string        `yaml:"tokenSecretFile"` // default <dataDir>/token.key
	AllowedOrigins  []string      `yaml:"allowedOrigins"`  // empty allows any origin
	Log             LogConfig     `yaml:"log"`
}

// ClientConfig holds the CLI's wiring options.
type ClientConfig struct {
	Home      string       // config directory, e.g. $HOME/.meteradmin
	ServerURL string       // server base URL, e.g. http://127.0.0.1:8080
	HTTP      *http.Client // optional; defaults to http.DefaultClient
}

// ApplyDefaults fills every unset field.
func (c *Config) ApplyDefaults() {
	if c.Listen == "" {
		c.Listen = ":8080"
	}
	if c.DataDir == "" {
		c.DataDir = "data"
	}
	if c.Backend == "" {
		c.Backend = BackendFile
	}
	if c.SQLitePath == "" {
		c.SQLitePath = filepath.Join(c.DataDir, "meteradmin.db")
	}
	if c.TokenTTL == 0 {
		c.TokenTTL = 24 * time.Hour
	}
	if c.TokenSecretFile == "" {
		c.TokenSecretFile = filepath.Join(c.DataDir, "token.key")
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
}

// Validate reports options that cannot work.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("backend %q: want %s or %s", c.Backend, BackendFile, BackendSQLite)
	}
	if c.TokenTTL < time.Minute {
		return fmt.Errorf("tokenTTL %s is shorter than a minute", c.TokenTTL)
	}
	return nil
}

// LoadConfig reads a YAML config file. An empty path yields the defaults.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config file: %w", err)
		}
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gravitrone/taxdesk/internal/api"
)

// EnvBaseURL overrides base_url from the config file when set.
const EnvBaseURL = "TAXDESK_BASE_URL"

// Config holds CLI configuration stored at ~/.taxdesk/config.
type Config struct {
	BaseURL       string        `yaml:"base_url"`
	RecordsPath   string        `yaml:"records_path,omitempty"`
	CountriesPath string        `yaml:"countries_path,omitempty"`
	Timeout       time.Duration `yaml:"timeout,omitempty"`
	LogLevel      string        `yaml:"log_level,omitempty"`
	LogFile       string        `yaml:"log_file,omitempty"`
}

// Default returns the configuration used when no file exists. LogLevel is
// left empty so LOG_LEVEL applies.
func Default() *Config {
	return &Config{
		BaseURL:       api.DefaultBaseURL,
		RecordsPath:   api.DefaultRecordsPath,
		CountriesPath: api.DefaultCountriesPath,
		Timeout:       api.DefaultTimeout,
	}
}

// Dir returns the directory holding config and logs.
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".taxdesk")
}

// Path returns the config file path.
func Path() string {
	return filepath.Join(Dir(), "config")
}

// LogPath returns the log file for the interactive client.
func (c *Config) LogPath() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(Dir(), "taxdesk.log")
}

// Load reads and parses the config file. Returns error if missing or insecure.
func Load() (*Config, error) {
	path := Path()

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("config not found: %w", err)
	}

	perm := info.Mode().Perm()
	if perm != 0600 {
		return nil, fmt.Errorf("config permissions too open: %04o (want 0600)", perm)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault is Load, except a missing file yields Default.
func LoadOrDefault() (*Config, error) {
	cfg, err := Load()
	if errors.Is(err, os.ErrNotExist) {
		cfg = Default()
		cfg.applyEnv()
		return cfg, cfg.Validate()
	}
	return cfg, err
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvBaseURL)); v != "" {
		c.BaseURL = v
	}
}

// Validate checks that the base URL is an absolute http(s) URL.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("config base_url must be an http(s) URL, got %q", c.BaseURL)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("config timeout must not be negative")
	}
	return nil
}

// Client builds an API client from the configuration.
func (c *Config) Client() *api.Client {
	return api.NewClient(
		c.BaseURL,
		api.WithPaths(c.RecordsPath, c.CountriesPath),
		api.WithTimeout(c.Timeout),
	)
}

// Save writes the config to disk with secure permissions.
func (c *Config) Save() error {
	if err := c.Validate(); err != nil {
		return err
	}

	path := Path()
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}

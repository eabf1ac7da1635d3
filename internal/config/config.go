package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const defaultTimeout = 30 * time.Second

type Config struct {
	Organizations OrganizationConfig `toml:"organizations"`
	GitHub        GitHubConfig       `toml:"github"`
	Filter        FilterConfig       `toml:"filter"`
	Cache         CacheConfig        `toml:"cache"`
}

type OrganizationConfig struct {
	Orgs []string `toml:"orgs"`
}

type GitHubConfig struct {
	BaseURL string `toml:"base_url"`
	Timeout string `toml:"timeout"`
}

type FilterConfig struct {
	License string `toml:"license"`
}

type CacheConfig struct {
	Dir string `toml:"dir"`
	TTL string `toml:"ttl"`
}

func Load(path string) (*Config, error) {
	configPath, err := FindConfigPath(path)
	if err != nil {
		return &Config{}, nil
	}

	return LoadFile(configPath)
}

func FindConfigPath(path string) (string, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	configPaths := []string{"./config.toml"}
	if homeDir != "" {
		configPaths = append(configPaths,
			filepath.Join(homeDir, ".config", "ezorg", "config.toml"),
			filepath.Join(homeDir, ".ezorg.toml"),
		)
	}

	for _, p := range configPaths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("no config file found")
}

func LoadFile(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the duration fields so that bad values fail at load time.
func (c *Config) Validate() error {
	if c.GitHub.Timeout != "" {
		if _, err := time.ParseDuration(c.GitHub.Timeout); err != nil {
			return fmt.Errorf("invalid github.timeout: %w", err)
		}
	}
	if c.Cache.TTL != "" {
		if _, err := time.ParseDuration(c.Cache.TTL); err != nil {
			return fmt.Errorf("invalid cache.ttl: %w", err)
		}
	}
	return nil
}

func (c *Config) GetOrganizations() []string {
	return c.Organizations.Orgs
}

// GetBaseURL returns the configured API root, or "" for the default.
func (c *Config) GetBaseURL() string {
	if env := os.Getenv("EZORG_API_URL"); env != "" {
		return env
	}
	return c.GitHub.BaseURL
}

func (c *Config) GetTimeout() time.Duration {
	if c.GitHub.Timeout == "" {
		return defaultTimeout
	}
	d, err := time.ParseDuration(c.GitHub.Timeout)
	if err != nil {
		return defaultTimeout
	}
	return d
}

// GetCacheTTL returns 0 when unset so the cache keeps its own default.
func (c *Config) GetCacheTTL() time.Duration {
	d, err := time.ParseDuration(c.Cache.TTL)
	if err != nil {
		return 0
	}
	return d
}

func (c *Config) GetCacheDir() string {
	dir := c.Cache.Dir
	if strings.HasPrefix(dir, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, dir[2:])
		}
	}
	return dir
}

func (c *Config) GetLicense() string {
	return strings.TrimSpace(c.Filter.License)
}

// Package config loads service configuration from TOML files and SEGMENTER_*
// environment variables.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/segmenter/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvSegmenterEnv             = "SEGMENTER_ENV"
	EnvSegmenterShutdownTimeout = "SEGMENTER_SHUTDOWN_TIMEOUT"
	EnvSegmenterVersion         = "SEGMENTER_VERSION"
)

var storageEnv = &storage.Env{
	Provider:         "SEGMENTER_ARTIFACTS_PROVIDER",
	Path:             "SEGMENTER_ARTIFACTS_PATH",
	ContainerName:    "SEGMENTER_ARTIFACTS_CONTAINER_NAME",
	Prefix:           "SEGMENTER_ARTIFACTS_PREFIX",
	ConnectionString: "SEGMENTER_ARTIFACTS_CONNECTION_STRING",
	AccountURL:       "SEGMENTER_ARTIFACTS_ACCOUNT_URL",
}

// Config is the root configuration for the segmenter service.
type Config struct {
	Server          ServerConfig    `toml:"server"`
	Artifacts       ArtifactsConfig `toml:"artifacts"`
	Profiles        ProfilesConfig  `toml:"profiles"`
	API             APIConfig       `toml:"api"`
	Web             WebConfig       `toml:"web"`
	ShutdownTimeout string          `toml:"shutdown_timeout"`
	Version         string          `toml:"version"`
}

// Env returns the SEGMENTER_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvSegmenterEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.Finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Parse decodes a TOML document into a Config without finalizing it.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Artifacts.Merge(&overlay.Artifacts)
	c.Profiles.Merge(&overlay.Profiles)
	c.API.Merge(&overlay.API)
	c.Web.Merge(&overlay.Web)
}

// Finalize applies defaults, environment overrides, and validation to every section.
func (c *Config) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Artifacts.Finalize(); err != nil {
		return fmt.Errorf("artifacts: %w", err)
	}
	if err := c.Profiles.Finalize(); err != nil {
		return fmt.Errorf("profiles: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Web.Finalize(); err != nil {
		return fmt.Errorf("web: %w", err)
	}
	if c.API.BasePath == c.Web.BasePath {
		return fmt.Errorf("api and web share base path %s", c.API.BasePath)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvSegmenterShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvSegmenterVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

func overlayPath() string {
	if env := os.Getenv(EnvSegmenterEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

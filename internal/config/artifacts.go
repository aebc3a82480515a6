package config

import (
	"fmt"
	"os"
	"path"

	"github.com/JaimeStill/segmenter/internal/artifacts"
	"github.com/JaimeStill/segmenter/pkg/storage"
)

const (
	EnvArtifactsManifest = "SEGMENTER_ARTIFACTS_MANIFEST"
	EnvProfilesPath      = "SEGMENTER_PROFILES_PATH"
)

// ArtifactsConfig locates the artifact bundle: where it is stored and which
// manifest object describes it.
type ArtifactsConfig struct {
	Manifest string         `toml:"manifest"`
	Storage  storage.Config `toml:"storage"`
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *ArtifactsConfig) Finalize() error {
	if c.Manifest == "" {
		c.Manifest = artifacts.DefaultManifestKey
	}
	if v := os.Getenv(EnvArtifactsManifest); v != "" {
		c.Manifest = v
	}

	if path.IsAbs(c.Manifest) {
		return fmt.Errorf("manifest key must be relative: %s", c.Manifest)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *ArtifactsConfig) Merge(overlay *ArtifactsConfig) {
	if overlay.Manifest != "" {
		c.Manifest = overlay.Manifest
	}
	c.Storage.Merge(&overlay.Storage)
}

// ProfilesConfig points at an optional profile catalog replacing the built-in one.
type ProfilesConfig struct {
	Path string `toml:"path"`
}

// Finalize applies environment variable overrides. An empty path selects the
// built-in catalog.
func (c *ProfilesConfig) Finalize() error {
	if v := os.Getenv(EnvProfilesPath); v != "" {
		c.Path = v
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *ProfilesConfig) Merge(overlay *ProfilesConfig) {
	if overlay.Path != "" {
		c.Path = overlay.Path
	}
}

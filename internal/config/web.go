package config

import (
	"fmt"
	"os"
	"strings"
)

// WebConfig holds settings for the server-rendered segmentation form.
type WebConfig struct {
	BasePath string `toml:"base_path"`
	Title    string `toml:"title"`
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *WebConfig) Finalize() error {
	if c.BasePath == "" {
		c.BasePath = "/app"
	}
	if c.Title == "" {
		c.Title = "Customer Segmentation"
	}
	if v := os.Getenv("SEGMENTER_WEB_BASE_PATH"); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv("SEGMENTER_WEB_TITLE"); v != "" {
		c.Title = v
	}

	if !strings.HasPrefix(c.BasePath, "/") || c.BasePath == "/" {
		return fmt.Errorf("invalid base_path: %q", c.BasePath)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *WebConfig) Merge(overlay *WebConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.Title != "" {
		c.Title = overlay.Title
	}
}

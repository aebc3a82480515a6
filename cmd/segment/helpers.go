package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/segmenter/internal/artifacts"
	"github.com/JaimeStill/segmenter/internal/config"
	"github.com/JaimeStill/segmenter/internal/profiles"
	"github.com/JaimeStill/segmenter/internal/segments"
	"github.com/JaimeStill/segmenter/pkg/storage"
)

func (o *rootOptions) logger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelError
	if o.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// source resolves the bundle storage, manifest key and catalog path. Flags win
// over configuration loaded from config.toml and SEGMENTER_* variables.
func (o *rootOptions) source() (*storage.Config, string, string, error) {
	var (
		store    storage.Config
		manifest string
		catalog  string
	)

	if o.bundle != "" {
		store = storage.Config{Provider: storage.ProviderLocal, Path: o.bundle}
	} else {
		cfg, err := config.Load()
		if err != nil {
			return nil, "", "", err
		}
		store = cfg.Artifacts.Storage
		manifest = cfg.Artifacts.Manifest
		catalog = cfg.Profiles.Path
	}

	if o.manifest != "" {
		manifest = o.manifest
	}
	if o.profiles != "" {
		catalog = o.profiles
	}
	return &store, manifest, catalog, nil
}

// bundleSource is a resolved artifact store plus the keys and paths read from it.
type bundleSource struct {
	store    storage.System
	manifest string
	catalog  string
}

func (o *rootOptions) open(cmd *cobra.Command) (*bundleSource, error) {
	storeCfg, manifest, catalog, err := o.source()
	if err != nil {
		return nil, err
	}

	store, err := storage.New(storeCfg, o.logger(cmd))
	if err != nil {
		return nil, err
	}
	return &bundleSource{store: store, manifest: manifest, catalog: catalog}, nil
}

func (s *bundleSource) load(cmd *cobra.Command, logger *slog.Logger) (*artifacts.Bundle, *profiles.Catalog, error) {
	bundle, err := artifacts.Load(cmd.Context(), s.store, s.manifest, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("load bundle from %s: %w", s.store.Location(), err)
	}

	catalog, err := profiles.Load(s.catalog)
	if err != nil {
		return nil, nil, err
	}
	return bundle, catalog, nil
}

func (o *rootOptions) loadBundle(cmd *cobra.Command) (*artifacts.Bundle, *profiles.Catalog, error) {
	src, err := o.open(cmd)
	if err != nil {
		return nil, nil, err
	}
	return src.load(cmd, o.logger(cmd))
}

func (o *rootOptions) engine(cmd *cobra.Command) (*segments.Engine, error) {
	bundle, catalog, err := o.loadBundle(cmd)
	if err != nil {
		return nil, err
	}
	return segments.New(bundle, catalog, o.logger(cmd))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

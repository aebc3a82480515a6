// Package infrastructure provides core service initialization for application startup.
// It assembles the dependencies domain systems require: lifecycle coordination,
// logging, artifact storage, the profile catalog, and the loaded artifact bundle.
package infrastructure

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/JaimeStill/segmenter/internal/artifacts"
	"github.com/JaimeStill/segmenter/internal/config"
	"github.com/JaimeStill/segmenter/internal/profiles"
	"github.com/JaimeStill/segmenter/pkg/lifecycle"
	"github.com/JaimeStill/segmenter/pkg/storage"
)

// ErrNotLoaded is returned by Bundle before the startup hook has loaded it.
var ErrNotLoaded = errors.New("artifact bundle not loaded")

// Infrastructure holds the core systems required by all domain modules.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Storage   storage.System
	Profiles  *profiles.Catalog

	manifest string
	bundle   *artifacts.Bundle
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	return NewWithLogger(cfg, slog.New(slog.NewTextHandler(os.Stderr, nil)))
}

// NewWithLogger is New with a caller-supplied logger.
func NewWithLogger(cfg *config.Config, logger *slog.Logger) (*Infrastructure, error) {
	store, err := storage.New(&cfg.Artifacts.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	catalog, err := profiles.Load(cfg.Profiles.Path)
	if err != nil {
		return nil, fmt.Errorf("profiles init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lifecycle.New(),
		Logger:    logger,
		Storage:   store,
		Profiles:  catalog,
		manifest:  cfg.Artifacts.Manifest,
	}, nil
}

// Start registers storage and the artifact bundle load with the lifecycle
// coordinator. The bundle is available from Bundle once WaitForStartup succeeds.
func (i *Infrastructure) Start() error {
	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}

	logger := i.Logger.With("system", "artifacts")
	i.Lifecycle.OnStartup(func() error {
		b, err := artifacts.Load(i.Lifecycle.Context(), i.Storage, i.manifest, logger)
		if err != nil {
			return fmt.Errorf("artifact bundle: %w", err)
		}
		i.bundle = b
		return nil
	})

	return nil
}

// Bundle returns the loaded artifact bundle. It must only be called after the
// lifecycle's WaitForStartup has returned.
func (i *Infrastructure) Bundle() (*artifacts.Bundle, error) {
	if i.bundle == nil {
		return nil, ErrNotLoaded
	}
	return i.bundle, nil
}

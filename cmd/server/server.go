package main

import (
	"fmt"
	"time"

	"github.com/JaimeStill/segmenter/internal/config"
	"github.com/JaimeStill/segmenter/internal/infrastructure"
)

// Server owns the infrastructure and, once startup succeeds, the HTTP listener.
type Server struct {
	cfg     *config.Config
	infra   *infrastructure.Infrastructure
	modules *Modules
	http    *httpServer
}

// NewServer initializes infrastructure. Modules are built in Start, after the
// artifact bundle has loaded.
func NewServer(cfg *config.Config) (*Server, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	infra.Logger.Info(
		"server initialized",
		"addr", cfg.Server.Addr(),
		"version", cfg.Version,
		"artifacts", infra.Storage.Location(),
	)

	return &Server{
		cfg:   cfg,
		infra: infra,
	}, nil
}

// Start runs startup hooks, builds the modules around the loaded bundle, and
// begins listening. A bundle that fails to load or validate aborts startup.
func (s *Server) Start() error {
	s.infra.Logger.Info("starting service")

	if err := s.infra.Start(); err != nil {
		return err
	}
	if err := s.infra.Lifecycle.WaitForStartup(); err != nil {
		return err
	}

	modules, err := NewModules(s.infra, s.cfg)
	if err != nil {
		return fmt.Errorf("modules: %w", err)
	}
	s.modules = modules

	router := buildRouter(s.infra, s.cfg)
	if err := modules.Mount(router); err != nil {
		return err
	}

	s.http = newHTTPServer(&s.cfg.Server, router, s.infra.Logger)
	if err := s.http.Start(s.infra.Lifecycle); err != nil {
		return err
	}

	s.infra.Logger.Info("all subsystems ready")
	return nil
}

// Shutdown cancels the lifecycle context and waits for shutdown hooks.
func (s *Server) Shutdown(timeout time.Duration) error {
	s.infra.Logger.Info("initiating shutdown")
	return s.infra.Lifecycle.Shutdown(timeout)
}

package api

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/segmenter/internal/config"
	"github.com/JaimeStill/segmenter/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, domain *Domain, cfg *config.Config) error {
	serveDocument, err := buildDocument(cfg, domain).Handler()
	if err != nil {
		return fmt.Errorf("openapi: %w", err)
	}

	routes.Register(
		mux,
		domain.Segments.Routes(),
		domain.Profiles.Routes(),
		routes.Group{
			Routes: []routes.Route{
				{Method: "GET", Pattern: cfg.API.OpenAPI.Path, Handler: serveDocument},
			},
		},
	)
	return nil
}

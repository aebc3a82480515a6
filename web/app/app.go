// Package app serves the server-rendered customer segmentation form.
package app

import (
	"embed"
	"log/slog"
	"net/http"
	"time"

	"github.com/JaimeStill/segmenter/internal/config"
	"github.com/JaimeStill/segmenter/internal/segments"
	"github.com/JaimeStill/segmenter/pkg/middleware"
	"github.com/JaimeStill/segmenter/pkg/module"
	"github.com/JaimeStill/segmenter/pkg/web"
)

//go:embed templates static
var appFS embed.FS

const (
	layout       = "app"
	staticMaxAge = time.Hour
)

var (
	formView     = web.ViewDef{Template: "index.html"}
	notFoundView = web.ViewDef{Template: "not-found.html", Title: "Not Found"}
)

// NewModule creates the web module serving the segmentation form at cfg.BasePath.
func NewModule(cfg *config.WebConfig, sys segments.System, logger *slog.Logger) (*module.Module, error) {
	ts, err := web.NewTemplateSet(
		appFS,
		"templates/layouts/*.html",
		layout,
		"templates/views",
		cfg.BasePath,
		[]web.ViewDef{formView, notFoundView},
	)
	if err != nil {
		return nil, err
	}

	logger = logger.With("module", "app")
	h := newHandler(sys, ts, cfg.Title, logger)

	static, err := web.Static(appFS, "static", "/static", staticMaxAge)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.form)
	mux.HandleFunc("POST /{$}", h.submit)
	mux.Handle("GET /static/", static)
	mux.HandleFunc("/", ts.Handler(notFoundView, http.StatusNotFound))

	m, err := module.New(cfg.BasePath, mux)
	if err != nil {
		return nil, err
	}
	m.Use(middleware.RequestID())
	m.Use(middleware.Logger(logger))

	return m, nil
}

// Package module mounts self-contained HTTP handlers under single-level path prefixes,
// each with its own middleware stack.
package module

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/JaimeStill/segmenter/pkg/middleware"
)

var (
	// ErrInvalidPrefix indicates a prefix that is not a single-level sub-path such as "/api".
	ErrInvalidPrefix = errors.New("invalid module prefix")
	// ErrDuplicatePrefix indicates two modules mounted at the same prefix.
	ErrDuplicatePrefix = errors.New("module prefix already mounted")
)

// Module serves requests under one prefix. The prefix is stripped before the
// request reaches the inner handler, so "/api/segments" arrives as "/segments".
type Module struct {
	prefix     string
	router     http.Handler
	middleware middleware.System
}

// New creates a Module mounted at prefix.
func New(prefix string, router http.Handler) (*Module, error) {
	if err := validatePrefix(prefix); err != nil {
		return nil, err
	}
	return &Module{
		prefix:     prefix,
		router:     router,
		middleware: middleware.New(),
	}, nil
}

// Prefix returns the module's path prefix.
func (m *Module) Prefix() string {
	return m.prefix
}

// Use adds middleware to the module's stack. Middleware registered first runs outermost.
func (m *Module) Use(mw func(http.Handler) http.Handler) {
	m.middleware.Use(mw)
}

// Handler returns the inner router wrapped with the module's middleware.
func (m *Module) Handler() http.Handler {
	return m.middleware.Apply(m.router)
}

// Serve strips the prefix and dispatches through the middleware stack.
func (m *Module) Serve(w http.ResponseWriter, req *http.Request) {
	inner := req.Clone(req.Context())
	inner.URL.Path = strings.TrimPrefix(req.URL.Path, m.prefix)
	inner.URL.RawPath = ""
	m.Handler().ServeHTTP(w, inner)
}

func validatePrefix(prefix string) error {
	if prefix == "" || prefix == "/" || !strings.HasPrefix(prefix, "/") || strings.Count(prefix, "/") != 1 {
		return fmt.Errorf("%w: %q", ErrInvalidPrefix, prefix)
	}
	return nil
}

package module

import (
	"fmt"
	"net/http"
	"strings"
)

// Router dispatches to mounted modules by first path segment and sends every
// other request to a native ServeMux.
type Router struct {
	modules map[string]*Module
	native  *http.ServeMux
}

// NewRouter creates an empty Router.
func NewRouter() *Router {
	return &Router{
		modules: make(map[string]*Module),
		native:  http.NewServeMux(),
	}
}

// HandleNative registers a handler outside any module.
func (r *Router) HandleNative(pattern string, handler http.HandlerFunc) {
	r.native.HandleFunc(pattern, handler)
}

// Mount registers a module at its prefix.
func (r *Router) Mount(m *Module) error {
	if _, ok := r.modules[m.prefix]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicatePrefix, m.prefix)
	}
	r.modules[m.prefix] = m
	return nil
}

// ServeHTTP implements http.Handler. A bare module prefix such as "/app" is
// redirected to "/app/" so relative links and form actions resolve inside it.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	first, rest, _ := strings.Cut(strings.TrimPrefix(req.URL.Path, "/"), "/")
	m, ok := r.modules["/"+first]
	if !ok {
		r.native.ServeHTTP(w, req)
		return
	}

	if rest == "" && !strings.HasSuffix(req.URL.Path, "/") {
		target := req.URL.Path + "/"
		if req.URL.RawQuery != "" {
			target += "?" + req.URL.RawQuery
		}
		http.Redirect(w, req, target, http.StatusMovedPermanently)
		return
	}

	m.Serve(w, req)
}

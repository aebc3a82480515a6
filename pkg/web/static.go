package web

import (
	"fmt"
	"io/fs"
	"net/http"
	"strings"
	"time"
)

// Static serves the files under subdir of fsys at urlPrefix. Directory
// listings are not served, and responses may be cached for maxAge.
func Static(fsys fs.FS, subdir, urlPrefix string, maxAge time.Duration) (http.Handler, error) {
	sub, err := fs.Sub(fsys, subdir)
	if err != nil {
		return nil, fmt.Errorf("static %s: %w", subdir, err)
	}

	files := http.StripPrefix(urlPrefix, http.FileServer(http.FS(sub)))
	cache := fmt.Sprintf("public, max-age=%d", int(maxAge.Seconds()))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Cache-Control", cache)
		files.ServeHTTP(w, r)
	}), nil
}

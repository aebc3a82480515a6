// Package web renders server-side pages from embedded templates and serves
// their static assets.
package web

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
)

// ViewDef names a view template and its page title.
type ViewDef struct {
	Template string
	Title    string
}

// ViewData is passed to every template. BasePath is the module mount point and
// lets templates build links with {{ .BasePath }}.
type ViewData struct {
	Title    string
	BasePath string
	Data     any
}

// TemplateSet holds one parsed template per view, each a clone of the shared
// layouts. All parsing happens in NewTemplateSet.
type TemplateSet struct {
	views    map[string]*template.Template
	layout   string
	basePath string
}

// NewTemplateSet parses the layouts matching layoutGlob, then each view under
// viewDir into its own clone. Pages execute the layout template named layout.
func NewTemplateSet(fsys fs.FS, layoutGlob, layout, viewDir, basePath string, views []ViewDef) (*TemplateSet, error) {
	layouts, err := template.ParseFS(fsys, layoutGlob)
	if err != nil {
		return nil, fmt.Errorf("parse layouts: %w", err)
	}
	if layouts.Lookup(layout) == nil {
		return nil, fmt.Errorf("layout %q not defined by %s", layout, layoutGlob)
	}

	ts := &TemplateSet{
		views:    make(map[string]*template.Template, len(views)),
		layout:   layout,
		basePath: basePath,
	}

	for _, v := range views {
		t, err := layouts.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layouts for %s: %w", v.Template, err)
		}
		if _, err := t.ParseFS(fsys, path.Join(viewDir, v.Template)); err != nil {
			return nil, fmt.Errorf("parse view %s: %w", v.Template, err)
		}
		ts.views[v.Template] = t
	}

	return ts, nil
}

// BasePath returns the mount point passed to templates.
func (ts *TemplateSet) BasePath() string {
	return ts.basePath
}

// Handler returns a handler that renders view with the given status and no data.
func (ts *TemplateSet) Handler(view ViewDef, status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ts.Render(w, status, view.Template, ViewData{Title: view.Title}); err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	}
}

// Render executes a view into a buffer and writes it with status. Nothing is
// written when the view is unknown or execution fails.
func (ts *TemplateSet) Render(w http.ResponseWriter, status int, view string, data ViewData) error {
	t, ok := ts.views[view]
	if !ok {
		return fmt.Errorf("view not found: %s", view)
	}
	if data.BasePath == "" {
		data.BasePath = ts.basePath
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, ts.layout, data); err != nil {
		return fmt.Errorf("render %s: %w", view, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

package web_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/JaimeStill/segmenter/pkg/web"
)

var testFS = fstest.MapFS{
	"templates/layouts/app.html": {Data: []byte(
		`{{ define "app" }}<title>{{ .Title }}</title><base href="{{ .BasePath }}/">{{ template "content" . }}{{ end }}`,
	)},
	"templates/views/home.html": {Data: []byte(
		`{{ define "content" }}home {{ .Data }}{{ end }}`,
	)},
	"templates/views/missing.html": {Data: []byte(
		`{{ define "content" }}not found{{ end }}`,
	)},
	"templates/views/broken.html": {Data: []byte(
		`{{ define "content" }}{{ .Data.Nope }}{{ end }}`,
	)},
	"static/app.css": {Data: []byte("body{margin:0}")},
}

var views = []web.ViewDef{
	{Template: "home.html", Title: "Home"},
	{Template: "missing.html", Title: "Not Found"},
	{Template: "broken.html"},
}

func newTemplateSet(t *testing.T) *web.TemplateSet {
	t.Helper()
	ts, err := web.NewTemplateSet(testFS, "templates/layouts/*.html", "app", "templates/views", "/app", views)
	if err != nil {
		t.Fatalf("template set: %v", err)
	}
	return ts
}

func TestRender(t *testing.T) {
	ts := newTemplateSet(t)

	rec := httptest.NewRecorder()
	err := ts.Render(rec, http.StatusOK, "home.html", web.ViewData{Title: "Home", Data: "segments"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	body := rec.Body.String()
	for _, want := range []string{"<title>Home</title>", `href="/app/"`, "home segments"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q: %s", want, body)
		}
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("content-type: got %s", ct)
	}
}

func TestRenderFailuresWriteNothing(t *testing.T) {
	ts := newTemplateSet(t)

	tests := []struct {
		name string
		view string
		data any
	}{
		{"unknown view", "absent.html", nil},
		{"execution error", "broken.html", 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			if err := ts.Render(rec, http.StatusOK, tt.view, web.ViewData{Data: tt.data}); err == nil {
				t.Fatal("expected error")
			}
			if rec.Body.Len() != 0 || rec.Header().Get("Content-Type") != "" {
				t.Errorf("partial response written: %q", rec.Body.String())
			}
		})
	}
}

func TestNewTemplateSetErrors(t *testing.T) {
	if _, err := web.NewTemplateSet(testFS, "templates/layouts/*.html", "app", "templates/views", "/app",
		[]web.ViewDef{{Template: "absent.html"}}); err == nil {
		t.Error("expected error for missing view file")
	}
	if _, err := web.NewTemplateSet(testFS, "templates/layouts/*.html", "shell", "templates/views", "/app",
		views); err == nil {
		t.Error("expected error for undefined layout")
	}
}

func TestHandlerAndStatic(t *testing.T) {
	ts := newTemplateSet(t)

	static, err := web.Static(testFS, "static", "/static", time.Hour)
	if err != nil {
		t.Fatalf("static: %v", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", ts.Handler(views[0], http.StatusOK))
	mux.Handle("GET /static/", static)
	mux.HandleFunc("/", ts.Handler(views[1], http.StatusNotFound))

	tests := []struct {
		path   string
		status int
		want   string
	}{
		{"/", http.StatusOK, "home"},
		{"/static/app.css", http.StatusOK, "margin:0"},
		{"/static/", http.StatusNotFound, ""},
		{"/nowhere", http.StatusNotFound, "not found"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest("GET", tt.path, nil))

			if rec.Code != tt.status {
				t.Errorf("status: got %d, want %d", rec.Code, tt.status)
			}
			if !strings.Contains(rec.Body.String(), tt.want) {
				t.Errorf("body missing %q: %s", tt.want, rec.Body.String())
			}
		})
	}
}

func TestStaticCacheHeader(t *testing.T) {
	static, err := web.Static(testFS, "static", "/static", time.Hour)
	if err != nil {
		t.Fatalf("static: %v", err)
	}

	rec := httptest.NewRecorder()
	static.ServeHTTP(rec, httptest.NewRequest("GET", "/static/app.css", nil))

	if got := rec.Header().Get("Cache-Control"); got != "public, max-age=3600" {
		t.Errorf("cache-control: got %q", got)
	}
}

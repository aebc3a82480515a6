// Package openapi builds and serves an OpenAPI 3.1 description of the JSON API.
package openapi

import (
	"encoding/json"
	"fmt"
	"hash/crc32"
	"net/http"
)

// Document is an OpenAPI 3.1 document.
type Document struct {
	OpenAPI    string               `json:"openapi"`
	Info       *Info                `json:"info"`
	Servers    []*Server            `json:"servers,omitempty"`
	Tags       []*Tag               `json:"tags,omitempty"`
	Paths      map[string]*PathItem `json:"paths"`
	Components *Components          `json:"components,omitempty"`
}

// NewDocument creates a Document titled and described by cfg, with the shared
// error components already registered.
func NewDocument(cfg *Config, version string) *Document {
	return &Document{
		OpenAPI: "3.1.0",
		Info: &Info{
			Title:       cfg.Title,
			Description: cfg.Description,
			Version:     version,
		},
		Components: NewComponents(),
		Paths:      make(map[string]*PathItem),
	}
}

// AddServer appends a server URL.
func (d *Document) AddServer(url string) {
	d.Servers = append(d.Servers, &Server{URL: url})
}

// AddTag declares an operation tag.
func (d *Document) AddTag(name, description string) {
	d.Tags = append(d.Tags, &Tag{Name: name, Description: description})
}

// Path returns the PathItem for pattern, creating it on first use.
func (d *Document) Path(pattern string) *PathItem {
	item, ok := d.Paths[pattern]
	if !ok {
		item = &PathItem{}
		d.Paths[pattern] = item
	}
	return item
}

// Handler serializes the document once and returns a handler serving it.
// Requests carrying a matching If-None-Match receive 304.
func (d *Document) Handler() (http.HandlerFunc, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal openapi document: %w", err)
	}
	etag := fmt.Sprintf(`"%08x"`, crc32.ChecksumIEEE(data))

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("ETag", etag)
		if r.Header.Get("If-None-Match") == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(data)
	}, nil
}

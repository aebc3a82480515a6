package artifacts

import (
	"fmt"
	"path"

	"gopkg.in/yaml.v3"

	"github.com/JaimeStill/segmenter/internal/features"
)

// DefaultManifestKey is the manifest object name inside a bundle location.
const DefaultManifestKey = "manifest.yaml"

// Manifest describes an artifact bundle: the ordered features it was fitted on,
// the object keys of its three artifacts, and its declared cluster count.
type Manifest struct {
	Name      string           `yaml:"name"`
	Version   string           `yaml:"version"`
	Variant   string           `yaml:"variant,omitempty"`
	Features  []features.Field `yaml:"features,omitempty"`
	Clusters  int              `yaml:"clusters,omitempty"`
	Artifacts ArtifactKeys     `yaml:"artifacts"`
}

// ArtifactKeys names the artifact objects relative to the manifest.
type ArtifactKeys struct {
	Scaler    string `yaml:"scaler"`
	Reducer   string `yaml:"reducer"`
	Clusterer string `yaml:"clusterer"`
}

// List returns the keys in scaler, reducer, clusterer order.
func (k ArtifactKeys) List() []string {
	return []string{k.Scaler, k.Reducer, k.Clusterer}
}

// ResolveKeys returns the artifact keys relative to the storage root for a
// manifest stored at manifestKey. Artifact keys are relative to the manifest.
func (m *Manifest) ResolveKeys(manifestKey string) ArtifactKeys {
	dir := path.Dir(manifestKey)
	resolve := func(key string) string {
		if dir == "." {
			return key
		}
		return path.Join(dir, key)
	}
	return ArtifactKeys{
		Scaler:    resolve(m.Artifacts.Scaler),
		Reducer:   resolve(m.Artifacts.Reducer),
		Clusterer: resolve(m.Artifacts.Clusterer),
	}
}

// ParseManifest decodes and defaults a manifest document.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}

	if m.Artifacts.Scaler == "" {
		m.Artifacts.Scaler = "scaler.json"
	}
	if m.Artifacts.Reducer == "" {
		m.Artifacts.Reducer = "pca.json"
	}
	if m.Artifacts.Clusterer == "" {
		m.Artifacts.Clusterer = "kmeans.json"
	}
	if m.Clusters < 0 {
		return nil, fmt.Errorf("%w: clusters must not be negative", ErrInvalidManifest)
	}

	return &m, nil
}

// Schema resolves the manifest's feature schema. Listed features take precedence
// over a named reference variant.
func (m *Manifest) Schema() (features.Schema, error) {
	var schema features.Schema

	switch {
	case len(m.Features) > 0:
		schema = features.Schema{Name: m.Name, Fields: m.Features}
	case m.Variant != "":
		s, err := features.Variant(m.Variant)
		if err != nil {
			return features.Schema{}, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
		}
		schema = s
	default:
		return features.Schema{}, fmt.Errorf("%w: neither features nor variant given", ErrInvalidManifest)
	}

	if err := schema.Validate(); err != nil {
		return features.Schema{}, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	return schema, nil
}

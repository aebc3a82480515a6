package artifacts

import (
	"encoding/json"
	"fmt"
)

// ScalerDocument is the serialized form of a fitted standard scaler.
type ScalerDocument struct {
	Kind         string    `json:"kind"`
	Mean         []float64 `json:"mean"`
	Scale        []float64 `json:"scale"`
	WithMean     *bool     `json:"with_mean,omitempty"`
	WithStd      *bool     `json:"with_std,omitempty"`
	FeatureNames []string  `json:"feature_names,omitempty"`
}

// Scaler standardizes each feature as (x - mean) / scale.
type Scaler struct {
	mean         []float64
	scale        []float64
	featureNames []string
}

// NewScaler builds a Scaler from fitted statistics. A zero scale is treated as 1,
// so constant features map to zero rather than dividing by zero.
func NewScaler(doc ScalerDocument) (*Scaler, error) {
	if doc.Kind != "" && doc.Kind != KindStandardScaler {
		return nil, fmt.Errorf("%w: got %s, want %s", ErrKindMismatch, doc.Kind, KindStandardScaler)
	}

	dims := max(len(doc.Mean), len(doc.Scale))
	if dims == 0 {
		return nil, fmt.Errorf("%w: scaler has no statistics", ErrInvalidArtifact)
	}

	withMean := doc.WithMean == nil || *doc.WithMean
	withStd := doc.WithStd == nil || *doc.WithStd

	mean := make([]float64, dims)
	if withMean {
		if len(doc.Mean) != dims {
			return nil, fmt.Errorf("%w: scaler mean has %d values, want %d", ErrInvalidArtifact, len(doc.Mean), dims)
		}
		copy(mean, doc.Mean)
	}

	scale := make([]float64, dims)
	for i := range scale {
		scale[i] = 1
	}
	if withStd {
		if len(doc.Scale) != dims {
			return nil, fmt.Errorf("%w: scaler scale has %d values, want %d", ErrInvalidArtifact, len(doc.Scale), dims)
		}
		for i, s := range doc.Scale {
			if s != 0 {
				scale[i] = s
			}
		}
	}

	if err := checkFinite("scaler mean", mean); err != nil {
		return nil, err
	}
	if err := checkFinite("scaler scale", scale); err != nil {
		return nil, err
	}
	if n := len(doc.FeatureNames); n > 0 && n != dims {
		return nil, fmt.Errorf("%w: scaler lists %d feature names for %d features", ErrInvalidArtifact, n, dims)
	}

	return &Scaler{mean: mean, scale: scale, featureNames: doc.FeatureNames}, nil
}

// DecodeScaler parses a scaler document.
func DecodeScaler(data []byte) (*Scaler, error) {
	var doc ScalerDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: decode scaler: %v", ErrInvalidArtifact, err)
	}
	return NewScaler(doc)
}

func (s *Scaler) InputDims() int  { return len(s.mean) }
func (s *Scaler) OutputDims() int { return len(s.mean) }

// FeatureNames returns the column names the scaler was fitted on, if recorded.
func (s *Scaler) FeatureNames() []string {
	return s.featureNames
}

func (s *Scaler) Transform(x []float64) ([]float64, error) {
	if err := checkInput("scaler", x, len(s.mean)); err != nil {
		return nil, err
	}

	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = (v - s.mean[i]) / s.scale[i]
	}
	return out, nil
}

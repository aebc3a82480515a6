package artifacts

import (
	"encoding/json"
	"fmt"
	"math"
)

// PCADocument is the serialized form of a fitted principal component projection.
// Components holds one row per output dimension.
type PCADocument struct {
	Kind              string      `json:"kind"`
	Mean              []float64   `json:"mean"`
	Components        [][]float64 `json:"components"`
	ExplainedVariance []float64   `json:"explained_variance,omitempty"`
	Whiten            bool        `json:"whiten,omitempty"`
}

// PCA projects centered input onto its component rows.
type PCA struct {
	mean       []float64
	components [][]float64
	divisor    []float64
}

// NewPCA builds a PCA from its fitted basis. When whiten is set each output
// dimension is divided by the square root of its explained variance.
func NewPCA(doc PCADocument) (*PCA, error) {
	if doc.Kind != "" && doc.Kind != KindPCA {
		return nil, fmt.Errorf("%w: got %s, want %s", ErrKindMismatch, doc.Kind, KindPCA)
	}
	if len(doc.Components) == 0 {
		return nil, fmt.Errorf("%w: pca has no components", ErrInvalidArtifact)
	}

	dims := len(doc.Components[0])
	if dims == 0 {
		return nil, fmt.Errorf("%w: pca components are empty", ErrInvalidArtifact)
	}
	if err := checkMatrix("pca components", doc.Components, dims); err != nil {
		return nil, err
	}

	mean := make([]float64, dims)
	if len(doc.Mean) > 0 {
		if len(doc.Mean) != dims {
			return nil, fmt.Errorf("%w: pca mean has %d values, want %d", ErrInvalidArtifact, len(doc.Mean), dims)
		}
		if err := checkFinite("pca mean", doc.Mean); err != nil {
			return nil, err
		}
		copy(mean, doc.Mean)
	}

	divisor := make([]float64, len(doc.Components))
	for j := range divisor {
		divisor[j] = 1
	}
	if doc.Whiten {
		if len(doc.ExplainedVariance) != len(doc.Components) {
			return nil, fmt.Errorf("%w: whitening needs %d explained variances, got %d",
				ErrInvalidArtifact, len(doc.Components), len(doc.ExplainedVariance))
		}
		for j, v := range doc.ExplainedVariance {
			if !(v > 0) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: explained_variance[%d] must be positive", ErrInvalidArtifact, j)
			}
			divisor[j] = math.Sqrt(v)
		}
	}

	components := make([][]float64, len(doc.Components))
	for j, row := range doc.Components {
		components[j] = append([]float64(nil), row...)
	}

	return &PCA{mean: mean, components: components, divisor: divisor}, nil
}

// DecodePCA parses a PCA document.
func DecodePCA(data []byte) (*PCA, error) {
	var doc PCADocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: decode pca: %v", ErrInvalidArtifact, err)
	}
	return NewPCA(doc)
}

func (p *PCA) InputDims() int  { return len(p.mean) }
func (p *PCA) OutputDims() int { return len(p.components) }

func (p *PCA) Transform(x []float64) ([]float64, error) {
	if err := checkInput("reducer", x, len(p.mean)); err != nil {
		return nil, err
	}

	out := make([]float64, len(p.components))
	for j, row := range p.components {
		var sum float64
		for i, w := range row {
			sum += (x[i] - p.mean[i]) * w
		}
		out[j] = sum / p.divisor[j]
	}
	return out, nil
}

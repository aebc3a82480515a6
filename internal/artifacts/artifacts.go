// Package artifacts implements the three fitted inference artifacts (scaler,
// reducer, clusterer), the bundle manifest that ties them to a feature schema,
// and the pipeline that chains them.
//
// Artifacts are immutable after construction and safe for concurrent use.
package artifacts

import (
	"fmt"
	"math"
)

// Transformer maps a vector of InputDims values to a vector of OutputDims values.
type Transformer interface {
	Transform(x []float64) ([]float64, error)
	InputDims() int
	OutputDims() int
}

// Predictor assigns a vector of InputDims values to a label in [0, Clusters()).
type Predictor interface {
	Predict(x []float64) (int, error)
	InputDims() int
	Clusters() int
}

// DistanceReporter is implemented by predictors that can report the distance
// from a vector to every cluster center.
type DistanceReporter interface {
	Distances(x []float64) ([]float64, error)
}

// Artifact kinds recorded in the "kind" field of each artifact document.
const (
	KindStandardScaler = "standard_scaler"
	KindPCA            = "pca"
	KindKMeans         = "kmeans"
)

func checkInput(stage string, x []float64, dims int) error {
	if len(x) != dims {
		return fmt.Errorf("%s: %w: got %d values, want %d", stage, ErrDimensionMismatch, len(x), dims)
	}
	for i, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s: %w at index %d", stage, ErrNonFinite, i)
		}
	}
	return nil
}

func checkMatrix(name string, m [][]float64, cols int) error {
	for i, row := range m {
		if len(row) != cols {
			return fmt.Errorf("%w: %s row %d has %d values, want %d", ErrInvalidArtifact, name, i, len(row), cols)
		}
		if err := checkFinite(name, row); err != nil {
			return err
		}
	}
	return nil
}

func checkFinite(name string, v []float64) error {
	for i, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("%w: %s[%d] is not finite", ErrInvalidArtifact, name, i)
		}
	}
	return nil
}

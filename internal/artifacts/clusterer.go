package artifacts

import (
	"encoding/json"
	"fmt"
	"math"
)

// KMeansDocument is the serialized form of a fitted k-means model.
type KMeansDocument struct {
	Kind      string      `json:"kind"`
	Centroids [][]float64 `json:"centroids"`
}

// KMeans assigns a vector to its nearest centroid by squared Euclidean distance.
// Ties resolve to the lowest label.
type KMeans struct {
	centroids [][]float64
}

// NewKMeans builds a KMeans from fitted centroids.
func NewKMeans(doc KMeansDocument) (*KMeans, error) {
	if doc.Kind != "" && doc.Kind != KindKMeans {
		return nil, fmt.Errorf("%w: got %s, want %s", ErrKindMismatch, doc.Kind, KindKMeans)
	}
	if len(doc.Centroids) == 0 {
		return nil, fmt.Errorf("%w: kmeans has no centroids", ErrInvalidArtifact)
	}

	dims := len(doc.Centroids[0])
	if dims == 0 {
		return nil, fmt.Errorf("%w: kmeans centroids are empty", ErrInvalidArtifact)
	}
	if err := checkMatrix("kmeans centroids", doc.Centroids, dims); err != nil {
		return nil, err
	}

	centroids := make([][]float64, len(doc.Centroids))
	for k, c := range doc.Centroids {
		centroids[k] = append([]float64(nil), c...)
	}
	return &KMeans{centroids: centroids}, nil
}

// DecodeKMeans parses a k-means document.
func DecodeKMeans(data []byte) (*KMeans, error) {
	var doc KMeansDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: decode kmeans: %v", ErrInvalidArtifact, err)
	}
	return NewKMeans(doc)
}

func (k *KMeans) InputDims() int { return len(k.centroids[0]) }
func (k *KMeans) Clusters() int  { return len(k.centroids) }

func (k *KMeans) Predict(x []float64) (int, error) {
	d, err := k.squared("clusterer", x)
	if err != nil {
		return -1, err
	}

	best := 0
	for i := 1; i < len(d); i++ {
		if d[i] < d[best] {
			best = i
		}
	}
	return best, nil
}

// Distances returns the Euclidean distance from x to each centroid, indexed by label.
func (k *KMeans) Distances(x []float64) ([]float64, error) {
	d, err := k.squared("clusterer", x)
	if err != nil {
		return nil, err
	}
	for i := range d {
		d[i] = math.Sqrt(d[i])
	}
	return d, nil
}

func (k *KMeans) squared(stage string, x []float64) ([]float64, error) {
	if err := checkInput(stage, x, k.InputDims()); err != nil {
		return nil, err
	}

	out := make([]float64, len(k.centroids))
	for c, centroid := range k.centroids {
		var sum float64
		for i, v := range centroid {
			diff := x[i] - v
			sum += diff * diff
		}
		out[c] = sum
	}
	return out, nil
}

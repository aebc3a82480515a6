package artifacts_test

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/JaimeStill/segmenter/internal/artifacts"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func mustScaler(t *testing.T, doc artifacts.ScalerDocument) *artifacts.Scaler {
	t.Helper()
	s, err := artifacts.NewScaler(doc)
	if err != nil {
		t.Fatalf("new scaler: %v", err)
	}
	return s
}

func mustPCA(t *testing.T, doc artifacts.PCADocument) *artifacts.PCA {
	t.Helper()
	p, err := artifacts.NewPCA(doc)
	if err != nil {
		t.Fatalf("new pca: %v", err)
	}
	return p
}

func mustKMeans(t *testing.T, centroids [][]float64) *artifacts.KMeans {
	t.Helper()
	k, err := artifacts.NewKMeans(artifacts.KMeansDocument{Centroids: centroids})
	if err != nil {
		t.Fatalf("new kmeans: %v", err)
	}
	return k
}

func TestScalerTransform(t *testing.T) {
	s := mustScaler(t, artifacts.ScalerDocument{
		Mean:  []float64{1, 2},
		Scale: []float64{2, 0},
	})

	got, err := s.Transform([]float64{3, 5})
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	if diff := cmp.Diff([]float64{1, 3}, got, approx); diff != "" {
		t.Errorf("scaled mismatch (-want +got):\n%s", diff)
	}
}

func TestScalerWithoutMean(t *testing.T) {
	off := false
	s := mustScaler(t, artifacts.ScalerDocument{
		Mean:     []float64{100, 100},
		Scale:    []float64{2, 4},
		WithMean: &off,
	})

	got, err := s.Transform([]float64{4, 8})
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	if diff := cmp.Diff([]float64{2, 2}, got, approx); diff != "" {
		t.Errorf("scaled mismatch (-want +got):\n%s", diff)
	}
}

func TestScalerRejectsInput(t *testing.T) {
	s := mustScaler(t, artifacts.ScalerDocument{Mean: []float64{0, 0}, Scale: []float64{1, 1}})

	tests := []struct {
		name string
		in   []float64
		want error
	}{
		{"short", []float64{1}, artifacts.ErrDimensionMismatch},
		{"long", []float64{1, 2, 3}, artifacts.ErrDimensionMismatch},
		{"nan", []float64{math.NaN(), 1}, artifacts.ErrNonFinite},
		{"inf", []float64{1, math.Inf(-1)}, artifacts.ErrNonFinite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Transform(tt.in); !errors.Is(err, tt.want) {
				t.Errorf("error: got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNewScalerInvalid(t *testing.T) {
	tests := []struct {
		name string
		doc  artifacts.ScalerDocument
		want error
	}{
		{"wrong kind", artifacts.ScalerDocument{Kind: "pca", Mean: []float64{0}, Scale: []float64{1}}, artifacts.ErrKindMismatch},
		{"empty", artifacts.ScalerDocument{}, artifacts.ErrInvalidArtifact},
		{"ragged", artifacts.ScalerDocument{Mean: []float64{0, 0}, Scale: []float64{1}}, artifacts.ErrInvalidArtifact},
		{"nan mean", artifacts.ScalerDocument{Mean: []float64{math.NaN()}, Scale: []float64{1}}, artifacts.ErrInvalidArtifact},
		{"names", artifacts.ScalerDocument{Mean: []float64{0}, Scale: []float64{1}, FeatureNames: []string{"A", "B"}}, artifacts.ErrInvalidArtifact},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := artifacts.NewScaler(tt.doc); !errors.Is(err, tt.want) {
				t.Errorf("error: got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestPCATransform(t *testing.T) {
	p := mustPCA(t, artifacts.PCADocument{
		Mean:       []float64{1, 1},
		Components: [][]float64{{1, 0}, {0, 1}, {1, 1}},
	})

	if p.InputDims() != 2 || p.OutputDims() != 3 {
		t.Fatalf("dims: got %d -> %d, want 2 -> 3", p.InputDims(), p.OutputDims())
	}

	got, err := p.Transform([]float64{3, 4})
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	if diff := cmp.Diff([]float64{2, 3, 5}, got, approx); diff != "" {
		t.Errorf("reduced mismatch (-want +got):\n%s", diff)
	}
}

func TestPCAWhiten(t *testing.T) {
	p := mustPCA(t, artifacts.PCADocument{
		Components:        [][]float64{{1, 0}, {0, 1}},
		ExplainedVariance: []float64{4, 9},
		Whiten:            true,
	})

	got, err := p.Transform([]float64{2, 3})
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	if diff := cmp.Diff([]float64{1, 1}, got, approx); diff != "" {
		t.Errorf("whitened mismatch (-want +got):\n%s", diff)
	}
}

func TestNewPCAInvalid(t *testing.T) {
	tests := []struct {
		name string
		doc  artifacts.PCADocument
	}{
		{"no components", artifacts.PCADocument{}},
		{"ragged", artifacts.PCADocument{Components: [][]float64{{1, 0}, {1}}}},
		{"mean length", artifacts.PCADocument{Mean: []float64{0}, Components: [][]float64{{1, 0}}}},
		{"whiten without variance", artifacts.PCADocument{Components: [][]float64{{1}}, Whiten: true}},
		{"whiten zero variance", artifacts.PCADocument{Components: [][]float64{{1}}, ExplainedVariance: []float64{0}, Whiten: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := artifacts.NewPCA(tt.doc); !errors.Is(err, artifacts.ErrInvalidArtifact) {
				t.Errorf("error: got %v, want ErrInvalidArtifact", err)
			}
		})
	}
}

func TestKMeansPredict(t *testing.T) {
	k := mustKMeans(t, [][]float64{{0, 0}, {10, 0}})

	tests := []struct {
		name string
		in   []float64
		want int
	}{
		{"near first", []float64{4, 0}, 0},
		{"near second", []float64{6, 1}, 1},
		{"tie goes to lowest", []float64{5, 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := k.Predict(tt.in)
			if err != nil {
				t.Fatalf("predict: %v", err)
			}
			if got != tt.want {
				t.Errorf("label: got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestKMeansDistances(t *testing.T) {
	k := mustKMeans(t, [][]float64{{0, 0}, {10, 0}})

	got, err := k.Distances([]float64{4, 0})
	if err != nil {
		t.Fatalf("distances: %v", err)
	}
	if diff := cmp.Diff([]float64{4, 6}, got, approx); diff != "" {
		t.Errorf("distances mismatch (-want +got):\n%s", diff)
	}
}

func TestKMeansRejectsInput(t *testing.T) {
	k := mustKMeans(t, [][]float64{{0, 0}})

	label, err := k.Predict([]float64{1})
	if !errors.Is(err, artifacts.ErrDimensionMismatch) {
		t.Errorf("error: got %v, want ErrDimensionMismatch", err)
	}
	if label != -1 {
		t.Errorf("label: got %d, want -1", label)
	}
}

func TestDecodeKindMismatch(t *testing.T) {
	if _, err := artifacts.DecodeKMeans([]byte(`{"kind":"pca","centroids":[[0]]}`)); !errors.Is(err, artifacts.ErrKindMismatch) {
		t.Errorf("error: got %v, want ErrKindMismatch", err)
	}
	if _, err := artifacts.DecodeScaler([]byte(`not json`)); !errors.Is(err, artifacts.ErrInvalidArtifact) {
		t.Errorf("error: got %v, want ErrInvalidArtifact", err)
	}
}

package artifacts_test

import (
	"errors"
	"testing"

	"github.com/JaimeStill/segmenter/internal/artifacts"
)

func newPipeline(t *testing.T) *artifacts.Pipeline {
	t.Helper()
	s := mustScaler(t, artifacts.ScalerDocument{
		Mean:  []float64{10, 20, 30},
		Scale: []float64{1, 2, 3},
	})
	p := mustPCA(t, artifacts.PCADocument{
		Components: [][]float64{{1, 0, 0}, {0, 1, 1}},
	})
	k := mustKMeans(t, [][]float64{{0, 0}, {5, 5}, {-5, -5}})

	pipe, err := artifacts.NewPipeline(s, p, k)
	if err != nil {
		t.Fatalf("new pipeline: %v", err)
	}
	return pipe
}

func TestPipelineRun(t *testing.T) {
	pipe := newPipeline(t)

	res, err := pipe.Run([]float64{15, 25, 35})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	// scaled = [5, 2.5, 1.67], reduced = [5, 4.17] -> centroid 1
	if res.Cluster != 1 {
		t.Errorf("cluster: got %d, want 1", res.Cluster)
	}
	if len(res.Scaled) != 3 || len(res.Reduced) != 2 || len(res.Distances) != 3 {
		t.Errorf("shapes: scaled %d, reduced %d, distances %d", len(res.Scaled), len(res.Reduced), len(res.Distances))
	}
}

func TestPipelineDeterministic(t *testing.T) {
	pipe := newPipeline(t)
	in := []float64{3, -7, 12.5}

	first, err := pipe.Run(in)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	for range 50 {
		res, err := pipe.Run(in)
		if err != nil {
			t.Fatalf("run: %v", err)
		}
		if res.Cluster != first.Cluster {
			t.Fatalf("cluster changed: got %d, first %d", res.Cluster, first.Cluster)
		}
	}
}

func TestPipelineAllZero(t *testing.T) {
	pipe := newPipeline(t)

	res, err := pipe.Run(make([]float64, pipe.InputDims()))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Cluster < 0 || res.Cluster >= pipe.Clusters() {
		t.Errorf("cluster %d outside [0, %d)", res.Cluster, pipe.Clusters())
	}
}

func TestPipelineLengthMismatch(t *testing.T) {
	pipe := newPipeline(t)

	res, err := pipe.Run([]float64{1, 2})
	if !errors.Is(err, artifacts.ErrDimensionMismatch) {
		t.Errorf("error: got %v, want ErrDimensionMismatch", err)
	}
	if res != nil {
		t.Errorf("result: got %+v, want nil", res)
	}
}

func TestNewPipelineChainMismatch(t *testing.T) {
	s := mustScaler(t, artifacts.ScalerDocument{Mean: []float64{0, 0}, Scale: []float64{1, 1}})
	p := mustPCA(t, artifacts.PCADocument{Components: [][]float64{{1, 0, 0}}})
	k := mustKMeans(t, [][]float64{{0}})

	if _, err := artifacts.NewPipeline(s, p, k); !errors.Is(err, artifacts.ErrChainMismatch) {
		t.Errorf("scaler->reducer: got %v, want ErrChainMismatch", err)
	}

	p2 := mustPCA(t, artifacts.PCADocument{Components: [][]float64{{1, 0}}})
	k2 := mustKMeans(t, [][]float64{{0, 0}})
	if _, err := artifacts.NewPipeline(s, p2, k2); !errors.Is(err, artifacts.ErrChainMismatch) {
		t.Errorf("reducer->clusterer: got %v, want ErrChainMismatch", err)
	}

	if _, err := artifacts.NewPipeline(s, nil, k2); !errors.Is(err, artifacts.ErrChainMismatch) {
		t.Errorf("nil stage: got %v, want ErrChainMismatch", err)
	}
}

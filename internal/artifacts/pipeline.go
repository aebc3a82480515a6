package artifacts

import "fmt"

// Pipeline chains scaler, reducer and clusterer. It is built once and shared
// read-only by every request.
type Pipeline struct {
	scaler    Transformer
	reducer   Transformer
	clusterer Predictor
}

// Result carries the intermediate vectors and the assigned cluster for one input.
type Result struct {
	Scaled    []float64
	Reduced   []float64
	Cluster   int
	Distances []float64
}

// NewPipeline validates that each stage's output feeds the next stage's input.
func NewPipeline(scaler, reducer Transformer, clusterer Predictor) (*Pipeline, error) {
	if scaler == nil || reducer == nil || clusterer == nil {
		return nil, fmt.Errorf("%w: all three stages are required", ErrChainMismatch)
	}
	if scaler.OutputDims() != reducer.InputDims() {
		return nil, fmt.Errorf("%w: scaler emits %d values, reducer expects %d",
			ErrChainMismatch, scaler.OutputDims(), reducer.InputDims())
	}
	if reducer.OutputDims() != clusterer.InputDims() {
		return nil, fmt.Errorf("%w: reducer emits %d values, clusterer expects %d",
			ErrChainMismatch, reducer.OutputDims(), clusterer.InputDims())
	}

	return &Pipeline{scaler: scaler, reducer: reducer, clusterer: clusterer}, nil
}

// InputDims returns the raw feature count the pipeline accepts.
func (p *Pipeline) InputDims() int {
	return p.scaler.InputDims()
}

// Clusters returns the number of labels the clusterer can produce.
func (p *Pipeline) Clusters() int {
	return p.clusterer.Clusters()
}

// Run transforms x through every stage in order. Any stage failure aborts the
// run and no partial result is returned.
func (p *Pipeline) Run(x []float64) (*Result, error) {
	scaled, err := p.scaler.Transform(x)
	if err != nil {
		return nil, err
	}

	reduced, err := p.reducer.Transform(scaled)
	if err != nil {
		return nil, err
	}

	cluster, err := p.clusterer.Predict(reduced)
	if err != nil {
		return nil, err
	}
	if cluster < 0 || cluster >= p.clusterer.Clusters() {
		return nil, fmt.Errorf("clusterer: label %d outside [0, %d)", cluster, p.clusterer.Clusters())
	}

	result := &Result{
		Scaled:  scaled,
		Reduced: reduced,
		Cluster: cluster,
	}

	if dr, ok := p.clusterer.(DistanceReporter); ok {
		if d, err := dr.Distances(reduced); err == nil {
			result.Distances = d
		}
	}

	return result, nil
}

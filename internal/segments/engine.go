package segments

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/segmenter/internal/artifacts"
	"github.com/JaimeStill/segmenter/internal/features"
	"github.com/JaimeStill/segmenter/internal/profiles"
	"github.com/JaimeStill/segmenter/pkg/middleware"
)

// Engine is the immutable segmentation context built once at startup. It is
// safe for concurrent use.
type Engine struct {
	bundle  *artifacts.Bundle
	catalog *profiles.Catalog
	logger  *slog.Logger
	now     func() time.Time
}

// New creates an Engine from a loaded bundle and profile catalog. Every label
// the bundle's clusterer can produce must have a profile.
func New(bundle *artifacts.Bundle, catalog *profiles.Catalog, logger *slog.Logger) (*Engine, error) {
	if bundle == nil {
		return nil, fmt.Errorf("segments: artifact bundle is not loaded")
	}
	if err := catalog.Covers(bundle.Pipeline.Clusters()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIncompleteCatalog, err)
	}

	return &Engine{
		bundle:  bundle,
		catalog: catalog,
		logger:  logger.With("system", "segments", "bundle", bundle.Manifest.Name),
		now:     time.Now,
	}, nil
}

func (e *Engine) Handler() *Handler {
	return NewHandler(e, e.logger)
}

func (e *Engine) Schema() features.Schema {
	return e.bundle.Schema
}

func (e *Engine) Info() Info {
	return Info{
		Name:     e.bundle.Manifest.Name,
		Version:  e.bundle.Manifest.Version,
		Clusters: e.bundle.Pipeline.Clusters(),
		Fields:   e.bundle.Schema.Fields,
	}
}

// Segment runs v through the pipeline and resolves its profile. Any failure is
// logged with its cause and returned wrapped in ErrProcessingFailure.
func (e *Engine) Segment(ctx context.Context, v features.Vector) (*Assessment, error) {
	id := uuid.New()

	if err := ctx.Err(); err != nil {
		return nil, e.fail(ctx, id, err)
	}

	result, err := e.bundle.Pipeline.Run(v)
	if err != nil {
		return nil, e.fail(ctx, id, err)
	}

	profile, err := e.catalog.Lookup(result.Cluster)
	if err != nil {
		return nil, e.fail(ctx, id, err)
	}

	e.logger.Info("customer segmented", "id", id, "cluster", result.Cluster, "profile", profile.Name)

	return &Assessment{
		ID:         id,
		Cluster:    result.Cluster,
		Profile:    profile,
		Variant:    e.bundle.Manifest.Name,
		Inputs:     v,
		Scaled:     result.Scaled,
		Reduced:    result.Reduced,
		Distances:  result.Distances,
		AssessedAt: e.now().UTC(),
	}, nil
}

// SegmentValues assembles a vector from form values in schema order and segments it.
func (e *Engine) SegmentValues(ctx context.Context, values url.Values) (*Assessment, error) {
	v, err := e.bundle.Schema.FromValues(values)
	if err != nil {
		return nil, e.fail(ctx, uuid.New(), err)
	}
	return e.Segment(ctx, v)
}

// SegmentSlice checks positional values against the schema length and segments them.
func (e *Engine) SegmentSlice(ctx context.Context, values []float64) (*Assessment, error) {
	v, err := e.bundle.Schema.FromSlice(values)
	if err != nil {
		return nil, e.fail(ctx, uuid.New(), err)
	}
	return e.Segment(ctx, v)
}

// SegmentMap assembles a vector from a key/value map in schema order and segments it.
func (e *Engine) SegmentMap(ctx context.Context, m map[string]float64) (*Assessment, error) {
	v, err := e.bundle.Schema.FromMap(m)
	if err != nil {
		return nil, e.fail(ctx, uuid.New(), err)
	}
	return e.Segment(ctx, v)
}

// SegmentBatch segments each row independently. A failing row records the
// generic failure message and does not affect the others.
func (e *Engine) SegmentBatch(ctx context.Context, rows []features.Vector) []BatchResult {
	results := make([]BatchResult, len(rows))
	for i, row := range rows {
		results[i].Row = i
		a, err := e.Segment(ctx, row)
		if err != nil {
			results[i].Error = FailureMessage
			continue
		}
		results[i].Assessment = a
	}
	return results
}

func (e *Engine) fail(ctx context.Context, id uuid.UUID, cause error) error {
	e.logger.Warn(
		"segmentation failed",
		"id", id,
		"request_id", middleware.RequestIDFrom(ctx),
		"error", cause,
	)
	return fmt.Errorf("%w: %w", ErrProcessingFailure, cause)
}

// Package segments assigns customers to clusters by running submitted
// features through the loaded artifact pipeline and resolving the cluster's
// authored profile.
package segments

import (
	"context"
	"net/url"

	"github.com/JaimeStill/segmenter/internal/features"
)

// System defines the public contract for segmentation operations.
type System interface {
	Handler() *Handler

	Info() Info
	Schema() features.Schema

	Segment(ctx context.Context, v features.Vector) (*Assessment, error)
	SegmentValues(ctx context.Context, values url.Values) (*Assessment, error)
	SegmentSlice(ctx context.Context, values []float64) (*Assessment, error)
	SegmentMap(ctx context.Context, m map[string]float64) (*Assessment, error)
	SegmentBatch(ctx context.Context, rows []features.Vector) []BatchResult
}

package segments

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/segmenter/internal/features"
	"github.com/JaimeStill/segmenter/pkg/handlers"
	"github.com/JaimeStill/segmenter/pkg/routes"
)

// SegmentRequest carries one submission either keyed by feature name or as
// positional values in schema order. Exactly one form must be set.
type SegmentRequest struct {
	Features map[string]float64 `json:"features,omitempty"`
	Values   []float64          `json:"values,omitempty"`
}

// BatchRequest carries positional rows in schema order.
type BatchRequest struct {
	Rows [][]float64 `json:"rows"`
}

// Handler provides HTTP endpoints for segmentation.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "segments"),
	}
}

// Routes returns the route group definition for segmentation endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/schema", Handler: h.Schema},
		},
		Children: []routes.Group{
			{
				Prefix: "/segments",
				Routes: []routes.Route{
					{Method: "POST", Pattern: "", Handler: h.Segment},
					{Method: "POST", Pattern: "/batch", Handler: h.Batch},
				},
			},
		},
	}
}

// Schema returns the deployed bundle's ordered feature fields and cluster count.
func (h *Handler) Schema(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.sys.Info())
}

// Segment assesses a single submission. Returns 201 with the assessment, or
// 422 with the generic failure message.
func (h *Handler) Segment(w http.ResponseWriter, r *http.Request) {
	var req SegmentRequest
	if err := decode(r, &req); err != nil {
		h.reject(w, err)
		return
	}

	var (
		a   *Assessment
		err error
	)
	switch {
	case req.Features != nil && req.Values != nil:
		err = fmt.Errorf("%w: features and values are mutually exclusive", ErrInvalidRequest)
	case req.Features != nil:
		a, err = h.sys.SegmentMap(r.Context(), req.Features)
	case req.Values != nil:
		a, err = h.sys.SegmentSlice(r.Context(), req.Values)
	default:
		err = fmt.Errorf("%w: features or values required", ErrInvalidRequest)
	}
	if err != nil {
		h.reject(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, a)
}

// Batch assesses every row independently and returns per-row results.
func (h *Handler) Batch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := decode(r, &req); err != nil {
		h.reject(w, err)
		return
	}
	if len(req.Rows) == 0 {
		h.reject(w, fmt.Errorf("%w: rows required", ErrInvalidRequest))
		return
	}

	rows := make([]features.Vector, len(req.Rows))
	for i, row := range req.Rows {
		rows[i] = features.Vector(row)
	}

	handlers.RespondJSON(w, http.StatusOK, h.sys.SegmentBatch(r.Context(), rows))
}

// decode reads exactly one JSON value from the request body.
func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: unexpected data after request body", ErrInvalidRequest)
	}
	return nil
}

func (h *Handler) reject(w http.ResponseWriter, err error) {
	status := MapHTTPStatus(err)
	msg := FailureMessage
	if status == http.StatusBadRequest {
		msg = ErrInvalidRequest.Error()
	}
	handlers.RespondMessage(w, h.logger, status, msg, err)
}

package app

import (
	"log/slog"
	"math"
	"net/http"
	"net/url"

	"github.com/JaimeStill/segmenter/internal/features"
	"github.com/JaimeStill/segmenter/internal/profiles"
	"github.com/JaimeStill/segmenter/internal/segments"
	"github.com/JaimeStill/segmenter/pkg/web"
)

// barSpan is the standardized magnitude drawn as a half-width bar.
const barSpan = 3.0

type handler struct {
	sys    segments.System
	views  *web.TemplateSet
	title  string
	logger *slog.Logger
}

type formField struct {
	features.Field
	Value string
}

type bar struct {
	Label    string
	Value    float64
	Width    float64
	Negative bool
}

type result struct {
	ID      string
	Cluster int
	Variant string
	Profile profiles.Profile
	Bars    []bar
}

type page struct {
	Fields []formField
	Error  string
	Result *result
}

func newHandler(sys segments.System, views *web.TemplateSet, title string, logger *slog.Logger) *handler {
	return &handler{
		sys:    sys,
		views:  views,
		title:  title,
		logger: logger.With("handler", "form"),
	}
}

func (h *handler) form(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, page{Fields: h.fields(nil)})
}

func (h *handler) submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.logger.Warn("form parse failed", "error", err)
		h.render(w, http.StatusBadRequest, page{Fields: h.fields(nil), Error: segments.FailureMessage})
		return
	}

	p := page{Fields: h.fields(r.PostForm)}

	a, err := h.sys.SegmentValues(r.Context(), r.PostForm)
	if err != nil {
		p.Error = segments.FailureMessage
		h.render(w, segments.MapHTTPStatus(err), p)
		return
	}

	p.Result = h.result(a)
	h.render(w, http.StatusOK, p)
}

func (h *handler) render(w http.ResponseWriter, status int, p page) {
	data := web.ViewData{Title: h.title, Data: p}
	if err := h.views.Render(w, status, formView.Template, data); err != nil {
		h.logger.Error("render failed", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (h *handler) fields(values url.Values) []formField {
	schema := h.sys.Schema()
	out := make([]formField, len(schema.Fields))
	for i, f := range schema.Fields {
		out[i] = formField{Field: f, Value: values.Get(f.Key)}
	}
	return out
}

func (h *handler) result(a *segments.Assessment) *result {
	schema := h.sys.Schema()
	bars := make([]bar, len(a.Scaled))
	for i, z := range a.Scaled {
		label := ""
		if i < len(schema.Fields) {
			label = schema.Fields[i].Label
		}
		bars[i] = bar{
			Label:    label,
			Value:    z,
			Width:    math.Min(math.Abs(z)/barSpan, 1) * 50,
			Negative: z < 0,
		}
	}

	return &result{
		ID:      a.ID.String(),
		Cluster: a.Cluster,
		Variant: a.Variant,
		Profile: a.Profile,
		Bars:    bars,
	}
}

package segments

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/segmenter/internal/features"
	"github.com/JaimeStill/segmenter/internal/profiles"
)

// Assessment is the outcome of segmenting one feature vector.
type Assessment struct {
	ID         uuid.UUID        `json:"id"`
	Cluster    int              `json:"cluster"`
	Profile    profiles.Profile `json:"profile"`
	Variant    string           `json:"variant"`
	Inputs     features.Vector  `json:"inputs"`
	Scaled     []float64        `json:"scaled"`
	Reduced    []float64        `json:"reduced"`
	Distances  []float64        `json:"distances,omitempty"`
	AssessedAt time.Time        `json:"assessed_at"`
}

// BatchResult pairs a batch row index with either its assessment or the
// generic failure message.
type BatchResult struct {
	Row        int         `json:"row"`
	Assessment *Assessment `json:"assessment,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// Info describes the deployed bundle for clients building input forms.
type Info struct {
	Name     string           `json:"name"`
	Version  string           `json:"version"`
	Clusters int              `json:"clusters"`
	Fields   []features.Field `json:"fields"`
}

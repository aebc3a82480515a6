package api

import (
	"github.com/JaimeStill/segmenter/internal/profiles"
	"github.com/JaimeStill/segmenter/internal/segments"
)

// Domain holds the handlers that comprise the API.
type Domain struct {
	Segments *segments.Handler
	Profiles *profiles.Handler
	Info     segments.Info
}

// NewDomain creates the API handlers from the runtime and segmentation system.
func NewDomain(runtime *Runtime, sys segments.System) *Domain {
	return &Domain{
		Segments: segments.NewHandler(sys, runtime.Logger),
		Profiles: profiles.NewHandler(runtime.Profiles, runtime.Logger),
		Info:     sys.Info(),
	}
}

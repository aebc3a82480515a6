package artifacts

import "errors"

var (
	// ErrDimensionMismatch indicates an input vector of the wrong length for a stage.
	ErrDimensionMismatch = errors.New("dimension mismatch")
	// ErrNonFinite indicates a NaN or infinite input value.
	ErrNonFinite = errors.New("non-finite value")
	// ErrInvalidArtifact indicates an artifact document that cannot be used.
	ErrInvalidArtifact = errors.New("invalid artifact")
	// ErrKindMismatch indicates an artifact document of an unexpected kind.
	ErrKindMismatch = errors.New("artifact kind mismatch")
	// ErrChainMismatch indicates artifacts whose dimensions do not line up.
	ErrChainMismatch = errors.New("artifact chain mismatch")
	// ErrInvalidManifest indicates a bundle manifest that cannot be used.
	ErrInvalidManifest = errors.New("invalid manifest")
)

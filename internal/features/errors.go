package features

import "errors"

var (
	ErrEmptySchema    = errors.New("schema has no fields")
	ErrInvalidSchema  = errors.New("invalid schema")
	ErrMissingField   = errors.New("missing field")
	ErrInvalidValue   = errors.New("invalid field value")
	ErrUnknownField   = errors.New("unknown field")
	ErrLengthMismatch = errors.New("value count does not match schema")
	ErrUnknownVariant = errors.New("unknown schema variant")
)

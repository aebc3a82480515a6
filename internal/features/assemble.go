package features

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// FromValues assembles a Vector from form values keyed by field key.
func (s Schema) FromValues(values url.Values) (Vector, error) {
	v := make(Vector, len(s.Fields))
	for i, f := range s.Fields {
		x, err := parseValue(f.Key, values.Get(f.Key))
		if err != nil {
			return nil, err
		}
		v[i] = x
	}
	return v, nil
}

// FromMap assembles a Vector from a key/value map. Keys outside the schema are rejected.
func (s Schema) FromMap(m map[string]float64) (Vector, error) {
	for key := range m {
		if s.Index(key) < 0 {
			return nil, fmt.Errorf("%w: %s", ErrUnknownField, key)
		}
	}

	v := make(Vector, len(s.Fields))
	for i, f := range s.Fields {
		x, ok := m[f.Key]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingField, f.Key)
		}
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, fmt.Errorf("%w: %s is not finite", ErrInvalidValue, f.Key)
		}
		v[i] = x
	}
	return v, nil
}

// FromSlice checks that values has exactly one entry per field and returns it as a Vector.
func (s Schema) FromSlice(values []float64) (Vector, error) {
	if len(values) != len(s.Fields) {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrLengthMismatch, len(values), len(s.Fields))
	}
	return Vector(values), nil
}

// FromRecord assembles a Vector from a delimited row whose columns are named by header.
// Header names are matched case-insensitively and must be unique; extra columns are ignored.
func (s Schema) FromRecord(header, row []string) (Vector, error) {
	if len(row) != len(header) {
		return nil, fmt.Errorf("%w: row has %d columns, header has %d", ErrLengthMismatch, len(row), len(header))
	}

	columns := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToUpper(strings.TrimSpace(h))
		if _, dup := columns[name]; dup {
			return nil, fmt.Errorf("%w: duplicate column %q", ErrInvalidSchema, h)
		}
		columns[name] = i
	}

	v := make(Vector, len(s.Fields))
	for i, f := range s.Fields {
		col, ok := columns[strings.ToUpper(f.Key)]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingField, f.Key)
		}
		x, err := parseValue(f.Key, row[col])
		if err != nil {
			return nil, err
		}
		v[i] = x
	}
	return v, nil
}

// ParseList parses a comma-separated list of numbers, e.g. "1200.5,300,0,5000,800".
func ParseList(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for i, p := range parts {
		x, err := parseValue(strconv.Itoa(i), p)
		if err != nil {
			return nil, err
		}
		out = append(out, x)
	}
	return out, nil
}

func parseValue(key, raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("%w: %s", ErrMissingField, key)
	}

	x, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidValue, key, raw)
	}
	return x, nil
}

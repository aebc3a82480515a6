// Package features defines the ordered feature schema an artifact bundle was
// fitted on and assembles raw submissions into feature vectors in that order.
package features

import "fmt"

// Vector is an ordered row of raw feature values. Position is significant:
// index i holds the value of the schema's i-th field.
type Vector []float64

// Field describes one input column. Min, Max and Step are presentation hints
// for input widgets; they are not enforced when assembling a Vector.
type Field struct {
	Key   string   `yaml:"key" json:"key"`
	Label string   `yaml:"label" json:"label"`
	Help  string   `yaml:"help,omitempty" json:"help,omitempty"`
	Min   *float64 `yaml:"min,omitempty" json:"min,omitempty"`
	Max   *float64 `yaml:"max,omitempty" json:"max,omitempty"`
	Step  float64  `yaml:"step,omitempty" json:"step,omitempty"`
}

// Schema is a named, ordered list of fields.
type Schema struct {
	Name   string  `yaml:"name" json:"name"`
	Fields []Field `yaml:"fields" json:"fields"`
}

// Len returns the number of fields, which is the required Vector length.
func (s Schema) Len() int {
	return len(s.Fields)
}

// Keys returns the field keys in vector order.
func (s Schema) Keys() []string {
	keys := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		keys[i] = f.Key
	}
	return keys
}

// Index returns the vector position of key, or -1.
func (s Schema) Index(key string) int {
	for i, f := range s.Fields {
		if f.Key == key {
			return i
		}
	}
	return -1
}

// Validate checks that the schema has fields and that keys are non-empty and unique.
func (s Schema) Validate() error {
	if len(s.Fields) == 0 {
		return ErrEmptySchema
	}

	seen := make(map[string]struct{}, len(s.Fields))
	for i, f := range s.Fields {
		if f.Key == "" {
			return fmt.Errorf("%w: field %d has no key", ErrInvalidSchema, i)
		}
		if _, dup := seen[f.Key]; dup {
			return fmt.Errorf("%w: duplicate key %s", ErrInvalidSchema, f.Key)
		}
		seen[f.Key] = struct{}{}
	}
	return nil
}

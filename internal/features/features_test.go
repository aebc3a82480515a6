package features_test

import (
	"errors"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/JaimeStill/segmenter/internal/features"
)

func core5(t *testing.T) features.Schema {
	t.Helper()
	s, err := features.Variant(features.VariantCore5)
	if err != nil {
		t.Fatalf("variant: %v", err)
	}
	return s
}

func TestVariantLengths(t *testing.T) {
	tests := []struct {
		name string
		want int
	}{
		{features.VariantCore5, 5},
		{features.VariantFull17, 17},
		{features.VariantExtended24, 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := features.Variant(tt.name)
			if err != nil {
				t.Fatalf("variant: %v", err)
			}
			if s.Len() != tt.want {
				t.Errorf("len: got %d, want %d", s.Len(), tt.want)
			}
			if err := s.Validate(); err != nil {
				t.Errorf("validate: %v", err)
			}
		})
	}
}

func TestVariantUnknown(t *testing.T) {
	if _, err := features.Variant("core-6"); !errors.Is(err, features.ErrUnknownVariant) {
		t.Errorf("error: got %v, want ErrUnknownVariant", err)
	}
}

func TestVariants(t *testing.T) {
	want := []string{"core-5", "extended-24", "full-17"}
	if diff := cmp.Diff(want, features.Variants()); diff != "" {
		t.Errorf("variants mismatch (-want +got):\n%s", diff)
	}
}

func TestCore5Order(t *testing.T) {
	want := []string{"BALANCE", "PURCHASES", "CASH_ADVANCE", "CREDIT_LIMIT", "PAYMENTS"}
	if diff := cmp.Diff(want, core5(t).Keys()); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestFromValues(t *testing.T) {
	s := core5(t)

	values := url.Values{
		"PAYMENTS":     {"800"},
		"BALANCE":      {" 1200.5 "},
		"PURCHASES":    {"300"},
		"CASH_ADVANCE": {"0"},
		"CREDIT_LIMIT": {"5000"},
	}

	got, err := s.FromValues(values)
	if err != nil {
		t.Fatalf("from values: %v", err)
	}

	want := features.Vector{1200.5, 300, 0, 5000, 800}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("vector mismatch (-want +got):\n%s", diff)
	}
}

func TestFromValuesErrors(t *testing.T) {
	s := core5(t)
	full := func() url.Values {
		return url.Values{
			"BALANCE": {"1"}, "PURCHASES": {"1"}, "CASH_ADVANCE": {"1"},
			"CREDIT_LIMIT": {"1"}, "PAYMENTS": {"1"},
		}
	}

	tests := []struct {
		name   string
		mutate func(url.Values)
		want   error
	}{
		{"missing", func(v url.Values) { v.Del("PAYMENTS") }, features.ErrMissingField},
		{"blank", func(v url.Values) { v.Set("BALANCE", "  ") }, features.ErrMissingField},
		{"non-numeric", func(v url.Values) { v.Set("BALANCE", "abc") }, features.ErrInvalidValue},
		{"nan", func(v url.Values) { v.Set("BALANCE", "NaN") }, features.ErrInvalidValue},
		{"inf", func(v url.Values) { v.Set("BALANCE", "+Inf") }, features.ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := full()
			tt.mutate(v)
			if _, err := s.FromValues(v); !errors.Is(err, tt.want) {
				t.Errorf("error: got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFromValuesIgnoresRangeHints(t *testing.T) {
	s := core5(t)
	values := url.Values{
		"BALANCE": {"-50"}, "PURCHASES": {"0"}, "CASH_ADVANCE": {"0"},
		"CREDIT_LIMIT": {"0"}, "PAYMENTS": {"0"},
	}

	got, err := s.FromValues(values)
	if err != nil {
		t.Fatalf("from values: %v", err)
	}
	if got[0] != -50 {
		t.Errorf("balance: got %v, want -50", got[0])
	}
}

func TestFromMap(t *testing.T) {
	s := core5(t)

	m := map[string]float64{
		"BALANCE": 1, "PURCHASES": 2, "CASH_ADVANCE": 3, "CREDIT_LIMIT": 4, "PAYMENTS": 5,
	}
	got, err := s.FromMap(m)
	if err != nil {
		t.Fatalf("from map: %v", err)
	}
	if diff := cmp.Diff(features.Vector{1, 2, 3, 4, 5}, got); diff != "" {
		t.Errorf("vector mismatch (-want +got):\n%s", diff)
	}

	m["TENURE"] = 12
	if _, err := s.FromMap(m); !errors.Is(err, features.ErrUnknownField) {
		t.Errorf("unknown key: got %v, want ErrUnknownField", err)
	}

	delete(m, "TENURE")
	delete(m, "PAYMENTS")
	if _, err := s.FromMap(m); !errors.Is(err, features.ErrMissingField) {
		t.Errorf("missing key: got %v, want ErrMissingField", err)
	}
}

func TestFromSlice(t *testing.T) {
	s := core5(t)

	if _, err := s.FromSlice([]float64{0, 0, 0, 0, 0}); err != nil {
		t.Errorf("five values: %v", err)
	}
	if _, err := s.FromSlice([]float64{0, 0, 0, 0}); !errors.Is(err, features.ErrLengthMismatch) {
		t.Errorf("four values: got %v, want ErrLengthMismatch", err)
	}
}

func TestFromRecord(t *testing.T) {
	s := core5(t)
	header := []string{"cust_id", "payments", "balance", "purchases", "cash_advance", "credit_limit"}
	row := []string{"C10001", "201.8", "40.9", "95.4", "0", "1000"}

	got, err := s.FromRecord(header, row)
	if err != nil {
		t.Fatalf("from record: %v", err)
	}
	want := features.Vector{40.9, 95.4, 0, 1000, 201.8}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("vector mismatch (-want +got):\n%s", diff)
	}

	if _, err := s.FromRecord(header[:5], row[:5]); !errors.Is(err, features.ErrMissingField) {
		t.Errorf("missing column: got %v, want ErrMissingField", err)
	}

	dup := []string{"balance", "purchases", "cash_advance", "credit_limit", "payments", "BALANCE "}
	if _, err := s.FromRecord(dup, []string{"1", "0", "0", "0", "0", "2"}); !errors.Is(err, features.ErrInvalidSchema) {
		t.Errorf("duplicate column: got %v, want ErrInvalidSchema", err)
	}
}

func TestParseList(t *testing.T) {
	got, err := features.ParseList("1200.5, 300,0,5000 ,800")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if diff := cmp.Diff([]float64{1200.5, 300, 0, 5000, 800}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	if _, err := features.ParseList("1,,2"); !errors.Is(err, features.ErrMissingField) {
		t.Errorf("blank entry: got %v", err)
	}
}

func TestSchemaValidate(t *testing.T) {
	tests := []struct {
		name   string
		schema features.Schema
		want   error
	}{
		{"empty", features.Schema{Name: "x"}, features.ErrEmptySchema},
		{"blank key", features.Schema{Fields: []features.Field{{Label: "a"}}}, features.ErrInvalidSchema},
		{"duplicate", features.Schema{Fields: []features.Field{{Key: "A"}, {Key: "A"}}}, features.ErrInvalidSchema},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.schema.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("error: got %v, want %v", err, tt.want)
			}
		})
	}
}

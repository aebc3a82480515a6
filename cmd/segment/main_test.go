package main

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JaimeStill/segmenter/internal/segments"
)

var bundleDir = filepath.Join("..", "..", "artifacts")

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestPredictValues(t *testing.T) {
	out, err := execute(t, "predict", "--bundle", bundleDir, "--values", "0,0,0,0,0")
	if err != nil {
		t.Fatalf("predict: %v", err)
	}

	if !strings.Contains(out, "Cluster:  0 (Dormant Starters)") {
		t.Errorf("output missing cluster line:\n%s", out)
	}
	if !strings.Contains(out, "Target with onboarding and awareness campaigns") {
		t.Errorf("output missing strategy:\n%s", out)
	}
}

func TestPredictSet(t *testing.T) {
	out, err := execute(t, "predict", "--bundle", bundleDir,
		"--set", "balance=0",
		"--set", "PURCHASES=0",
		"--set", "CASH_ADVANCE=0",
		"--set", "CREDIT_LIMIT=0",
		"--set", "PAYMENTS=0",
	)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if !strings.Contains(out, "Cluster:  0") {
		t.Errorf("output missing cluster line:\n%s", out)
	}
}

func TestPredictJSON(t *testing.T) {
	out, err := execute(t, "predict", "--bundle", bundleDir, "--values", "0,0,0,0,0", "--json")
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if !strings.Contains(out, `"cluster": 0`) {
		t.Errorf("json output missing cluster:\n%s", out)
	}
}

func TestPredictFailures(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"short vector", []string{"--values", "0,0,0,0"}},
		{"non-numeric value", []string{"--values", "0,0,abc,0,0"}},
		{"missing feature", []string{"--set", "BALANCE=1"}},
		{"non-numeric set", []string{"--set", "BALANCE=x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"predict", "--bundle", bundleDir}, tt.args...)
			out, err := execute(t, args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if err.Error() != segments.FailureMessage {
				t.Errorf("error: got %q, want %q", err.Error(), segments.FailureMessage)
			}
			if strings.Contains(out, "Cluster:") {
				t.Errorf("failure printed a cluster:\n%s", out)
			}
		})
	}
}

func TestPredictRequiresInput(t *testing.T) {
	if _, err := execute(t, "predict", "--bundle", bundleDir); err == nil {
		t.Error("expected error without --values or --set")
	}
	if _, err := execute(t, "predict", "--bundle", bundleDir, "--values", "0", "--set", "BALANCE=0"); err == nil {
		t.Error("expected error with both --values and --set")
	}
}

func TestPredictMissingBundle(t *testing.T) {
	if _, err := execute(t, "predict", "--bundle", t.TempDir(), "--values", "0,0,0,0,0"); err == nil {
		t.Error("expected error for empty bundle directory")
	}
}

func TestBatch(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "customers.csv")
	output := filepath.Join(dir, "segments.csv")

	data := "CUST_ID,payments,BALANCE,PURCHASES,CASH_ADVANCE,CREDIT_LIMIT\n" +
		"C1,0,0,0,0,0\n" +
		"C2,0,0,abc,0,0\n"
	if err := os.WriteFile(input, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := execute(t, "batch", "--bundle", bundleDir, "--input", input, "--output", output); err != nil {
		t.Fatalf("batch: %v", err)
	}

	f, err := os.Open(output)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("records: got %d, want 3", len(records))
	}

	header := records[0]
	if got := strings.Join(header[len(header)-3:], ","); got != "CLUSTER,PROFILE,ERROR" {
		t.Errorf("appended header: got %q", got)
	}

	ok := records[1]
	if ok[0] != "C1" || ok[6] != "0" || ok[7] != "Dormant Starters" || ok[8] != "" {
		t.Errorf("row 1: got %v", ok)
	}

	bad := records[2]
	if bad[0] != "C2" || bad[6] != "" || bad[8] != segments.FailureMessage {
		t.Errorf("row 2: got %v", bad)
	}
}

func TestBatchRaggedRow(t *testing.T) {
	input := filepath.Join(t.TempDir(), "ragged.csv")
	data := "BALANCE,PURCHASES,CASH_ADVANCE,CREDIT_LIMIT,PAYMENTS\n" +
		"0,0,0,0\n" +
		"0,0,0,0,0\n"
	if err := os.WriteFile(input, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "batch", "--bundle", bundleDir, "--input", input)
	if err != nil {
		t.Fatalf("batch: %v", err)
	}

	r := csv.NewReader(strings.NewReader(out))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("records: got %d, want 3\n%s", len(records), out)
	}

	short := records[1]
	if got := short[len(short)-1]; got != segments.FailureMessage {
		t.Errorf("short row error: got %q, want %q", got, segments.FailureMessage)
	}
	if got := short[len(short)-3]; got != "" {
		t.Errorf("short row cluster: got %q, want empty", got)
	}

	full := records[2]
	if full[5] != "0" || full[6] != "Dormant Starters" || full[7] != "" {
		t.Errorf("full row: got %v", full)
	}
}

func TestBatchStdout(t *testing.T) {
	input := filepath.Join(t.TempDir(), "in.csv")
	data := "BALANCE,PURCHASES,CASH_ADVANCE,CREDIT_LIMIT,PAYMENTS\n0,0,0,0,0\n"
	if err := os.WriteFile(input, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "batch", "--bundle", bundleDir, "--input", input)
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	if !strings.Contains(out, "0,0,0,0,0,0,Dormant Starters,") {
		t.Errorf("stdout output:\n%s", out)
	}
}

func TestProfiles(t *testing.T) {
	out, err := execute(t, "profiles")
	if err != nil {
		t.Fatalf("profiles: %v", err)
	}

	for _, name := range []string{"Dormant Starters", "Affluent Spenders", "Cash-Reliant Revolvers", "Steady Transactors"} {
		if !strings.Contains(out, name) {
			t.Errorf("output missing %q", name)
		}
	}
}

func TestSchema(t *testing.T) {
	out, err := execute(t, "schema")
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	for _, want := range []string{"core-5\t5 features", "full-17\t17 features", "extended-24\t24 features"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	out, err = execute(t, "schema", "core-5")
	if err != nil {
		t.Fatalf("schema core-5: %v", err)
	}
	if !strings.Contains(out, "BALANCE") || !strings.Contains(out, "PAYMENTS") {
		t.Errorf("core-5 output:\n%s", out)
	}

	if _, err := execute(t, "schema", "nope"); err == nil {
		t.Error("expected error for unknown variant")
	}
}

func TestVerify(t *testing.T) {
	out, err := execute(t, "verify", "--bundle", bundleDir)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}

	for _, want := range []string{"features:  5", "clusters:  4", "every cluster covered", "ok"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestVerifyMissingArtifact(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"manifest.yaml", "scaler.json", "kmeans.json"} {
		data, err := os.ReadFile(filepath.Join(bundleDir, name))
		if err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	out, err := execute(t, "verify", "--bundle", dir)
	if err == nil {
		t.Fatal("expected missing artifact error")
	}
	if !strings.Contains(out, "missing:   pca.json") {
		t.Errorf("output missing key:\n%s", out)
	}
	if !strings.Contains(err.Error(), "pca.json") {
		t.Errorf("error does not name the key: %v", err)
	}
	if strings.Contains(out, "clusters:") {
		t.Errorf("verify decoded an incomplete bundle:\n%s", out)
	}
}

func TestVerifyIncompleteCatalog(t *testing.T) {
	catalog := filepath.Join(t.TempDir(), "profiles.yaml")
	data := `profiles:
  - id: 0
    name: Only
    description: A single profile.
    risk_tier: low
    color: "#000000"
    strategies:
      - Do something
`
	if err := os.WriteFile(catalog, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "verify", "--bundle", bundleDir, "--profiles", catalog)
	if err == nil {
		t.Fatal("expected coverage error")
	}
	if !strings.Contains(out, "incomplete") {
		t.Errorf("output:\n%s", out)
	}
}

package diagnostics

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSnapshot(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}
	return path
}

func TestLoadSnapshotYAMLScalarCodes(t *testing.T) {
	path := writeSnapshot(t, "diags.yaml", `
- range:
    startLine: 3
    endLine: 3
  code: CS8019
- range:
    startLine: 7
    endLine: 8
  code: CS0168
`)

	findings, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("load snapshot: %v", err)
	}
	if len(findings) != 1 {
		t.Fatalf("expected 1 recognized finding, got %+v", findings)
	}
	f := findings[0]
	if f.StartLine != 3 || f.EndLine != 3 || f.Code != "CS8019" {
		t.Fatalf("unexpected finding %+v", f)
	}
}

func TestLoadSnapshotYAMLObjectCodes(t *testing.T) {
	path := writeSnapshot(t, "diags.yaml", `
- range:
    startLine: 5
    endLine: 5
  code:
    value: IDE0005
    target: Style
`)

	findings, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("load snapshot: %v", err)
	}
	if len(findings) != 1 || findings[0].Code != "IDE0005" {
		t.Fatalf("object-form code not decoded: %+v", findings)
	}
}

func TestLoadSnapshotJSON(t *testing.T) {
	path := writeSnapshot(t, "diags.json", `[
  {"range": {"startLine": 2, "endLine": 2}, "code": "CS8019"},
  {"range": {"startLine": 4, "endLine": 4}, "code": {"value": "IDE0005.gen", "target": "Style"}}
]`)

	findings, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("load snapshot: %v", err)
	}
	if len(findings) != 2 {
		t.Fatalf("expected 2 findings, got %+v", findings)
	}
	if findings[1].Code != "IDE0005.gen" {
		t.Fatalf("IDE0005 family must match by prefix: %+v", findings[1])
	}
}

func TestLoadSnapshotMissingFile(t *testing.T) {
	if _, err := LoadSnapshot(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing snapshot")
	}
}

func TestLoadSnapshotMalformed(t *testing.T) {
	path := writeSnapshot(t, "diags.json", `{"not": "a list"`)
	if _, err := LoadSnapshot(path); err == nil {
		t.Fatalf("expected error for malformed snapshot")
	}
}

func TestRecognized(t *testing.T) {
	cases := map[string]bool{
		"CS8019":      true,
		"IDE0005":     true,
		"IDE0005.gen": true,
		"CS0168":      false,
		"IDE0051":     false,
		"":            false,
	}
	for code, want := range cases {
		if got := Recognized(code); got != want {
			t.Fatalf("Recognized(%q) = %v, want %v", code, got, want)
		}
	}
}

func TestUnusedCovers(t *testing.T) {
	u := Unused{StartLine: 3, EndLine: 5}
	if !u.Covers(3) || !u.Covers(5) {
		t.Fatalf("range bounds must be inclusive")
	}
	if u.Covers(2) || u.Covers(6) {
		t.Fatalf("lines outside the range must not be covered")
	}
}

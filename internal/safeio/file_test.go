package safeio

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadFileReadsExactPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.cs")
	if err := os.WriteFile(path, []byte("using System;\n"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	data, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile returned error: %v", err)
	}
	if string(data) != "using System;\n" {
		t.Fatalf("unexpected content: %q", data)
	}
}

func TestReadFileMissing(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "absent.cs")); err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}

func TestWriteFileReplacesContentAndKeepsMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.cs")
	if err := os.WriteFile(path, []byte("old"), 0o640); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if err := WriteFile(path, []byte("new content")); err != nil {
		t.Fatalf("WriteFile returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "new content" {
		t.Fatalf("unexpected content: %q", data)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o640 {
		t.Fatalf("file mode changed: %v", info.Mode())
	}
}

func TestWriteFileRequiresExistingFile(t *testing.T) {
	if err := WriteFile(filepath.Join(t.TempDir(), "absent.cs"), []byte("x")); err == nil {
		t.Fatal("expected error for missing target, got nil")
	}
}

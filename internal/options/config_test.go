package options

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadTOMLConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".usingfmt.toml", "sort_order = \"Contoso System\"\nsplit_groups = false\n")

	overrides, path, err := Load(dir, "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !strings.HasSuffix(path, ".usingfmt.toml") {
		t.Fatalf("unexpected config path %q", path)
	}
	if overrides.SortOrder == nil || *overrides.SortOrder != "Contoso System" {
		t.Fatalf("sort_order not decoded: %+v", overrides)
	}
	if overrides.SplitGroups == nil || *overrides.SplitGroups {
		t.Fatalf("split_groups not decoded: %+v", overrides)
	}
	if overrides.StaticPlacement != nil {
		t.Fatalf("absent keys must stay nil: %+v", overrides)
	}
}

func TestLoadYAMLConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".usingfmt.yml", "static_placement: intermixed\ndisable_unused_removal: true\n")

	overrides, _, err := Load(dir, "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if overrides.StaticPlacement == nil || *overrides.StaticPlacement != "intermixed" {
		t.Fatalf("static_placement not decoded: %+v", overrides)
	}
	if overrides.DisableUnusedRemoval == nil || !*overrides.DisableUnusedRemoval {
		t.Fatalf("disable_unused_removal not decoded: %+v", overrides)
	}
}

func TestLoadJSONConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "usingfmt.json", `{"process_conditional_blocks": true}`)

	overrides, _, err := Load(dir, "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if overrides.ProcessConditionalBlocks == nil || !*overrides.ProcessConditionalBlocks {
		t.Fatalf("process_conditional_blocks not decoded: %+v", overrides)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{".usingfmt.toml", "sort_orderr = \"System\"\n"},
		{".usingfmt.yml", "sort_orderr: System\n"},
		{"usingfmt.json", `{"sort_orderr": "System"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, tc.name, tc.content)
			if _, _, err := Load(dir, ""); err == nil {
				t.Fatalf("expected unknown key to be rejected")
			}
		})
	}
}

func TestLoadWalksUpward(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, ".usingfmt.yaml", "split_groups: false\n")
	nested := filepath.Join(root, "src", "project")
	if err := os.MkdirAll(nested, 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	overrides, path, err := Load(nested, "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if overrides.SplitGroups == nil || *overrides.SplitGroups {
		t.Fatalf("config from ancestor directory not applied: %+v", overrides)
	}
	if filepath.Dir(path) != root {
		t.Fatalf("expected config from %s, got %s", root, path)
	}
}

func TestLoadNearestConfigWins(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, ".usingfmt.yaml", "split_groups: false\n")
	nested := filepath.Join(root, "src")
	if err := os.MkdirAll(nested, 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeConfig(t, nested, ".usingfmt.yaml", "split_groups: true\n")

	overrides, path, err := Load(nested, "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if filepath.Dir(path) != nested {
		t.Fatalf("expected nearest config, got %s", path)
	}
	if overrides.SplitGroups == nil || !*overrides.SplitGroups {
		t.Fatalf("nearest config not applied: %+v", overrides)
	}
}

func TestLoadMissingConfigIsNotAnError(t *testing.T) {
	overrides, path, err := Load(t.TempDir(), "")
	if err != nil {
		t.Fatalf("missing config must not error: %v", err)
	}
	if path != "" || overrides != (Overrides{}) {
		t.Fatalf("expected zero overrides, got %+v from %q", overrides, path)
	}
}

func TestLoadExplicitPathMustExist(t *testing.T) {
	if _, _, err := Load(t.TempDir(), "nope.toml"); err == nil {
		t.Fatalf("explicit missing config must error")
	}
}

func TestLoadExplicitPathWins(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".usingfmt.toml", "split_groups = true\n")
	explicit := writeConfig(t, dir, "other.toml", "split_groups = false\n")

	overrides, path, err := Load(dir, explicit)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if path != explicit {
		t.Fatalf("expected explicit path, got %q", path)
	}
	if overrides.SplitGroups == nil || *overrides.SplitGroups {
		t.Fatalf("explicit config not applied: %+v", overrides)
	}
}

func TestLoadRejectsInvalidPlacement(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".usingfmt.toml", "static_placement = \"sideways\"\n")
	if _, _, err := Load(dir, ""); err == nil {
		t.Fatalf("invalid placement must be rejected at load time")
	}
}

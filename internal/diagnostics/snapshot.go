package diagnostics

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// snapshotEntry mirrors one diagnostic record in an analyzer snapshot
// file: a line range and the diagnostic code, scalar or object form.
type snapshotEntry struct {
	Range struct {
		StartLine int `yaml:"startLine" json:"startLine"`
		EndLine   int `yaml:"endLine" json:"endLine"`
	} `yaml:"range" json:"range"`
	Code codeValue `yaml:"code" json:"code"`
}

// LoadSnapshot reads an analyzer diagnostics snapshot and returns the
// findings whose codes identify unused using directives. Records with
// unrecognized codes are ignored, not rejected; analyzer dumps routinely
// mix in unrelated diagnostics.
func LoadSnapshot(path string) ([]Unused, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path supplied by an explicit user flag
	if err != nil {
		return nil, fmt.Errorf("read diagnostics snapshot %s: %w", path, err)
	}

	entries, err := decodeSnapshot(path, data)
	if err != nil {
		return nil, fmt.Errorf("parse diagnostics snapshot %s: %w", path, err)
	}

	findings := make([]Unused, 0, len(entries))
	for _, e := range entries {
		if !Recognized(e.Code.Value) {
			continue
		}
		findings = append(findings, Unused{
			StartLine: e.Range.StartLine,
			EndLine:   e.Range.EndLine,
			Code:      e.Code.Value,
		})
	}
	return findings, nil
}

func decodeSnapshot(path string, data []byte) ([]snapshotEntry, error) {
	var entries []snapshotEntry
	if strings.EqualFold(filepath.Ext(path), ".json") {
		decoder := json.NewDecoder(bytes.NewReader(data))
		if err := decoder.Decode(&entries); err != nil {
			return nil, err
		}
		return entries, nil
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&entries); err != nil {
		return nil, err
	}
	return entries, nil
}

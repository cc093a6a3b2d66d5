// Package diagnostics carries unused-using findings into the formatting
// pipeline. Findings come from an analyzer snapshot file or from the
// built-in syntax-tree analyzer; either way they are reduced to 1-based
// line ranges tagged with the analyzer code that produced them.
package diagnostics

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Codes recognized as unused-using findings. CS8019 is the compiler's
// "unnecessary using directive"; IDE0005 codes are the style analyzer's
// equivalent family and match by prefix.
const (
	CodeUnnecessaryUsing = "CS8019"
	codeStylePrefix      = "IDE0005"
)

// Unused is one finding: the directive occupies the inclusive 1-based
// line range and was flagged with Code.
type Unused struct {
	StartLine int
	EndLine   int
	Code      string
}

// Covers reports whether the finding spans the given 1-based line.
func (u Unused) Covers(line int) bool {
	return line >= u.StartLine && line <= u.EndLine
}

// Recognized reports whether a diagnostic code identifies an unused
// using directive.
func Recognized(code string) bool {
	return code == CodeUnnecessaryUsing || strings.HasPrefix(code, codeStylePrefix)
}

// codeValue decodes the two shapes analyzer dumps use for a code: a bare
// scalar ("CS8019") or an object with a value and an optional target
// ("{value: IDE0005, target: ...}"). Both collapse to the value string.
type codeValue struct {
	Value string
}

func (c *codeValue) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Decode(&c.Value)
	case yaml.MappingNode:
		var obj struct {
			Value  string `yaml:"value"`
			Target string `yaml:"target"`
		}
		if err := node.Decode(&obj); err != nil {
			return err
		}
		c.Value = obj.Value
		return nil
	default:
		return fmt.Errorf("unsupported code shape on line %d", node.Line)
	}
}

func (c *codeValue) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "{") {
		var obj struct {
			Value  string `json:"value"`
			Target string `json:"target"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		c.Value = obj.Value
		return nil
	}
	return json.Unmarshal(data, &c.Value)
}

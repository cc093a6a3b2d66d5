package options

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	readConfigFileErrFmt = "read config file %s: %w"
	parseConfigErrFmt    = "parse config file %s: %w"
)

var configFileNames = []string{".usingfmt.toml", ".usingfmt.yml", ".usingfmt.yaml", "usingfmt.json"}

// Load resolves the config file for a source file: an explicit path wins,
// otherwise the well-known names are tried in each directory from
// startDir upward. A missing config is not an error; the zero Overrides
// value is returned.
func Load(startDir, explicitPath string) (Overrides, string, error) {
	configPath, found, err := resolveConfigPath(startDir, strings.TrimSpace(explicitPath))
	if err != nil {
		return Overrides{}, "", err
	}
	if !found {
		return Overrides{}, "", nil
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- path resolved from fixed names or an explicit user flag
	if err != nil {
		return Overrides{}, "", fmt.Errorf(readConfigFileErrFmt, configPath, err)
	}

	cfg, err := parseConfig(configPath, data)
	if err != nil {
		return Overrides{}, "", fmt.Errorf(parseConfigErrFmt, configPath, err)
	}
	overrides := cfg.toOverrides()
	if err := overrides.Validate(); err != nil {
		return Overrides{}, "", fmt.Errorf(parseConfigErrFmt, configPath, err)
	}
	return overrides, configPath, nil
}

func resolveConfigPath(startDir, explicitPath string) (string, bool, error) {
	if explicitPath != "" {
		candidate := explicitPath
		if !filepath.IsAbs(candidate) {
			candidate = filepath.Join(startDir, candidate)
		}
		candidate = filepath.Clean(candidate)
		if _, err := os.Stat(candidate); err != nil {
			if os.IsNotExist(err) {
				return "", false, fmt.Errorf("config file not found: %s", candidate)
			}
			return "", false, fmt.Errorf(readConfigFileErrFmt, candidate, err)
		}
		return candidate, true, nil
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("resolve config search dir: %w", err)
	}
	for {
		for _, name := range configFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, true, nil
			} else if !os.IsNotExist(err) {
				return "", false, fmt.Errorf(readConfigFileErrFmt, candidate, err)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

type rawConfig struct {
	SortOrder                *string `toml:"sort_order" yaml:"sort_order" json:"sort_order"`
	SplitGroups              *bool   `toml:"split_groups" yaml:"split_groups" json:"split_groups"`
	DisableUnusedRemoval     *bool   `toml:"disable_unused_removal" yaml:"disable_unused_removal" json:"disable_unused_removal"`
	ProcessConditionalBlocks *bool   `toml:"process_conditional_blocks" yaml:"process_conditional_blocks" json:"process_conditional_blocks"`
	StaticPlacement          *string `toml:"static_placement" yaml:"static_placement" json:"static_placement"`
}

func parseConfig(path string, data []byte) (rawConfig, error) {
	var cfg rawConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		decoder := toml.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return rawConfig{}, fmt.Errorf("invalid TOML config: %w", err)
		}
	case ".json":
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return rawConfig{}, fmt.Errorf("invalid JSON config: %w", err)
		}
		if decoder.More() {
			return rawConfig{}, fmt.Errorf("invalid JSON config: multiple JSON values")
		}
	default:
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&cfg); err != nil {
			return rawConfig{}, fmt.Errorf("invalid YAML config: %w", err)
		}
	}
	return cfg, nil
}

func (c rawConfig) toOverrides() Overrides {
	return Overrides{
		SortOrder:                c.SortOrder,
		SplitGroups:              c.SplitGroups,
		DisableUnusedRemoval:     c.DisableUnusedRemoval,
		ProcessConditionalBlocks: c.ProcessConditionalBlocks,
		StaticPlacement:          c.StaticPlacement,
	}
}

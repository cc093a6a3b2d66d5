package report

import (
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"
)

const (
	sarifSchemaURI = "https://json.schemastore.org/sarif-2.1.0.json"
	sarifVersion   = "2.1.0"

	ruleUnorganizedUsings = "usingfmt/format/unorganized-usings"
	ruleUnusedUsing       = "usingfmt/waste/unused-using"
)

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	InformationURI string      `json:"informationUri,omitempty"`
	Version        string      `json:"version,omitempty"`
	Rules          []sarifRule `json:"rules,omitempty"`
}

type sarifRule struct {
	ID               string                 `json:"id"`
	Name             string                 `json:"name,omitempty"`
	ShortDescription sarifMessage           `json:"shortDescription"`
	Help             *sarifMessage          `json:"help,omitempty"`
	Properties       map[string]interface{} `json:"properties,omitempty"`
}

type sarifResult struct {
	RuleID     string                 `json:"ruleId"`
	Level      string                 `json:"level,omitempty"`
	Message    sarifMessage           `json:"message"`
	Locations  []sarifLocation        `json:"locations,omitempty"`
	Properties map[string]interface{} `json:"properties,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           *sarifRegion          `json:"region,omitempty"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine int `json:"startLine,omitempty"`
}

type sarifRuleBuilder struct {
	rules map[string]sarifRule
}

func newSARIFRuleBuilder() *sarifRuleBuilder {
	return &sarifRuleBuilder{rules: make(map[string]sarifRule)}
}

func (b *sarifRuleBuilder) add(rule sarifRule) {
	if _, ok := b.rules[rule.ID]; ok {
		return
	}
	b.rules[rule.ID] = rule
}

func (b *sarifRuleBuilder) list() []sarifRule {
	ids := make([]string, 0, len(b.rules))
	for id := range b.rules {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	items := make([]sarifRule, 0, len(ids))
	for _, id := range ids {
		items = append(items, b.rules[id])
	}
	return items
}

func formatSARIF(rep Report) (string, error) {
	rules := newSARIFRuleBuilder()
	results := buildSARIFResults(rep, rules)

	log := sarifLog{
		Schema:  sarifSchemaURI,
		Version: sarifVersion,
		Runs: []sarifRun{
			{
				Tool: sarifTool{
					Driver: sarifDriver{
						Name:           "usingfmt",
						InformationURI: "https://github.com/usingfmt/usingfmt",
						Version:        reportVersion(rep),
						Rules:          rules.list(),
					},
				},
				Results: results,
			},
		},
	}

	payload, err := json.MarshalIndent(log, "", "  ")
	if err != nil {
		return "", err
	}
	return string(payload) + "\n", nil
}

func reportVersion(rep Report) string {
	version := strings.TrimSpace(rep.SchemaVersion)
	if version == "" {
		version = SchemaVersion
	}
	return version
}

func buildSARIFResults(rep Report, rules *sarifRuleBuilder) []sarifResult {
	results := make([]sarifResult, 0)
	for _, file := range rep.Files {
		results = appendUnorganizedResult(results, rules, file)
		results = appendUnusedUsingResults(results, rules, file)
	}
	sortSARIFResults(results)
	return results
}

func appendUnorganizedResult(results []sarifResult, rules *sarifRuleBuilder, file FileResult) []sarifResult {
	if !file.Changed {
		return results
	}
	rules.add(sarifRule{
		ID:               ruleUnorganizedUsings,
		Name:             "unorganized-usings",
		ShortDescription: sarifMessage{Text: "Using directives are not organized"},
		Help:             &sarifMessage{Text: "Run the formatter in write mode to sort, group and deduplicate the using directives."},
		Properties: map[string]interface{}{
			"category": "format",
		},
	})
	return append(results, sarifResult{
		RuleID:  ruleUnorganizedUsings,
		Level:   "warning",
		Message: sarifMessage{Text: fmt.Sprintf("%s has unorganized using directives.", file.Path)},
		Locations: []sarifLocation{{
			PhysicalLocation: sarifPhysicalLocation{
				ArtifactLocation: sarifArtifactLocation{URI: toSARIFURI(file.Path)},
			},
		}},
	})
}

func appendUnusedUsingResults(results []sarifResult, rules *sarifRuleBuilder, file FileResult) []sarifResult {
	for _, removed := range file.RemovedDirectives {
		rules.add(sarifRule{
			ID:               ruleUnusedUsing,
			Name:             "unused-using",
			ShortDescription: sarifMessage{Text: "Using directive is unnecessary"},
			Help:             &sarifMessage{Text: "Remove using directives the analyzer reports as unused."},
			Properties: map[string]interface{}{
				"category": "waste",
			},
		})

		result := sarifResult{
			RuleID:  ruleUnusedUsing,
			Level:   "warning",
			Message: sarifMessage{Text: fmt.Sprintf("%s has an unnecessary using of %q.", file.Path, removed.Namespace)},
			Properties: map[string]interface{}{
				"namespace": removed.Namespace,
				"code":      removed.Code,
			},
		}
		location := sarifLocation{
			PhysicalLocation: sarifPhysicalLocation{
				ArtifactLocation: sarifArtifactLocation{URI: toSARIFURI(file.Path)},
			},
		}
		if removed.Line > 0 {
			location.PhysicalLocation.Region = &sarifRegion{StartLine: removed.Line}
		}
		result.Locations = []sarifLocation{location}
		results = append(results, result)
	}
	return results
}

func sortSARIFResults(results []sarifResult) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].RuleID != results[j].RuleID {
			return results[i].RuleID < results[j].RuleID
		}
		if results[i].Message.Text != results[j].Message.Text {
			return results[i].Message.Text < results[j].Message.Text
		}
		return resultLocationKey(results[i]) < resultLocationKey(results[j])
	})
}

func resultLocationKey(result sarifResult) string {
	if len(result.Locations) == 0 {
		return ""
	}
	loc := result.Locations[0]
	line := 0
	if loc.PhysicalLocation.Region != nil {
		line = loc.PhysicalLocation.Region.StartLine
	}
	return fmt.Sprintf("%s:%d", loc.PhysicalLocation.ArtifactLocation.URI, line)
}

func toSARIFURI(file string) string {
	file = strings.ReplaceAll(strings.TrimSpace(file), "\\", "/")
	return path.Clean(file)
}

package diagnostics

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/csharp"

	"github.com/usingfmt/usingfmt/internal/directive"
)

// Analyzer finds unused using directives with a syntax-tree pass over a
// single file. It flags exact duplicates and directives importing the
// file's own namespace as CS8019, and alias directives whose alias name
// is never referenced as IDE0005. It deliberately does not resolve
// symbols, so plain namespace imports are only removable when a full
// analyzer snapshot says so.
type Analyzer struct {
	language *sitter.Language
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{language: csharp.GetLanguage()}
}

func (a *Analyzer) Analyze(ctx context.Context, content []byte) ([]Unused, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(a.language)

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("parse source: %w", err)
	}
	if tree == nil {
		return nil, fmt.Errorf("parse source: no syntax tree produced")
	}
	defer tree.Close()

	root := tree.RootNode()
	usings := collectUsings(root, content)
	namespaces := collectNamespaces(root, content)
	identifiers := collectIdentifierCounts(root, content, usings)

	findings := make([]Unused, 0)
	seen := make(map[string]struct{}, len(usings))
	for _, u := range usings {
		switch {
		case !u.stmt.IsDirective():
			continue
		case isDuplicate(seen, u.stmt):
			findings = append(findings, u.finding(CodeUnnecessaryUsing))
		case namespaces[u.stmt.Namespace]:
			findings = append(findings, u.finding(CodeUnnecessaryUsing))
		case u.stmt.IsAlias && identifiers[u.stmt.Alias] == 0:
			findings = append(findings, u.finding(codeStylePrefix))
		}
	}
	return findings, nil
}

type usingNode struct {
	stmt      directive.Statement
	startLine int
	endLine   int
	startByte uint32
	endByte   uint32
}

func (u usingNode) finding(code string) Unused {
	return Unused{StartLine: u.startLine, EndLine: u.endLine, Code: code}
}

func (u usingNode) contains(node *sitter.Node) bool {
	return node.StartByte() >= u.startByte && node.EndByte() <= u.endByte
}

func isDuplicate(seen map[string]struct{}, stmt directive.Statement) bool {
	key := stmt.Key()
	if _, dup := seen[key]; dup {
		return true
	}
	seen[key] = struct{}{}
	return false
}

// collectUsings gathers using_directive nodes and reuses the line parser
// for classification, so the analyzer and the formatter agree on what a
// directive means.
func collectUsings(root *sitter.Node, content []byte) []usingNode {
	usings := make([]usingNode, 0)
	walkNode(root, func(node *sitter.Node) {
		if node.Type() != "using_directive" {
			return
		}
		usings = append(usings, usingNode{
			stmt:      directive.Parse(nodeText(node, content)),
			startLine: int(node.StartPoint().Row) + 1,
			endLine:   int(node.EndPoint().Row) + 1,
			startByte: node.StartByte(),
			endByte:   node.EndByte(),
		})
	})
	return usings
}

func collectNamespaces(root *sitter.Node, content []byte) map[string]bool {
	namespaces := make(map[string]bool)
	walkNode(root, func(node *sitter.Node) {
		switch node.Type() {
		case "namespace_declaration", "file_scoped_namespace_declaration":
			if name := node.ChildByFieldName("name"); name != nil {
				namespaces[nodeText(name, content)] = true
			}
		}
	})
	return namespaces
}

// collectIdentifierCounts counts identifier occurrences outside the
// using directives themselves, which is what decides alias liveness.
func collectIdentifierCounts(root *sitter.Node, content []byte, usings []usingNode) map[string]int {
	counts := make(map[string]int)
	walkNode(root, func(node *sitter.Node) {
		if node.Type() != "identifier" {
			return
		}
		for _, u := range usings {
			if u.contains(node) {
				return
			}
		}
		counts[nodeText(node, content)]++
	})
	return counts
}

func walkNode(node *sitter.Node, visit func(*sitter.Node)) {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		visit(child)
		walkNode(child, visit)
	}
}

func nodeText(node *sitter.Node, content []byte) string {
	if node == nil {
		return ""
	}
	return string(content[node.StartByte():node.EndByte()])
}

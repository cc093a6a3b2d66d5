// Package directive parses single lines of C# source into classified
// using-directive statements. Classification is purely shape-based: it
// recognizes the using-directive vocabulary (directives, aliases, static
// imports, comments, preprocessor lines, blanks) without a grammar.
package directive

import (
	"errors"
	"strings"
)

var ErrNotComment = errors.New("attached statement is not a comment")

// Statement is one parsed source line. Exactly one of the Is* flags is
// set for comments, preprocessor lines and blanks; directives carry a
// non-empty Namespace instead. Statements are immutable after parsing
// except for the attached-comment list.
type Statement struct {
	Raw       string
	Namespace string
	Alias     string

	IsAlias       bool
	IsStatic      bool
	IsConditional bool
	IsComment     bool
	IsBlank       bool

	// Comments that precede this statement and travel with it when it
	// is reordered. Never populated on a Statement that is itself a
	// comment.
	Comments []Statement
}

// Parse classifies one line. Order matters: blank, then comment, then
// preprocessor, then directive shape; anything else is opaque text.
func Parse(line string) Statement {
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "":
		return Statement{Raw: line, IsBlank: true}
	case isCommentText(trimmed):
		return Statement{Raw: line, IsComment: true}
	case strings.HasPrefix(trimmed, "#"):
		return Statement{Raw: line, IsConditional: true}
	}

	rest, _ := cutKeyword(trimmed, "global")
	rest, ok := cutKeyword(rest, "using")
	if !ok {
		return Statement{Raw: line}
	}
	rest, isStatic := cutKeyword(rest, "static")

	body := rest
	if idx := strings.Index(body, ";"); idx >= 0 {
		body = body[:idx]
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return Statement{Raw: line}
	}

	if alias, target, found := strings.Cut(body, "="); found && !isStatic {
		return Statement{
			Raw:       line,
			Namespace: normalizeNamespace(target),
			Alias:     strings.TrimSpace(alias),
			IsAlias:   true,
		}
	}

	return Statement{
		Raw:       line,
		Namespace: normalizeNamespace(body),
		IsStatic:  isStatic,
	}
}

// IsUsingLine reports whether a raw line has import-directive shape: an
// optional global modifier, the using keyword, and a namespace operand.
// Resource-scoping statements (opening parenthesis straight after the
// keyword) and local bindings with an inline "= new" initializer share
// the keyword but are usage constructs, not directives.
func IsUsingLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	rest, _ := cutKeyword(trimmed, "global")
	rest, ok := cutKeyword(rest, "using")
	if !ok {
		return false
	}
	if strings.HasPrefix(rest, "(") {
		return false
	}
	if hasInlineNew(rest) {
		return false
	}
	return strings.TrimSpace(rest) != ""
}

// IsDirective reports whether the statement is an actual import, static
// import or alias directive.
func (s Statement) IsDirective() bool {
	return s.Namespace != "" && !s.IsComment && !s.IsConditional && !s.IsBlank
}

// Root returns the first dot-separated segment of the namespace path.
func (s Statement) Root() string {
	if s.Namespace == "" {
		return ""
	}
	root, _, _ := strings.Cut(s.Namespace, ".")
	return root
}

// Key is the deduplication key: the normalized namespace path, prefixed
// with the alias name for alias directives so that distinct aliases of
// one namespace survive. Non-directives have an empty key and never
// participate in deduplication.
func (s Statement) Key() string {
	if !s.IsDirective() {
		return ""
	}
	if s.IsAlias {
		return s.Alias + "=" + s.Namespace
	}
	if s.IsStatic {
		return "static " + s.Namespace
	}
	return s.Namespace
}

// WithComments returns a copy of the statement carrying the given
// attached comments. Attaching to a comment, or attaching a non-comment,
// breaks a pipeline invariant and is reported as an error.
func (s Statement) WithComments(comments []Statement) (Statement, error) {
	if s.IsComment {
		return s, ErrNotComment
	}
	for _, c := range comments {
		if !c.IsComment {
			return s, ErrNotComment
		}
	}
	out := s
	out.Comments = append([]Statement{}, comments...)
	return out, nil
}

// Lines renders the statement with its attached comments, in source order.
func (s Statement) Lines() []string {
	lines := make([]string, 0, len(s.Comments)+1)
	for _, c := range s.Comments {
		lines = append(lines, c.Raw)
	}
	return append(lines, s.Raw)
}

func isCommentText(trimmed string) bool {
	return strings.HasPrefix(trimmed, "//") ||
		strings.HasPrefix(trimmed, "/*") ||
		strings.Contains(trimmed, "*/")
}

func normalizeNamespace(value string) string {
	value = strings.TrimSpace(value)
	return strings.TrimPrefix(value, "global::")
}

// cutKeyword strips a leading keyword when it is followed by whitespace,
// returning the remainder with leading space trimmed.
func cutKeyword(s, keyword string) (string, bool) {
	if !strings.HasPrefix(s, keyword) {
		return s, false
	}
	rest := s[len(keyword):]
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return s, false
	}
	return strings.TrimLeft(rest, " \t"), true
}

func hasInlineNew(rest string) bool {
	_, after, found := strings.Cut(rest, "=")
	if !found {
		return false
	}
	after = strings.TrimLeft(after, " \t")
	word, _ := cutAnyKeyword(after, "new")
	return word
}

func cutAnyKeyword(s, keyword string) (bool, string) {
	if !strings.HasPrefix(s, keyword) {
		return false, s
	}
	rest := s[len(keyword):]
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' && rest[0] != '(' {
		return false, s
	}
	return true, rest
}

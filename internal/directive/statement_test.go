package directive

import (
	"errors"
	"testing"
)

func TestParseClassifiesLines(t *testing.T) {
	cases := []struct {
		name string
		line string
		want Statement
	}{
		{name: "blank", line: "   ", want: Statement{IsBlank: true}},
		{name: "line comment", line: "// header", want: Statement{IsComment: true}},
		{name: "block comment open", line: "/* start", want: Statement{IsComment: true}},
		{name: "block comment close", line: " end */", want: Statement{IsComment: true}},
		{name: "conditional", line: "#if DEBUG", want: Statement{IsConditional: true}},
		{name: "plain using", line: "using System.Text;", want: Statement{Namespace: "System.Text"}},
		{name: "global using", line: "global using System;", want: Statement{Namespace: "System"}},
		{name: "static using", line: "using static System.Math;", want: Statement{Namespace: "System.Math", IsStatic: true}},
		{name: "global static using", line: "global using static System.Math;", want: Statement{Namespace: "System.Math", IsStatic: true}},
		{name: "alias", line: "using IO = System.IO;", want: Statement{Namespace: "System.IO", Alias: "IO", IsAlias: true}},
		{name: "global scope operand", line: "using global::Company.Core;", want: Statement{Namespace: "Company.Core"}},
		{name: "opaque", line: "namespace App {", want: Statement{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Parse(tc.line)
			if got.Namespace != tc.want.Namespace || got.Alias != tc.want.Alias {
				t.Fatalf("unexpected namespace/alias: %+v", got)
			}
			if got.IsAlias != tc.want.IsAlias || got.IsStatic != tc.want.IsStatic {
				t.Fatalf("unexpected directive flags: %+v", got)
			}
			if got.IsComment != tc.want.IsComment || got.IsConditional != tc.want.IsConditional || got.IsBlank != tc.want.IsBlank {
				t.Fatalf("unexpected classification flags: %+v", got)
			}
			if got.Raw != tc.line {
				t.Fatalf("raw text not preserved: %q", got.Raw)
			}
		})
	}
}

func TestIsUsingLineExcludesUsageConstructs(t *testing.T) {
	cases := []struct {
		line string
		want bool
	}{
		{"using System;", true},
		{"  global using System.Linq;", true},
		{"using static System.Math;", true},
		{"using IO = System.IO;", true},
		{"using (var stream = File.OpenRead(path))", false},
		{"using(var stream = File.OpenRead(path))", false},
		{"using var writer = new StreamWriter(path);", false},
		{"using Foo foo = new Foo();", false},
		{"using", false},
		{"usingSystem;", false},
		{"// using System;", false},
	}
	for _, tc := range cases {
		if got := IsUsingLine(tc.line); got != tc.want {
			t.Fatalf("IsUsingLine(%q) = %v, want %v", tc.line, got, tc.want)
		}
	}
}

func TestRootAndKey(t *testing.T) {
	plain := Parse("using System.Collections.Generic;")
	if plain.Root() != "System" {
		t.Fatalf("unexpected root: %q", plain.Root())
	}
	if plain.Key() != "System.Collections.Generic" {
		t.Fatalf("unexpected key: %q", plain.Key())
	}

	alias := Parse("using Col = System.Collections;")
	if alias.Key() != "Col=System.Collections" {
		t.Fatalf("unexpected alias key: %q", alias.Key())
	}

	static := Parse("using static System.Math;")
	if static.Key() != "static System.Math" {
		t.Fatalf("unexpected static key: %q", static.Key())
	}

	comment := Parse("// nothing")
	if comment.Key() != "" {
		t.Fatalf("comments must not carry dedup keys, got %q", comment.Key())
	}
}

func TestWithCommentsGuardsInvariant(t *testing.T) {
	using := Parse("using System;")
	comment := Parse("// keep me")

	attached, err := using.WithComments([]Statement{comment})
	if err != nil {
		t.Fatalf("attach comment: %v", err)
	}
	if len(attached.Comments) != 1 || attached.Comments[0].Raw != "// keep me" {
		t.Fatalf("unexpected attachments: %+v", attached.Comments)
	}
	if len(using.Comments) != 0 {
		t.Fatalf("WithComments must not mutate the receiver")
	}

	if _, err := using.WithComments([]Statement{Parse("using System.IO;")}); !errors.Is(err, ErrNotComment) {
		t.Fatalf("expected ErrNotComment, got %v", err)
	}
	if _, err := comment.WithComments([]Statement{Parse("// other")}); !errors.Is(err, ErrNotComment) {
		t.Fatalf("expected ErrNotComment for comment receiver, got %v", err)
	}
}

func TestLinesRendersAttachedCommentsFirst(t *testing.T) {
	using := Parse("using System;")
	attached, err := using.WithComments([]Statement{Parse("// a"), Parse("// b")})
	if err != nil {
		t.Fatalf("attach: %v", err)
	}
	lines := attached.Lines()
	if len(lines) != 3 || lines[0] != "// a" || lines[1] != "// b" || lines[2] != "using System;" {
		t.Fatalf("unexpected lines: %v", lines)
	}
}

package transform

import (
	"testing"

	"github.com/usingfmt/usingfmt/internal/directive"
)

func parseDirective(t *testing.T, line string) directive.Statement {
	t.Helper()
	s := directive.Parse(line)
	if !s.IsDirective() {
		t.Fatalf("expected directive, got %+v", s)
	}
	return s
}

func TestComparatorPriorityWinsOverAlphabet(t *testing.T) {
	cmp := NewComparator([]string{"System"})
	system := parseDirective(t, "using System.Text;")
	apple := parseDirective(t, "using Apple;")

	if !cmp.Less(system, apple) {
		t.Fatalf("prioritized namespace must sort first")
	}
	if cmp.Less(apple, system) {
		t.Fatalf("ordering must be asymmetric")
	}
}

func TestComparatorFirstListedPrefixRanksHighest(t *testing.T) {
	cmp := NewComparator([]string{"Contoso", "System"})
	contoso := parseDirective(t, "using Contoso.Web;")
	system := parseDirective(t, "using System;")

	if !cmp.Less(contoso, system) {
		t.Fatalf("first listed prefix must outrank later ones")
	}
}

func TestComparatorPrefixMatchIsCaseSensitive(t *testing.T) {
	cmp := NewComparator([]string{"System"})
	lower := parseDirective(t, "using system.Text;")
	apple := parseDirective(t, "using Apple;")

	// "system" does not match the "System" prefix, so plain
	// alphabetical order applies.
	if !cmp.Less(apple, lower) {
		t.Fatalf("case-mismatched prefix must not gain priority")
	}
}

func TestComparatorAlphabeticalTieBreaks(t *testing.T) {
	cmp := NewComparator(nil)

	cases := []struct {
		name  string
		first string
		last  string
	}{
		{"case insensitive alphabet", "using apple;", "using Banana;"},
		{"lowercase first on pure case tie", "using apple;", "using Apple;"},
		{"shorter namespace first", "using App;", "using App.Core;"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := parseDirective(t, tc.first)
			b := parseDirective(t, tc.last)
			if !cmp.Less(a, b) {
				t.Fatalf("expected %q before %q", tc.first, tc.last)
			}
			if cmp.Less(b, a) {
				t.Fatalf("ordering must be asymmetric for %q / %q", tc.first, tc.last)
			}
		})
	}
}

func TestComparatorEqualOperands(t *testing.T) {
	cmp := NewComparator([]string{"System"})
	a := parseDirective(t, "using System.IO;")
	if cmp.Compare(a, a) != 0 {
		t.Fatalf("an operand must compare equal to itself")
	}
}

func TestComparatorAliasSortsByAliasName(t *testing.T) {
	cmp := NewComparator(nil)
	early := parseDirective(t, "using Aaa = Zebra.Types;")
	late := parseDirective(t, "using Zzz = Apple.Types;")

	if !cmp.Less(early, late) {
		t.Fatalf("aliases must order by displayed alias name")
	}
}

// Package transform implements the ordered using-directive transforms:
// unused removal, sorting, conditional-block isolation, namespace group
// splitting and whitespace normalization. Every stage is a pure function
// over statement slices; the pipeline composes them so that repeated
// runs converge to a fixed point.
package transform

import (
	"strings"

	"github.com/usingfmt/usingfmt/internal/directive"
)

// Comparator is a strict weak ordering over directives. Priority comes
// from the configured namespace-prefix list (first listed wins, matching
// is case-sensitive); ties fall back to case-insensitive alphabetical
// order, then length, then a deterministic lowercase-first scan.
type Comparator struct {
	priorities []string
}

func NewComparator(sortOrder []string) Comparator {
	return Comparator{priorities: sortOrder}
}

func (c Comparator) Less(a, b directive.Statement) bool {
	return c.Compare(a, b) < 0
}

func (c Comparator) Compare(a, b directive.Statement) int {
	left := sortKey(a)
	right := sortKey(b)

	if ra, rb := c.rank(left), c.rank(right); ra != rb {
		if ra > rb {
			return -1
		}
		return 1
	}

	if cmp := strings.Compare(strings.ToLower(left), strings.ToLower(right)); cmp != 0 {
		return cmp
	}
	if len(left) != len(right) {
		if len(left) < len(right) {
			return -1
		}
		return 1
	}
	return compareCase(left, right)
}

// rank maps a namespace to its priority: the first configured prefix
// that matches wins, with earlier entries ranking higher. Unmatched
// namespaces rank zero.
func (c Comparator) rank(namespace string) int {
	for i, prefix := range c.priorities {
		if len(prefix) <= len(namespace) && strings.HasPrefix(namespace, prefix) {
			return len(c.priorities) - i
		}
	}
	return 0
}

// sortKey is the text a directive sorts by: alias directives order by
// their displayed alias name, everything else by namespace path.
func sortKey(s directive.Statement) string {
	if s.IsAlias {
		return s.Alias
	}
	return s.Namespace
}

// compareCase breaks exact case-insensitive ties: at the first position
// where only the case differs, the lowercase operand sorts first.
func compareCase(a, b string) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] == b[i] {
			continue
		}
		if isLowerByte(a[i]) {
			return -1
		}
		return 1
	}
	return 0
}

func isLowerByte(c byte) bool {
	return c >= 'a' && c <= 'z'
}

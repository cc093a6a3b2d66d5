package transform

import (
	"sort"

	"github.com/usingfmt/usingfmt/internal/directive"
	"github.com/usingfmt/usingfmt/internal/options"
)

// Sorter orders and deduplicates the directives of one region. Comment
// runs travel with the directive that follows them; comments left
// without a following directive are orphaned and emitted first, in
// their original relative order.
type Sorter struct {
	cmp       Comparator
	placement options.StaticPlacement
}

func NewSorter(cmp Comparator, placement options.StaticPlacement) Sorter {
	return Sorter{cmp: cmp, placement: placement}
}

func (s Sorter) Sort(statements []directive.Statement) ([]directive.Statement, error) {
	orphans, regular, static, aliases, passthrough, err := s.partition(statements)
	if err != nil {
		return nil, err
	}

	var body []directive.Statement
	switch s.placement {
	case options.StaticIntermixed:
		merged := append(append([]directive.Statement{}, regular...), static...)
		body = s.sortAndDedup(merged)
	case options.StaticGrouped:
		body = s.groupStatics(s.sortAndDedup(regular), s.sortAndDedup(static))
	default:
		body = append(s.sortAndDedup(regular), s.sortAndDedup(static)...)
	}

	out := make([]directive.Statement, 0, len(statements))
	out = append(out, orphans...)
	out = append(out, body...)
	out = append(out, s.sortAndDedup(aliases)...)
	out = append(out, passthrough...)
	return out, nil
}

// partition splits the statement stream into sortable categories while
// attaching each comment run to the next directive. A blank, conditional
// or opaque line between a comment run and a directive orphans the run.
func (s Sorter) partition(statements []directive.Statement) (orphans, regular, static, aliases, passthrough []directive.Statement, err error) {
	var pending []directive.Statement
	flush := func() {
		orphans = append(orphans, pending...)
		pending = nil
	}

	for _, st := range statements {
		switch {
		case st.IsComment:
			pending = append(pending, st)
		case st.IsDirective():
			attached := st
			if len(pending) > 0 {
				attached, err = st.WithComments(pending)
				if err != nil {
					return nil, nil, nil, nil, nil, err
				}
				pending = nil
			}
			switch {
			case attached.IsAlias:
				aliases = append(aliases, attached)
			case attached.IsStatic:
				static = append(static, attached)
			default:
				regular = append(regular, attached)
			}
		default:
			flush()
			if !st.IsBlank {
				passthrough = append(passthrough, st)
			}
		}
	}
	flush()
	return orphans, regular, static, aliases, passthrough, nil
}

func (s Sorter) sortAndDedup(statements []directive.Statement) []directive.Statement {
	sorted := append([]directive.Statement{}, statements...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return s.cmp.Less(sorted[i], sorted[j])
	})

	seen := make(map[string]struct{}, len(sorted))
	out := sorted[:0]
	for _, st := range sorted {
		key := st.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, st)
	}
	return out
}

// groupStatics appends each static directive after the regular run that
// shares its namespace root; statics with no matching root follow at the
// end, already sorted.
func (s Sorter) groupStatics(regular, static []directive.Statement) []directive.Statement {
	byRoot := make(map[string][]directive.Statement, len(static))
	for _, st := range static {
		byRoot[st.Root()] = append(byRoot[st.Root()], st)
	}

	out := make([]directive.Statement, 0, len(regular)+len(static))
	for i, st := range regular {
		out = append(out, st)
		root := st.Root()
		if i+1 < len(regular) && regular[i+1].Root() == root {
			continue
		}
		out = append(out, byRoot[root]...)
		delete(byRoot, root)
	}
	for _, st := range static {
		if _, left := byRoot[st.Root()]; left {
			out = append(out, st)
		}
	}
	return out
}

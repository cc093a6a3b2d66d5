package transform

import (
	"github.com/usingfmt/usingfmt/internal/directive"
	"github.com/usingfmt/usingfmt/internal/options"
)

// GroupSplitter inserts a single blank line between directive groups
// whose namespace roots differ. Comments, conditionals and existing
// blanks pass through without affecting the tracked root.
type GroupSplitter struct {
	placement options.StaticPlacement
}

func NewGroupSplitter(placement options.StaticPlacement) GroupSplitter {
	return GroupSplitter{placement: placement}
}

func (g GroupSplitter) Split(statements []directive.Statement) []directive.Statement {
	out := make([]directive.Statement, 0, len(statements)+4)

	prevRoot := ""
	havePrev := false
	prevWasStatic := false
	inAliases := false
	sawDirective := false
	inConditional := false

	for _, st := range statements {
		if st.IsConditional {
			if isConditionalOpen(st) {
				inConditional = true
			} else if isConditionalClose(st) {
				inConditional = false
			}
			out = append(out, st)
			continue
		}
		// Directives inside a preprocessor span keep their original
		// layout; splitting only applies to the sorted body.
		if !st.IsDirective() || inConditional {
			out = append(out, st)
			continue
		}

		if !sawDirective {
			// Leading content is separated from the first directive by
			// exactly one blank line.
			if n := len(out); n > 0 && !out[n-1].IsBlank {
				out = append(out, blankStatement())
			}
			sawDirective = true
		}

		switch {
		case st.IsAlias:
			if !inAliases {
				if havePrev && st.Root() != prevRoot {
					out = append(out, blankStatement())
				}
				inAliases = true
				havePrev = false
			}
		case st.IsStatic && g.placement == options.StaticBottom:
			switch {
			case !prevWasStatic && havePrev:
				out = append(out, blankStatement())
			case prevWasStatic && st.Root() != prevRoot:
				out = append(out, blankStatement())
			}
			prevRoot = st.Root()
			havePrev = true
			prevWasStatic = true
		default:
			if havePrev && st.Root() != prevRoot {
				out = append(out, blankStatement())
			}
			prevRoot = st.Root()
			havePrev = true
			prevWasStatic = false
		}

		out = append(out, st)
	}

	return out
}

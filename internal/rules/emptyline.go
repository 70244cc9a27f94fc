package rules

import (
	"raccfmt/internal/ast"
	"raccfmt/internal/config"
)

// EmptyLine inserts blank lines around rules. Existing blank lines are
// never removed and never doubled.
type EmptyLine struct{}

func (EmptyLine) Name() config.RuleName { return config.RuleEmptyLine }

func (EmptyLine) Apply(doc *ast.Document, cfg config.Config) *ast.Document {
	opts := cfg.Rules.EmptyLine
	out := ast.NewDocument()
	seenRule := false
	for _, e := range doc.Entries {
		var prev ast.Entry
		if n := len(out.Entries); n > 0 {
			prev = out.Entries[n-1]
		}
		separated := prev == nil || ast.IsBlankEntry(prev)

		switch v := e.(type) {
		case *ast.Rule:
			switch {
			case !seenRule && opts.AfterHeader && !separated:
				out.Append(ast.Blank())
			case seenRule && opts.BetweenRules && prev != nil && prev.Kind() == ast.KindRule:
				out.Append(ast.Blank())
			}
			seenRule = true
		case *ast.Verbatim:
			if v.IsFooterMarker() && seenRule && opts.BeforeFooter && !separated {
				out.Append(ast.Blank())
			}
		}
		out.Append(e)
	}
	return out
}

package format

import "raccfmt/internal/ast"

func ruleNames(rs []*ast.Rule) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Name()
	}
	return out
}

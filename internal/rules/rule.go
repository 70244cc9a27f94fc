package rules

import (
	"strings"

	"raccfmt/internal/ast"
	"raccfmt/internal/config"
)

// Rule is one rewrite pass over a document.
type Rule interface {
	// Name returns the config key of the pass.
	Name() config.RuleName
	// Apply rewrites doc and returns the resulting document.
	Apply(doc *ast.Document, cfg config.Config) *ast.Document
}

// All returns every pass in pipeline order.
func All() []Rule {
	return []Rule{
		Indent{},
		BraceNewline{},
		Spacing{},
		Alignment{},
		EmptyLine{},
	}
}

// Enabled returns the passes cfg turns on, in pipeline order.
func Enabled(cfg config.Config) []Rule {
	all := All()
	out := make([]Rule, 0, len(all))
	for _, r := range all {
		if cfg.Enabled(r.Name()) {
			out = append(out, r)
		}
	}
	return out
}

// Apply runs passes over doc in order.
func Apply(doc *ast.Document, cfg config.Config, passes ...Rule) *ast.Document {
	for _, p := range passes {
		doc = p.Apply(doc, cfg)
	}
	return doc
}

func leadingSpace(s string) string {
	return s[:len(s)-len(strings.TrimLeft(s, " \t"))]
}

// rebase re-indents content lines to base, keeping their indentation
// relative to the least indented non-blank line. Blank lines become empty.
func rebase(lines []string, base string) []string {
	minIndent := -1
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		if n := len(leadingSpace(l)); minIndent < 0 || n < minIndent {
			minIndent = n
		}
	}
	out := make([]string, len(lines))
	for i, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		lead := leadingSpace(l)
		out[i] = base + lead[minIndent:] + strings.TrimRight(l[len(lead):], " \t")
	}
	return out
}

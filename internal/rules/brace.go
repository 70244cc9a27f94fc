package rules

import (
	"strings"

	"raccfmt/internal/ast"
	"raccfmt/internal/config"
)

// BraceNewline moves the opening brace of action blocks onto the production
// line or onto a line of its own.
type BraceNewline struct{}

func (BraceNewline) Name() config.RuleName { return config.RuleBraceNewline }

func (BraceNewline) Apply(doc *ast.Document, cfg config.Config) *ast.Document {
	opts := cfg.Rules.BraceNewline
	for _, r := range doc.Rules() {
		for _, a := range r.Actions() {
			lead, body := a.Split()
			switch opts.Style {
			case config.BraceSameLine:
				if !strings.Contains(lead, "\n") {
					continue
				}
				lead = ""
				if opts.SpaceBefore {
					lead = " "
				}
			case config.BraceNewLine:
				if strings.Contains(lead, "\n") {
					continue
				}
				lead = "\n" + r.ProductionIndent()
			}
			a.SetText(lead + body)
		}
	}
	return doc
}

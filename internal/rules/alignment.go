package rules

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"raccfmt/internal/ast"
	"raccfmt/internal/config"
)

// Alignment lines up the colons of neighbouring rules, the pipes of each
// rule and the bodies of action blocks.
type Alignment struct{}

func (Alignment) Name() config.RuleName { return config.RuleAlignment }

func (Alignment) Apply(doc *ast.Document, cfg config.Config) *ast.Document {
	opts := cfg.Rules.Alignment
	if opts.AlignRules {
		for _, run := range ruleRuns(doc) {
			alignNames(run)
		}
		for _, r := range doc.Rules() {
			alignPipes(r)
		}
	}
	if opts.AlignActions {
		step := cfg.Rules.Indent.Unit()
		for _, r := range doc.Rules() {
			alignInline(r)
			for _, a := range r.Actions() {
				alignBlock(r, a, step)
			}
		}
	}
	return doc
}

// ruleRuns groups rules not separated by non-blank verbatim text. Blank
// lines do not end a run.
func ruleRuns(doc *ast.Document) [][]*ast.Rule {
	var runs [][]*ast.Rule
	var cur []*ast.Rule
	for _, e := range doc.Entries {
		switch v := e.(type) {
		case *ast.Rule:
			cur = append(cur, v)
		case *ast.Verbatim:
			if v.IsBlank() {
				continue
			}
			if len(cur) > 0 {
				runs = append(runs, cur)
			}
			cur = nil
		}
	}
	if len(cur) > 0 {
		runs = append(runs, cur)
	}
	return runs
}

func alignNames(run []*ast.Rule) {
	width := 0
	for _, r := range run {
		width = max(width, runewidth.StringWidth(r.Name()))
	}
	for _, r := range run {
		r.SetNamePadding(width - runewidth.StringWidth(r.Name()))
	}
}

// alignPipes puts every alternative in the column of the first production.
func alignPipes(r *ast.Rule) {
	if r.NumProductions() == 0 || ast.HasPipe(r.Production(0)) {
		return
	}
	for i := 1; i < r.NumProductions(); i++ {
		if p := r.Production(i); ast.HasPipe(p) {
			r.SetProduction(i, r.ProductionIndent()+strings.TrimSpace(p))
		}
	}
}

func alignInline(r *ast.Rule) {
	for i, p := range r.Productions() {
		if prefix, inner, ok := ast.SplitInline(p); ok {
			r.SetProduction(i, leadingSpace(p)+joinInline(strings.TrimSpace(prefix), strings.TrimSpace(inner)))
		}
	}
}

// alignBlock re-indents a multi-line block: its brace lines go to the
// column of the '{' line, content one step deeper.
func alignBlock(r *ast.Rule, a *ast.Action, step string) {
	if !a.Multiline() {
		return
	}
	lead, body := a.Split()

	var base string
	if nl := strings.LastIndexByte(lead, '\n'); nl >= 0 {
		base = lead[nl+1:]
	} else if a.Owner() < 0 {
		base = r.ProductionIndent()
	} else {
		base = r.LineIndent(a.Owner())
	}

	lines := strings.Split(body, "\n")
	last := len(lines) - 1
	closing := strings.HasPrefix(strings.TrimSpace(lines[last]), "}")

	content := lines[1:]
	if closing {
		content = lines[1:last]
	}
	blank := make([]bool, len(content))
	for i, l := range content {
		blank[i] = strings.TrimSpace(l) == ""
	}
	rebased := rebase(content, base+step)
	for i := range content {
		if !blank[i] {
			lines[i+1] = rebased[i]
		}
	}
	if closing {
		lines[last] = base + strings.TrimSpace(lines[last])
	}
	a.SetText(lead + strings.Join(lines, "\n"))
}

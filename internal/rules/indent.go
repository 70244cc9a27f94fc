package rules

import (
	"strings"

	"raccfmt/internal/ast"
	"raccfmt/internal/config"
)

// Indent lifts one-line actions out of productions and lays every rule out
// with a single indentation unit.
type Indent struct{}

func (Indent) Name() config.RuleName { return config.RuleIndent }

func (Indent) Apply(doc *ast.Document, cfg config.Config) *ast.Document {
	unit := cfg.Rules.Indent.Unit()
	for _, r := range doc.Rules() {
		liftInlineActions(r)
		for i, p := range r.Productions() {
			r.SetProduction(i, indentProduction(i, p, unit))
		}
		for _, a := range r.Actions() {
			_, body := a.Split()
			a.SetText("\n" + unit + reflowBlock(body, unit))
		}
		r.SetProductionIndent(unit)
		r.SetTerminatorIndent(unit)
	}
	return doc
}

// liftInlineActions moves a trailing "{...}" of a production into an
// action block owned by it. Productions that are nothing but the block stay.
func liftInlineActions(r *ast.Rule) {
	for i, p := range r.Productions() {
		prefix, inner, ok := ast.SplitInline(p)
		if !ok || strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(prefix), "|")) == "" {
			continue
		}
		r.SetProduction(i, prefix)
		r.InsertAction(ast.NewAction(" {"+inner+"}", i, 0))
	}
}

func indentProduction(i int, p, unit string) string {
	text := strings.TrimSpace(p)
	if i == 0 {
		return text
	}
	rest := strings.TrimSpace(strings.TrimPrefix(text, "|"))
	if rest == "" {
		return unit + "|"
	}
	return unit + "| " + rest
}

// reflowBlock puts the braces of body on their own lines at one unit and the
// content at two units. body starts with '{'.
func reflowBlock(body, unit string) string {
	if !strings.HasPrefix(body, "{") || !strings.HasSuffix(body, "}") {
		return body
	}
	lines := strings.Split(body[1:len(body)-1], "\n")

	var content []string
	if first := strings.TrimSpace(lines[0]); first != "" {
		content = append(content, first)
	}
	if len(lines) > 1 {
		middle := lines[1:]
		last := middle[len(middle)-1]
		if strings.TrimSpace(last) == "" {
			middle = middle[:len(middle)-1]
		}
		content = append(content, middle...)
	}
	// the text after '{' has no indentation of its own; align it with the
	// least indented line that follows
	if len(lines) > 1 && len(content) > 0 && strings.TrimSpace(lines[0]) != "" {
		content[0] = minIndent(content[1:]) + content[0]
	}
	for len(content) > 0 && strings.TrimSpace(content[0]) == "" {
		content = content[1:]
	}

	var sb strings.Builder
	sb.WriteString("{\n")
	for _, l := range rebase(content, unit+unit) {
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
	sb.WriteString(unit)
	sb.WriteString("}")
	return sb.String()
}

func minIndent(lines []string) string {
	best := ""
	found := false
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		if lead := leadingSpace(l); !found || len(lead) < len(best) {
			best, found = lead, true
		}
	}
	return best
}

package ast

import "strings"

const defaultIndent = "  "

// Rule is one grammar rule definition.
//
// Productions are raw alternative texts; the first carries no pipe, later
// ones start with "|". Actions are ordered by owner. The presentation fields
// are only changed through the Set* mutators.
type Rule struct {
	name        string
	line        int
	productions []string
	actions     []*Action

	colonSpacing     bool
	namePadding      int
	productionIndent string
	terminatorIndent string
}

// NewRule creates a rule named name declared at source line line.
func NewRule(name string, line int) *Rule {
	return &Rule{
		name:             name,
		line:             line,
		colonSpacing:     true,
		productionIndent: defaultIndent,
		terminatorIndent: defaultIndent,
	}
}

func (r *Rule) Kind() Kind { return KindRule }

// Name returns the rule identifier.
func (r *Rule) Name() string { return r.name }

// Line returns the 1-based line of the rule header.
func (r *Rule) Line() int { return r.line }

// Productions returns a copy of the production texts.
func (r *Rule) Productions() []string {
	return append([]string(nil), r.productions...)
}

// NumProductions returns the production count.
func (r *Rule) NumProductions() int { return len(r.productions) }

// Production returns production i.
func (r *Rule) Production(i int) string { return r.productions[i] }

// SetProduction rewrites the text of production i. The count never changes.
func (r *Rule) SetProduction(i int, text string) { r.productions[i] = text }

// AddProduction appends an alternative.
func (r *Rule) AddProduction(text string) {
	r.productions = append(r.productions, text)
}

// ExtendProduction appends a continuation line to the last production,
// starting the first one when there is none.
func (r *Rule) ExtendProduction(text string) {
	if len(r.productions) == 0 {
		r.productions = append(r.productions, text)
		return
	}
	last := len(r.productions) - 1
	r.productions[last] = strings.TrimRight(r.productions[last], " \t") + " " + strings.TrimSpace(text)
}

// Actions returns the action blocks in order.
func (r *Rule) Actions() []*Action {
	return append([]*Action(nil), r.actions...)
}

// AddAction appends a block; its owner must not precede the last one.
func (r *Rule) AddAction(a *Action) {
	r.actions = append(r.actions, a)
}

// InsertAction places a lifted block before the blocks already owned by
// the same or a later production.
func (r *Rule) InsertAction(a *Action) {
	idx := len(r.actions)
	for i, existing := range r.actions {
		if existing.owner >= a.owner {
			idx = i
			break
		}
	}
	r.actions = append(r.actions, nil)
	copy(r.actions[idx+1:], r.actions[idx:])
	r.actions[idx] = a
}

// ColonSpacing reports whether the colon is written as " :".
func (r *Rule) ColonSpacing() bool { return r.colonSpacing }

// SetColonSpacing toggles the space before the colon.
func (r *Rule) SetColonSpacing(on bool) { r.colonSpacing = on }

// NamePadding returns the number of spaces written after the name.
func (r *Rule) NamePadding() int { return r.namePadding }

// SetNamePadding sets the spaces written after the name.
func (r *Rule) SetNamePadding(n int) {
	if n < 0 {
		n = 0
	}
	r.namePadding = n
}

// ProductionIndent returns the indentation of the first production.
func (r *Rule) ProductionIndent() string { return r.productionIndent }

// SetProductionIndent sets the indentation of the first production and of
// alternatives written without a pipe.
func (r *Rule) SetProductionIndent(s string) { r.productionIndent = s }

// TerminatorIndent returns the indentation of the closing ';'.
func (r *Rule) TerminatorIndent() string { return r.terminatorIndent }

// SetTerminatorIndent sets the indentation of the closing ';'.
func (r *Rule) SetTerminatorIndent(s string) { r.terminatorIndent = s }

// HasPipe reports whether a production starts with '|'.
func HasPipe(production string) bool {
	return strings.HasPrefix(strings.TrimSpace(production), "|")
}

// LineIndent returns the leading whitespace production i is rendered with.
// The header line (i < 0) has none.
func (r *Rule) LineIndent(i int) string {
	if i < 0 || i >= len(r.productions) {
		return ""
	}
	if i == 0 || !HasPipe(r.productions[i]) {
		return r.productionIndent
	}
	p := r.productions[i]
	return p[:len(p)-len(strings.TrimLeft(p, " \t"))]
}

func (r *Rule) Render(w *Writer) {
	w.WriteString(r.name)
	w.WriteString(strings.Repeat(" ", r.namePadding))
	if r.colonSpacing {
		w.WriteString(" :")
	} else {
		w.WriteString(":")
	}

	next := r.renderActions(w, -1, 0)
	for i, p := range r.productions {
		w.Newline()
		switch {
		case i == 0:
			w.WriteString(r.productionIndent)
			w.WriteString(strings.TrimSpace(p))
		case HasPipe(p):
			w.WriteString(strings.TrimRight(p, " \t"))
		default:
			w.WriteString(r.productionIndent)
			w.WriteString("| ")
			w.WriteString(strings.TrimSpace(p))
		}
		next = r.renderActions(w, i, next)
	}
	// blocks whose owner is out of range still have to be written
	for ; next < len(r.actions); next++ {
		w.WriteString(r.actions[next].text)
	}

	w.Newline()
	w.WriteString(r.terminatorIndent)
	w.WriteString(";")
	w.Newline()
}

func (r *Rule) renderActions(w *Writer, owner, next int) int {
	for next < len(r.actions) && r.actions[next].owner <= owner {
		w.WriteString(r.actions[next].text)
		next++
	}
	return next
}

package ast

import "strings"

// Action is one embedded action block. Its text starts with the whitespace
// separating it from the production it follows (a space, or a newline plus
// indentation) and ends with the closing brace.
type Action struct {
	text  string
	owner int
	line  int
}

// NewAction creates a block owned by production index owner (-1 when the
// rule had no production yet). line is the 1-based source line of '{'.
func NewAction(text string, owner, line int) *Action {
	a := &Action{owner: owner, line: line}
	a.SetText(text)
	return a
}

// Text returns the raw block text.
func (a *Action) Text() string { return a.text }

// SetText replaces the block text wholesale.
func (a *Action) SetText(text string) {
	a.text = strings.TrimRight(text, " \t\r\n")
}

// Owner returns the index of the production this block follows.
func (a *Action) Owner() int { return a.owner }

// Line returns the source line the block started on, 0 for lifted blocks.
func (a *Action) Line() int { return a.line }

// Split returns the separator before the opening brace and the rest.
func (a *Action) Split() (lead, body string) {
	idx := strings.IndexByte(a.text, '{')
	if idx < 0 {
		trimmed := strings.TrimLeft(a.text, " \t\r\n")
		return a.text[:len(a.text)-len(trimmed)], trimmed
	}
	return a.text[:idx], a.text[idx:]
}

// BraceOnOwnLine reports whether '{' starts a line of its own.
func (a *Action) BraceOnOwnLine() bool {
	lead, _ := a.Split()
	return strings.Contains(lead, "\n")
}

// Multiline reports whether the block spans several lines.
func (a *Action) Multiline() bool {
	_, body := a.Split()
	return strings.Contains(body, "\n")
}

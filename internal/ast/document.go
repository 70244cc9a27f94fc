package ast

// Kind tells entries apart without type switches.
type Kind uint8

const (
	KindVerbatim Kind = iota + 1
	KindRule
)

func (k Kind) String() string {
	switch k {
	case KindVerbatim:
		return "verbatim"
	case KindRule:
		return "rule"
	}
	return "unknown"
}

// Entry is one top-level element of a Document.
type Entry interface {
	Kind() Kind
	// Render appends the entry's text, including its trailing newline.
	Render(w *Writer)
}

// Document is the root container. Entry order is source order plus any
// inserted blank lines.
type Document struct {
	Entries []Entry
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{Entries: make([]Entry, 0, 32)}
}

// Append adds e at the end.
func (d *Document) Append(e Entry) {
	d.Entries = append(d.Entries, e)
}

// Rules returns the rule entries in order.
func (d *Document) Rules() []*Rule {
	var out []*Rule
	for _, e := range d.Entries {
		if r, ok := e.(*Rule); ok {
			out = append(out, r)
		}
	}
	return out
}

// Bytes serializes the document.
func (d *Document) Bytes() []byte {
	w := NewWriter(64 * len(d.Entries))
	for _, e := range d.Entries {
		e.Render(w)
	}
	return w.Bytes()
}

func (d *Document) String() string {
	return string(d.Bytes())
}

package ast

import "strings"

// Verbatim is a source line kept as is.
type Verbatim struct {
	text      string
	synthetic bool
}

// NewVerbatim wraps one raw line, terminator included.
func NewVerbatim(text string) *Verbatim {
	return &Verbatim{text: text}
}

// Blank returns a synthesized empty line.
func Blank() *Verbatim {
	return &Verbatim{text: "\n", synthetic: true}
}

func (v *Verbatim) Kind() Kind { return KindVerbatim }

func (v *Verbatim) Render(w *Writer) { w.WriteString(v.text) }

// Text returns the raw line.
func (v *Verbatim) Text() string { return v.text }

// Synthetic reports whether the line was inserted by a rewrite pass.
func (v *Verbatim) Synthetic() bool { return v.synthetic }

// IsBlank reports whether the line holds only whitespace.
func (v *Verbatim) IsBlank() bool { return strings.TrimSpace(v.text) == "" }

// IsComment reports whether the line is a '#' comment.
func (v *Verbatim) IsComment() bool {
	return strings.HasPrefix(strings.TrimSpace(v.text), "#")
}

// IsFooterMarker reports whether the line opens a ---- section.
func (v *Verbatim) IsFooterMarker() bool {
	return IsFooterMarker(v.text)
}

// IsFooterMarker reports whether line starts a "---- header/inner/footer"
// section once trimmed.
func IsFooterMarker(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "----")
}

// IsBlankEntry reports whether e is a blank Verbatim line.
func IsBlankEntry(e Entry) bool {
	v, ok := e.(*Verbatim)
	return ok && v.IsBlank()
}

// Package ast holds the structural document of a Racc grammar file.
//
// A Document is the ordered list of top-level entries exactly as they appear
// in the source: Verbatim lines (comments, blank lines, header and footer
// text) and Rule definitions. Rules keep their productions and action blocks
// as opaque text; rewrite passes change presentation through the mutators
// and the Document renders itself back to bytes.
package ast

// Package parser turns Racc grammar text into an ast.Document.
//
// The scanner is line oriented: it only recognizes rule headers,
// alternatives, terminators and brace-delimited action blocks. Everything
// else is kept verbatim, so a document always serializes back to every
// input line.
package parser

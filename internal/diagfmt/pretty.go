// Package diagfmt renders formatter errors for humans.
//
// Для ошибок с путём и строкой печатает заголовок
// <path>:<line>: error <CODE>: <message>
// и фрагмент исходника с номерами строк.
package diagfmt

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"raccfmt/internal/diag"
	"raccfmt/internal/source"
)

// Pretty writes err to w. Errors that are not *diag.Error, or carry no
// location, are printed on a single line. fileSet supplies the source for
// the excerpt; files missing from it are loaded from disk, and the excerpt
// is skipped when that fails.
func Pretty(w io.Writer, err error, fileSet *source.FileSet, opts PrettyOpts) {
	if err == nil {
		return
	}
	paint := painter{enabled: opts.Color}

	var de *diag.Error
	if !errors.As(err, &de) {
		fmt.Fprintf(w, "%s %v\n", paint.errorLabel("error:"), err)
		return
	}

	var header strings.Builder
	if de.Path != "" {
		header.WriteString(paint.location(formatPath(de.Path, opts)))
		if de.Line > 0 {
			header.WriteString(paint.location(fmt.Sprintf(":%d", de.Line)))
		}
		header.WriteString(": ")
	}
	header.WriteString(paint.errorLabel("error"))
	if de.Code != diag.UnknownCode {
		header.WriteString(" " + paint.code(de.Code.ID()))
	}
	header.WriteString(": " + message(de))
	fmt.Fprintln(w, header.String())

	if de.Path == "" || de.Line <= 0 {
		return
	}
	file := lookup(fileSet, de.Path)
	if file == nil {
		return
	}
	writeExcerpt(w, file, de.Line, opts.Context, paint)
}

func message(de *diag.Error) string {
	msg := de.Message
	if msg == "" {
		msg = de.Code.Title()
	}
	if de.Err != nil {
		msg += ": " + de.Err.Error()
	}
	return msg
}

func lookup(fileSet *source.FileSet, path string) *source.File {
	if fileSet == nil {
		fileSet = source.NewFileSet()
	}
	if id, ok := fileSet.GetLatest(path); ok {
		return fileSet.Get(id)
	}
	id, err := fileSet.Load(path)
	if err != nil {
		return nil
	}
	return fileSet.Get(id)
}

func writeExcerpt(w io.Writer, file *source.File, line, context int, paint painter) {
	first := max(line-max(context, 0), 1)
	last := min(line+max(context, 0), file.LineCount())
	if first > last {
		return
	}
	gutter := len(fmt.Sprint(last))
	for n := first; n <= last; n++ {
		marker := " "
		if n == line {
			marker = paint.errorLabel(">")
		}
		num := paint.gutter(fmt.Sprintf("%*d |", gutter, n))
		fmt.Fprintf(w, "%s %s %s\n", marker, num, strings.TrimRight(file.GetLine(n), "\r\n"))
	}
}

func formatPath(path string, opts PrettyOpts) string {
	switch opts.PathMode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
	case PathModeRelative:
		base := opts.BaseDir
		if base == "" {
			// Если базовая директория не указана, используем текущую
			if wd, err := os.Getwd(); err == nil {
				base = wd
			}
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return path
		}
		if rel, err := filepath.Rel(base, abs); err == nil {
			return rel
		}
	case PathModeBasename:
		return filepath.Base(path)
	case PathModeAuto:
		if len(path) >= 40 && filepath.IsAbs(path) {
			return filepath.Base(path)
		}
	}
	return path
}

type painter struct {
	enabled bool
}

func (p painter) paint(s string, attrs ...color.Attribute) string {
	if !p.enabled {
		return s
	}
	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(s)
}

func (p painter) errorLabel(s string) string { return p.paint(s, color.FgRed, color.Bold) }
func (p painter) location(s string) string   { return p.paint(s, color.Bold) }
func (p painter) code(s string) string       { return p.paint(s, color.FgYellow) }
func (p painter) gutter(s string) string     { return p.paint(s, color.FgBlue) }

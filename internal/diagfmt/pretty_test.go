package diagfmt

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"raccfmt/internal/diag"
	"raccfmt/internal/source"
)

func parseFailure(path string) (*source.FileSet, error) {
	fileSet := source.NewFileSet()
	fileSet.AddVirtual(path, []byte("a: b\n  | c {\n    x = 1\nd: e\n"))
	err := diag.NewParse(diag.ParseUnterminatedAction, 2, "unterminated action").WithPath(path)
	return fileSet, err
}

func TestPrettyExcerpt(t *testing.T) {
	fileSet, err := parseFailure("grammar.y")
	var buf bytes.Buffer
	Pretty(&buf, err, fileSet, PrettyOpts{Context: 1})

	want := "grammar.y:2: error PAR1001: unterminated action\n" +
		"  1 | a: b\n" +
		"> 2 |   | c {\n" +
		"  3 |     x = 1\n"
	if got := buf.String(); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyWithoutLocation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"plain", errors.New("boom"), "error: boom\n"},
		{"config", diag.NewConfig(diag.ConfigInvalidValue, nil, "indent.size must be positive"), "error CFG2002: indent.size must be positive\n"},
		{"io", diag.NewIO(diag.IONoSourceFiles, "src", nil), "src: error IO3003: No grammar files found\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, tt.err, nil, PrettyOpts{})
			if got := buf.String(); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrettyColor(t *testing.T) {
	fileSet, err := parseFailure("grammar.y")
	var buf bytes.Buffer
	Pretty(&buf, err, fileSet, PrettyOpts{Color: true})
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("expected escape sequences, got %q", buf.String())
	}
}

func TestFormatPath(t *testing.T) {
	base := filepath.Join(string(filepath.Separator), "home", "user", "project")
	path := filepath.Join(base, "grammars", "calc.y")
	tests := []struct {
		mode PathMode
		want string
	}{
		{PathModeAbsolute, path},
		{PathModeRelative, filepath.Join("grammars", "calc.y")},
		{PathModeBasename, "calc.y"},
	}
	for _, tt := range tests {
		if got := formatPath(path, PrettyOpts{PathMode: tt.mode, BaseDir: base}); got != tt.want {
			t.Errorf("mode %d: got %q, want %q", tt.mode, got, tt.want)
		}
	}
	if got := formatPath("calc.y", PrettyOpts{}); got != "calc.y" {
		t.Errorf("auto kept short path as %q", got)
	}
}

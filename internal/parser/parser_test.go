package parser

import (
	"errors"
	"reflect"
	"testing"

	"raccfmt/internal/ast"
	"raccfmt/internal/diag"
)

func mustParse(t *testing.T, src string) *ast.Document {
	t.Helper()
	doc, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return doc
}

func onlyRule(t *testing.T, doc *ast.Document) *ast.Rule {
	t.Helper()
	rules := doc.Rules()
	if len(rules) != 1 {
		t.Fatalf("got %d rules, want 1", len(rules))
	}
	return rules[0]
}

type actionView struct {
	Text  string
	Owner int
	Line  int
}

func actionsOf(r *ast.Rule) []actionView {
	var out []actionView
	for _, a := range r.Actions() {
		out = append(out, actionView{a.Text(), a.Owner(), a.Line()})
	}
	return out
}

func TestParseRules(t *testing.T) {
	tests := []struct {
		name        string
		src         string
		rule        string
		productions []string
		actions     []actionView
	}{
		{
			name:        "inline action stays in production",
			src:         "program: stmt_list { result = val[0] }\n",
			rule:        "program",
			productions: []string{"stmt_list { result = val[0] }"},
		},
		{
			name:        "alternatives and terminator",
			src:         "stmt_list: stmt\n         | stmt_list stmt\n         ;\n",
			rule:        "stmt_list",
			productions: []string{"stmt", "         | stmt_list stmt"},
		},
		{
			name:        "action opened on header keeps production",
			src:         "program: stmt_list {\n  result = val[0]\n  puts \"parsed\"\n}\n",
			rule:        "program",
			productions: []string{"stmt_list"},
			actions: []actionView{
				{" {\n  result = val[0]\n  puts \"parsed\"\n}", 0, 1},
			},
		},
		{
			name:        "action on its own line",
			src:         "a : b\n  {\n    x\n  }\n  ;\n",
			rule:        "a",
			productions: []string{"b"},
			actions:     []actionView{{"\n  {\n    x\n  }", 0, 2}},
		},
		{
			name:        "action opened on alternative",
			src:         "a : b { x }\n  | c {\n    y\n  } ;\n",
			rule:        "a",
			productions: []string{"b { x }", "  | c"},
			actions:     []actionView{{" {\n    y\n  }", 1, 2}},
		},
		{
			name:        "continuation joins last production",
			src:         "a : b\n    c\n  | d\n    %prec UMINUS\n  ;\n",
			rule:        "a",
			productions: []string{"b c", "  | d %prec UMINUS"},
		},
		{
			name:        "quoted brace is a token",
			src:         "block : '{' stmts '}' {\n  result = val[1]\n}\n",
			rule:        "block",
			productions: []string{"'{' stmts '}'"},
			actions:     []actionView{{" {\n  result = val[1]\n}", 0, 1}},
		},
		{
			name:        "trailing semicolon terminates",
			src:         "a : b ;\nc d\n",
			rule:        "a",
			productions: []string{"b"},
		},
		{
			name:        "pipes inside one line split into alternatives",
			src:         "stmt_list:stmt{result=[val[0]]}|stmt_list stmt{result=val[0]<<val[1]}\n",
			rule:        "stmt_list",
			productions: []string{"stmt{result=[val[0]]}", "| stmt_list stmt{result=val[0]<<val[1]}"},
		},
		{
			name:        "pipe line with several alternatives",
			src:         "a : b\n  | c | d\n  |e|'|'\n",
			rule:        "a",
			productions: []string{"b", "  | c", "  | d", "  |e", "  | '|'"},
		},
		{
			name:        "block opened after a complete block",
			src:         "a : b { x } | c {\n  y\n}\n",
			rule:        "a",
			productions: []string{"b { x }", "| c"},
			actions:     []actionView{{" {\n  y\n}", 1, 1}},
		},
		{
			name:        "semicolon line ends rule before trailing text",
			src:         "a : b\n  | c\n  ; # end of a\n  d x\n",
			rule:        "a",
			productions: []string{"b", "  | c"},
		},
		{
			name:        "unicode rule name",
			src:         "выражение : терм\n",
			rule:        "выражение",
			productions: []string{"терм"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := onlyRule(t, mustParse(t, tt.src))
			if r.Name() != tt.rule {
				t.Errorf("name = %q, want %q", r.Name(), tt.rule)
			}
			if got := r.Productions(); !reflect.DeepEqual(got, tt.productions) {
				t.Errorf("productions = %q, want %q", got, tt.productions)
			}
			if got := actionsOf(r); !reflect.DeepEqual(got, tt.actions) {
				t.Errorf("actions = %+v, want %+v", got, tt.actions)
			}
		})
	}
}

func TestParseKeepsVerbatimLines(t *testing.T) {
	src := "class Calc\n" +
		"# comment\n" +
		"rule\n" +
		"  exp : exp '+' exp\n" +
		"\n" +
		"  term : NUMBER\n" +
		"end\n" +
		"---- inner\n" +
		"def parse(s): s\n" +
		"  { a: 1 }\n"
	doc := mustParse(t, src)

	var kinds []ast.Kind
	for _, e := range doc.Entries {
		kinds = append(kinds, e.Kind())
	}
	want := []ast.Kind{
		ast.KindVerbatim, ast.KindVerbatim, ast.KindVerbatim,
		ast.KindRule, ast.KindVerbatim, ast.KindRule,
		ast.KindVerbatim, ast.KindVerbatim, ast.KindVerbatim, ast.KindVerbatim,
	}
	if !reflect.DeepEqual(kinds, want) {
		t.Fatalf("kinds = %v, want %v", kinds, want)
	}
	if got := doc.Entries[9].(*ast.Verbatim).Text(); got != "  { a: 1 }\n" {
		t.Fatalf("footer line = %q", got)
	}
}

func TestParseCommentOnlyInput(t *testing.T) {
	src := "# one\n\n# two"
	doc := mustParse(t, src)
	if got := doc.String(); got != src {
		t.Fatalf("String = %q, want %q", got, src)
	}
}

func TestParseEmpty(t *testing.T) {
	doc := mustParse(t, "")
	if len(doc.Entries) != 0 {
		t.Fatalf("got %d entries", len(doc.Entries))
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
		line int
	}{
		{"unterminated action", "a : b {\n  x\n\nc : d\n", diag.ParseUnterminatedAction, 1},
		{"stray closing brace", "a : b\n  }\n", diag.ParseUnexpectedBrace, 2},
		{"surplus closing brace in action", "0:{0\n}}", diag.ParseUnexpectedBrace, 2},
		{"surplus closing brace after nested block", "a : b {\n  if x {\n  }}}\n", diag.ParseUnexpectedBrace, 3},
		{"production reads as header", "0:0:", diag.ParseHeaderLikeProduct, 1},
		{"first alternative reads as header", "a : b : c | d\n", diag.ParseHeaderLikeProduct, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.src)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, diag.ErrParse) || !errors.Is(err, diag.ErrFormat) {
				t.Fatalf("error %v is not a parse error", err)
			}
			var de *diag.Error
			if !errors.As(err, &de) {
				t.Fatalf("error %T is not *diag.Error", err)
			}
			if de.Code != tt.code || de.Line != tt.line {
				t.Fatalf("code/line = %v/%d, want %v/%d", de.Code, de.Line, tt.code, tt.line)
			}
		})
	}
}

func TestParseSemicolonLineKeepsTrailingText(t *testing.T) {
	doc := mustParse(t, "a : b\n  | c\n  ; # end of a\n  d x\n")

	var verbatim []string
	for _, e := range doc.Entries {
		if v, ok := e.(*ast.Verbatim); ok {
			verbatim = append(verbatim, v.Text())
		}
	}
	want := []string{"# end of a\n", "  d x\n"}
	if !reflect.DeepEqual(verbatim, want) {
		t.Fatalf("verbatim = %q, want %q", verbatim, want)
	}
}

func TestParseSemicolonLineOpensNextRule(t *testing.T) {
	doc := mustParse(t, "a : b\n  ; c : d\n")
	rules := doc.Rules()
	if len(rules) != 2 {
		t.Fatalf("got %d rules, want 2", len(rules))
	}
	if got := rules[1].Name(); got != "c" {
		t.Fatalf("second rule = %q, want c", got)
	}
	if got := rules[1].Productions(); !reflect.DeepEqual(got, []string{"d"}) {
		t.Fatalf("productions = %q", got)
	}
}

func TestParseHeaderComment(t *testing.T) {
	doc := mustParse(t, "opt_args : # nothing\n | args\n ;\nargs : arg\n")

	var kinds []ast.Kind
	for _, e := range doc.Entries {
		kinds = append(kinds, e.Kind())
	}
	want := []ast.Kind{ast.KindRule, ast.KindVerbatim, ast.KindRule}
	if !reflect.DeepEqual(kinds, want) {
		t.Fatalf("kinds = %v, want %v", kinds, want)
	}
	if got := doc.Entries[1].(*ast.Verbatim).Text(); got != "# nothing\n" {
		t.Fatalf("comment = %q", got)
	}
	if got := doc.Rules()[0].Productions(); !reflect.DeepEqual(got, []string{" | args"}) {
		t.Fatalf("productions = %q", got)
	}
}

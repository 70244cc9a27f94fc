package format

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"raccfmt/internal/config"
	"raccfmt/internal/diag"
	"raccfmt/internal/observ"
	"raccfmt/internal/rules"
	"raccfmt/internal/trace"
)

const calcGrammar = `class Calc
  prechigh
    left '*' '/'
    left '+' '-'
  preclow
rule
  target: exp
        | /* none */ { result = 0 }

  exp: exp '+' exp { result += val[2] }
     | exp '*' exp {result*=val[2]}
     | '(' exp ')' {
         result = val[1]
       }
     | NUMBER
end

---- inner
  def parse(str)
    @q = []
  end
`

const calcFormatted = `class Calc
  prechigh
    left '*' '/'
    left '+' '-'
  preclow
rule

target :
  exp
  | /* none */ {
    result = 0
  }
  ;

exp    :
  exp '+' exp {
    result += val[2]
  }
  | exp '*' exp {
    result *= val[2]
  }
  | '(' exp ')' {
    result = val[1]
  }
  | NUMBER
  ;
end

---- inner
  def parse(str)
    @q = []
  end
`

func mustSource(t *testing.T, src string, cfg config.Config) string {
	t.Helper()
	out, err := Source(src, cfg)
	if err != nil {
		t.Fatalf("Source: %v", err)
	}
	return out
}

func TestScenarios(t *testing.T) {
	size4, err := config.FromMap(map[string]any{
		"rules": map[string]any{"indent": map[string]any{"size": 4}},
	})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		src  string
		cfg  config.Config
		want string
	}{
		{
			name: "inline action expands",
			src:  "program:stmt_list{result=val[0]}",
			cfg:  config.Default(),
			want: "program :\n  stmt_list {\n    result = val[0]\n  }\n  ;\n",
		},
		{
			name: "adjacent rules get one blank line",
			src:  "a: b\nc: d\n",
			cfg:  config.Default(),
			want: "a :\n  b\n  ;\n\nc :\n  d\n  ;\n",
		},
		{
			name: "compound assignment spaced",
			src:  "a: b {\n  result||=[]\n}\n",
			cfg:  config.Default(),
			want: "a :\n  b {\n    result ||= []\n  }\n  ;\n",
		},
		{
			name: "indent size four",
			src:  "program:stmt_list{result=val[0]}\n",
			cfg:  size4,
			want: "program :\n    stmt_list {\n        result = val[0]\n    }\n    ;\n",
		},
		{
			name: "empty input",
			src:  "",
			cfg:  config.Default(),
			want: "",
		},
		{
			name: "comments and blanks only",
			src:  "# a\n\n# b\n",
			cfg:  config.Default(),
			want: "# a\n\n# b\n",
		},
		{
			name: "alternatives on one line split",
			src:  "program:stmt_list{result=val[0]}\nstmt_list:stmt{result=[val[0]]}|stmt_list stmt{result=val[0]<<val[1]}\n",
			cfg:  config.Default(),
			want: "program   :\n  stmt_list {\n    result = val[0]\n  }\n  ;\n\n" +
				"stmt_list :\n  stmt {\n    result = [val[0]]\n  }\n" +
				"  | stmt_list stmt {\n    result = val[0] << val[1]\n  }\n  ;\n",
		},
		{
			name: "block before precedence spaced",
			src:  "a : b {x=1} %prec UMINUS\n",
			cfg:  config.Default(),
			want: "a :\n  b { x = 1 } %prec UMINUS\n  ;\n",
		},
		{
			name: "full grammar",
			src:  calcGrammar,
			cfg:  config.Default(),
			want: calcFormatted,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustSource(t, tt.src, tt.cfg)
			if got != tt.want {
				t.Fatalf("output mismatch:\nwant:\n%s\ngot:\n%s", tt.want, got)
			}
			if again := mustSource(t, got, tt.cfg); again != got {
				t.Fatalf("second pass changed output:\n%s", again)
			}
		})
	}
}

func TestAllRulesDisabledKeepsStructure(t *testing.T) {
	cfg := config.Default()
	cfg.Rules.Indent.Enabled = false
	cfg.Rules.BraceNewline.Enabled = false
	cfg.Rules.Spacing.Enabled = false
	cfg.Rules.Alignment.Enabled = false
	cfg.Rules.EmptyLine.Enabled = false

	if n := len(New(cfg).Rules()); n != 0 {
		t.Fatalf("got %d passes, want 0", n)
	}
	got := mustSource(t, "# c\na : b\n  | c\n  ;\n", cfg)
	if want := "# c\na :\n  b\n  | c\n  ;\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestParseErrorAbortsFormatting(t *testing.T) {
	out, err := Source("a: b {\n  x\n", config.Default())
	if err == nil {
		t.Fatal("expected error")
	}
	if out != "" {
		t.Fatalf("partial output %q", out)
	}
	if !errors.Is(err, diag.ErrParse) {
		t.Fatalf("error %v is not a parse error", err)
	}
	if !strings.Contains(err.Error(), "line 1") {
		t.Fatalf("error %q misses the action line", err)
	}
}

func TestFormatTracesPasses(t *testing.T) {
	cfg := config.Default()
	cfg.Rules.Spacing.Enabled = false

	ring := trace.NewRingTracer(64, trace.LevelPhase)
	ctx := trace.WithTracer(context.Background(), ring)
	tm := observ.NewTimer()
	if _, err := New(cfg).FormatTimed(ctx, []byte("a: b\n"), tm); err != nil {
		t.Fatal(err)
	}

	var names []string
	for _, ev := range ring.Snapshot() {
		if ev.Kind == trace.KindSpanBegin {
			names = append(names, ev.Name)
		}
	}
	want := "parse,indent,brace_newline,alignment,empty_line,serialize"
	if got := strings.Join(names, ","); got != want {
		t.Fatalf("spans = %s, want %s", got, want)
	}

	var phases []string
	for _, p := range tm.Report().Phases {
		phases = append(phases, p.Name)
	}
	if got := strings.Join(phases, ","); got != want {
		t.Fatalf("phases = %s, want %s", got, want)
	}
}

func TestWithRulesOverridesConfig(t *testing.T) {
	f := New(config.Default(), WithRules(rules.Spacing{}))
	out, err := f.Format(context.Background(), []byte("a: b {x=1}\n"))
	if err != nil {
		t.Fatal(err)
	}
	if want := "a :\n  b { x = 1 }\n  ;\n"; string(out) != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestFormatterIsSafeForConcurrentUse(t *testing.T) {
	f := New(config.Default())
	var wg sync.WaitGroup
	errs := make([]error, 16)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			src := fmt.Sprintf("r%d: x%d {y=%d}\n", i, i, i)
			out, err := f.Format(context.Background(), []byte(src))
			if err == nil && !strings.Contains(string(out), fmt.Sprintf("y = %d", i)) {
				err = fmt.Errorf("unexpected output %q", out)
			}
			errs[i] = err
		}(i)
	}
	wg.Wait()
	for i, err := range errs {
		if err != nil {
			t.Errorf("goroutine %d: %v", i, err)
		}
	}
}

func TestCheckRoundTrip(t *testing.T) {
	ok, msg := CheckRoundTrip([]byte(calcGrammar), config.Default())
	if !ok {
		t.Fatalf("round trip failed: %s", msg)
	}
	ok, msg = CheckRoundTrip([]byte("a : b\n  }\n"), config.Default())
	if ok || !strings.Contains(msg, "initial parse failed") {
		t.Fatalf("got %v %q", ok, msg)
	}
}

func TestCommentsAroundRuleBodyAreStable(t *testing.T) {
	srcs := []string{
		"opt_args : # nothing\n | args\n ;\nargs : arg\n",
		"a : b\n  | c\n  ; # end of a\n  d x\n",
	}
	for _, src := range srcs {
		once := mustSource(t, src, config.Default())
		if twice := mustSource(t, once, config.Default()); twice != once {
			t.Errorf("second pass changed output for %q:\nonce:  %q\ntwice: %q", src, once, twice)
		}
		if !strings.Contains(once, "# ") {
			t.Errorf("comment lost for %q: %q", src, once)
		}
	}
}

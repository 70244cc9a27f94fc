package format

import (
	"context"
	"strconv"

	"raccfmt/internal/ast"
	"raccfmt/internal/config"
	"raccfmt/internal/observ"
	"raccfmt/internal/parser"
	"raccfmt/internal/rules"
	"raccfmt/internal/trace"
)

// Formatter applies one resolved configuration. It holds no per-call state
// and may be shared between goroutines.
type Formatter struct {
	cfg   config.Config
	rules []rules.Rule
}

// Option customizes a Formatter.
type Option func(*Formatter)

// WithRules replaces the pass list resolved from the configuration.
func WithRules(rs ...rules.Rule) Option {
	return func(f *Formatter) {
		f.rules = append([]rules.Rule(nil), rs...)
	}
}

// New resolves the enabled passes of cfg once.
func New(cfg config.Config, opts ...Option) *Formatter {
	f := &Formatter{
		cfg:   cfg,
		rules: rules.Enabled(cfg),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Config returns the configuration the formatter was built with.
func (f *Formatter) Config() config.Config { return f.cfg }

// Rules returns the passes in the order they run.
func (f *Formatter) Rules() []rules.Rule {
	return append([]rules.Rule(nil), f.rules...)
}

// Format formats src. A parse error aborts the call without output.
func (f *Formatter) Format(ctx context.Context, src []byte) ([]byte, error) {
	return f.FormatTimed(ctx, src, nil)
}

// FormatTimed is Format recording one timer phase per pass. tm may be nil.
func (f *Formatter) FormatTimed(ctx context.Context, src []byte, tm *observ.Timer) ([]byte, error) {
	doc, err := f.parse(ctx, src, tm)
	if err != nil {
		return nil, err
	}
	for _, r := range f.rules {
		name := string(r.Name())
		span, _ := trace.Start(ctx, trace.ScopePass, name)
		idx := tm.Begin(name)
		doc = r.Apply(doc, f.cfg)
		tm.End(idx, "")
		span.End("")
	}

	span, _ := trace.Start(ctx, trace.ScopePass, "serialize")
	idx := tm.Begin("serialize")
	out := doc.Bytes()
	tm.End(idx, "")
	span.WithExtra("bytes", strconv.Itoa(len(out))).End("")
	return out, nil
}

func (f *Formatter) parse(ctx context.Context, src []byte, tm *observ.Timer) (*ast.Document, error) {
	span, _ := trace.Start(ctx, trace.ScopePass, "parse")
	idx := tm.Begin("parse")
	doc, err := parser.Parse(string(src))
	if err != nil {
		tm.End(idx, "failed")
		span.Fail(err)
		span.End("failed")
		return nil, err
	}
	note := strconv.Itoa(len(doc.Rules())) + " rules"
	tm.End(idx, note)
	span.End(note)
	return doc, nil
}

// Source formats src with cfg.
func Source(src string, cfg config.Config) (string, error) {
	out, err := New(cfg).Format(context.Background(), []byte(src))
	if err != nil {
		return "", err
	}
	return string(out), nil
}

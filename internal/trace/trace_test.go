package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
		err  bool
	}{
		{"off", LevelOff, false},
		{"error", LevelError, false},
		{"phase", LevelPhase, false},
		{"pass", LevelPhase, false},
		{"DETAIL", LevelDetail, false},
		{"debug", LevelDebug, false},
		{"loud", LevelOff, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.err || got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestShouldEmit(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopePass, false},
		{LevelError, ScopeError, true},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeFile, false},
		{LevelDetail, ScopeFile, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%v.ShouldEmit(%v) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestStartNestsSpans(t *testing.T) {
	ring := NewRingTracer(16, LevelDebug)
	ctx := WithTracer(context.Background(), ring)

	outer, ctx := Start(ctx, ScopeDriver, "driver")
	inner, _ := Start(ctx, ScopeFile, "file:a.y")
	inner.WithExtra("bytes", "12").End("ok")
	outer.End("")

	events := ring.Snapshot()
	if len(events) != 4 {
		t.Fatalf("got %d events, want 4", len(events))
	}
	if events[1].ParentID != events[0].SpanID {
		t.Errorf("inner parent = %d, want %d", events[1].ParentID, events[0].SpanID)
	}
	if events[2].Kind != KindSpanEnd || events[2].Extra["bytes"] != "12" || events[2].Detail != "ok" {
		t.Errorf("unexpected end event %+v", events[2])
	}
}

func TestNopWhenNoTracer(t *testing.T) {
	sp, ctx := Start(context.Background(), ScopePass, "indent")
	if sp.ID() != 0 {
		t.Fatal("span without tracer must be inert")
	}
	if CurrentSpan(ctx).SpanID != 0 {
		t.Fatal("inert span must not become a parent")
	}
	sp.Fail(errors.New("boom"))
	if sp.End("") != 0 {
		t.Fatal("inert span has no duration")
	}
}

func TestStreamTracerFormats(t *testing.T) {
	var text bytes.Buffer
	tr := NewStreamTracer(&text, LevelPhase, FormatText)
	sp := Begin(tr, ScopePass, "spacing", 0)
	sp.WithExtra("b", "2").WithExtra("a", "1").End("done")
	Begin(tr, ScopeFile, "file:skipped.y", 0).End("")

	out := text.String()
	if strings.Contains(out, "skipped") {
		t.Fatalf("file scope leaked at phase level:\n%s", out)
	}
	if !strings.Contains(out, "← spacing (done) {a=1, b=2}") {
		t.Fatalf("unexpected text trace:\n%s", out)
	}

	var js bytes.Buffer
	tr = NewStreamTracer(&js, LevelDebug, FormatNDJSON)
	Point(tr, ScopeError, "parse", "line 3: unexpected '}'", 0)
	var decoded map[string]any
	if err := json.Unmarshal(js.Bytes(), &decoded); err != nil {
		t.Fatalf("ndjson: %v", err)
	}
	if decoded["scope"] != "error" || decoded["kind"] != "point" {
		t.Fatalf("unexpected event %v", decoded)
	}
}

func TestNewPicksFormatFromPath(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr != Nop {
		t.Fatalf("off level must give Nop, got %T %v", tr, err)
	}
	var buf bytes.Buffer
	tr, err = New(Config{Level: LevelPhase, Output: &buf, OutputPath: "run.ndjson"})
	if err != nil {
		t.Fatal(err)
	}
	Begin(tr, ScopeDriver, "driver", 0).End("")
	if !strings.HasPrefix(buf.String(), "{") {
		t.Fatalf("expected NDJSON, got %q", buf.String())
	}
}

func TestResolveFormat(t *testing.T) {
	tests := []struct {
		format Format
		path   string
		want   Format
	}{
		{FormatAuto, "", FormatText},
		{FormatAuto, "-", FormatText},
		{FormatAuto, "trace.json", FormatNDJSON},
		{FormatAuto, "trace.ndjson", FormatNDJSON},
		{FormatText, "trace.ndjson", FormatText},
		{FormatNDJSON, "trace.log", FormatNDJSON},
	}
	for _, tt := range tests {
		if got := ResolveFormat(tt.format, tt.path); got != tt.want {
			t.Errorf("ResolveFormat(%d, %q) = %d, want %d", tt.format, tt.path, got, tt.want)
		}
	}
}

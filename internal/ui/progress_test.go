package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"raccfmt/internal/driver"
)

func TestProgressModelTracksFiles(t *testing.T) {
	files := []string{"a.y", "b.y", "c.y"}
	m := NewProgressModel("fmt", files, nil).(*progressModel)

	events := []driver.Event{
		{File: "a.y", Stage: driver.StageFormat, Status: driver.StatusWorking},
		{File: "a.y", Stage: driver.StageWrite, Status: driver.StatusDone, Changed: true},
		{File: "b.y", Stage: driver.StageFormat, Status: driver.StatusCached},
		{File: "c.y", Stage: driver.StageFormat, Status: driver.StatusError},
		{File: "c.y", Stage: driver.StageFormat, Status: driver.StatusDone},
		{File: "unknown.y", Stage: driver.StageLoad, Status: driver.StatusWorking},
	}
	for _, ev := range events {
		m.applyEvent(ev)
	}

	want := []string{"changed", "cached", "error"}
	for i, item := range m.items {
		if item.status != want[i] {
			t.Errorf("%s status = %q, want %q", item.path, item.status, want[i])
		}
	}
	if m.changed != 1 || m.failed != 1 {
		t.Fatalf("changed=%d failed=%d", m.changed, m.failed)
	}
	if got := m.percent(); got != 1 {
		t.Fatalf("percent = %v, want 1", got)
	}
}

func TestProgressModelView(t *testing.T) {
	m := NewProgressModel("fmt", []string{"grammar.y"}, nil).(*progressModel)
	m.applyEvent(driver.Event{File: "grammar.y", Stage: driver.StageFormat, Status: driver.StatusWorking})
	if got := m.percent(); got != 0.5 {
		t.Fatalf("percent = %v, want 0.5", got)
	}
	m.Update(tea.WindowSizeMsg{Width: 60})
	view := m.View()
	for _, part := range []string{"fmt (1 files, 0 changed, 0 failed)", "formatting", "grammar.y"} {
		if !strings.Contains(view, part) {
			t.Errorf("view missing %q:\n%s", part, view)
		}
	}
	m.Update(doneMsg{})
	if !strings.HasPrefix(stripANSI(m.View()), "done: ") {
		t.Errorf("done view = %q", m.View())
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
	}{
		{"short.y", 20},
		{"very/long/path/grammar.y", 10},
		{"grammar.y", 2},
		{"文法/文法.y", 6},
	}
	for _, tt := range tests {
		got := truncate(tt.in, tt.width)
		if runewidth.StringWidth(got) > tt.width {
			t.Errorf("truncate(%q, %d) = %q is too wide", tt.in, tt.width, got)
		}
		if runewidth.StringWidth(tt.in) <= tt.width && got != tt.in {
			t.Errorf("truncate(%q, %d) = %q, want unchanged", tt.in, tt.width, got)
		}
	}
}

func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEscape = true
		case inEscape:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

package observ

import (
	"strings"
	"testing"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin("parse")
	tm.End(idx, "3 rules")
	tm.End(idx+5, "ignored")

	r := tm.Report()
	if len(r.Phases) != 1 || r.Phases[0].Name != "parse" || r.Phases[0].Note != "3 rules" {
		t.Fatalf("unexpected report %+v", r)
	}
	if !strings.Contains(tm.Summary(), "// 3 rules") {
		t.Fatalf("summary misses note:\n%s", tm.Summary())
	}
}

func TestNilTimerIsInert(t *testing.T) {
	var tm *Timer
	tm.End(tm.Begin("x"), "")
	if r := tm.Report(); len(r.Phases) != 0 {
		t.Fatalf("nil timer reported %+v", r)
	}
}

func TestTotalsAccumulate(t *testing.T) {
	totals := NewTotals()
	totals.Add(Report{TotalMS: 3, Phases: []PhaseReport{{Name: "parse", DurationMS: 1, Count: 1}, {Name: "indent", DurationMS: 2, Count: 1}}})
	totals.Add(Report{TotalMS: 4, Phases: []PhaseReport{{Name: "parse", DurationMS: 4, Count: 1}}})

	r := totals.Report()
	if r.TotalMS != 7 || len(r.Phases) != 2 {
		t.Fatalf("unexpected totals %+v", r)
	}
	if p := r.Phases[0]; p.Name != "parse" || p.DurationMS != 5 || p.Count != 2 {
		t.Fatalf("parse phase = %+v", p)
	}
	if !strings.Contains(r.Summary(), "x2") {
		t.Fatalf("summary misses count:\n%s", r.Summary())
	}
}

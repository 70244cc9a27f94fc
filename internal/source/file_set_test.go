package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("grammar.y", []byte("a: b\n"), 0)
	id2 := fs.Add("./grammar.y", []byte("a: c\n"), 0)
	if id1 != 0 || id2 != 1 {
		t.Fatalf("ids = %d, %d", id1, id2)
	}
	latest, ok := fs.GetLatest("grammar.y")
	if !ok || latest != id2 {
		t.Fatalf("GetLatest = %d, %v", latest, ok)
	}
	if got := string(fs.Get(id1).Content); got != "a: b\n" {
		t.Fatalf("old version lost: %q", got)
	}
	if fs.Get(42) != nil {
		t.Fatal("unknown id must give nil")
	}
	if fs.Len() != 2 {
		t.Fatalf("Len = %d", fs.Len())
	}
}

func TestLoadNormalizesAndRestores(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "calc.y")
	raw := []byte("\xEF\xBB\xBFa: b\r\n  | c\r\n")
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatal(err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if got := string(f.Content); got != "a: b\n  | c\n" {
		t.Fatalf("Content = %q", got)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("flags = %b", f.Flags)
	}
	if got := f.Restore([]byte("a :\n  b\n")); string(got) != "\xEF\xBB\xBFa :\r\n  b\r\n" {
		t.Fatalf("Restore = %q", got)
	}
}

func TestLinesAndHash(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("<stdin>", []byte("one\ntwo\nthree")))
	if f.Flags&FileVirtual == 0 {
		t.Fatal("virtual flag missing")
	}
	if f.LineCount() != 3 {
		t.Fatalf("LineCount = %d", f.LineCount())
	}
	for i, want := range []string{"", "one", "two", "three", ""} {
		if got := f.GetLine(i); got != want {
			t.Errorf("GetLine(%d) = %q, want %q", i, got, want)
		}
	}

	g := fs.Get(fs.AddVirtual("other", []byte("one\r\ntwo\r\nthree")))
	if g.Hash != f.Hash {
		t.Fatal("hash must be taken over normalized content")
	}
}

package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveLineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("main.wsk", []byte("func main() {\n  return 1;\n}\n"))

	tests := []struct {
		name string
		off  uint32
		want LineCol
	}{
		{"start of file", 0, LineCol{Line: 1, Col: 1}},
		{"middle of first line", 5, LineCol{Line: 1, Col: 6}},
		{"newline byte belongs to its line", 13, LineCol{Line: 1, Col: 14}},
		{"second line", 16, LineCol{Line: 2, Col: 3}},
		{"last line", 26, LineCol{Line: 3, Col: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
			if got != tt.want {
				t.Fatalf("Resolve(%d) = %+v, want %+v", tt.off, got, tt.want)
			}
		})
	}
}

func TestFileLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("a.wsk", []byte("one\ntwo\nthree")))
	for i, want := range []string{"one", "two", "three"} {
		if got := f.Line(uint32(i + 1)); got != want {
			t.Errorf("Line(%d) = %q, want %q", i+1, got, want)
		}
	}
	if got := f.Line(0); got != "" {
		t.Errorf("Line(0) = %q, want empty", got)
	}
	if got := f.Line(9); got != "" {
		t.Errorf("Line(9) = %q, want empty", got)
	}
}

func TestLoadNormalizesCRLFAndBOM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crlf.wsk")
	if err := os.WriteFile(path, []byte("\xEF\xBB\xBFa\r\nb\r\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "a\nb\n" {
		t.Fatalf("content = %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("flags = %b, want BOM and CRLF bits", f.Flags)
	}
	if got, ok := fs.GetLatest(path); !ok || got != id {
		t.Fatalf("GetLatest = %d,%v", got, ok)
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 4, End: 8}
	b := Span{File: 1, Start: 2, End: 6}
	if got := a.Cover(b); got != (Span{File: 1, Start: 2, End: 8}) {
		t.Fatalf("Cover = %v", got)
	}
	other := Span{File: 2, Start: 0, End: 100}
	if got := a.Cover(other); got != a {
		t.Fatalf("Cover across files = %v, want %v", got, a)
	}
	if end := a.AtEnd(); !end.Empty() || end.Start != 8 {
		t.Fatalf("AtEnd = %v", end)
	}
}

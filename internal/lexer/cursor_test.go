package lexer

import (
	"testing"

	"github.com/rknit/whiskc/internal/source"
)

func TestCursorMarkAndReset(t *testing.T) {
	fs := source.NewFileSet()
	c := NewCursor(fs.Get(fs.AddVirtual("c.wsk", []byte("ab"))))
	m := c.Mark()
	if c.Bump() != 'a' || c.Peek() != 'b' {
		t.Fatal("unexpected bytes")
	}
	if sp := c.SpanFrom(m); sp.Start != 0 || sp.End != 1 {
		t.Fatalf("span = %v", sp)
	}
	c.Reset(m)
	if !c.Eat('a') || c.Eat('a') || !c.Eat('b') || !c.EOF() {
		t.Fatal("Eat sequence mismatch")
	}
	if c.Bump() != 0 || c.Peek() != 0 {
		t.Fatal("reads past EOF must return 0")
	}
}

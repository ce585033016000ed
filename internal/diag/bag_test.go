package diag

import (
	"testing"

	"github.com/rknit/whiskc/internal/source"
)

func TestBagCapAndCounts(t *testing.T) {
	b := NewBag(2)
	if !b.Add(NewError(SynUnexpectedToken, source.Span{}, "a")) {
		t.Fatal("first add rejected")
	}
	if !b.Add(New(SevWarning, SemaInfo, source.Span{}, "b")) {
		t.Fatal("second add rejected")
	}
	if b.Add(NewError(SynUnexpectedToken, source.Span{}, "c")) {
		t.Fatal("add past cap accepted")
	}
	if b.Len() != 2 || b.ErrorCount() != 1 || !b.HasWarnings() || !b.HasErrors() {
		t.Fatalf("unexpected bag state: len=%d errors=%d", b.Len(), b.ErrorCount())
	}
}

func TestBagUnlimited(t *testing.T) {
	b := NewBag(0)
	for i := 0; i < 200; i++ {
		b.Add(NewError(SemaUnresolvedName, source.Span{}, "x"))
	}
	if b.Len() != 200 {
		t.Fatalf("len = %d, want 200", b.Len())
	}
}

func TestBagSort(t *testing.T) {
	b := NewBag(10)
	b.Add(NewError(SemaUnresolvedName, source.Span{File: 0, Start: 9, End: 10}, "late"))
	b.Add(New(SevWarning, SemaInfo, source.Span{File: 0, Start: 1, End: 2}, "warn"))
	b.Add(NewError(SemaInfo, source.Span{File: 0, Start: 1, End: 2}, "err"))
	b.Sort()
	got := []string{}
	for _, d := range b.Items() {
		got = append(got, d.Message)
	}
	want := []string{"err", "warn", "late"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	b := NewBag(0)
	rb := ReportError(BagReporter{Bag: b}, SemaUnresolvedName, source.Span{}, "unknown").
		WithNote(source.Span{Start: 3, End: 4}, "declared here")
	rb.Emit()
	rb.Emit()
	if b.Len() != 1 {
		t.Fatalf("len = %d, want 1", b.Len())
	}
	if n := b.Items()[0].Notes; len(n) != 1 || n[0].Msg != "declared here" {
		t.Fatalf("notes = %+v", n)
	}
}

func TestCodeID(t *testing.T) {
	tests := map[Code]string{
		LexUnknownChar:         "LEX1001",
		SynMissingFunctionBody: "SYN2003",
		SemaUnresolvedName:     "SEM3001",
		UnknownCode:            "E0000",
	}
	for code, want := range tests {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", code, got, want)
		}
	}
}

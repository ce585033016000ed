package token_test

import (
	"testing"

	"github.com/rknit/whiskc/internal/token"
)

func TestKindClasses(t *testing.T) {
	tests := []struct {
		kind                 token.Kind
		keyword, op, delimit bool
	}{
		{token.KwFunc, true, false, false},
		{token.KwFalse, true, false, false},
		{token.Plus, false, true, false},
		{token.Assign, false, true, false},
		{token.LParen, false, false, true},
		{token.Colon, false, false, true},
		{token.Ident, false, false, false},
		{token.IntLit, false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := tt.kind.IsKeyword(); got != tt.keyword {
				t.Errorf("IsKeyword = %v", got)
			}
			if got := tt.kind.IsOperator(); got != tt.op {
				t.Errorf("IsOperator = %v", got)
			}
			if got := tt.kind.IsDelimiter(); got != tt.delimit {
				t.Errorf("IsDelimiter = %v", got)
			}
		})
	}
}

func TestLookupKeyword(t *testing.T) {
	cases := map[string]token.Kind{
		"func":     token.KwFunc,
		"extern":   token.KwExtern,
		"loop":     token.KwLoop,
		"continue": token.KwContinue,
		"as":       token.KwAs,
		"true":     token.KwTrue,
	}
	for lexeme, want := range cases {
		got, ok := token.LookupKeyword(lexeme)
		if !ok || got != want {
			t.Fatalf("LookupKeyword(%q) = %v,%v want %v", lexeme, got, ok, want)
		}
	}
	for _, s := range []string{"Func", "fn", "int", "bool", "while", ""} {
		if _, ok := token.LookupKeyword(s); ok {
			t.Fatalf("LookupKeyword(%q) unexpectedly ok", s)
		}
	}
}

func TestKindStringCoversAllKinds(t *testing.T) {
	for k := token.Invalid; k <= token.Colon; k++ {
		if k.String() == "unknown" {
			t.Fatalf("kind %d has no name", k)
		}
	}
}

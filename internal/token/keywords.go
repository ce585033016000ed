package token

var keywords = map[string]Kind{
	"func":     KwFunc,
	"extern":   KwExtern,
	"let":      KwLet,
	"if":       KwIf,
	"else":     KwElse,
	"loop":     KwLoop,
	"return":   KwReturn,
	"break":    KwBreak,
	"continue": KwContinue,
	"as":       KwAs,
	"true":     KwTrue,
	"false":    KwFalse,
}

// LookupKeyword returns the keyword kind for an exact, case-sensitive lexeme.
func LookupKeyword(s string) (Kind, bool) {
	k, ok := keywords[s]
	return k, ok
}

package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// IntLit is a decimal, hex or binary integer literal.
	IntLit

	KwFunc     // func
	KwExtern   // extern
	KwLet      // let
	KwIf       // if
	KwElse     // else
	KwLoop     // loop
	KwReturn   // return
	KwBreak    // break
	KwContinue // continue
	KwAs       // as
	KwTrue     // true
	KwFalse    // false

	Plus   // +
	Minus  // -
	Bang   // !
	AndAnd // &&
	OrOr   // ||
	EqEq   // ==
	BangEq // !=
	Lt     // <
	LtEq   // <=
	Gt     // >
	GtEq   // >=
	Assign // =

	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	LBracket  // [
	RBracket  // ]
	Comma     // ,
	Semicolon // ;
	Colon     // :
)

var kindNames = [...]string{
	Invalid:    "invalid",
	EOF:        "end of file",
	Ident:      "identifier",
	IntLit:     "integer literal",
	KwFunc:     "func",
	KwExtern:   "extern",
	KwLet:      "let",
	KwIf:       "if",
	KwElse:     "else",
	KwLoop:     "loop",
	KwReturn:   "return",
	KwBreak:    "break",
	KwContinue: "continue",
	KwAs:       "as",
	KwTrue:     "true",
	KwFalse:    "false",
	Plus:       "+",
	Minus:      "-",
	Bang:       "!",
	AndAnd:     "&&",
	OrOr:       "||",
	EqEq:       "==",
	BangEq:     "!=",
	Lt:         "<",
	LtEq:       "<=",
	Gt:         ">",
	GtEq:       ">=",
	Assign:     "=",
	LParen:     "(",
	RParen:     ")",
	LBrace:     "{",
	RBrace:     "}",
	LBracket:   "[",
	RBracket:   "]",
	Comma:      ",",
	Semicolon:  ";",
	Colon:      ":",
}

// String returns the source spelling for fixed tokens and a description otherwise.
func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// IsKeyword reports whether k is a reserved word.
func (k Kind) IsKeyword() bool {
	return k >= KwFunc && k <= KwFalse
}

// IsOperator reports whether k is an operator token.
func (k Kind) IsOperator() bool {
	return k >= Plus && k <= Assign
}

// IsDelimiter reports whether k is punctuation.
func (k Kind) IsDelimiter() bool {
	return k >= LParen && k <= Colon
}

package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// lexical
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedBlockComment Code = 1002
	LexBadNumber                Code = 1003

	// syntax
	SynInfo                Code = 2000
	SynUnexpectedToken     Code = 2001
	SynUnexpectedInfix     Code = 2002
	SynMissingFunctionBody Code = 2003
	SynExpectSemicolon     Code = 2004
	SynExpectIdentifier    Code = 2005
	SynExpectType          Code = 2006
	SynUnclosedDelimiter   Code = 2007
	SynUnexpectedTopLevel  Code = 2008
	SynIntOverflow         Code = 2009

	// resolution
	SemaInfo              Code = 3000
	SemaUnresolvedName    Code = 3001
	SemaUnresolvedCall    Code = 3002
	SemaDuplicateFunction Code = 3003
	SemaUnknownType       Code = 3004
	SemaDuplicateParam    Code = 3005
	SemaNotCallable       Code = 3006
	SemaArityMismatch     Code = 3007
	SemaInvalidAssign     Code = 3008
	SemaLoopControl       Code = 3009
	SemaUnsupportedExpr   Code = 3010
	SemaTypeMismatch      Code = 3011
	SemaMissingReturn     Code = 3012
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Malformed integer literal",
	SynInfo:                     "Syntax information",
	SynUnexpectedToken:          "Unexpected token",
	SynUnexpectedInfix:          "Unexpected infix operator",
	SynMissingFunctionBody:      "Missing function body",
	SynExpectSemicolon:          "Expected semicolon",
	SynExpectIdentifier:         "Expected identifier",
	SynExpectType:               "Expected type",
	SynUnclosedDelimiter:        "Unclosed delimiter",
	SynUnexpectedTopLevel:       "Unexpected top-level construct",
	SynIntOverflow:              "Integer literal out of range",
	SemaInfo:                    "Semantic information",
	SemaUnresolvedName:          "Unresolved name",
	SemaUnresolvedCall:          "Unresolved function",
	SemaDuplicateFunction:       "Duplicate function",
	SemaUnknownType:             "Unknown type",
	SemaDuplicateParam:          "Duplicate parameter",
	SemaNotCallable:             "Value is not callable",
	SemaArityMismatch:           "Wrong number of arguments",
	SemaInvalidAssign:           "Invalid assignment target",
	SemaLoopControl:             "Loop control outside of loop",
	SemaUnsupportedExpr:         "Unsupported expression",
	SemaTypeMismatch:            "Type mismatch",
	SemaMissingReturn:           "Missing return value",
}

// ID returns the stable short form, e.g. SYN2001.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

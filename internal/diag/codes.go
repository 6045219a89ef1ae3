package diag

import (
	"fmt"
)

// Code identifies a diagnostic category across all phases.
type Code uint16

const (
	UnknownCode Code = 0

	// Lexical.
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexUnterminatedChar   Code = 1003
	LexBadNumber          Code = 1004

	// Syntactic.
	SynUnexpectedToken  Code = 2001
	SynExpectIdentifier Code = 2002
	SynExpectExpression Code = 2003
	SynUnclosedBrace    Code = 2004
	SynUnclosedBracket  Code = 2005
	SynUnclosedParen    Code = 2006
	SynExpectSemicolon  Code = 2007
	SynExpectCatch      Code = 2008

	// Semantic graph diagnostics derived from the HIR.
	HirUnresolvedReference Code = 3001
	HirUnresolvedImport    Code = 3002
	HirDuplicateParameter  Code = 3003
	HirNestedFunction      Code = 3004
)

func (c Code) String() string {
	switch {
	case c >= 3000:
		return fmt.Sprintf("HIR%04d", uint16(c))
	case c >= 2000:
		return fmt.Sprintf("SYN%04d", uint16(c))
	case c >= 1000:
		return fmt.Sprintf("LEX%04d", uint16(c))
	default:
		return fmt.Sprintf("UNK%04d", uint16(c))
	}
}

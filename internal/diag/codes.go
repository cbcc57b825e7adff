package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002

	// Syntax
	SynInfo              Code = 2000
	SynUnexpectedToken   Code = 2001
	SynExpectExpression  Code = 2002
	SynUnclosedParen     Code = 2003
	SynUnclosedBracket   Code = 2004
	SynUnclosedClosure   Code = 2005
	SynUnclosedBlock     Code = 2006
	SynExpectSeparator   Code = 2007
	SynExpectClosureBody Code = 2008
	SynBadClosureParam   Code = 2009
	SynNestingTooDeep    Code = 2010
	SynExpectProgramme   Code = 2011

	// I/O
	IOLoadFileError Code = 4001

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:           "Unknown error",
		LexInfo:               "Lexical information",
		LexUnknownChar:        "Unknown character",
		LexUnterminatedString: "Unterminated string literal",
		SynInfo:               "Syntax information",
		SynUnexpectedToken:    "Unexpected token",
		SynExpectExpression:   "Expected expression",
		SynUnclosedParen:      "Unclosed parenthesis",
		SynUnclosedBracket:    "Unclosed square bracket",
		SynUnclosedClosure:    "Unclosed closure parameter list",
		SynUnclosedBlock:      "Unclosed indented block",
		SynExpectSeparator:    "Expected newline or ';' between items",
		SynExpectClosureBody:  "Expected closure body",
		SynBadClosureParam:    "Invalid closure parameter",
		SynNestingTooDeep:     "Expression nesting too deep",
		SynExpectProgramme:    "Input does not start with an expression",
		IOLoadFileError:       "I/O load file error",
		ObsInfo:               "Observability information",
		ObsTimings:            "Pipeline timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
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

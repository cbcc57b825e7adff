package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Punct covers every operator and punctuation mark; Text holds the symbol.
	Punct Kind = iota
	// Int is a decimal integer literal.
	Int
	// Float is a decimal literal with a fraction or an exponent.
	Float
	// Hex is a "0x" prefixed literal.
	Hex
	// Keyword is one of the reserved words.
	Keyword
	Ident
	// Str is a quoted literal, quotes included.
	Str
	// Newline separates items at the same indentation.
	Newline
	// Begin opens an indented block.
	Begin
	// End closes the innermost indented block.
	End
	Eof
	// UnknownToken is a single byte no rule accepts.
	UnknownToken
	// UnterminatedString runs from an opening quote to the end of input.
	UnterminatedString
)

var kindNames = [...]string{
	Punct:              "Punct",
	Int:                "Int",
	Float:              "Float",
	Hex:                "Hex",
	Keyword:            "Keyword",
	Ident:              "Ident",
	Str:                "Str",
	Newline:            "Newline",
	Begin:              "Begin",
	End:                "End",
	Eof:                "Eof",
	UnknownToken:       "UnknownToken",
	UnterminatedString: "UnterminatedString",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsLayout reports whether the kind comes from indentation or line structure.
func (k Kind) IsLayout() bool {
	switch k {
	case Newline, Begin, End, Eof:
		return true
	default:
		return false
	}
}

// IsError reports whether the kind marks malformed input.
func (k Kind) IsError() bool {
	return k == UnknownToken || k == UnterminatedString
}

package token

// keywords are reserved; they lex as Keyword and never as Ident.
var keywords = map[string]struct{}{
	"def":  {},
	"if":   {},
	"else": {},
	"for":  {},
	"let":  {},
	"mut":  {},
}

// IsKeywordText reports whether lexeme is reserved.
func IsKeywordText(lexeme string) bool {
	_, ok := keywords[lexeme]
	return ok
}

// Puncts lists every punctuation symbol, longest first.
// The lexer matches the first entry that prefixes the input.
var Puncts = []string{
	">>>",
	"**", "<<", ">>", "+=", "-=", "/=",
	"!", "+", "-", "*", "/", "%", "=",
	"[", "]", "(", ")", ":", ",", ";", ".", "|",
}

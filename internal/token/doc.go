// Package token defines the lexical token kinds of sqwipt.
// Invariants:
//   - Token.Text equals the source bytes under Token.Span.
//   - Begin, End and Eof carry empty spans; Newline covers its line break.
//   - Operators and punctuation share the Punct kind; the parser tells them
//     apart by Text.
package token

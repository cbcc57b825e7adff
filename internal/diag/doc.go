// Package diag defines the diagnostic model shared by the lexer, the parser
// and the driver.
//
// A Diagnostic carries a Severity, a stable numeric Code (rendered as
// LEX1001, SYN2003 and so on), a short message, the primary source.Span and
// optional notes and fix suggestions.
//
// Producers never format or print. They emit through a Reporter; the driver
// usually passes a BagReporter so diagnostics end up in a Bag that can be
// sorted, deduplicated and merged across files. Rendering lives in
// internal/diagfmt.
package diag

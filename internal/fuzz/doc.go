// Package fuzztests houses Go fuzz harnesses for the sqwipt front end
// (source -> lexer -> parser). They check that arbitrary input terminates
// without panics and that token streams and trees keep their structural
// invariants.
//
// Seeds come from the repository testdata/ tree plus a built-in list of
// layout and recovery edge cases.
package fuzztests

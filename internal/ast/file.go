package ast

import (
	"sqwipt/internal/source"
)

// FileStatus tells whether parsing produced a usable programme.
type FileStatus uint8

const (
	// FileGood holds the parsed top-level expressions, possibly containing Bad nodes.
	FileGood FileStatus = iota
	// FileBad means the input did not start with an expression; Exprs is empty.
	FileBad
)

func (s FileStatus) String() string {
	if s == FileBad {
		return "bad"
	}
	return "good"
}

// File is one parsed programme: its top-level expressions in source order.
type File struct {
	Span   source.Span
	Exprs  []ExprID
	Status FileStatus
}

type Files struct {
	Arena *Arena[File]
}

func NewFiles(capHint uint) *Files {
	return &Files{
		Arena: NewArena[File](capHint),
	}
}

func (f *Files) New(sp source.Span) FileID {
	return FileID(f.Arena.Allocate(File{
		Span:  sp,
		Exprs: make([]ExprID, 0),
	}))
}

func (f *Files) Get(id FileID) *File {
	return f.Arena.Get(uint32(id))
}

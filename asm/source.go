package asm

import (
	"github.com/rvkit/rvasm/isa"
)

// SourceLine is the tokenized form of one input line. Index is the 0-based
// line number in the original source; pseudo expansion copies it onto every
// replacement line so errors always point at what the user wrote.
type SourceLine struct {
	Tokens isa.LineTokens
	Index  int
}

// Program is an ordered sequence of source lines. Pass 0 produces it,
// pass 1 replaces it with the expanded form, pass 2 strips label tokens in
// place, and pass 3 reads it.
type Program []SourceLine

// Error ties an assembler error to the source line it originated from.
type Error struct {
	Line int
	Err  error
}

func (err Error) Error() string {
	return f("line %v: %v", err.Line+1, err.Err)
}

func (err Error) Unwrap() error {
	return err.Err
}

// Errors is the accumulated error list of one pass.
type Errors []Error

// Result is the terminal artifact of an assemble call, valid iff Errors is
// empty. A failing assemble still carries whatever sections were emitted,
// for diagnostic use only.
type Result struct {
	Errors Errors
	Image  *Image
}

// Ok reports whether assembly succeeded.
func (res *Result) Ok() bool {
	return len(res.Errors) == 0
}

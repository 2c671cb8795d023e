package isa

// LineTokens is an ordered list of string tokens from one source line.
type LineTokens []string

// Evaluator resolves an operand expression to a signed integer value.
// Symbol references inside the expression are resolved by the caller's
// symbol table.
type Evaluator func(expr string) (int64, error)

// SymbolLookup resolves a symbol name to its address.
type SymbolLookup func(name string) (addr uint32, ok bool)

// ISA is the capability contract an instruction set must supply to the
// assembler: register naming, the instruction catalog, and the
// pseudo-instruction expansion table. Implementations are read-only for the
// duration of an assemble call.
type ISA interface {
	// Name of the instruction set, e.g. "RV32I".
	Name() string

	// Bytes is the fixed width of one encoded instruction.
	Bytes() int

	// Register resolves a register name to its index.
	Register(name string) (uint32, error)

	// RegisterName resolves a register index to its canonical name.
	RegisterName(index uint32) (string, error)

	// Instructions enumerates the instruction catalog.
	Instructions() []*Instruction

	// PseudoOps enumerates the pseudo-instruction expansion table.
	PseudoOps() []*PseudoOp
}

// EncodeContext carries the operand tokens and address environment needed
// to encode one instruction.
type EncodeContext struct {
	ISA     ISA
	Address uint32     // address of the instruction being encoded
	Tokens  LineTokens // operand tokens, mnemonic excluded
	Symbol  SymbolLookup
	Eval    Evaluator
}

// Package isa models instruction set architectures as declarative bit-field
// data.
//
// An Instruction is described by its fixed op-parts (opcode and funct
// constants at known bit positions) and its operand fields (register slots
// and immediates, possibly split across several bit ranges). The same field
// data drives both directions: encoding mnemonic+operands into a machine
// word, and matching/decoding a machine word back into tokens.
//
// The Matcher validates at construction time that the fixed bits of a
// catalog partition the encoding space, so per-word matching is a plain
// scan with no ambiguity handling on the hot path.
package isa

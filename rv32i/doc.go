// Package rv32i supplies the RV32I base integer instruction set as an
// isa.ISA descriptor: the 32 registers with their ABI names, the full base
// catalog as declarative bit-field data, and the common pseudo-instruction
// expansions.
package rv32i

// Package asm implements a four-pass assembler over a pluggable isa.ISA
// descriptor.
//
// Pass 0 tokenizes the source into per-line token lists, pass 1 expands
// pseudo-instructions into real ones, pass 2 strips and records label
// symbols while assigning section addresses, and pass 3 encodes
// instructions and data directives into the final section image. Passes
// 0-2 halt the pipeline at the first error; pass 3 sweeps the whole
// program and reports every defect it finds.
//
// An Assembler holds no per-call state: concurrent Assemble calls on the
// same Assembler are safe, each owning its own symbol table, section
// writer and error list.
package asm

package asm

import (
	"bufio"
	"io"
	"log"
	"strings"

	"github.com/rvkit/rvasm/isa"
)

// Assembler turns assembly source for one ISA into a binary Image plus a
// diagnostic error list.
type Assembler struct {
	Verbose bool          // If set, verbosely logs the pass progress.
	Layout  SectionLayout // Section name to base address mapping.

	arch    isa.ISA
	matcher *isa.Matcher
	pseudos map[string][]*isa.PseudoOp
}

// NewAssembler creates an assembler over an ISA descriptor. The
// descriptor's catalog is validated here, once: field layout coverage and
// fixed-bit ambiguity problems surface as a construction error.
func NewAssembler(arch isa.ISA) (*Assembler, error) {
	matcher, err := isa.NewMatcher(arch)
	if err != nil {
		return nil, err
	}

	pseudos := make(map[string][]*isa.PseudoOp)
	for _, op := range arch.PseudoOps() {
		pseudos[op.Mnemonic] = append(pseudos[op.Mnemonic], op)
	}

	return &Assembler{
		Layout:  DefaultLayout,
		arch:    arch,
		matcher: matcher,
		pseudos: pseudos,
	}, nil
}

// Matcher exposes the decode direction of the instruction catalog for
// disassembly consumers.
func (a *Assembler) Matcher() *isa.Matcher {
	return a.matcher
}

// Assemble reads assembly source and runs the four passes over it.
func (a *Assembler) Assemble(input io.Reader) *Result {
	var lines []string
	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return &Result{Errors: Errors{{Line: len(lines), Err: err}}, Image: &Image{}}
	}

	return a.AssembleLines(lines)
}

// AssembleLines assembles an ordered sequence of source lines. Passes 0-2
// halt the pipeline at the first error; pass 3 sweeps the whole program
// and accumulates every line-level error before reporting.
func (a *Assembler) AssembleLines(lines []string) *Result {
	prog, errs := a.pass0(lines)
	if len(errs) > 0 {
		return &Result{Errors: errs, Image: &Image{}}
	}

	prog, errs = a.pass1(prog)
	if len(errs) > 0 {
		return &Result{Errors: errs, Image: &Image{}}
	}

	symbols := NewSymbolTable()
	if errs = a.pass2(prog, symbols); len(errs) > 0 {
		return &Result{Errors: errs, Image: &Image{}}
	}

	image, errs := a.pass3(prog, symbols)
	return &Result{Errors: errs, Image: image}
}

// pass0 tokenizes every input line, preserving line numbers.
func (a *Assembler) pass0(lines []string) (Program, Errors) {
	prog := make(Program, 0, len(lines))
	for n, line := range lines {
		if a.Verbose {
			log.Printf("%v: %v", n+1, line)
		}
		tokens, err := tokenize(line)
		if err != nil {
			return nil, Errors{{Line: n, Err: err}}
		}
		prog = append(prog, SourceLine{Tokens: tokens, Index: n})
	}
	return prog, nil
}

// pass1 expands pseudo-instructions. Replacement lines carry the origin
// line index, and a leading label attaches to the first replacement only.
func (a *Assembler) pass1(prog Program) (Program, Errors) {
	out := make(Program, 0, len(prog))
	for _, line := range prog {
		labels, rest := splitLabels(line.Tokens)
		if len(rest) == 0 || isDirective(rest[0]) {
			out = append(out, line)
			continue
		}

		mnemonic := rest[0]
		op := a.findPseudo(mnemonic, len(rest)-1)
		if op == nil {
			if _, isPseudo := a.pseudos[mnemonic]; isPseudo {
				if _, err := a.matcher.Lookup(mnemonic); err != nil {
					wrong := &ErrExpandOperands{Mnemonic: mnemonic, Got: len(rest) - 1}
					return nil, Errors{{Line: line.Index, Err: wrong}}
				}
			}
			out = append(out, line)
			continue
		}

		expanded, err := op.Expand(rest)
		if err != nil {
			return nil, Errors{{Line: line.Index, Err: &ErrExpand{Mnemonic: mnemonic, Err: err}}}
		}
		for n, tokens := range expanded {
			if n == 0 && len(labels) > 0 {
				tokens = append(append(isa.LineTokens{}, labels...), tokens...)
			}
			out = append(out, SourceLine{Tokens: tokens, Index: line.Index})
		}
	}
	return out, nil
}

// pass2 strips leading label tokens, recording each against the active
// section cursor, and advances addresses for everything that will emit
// bytes. On return the symbol table is final.
func (a *Assembler) pass2(prog Program, symbols *SymbolTable) Errors {
	writer := NewSectionWriter(a.Layout)
	if err := writer.Switch(textSection); err != nil {
		return Errors{{Line: 0, Err: err}}
	}

	for n := range prog {
		line := &prog[n]

		for len(line.Tokens) > 0 && strings.HasSuffix(line.Tokens[0], ":") {
			name := strings.TrimSuffix(line.Tokens[0], ":")
			if err := symbols.Define(name, writer.Cursor()); err != nil {
				return Errors{{Line: line.Index, Err: err}}
			}
			line.Tokens = line.Tokens[1:]
		}

		if len(line.Tokens) == 0 {
			continue
		}

		if isDirective(line.Tokens[0]) {
			size, err := applyDirective(writer, line.Tokens)
			if err != nil {
				return Errors{{Line: line.Index, Err: err}}
			}
			writer.Advance(size)
			continue
		}

		writer.Advance(uint32(a.arch.Bytes()))
	}

	return nil
}

// pass3 re-walks the expanded, label-stripped program and emits machine
// code and data. Its cursor bookkeeping reproduces pass 2's addresses
// exactly: every error path still advances by the same byte count, so one
// bad line cannot shift the addresses of the lines after it.
func (a *Assembler) pass3(prog Program, symbols *SymbolTable) (*Image, Errors) {
	writer := NewSectionWriter(a.Layout)
	if err := writer.Switch(textSection); err != nil {
		return writer.Image(), Errors{{Line: 0, Err: err}}
	}

	eval := evaluator(symbols)
	var errs Errors

	for _, line := range prog {
		if len(line.Tokens) == 0 {
			continue
		}

		if isDirective(line.Tokens[0]) {
			size, err := applyDirective(writer, line.Tokens)
			if err != nil {
				// pass 2 validated structure; only layout drift gets here
				errs = append(errs, Error{Line: line.Index, Err: err})
				continue
			}
			if size == 0 {
				continue
			}
			data, err := directiveEmit(line.Tokens, eval)
			if err != nil {
				errs = append(errs, Error{Line: line.Index, Err: err})
				data = make([]byte, size)
			}
			writer.Write(data)
			continue
		}

		word, err := a.encode(line.Tokens, writer.Cursor(), symbols, eval)
		if err != nil {
			errs = append(errs, Error{Line: line.Index, Err: err})
		}
		encoded := make([]byte, a.arch.Bytes())
		for b := range encoded {
			encoded[b] = byte(word >> (8 * uint(b)))
		}
		writer.Write(encoded)
	}

	return writer.Image(), errs
}

// encode assembles one instruction line into its machine word.
func (a *Assembler) encode(tokens isa.LineTokens, addr uint32, symbols *SymbolTable, eval isa.Evaluator) (uint32, error) {
	in, err := a.matcher.Lookup(tokens[0])
	if err != nil {
		return 0, err
	}

	ctx := &isa.EncodeContext{
		ISA:     a.arch,
		Address: addr,
		Tokens:  splitMemOperand(a.arch, tokens[1:], in.Operands()),
		Symbol:  symbols.Lookup,
		Eval:    eval,
	}
	return in.Encode(ctx)
}

// splitMemOperand rewrites a trailing "offset(reg)" operand into separate
// offset and register tokens when the instruction expects exactly one more
// operand than the line carries.
func splitMemOperand(arch isa.ISA, operands isa.LineTokens, want int) isa.LineTokens {
	if len(operands)+1 != want || len(operands) == 0 {
		return operands
	}
	last := operands[len(operands)-1]
	if len(last) < 3 || last[len(last)-1] != ')' {
		return operands
	}

	depth := 0
	open := -1
	for n := len(last) - 1; n >= 0; n-- {
		switch last[n] {
		case ')':
			depth++
		case '(':
			depth--
		}
		if depth == 0 {
			open = n
			break
		}
	}
	if open <= 0 {
		return operands
	}

	register := last[open+1 : len(last)-1]
	if _, err := arch.Register(register); err != nil {
		return operands
	}

	out := append(isa.LineTokens{}, operands[:len(operands)-1]...)
	return append(out, last[:open], register)
}

func splitLabels(tokens isa.LineTokens) (labels, rest isa.LineTokens) {
	n := 0
	for n < len(tokens) && strings.HasSuffix(tokens[n], ":") {
		n++
	}
	return tokens[:n], tokens[n:]
}

func (a *Assembler) findPseudo(mnemonic string, operands int) *isa.PseudoOp {
	for _, op := range a.pseudos[mnemonic] {
		if op.Operands == operands {
			return op
		}
	}
	return nil
}

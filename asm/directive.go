package asm

import (
	"strings"

	"github.com/rvkit/rvasm/isa"
)

// directive describes one assembler directive: either a section switch or
// a data emitter with a fixed element size.
type directive struct {
	section string // switch target
	unit    int    // element byte size for numeric emitters
	str     bool   // quoted string emitter
}

var directives = map[string]directive{
	".text":   {section: ".text"},
	".data":   {section: ".data"},
	".bss":    {section: ".bss"},
	".word":   {unit: 4},
	".half":   {unit: 2},
	".byte":   {unit: 1},
	".string": {str: true},
}

func isDirective(token string) bool {
	return strings.HasPrefix(token, ".")
}

// directiveSize computes the byte count a directive line will emit without
// evaluating operand expressions: pass 2 needs only counts, never values.
func directiveSize(tokens isa.LineTokens) (uint32, error) {
	d, ok := directives[tokens[0]]
	if !ok {
		return 0, ErrDirectiveUnknown(tokens[0])
	}

	switch {
	case d.section != "":
		if len(tokens) != 1 {
			return 0, ErrDirectiveBare(tokens[0])
		}
		return 0, nil
	case d.str:
		literal, err := stringOperand(tokens)
		if err != nil {
			return 0, err
		}
		return uint32(len(literal) + 1), nil
	default:
		if len(tokens) < 2 {
			return 0, ErrDirectiveEmpty(tokens[0])
		}
		return uint32(d.unit * (len(tokens) - 1)), nil
	}
}

// applyDirective validates a directive line against the writer, performs
// any section switch, and returns the byte count the line emits.
func applyDirective(writer *SectionWriter, tokens isa.LineTokens) (uint32, error) {
	size, err := directiveSize(tokens)
	if err != nil {
		return 0, err
	}
	if d := directives[tokens[0]]; d.section != "" {
		if err := writer.Switch(d.section); err != nil {
			return 0, err
		}
	}
	return size, nil
}

// directiveEmit produces the bytes of a data directive: little-endian
// words/halves/bytes for each evaluated operand, or UTF-8 string contents
// plus a NUL terminator.
func directiveEmit(tokens isa.LineTokens, eval isa.Evaluator) ([]byte, error) {
	d := directives[tokens[0]]

	if d.str {
		literal, err := stringOperand(tokens)
		if err != nil {
			return nil, err
		}
		return append([]byte(literal), 0), nil
	}

	out := make([]byte, 0, d.unit*(len(tokens)-1))
	for _, operand := range tokens[1:] {
		value, err := eval(operand)
		if err != nil {
			return nil, err
		}
		if err := checkUnitRange(value, d.unit); err != nil {
			return nil, err
		}
		for b := 0; b < d.unit; b++ {
			out = append(out, byte(value>>(8*uint(b))))
		}
	}

	return out, nil
}

// checkUnitRange admits any value expressible in the element size, signed
// or unsigned (a .byte accepts -128 through 255).
func checkUnitRange(value int64, unit int) error {
	bits := uint(unit * 8)
	lo := -(int64(1) << (bits - 1))
	hi := (int64(1) << bits) - 1
	if value < lo || value > hi {
		return &ErrDataRange{Value: value, Unit: unit}
	}
	return nil
}

func stringOperand(tokens isa.LineTokens) (string, error) {
	if len(tokens) != 2 {
		return "", ErrDirectiveEmpty(tokens[0])
	}
	literal := tokens[1]
	if len(literal) < 2 || literal[0] != '"' || literal[len(literal)-1] != '"' {
		return "", ErrStringOperand(literal)
	}
	return literal[1 : len(literal)-1], nil
}

package rv32i

import (
	"strconv"

	"github.com/rvkit/rvasm/isa"
)

func pseudo(mnemonic string, operands int, expand isa.ExpandFunc) *isa.PseudoOp {
	return &isa.PseudoOp{Mnemonic: mnemonic, Operands: operands, Expand: expand}
}

// alias builds an expansion template over the operand tokens: "$0" is the
// pseudo mnemonic, "$1".. are its operands, anything else is literal.
func alias(template ...[]string) isa.ExpandFunc {
	return func(tokens isa.LineTokens) (lines []isa.LineTokens, err error) {
		for _, line := range template {
			out := make(isa.LineTokens, len(line))
			for n, word := range line {
				if len(word) > 1 && word[0] == '$' {
					slot, _ := strconv.Atoi(word[1:])
					out[n] = tokens[slot]
				} else {
					out[n] = word
				}
			}
			lines = append(lines, out)
		}
		return
	}
}

// expandLi selects the one- or two-instruction load-immediate form. The
// operand must be an integer literal: the choice changes the line count,
// which has to be known before symbol addresses are assigned.
func expandLi(tokens isa.LineTokens) ([]isa.LineTokens, error) {
	rd, literal := tokens[1], tokens[2]

	value, err := strconv.ParseInt(literal, 0, 64)
	if err != nil || value > 0xffffffff || value < -0x80000000 {
		return nil, ErrLoadImmediate(literal)
	}

	if value >= -2048 && value <= 2047 {
		return []isa.LineTokens{
			{"addi", rd, "zero", literal},
		}, nil
	}

	word := int32(value)
	hi := uint32(word+0x800) >> 12
	lo := word - int32(hi<<12)
	return []isa.LineTokens{
		{"lui", rd, strconv.FormatUint(uint64(hi), 10)},
		{"addi", rd, rd, strconv.FormatInt(int64(lo), 10)},
	}, nil
}

func pseudoOps() []*isa.PseudoOp {
	return []*isa.PseudoOp{
		pseudo("nop", 0, alias([]string{"addi", "zero", "zero", "0"})),
		pseudo("mv", 2, alias([]string{"addi", "$1", "$2", "0"})),
		pseudo("not", 2, alias([]string{"xori", "$1", "$2", "-1"})),
		pseudo("neg", 2, alias([]string{"sub", "$1", "zero", "$2"})),
		pseudo("seqz", 2, alias([]string{"sltiu", "$1", "$2", "1"})),
		pseudo("snez", 2, alias([]string{"sltu", "$1", "zero", "$2"})),

		pseudo("j", 1, alias([]string{"jal", "zero", "$1"})),
		pseudo("jal", 1, alias([]string{"jal", "ra", "$1"})),
		pseudo("jr", 1, alias([]string{"jalr", "zero", "$1", "0"})),
		pseudo("jalr", 1, alias([]string{"jalr", "ra", "$1", "0"})),
		pseudo("ret", 0, alias([]string{"jalr", "zero", "ra", "0"})),
		pseudo("call", 1, alias([]string{"jal", "ra", "$1"})),

		pseudo("beqz", 2, alias([]string{"beq", "$1", "zero", "$2"})),
		pseudo("bnez", 2, alias([]string{"bne", "$1", "zero", "$2"})),
		pseudo("blez", 2, alias([]string{"bge", "zero", "$1", "$2"})),
		pseudo("bgez", 2, alias([]string{"bge", "$1", "zero", "$2"})),
		pseudo("bltz", 2, alias([]string{"blt", "$1", "zero", "$2"})),
		pseudo("bgtz", 2, alias([]string{"blt", "zero", "$1", "$2"})),

		pseudo("li", 2, expandLi),
	}
}

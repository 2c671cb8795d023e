package rv32i

import (
	"strconv"
	"strings"

	"github.com/rvkit/rvasm/isa"
)

// RV32I major opcodes.
const (
	opLoad   = 0b0000011
	opOpImm  = 0b0010011
	opAuipc  = 0b0010111
	opStore  = 0b0100011
	opOp     = 0b0110011
	opLui    = 0b0110111
	opBranch = 0b1100011
	opJalr   = 0b1100111
	opJal    = 0b1101111
	opSystem = 0b1110011
)

// Standard RV32 field positions.
var (
	rangeOpcode = isa.BitRange{Lo: 0, Hi: 6}
	rangeRd     = isa.BitRange{Lo: 7, Hi: 11}
	rangeFunct3 = isa.BitRange{Lo: 12, Hi: 14}
	rangeRs1    = isa.BitRange{Lo: 15, Hi: 19}
	rangeRs2    = isa.BitRange{Lo: 20, Hi: 24}
	rangeFunct7 = isa.BitRange{Lo: 25, Hi: 31}
)

// ABI register names, indexed by register number.
var registerNames = [32]string{
	"zero", "ra", "sp", "gp", "tp", "t0", "t1", "t2",
	"s0", "s1", "a0", "a1", "a2", "a3", "a4", "a5",
	"a6", "a7", "s2", "s3", "s4", "s5", "s6", "s7",
	"s8", "s9", "s10", "s11", "t3", "t4", "t5", "t6",
}

var registerIndex = map[string]uint32{
	"fp": 8,
}

func init() {
	for n, name := range registerNames {
		registerIndex[name] = uint32(n)
	}
}

// ISA is the RV32I base integer instruction set descriptor.
type ISA struct {
	instrs  []*isa.Instruction
	pseudos []*isa.PseudoOp
}

var _ isa.ISA = (*ISA)(nil)

// New creates an RV32I descriptor with the full base catalog.
func New() *ISA {
	return &ISA{
		instrs:  instructions(),
		pseudos: pseudoOps(),
	}
}

func (rv *ISA) Name() string {
	return "RV32I"
}

func (rv *ISA) Bytes() int {
	return 4
}

// Register resolves an ABI name ("a0", "sp", "fp") or a numeric name
// ("x0".."x31") to its register index.
func (rv *ISA) Register(name string) (uint32, error) {
	if index, ok := registerIndex[name]; ok {
		return index, nil
	}
	if numeric, found := strings.CutPrefix(name, "x"); found {
		index, err := strconv.ParseUint(numeric, 10, 5)
		if err == nil {
			return uint32(index), nil
		}
	}
	return 0, isa.ErrRegisterInvalid(name)
}

func (rv *ISA) RegisterName(index uint32) (string, error) {
	if index >= 32 {
		return "", isa.ErrRegisterInvalid("x" + strconv.FormatUint(uint64(index), 10))
	}
	return registerNames[index], nil
}

func (rv *ISA) Instructions() []*isa.Instruction {
	return rv.instrs
}

func (rv *ISA) PseudoOps() []*isa.PseudoOp {
	return rv.pseudos
}

func part(value uint32, r isa.BitRange) isa.OpPart {
	return isa.OpPart{Value: value, Range: r}
}

// rtype: mnemonic rd rs1 rs2
func rtype(mnemonic string, funct3, funct7 uint32) *isa.Instruction {
	return &isa.Instruction{
		Mnemonic: mnemonic,
		OpParts: []isa.OpPart{
			part(opOp, rangeOpcode),
			part(funct3, rangeFunct3),
			part(funct7, rangeFunct7),
		},
		Fields: []isa.Field{
			isa.Reg{Range: rangeRd},
			isa.Reg{Range: rangeRs1},
			isa.Reg{Range: rangeRs2},
		},
	}
}

// itype: mnemonic rd rs1 imm12
func itype(opcode uint32, mnemonic string, funct3 uint32) *isa.Instruction {
	return &isa.Instruction{
		Mnemonic: mnemonic,
		OpParts: []isa.OpPart{
			part(opcode, rangeOpcode),
			part(funct3, rangeFunct3),
		},
		Fields: []isa.Field{
			isa.Reg{Range: rangeRd},
			isa.Reg{Range: rangeRs1},
			isa.Imm{Width: 12, Kind: isa.ImmSigned,
				Parts: []isa.ImmPart{{Offset: 0, Range: isa.BitRange{Lo: 20, Hi: 31}}}},
		},
	}
}

// shift: mnemonic rd rs1 shamt
func shift(mnemonic string, funct3, funct7 uint32) *isa.Instruction {
	return &isa.Instruction{
		Mnemonic: mnemonic,
		OpParts: []isa.OpPart{
			part(opOpImm, rangeOpcode),
			part(funct3, rangeFunct3),
			part(funct7, rangeFunct7),
		},
		Fields: []isa.Field{
			isa.Reg{Range: rangeRd},
			isa.Reg{Range: rangeRs1},
			isa.Imm{Width: 5, Kind: isa.ImmUnsigned,
				Parts: []isa.ImmPart{{Offset: 0, Range: rangeRs2}}},
		},
	}
}

// load: mnemonic rd imm12 rs1 (also accepted as "mnemonic rd imm12(rs1)")
func load(mnemonic string, funct3 uint32) *isa.Instruction {
	return &isa.Instruction{
		Mnemonic: mnemonic,
		OpParts: []isa.OpPart{
			part(opLoad, rangeOpcode),
			part(funct3, rangeFunct3),
		},
		Fields: []isa.Field{
			isa.Reg{Range: rangeRd},
			isa.Imm{Width: 12, Kind: isa.ImmSigned,
				Parts: []isa.ImmPart{{Offset: 0, Range: isa.BitRange{Lo: 20, Hi: 31}}}},
			isa.Reg{Range: rangeRs1},
		},
	}
}

// stype: mnemonic rs2 imm12 rs1 (also accepted as "mnemonic rs2 imm12(rs1)")
func stype(mnemonic string, funct3 uint32) *isa.Instruction {
	return &isa.Instruction{
		Mnemonic: mnemonic,
		OpParts: []isa.OpPart{
			part(opStore, rangeOpcode),
			part(funct3, rangeFunct3),
		},
		Fields: []isa.Field{
			isa.Reg{Range: rangeRs2},
			isa.Imm{Width: 12, Kind: isa.ImmSigned, Parts: []isa.ImmPart{
				{Offset: 0, Range: isa.BitRange{Lo: 7, Hi: 11}},
				{Offset: 5, Range: isa.BitRange{Lo: 25, Hi: 31}},
			}},
			isa.Reg{Range: rangeRs1},
		},
	}
}

// btype: mnemonic rs1 rs2 target
func btype(mnemonic string, funct3 uint32) *isa.Instruction {
	return &isa.Instruction{
		Mnemonic: mnemonic,
		OpParts: []isa.OpPart{
			part(opBranch, rangeOpcode),
			part(funct3, rangeFunct3),
		},
		Fields: []isa.Field{
			isa.Reg{Range: rangeRs1},
			isa.Reg{Range: rangeRs2},
			isa.Imm{Width: 13, Kind: isa.ImmPCRel, Parts: []isa.ImmPart{
				{Offset: 11, Range: isa.BitRange{Lo: 7, Hi: 7}},
				{Offset: 1, Range: isa.BitRange{Lo: 8, Hi: 11}},
				{Offset: 5, Range: isa.BitRange{Lo: 25, Hi: 30}},
				{Offset: 12, Range: isa.BitRange{Lo: 31, Hi: 31}},
			}},
		},
	}
}

// utype: mnemonic rd imm20
func utype(opcode uint32, mnemonic string) *isa.Instruction {
	return &isa.Instruction{
		Mnemonic: mnemonic,
		OpParts: []isa.OpPart{
			part(opcode, rangeOpcode),
		},
		Fields: []isa.Field{
			isa.Reg{Range: rangeRd},
			isa.Imm{Width: 20, Kind: isa.ImmUnsigned,
				Parts: []isa.ImmPart{{Offset: 0, Range: isa.BitRange{Lo: 12, Hi: 31}}}},
		},
	}
}

// jtype: jal rd target
func jtype(mnemonic string) *isa.Instruction {
	return &isa.Instruction{
		Mnemonic: mnemonic,
		OpParts: []isa.OpPart{
			part(opJal, rangeOpcode),
		},
		Fields: []isa.Field{
			isa.Reg{Range: rangeRd},
			isa.Imm{Width: 21, Kind: isa.ImmPCRel, Parts: []isa.ImmPart{
				{Offset: 12, Range: isa.BitRange{Lo: 12, Hi: 19}},
				{Offset: 11, Range: isa.BitRange{Lo: 20, Hi: 20}},
				{Offset: 1, Range: isa.BitRange{Lo: 21, Hi: 30}},
				{Offset: 20, Range: isa.BitRange{Lo: 31, Hi: 31}},
			}},
		},
	}
}

// system: fully fixed encodings (ecall, ebreak)
func system(mnemonic string, imm12 uint32) *isa.Instruction {
	return &isa.Instruction{
		Mnemonic: mnemonic,
		OpParts: []isa.OpPart{
			part(opSystem, rangeOpcode),
			part(0, rangeRd),
			part(0, rangeFunct3),
			part(0, rangeRs1),
			part(imm12, isa.BitRange{Lo: 20, Hi: 31}),
		},
	}
}

func instructions() []*isa.Instruction {
	return []*isa.Instruction{
		utype(opLui, "lui"),
		utype(opAuipc, "auipc"),
		jtype("jal"),
		itype(opJalr, "jalr", 0b000),

		btype("beq", 0b000),
		btype("bne", 0b001),
		btype("blt", 0b100),
		btype("bge", 0b101),
		btype("bltu", 0b110),
		btype("bgeu", 0b111),

		load("lb", 0b000),
		load("lh", 0b001),
		load("lw", 0b010),
		load("lbu", 0b100),
		load("lhu", 0b101),

		stype("sb", 0b000),
		stype("sh", 0b001),
		stype("sw", 0b010),

		itype(opOpImm, "addi", 0b000),
		itype(opOpImm, "slti", 0b010),
		itype(opOpImm, "sltiu", 0b011),
		itype(opOpImm, "xori", 0b100),
		itype(opOpImm, "ori", 0b110),
		itype(opOpImm, "andi", 0b111),
		shift("slli", 0b001, 0b0000000),
		shift("srli", 0b101, 0b0000000),
		shift("srai", 0b101, 0b0100000),

		rtype("add", 0b000, 0b0000000),
		rtype("sub", 0b000, 0b0100000),
		rtype("sll", 0b001, 0b0000000),
		rtype("slt", 0b010, 0b0000000),
		rtype("sltu", 0b011, 0b0000000),
		rtype("xor", 0b100, 0b0000000),
		rtype("srl", 0b101, 0b0000000),
		rtype("sra", 0b101, 0b0100000),
		rtype("or", 0b110, 0b0000000),
		rtype("and", 0b111, 0b0000000),

		system("ecall", 0),
		system("ebreak", 1),
	}
}

package isa

import (
	"fmt"
)

// BitRange is an inclusive range of bit positions [Lo, Hi] within an
// encoded instruction word.
type BitRange struct {
	Lo, Hi int
}

// Width returns the number of bits covered by the range.
func (r BitRange) Width() int {
	return r.Hi - r.Lo + 1
}

// Mask returns the word mask covering the range.
func (r BitRange) Mask() uint32 {
	return ((1 << uint(r.Width())) - 1) << uint(r.Lo)
}

// Apply places a value into the range's position, truncating to its width.
func (r BitRange) Apply(value uint32) uint32 {
	return (value << uint(r.Lo)) & r.Mask()
}

// Extract reads the range's bits out of a word.
func (r BitRange) Extract(word uint32) uint32 {
	return (word & r.Mask()) >> uint(r.Lo)
}

// OpPart is a fixed field: a constant opcode or funct value at a known bit
// position, identifying the instruction.
type OpPart struct {
	Value uint32
	Range BitRange
}

// Matches reports whether the word carries this part's constant.
func (p OpPart) Matches(word uint32) bool {
	return p.Range.Extract(word) == p.Value
}

// Field is one operand slot of an instruction. Fields appear in operand
// order; encoding reads the matching operand token and decoding prints it
// back.
type Field interface {
	Encode(ctx *EncodeContext, token string, word *uint32) error
	Decode(arch ISA, word, addr uint32) (string, error)
	Bits() []BitRange
}

// Reg is a register operand field.
type Reg struct {
	Range BitRange
}

func (r Reg) Encode(ctx *EncodeContext, token string, word *uint32) error {
	index, err := ctx.ISA.Register(token)
	if err != nil {
		return err
	}
	*word |= r.Range.Apply(index)
	return nil
}

func (r Reg) Decode(arch ISA, word, addr uint32) (string, error) {
	return arch.RegisterName(r.Range.Extract(word))
}

func (r Reg) Bits() []BitRange {
	return []BitRange{r.Range}
}

// ImmKind selects the interpretation of an immediate field.
type ImmKind int

const (
	ImmSigned   = ImmKind(0) // two's-complement immediate
	ImmUnsigned = ImmKind(1) // unsigned immediate
	ImmPCRel    = ImmKind(2) // signed offset relative to the instruction address
)

func (k ImmKind) String() string {
	switch k {
	case ImmSigned:
		return "signed"
	case ImmUnsigned:
		return "unsigned"
	case ImmPCRel:
		return "pc-relative"
	}
	return fmt.Sprintf("ImmKind(%d)", int(k))
}

// ImmPart maps one slice of an immediate value into the instruction word:
// word bits Range hold immediate bits [Offset, Offset+Range.Width()).
type ImmPart struct {
	Offset int
	Range  BitRange
}

// Imm is an immediate operand field of Width bits, possibly scattered
// across several word ranges.
type Imm struct {
	Width int
	Kind  ImmKind
	Parts []ImmPart
}

// alignment is the byte alignment implied by the immediate bits that are
// not encoded: a field whose lowest stored bit is Offset 1 can only express
// even values.
func (im Imm) alignment() int64 {
	min := im.Width
	for _, p := range im.Parts {
		if p.Offset < min {
			min = p.Offset
		}
	}
	return int64(1) << uint(min)
}

func (im Imm) checkRange(value int64) error {
	var lo, hi int64
	switch im.Kind {
	case ImmUnsigned:
		lo, hi = 0, (1<<uint(im.Width))-1
	default:
		lo = -(1 << uint(im.Width-1))
		hi = (1 << uint(im.Width-1)) - 1
	}
	if value < lo || value > hi {
		return &ErrImmediateRange{Value: value, Width: im.Width, Kind: im.Kind}
	}
	return nil
}

func (im Imm) Encode(ctx *EncodeContext, token string, word *uint32) error {
	var value int64
	if im.Kind == ImmPCRel {
		if addr, ok := ctx.Symbol(token); ok {
			value = int64(addr) - int64(ctx.Address)
		} else {
			offset, err := ctx.Eval(token)
			if err != nil {
				return err
			}
			value = offset
		}
		if align := im.alignment(); value%align != 0 {
			return &ErrOffsetUnaligned{Offset: value, Align: align}
		}
	} else {
		evaled, err := ctx.Eval(token)
		if err != nil {
			return err
		}
		value = evaled
	}

	if err := im.checkRange(value); err != nil {
		return err
	}

	unsigned := uint32(value) & uint32((int64(1)<<uint(im.Width))-1)
	for _, p := range im.Parts {
		*word |= p.Range.Apply(unsigned >> uint(p.Offset))
	}

	return nil
}

func (im Imm) Decode(arch ISA, word, addr uint32) (string, error) {
	var unsigned uint32
	for _, p := range im.Parts {
		unsigned |= p.Range.Extract(word) << uint(p.Offset)
	}

	value := int64(unsigned)
	if im.Kind != ImmUnsigned && unsigned&(1<<uint(im.Width-1)) != 0 {
		value -= int64(1) << uint(im.Width)
	}

	return fmt.Sprintf("%d", value), nil
}

func (im Imm) Bits() (ranges []BitRange) {
	for _, p := range im.Parts {
		ranges = append(ranges, p.Range)
	}
	return
}

// Instruction is the fixed-layout descriptor of one real instruction: its
// mnemonic, fixed op-parts, and operand fields in source order.
type Instruction struct {
	Mnemonic string
	OpParts  []OpPart
	Fields   []Field
}

// Operands returns the number of operand tokens the instruction expects.
func (in *Instruction) Operands() int {
	return len(in.Fields)
}

// FixedMask returns the mask of all fixed (non-operand) bit positions.
func (in *Instruction) FixedMask() (mask uint32) {
	for _, p := range in.OpParts {
		mask |= p.Range.Mask()
	}
	return
}

// FixedValue returns the constant bits of the instruction, placed at their
// positions.
func (in *Instruction) FixedValue() (value uint32) {
	for _, p := range in.OpParts {
		value |= p.Range.Apply(p.Value)
	}
	return
}

// Matches reports whether all fixed fields of the instruction equal their
// expected constants in the word.
func (in *Instruction) Matches(word uint32) bool {
	return word&in.FixedMask() == in.FixedValue()
}

// Encode packs the operand tokens into the instruction's machine word.
func (in *Instruction) Encode(ctx *EncodeContext) (uint32, error) {
	if len(ctx.Tokens) != len(in.Fields) {
		return 0, &ErrOperandCount{Mnemonic: in.Mnemonic, Want: len(in.Fields), Got: len(ctx.Tokens)}
	}

	word := in.FixedValue()
	for n, field := range in.Fields {
		if err := field.Encode(ctx, ctx.Tokens[n], &word); err != nil {
			return 0, err
		}
	}

	return word, nil
}

// Decode extracts the operand fields of a word into token form, the exact
// inverse of Encode. addr is the address the word was fetched from.
func (in *Instruction) Decode(arch ISA, word, addr uint32) (LineTokens, error) {
	tokens := LineTokens{in.Mnemonic}
	for _, field := range in.Fields {
		token, err := field.Decode(arch, word, addr)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
	}

	return tokens, nil
}

// verify checks that op-parts and operand fields cover all 32 bits of the
// word exactly once.
func (in *Instruction) verify() error {
	var ranges []BitRange
	for _, p := range in.OpParts {
		ranges = append(ranges, p.Range)
	}
	for _, f := range in.Fields {
		ranges = append(ranges, f.Bits()...)
	}

	var covered uint32
	for _, r := range ranges {
		if r.Lo < 0 || r.Hi > 31 || r.Lo > r.Hi {
			return ErrFieldLayout(in.Mnemonic)
		}
		if covered&r.Mask() != 0 {
			return ErrFieldLayout(in.Mnemonic)
		}
		covered |= r.Mask()
	}
	if covered != 0xffffffff {
		return ErrFieldLayout(in.Mnemonic)
	}

	return nil
}

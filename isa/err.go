package isa

import (
	"github.com/rvkit/rvasm/translate"
)

var f = translate.From

// ErrRegisterInvalid reports a name that is not a register.
type ErrRegisterInvalid string

func (err ErrRegisterInvalid) Error() string {
	return f("'%v' is not a register", string(err))
}

// ErrMnemonicUnknown reports a mnemonic absent from the catalog.
type ErrMnemonicUnknown string

func (err ErrMnemonicUnknown) Error() string {
	return f("unknown instruction '%v'", string(err))
}

// ErrOperandCount reports an operand arity mismatch.
type ErrOperandCount struct {
	Mnemonic  string
	Want, Got int
}

func (err *ErrOperandCount) Error() string {
	return f("'%v' expects %v operands, got %v", err.Mnemonic, err.Want, err.Got)
}

// ErrImmediateRange reports an immediate outside its field's bounds.
type ErrImmediateRange struct {
	Value int64
	Width int
	Kind  ImmKind
}

func (err *ErrImmediateRange) Error() string {
	return f("immediate %v does not fit a %v-bit %v field", err.Value, err.Width, err.Kind)
}

// ErrOffsetUnaligned reports a branch target offset the field cannot
// express.
type ErrOffsetUnaligned struct {
	Offset int64
	Align  int64
}

func (err *ErrOffsetUnaligned) Error() string {
	return f("offset %v is not %v-byte aligned", err.Offset, err.Align)
}

// ErrNoMatch reports a word matched by no catalog descriptor.
type ErrNoMatch uint32

func (err ErrNoMatch) Error() string {
	return f("no instruction matches %#08x", uint32(err))
}

// ErrAmbiguousMatch reports two descriptors whose fixed fields do not
// partition the encoding space.
type ErrAmbiguousMatch struct {
	A, B string
}

func (err *ErrAmbiguousMatch) Error() string {
	return f("instructions '%v' and '%v' overlap in the encoding space", err.A, err.B)
}

// ErrFieldLayout reports a descriptor whose fields do not cover the word
// exactly.
type ErrFieldLayout string

func (err ErrFieldLayout) Error() string {
	return f("instruction '%v' has an inconsistent field layout", string(err))
}

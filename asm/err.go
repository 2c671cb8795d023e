package asm

import (
	"errors"

	"github.com/rvkit/rvasm/translate"
)

var f = translate.From

var (
	// Tokenizer errors
	ErrStringUnterminated = errors.New(f("unterminated string literal"))

	// Expression errors
	ErrNotInteger = errors.New(f("not an integer"))
)

// ErrLabelInvalid reports a label that is not a valid identifier.
type ErrLabelInvalid string

func (err ErrLabelInvalid) Error() string {
	return f("'%v' is not a valid label", string(err))
}

// ErrLabelDuplicate reports redefinition of an existing symbol.
type ErrLabelDuplicate string

func (err ErrLabelDuplicate) Error() string {
	return f("label '%v' already defined", string(err))
}

// ErrSymbolUndefined reports a reference to a symbol no pass 2 label
// defined.
type ErrSymbolUndefined string

func (err ErrSymbolUndefined) Error() string {
	return f("undefined symbol '%v'", string(err))
}

// ErrDirectiveUnknown reports an unrecognized directive.
type ErrDirectiveUnknown string

func (err ErrDirectiveUnknown) Error() string {
	return f("unknown directive '%v'", string(err))
}

// ErrDirectiveBare reports operands given to a directive that takes none.
type ErrDirectiveBare string

func (err ErrDirectiveBare) Error() string {
	return f("directive '%v' takes no operands", string(err))
}

// ErrDirectiveEmpty reports a data directive with no operands.
type ErrDirectiveEmpty string

func (err ErrDirectiveEmpty) Error() string {
	return f("directive '%v' needs at least one operand", string(err))
}

// ErrStringOperand reports a .string operand that is not a quoted string.
type ErrStringOperand string

func (err ErrStringOperand) Error() string {
	return f("'%v' is not a quoted string", string(err))
}

// ErrSectionUnknown reports a section absent from the assembler's layout.
type ErrSectionUnknown string

func (err ErrSectionUnknown) Error() string {
	return f("no section named '%v' in the layout", string(err))
}

// ErrExpression reports an operand expression that cannot be evaluated.
type ErrExpression struct {
	Expr string
	Err  error
}

func (err *ErrExpression) Error() string {
	return f("cannot evaluate '%v': %v", err.Expr, err.Err)
}

func (err *ErrExpression) Unwrap() error {
	return err.Err
}

// ErrExpand reports a pseudo-instruction whose expansion failed.
type ErrExpand struct {
	Mnemonic string
	Err      error
}

func (err *ErrExpand) Error() string {
	return f("cannot expand '%v': %v", err.Mnemonic, err.Err)
}

func (err *ErrExpand) Unwrap() error {
	return err.Err
}

// ErrExpandOperands reports a pseudo mnemonic used with an operand count no
// expansion template accepts.
type ErrExpandOperands struct {
	Mnemonic string
	Got      int
}

func (err *ErrExpandOperands) Error() string {
	return f("no %v-operand form of pseudo instruction '%v'", err.Got, err.Mnemonic)
}

// ErrDataRange reports a data directive value outside its element size.
type ErrDataRange struct {
	Value int64
	Unit  int
}

func (err *ErrDataRange) Error() string {
	return f("value %v does not fit in %v byte(s)", err.Value, err.Unit)
}

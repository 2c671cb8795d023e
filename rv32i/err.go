package rv32i

import (
	"github.com/rvkit/rvasm/translate"
)

var f = translate.From

// ErrLoadImmediate reports an li operand that is not a 32-bit integer
// literal.
type ErrLoadImmediate string

func (err ErrLoadImmediate) Error() string {
	return f("li needs a 32-bit integer literal, got '%v'", string(err))
}

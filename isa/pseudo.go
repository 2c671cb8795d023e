package isa

// ExpandFunc produces the replacement token lines for one pseudo
// instruction. The input tokens include the mnemonic; leading labels have
// already been peeled off by the caller.
type ExpandFunc func(tokens LineTokens) ([]LineTokens, error)

// PseudoOp describes one pseudo-instruction: an assembly-level mnemonic
// with no hardware encoding, replaced by one or more real instructions
// before encoding. A mnemonic may appear several times with different
// operand arities (e.g. a one-operand alias of a real instruction).
type PseudoOp struct {
	Mnemonic string
	Operands int
	Expand   ExpandFunc
}

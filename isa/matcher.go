package isa

// Matcher maps between mnemonics and instruction descriptors, and finds the
// unique descriptor matching an encoded word.
//
// Construction validates the whole catalog once: every descriptor must
// cover all word bits, mnemonics must be unique, and the fixed-field masks
// must partition the encoding space so that no word can match two
// descriptors. Match itself is then a plain scan.
type Matcher struct {
	arch   ISA
	instrs []*Instruction
	byName map[string]*Instruction
}

// NewMatcher builds and validates a matcher over the ISA's catalog.
func NewMatcher(arch ISA) (*Matcher, error) {
	instrs := arch.Instructions()

	byName := make(map[string]*Instruction, len(instrs))
	for _, in := range instrs {
		if err := in.verify(); err != nil {
			return nil, err
		}
		if _, ok := byName[in.Mnemonic]; ok {
			return nil, &ErrAmbiguousMatch{A: in.Mnemonic, B: in.Mnemonic}
		}
		byName[in.Mnemonic] = in
	}

	for i, a := range instrs {
		for _, b := range instrs[i+1:] {
			common := a.FixedMask() & b.FixedMask()
			if a.FixedValue()&common == b.FixedValue()&common {
				return nil, &ErrAmbiguousMatch{A: a.Mnemonic, B: b.Mnemonic}
			}
		}
	}

	return &Matcher{arch: arch, instrs: instrs, byName: byName}, nil
}

// Lookup finds the descriptor for a mnemonic.
func (m *Matcher) Lookup(mnemonic string) (*Instruction, error) {
	in, ok := m.byName[mnemonic]
	if !ok {
		return nil, ErrMnemonicUnknown(mnemonic)
	}
	return in, nil
}

// Match finds the unique descriptor whose fixed bits all equal their
// expected constants in the word.
func (m *Matcher) Match(word uint32) (*Instruction, error) {
	for _, in := range m.instrs {
		if in.Matches(word) {
			return in, nil
		}
	}
	return nil, ErrNoMatch(word)
}

// Disassemble matches a word and decodes it into tokens. addr is the
// address the word was fetched from, used for pc-relative operands.
func (m *Matcher) Disassemble(word, addr uint32) (LineTokens, error) {
	in, err := m.Match(word)
	if err != nil {
		return nil, err
	}
	return in.Decode(m.arch, word, addr)
}

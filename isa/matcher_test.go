package isa

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// halt: every bit fixed.
func halt() *Instruction {
	return &Instruction{
		Mnemonic: "halt",
		OpParts: []OpPart{
			{Value: 0x3c, Range: BitRange{Lo: 0, Hi: 7}},
			{Value: 0, Range: BitRange{Lo: 8, Hi: 31}},
		},
	}
}

func TestMatcher(t *testing.T) {
	assert := assert.New(t)

	arch := &testISA{instrs: []*Instruction{movi(), halt()}}
	matcher, err := NewMatcher(arch)
	assert.NoError(err)

	in, err := matcher.Lookup("halt")
	assert.NoError(err)
	assert.Equal("halt", in.Mnemonic)

	_, err = matcher.Lookup("nope")
	assert.Error(err)

	table := []struct {
		word     uint32
		mnemonic string
		ok       bool
	}{
		{0x0000003c, "halt", true},
		{0x0000015a, "movi", true},
		{0x1234025a, "movi", true},
		{0x00000000, "", false},
		{0x0000013c, "", false}, // halt with a stray bit set
	}
	for _, entry := range table {
		in, err := matcher.Match(entry.word)
		if !entry.ok {
			assert.Error(err, entry.word)
			continue
		}
		assert.NoError(err, entry.word)
		assert.Equal(entry.mnemonic, in.Mnemonic, entry.word)
	}
}

func TestMatcherDisassemble(t *testing.T) {
	assert := assert.New(t)

	arch := &testISA{instrs: []*Instruction{movi(), halt()}}
	matcher, err := NewMatcher(arch)
	assert.NoError(err)

	tokens, err := matcher.Disassemble(0x1234025a, 0)
	assert.NoError(err)
	assert.Equal(LineTokens{"movi", "r2", "4660"}, tokens)

	_, err = matcher.Disassemble(0x00000000, 0)
	assert.Error(err)
}

func TestMatcherValidation(t *testing.T) {
	assert := assert.New(t)

	// identical fixed bits under two mnemonics cannot be told apart
	clone := movi()
	clone.Mnemonic = "movj"
	_, err := NewMatcher(&testISA{instrs: []*Instruction{movi(), clone}})
	assert.Error(err)

	// duplicate mnemonic
	_, err = NewMatcher(&testISA{instrs: []*Instruction{movi(), movi()}})
	assert.Error(err)

	// catalog with an uncovered bit span
	gap := &Instruction{
		Mnemonic: "gap",
		OpParts:  []OpPart{{Value: 1, Range: BitRange{Lo: 0, Hi: 7}}},
	}
	_, err = NewMatcher(&testISA{instrs: []*Instruction{gap}})
	assert.Error(err)
}

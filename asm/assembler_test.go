package asm

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rvkit/rvasm/rv32i"
)

func newAssembler(t *testing.T) *Assembler {
	assembler, err := NewAssembler(rv32i.New())
	if err != nil {
		t.Fatal(err)
	}
	return assembler
}

// testAssemble asserts pass/fail of a program and, optionally, the exact
// bytes of its .data section.
func testAssemble(t *testing.T, program []string, wantErrors bool, wantData []byte) *Result {
	assert := assert.New(t)

	res := newAssembler(t).AssembleLines(program)
	if wantErrors {
		assert.False(res.Ok(), strings.Join(program, "\n"))
	} else {
		assert.True(res.Ok(), fmt.Sprintf("%v: %v", strings.Join(program, "\n"), res.Errors))
	}

	if wantData != nil {
		section := res.Image.Section(".data")
		if assert.NotNil(section) {
			assert.Equal(wantData, section.Data)
		}
	}

	return res
}

func TestSimpleProgram(t *testing.T) {
	testAssemble(t, []string{
		".data",
		"B: .word 1, 2, 2",
		"C: .string \"hello world!\"",
		".text",
		"addi a0 a0 123 # Hello world",
		"nop",
	}, false, nil)
}

func TestSimpleWithBranch(t *testing.T) {
	testAssemble(t, []string{
		"B:nop",
		"sw x0, 24(sp) # tmp. res 2",
		"addi a0 a0 10",
		"addi a0 a0 -1",
		"beqz a0 B",
	}, false, nil)
}

func TestSegment(t *testing.T) {
	assert := assert.New(t)

	res := testAssemble(t, []string{
		".data",
		"nop",
		".text ",
		"L: .word 1, 2, 3 ,4",
		"nop",
		".data",
		"nop",
	}, false, nil)

	// both .data appearances append to the same section
	assert.Equal(8, len(res.Image.Section(".data").Data))
	assert.Equal(20, len(res.Image.Section(".text").Data))
}

func TestLabel(t *testing.T) {
	assert := assert.New(t)

	assembler := newAssembler(t)
	prog, errs := assembler.pass0([]string{
		"A:",
		"",
		"B: C:",
		"D: E: addi a0 a0 -1",
	})
	assert.Empty(errs)
	prog, errs = assembler.pass1(prog)
	assert.Empty(errs)

	symbols := NewSymbolTable()
	errs = assembler.pass2(prog, symbols)
	assert.Empty(errs)

	// labels on empty lines all bind to the next instruction's address
	for _, name := range []string{"A", "B", "C", "D", "E"} {
		addr, ok := symbols.Lookup(name)
		assert.True(ok, name)
		assert.Equal(TextBase, addr, name)
	}
}

func TestForwardReference(t *testing.T) {
	assert := assert.New(t)

	assembler := newAssembler(t)
	prog, errs := assembler.pass0([]string{
		"beqz a0 end",
		"nop",
		"end: nop",
	})
	assert.Empty(errs)
	prog, errs = assembler.pass1(prog)
	assert.Empty(errs)

	symbols := NewSymbolTable()
	errs = assembler.pass2(prog, symbols)
	assert.Empty(errs)

	addr, ok := symbols.Lookup("end")
	assert.True(ok)
	assert.Equal(TextBase+8, addr)

	image, errs := assembler.pass3(prog, symbols)
	assert.Empty(errs)
	assert.Equal(12, len(image.Section(".text").Data))
}

func TestLabelWithPseudo(t *testing.T) {
	res := testAssemble(t, []string{
		"j end",
		"end:nop",
	}, false, nil)

	assert := assert.New(t)
	text := res.Image.Section(".text").Data
	assert.Equal(8, len(text))

	// j expands to jal zero with a +4 displacement
	word := uint32(text[0]) | uint32(text[1])<<8 | uint32(text[2])<<16 | uint32(text[3])<<24
	assert.Equal(uint32(0x0040006f), word)
}

func TestDuplicateSymbol(t *testing.T) {
	testAssemble(t, []string{
		"X: nop",
		"X: nop",
	}, true, nil)

	// duplicate fails even at the identical address
	testAssemble(t, []string{
		"X: Y: X: nop",
	}, true, nil)
}

func TestInvalidLabel(t *testing.T) {
	testAssemble(t, []string{
		".text",
		"ABC+: lw x10 ABC+ x10",
	}, true, nil)
	testAssemble(t, []string{"a: lw a0 a+ a0"}, true, nil)
	testAssemble(t, []string{"addi a0 a0 (a"}, true, nil)
}

func TestExpression(t *testing.T) {
	testAssemble(t, []string{
		".text",
		"lw x10 (123 + (4* 3))(x10)",
	}, false, nil)
	testAssemble(t, []string{
		".data",
		"A: .word 1",
		".text",
		"lw a0 A(+1) a0",
	}, true, nil)
}

func TestEdgeImmediates(t *testing.T) {
	testAssemble(t, []string{
		"addi a0 a0 2047",
		"addi a0 a0 -2048",
	}, false, nil)
}

func TestWeirdImmediates(t *testing.T) {
	res := testAssemble(t, []string{
		"addi a0 a0 0q1234",
		"addi a0 a0 -abcd",
		"addi a0 a0 100000000",
		"addi a0 a0 4096",
		"addi a0 a0 2048",
		"addi a0 a0 -2049",
		"addi a0 a0 0xabcdabcdabcd",
	}, true, nil)

	// pass 3 sweeps the whole program: every defective line is reported
	assert.Len(t, res.Errors, 7)
}

func TestImmediateBoundary(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		imm string
		ok  bool
	}{
		{"-2049", false},
		{"-2048", true},
		{"2047", true},
		{"2048", false},
	}

	for _, entry := range table {
		res := newAssembler(t).AssembleLines([]string{"addi a0 a0 " + entry.imm})
		assert.Equal(entry.ok, res.Ok(), entry.imm)
	}
}

func TestInvalidRegister(t *testing.T) {
	testAssemble(t, []string{"addi x36 x46 1"}, true, nil)
}

func TestWeirdDirectives(t *testing.T) {
	testAssemble(t, []string{
		".text",
		"B: .a",
		"",
		".c",
		"nop",
	}, true, nil)

	// section directives take no operands
	testAssemble(t, []string{".data foo"}, true, nil)
}

func TestDirectives(t *testing.T) {
	literals := []string{
		`"foo"`,
		`"bar"`,
		`"1*2+(3/foo)"`,
		`"foo("`,
		`"foo)"`,
		`"foo(.)"`,
		`".text"`,
		`"nop"`,
		`"addi a0 a0 baz"`,
	}

	program := []string{".data"}
	var want []byte
	for n, literal := range literals {
		program = append(program, fmt.Sprintf("s%v: .string %v", n, literal))
		want = append(want, literal[1:len(literal)-1]...)
		want = append(want, 0)
	}
	testAssemble(t, program, false, want)

	testAssemble(t, []string{
		".data",
		"cw: .word 42",
		"ch: .half 42",
		"cb: .byte 42",
	}, false, []byte{42, 0, 0, 0, 42, 0, 42})
}

func TestDataLayout(t *testing.T) {
	assert := assert.New(t)

	assembler := newAssembler(t)
	prog, errs := assembler.pass0([]string{
		".data",
		"A: .word 1, 2, 2",
		"C: .string \"hi\"",
		".text",
		"nop",
	})
	assert.Empty(errs)
	prog, errs = assembler.pass1(prog)
	assert.Empty(errs)

	symbols := NewSymbolTable()
	errs = assembler.pass2(prog, symbols)
	assert.Empty(errs)

	image, errs := assembler.pass3(prog, symbols)
	assert.Empty(errs)

	data := image.Section(".data")
	assert.Equal(15, len(data.Data))
	assert.Equal([]byte{
		1, 0, 0, 0,
		2, 0, 0, 0,
		2, 0, 0, 0,
		'h', 'i', 0,
	}, data.Data)

	a, _ := symbols.Lookup("A")
	c, _ := symbols.Lookup("C")
	assert.Equal(DataBase, a)
	assert.Equal(DataBase+12, c)
}

func TestSectionResume(t *testing.T) {
	res := testAssemble(t, []string{
		".data",
		".byte 1",
		".text",
		"nop",
		".data",
		".byte 2",
	}, false, []byte{1, 2})

	assert.Equal(t, 4, len(res.Image.Section(".text").Data))
}

func TestUndefinedSymbol(t *testing.T) {
	testAssemble(t, []string{"beqz a0 nowhere"}, true, nil)
	testAssemble(t, []string{".data", ".word missing"}, true, nil)
}

func TestPseudoArity(t *testing.T) {
	// pseudo mnemonic with an operand count no template accepts
	testAssemble(t, []string{"mv a0"}, true, nil)

	// jal keeps its real two-operand form alongside the one-operand alias
	testAssemble(t, []string{
		"jal ra target",
		"jal target",
		"target: nop",
	}, false, nil)
}

func TestRoundTrip(t *testing.T) {
	assert := assert.New(t)

	assembler := newAssembler(t)
	res := assembler.AssembleLines([]string{
		"addi a0 a0 123",
		"sw x0 24 sp",
		"add s0 s1 s2",
		"lui t0 1000",
	})
	assert.True(res.Ok(), fmt.Sprintf("%v", res.Errors))

	text := res.Image.Section(".text").Data
	matcher := assembler.Matcher()
	for n := 0; n+4 <= len(text); n += 4 {
		word := uint32(text[n]) | uint32(text[n+1])<<8 | uint32(text[n+2])<<16 | uint32(text[n+3])<<24

		tokens, err := matcher.Disassemble(word, TextBase+uint32(n))
		assert.NoError(err)

		again, err := assembler.encode(tokens, TextBase+uint32(n), NewSymbolTable(), evaluator(NewSymbolTable()))
		assert.NoError(err)
		assert.Equal(word, again, strings.Join(tokens, " "))
	}
}

func createProgram(entries int) (lines []string) {
	lines = append(lines, ".data")
	for n := 0; n < entries; n++ {
		lines = append(lines, fmt.Sprintf("L%v: .word 1 2 3 4", n))
	}
	lines = append(lines, ".text")
	for n := 0; n < entries; n++ {
		lines = append(lines, fmt.Sprintf("LA%v: addi a0 a0 1", n))
		lines = append(lines, "nop")
		lines = append(lines, fmt.Sprintf("beqz a0 LA%v", n))
	}
	return
}

func TestGeneratedProgram(t *testing.T) {
	assert := assert.New(t)

	res := newAssembler(t).AssembleLines(createProgram(100))
	assert.True(res.Ok(), fmt.Sprintf("%v", res.Errors))
	assert.Equal(100*16, len(res.Image.Section(".data").Data))
	assert.Equal(100*12, len(res.Image.Section(".text").Data))
}

func BenchmarkAssembler(b *testing.B) {
	assembler, err := NewAssembler(rv32i.New())
	if err != nil {
		b.Fatal(err)
	}
	program := createProgram(1000)

	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		assembler.AssembleLines(program)
	}
}

package asm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/asm9/isa"
)

func parseProgram(t *testing.T, program ...string) *Program {
	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	if err != nil {
		t.Fatal(err)
	}
	return prog
}

func TestProgram_Words(t *testing.T) {
	assert := assert.New(t)

	prog := parseProgram(t,
		"; setup",
		"MOV R0, #1",
		"loop:",
		"SUB R0, #1",
		"BGE loop",
		"HALT",
	)

	var addresses []int
	var words []isa.Word
	for address, word := range prog.Words() {
		addresses = append(addresses, address)
		words = append(words, word)
	}

	assert.Equal([]int{0, 1, 2, 3}, addresses)
	assert.Equal([]isa.Word{0b1_000_00001, 0b1_010_00001, 0b1_001_11110, 0b1_111_00000}, words)
	assert.Equal([]uint16{0x101, 0x141, 0x13e, 0x1e0}, prog.Binary())

	for address := range prog.Words() {
		assert.Equal(0, address)
		break
	}
}

func TestProgram_Debug(t *testing.T) {
	assert := assert.New(t)

	prog := parseProgram(t,
		"MOV R0, #1",
		"",
		"next: ADD R0, #2",
		"HALT",
	)

	stmt, ok := prog.Debug(0)
	assert.True(ok)
	assert.Equal(1, stmt.LineNo)

	stmt, ok = prog.Debug(1)
	assert.True(ok)
	assert.Equal(3, stmt.LineNo)
	assert.Equal("next", stmt.Label)
	assert.Equal("100100010", stmt.Word.String())

	stmt, ok = prog.Debug(2)
	assert.True(ok)
	assert.Equal(4, stmt.LineNo)
}

func TestProgram_Debug_NotFound(t *testing.T) {
	assert := assert.New(t)

	prog := parseProgram(t, "HALT", "end:")

	_, ok := prog.Debug(1)
	assert.False(ok)

	_, ok = prog.Debug(-1)
	assert.False(ok)

	// The trailing label addresses one past the last instruction.
	assert.Equal(1, prog.Labels["end"])
	assert.Equal(1, prog.Statements[1].Address)
}

func TestProgram_Listing(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Statements: []Statement{
			{Line: ParseLine("// start")},
			{Line: ParseLine("top:"), Address: 0},
			{Line: ParseLine("  CLZ R2"), Address: 0, Word: 0b1_010_01000},
			{Line: ParseLine("BX R1 ; return"), Address: 1, Word: 0b1_011_00100},
		},
	}

	assert.Equal("101001000\n101100100", prog.Listing(false))
	assert.Equal("; // start\ntop: ; Label\n101001000 ; CLZ R2\n101100100 ; BX R1 ; return", prog.Listing(true))
}

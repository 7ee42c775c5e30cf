package asm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLine(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		text     string
		kind     LineKind
		label    string
		mnemonic string
		operands []string
		canon    string
	}){
		{"", LINE_EMPTY, "", "", nil, ""},
		{"   \t ", LINE_EMPTY, "", "", nil, ""},
		{"; comment", LINE_EMPTY, "", "", nil, ""},
		{"  // comment: not a label", LINE_EMPTY, "", "", nil, ""},
		{".L:", LINE_LABEL, ".L", "", nil, ""},
		{"  loop :  ; trailing", LINE_LABEL, "loop", "", nil, ""},
		{"mov r0, #1", LINE_INSTRUCTION, "", "MOV", []string{"r0", "#1"}, "MOV r0, #1"},
		{"MOV R0,#1 ; set: r0", LINE_INSTRUCTION, "", "MOV", []string{"R0", "#1"}, "MOV R0, #1"},
		{"ADD\tR1 #2 // add", LINE_INSTRUCTION, "", "ADD", []string{"R1", "#2"}, "ADD R1, #2"},
		{"top: SUB R0, #1", LINE_LABEL_INSTRUCTION, "top", "SUB", []string{"R0", "#1"}, "SUB R0, #1"},
		{"LDRB R1, 2(R3)", LINE_INSTRUCTION, "", "LDRB", []string{"R1", "2"}, "LDRB R1, 2"},
		{"STR R1, 3(r7)", LINE_INSTRUCTION, "", "STR", []string{"R1", "3"}, "STR R1, 3"},
		{"halt", LINE_INSTRUCTION, "", "HALT", nil, "HALT"},
		{"ORR R1,,R2 , R3", LINE_INSTRUCTION, "", "ORR", []string{"R1", "R2", "R3"}, "ORR R1, R2, R3"},
		{": HALT", LINE_INSTRUCTION, "", "HALT", nil, "HALT"},
		{".equ ONE 1", LINE_DIRECTIVE, "", ".EQU", []string{"ONE", "1"}, ""},
		{".EQU TWO $(1 + 1) ; two", LINE_DIRECTIVE, "", ".EQU", []string{"TWO", "$(1", "+", "1)"}, ""},
	}

	for _, entry := range table {
		line := ParseLine(entry.text)
		assert.Equal(entry.text, line.Source, entry.text)
		assert.Equal(entry.kind, line.Kind, entry.text)
		assert.Equal(entry.label, line.Label, entry.text)
		assert.Equal(entry.mnemonic, line.Mnemonic, entry.text)
		if len(entry.operands) == 0 {
			assert.Empty(line.Operands, entry.text)
		} else {
			assert.Equal(entry.operands, line.Operands, entry.text)
		}
		assert.Equal(entry.canon, line.Text, entry.text)
	}
}

func TestParseLineInstruction(t *testing.T) {
	assert := assert.New(t)

	line := ParseLine("  here:  LDRB R1, 0(R2)   ; load")
	assert.Equal("LDRB R1, 0(R2)", line.Instruction)
	assert.Equal("LDRB R1, 0", line.Text)
	assert.True(line.HasInstruction())

	line = ParseLine("here:")
	assert.False(line.HasInstruction())
	assert.Equal("", line.Instruction)
}

func TestLineKindString(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("empty", LINE_EMPTY.String())
	assert.Equal("label+instruction", LINE_LABEL_INSTRUCTION.String())
	assert.Equal("directive", LINE_DIRECTIVE.String())
	assert.Equal("LineKind(7)", LineKind(7).String())
}

func FuzzParseLine(f *testing.F) {
	f.Add("MOV R0, #1")
	f.Add(".L: B .L ; loop")
	f.Add("LDRB R1, 3(R2) // mem")
	f.Add(".equ X 1")
	f.Add(":")

	f.Fuzz(func(t *testing.T, text string) {
		assert := assert.New(t)

		line := ParseLine(text)
		assert.Equal(text, line.Source)

		switch line.Kind {
		case LINE_EMPTY:
			assert.Empty(line.Mnemonic)
		case LINE_LABEL:
			assert.NotEmpty(line.Label)
			assert.Empty(line.Mnemonic)
		case LINE_INSTRUCTION, LINE_LABEL_INSTRUCTION:
			assert.NotEmpty(line.Mnemonic)
			assert.Equal(strings.ToUpper(line.Mnemonic), line.Mnemonic)
			assert.True(strings.HasPrefix(line.Text, line.Mnemonic))
			for _, op := range line.Operands {
				assert.NotContains(op, ",")
			}
		case LINE_DIRECTIVE:
			assert.Equal(".EQU", line.Mnemonic)
		default:
			t.Fatalf("unexpected kind %v", line.Kind)
		}
	})
}

// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package isa

import (
	"iter"
	"regexp"
	"slices"
	"strings"
)

// Operand describes one operand slot of an instruction.
type Operand struct {
	Name  string // Field name, used in syntax help and errors.
	Kind  Kind   // Syntactic kind.
	Width int    // Width of the encoded field in bits.
}

// Instruction is the encoding metadata of a single mnemonic.
type Instruction struct {
	Mnemonic string
	Class    Class
	Opcode   uint16
	Operands []Operand

	pattern *regexp.Regexp
}

func reg(name string, width int) Operand {
	return Operand{Name: name, Kind: KIND_REGISTER, Width: width}
}

func imm(width int) Operand {
	return Operand{Name: "imm", Kind: KIND_IMMEDIATE, Width: width}
}

func offset(width int) Operand {
	return Operand{Name: "offset", Kind: KIND_OFFSET, Width: width}
}

func label(width int) Operand {
	return Operand{Name: "label", Kind: KIND_LABEL, Width: width}
}

// instructions is the instruction set, in listing order.
var instructions = []*Instruction{
	{Mnemonic: "MOV", Class: CLASS_I, Opcode: 0b000, Operands: []Operand{reg("Rd", 3), imm(2)}},
	{Mnemonic: "ADD", Class: CLASS_I, Opcode: 0b001, Operands: []Operand{reg("Rd", 3), imm(2)}},
	{Mnemonic: "SUB", Class: CLASS_I, Opcode: 0b010, Operands: []Operand{reg("Rd", 3), imm(2)}},
	{Mnemonic: "RSB", Class: CLASS_I, Opcode: 0b011, Operands: []Operand{reg("Rd", 3), imm(2)}},
	{Mnemonic: "AND", Class: CLASS_I, Opcode: 0b100, Operands: []Operand{reg("Rd", 3), imm(2)}},
	{Mnemonic: "LSL", Class: CLASS_I, Opcode: 0b101, Operands: []Operand{reg("Rd", 3), imm(2)}},
	{Mnemonic: "LSRI", Class: CLASS_I, Opcode: 0b110, Operands: []Operand{reg("Rd", 3), imm(2)}},
	{Mnemonic: "CMP", Class: CLASS_I, Opcode: 0b111, Operands: []Operand{reg("Rn", 3), imm(2)}},

	{Mnemonic: "ORR", Class: CLASS_R, Opcode: 0b000, Operands: []Operand{reg("Rd", 1), reg("Rn", 2), reg("Rm", 2)}},
	{Mnemonic: "LSR", Class: CLASS_R, Opcode: 0b001, Operands: []Operand{reg("Rd", 1), reg("Rn", 2), reg("Rm", 2)}},
	{Mnemonic: "CMPR", Class: CLASS_R, Opcode: 0b010, Operands: []Operand{reg("Rn", 3), reg("Rm", 2)}},

	{Mnemonic: "SXT", Class: CLASS_U, Opcode: 0b001, Operands: []Operand{reg("Rd", 3)}},
	{Mnemonic: "CLZ", Class: CLASS_U, Opcode: 0b010, Operands: []Operand{reg("Rd", 3)}},
	{Mnemonic: "HALT", Class: CLASS_U, Opcode: 0b111},

	{Mnemonic: "LDRB", Class: CLASS_M, Opcode: 0b100, Operands: []Operand{reg("Rd", 3), offset(2)}},
	{Mnemonic: "STRB", Class: CLASS_M, Opcode: 0b101, Operands: []Operand{reg("Rs", 3), offset(2)}},
	{Mnemonic: "LDR", Class: CLASS_M, Opcode: 0b110, Operands: []Operand{reg("Rd", 3), offset(2)}},
	{Mnemonic: "STR", Class: CLASS_M, Opcode: 0b111, Operands: []Operand{reg("Rs", 3), offset(2)}},

	{Mnemonic: "BEQ", Class: CLASS_C, Opcode: 0b000, Operands: []Operand{label(5)}},
	{Mnemonic: "BGE", Class: CLASS_C, Opcode: 0b001, Operands: []Operand{label(5)}},
	{Mnemonic: "B", Class: CLASS_C, Opcode: 0b010, Operands: []Operand{label(5)}},

	{Mnemonic: "BX", Class: CLASS_X, Opcode: 0b011, Operands: []Operand{reg("Rm", 3)}},
}

// table maps upper case mnemonics to instructions.
var table = make(map[string]*Instruction, len(instructions))

// kindPattern is the regular expression of each operand kind.
var kindPattern = map[Kind]string{
	KIND_REGISTER:  `(R[0-7])`,
	KIND_IMMEDIATE: `#(0x[0-9a-f]+|0b[01]+|[0-9]+)`,
	KIND_OFFSET:    `(0x[0-9a-f]+|0b[01]+|[0-9]+)`,
	KIND_LABEL:     `([._a-z][._a-z0-9]*)`,
}

func init() {
	for _, ins := range instructions {
		ins.pattern = regexp.MustCompile(ins.expression())
		table[ins.Mnemonic] = ins
	}
}

// expression builds the syntax pattern for the canonical form of the
// instruction: "MNEMONIC op, op, ...".
func (ins *Instruction) expression() string {
	var sb strings.Builder

	sb.WriteString(`(?i)^`)
	sb.WriteString(regexp.QuoteMeta(ins.Mnemonic))
	for n, op := range ins.Operands {
		if n == 0 {
			sb.WriteString(` `)
		} else {
			sb.WriteString(`, `)
		}
		sb.WriteString(kindPattern[op.Kind])
	}
	sb.WriteString(`$`)

	return sb.String()
}

// Lookup finds the instruction for a mnemonic, ignoring case.
func Lookup(mnemonic string) (ins *Instruction, ok bool) {
	ins, ok = table[strings.ToUpper(mnemonic)]
	return
}

// Instructions returns an iterator over the instruction set in listing order.
func Instructions() iter.Seq[*Instruction] {
	return slices.Values(instructions)
}

// Match matches the canonical text of an instruction against its syntax,
// returning the operand tokens.
func (ins *Instruction) Match(text string) (operands []string, ok bool) {
	groups := ins.pattern.FindStringSubmatch(text)
	if groups == nil {
		return
	}

	operands = groups[1:]
	ok = true
	return
}

// Branch returns true for instructions whose operand is a label resolved to
// a relative offset.
func (ins *Instruction) Branch() bool {
	return ins.Class == CLASS_C
}

// Syntax returns a human readable form of the instruction syntax.
func (ins *Instruction) Syntax() string {
	words := make([]string, 0, len(ins.Operands))
	for _, op := range ins.Operands {
		switch op.Kind {
		case KIND_IMMEDIATE:
			words = append(words, "#"+op.Name)
		default:
			words = append(words, op.Name)
		}
	}

	if len(words) == 0 {
		return ins.Mnemonic
	}

	return ins.Mnemonic + " " + strings.Join(words, ", ")
}

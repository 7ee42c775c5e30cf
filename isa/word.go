// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package isa

import (
	"fmt"
)

const (
	WORD_BITS    = 9     // Bits in an instruction word.
	OPCODE_BITS  = 3     // Bits in the opcode field.
	OPERAND_BITS = 5     // Bits in the operand field.
	WORD_MASK    = 0x1ff // Mask of the valid word bits.

	BRANCH_MIN = -16 // Smallest branch offset.
	BRANCH_MAX = 15  // Largest branch offset.
)

// Word is a single 9-bit instruction word.
type Word uint16

// makeWord packs the type bit, opcode and operand field of a word.
func makeWord(class Class, opcode uint16, operand uint16) Word {
	return Word((class.Type() << 8) | ((opcode & 0x7) << 5) | (operand & 0x1f))
}

// Type returns the type bit.
func (word Word) Type() uint16 {
	return (uint16(word) >> 8) & 0x1
}

// Opcode returns the 3-bit opcode.
func (word Word) Opcode() uint16 {
	return (uint16(word) >> 5) & 0x7
}

// Operand returns the 5-bit operand field.
func (word Word) Operand() uint16 {
	return uint16(word) & 0x1f
}

// Field returns width bits of the operand field, starting at bit lsb.
func (word Word) Field(lsb, width int) int {
	return int(word.Operand()>>lsb) & ((1 << width) - 1)
}

// Offset returns the operand field as a two's complement branch offset.
func (word Word) Offset() int {
	value := int(word.Operand())
	if value&0x10 != 0 {
		value -= 0x20
	}
	return value
}

// String returns the word as nine binary digits, MSB first.
func (word Word) String() string {
	return fmt.Sprintf("%09b", uint16(word)&WORD_MASK)
}

// field checks that value fits an unsigned field of width bits.
func field(name string, value, width int) (bits uint16, err error) {
	if value < 0 || value >= (1<<width) {
		err = ErrFieldOverflow{Field: name, Value: value, Width: width}
		return
	}

	bits = uint16(value)
	return
}

// signedField checks that value fits a two's complement field of width
// bits, and returns its encoding.
func signedField(name string, value, width int) (bits uint16, err error) {
	lo := -(1 << (width - 1))
	hi := (1 << (width - 1)) - 1
	if value < lo || value > hi {
		err = ErrFieldOverflow{Field: name, Value: value, Width: width}
		return
	}

	bits = uint16(value) & ((1 << width) - 1)
	return
}

// Encode packs the operand values into a word. Register operands are given
// by register number, immediates and offsets by value, and the label operand
// of a branch by its already resolved relative offset.
func (ins *Instruction) Encode(values ...int) (word Word, err error) {
	if !ins.Class.Valid() {
		err = ErrClassInvalid
		return
	}

	if len(values) != len(ins.Operands) {
		err = ErrOperandCount
		return
	}

	var operand uint16

	switch ins.Class {
	case CLASS_I, CLASS_M:
		// R:3 | imm:2
		var reg, imm uint16
		reg, err = ins.field(0, values[0])
		if err != nil {
			return
		}
		imm, err = ins.field(1, values[1])
		if err != nil {
			return
		}
		operand = (reg << 2) | imm
	case CLASS_R:
		// Registers packed MSB first, ie Rd:1 | Rn:2 | Rm:2 or Rn:3 | Rm:2
		for n, value := range values {
			var reg uint16
			reg, err = ins.field(n, value)
			if err != nil {
				return
			}
			operand = (operand << ins.Operands[n].Width) | reg
		}
	case CLASS_U:
		// Rd:3 | 00, or 00000 without a register.
		if len(values) == 1 {
			var reg uint16
			reg, err = ins.field(0, values[0])
			if err != nil {
				return
			}
			operand = reg << 2
		}
	case CLASS_C:
		// offset:5, signed
		operand, err = signedField(ins.Operands[0].Name, values[0], ins.Operands[0].Width)
		if err != nil {
			return
		}
	case CLASS_X:
		// Rm:3 | 00
		var reg uint16
		reg, err = ins.field(0, values[0])
		if err != nil {
			return
		}
		operand = reg << 2
	}

	word = makeWord(ins.Class, ins.Opcode, operand)

	return
}

// field checks values[n] against the width of operand n.
func (ins *Instruction) field(n int, value int) (uint16, error) {
	op := ins.Operands[n]
	return field(op.Name, value, op.Width)
}

// Decode unpacks the operand values of a word encoded by this instruction.
// Branch offsets are returned signed.
func (ins *Instruction) Decode(word Word) (values []int) {
	if ins.Class == CLASS_C {
		values = append(values, word.Offset())
		return
	}

	lsb := OPERAND_BITS
	for _, op := range ins.Operands {
		lsb -= op.Width
		values = append(values, word.Field(lsb, op.Width))
	}

	return
}

// Matches returns true if the word carries this instruction's type bit and opcode.
func (ins *Instruction) Matches(word Word) bool {
	return word.Type() == ins.Class.Type() && word.Opcode() == ins.Opcode
}

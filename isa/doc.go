// Package isa describes the 9-bit instruction set targeted by asm9.
//
// Every instruction word is laid out MSB first as a single type bit, a
// 3-bit opcode and a 5-bit operand field. The meaning of the operand field
// depends on the instruction class. Opcodes are only unique within a class,
// so the instruction table is keyed by mnemonic and never by opcode bits.
package isa

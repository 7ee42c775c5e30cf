// Package asm implements the two-pass assembler for the 9-bit asm9
// instruction set.
//
// Source lines have the form
//
//	[label:] [MNEMONIC operand[, operand]...] [; comment | // comment]
//
// Pass 1 binds every label to the address of the instruction it precedes.
// Pass 2 encodes each instruction into a 9-bit word, resolving branch labels
// to offsets relative to the following instruction. The first error aborts
// the whole assembly.
//
// Memory operands may be written as offset(Rn). The register is discarded
// and only the offset is encoded; the instruction set has no base register
// field.
//
// Operand text may use equates defined with ".equ NAME VALUE", and
// compile-time expressions written as $(expr), which are evaluated as
// Starlark with all numeric equates in scope.
package asm

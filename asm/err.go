package asm

import (
	"errors"

	"github.com/ezrec/asm9/isa"
	"github.com/ezrec/asm9/translate"
)

var f = translate.From

var (
	// Directive errors
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrEquateDuplicate = errors.New(f(".equ duplicated"))
)

// ErrLine attaches the source location to an assembly error.
type ErrLine struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrLine) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrLine) Unwrap() error {
	return err.Err
}

type ErrLabelDuplicate string

func (err ErrLabelDuplicate) Error() string {
	return f("label '%v' duplicated", string(err))
}

type ErrInstructionUnknown string

func (err ErrInstructionUnknown) Error() string {
	return f("unknown instruction '%v'", string(err))
}

// ErrSyntax is returned when an instruction does not match the operand
// syntax of its mnemonic.
type ErrSyntax struct {
	Mnemonic string
	Text     string
}

func (err ErrSyntax) Error() string {
	expected := err.Mnemonic
	ins, ok := isa.Lookup(err.Mnemonic)
	if ok {
		expected = ins.Syntax()
	}
	return f("syntax error for '%v': '%v' does not match '%v'", err.Mnemonic, err.Text, expected)
}

// ErrLabelMissing is returned when a branch target was never declared.
type ErrLabelMissing struct {
	Label    string
	Mnemonic string
	Address  int
}

func (err ErrLabelMissing) Error() string {
	return f("label '%v' not found for branch instruction '%v' at address %d", err.Label, err.Mnemonic, err.Address)
}

// ErrOffsetRange is returned when a branch target is too far away.
type ErrOffsetRange struct {
	Label   string
	Offset  int
	Address int
}

func (err ErrOffsetRange) Error() string {
	return f("branch offset for '%v' (%d) is out of range (%d to %d) at address %d",
		err.Label, err.Offset, isa.BRANCH_MIN, isa.BRANCH_MAX, err.Address)
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

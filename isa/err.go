package isa

import (
	"errors"

	"github.com/ezrec/asm9/translate"
)

var f = translate.From

var (
	ErrOperandCount = errors.New(f("operand count"))
	ErrClassInvalid = errors.New(f("class invalid"))
)

// ErrFieldOverflow is returned when a value does not fit its operand field.
type ErrFieldOverflow struct {
	Field string // Operand field name, ie "Rd" or "imm".
	Value int    // Rejected value.
	Width int    // Field width in bits.
}

func (err ErrFieldOverflow) Error() string {
	return f("%v value %d does not fit in %d bits", err.Field, err.Value, err.Width)
}

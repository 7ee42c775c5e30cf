// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package isa

// Class is an instruction class. The class fixes the type bit and the
// layout of the operand field.
type Class int

//go:generate go tool stringer -linecomment -type=Class
const (
	CLASS_I = Class(0) // immediate
	CLASS_R = Class(1) // register
	CLASS_U = Class(2) // unary
	CLASS_M = Class(3) // memory
	CLASS_C = Class(4) // branch
	CLASS_X = Class(5) // indirect
)

// classType maps each class to its type bit.
var classType = [...]uint16{
	CLASS_I: 1,
	CLASS_R: 0,
	CLASS_U: 1,
	CLASS_M: 0,
	CLASS_C: 1,
	CLASS_X: 1,
}

// Type returns the type bit of the class.
func (class Class) Type() uint16 {
	return classType[class]
}

// Valid returns true if the class is one of the defined classes.
func (class Class) Valid() bool {
	return class >= CLASS_I && class <= CLASS_X
}

// Kind is the syntactic kind of an operand.
type Kind int

//go:generate go tool stringer -linecomment -type=Kind
const (
	KIND_REGISTER  = Kind(0) // register
	KIND_IMMEDIATE = Kind(1) // immediate
	KIND_OFFSET    = Kind(2) // offset
	KIND_LABEL     = Kind(3) // label
)

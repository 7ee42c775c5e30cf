package asm

import (
	"fmt"
	"iter"
	"strings"

	"github.com/ezrec/asm9/isa"
)

// Statement is a source line with its assembled word.
type Statement struct {
	Line
	Address int      // Address of the instruction, or of the next one.
	Word    isa.Word // Encoded word, if the line has an instruction.
}

// Program is the result of an assembly.
type Program struct {
	Statements []Statement
	Labels     map[string]int
}

// Words returns an iterator over the instruction words and their addresses.
func (prog *Program) Words() iter.Seq2[int, isa.Word] {
	return func(yield func(address int, word isa.Word) bool) {
		for _, stmt := range prog.Statements {
			if !stmt.HasInstruction() {
				continue
			}
			if !yield(stmt.Address, stmt.Word) {
				return
			}
		}
	}
}

// Binary returns the instruction words in address order.
func (prog *Program) Binary() (bins []uint16) {
	for _, word := range prog.Words() {
		bins = append(bins, uint16(word))
	}

	return
}

// Debug finds the statement that assembled the word at address.
func (prog *Program) Debug(address int) (stmt Statement, ok bool) {
	for _, st := range prog.Statements {
		if st.HasInstruction() && st.Address == address {
			return st, true
		}
	}

	return
}

// Listing returns the words as newline separated binary strings. With
// includeComments set, comment and directive lines are echoed as "; text",
// label lines as "label: ; Label", and each word is followed by its source.
func (prog *Program) Listing(includeComments bool) string {
	var out []string

	for _, stmt := range prog.Statements {
		switch stmt.Kind {
		case LINE_INSTRUCTION, LINE_LABEL_INSTRUCTION:
			if includeComments {
				out = append(out, fmt.Sprintf("%v ; %v", stmt.Word, strings.TrimSpace(stmt.Source)))
			} else {
				out = append(out, stmt.Word.String())
			}
		case LINE_LABEL:
			if includeComments {
				out = append(out, fmt.Sprintf("%v: ; Label", stmt.Label))
			}
		default:
			if includeComments {
				out = append(out, "; "+stmt.Source)
			}
		}
	}

	return strings.Join(out, "\n")
}

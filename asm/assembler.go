// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"strconv"
	"strings"

	"github.com/ezrec/asm9/isa"
)

// MAX_LINE is the longest source line the assembler will read.
const MAX_LINE = 1 << 30

// Assembler is a two pass assembler for the asm9 instruction set.
//
// An Assembler may be reused; every call to Parse or Assemble starts from
// a clean label table and the predefined equates.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of labels to instruction addresses.
	Equate    map[string]string // Map of equates.
}

// Assemble assembles source with a fresh Assembler.
func Assemble(source string, includeComments bool) (listing string, err error) {
	asm := &Assembler{}
	return asm.Assemble(source, includeComments)
}

// Assemble assembles source into newline separated 9-bit binary words. With
// includeComments set, the listing interleaves the source text.
func (asm *Assembler) Assemble(source string, includeComments bool) (listing string, err error) {
	prog, err := asm.Parse(strings.NewReader(source))
	if err != nil {
		return
	}

	listing = prog.Listing(includeComments)
	return
}

// Parse parses an input stream into a Program of encoded instructions.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	asm.Label = make(map[string]int, 16)
	asm.resetEquates()

	lines, err := asm.scan(input)
	if err != nil {
		return
	}

	err = asm.bindLabels(lines)
	if err != nil {
		return
	}

	statements, err := asm.encode(lines)
	if err != nil {
		return
	}

	prog = &Program{
		Statements: statements,
		Labels:     maps.Clone(asm.Label),
	}

	return
}

// scan reads and parses every line of the input.
func (asm *Assembler) scan(input io.Reader) (lines []Line, err error) {
	scanner := bufio.NewScanner(input)
	scanner.Buffer(nil, MAX_LINE)

	var lineno int
	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		var line Line
		line, err = asm.parseLine(text, lineno)
		if err != nil {
			err = &ErrLine{LineNo: lineno, Line: strings.TrimSpace(text), Err: err}
			return
		}

		lines = append(lines, line)
	}

	err = scanner.Err()
	if err != nil {
		err = &ErrLine{LineNo: lineno + 1, Err: err}
	}

	return
}

// parseLine parses a single line, evaluating directives, expressions and
// equates.
func (asm *Assembler) parseLine(text string, lineno int) (line Line, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	line = ParseLine(text)
	line.LineNo = lineno

	switch line.Kind {
	case LINE_DIRECTIVE:
		err = asm.equate(&line)
	case LINE_INSTRUCTION, LINE_LABEL_INSTRUCTION:
		// Branch operands name labels, which equates never shadow.
		if ins, ok := isa.Lookup(line.Mnemonic); ok && ins.Branch() {
			line.args, err = asm.evaluate(line.args)
		} else {
			line.args, err = asm.expand(line.args)
		}
		if err != nil {
			return
		}
		line.normalize()
	}

	return
}

// bindLabels is the first pass, binding each label to the address of the
// next instruction.
func (asm *Assembler) bindLabels(lines []Line) (err error) {
	address := 0
	for _, line := range lines {
		if len(line.Label) != 0 {
			_, ok := asm.Label[line.Label]
			if ok {
				err = &ErrLine{LineNo: line.LineNo, Line: strings.TrimSpace(line.Source), Err: ErrLabelDuplicate(line.Label)}
				return
			}
			asm.Label[line.Label] = address
		}

		if line.HasInstruction() {
			address++
		}
	}

	return
}

// encode is the second pass, encoding every instruction.
func (asm *Assembler) encode(lines []Line) (statements []Statement, err error) {
	statements = make([]Statement, 0, len(lines))

	address := 0
	for _, line := range lines {
		stmt := Statement{Line: line, Address: address}

		if line.HasInstruction() {
			stmt.Word, err = asm.encodeLine(&line, address)
			if err != nil {
				err = &ErrLine{LineNo: line.LineNo, Line: strings.TrimSpace(line.Source), Err: err}
				statements = nil
				return
			}

			if asm.Verbose {
				log.Printf("%02x: %v ; %v\n", address, stmt.Word, line.Text)
			}

			address++
		}

		statements = append(statements, stmt)
	}

	return
}

// encodeLine encodes a single instruction at address.
func (asm *Assembler) encodeLine(line *Line, address int) (word isa.Word, err error) {
	ins, ok := isa.Lookup(line.Mnemonic)
	if !ok {
		err = ErrInstructionUnknown(line.Mnemonic)
		return
	}

	operands, ok := ins.Match(line.Text)
	if !ok {
		err = ErrSyntax{Mnemonic: line.Mnemonic, Text: line.Instruction}
		return
	}

	if ins.Branch() {
		return asm.encodeBranch(ins, operands[0], address)
	}

	values := make([]int, len(operands))
	for n, operand := range operands {
		switch ins.Operands[n].Kind {
		case isa.KIND_REGISTER:
			values[n], err = strconv.Atoi(operand[1:])
		default:
			values[n], err = parseNumber(operand)
		}
		if err != nil {
			return
		}
	}

	word, err = ins.Encode(values...)

	return
}

// encodeBranch resolves a branch label to an offset relative to the
// instruction following address.
func (asm *Assembler) encodeBranch(ins *isa.Instruction, label string, address int) (word isa.Word, err error) {
	target, ok := asm.Label[label]
	if !ok {
		err = ErrLabelMissing{Label: label, Mnemonic: ins.Mnemonic, Address: address}
		return
	}

	offset := target - (address + 1)
	if offset < isa.BRANCH_MIN || offset > isa.BRANCH_MAX {
		err = ErrOffsetRange{Label: label, Offset: offset, Address: address}
		return
	}

	word, err = ins.Encode(offset)

	return
}

// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"regexp"
	"strings"
	"unicode"
)

// LineKind is the shape of a parsed source line.
type LineKind int

//go:generate go tool stringer -linecomment -type=LineKind
const (
	LINE_EMPTY             = LineKind(0) // empty
	LINE_LABEL             = LineKind(1) // label
	LINE_INSTRUCTION       = LineKind(2) // instruction
	LINE_LABEL_INSTRUCTION = LineKind(3) // label+instruction
	LINE_DIRECTIVE         = LineKind(4) // directive
)

// Line is a single parsed line of source.
type Line struct {
	LineNo      int      // Line number, 1-based.
	Source      string   // Original source text.
	Kind        LineKind // Shape of the line.
	Label       string   // Declared label, if any.
	Mnemonic    string   // Upper case mnemonic or directive.
	Operands    []string // Operand tokens.
	Instruction string   // Instruction text without label or comment.
	Text        string   // Canonical "MNEMONIC op, op" form.

	args string // Operand text as written.
}

// HasInstruction returns true if the line emits an instruction word.
func (line *Line) HasInstruction() bool {
	return line.Kind == LINE_INSTRUCTION || line.Kind == LINE_LABEL_INSTRUCTION
}

// memoryRe matches the offset(Rn) addressing form.
var memoryRe = regexp.MustCompile(`(\d+)\((?i:R[0-7])\)`)

// stripComment removes a trailing ';' or '//' comment.
func stripComment(text string) string {
	text, _, _ = strings.Cut(text, ";")
	text, _, _ = strings.Cut(text, "//")
	return strings.TrimSpace(text)
}

// ParseLine parses a line of source. It never fails; operand syntax is
// checked when the instruction is encoded.
func ParseLine(text string) (line Line) {
	line.Source = text

	trimmed := strings.TrimSpace(text)
	if len(trimmed) == 0 || strings.HasPrefix(trimmed, ";") || strings.HasPrefix(trimmed, "//") {
		return
	}

	code := stripComment(trimmed)
	if len(code) == 0 {
		return
	}

	// .equ NAME VALUE
	head, rest := splitWord(code)
	if strings.EqualFold(head, ".equ") {
		line.Kind = LINE_DIRECTIVE
		line.Mnemonic = strings.ToUpper(head)
		line.Instruction = code
		line.args = rest
		line.Operands = strings.Fields(rest)
		return
	}

	label, remainder, found := strings.Cut(code, ":")
	if found {
		line.Label = strings.TrimSpace(label)
		code = strings.TrimSpace(remainder)
	}

	if len(code) == 0 {
		if len(line.Label) != 0 {
			line.Kind = LINE_LABEL
		}
		return
	}

	if len(line.Label) != 0 {
		line.Kind = LINE_LABEL_INSTRUCTION
	} else {
		line.Kind = LINE_INSTRUCTION
	}

	mnemonic, args := splitWord(code)
	line.Instruction = code
	line.Mnemonic = strings.ToUpper(mnemonic)
	line.args = args
	line.normalize()

	return
}

// splitWord splits off the first whitespace delimited word.
func splitWord(text string) (word string, rest string) {
	index := strings.IndexFunc(text, unicode.IsSpace)
	if index < 0 {
		return text, ""
	}

	return text[:index], strings.TrimSpace(text[index:])
}

// normalize tokenizes the operand text and builds the canonical text.
func (line *Line) normalize() {
	args := memoryRe.ReplaceAllString(line.args, "${1}")
	line.Operands = strings.Fields(strings.ReplaceAll(args, ",", " "))

	line.Text = line.Mnemonic
	if len(line.Operands) != 0 {
		line.Text += " " + strings.Join(line.Operands, ", ")
	}
}
